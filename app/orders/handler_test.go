package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/duckcreek/farmstore/models"
)

// --- Mock Repo ---

type MockOrderRepo struct {
	Orders []models.Order
	Err    error

	createdOrder     *models.Order
	createdItems     []models.OrderItem
	lastStatusID     uint
	lastStatusUpdate models.OrderStatus
}

func (m *MockOrderRepo) CreateOrder(order *models.Order, items []models.OrderItem) error {
	if m.Err != nil {
		// Transactional: a failed create leaves nothing behind.
		return m.Err
	}
	m.createdOrder = order
	m.createdItems = items

	order.ID = uint(len(m.Orders) + 1)
	for i := range items {
		items[i].OrderID = order.ID
	}
	order.Items = items
	m.Orders = append(m.Orders, *order)
	return nil
}

func (m *MockOrderRepo) GetAllOrders() ([]models.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Orders, nil
}

func (m *MockOrderRepo) GetByID(id uint) (*models.Order, error) {
	for _, o := range m.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, models.ErrOrderNotFound
}

func (m *MockOrderRepo) UpdateStatus(id uint, status models.OrderStatus) (*models.Order, error) {
	m.lastStatusID = id
	m.lastStatusUpdate = status

	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Orders {
		if m.Orders[i].ID == id {
			m.Orders[i].Status = status
			order := m.Orders[i]
			return &order, nil
		}
	}
	return nil, models.ErrOrderNotFound
}

// --- Tests ---

func TestHandlePlaceOrder(t *testing.T) {
	validBody := `{
		"order": {
			"customerName": "Jo Mallard",
			"phone": "555-0101",
			"address": "1 Creek Rd",
			"totalAmount": "13.98"
		},
		"items": [
			{"productId": 1, "quantity": 2, "pricePerUnit": "6.99", "totalPrice": "13.98"}
		]
	}`

	t.Run("Success persists one header and one line item", func(t *testing.T) {
		repo := &MockOrderRepo{}
		handler := NewOrdersHandler(repo)
		req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(validBody))
		rec := httptest.NewRecorder()

		handler.HandlePlaceOrder(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotNil(t, repo.createdOrder)
		assert.Len(t, repo.createdItems, 1)
		assert.Len(t, repo.Orders, 1)

		var resp models.Order
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "13.98", resp.TotalAmount.StringFixed(2))
		assert.Equal(t, models.OrderStatusPending, resp.Status)
		assert.Equal(t, models.PaymentMethodCashOnDelivery, resp.PaymentMethod)
		assert.Regexp(t, `^DCF-\d+-[0-9A-F]{6}$`, resp.OrderNumber)
		assert.Len(t, resp.Items, 1)
		assert.Equal(t, uint(1), resp.Items[0].ProductID)
		assert.Equal(t, 2, resp.Items[0].Quantity)
		assert.Equal(t, "13.98", resp.Items[0].TotalPrice.StringFixed(2))

		// Re-fetch returns the same total
		fetched, err := repo.GetByID(resp.ID)
		assert.NoError(t, err)
		assert.Equal(t, "13.98", fetched.TotalAmount.StringFixed(2))
	})

	t.Run("Empty items array is rejected and nothing is persisted", func(t *testing.T) {
		repo := &MockOrderRepo{}
		handler := NewOrdersHandler(repo)
		body := `{
			"order": {"customerName": "Jo", "phone": "555", "address": "Creek", "totalAmount": "0.00"},
			"items": []
		}`
		req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandlePlaceOrder(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp struct {
			Errors map[string]string `json:"errors"`
		}
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Contains(t, resp.Errors, "items")
		assert.Nil(t, repo.createdOrder, "no orphan header may be written")
		assert.Empty(t, repo.Orders)
	})

	t.Run("Missing required fields are enumerated", func(t *testing.T) {
		repo := &MockOrderRepo{}
		handler := NewOrdersHandler(repo)
		body := `{"order": {}, "items": [{"productId": 0, "quantity": 0, "pricePerUnit": "0"}]}`
		req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandlePlaceOrder(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp struct {
			Errors map[string]string `json:"errors"`
		}
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Contains(t, resp.Errors, "customerName")
		assert.Contains(t, resp.Errors, "phone")
		assert.Contains(t, resp.Errors, "address")
		assert.Contains(t, resp.Errors, "totalAmount")
		assert.Contains(t, resp.Errors, "items[0].productId")
		assert.Contains(t, resp.Errors, "items[0].quantity")
		assert.Contains(t, resp.Errors, "items[0].pricePerUnit")
		assert.Contains(t, resp.Errors, "items[0].totalPrice")
	})

	t.Run("Item without a total price is rejected, nothing persisted", func(t *testing.T) {
		repo := &MockOrderRepo{}
		handler := NewOrdersHandler(repo)
		body := `{
			"order": {"customerName": "Jo Mallard", "phone": "555-0101", "address": "1 Creek Rd", "totalAmount": "13.98"},
			"items": [{"productId": 1, "quantity": 2, "pricePerUnit": "6.99"}]
		}`
		req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandlePlaceOrder(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp struct {
			Errors map[string]string `json:"errors"`
		}
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Contains(t, resp.Errors, "items[0].totalPrice")
		assert.Nil(t, repo.createdOrder)
		assert.Empty(t, repo.Orders)
	})

	t.Run("Zero total price is rejected", func(t *testing.T) {
		repo := &MockOrderRepo{}
		handler := NewOrdersHandler(repo)
		body := `{
			"order": {"customerName": "Jo Mallard", "phone": "555-0101", "address": "1 Creek Rd", "totalAmount": "13.98"},
			"items": [{"productId": 1, "quantity": 2, "pricePerUnit": "6.99", "totalPrice": "0.00"}]
		}`
		req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandlePlaceOrder(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, repo.Orders)
	})

	t.Run("Non-decimal total amount rejected", func(t *testing.T) {
		repo := &MockOrderRepo{}
		handler := NewOrdersHandler(repo)
		body := strings.Replace(validBody, `"13.98"`, `"a lot"`, 1)
		req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandlePlaceOrder(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Unsupported payment method rejected", func(t *testing.T) {
		repo := &MockOrderRepo{}
		handler := NewOrdersHandler(repo)
		body := `{
			"order": {"customerName": "Jo", "phone": "555", "address": "Creek", "totalAmount": "6.99", "paymentMethod": "card"},
			"items": [{"productId": 1, "quantity": 1, "pricePerUnit": "6.99", "totalPrice": "6.99"}]
		}`
		req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandlePlaceOrder(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Persistence failure surfaces as a generic 500", func(t *testing.T) {
		repo := &MockOrderRepo{Err: errors.New("db down")}
		handler := NewOrdersHandler(repo)
		req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(validBody))
		rec := httptest.NewRecorder()

		handler.HandlePlaceOrder(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var errResp map[string]string
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
		assert.Equal(t, "internal server error", errResp["message"])
	})
}

func TestHandleUpdateStatus(t *testing.T) {
	newOrder := func(status models.OrderStatus) models.Order {
		return models.Order{
			ID:           1,
			OrderNumber:  "DCF-1756600000000-ABCDEF",
			CustomerName: "Jo Mallard",
			Phone:        "555-0101",
			Address:      "1 Creek Rd",
			TotalAmount:  decimal.NewFromFloat(13.98),
			Status:       status,
		}
	}

	allStatuses := []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	}

	// Every status is reachable from every other; no transition guard.
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			t.Run(string(from)+" to "+string(to), func(t *testing.T) {
				repo := &MockOrderRepo{Orders: []models.Order{newOrder(from)}}
				handler := NewOrdersHandler(repo)
				req := httptest.NewRequest("PUT", "/api/admin/orders/1/status",
					strings.NewReader(`{"status":"`+string(to)+`"}`))
				req.SetPathValue("id", "1")
				rec := httptest.NewRecorder()

				handler.HandleUpdateStatus(rec, req)

				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, to, repo.lastStatusUpdate)
			})
		}
	}

	t.Run("Unknown status rejected", func(t *testing.T) {
		repo := &MockOrderRepo{Orders: []models.Order{newOrder(models.OrderStatusPending)}}
		handler := NewOrdersHandler(repo)
		req := httptest.NewRequest("PUT", "/api/admin/orders/1/status",
			strings.NewReader(`{"status":"teleported"}`))
		req.SetPathValue("id", "1")
		rec := httptest.NewRecorder()

		handler.HandleUpdateStatus(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, models.OrderStatus(""), repo.lastStatusUpdate)
	})

	t.Run("Unknown order", func(t *testing.T) {
		repo := &MockOrderRepo{}
		handler := NewOrdersHandler(repo)
		req := httptest.NewRequest("PUT", "/api/admin/orders/9/status",
			strings.NewReader(`{"status":"shipped"}`))
		req.SetPathValue("id", "9")
		rec := httptest.NewRecorder()

		handler.HandleUpdateStatus(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleListAll(t *testing.T) {
	t.Run("Returns orders with items", func(t *testing.T) {
		repo := &MockOrderRepo{
			Orders: []models.Order{
				{
					ID:          1,
					OrderNumber: "DCF-1756600000000-ABCDEF",
					TotalAmount: decimal.NewFromFloat(13.98),
					Status:      models.OrderStatusPending,
					Items: []models.OrderItem{
						{OrderID: 1, ProductID: 1, Quantity: 2,
							PricePerUnit: decimal.NewFromFloat(6.99),
							TotalPrice:   decimal.NewFromFloat(13.98)},
					},
				},
			},
		}
		handler := NewOrdersHandler(repo)
		req := httptest.NewRequest("GET", "/api/admin/orders", nil)
		rec := httptest.NewRecorder()

		handler.HandleListAll(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp []models.Order
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp, 1)
		assert.Len(t, resp[0].Items, 1)
	})

	t.Run("Empty result is an empty array", func(t *testing.T) {
		handler := NewOrdersHandler(&MockOrderRepo{})
		req := httptest.NewRequest("GET", "/api/admin/orders", nil)
		rec := httptest.NewRecorder()

		handler.HandleListAll(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})
}
