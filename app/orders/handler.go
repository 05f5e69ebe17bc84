package orders

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/duckcreek/farmstore/app/api"
	"github.com/duckcreek/farmstore/models"
)

type OrderProvider interface {
	CreateOrder(order *models.Order, items []models.OrderItem) error
	GetAllOrders() ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	UpdateStatus(id uint, status models.OrderStatus) (*models.Order, error)
}

type OrdersHandler struct {
	repo OrderProvider
}

func NewOrdersHandler(r OrderProvider) *OrdersHandler {
	return &OrdersHandler{
		repo: r,
	}
}

type orderInput struct {
	CustomerName  string `json:"customerName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	TotalAmount   string `json:"totalAmount"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
}

type itemInput struct {
	ProductID    uint             `json:"productId"`
	Quantity     int              `json:"quantity"`
	PricePerUnit decimal.Decimal  `json:"pricePerUnit"`
	TotalPrice   *decimal.Decimal `json:"totalPrice"`
}

type placeOrderInput struct {
	Order orderInput  `json:"order"`
	Items []itemInput `json:"items"`
}

// HandlePlaceOrder accepts a checkout. The unit price and total of every
// line item come from the client as a snapshot of the catalog price at cart
// time; they are persisted verbatim, with no re-check against the live
// product price and no stock decrement. Inventory conservation is
// deliberately not enforced at order time.
func (h *OrdersHandler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var input placeOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	fields := map[string]string{}
	if input.Order.CustomerName == "" {
		fields["customerName"] = "customer name is required"
	}
	if input.Order.Phone == "" {
		fields["phone"] = "phone is required"
	}
	if input.Order.Address == "" {
		fields["address"] = "address is required"
	}

	var totalAmount decimal.Decimal
	if input.Order.TotalAmount == "" {
		fields["totalAmount"] = "total amount is required"
	} else {
		var err error
		totalAmount, err = decimal.NewFromString(input.Order.TotalAmount)
		if err != nil {
			fields["totalAmount"] = "total amount must be a decimal string"
		}
	}

	if len(input.Items) == 0 {
		fields["items"] = "at least one item is required"
	}
	for i, item := range input.Items {
		if item.ProductID == 0 {
			fields[fmt.Sprintf("items[%d].productId", i)] = "product id is required"
		}
		if item.Quantity < 1 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "quantity must be at least 1"
		}
		if !item.PricePerUnit.IsPositive() {
			fields[fmt.Sprintf("items[%d].pricePerUnit", i)] = "price per unit must be greater than zero"
		}
		if item.TotalPrice == nil {
			fields[fmt.Sprintf("items[%d].totalPrice", i)] = "total price is required"
		} else if !item.TotalPrice.IsPositive() {
			fields[fmt.Sprintf("items[%d].totalPrice", i)] = "total price must be greater than zero"
		}
	}
	if len(fields) > 0 {
		api.WriteValidationErrors(w, fields)
		return
	}

	paymentMethod := input.Order.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCashOnDelivery
	}
	if paymentMethod != models.PaymentMethodCashOnDelivery {
		api.WriteValidationErrors(w, map[string]string{
			"paymentMethod": "only cash on delivery is supported",
		})
		return
	}

	order := &models.Order{
		OrderNumber:   models.NewOrderNumber(),
		CustomerName:  input.Order.CustomerName,
		Email:         input.Order.Email,
		Phone:         input.Order.Phone,
		Address:       input.Order.Address,
		TotalAmount:   totalAmount,
		Status:        models.OrderStatusPending,
		PaymentMethod: paymentMethod,
		Notes:         input.Order.Notes,
	}

	items := make([]models.OrderItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = models.OrderItem{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PricePerUnit: item.PricePerUnit,
			TotalPrice:   *item.TotalPrice,
		}
	}

	if err := h.repo.CreateOrder(order, items); err != nil {
		api.WriteInternalError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, order)
}

// HandleListAll serves the admin order table with line items, newest first.
func (h *OrdersHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.GetAllOrders()
	if err != nil {
		api.WriteInternalError(w, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	api.WriteJSON(w, http.StatusOK, orders)
}

// HandleUpdateStatus sets an order's status. Any of the five values is
// accepted from any current status; there is no transition guard.
func (h *OrdersHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !models.ValidOrderStatus(input.Status) {
		api.WriteValidationErrors(w, map[string]string{
			"status": "status must be one of pending, processing, shipped, delivered, cancelled",
		})
		return
	}

	order, err := h.repo.UpdateStatus(uint(id), input.Status)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			api.WriteError(w, http.StatusNotFound, "order not found")
			return
		}
		api.WriteInternalError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, order)
}
