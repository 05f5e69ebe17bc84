package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/duckcreek/farmstore/app/api"
	"github.com/duckcreek/farmstore/models"
)

type ProductProvider interface {
	GetActiveProducts(filters models.ProductFilters) ([]models.Product, error)
	GetAllProducts() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	CreateProduct(product *models.Product) error
	UpdateProduct(id uint, updates map[string]any) (*models.Product, error)
	DeactivateProduct(id uint) error
	GetCategories() ([]string, error)
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

// HandleList serves the public catalog. Only active products are returned;
// the full filtered set comes back in one response, no pagination.
func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filters := models.ProductFilters{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	}

	products, err := h.repo.GetActiveProducts(filters)
	if err != nil {
		api.WriteInternalError(w, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	api.WriteJSON(w, http.StatusOK, products)
}

// HandleGetProduct serves a single product by id. Inactive products resolve
// here too; the soft-delete flag only filters the listing.
func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.WriteError(w, http.StatusNotFound, "product not found")
			return
		}
		api.WriteInternalError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, product)
}

// HandleCategories returns the distinct category labels of active products,
// for the storefront filter dropdown.
func (h *CatalogHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetCategories()
	if err != nil {
		api.WriteInternalError(w, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	api.WriteJSON(w, http.StatusOK, categories)
}

// HandleListAll serves the admin product table, inactive products included.
func (h *CatalogHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetAllProducts()
	if err != nil {
		api.WriteInternalError(w, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	api.WriteJSON(w, http.StatusOK, products)
}

type productInput struct {
	Name             *string          `json:"name"`
	Description      *string          `json:"description"`
	Price            *decimal.Decimal `json:"price"`
	Category         *string          `json:"category"`
	ImageURL         *string          `json:"imageUrl"`
	Stock            *int             `json:"stock"`
	NutritionalFacts *string          `json:"nutritionalFacts"`
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	fields := map[string]string{}
	if input.Name == nil || *input.Name == "" {
		fields["name"] = "name is required"
	}
	if input.Description == nil || *input.Description == "" {
		fields["description"] = "description is required"
	}
	if input.Price == nil {
		fields["price"] = "price is required"
	} else if !input.Price.IsPositive() {
		fields["price"] = "price must be greater than zero"
	}
	if input.Stock != nil && *input.Stock < 0 {
		fields["stock"] = "stock must not be negative"
	}
	if len(fields) > 0 {
		api.WriteValidationErrors(w, fields)
		return
	}

	product := &models.Product{
		Name:        *input.Name,
		Description: *input.Description,
		Price:       *input.Price,
		Status:      models.ProductStatusActive,
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.NutritionalFacts != nil {
		product.NutritionalFacts = *input.NutritionalFacts
	}

	if err := h.repo.CreateProduct(product); err != nil {
		api.WriteInternalError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, product)
}

// HandleUpdate applies a partial update; only the provided fields change.
func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	fields := map[string]string{}
	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			fields["name"] = "name must not be empty"
		} else {
			updates["name"] = *input.Name
		}
	}
	if input.Description != nil {
		if *input.Description == "" {
			fields["description"] = "description must not be empty"
		} else {
			updates["description"] = *input.Description
		}
	}
	if input.Price != nil {
		if !input.Price.IsPositive() {
			fields["price"] = "price must be greater than zero"
		} else {
			updates["price"] = *input.Price
		}
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			fields["stock"] = "stock must not be negative"
		} else {
			updates["stock"] = *input.Stock
		}
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.NutritionalFacts != nil {
		updates["nutritional_facts"] = *input.NutritionalFacts
	}
	if len(fields) > 0 {
		api.WriteValidationErrors(w, fields)
		return
	}
	if len(updates) == 0 {
		api.WriteError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	product, err := h.repo.UpdateProduct(id, updates)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.WriteError(w, http.StatusNotFound, "product not found")
			return
		}
		api.WriteInternalError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, product)
}

// HandleDelete soft-deletes: the row stays, the status flips to inactive.
func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.repo.DeactivateProduct(id); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.WriteError(w, http.StatusNotFound, "product not found")
			return
		}
		api.WriteInternalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return uint(id), true
}
