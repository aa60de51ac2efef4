package adaptor

import (
	"net/http"

	"product-catalog/internal/dto/request"
	"product-catalog/internal/usecase"
	"product-catalog/pkg/utils"

	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With(zap.String("handler", "product")),
	}
}

// List handles GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.FindAll(r.Context(), pageFromQuery(r))
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Products retrieved", page)
}

// Search handles GET /api/products/search?name=
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Search(r.Context(), r.URL.Query().Get("name"), pageFromQuery(r))
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Products retrieved", page)
}

// Mine handles GET /api/users/me/products
func (h *ProductHandler) Mine(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	page, err := h.service.FindByOwner(r.Context(), p.ID, pageFromQuery(r))
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Products retrieved", page)
}

// Get handles GET /api/products/{productId}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "productId")
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	product, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Product retrieved", product)
}

// Create handles POST /api/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	var req request.ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	product, err := h.service.Create(r.Context(), p.ID, &req)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseCreated(w, "Product created", product)
}

// Update handles PUT /api/products/{productId}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	id, err := pathUUID(r, "productId")
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	var req request.ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	product, err := h.service.Update(r.Context(), id, p.ID, &req)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Product updated", product)
}

// Delete handles DELETE /api/products/{productId}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	id, err := pathUUID(r, "productId")
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	if err := h.service.Delete(r.Context(), id, p.ID); err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Product deleted", nil)
}
