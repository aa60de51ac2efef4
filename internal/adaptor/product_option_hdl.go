package adaptor

import (
	"net/http"

	"product-catalog/internal/dto/request"
	"product-catalog/internal/usecase"
	"product-catalog/pkg/utils"

	"go.uber.org/zap"
)

type ProductOptionHandler struct {
	service usecase.ProductOptionService
	log     *zap.Logger
}

func NewProductOptionHandler(service usecase.ProductOptionService, log *zap.Logger) *ProductOptionHandler {
	return &ProductOptionHandler{
		service: service,
		log:     log.With(zap.String("handler", "product_option")),
	}
}

// List handles GET /api/products/{productId}/options
func (h *ProductOptionHandler) List(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "productId")
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	options, err := h.service.FindByProductID(r.Context(), productID)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Options retrieved", options)
}

// Get handles GET /api/products/{productId}/options/{id}
func (h *ProductOptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "productId")
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	option, err := h.service.FindByID(r.Context(), productID, id)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Option retrieved", option)
}

// Create handles POST /api/products/{productId}/options
func (h *ProductOptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}
	productID, err := pathUUID(r, "productId")
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	var req request.ProductOptionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	option, err := h.service.Create(r.Context(), productID, p.ID, &req)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseCreated(w, "Option created", option)
}

// Update handles PUT /api/products/{productId}/options/{id}
func (h *ProductOptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}
	productID, err := pathUUID(r, "productId")
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	var req request.ProductOptionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	option, err := h.service.Update(r.Context(), productID, id, p.ID, &req)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Option updated", option)
}

// Delete handles DELETE /api/products/{productId}/options/{id}
func (h *ProductOptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}
	productID, err := pathUUID(r, "productId")
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	if err := h.service.Delete(r.Context(), productID, id, p.ID); err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Option deleted", nil)
}
