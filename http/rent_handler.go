package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"dscr-calculator/service"
)

type rentEstimateRequest struct {
	Address       string   `json:"address" validate:"required"`
	PurchasePrice float64  `json:"purchase_price" validate:"required,gt=0"`
	PropertyType  *string  `json:"property_type"`
	Beds          *int     `json:"beds" validate:"omitempty,gte=0"`
	Baths         *float64 `json:"baths" validate:"omitempty,gte=0"`
	Sqft          *int     `json:"sqft" validate:"omitempty,gt=0"`
	Condition     *string  `json:"condition"`
}

// RentHandler serves the standalone rent estimation endpoint.
type RentHandler struct {
	service  *service.RentService
	validate *validator.Validate
}

func NewRentHandler(service *service.RentService) *RentHandler {
	return &RentHandler{service: service, validate: newValidator()}
}

func (h *RentHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if !requireJSONPost(w, r) {
		return
	}

	var req rentEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeRequestError(w, err)
		return
	}

	property, err := buildPropertyInput(
		req.Address, req.PurchasePrice, req.PropertyType, req.Beds, req.Baths, req.Sqft, req.Condition)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	estimate, err := h.service.EstimateRent(property)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, estimate)
}
