package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"dscr-calculator/service"
)

type taxCalculateRequest struct {
	Address       string  `json:"address" validate:"required"`
	PurchasePrice float64 `json:"purchase_price" validate:"required,gt=0"`
}

// taxCalculateResponse mirrors the deterministic tax record shape; the
// pointer fields stay null when no county matched.
type taxCalculateResponse struct {
	CountyName      *string  `json:"county_name"`
	MillageRate     *float64 `json:"millage_rate"`
	AssessmentRatio *float64 `json:"assessment_ratio"`
	TaxableValue    *float64 `json:"taxable_value"`
	AnnualTaxes     *float64 `json:"annual_taxes"`
	MonthlyTaxes    *float64 `json:"monthly_taxes"`
	TaxAccuracy     string   `json:"tax_accuracy"`
}

// TaxHandler serves the standalone SC property tax endpoint.
type TaxHandler struct {
	service  *service.TaxService
	validate *validator.Validate
}

func NewTaxHandler(service *service.TaxService) *TaxHandler {
	return &TaxHandler{service: service, validate: newValidator()}
}

func (h *TaxHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if !requireJSONPost(w, r) {
		return
	}

	var req taxCalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeRequestError(w, err)
		return
	}

	record, ok := h.service.ResolveCounty(r.Context(), req.Address)
	if !ok {
		// Unresolved county is a flagged outcome, not an error.
		writeJSON(w, http.StatusOK, taxCalculateResponse{TaxAccuracy: "county_not_found"})
		return
	}

	assessment, err := h.service.ComputeTax(req.PurchasePrice, record)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, taxCalculateResponse{
		CountyName:      &assessment.CountyName,
		MillageRate:     &assessment.MillageRate,
		AssessmentRatio: &assessment.AssessmentRatio,
		TaxableValue:    &assessment.TaxableValue,
		AnnualTaxes:     &assessment.AnnualTaxes,
		MonthlyTaxes:    &assessment.MonthlyTaxes,
		TaxAccuracy:     "ok",
	})
}
