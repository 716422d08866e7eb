package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"dscr-calculator/domain"
	"dscr-calculator/service"
)

// Request-layer defaults for loan terms; everything else defaults inside
// the orchestrator.
const (
	defaultInterestRateAnnual = 0.07
	defaultTermYears          = 30
)

type calculateRequest struct {
	Address            string   `json:"address" validate:"required"`
	PurchasePrice      float64  `json:"purchase_price" validate:"required,gt=0"`
	DownPaymentAmount  *float64 `json:"down_payment_amount" validate:"omitempty,gte=0"`
	DownPaymentPercent *float64 `json:"down_payment_percent" validate:"omitempty,gte=0,lte=1"`
	InterestRateAnnual *float64 `json:"interest_rate_annual" validate:"omitempty,gte=0"`
	TermYears          *int     `json:"term_years" validate:"omitempty,gt=0"`
	InterestOnly       bool     `json:"interest_only"`

	PropertyType *string  `json:"property_type"`
	Beds         *int     `json:"beds" validate:"omitempty,gte=0"`
	Baths        *float64 `json:"baths" validate:"omitempty,gte=0"`
	Sqft         *int     `json:"sqft" validate:"omitempty,gt=0"`
	Condition    *string  `json:"condition"`

	VacancyRate           *float64 `json:"vacancy_rate" validate:"omitempty,gte=0,lt=1"`
	OperatingExpenseRatio *float64 `json:"operating_expense_ratio" validate:"omitempty,gte=0,lt=1"`
	InsuranceMonthly      *float64 `json:"insurance_monthly" validate:"omitempty,gte=0"`
	HOAMonthly            *float64 `json:"hoa_monthly" validate:"omitempty,gte=0"`

	ManualRent        *float64 `json:"manual_rent" validate:"omitempty,gt=0"`
	ManualTaxesAnnual *float64 `json:"manual_taxes_annual" validate:"omitempty,gte=0"`
}

// DSCRHandler serves the full rent + tax + DSCR calculation.
type DSCRHandler struct {
	service  *service.DSCRService
	validate *validator.Validate
}

func NewDSCRHandler(service *service.DSCRService) *DSCRHandler {
	return &DSCRHandler{service: service, validate: newValidator()}
}

func (h *DSCRHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if !requireJSONPost(w, r) {
		return
	}

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeRequestError(w, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	result, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (r calculateRequest) toInput() (domain.CalculationInput, error) {
	property, err := buildPropertyInput(
		r.Address, r.PurchasePrice, r.PropertyType, r.Beds, r.Baths, r.Sqft, r.Condition)
	if err != nil {
		return domain.CalculationInput{}, err
	}

	input := domain.CalculationInput{
		Property:              property,
		DownPaymentAmount:     r.DownPaymentAmount,
		DownPaymentPercent:    r.DownPaymentPercent,
		InterestRateAnnual:    defaultInterestRateAnnual,
		TermYears:             defaultTermYears,
		InterestOnly:          r.InterestOnly,
		OperatingExpenseRatio: r.OperatingExpenseRatio,
		InsuranceMonthly:      r.InsuranceMonthly,
		ManualRent:            r.ManualRent,
		ManualTaxesAnnual:     r.ManualTaxesAnnual,
	}
	if r.InterestRateAnnual != nil {
		input.InterestRateAnnual = *r.InterestRateAnnual
	}
	if r.TermYears != nil {
		input.TermYears = *r.TermYears
	}
	if r.VacancyRate != nil {
		input.VacancyRate = *r.VacancyRate
	}
	if r.HOAMonthly != nil {
		input.HOAMonthly = *r.HOAMonthly
	}
	return input, nil
}

// buildPropertyInput maps loose request strings onto the property enums,
// rejecting unrecognized values with the offending field named.
func buildPropertyInput(
	address string,
	purchasePrice float64,
	propertyType *string,
	beds *int,
	baths *float64,
	sqft *int,
	condition *string,
) (domain.PropertyInput, error) {

	property := domain.PropertyInput{
		Address:       address,
		PurchasePrice: purchasePrice,
		Beds:          beds,
		Baths:         baths,
		Sqft:          sqft,
	}

	if propertyType != nil {
		parsed, ok := parsePropertyType(*propertyType)
		if !ok {
			return domain.PropertyInput{}, domain.NewValidationError(
				"property_type", "must be one of SFR, Condo, Townhouse, Multi-family, Other")
		}
		property.PropertyType = &parsed
	}
	if condition != nil {
		parsed, ok := parseCondition(*condition)
		if !ok {
			return domain.PropertyInput{}, domain.NewValidationError(
				"condition", "must be one of Excellent, Good, Average, Poor, Fixer")
		}
		property.Condition = &parsed
	}
	return property, nil
}

func parsePropertyType(value string) (domain.PropertyType, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "SFR", "SINGLE FAMILY", "SINGLE-FAMILY":
		return domain.PropertyTypeSFR, true
	case "CONDO":
		return domain.PropertyTypeCondo, true
	case "TOWNHOUSE", "TOWNHOME":
		return domain.PropertyTypeTownhouse, true
	case "MULTI-FAMILY", "MULTIFAMILY", "DUPLEX", "TRIPLEX":
		return domain.PropertyTypeMultiFamily, true
	case "OTHER":
		return domain.PropertyTypeOther, true
	}
	return "", false
}

func parseCondition(value string) (domain.Condition, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "EXCELLENT":
		return domain.ConditionExcellent, true
	case "GOOD":
		return domain.ConditionGood, true
	case "AVERAGE":
		return domain.ConditionAverage, true
	case "POOR":
		return domain.ConditionPoor, true
	case "FIXER":
		return domain.ConditionFixer, true
	}
	return "", false
}
