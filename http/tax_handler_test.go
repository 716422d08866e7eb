package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"dscr-calculator/repository"
	"dscr-calculator/service"
)

func newTestTaxHandler() *TaxHandler {
	return NewTaxHandler(service.NewTaxService(
		repository.NewCountyRateRepositoryMemory(),
		repository.NewMockCache(),
	))
}

func TestTaxCalculateHandler_ResolvedCounty(t *testing.T) {
	handler := newTestTaxHandler()

	body := []byte(`{"address": "Myrtle Beach, SC 29577", "purchase_price": 400000}`)
	w := postJSON(handler.Calculate, "/tax/calculate", body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp taxCalculateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.TaxAccuracy != "ok" {
		t.Fatalf("expected tax accuracy ok, got %q", resp.TaxAccuracy)
	}
	if resp.CountyName == nil || *resp.CountyName != "Horry County" {
		t.Errorf("expected Horry County, got %v", resp.CountyName)
	}
	if resp.AnnualTaxes == nil || *resp.AnnualTaxes < 4615.19 || *resp.AnnualTaxes > 4615.21 {
		t.Errorf("expected annual taxes near 4615.20, got %v", resp.AnnualTaxes)
	}
}

func TestTaxCalculateHandler_CountyNotFound(t *testing.T) {
	handler := newTestTaxHandler()

	body := []byte(`{"address": "Reno, NV 89501", "purchase_price": 400000}`)
	w := postJSON(handler.Calculate, "/tax/calculate", body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp taxCalculateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.TaxAccuracy != "county_not_found" {
		t.Errorf("expected county_not_found, got %q", resp.TaxAccuracy)
	}
	if resp.CountyName != nil {
		t.Errorf("expected null county name, got %q", *resp.CountyName)
	}
}

func TestRentEstimateHandler_OK(t *testing.T) {
	handler := NewRentHandler(service.NewRentService(service.DefaultRentPolicy()))

	body := []byte(`{
		"address": "Conway, SC",
		"purchase_price": 250000,
		"beds": 3,
		"baths": 2,
		"condition": "Good"
	}`)
	w := postJSON(handler.Estimate, "/rent/estimate", body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var estimate struct {
		Monthly         float64 `json:"estimated_monthly_rent"`
		Low             float64 `json:"low_estimate_rent"`
		High            float64 `json:"high_estimate_rent"`
		ConfidenceScore float64 `json:"confidence_score"`
	}
	if err := json.NewDecoder(w.Body).Decode(&estimate); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if estimate.Monthly <= 0 {
		t.Errorf("expected a positive estimate, got %v", estimate.Monthly)
	}
	if estimate.Low > estimate.Monthly || estimate.Monthly > estimate.High {
		t.Errorf("estimate %v outside band [%v, %v]", estimate.Monthly, estimate.Low, estimate.High)
	}
	if estimate.ConfidenceScore <= 0.30 {
		t.Errorf("expected confidence above the base, got %v", estimate.ConfidenceScore)
	}
}

func TestRentEstimateHandler_NonPositivePrice(t *testing.T) {
	handler := NewRentHandler(service.NewRentService(service.DefaultRentPolicy()))

	body := []byte(`{"address": "Conway, SC", "purchase_price": -5}`)
	w := postJSON(handler.Estimate, "/rent/estimate", body)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
