package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dscr-calculator/domain"
)

func newTestDSCRService() *DSCRService {
	return NewDSCRService(
		NewRentService(DefaultRentPolicy()),
		newTestTaxService(),
		NewAmortizationService(),
		NewAIService(""), // disabled; investor notes stay deterministic
	)
}

func baseInput() domain.CalculationInput {
	return domain.CalculationInput{
		Property: domain.PropertyInput{
			Address:       "123 Ocean Blvd, Myrtle Beach, SC 29577",
			PurchasePrice: 400_000,
		},
		DownPaymentPercent: ptr(0.25),
		InterestRateAnnual: 0.07,
		TermYears:          30,
		VacancyRate:        0.05,
	}
}

func TestCalculate_MyrtleBeachEndToEnd(t *testing.T) {
	s := newTestDSCRService()

	result, err := s.Calculate(context.Background(), baseInput())
	require.NoError(t, err)

	assert.Equal(t, 100_000.0, result.DownPaymentAmount)
	assert.Equal(t, 300_000.0, result.LoanAmount)
	assert.InDelta(t, 1995.91, result.MonthlyDebtService, 0.5)
	assert.InDelta(t, 12*result.MonthlyDebtService, result.AnnualDebtService, 0.001)

	// SC address resolves to the deterministic county formula.
	assert.Equal(t, domain.TaxSourceAuto, result.TaxSource)
	assert.Equal(t, domain.TaxAccuracyOK, result.TaxAccuracy)
	require.NotNil(t, result.SCTaxDetail)
	assert.Equal(t, "Horry County", result.SCTaxDetail.CountyName)
	assert.InDelta(t, 4615.20, result.PropertyTaxAnnual, 0.01)

	// Pipeline identities hold between the reported intermediates.
	egi := result.EstimatedMonthlyRent * (1 - result.VacancyRate)
	assert.InDelta(t, egi, result.EffectiveGrossIncomeMonthly, 0.001)
	opex := egi*result.OperatingExpenseRatio +
		result.InsuranceMonthly + result.PropertyTaxMonthly + result.HOAMonthly
	assert.InDelta(t, opex, result.OperatingExpensesMonthly, 0.001)
	assert.InDelta(t, egi-opex, result.NOIMonthly, 0.001)
	assert.InDelta(t, 12*result.NOIMonthly, result.NOIAnnual, 0.001)

	require.NotNil(t, result.DSCR)
	assert.InDelta(t, result.NOIAnnual/result.AnnualDebtService, *result.DSCR, 1e-9)
	assert.InDelta(t, result.NOIMonthly-result.MonthlyDebtService, result.MonthlyCashflow, 0.001)

	// Defaults applied where the input was silent.
	assert.Equal(t, DefaultOperatingExpenseRatio, result.OperatingExpenseRatio)
	assert.Equal(t, DefaultInsuranceMonthly, result.InsuranceMonthly)
	assert.Equal(t, "auto", result.RentSource)

	assert.NotEmpty(t, result.InputsSummary)
	assert.NotEmpty(t, result.HumanSummary)
	assert.NotEmpty(t, result.NotesForInvestor)
	assert.Equal(t, Disclaimer, result.Disclaimer)
}

func TestRiskLabelThresholds(t *testing.T) {
	assert.Equal(t, domain.RiskStrong, riskLabel(1.30))
	assert.Equal(t, domain.RiskStrong, riskLabel(2.5))
	assert.Equal(t, domain.RiskBorderline, riskLabel(1.299999))
	assert.Equal(t, domain.RiskBorderline, riskLabel(1.10))
	assert.Equal(t, domain.RiskWeak, riskLabel(1.099999))
	assert.Equal(t, domain.RiskWeak, riskLabel(0.2))
}

func TestCalculate_CashPurchaseHasNoDSCR(t *testing.T) {
	s := newTestDSCRService()

	input := baseInput()
	input.DownPaymentPercent = ptr(1.0)

	result, err := s.Calculate(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.LoanAmount)
	assert.Equal(t, 0.0, result.MonthlyDebtService)
	assert.Nil(t, result.DSCR)
	assert.Empty(t, result.RiskLabel)
	assert.InDelta(t, result.NOIMonthly, result.MonthlyCashflow, 0.001)
}

func TestCalculate_ManualOverrides(t *testing.T) {
	s := newTestDSCRService()

	input := baseInput()
	input.ManualRent = ptr(2600.0)
	input.ManualTaxesAnnual = ptr(5000.0)

	result, err := s.Calculate(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 2600.0, result.EstimatedMonthlyRent)
	assert.Equal(t, "manual", result.RentSource)
	// The heuristic band survives as reference context.
	assert.Greater(t, result.HighEstimateRent, result.LowEstimateRent)
	assert.Contains(t, result.Assumptions[len(result.Assumptions)-1], "Manual rent override")

	assert.Equal(t, 5000.0, result.PropertyTaxAnnual)
	assert.InDelta(t, 5000.0/12, result.PropertyTaxMonthly, 0.001)
	assert.Equal(t, domain.TaxSourceManual, result.TaxSource)
	assert.Equal(t, domain.TaxAccuracyNotApplicable, result.TaxAccuracy)
	assert.Nil(t, result.SCTaxDetail)
}

func TestCalculate_OutOfStateFallsBackToGenericTax(t *testing.T) {
	s := newTestDSCRService()

	input := baseInput()
	input.Property.Address = "456 Elm St, Nashville, TN 37201"

	result, err := s.Calculate(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, domain.TaxSourceAuto, result.TaxSource)
	assert.Equal(t, domain.TaxAccuracyEstimated, result.TaxAccuracy)
	assert.Nil(t, result.SCTaxDetail)
	assert.InDelta(t, 400_000*DefaultAnnualTaxRate, result.PropertyTaxAnnual, 0.001)
}

func TestCalculate_DownPaymentAmountWinsOverPercent(t *testing.T) {
	s := newTestDSCRService()

	input := baseInput()
	input.DownPaymentAmount = ptr(80_000.0)
	input.DownPaymentPercent = ptr(0.50)

	result, err := s.Calculate(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 80_000.0, result.DownPaymentAmount)
	assert.Equal(t, 0.20, result.DownPaymentPercent)
	assert.Equal(t, 320_000.0, result.LoanAmount)
}

func TestCalculate_DefaultDownPayment(t *testing.T) {
	s := newTestDSCRService()

	input := baseInput()
	input.DownPaymentPercent = nil

	result, err := s.Calculate(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, DefaultDownPaymentPercent, result.DownPaymentPercent)
	assert.Equal(t, 320_000.0, result.LoanAmount)
}

func TestCalculate_ValidationErrors(t *testing.T) {
	s := newTestDSCRService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*domain.CalculationInput)
		field  string
	}{
		{"missing address", func(in *domain.CalculationInput) {
			in.Property.Address = ""
		}, "address"},
		{"zero price", func(in *domain.CalculationInput) {
			in.Property.PurchasePrice = 0
		}, "purchase_price"},
		{"price over cap", func(in *domain.CalculationInput) {
			in.Property.PurchasePrice = MaxPurchasePrice + 1
		}, "purchase_price"},
		{"down payment above price", func(in *domain.CalculationInput) {
			in.DownPaymentAmount = ptr(500_000.0)
		}, "down_payment_amount"},
		{"percent above one", func(in *domain.CalculationInput) {
			in.DownPaymentPercent = ptr(1.5)
		}, "down_payment_percent"},
		{"negative rate", func(in *domain.CalculationInput) {
			in.InterestRateAnnual = -0.01
		}, "interest_rate_annual"},
		{"rate over cap", func(in *domain.CalculationInput) {
			in.InterestRateAnnual = 1.5
		}, "interest_rate_annual"},
		{"zero term", func(in *domain.CalculationInput) {
			in.TermYears = 0
		}, "term_years"},
		{"term over cap", func(in *domain.CalculationInput) {
			in.TermYears = MaxTermYears + 1
		}, "term_years"},
		{"vacancy at 1", func(in *domain.CalculationInput) {
			in.VacancyRate = 1.0
		}, "vacancy_rate"},
		{"opex ratio at 1", func(in *domain.CalculationInput) {
			in.OperatingExpenseRatio = ptr(1.0)
		}, "operating_expense_ratio"},
		{"negative insurance", func(in *domain.CalculationInput) {
			in.InsuranceMonthly = ptr(-1.0)
		}, "insurance_monthly"},
		{"negative HOA", func(in *domain.CalculationInput) {
			in.HOAMonthly = -10
		}, "hoa_monthly"},
		{"zero manual rent", func(in *domain.CalculationInput) {
			in.ManualRent = ptr(0.0)
		}, "manual_rent"},
		{"negative manual taxes", func(in *domain.CalculationInput) {
			in.ManualTaxesAnnual = ptr(-100.0)
		}, "manual_taxes_annual"},
		{"negative beds", func(in *domain.CalculationInput) {
			in.Property.Beds = ptr(-1)
		}, "beds"},
		{"zero sqft", func(in *domain.CalculationInput) {
			in.Property.Sqft = ptr(0)
		}, "sqft"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseInput()
			tt.mutate(&input)

			_, err := s.Calculate(ctx, input)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestCalculate_InterestOnly(t *testing.T) {
	s := newTestDSCRService()

	input := baseInput()
	input.InterestOnly = true

	result, err := s.Calculate(context.Background(), input)
	require.NoError(t, err)

	assert.InDelta(t, 300_000*0.07/12, result.MonthlyDebtService, 0.01)
}
