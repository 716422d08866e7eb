package service

import (
	"context"

	"dscr-calculator/domain"
)

// DSCRService orchestrates the full calculation: it resolves the loan
// amount, merges automatic estimates with manual overrides, runs the
// operating-expense pipeline, and assembles the final result record.
type DSCRService struct {
	rent         *RentService
	tax          *TaxService
	amortization *AmortizationService
	ai           *AIService
}

func NewDSCRService(
	rent *RentService,
	tax *TaxService,
	amortization *AmortizationService,
	ai *AIService,
) *DSCRService {
	return &DSCRService{rent: rent, tax: tax, amortization: amortization, ai: ai}
}

// Calculate validates the input and runs the DSCR pipeline. The only error
// surfaced is a *domain.ValidationError naming the offending field; once
// validation passes the computation is total.
func (s *DSCRService) Calculate(
	ctx context.Context,
	input domain.CalculationInput,
) (domain.CalculationResult, error) {

	if err := validateInput(input); err != nil {
		return domain.CalculationResult{}, err
	}

	price := input.Property.PurchasePrice

	loanAmount, dpAmount, dpPercent := resolveLoanAmount(domain.LoanTerms{
		PurchasePrice:      price,
		DownPaymentAmount:  input.DownPaymentAmount,
		DownPaymentPercent: input.DownPaymentPercent,
		InterestRateAnnual: input.InterestRateAnnual,
		TermYears:          input.TermYears,
		InterestOnly:       input.InterestOnly,
	})

	// Rent: manual override wins, but the heuristic estimate still provides
	// the band and confidence context. The estimator cannot fail here
	// because the price has already been validated.
	estimate, _ := s.rent.EstimateRent(input.Property)
	monthlyRent := estimate.Monthly
	rentSource := "auto"
	if input.ManualRent != nil {
		monthlyRent = *input.ManualRent
		rentSource = "manual"
		estimate.Assumptions = append(estimate.Assumptions,
			"Manual rent override supplied - automatic estimate shown for reference only")
	}

	taxAnnual, taxSource, taxAccuracy, scDetail := s.resolveTax(ctx, input)

	opexRatio := DefaultOperatingExpenseRatio
	if input.OperatingExpenseRatio != nil {
		opexRatio = *input.OperatingExpenseRatio
	}
	insurance := DefaultInsuranceMonthly
	if input.InsuranceMonthly != nil {
		insurance = *input.InsuranceMonthly
	}

	egiMonthly := monthlyRent * (1 - input.VacancyRate)
	taxMonthly := taxAnnual / 12
	opexMonthly := egiMonthly*opexRatio + insurance + taxMonthly + input.HOAMonthly
	noiMonthly := egiMonthly - opexMonthly
	noiAnnual := noiMonthly * 12

	// Inputs are validated, so the amortization engine cannot fail.
	debtService, _ := s.amortization.MonthlyPayment(
		loanAmount, input.InterestRateAnnual, input.TermYears, input.InterestOnly)

	var dscr *float64
	var risk domain.RiskLabel
	if debtService > 0 {
		value := noiAnnual / (debtService * 12)
		dscr = &value
		risk = riskLabel(value)
	}

	result := domain.CalculationResult{
		Address:       input.Property.Address,
		PurchasePrice: price,

		DownPaymentAmount:  dpAmount,
		DownPaymentPercent: dpPercent,
		LoanAmount:         loanAmount,
		InterestRateAnnual: input.InterestRateAnnual,
		TermYears:          input.TermYears,
		InterestOnly:       input.InterestOnly,

		EstimatedMonthlyRent: monthlyRent,
		LowEstimateRent:      estimate.Low,
		HighEstimateRent:     estimate.High,
		ConfidenceScore:      estimate.ConfidenceScore,
		Assumptions:          estimate.Assumptions,
		RentSource:           rentSource,

		VacancyRate:           input.VacancyRate,
		OperatingExpenseRatio: opexRatio,
		InsuranceMonthly:      insurance,
		HOAMonthly:            input.HOAMonthly,

		PropertyTaxAnnual:  taxAnnual,
		PropertyTaxMonthly: taxMonthly,
		TaxSource:          taxSource,
		TaxAccuracy:        taxAccuracy,
		SCTaxDetail:        scDetail,

		EffectiveGrossIncomeMonthly: egiMonthly,
		OperatingExpensesMonthly:    opexMonthly,
		NOIMonthly:                  noiMonthly,
		NOIAnnual:                   noiAnnual,

		MonthlyDebtService: debtService,
		AnnualDebtService:  debtService * 12,

		DSCR:            dscr,
		RiskLabel:       risk,
		MonthlyCashflow: noiMonthly - debtService,

		Disclaimer: Disclaimer,
	}

	result.InputsSummary = buildInputsSummary(&result)
	result.HumanSummary = buildHumanSummary(&result)
	result.NotesForInvestor = s.ai.EnhanceInvestorNotes(&result, buildInvestorNotes(&result))

	return result, nil
}

// resolveTax picks the tax figure: manual override, then the deterministic
// SC county calculation, then the generic fallback rate.
func (s *DSCRService) resolveTax(
	ctx context.Context,
	input domain.CalculationInput,
) (annual float64, source domain.TaxSource, accuracy domain.TaxAccuracy, detail *domain.TaxAssessment) {

	if input.ManualTaxesAnnual != nil {
		return *input.ManualTaxesAnnual, domain.TaxSourceManual, domain.TaxAccuracyNotApplicable, nil
	}

	if record, ok := s.tax.ResolveCounty(ctx, input.Property.Address); ok {
		assessment, err := s.tax.ComputeTax(input.Property.PurchasePrice, record)
		if err == nil {
			return assessment.AnnualTaxes, domain.TaxSourceAuto, domain.TaxAccuracyOK, &assessment
		}
	}

	return input.Property.PurchasePrice * DefaultAnnualTaxRate,
		domain.TaxSourceAuto, domain.TaxAccuracyEstimated, nil
}

// resolveLoanAmount applies the documented default-resolution order:
// explicit amount, then explicit percent, then the 20% default. The
// resulting loan amount always lies in [0, purchase price].
func resolveLoanAmount(terms domain.LoanTerms) (loan, dpAmount, dpPercent float64) {
	price := terms.PurchasePrice

	switch {
	case terms.DownPaymentAmount != nil && *terms.DownPaymentAmount > 0:
		dpAmount = *terms.DownPaymentAmount
		dpPercent = dpAmount / price
	case terms.DownPaymentPercent != nil && *terms.DownPaymentPercent > 0:
		dpPercent = *terms.DownPaymentPercent
		dpAmount = price * dpPercent
	default:
		dpPercent = DefaultDownPaymentPercent
		dpAmount = price * dpPercent
	}

	return price - dpAmount, dpAmount, dpPercent
}

// riskLabel is a pure function of DSCR with fixed thresholds.
func riskLabel(dscr float64) domain.RiskLabel {
	switch {
	case dscr >= RiskStrongMin:
		return domain.RiskStrong
	case dscr >= RiskBorderlineMin:
		return domain.RiskBorderline
	default:
		return domain.RiskWeak
	}
}

// validateInput rejects out-of-range inputs before any computation runs,
// reporting the first offending field.
func validateInput(input domain.CalculationInput) error {
	p := input.Property

	if p.Address == "" {
		return domain.NewValidationError("address", "is required")
	}
	if p.PurchasePrice <= 0 {
		return domain.NewValidationError("purchase_price", "must be a positive amount")
	}
	if p.PurchasePrice > MaxPurchasePrice {
		return domain.NewValidationError("purchase_price", "exceeds the maximum supported amount")
	}
	if input.DownPaymentAmount != nil &&
		(*input.DownPaymentAmount < 0 || *input.DownPaymentAmount > p.PurchasePrice) {
		return domain.NewValidationError("down_payment_amount", "must be between 0 and the purchase price")
	}
	if input.DownPaymentPercent != nil &&
		(*input.DownPaymentPercent < 0 || *input.DownPaymentPercent > 1) {
		return domain.NewValidationError("down_payment_percent", "must be a decimal between 0 and 1")
	}
	if input.InterestRateAnnual < 0 {
		return domain.NewValidationError("interest_rate_annual", "must not be negative")
	}
	if input.InterestRateAnnual > MaxInterestRate {
		return domain.NewValidationError("interest_rate_annual", "exceeds the maximum supported rate")
	}
	if input.TermYears <= 0 {
		return domain.NewValidationError("term_years", "must be a positive number of years")
	}
	if input.TermYears > MaxTermYears {
		return domain.NewValidationError("term_years", "exceeds the maximum supported term")
	}
	if input.VacancyRate < 0 || input.VacancyRate > MaxVacancyRate {
		return domain.NewValidationError("vacancy_rate", "must be a decimal between 0 and 0.99")
	}
	if input.OperatingExpenseRatio != nil &&
		(*input.OperatingExpenseRatio < 0 || *input.OperatingExpenseRatio >= 1) {
		return domain.NewValidationError("operating_expense_ratio", "must be a decimal below 1")
	}
	if input.InsuranceMonthly != nil && *input.InsuranceMonthly < 0 {
		return domain.NewValidationError("insurance_monthly", "must not be negative")
	}
	if input.HOAMonthly < 0 {
		return domain.NewValidationError("hoa_monthly", "must not be negative")
	}
	if input.ManualRent != nil && *input.ManualRent <= 0 {
		return domain.NewValidationError("manual_rent", "must be a positive amount")
	}
	if input.ManualTaxesAnnual != nil && *input.ManualTaxesAnnual < 0 {
		return domain.NewValidationError("manual_taxes_annual", "must not be negative")
	}
	if p.Beds != nil && *p.Beds < 0 {
		return domain.NewValidationError("beds", "must not be negative")
	}
	if p.Baths != nil && *p.Baths < 0 {
		return domain.NewValidationError("baths", "must not be negative")
	}
	if p.Sqft != nil && *p.Sqft <= 0 {
		return domain.NewValidationError("sqft", "must be a positive number")
	}
	return nil
}
