package domain

// RiskLabel buckets a DSCR value for quick reading.
type RiskLabel string

const (
	RiskStrong     RiskLabel = "Strong"
	RiskBorderline RiskLabel = "Borderline"
	RiskWeak       RiskLabel = "Weak"
)

// CalculationInput is the full request for a DSCR calculation. Optional
// fields are pointers so that "absent" and "zero" stay distinguishable;
// default resolution order is documented per field.
type CalculationInput struct {
	Property PropertyInput `json:"property"`

	// Down payment: amount takes precedence over percent; when both are
	// absent a 20% down payment is assumed.
	DownPaymentAmount  *float64 `json:"down_payment_amount,omitempty"`
	DownPaymentPercent *float64 `json:"down_payment_percent,omitempty"`

	InterestRateAnnual float64 `json:"interest_rate_annual"`
	TermYears          int     `json:"term_years"`
	InterestOnly       bool    `json:"interest_only"`

	VacancyRate           float64  `json:"vacancy_rate"`
	OperatingExpenseRatio *float64 `json:"operating_expense_ratio,omitempty"` // default 0.35
	InsuranceMonthly      *float64 `json:"insurance_monthly,omitempty"`       // default $150
	HOAMonthly            float64  `json:"hoa_monthly"`

	// Manual overrides; when present they replace the automatic estimates.
	ManualRent        *float64 `json:"manual_rent,omitempty"`
	ManualTaxesAnnual *float64 `json:"manual_taxes_annual,omitempty"`
}

// CalculationResult aggregates the resolved inputs and every intermediate of
// the DSCR pipeline. It is built once per invocation and never mutated.
type CalculationResult struct {
	Address       string  `json:"address"`
	PurchasePrice float64 `json:"purchase_price"`

	DownPaymentAmount  float64 `json:"down_payment_amount"`
	DownPaymentPercent float64 `json:"down_payment_percent"`
	LoanAmount         float64 `json:"loan_amount"`
	InterestRateAnnual float64 `json:"interest_rate_annual"`
	TermYears          int     `json:"term_years"`
	InterestOnly       bool    `json:"interest_only"`

	EstimatedMonthlyRent float64  `json:"estimated_monthly_rent"`
	LowEstimateRent      float64  `json:"low_estimate_rent"`
	HighEstimateRent     float64  `json:"high_estimate_rent"`
	ConfidenceScore      float64  `json:"confidence_score"`
	Assumptions          []string `json:"assumptions"`
	RentSource           string   `json:"rent_source"` // "auto" or "manual"

	VacancyRate           float64 `json:"vacancy_rate"`
	OperatingExpenseRatio float64 `json:"operating_expense_ratio"`
	InsuranceMonthly      float64 `json:"insurance_monthly"`
	HOAMonthly            float64 `json:"hoa_monthly"`

	PropertyTaxAnnual  float64        `json:"property_tax_annual"`
	PropertyTaxMonthly float64        `json:"property_tax_monthly"`
	TaxSource          TaxSource      `json:"tax_source"`
	TaxAccuracy        TaxAccuracy    `json:"tax_accuracy"`
	SCTaxDetail        *TaxAssessment `json:"sc_tax_detail,omitempty"`

	EffectiveGrossIncomeMonthly float64 `json:"effective_gross_income_monthly"`
	OperatingExpensesMonthly    float64 `json:"operating_expenses_monthly"`
	NOIMonthly                  float64 `json:"noi_monthly"`
	NOIAnnual                   float64 `json:"noi_annual"`

	MonthlyDebtService float64 `json:"monthly_debt_service"`
	AnnualDebtService  float64 `json:"annual_debt_service"`

	// DSCR is nil for a cash purchase (zero debt service); callers must
	// special-case display rather than read a substitute number.
	DSCR            *float64  `json:"dscr"`
	RiskLabel       RiskLabel `json:"risk_label,omitempty"`
	MonthlyCashflow float64   `json:"monthly_cashflow"`

	InputsSummary    string `json:"inputs_summary"`
	HumanSummary     string `json:"human_summary"`
	NotesForInvestor string `json:"notes_for_investor"`
	Disclaimer       string `json:"disclaimer"`
}
