package domain

// LoanTerms describes the financing of a purchase. Exactly one of
// DownPaymentAmount or DownPaymentPercent is expected; when both are absent
// the orchestrator falls back to a 20% down payment. The resolved loan
// amount always lies in [0, PurchasePrice].
type LoanTerms struct {
	PurchasePrice      float64  `json:"purchase_price"`
	DownPaymentAmount  *float64 `json:"down_payment_amount,omitempty"`
	DownPaymentPercent *float64 `json:"down_payment_percent,omitempty"`
	InterestRateAnnual float64  `json:"interest_rate_annual"`
	TermYears          int      `json:"term_years"`
	InterestOnly       bool     `json:"interest_only"`
}
