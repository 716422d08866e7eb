package service

const (
	MaxPurchasePrice = 1_000_000_000.0 // sanity ceiling for price inputs
	MaxInterestRate  = 1.0             // 100% annual, as a decimal
	MaxTermYears     = 50
	MaxVacancyRate   = 0.99

	// Default resolution order for down payment: amount > percent > this.
	DefaultDownPaymentPercent = 0.20

	// Operating assumptions applied when the caller supplies none.
	DefaultOperatingExpenseRatio = 0.35
	DefaultInsuranceMonthly      = 150.0

	// Generic annual tax rate (1.2% of price) used when no SC county matches.
	DefaultAnnualTaxRate = 0.012

	// DSCR risk thresholds.
	RiskStrongMin     = 1.30
	RiskBorderlineMin = 1.10

	// Cashflow below this ($/month) is flagged as tight in investor notes.
	TightCashflowThreshold = 200.0
)
