package domain

// RentEstimate is the output of the rent estimation heuristic. Low and High
// bound the point estimate and ConfidenceScore is capped well below 1.0
// because no live market data backs the estimate.
type RentEstimate struct {
	Monthly         float64  `json:"estimated_monthly_rent"`
	Low             float64  `json:"low_estimate_rent"`
	High            float64  `json:"high_estimate_rent"`
	ConfidenceScore float64  `json:"confidence_score"`
	Assumptions     []string `json:"assumptions"`
}
