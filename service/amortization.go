package service

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLoanTerms reports loan parameters outside their valid domain.
var ErrInvalidLoanTerms = errors.New("invalid loan terms")

// roundTo2Decimals rounds a float64 to 2 decimals.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// AmortizationService computes periodic debt-service payments. It is a pure
// calculator: no state, no I/O, deterministic for given inputs.
type AmortizationService struct{}

func NewAmortizationService() *AmortizationService {
	return &AmortizationService{}
}

// MonthlyPayment returns the monthly debt service for a loan.
//
// Interest-only loans pay loanAmount × annualRate/12 exactly. Fully
// amortized loans use the standard annuity formula; a zero rate degenerates
// to straight principal division.
func (s *AmortizationService) MonthlyPayment(
	loanAmount float64,
	annualRate float64,
	termYears int,
	interestOnly bool,
) (float64, error) {

	if loanAmount < 0 {
		return 0, fmt.Errorf("%w: loan amount must not be negative", ErrInvalidLoanTerms)
	}
	if annualRate < 0 {
		return 0, fmt.Errorf("%w: interest rate must not be negative", ErrInvalidLoanTerms)
	}
	if termYears <= 0 {
		return 0, fmt.Errorf("%w: term must be positive", ErrInvalidLoanTerms)
	}

	if loanAmount == 0 {
		return 0, nil
	}

	if interestOnly {
		return loanAmount * (annualRate / 12), nil
	}

	r := annualRate / 12
	n := float64(termYears * 12)

	if r == 0 {
		return loanAmount / n, nil
	}

	factor := math.Pow(1+r, n)
	return loanAmount * (r * factor) / (factor - 1), nil
}
