package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dscr-calculator/domain"
)

func ptr[T any](v T) *T { return &v }

func TestEstimateRent_RejectsNonPositivePrice(t *testing.T) {
	s := NewRentService(DefaultRentPolicy())

	for _, price := range []float64{0, -100} {
		_, err := s.EstimateRent(domain.PropertyInput{
			Address:       "123 Main St, Conway, SC",
			PurchasePrice: price,
		})
		require.Error(t, err)

		var validationErr *domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "purchase_price", validationErr.Field)
	}
}

func TestEstimateRent_BandBracketsPointEstimate(t *testing.T) {
	s := NewRentService(DefaultRentPolicy())

	inputs := []domain.PropertyInput{
		{Address: "a", PurchasePrice: 60_000},
		{Address: "b", PurchasePrice: 400_000, Beds: ptr(3), Baths: ptr(2.0), Sqft: ptr(1800)},
		{Address: "c", PurchasePrice: 2_500_000, Condition: ptr(domain.ConditionFixer)},
	}

	for _, input := range inputs {
		estimate, err := s.EstimateRent(input)
		require.NoError(t, err)
		assert.Greater(t, estimate.Low, 0.0)
		assert.LessOrEqual(t, estimate.Low, estimate.Monthly)
		assert.LessOrEqual(t, estimate.Monthly, estimate.High)
	}
}

// The rent-to-price ratio must never increase with purchase price.
func TestEstimateRent_RatioNonIncreasingWithPrice(t *testing.T) {
	s := NewRentService(DefaultRentPolicy())

	prices := []float64{50_000, 99_999, 150_000, 300_000, 750_000, 1_500_000}
	prevRatio := 1.0
	for _, price := range prices {
		estimate, err := s.EstimateRent(domain.PropertyInput{Address: "x", PurchasePrice: price})
		require.NoError(t, err)

		// Allow for the cent rounding applied to the point estimate.
		ratio := estimate.Monthly / price
		assert.LessOrEqual(t, ratio, prevRatio+1e-6, "ratio at price %.0f", price)
		prevRatio = ratio
	}
}

func TestEstimateRent_ConfidenceMonotoneAndCapped(t *testing.T) {
	s := NewRentService(DefaultRentPolicy())

	base := domain.PropertyInput{Address: "x", PurchasePrice: 400_000}
	steps := []func(*domain.PropertyInput){
		func(p *domain.PropertyInput) { p.PropertyType = ptr(domain.PropertyTypeSFR) },
		func(p *domain.PropertyInput) { p.Beds = ptr(3) },
		func(p *domain.PropertyInput) { p.Baths = ptr(2.0) },
		func(p *domain.PropertyInput) { p.Sqft = ptr(1800) },
		func(p *domain.PropertyInput) { p.Condition = ptr(domain.ConditionGood) },
	}

	prev := 0.0
	input := base
	for i, step := range steps {
		step(&input)
		estimate, err := s.EstimateRent(input)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, estimate.ConfidenceScore, prev,
			"confidence must not decrease after supplying attribute %d", i+1)
		assert.LessOrEqual(t, estimate.ConfidenceScore, 0.70)
		prev = estimate.ConfidenceScore
	}

	// All five attributes supplied hits the cap exactly.
	assert.Equal(t, 0.70, prev)
}

func TestEstimateRent_ConditionOrdering(t *testing.T) {
	s := NewRentService(DefaultRentPolicy())

	conditions := []domain.Condition{
		domain.ConditionExcellent,
		domain.ConditionGood,
		domain.ConditionAverage,
		domain.ConditionPoor,
		domain.ConditionFixer,
	}

	prev := 0.0
	for i, condition := range conditions {
		estimate, err := s.EstimateRent(domain.PropertyInput{
			Address:       "x",
			PurchasePrice: 400_000,
			Condition:     ptr(condition),
		})
		require.NoError(t, err)

		if i > 0 {
			assert.Less(t, estimate.Monthly, prev,
				"%s must rent below the next better condition", condition)
		}
		prev = estimate.Monthly
	}
}

func TestEstimateRent_RecordsAssumptions(t *testing.T) {
	s := NewRentService(DefaultRentPolicy())

	estimate, err := s.EstimateRent(domain.PropertyInput{
		Address:       "x",
		PurchasePrice: 400_000,
		PropertyType:  ptr(domain.PropertyTypeCondo),
		Condition:     ptr(domain.ConditionPoor),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, estimate.Assumptions)

	joined := ""
	for _, a := range estimate.Assumptions {
		joined += a + "; "
	}
	assert.Contains(t, joined, "Condo")
	assert.Contains(t, joined, "Poor")
}

func TestEstimateRent_MissingAttributesStillEstimates(t *testing.T) {
	s := NewRentService(DefaultRentPolicy())

	estimate, err := s.EstimateRent(domain.PropertyInput{
		Address:       "somewhere",
		PurchasePrice: 250_000,
	})
	require.NoError(t, err)
	assert.Greater(t, estimate.Monthly, 0.0)
	assert.Equal(t, 0.30, estimate.ConfidenceScore)
}
