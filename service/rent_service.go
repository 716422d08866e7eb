package service

import (
	"fmt"
	"math"

	"dscr-calculator/domain"
)

// RentTier maps a purchase-price ceiling to a monthly rent ratio. Tiers are
// evaluated in order; the ratio is monotonically non-increasing with price
// (cheap properties historically rent above 1% of price per month, expensive
// ones below it).
type RentTier struct {
	MaxPrice float64 // exclusive upper bound; math.Inf(1) for the last tier
	Ratio    float64 // monthly rent as a fraction of purchase price
}

// RentPolicy collects every tunable constant of the rent heuristic so that
// recalibration never touches the estimation logic itself.
type RentPolicy struct {
	Tiers []RentTier

	PropertyTypeMultipliers map[domain.PropertyType]float64
	ConditionMultipliers    map[domain.Condition]float64

	// Size adjustment: larger homes rent for more in absolute terms but
	// less per square foot. Bounds apply after the per-unit deltas.
	SqftTiers         []RentTier // MaxPrice reused as max sqft
	BedsBaseline      int
	BedsPerRoomDelta  float64
	BedsBounds        [2]float64
	BathsBaseline     float64
	BathsPerBathDelta float64
	BathsBounds       [2]float64

	// Band half-widths around the point estimate.
	BandLow  float64
	BandHigh float64

	// Confidence model: base plus a fixed step per supplied optional
	// attribute, capped at MaxConfidence (< 1.0 always).
	BaseConfidence    float64
	ConfidenceStep    float64
	MaxConfidence     float64
	OptionalAttrCount int
}

// DefaultRentPolicy returns the calibrated policy constants. The price
// breakpoints and ratios are a documented policy choice, not a physical law.
func DefaultRentPolicy() RentPolicy {
	return RentPolicy{
		Tiers: []RentTier{
			{MaxPrice: 100_000, Ratio: 0.012},
			{MaxPrice: 250_000, Ratio: 0.010},
			{MaxPrice: 500_000, Ratio: 0.0085},
			{MaxPrice: 1_000_000, Ratio: 0.007},
			{MaxPrice: math.Inf(1), Ratio: 0.006},
		},
		PropertyTypeMultipliers: map[domain.PropertyType]float64{
			domain.PropertyTypeSFR:         1.00,
			domain.PropertyTypeCondo:       0.95,
			domain.PropertyTypeTownhouse:   0.95,
			domain.PropertyTypeMultiFamily: 1.00,
			domain.PropertyTypeOther:       1.00,
		},
		ConditionMultipliers: map[domain.Condition]float64{
			domain.ConditionExcellent: 1.10,
			domain.ConditionGood:      1.00,
			domain.ConditionAverage:   0.97,
			domain.ConditionPoor:      0.85,
			domain.ConditionFixer:     0.78,
		},
		SqftTiers: []RentTier{
			{MaxPrice: 1000, Ratio: 0.90},
			{MaxPrice: 1500, Ratio: 0.96},
			{MaxPrice: 2000, Ratio: 1.00},
			{MaxPrice: 2500, Ratio: 1.07},
			{MaxPrice: math.Inf(1), Ratio: 1.12},
		},
		BedsBaseline:      3,
		BedsPerRoomDelta:  0.03,
		BedsBounds:        [2]float64{0.88, 1.12},
		BathsBaseline:     2.0,
		BathsPerBathDelta: 0.04,
		BathsBounds:       [2]float64{0.94, 1.06},
		BandLow:           0.15,
		BandHigh:          0.15,
		BaseConfidence:    0.30,
		ConfidenceStep:    0.08,
		MaxConfidence:     0.70,
		OptionalAttrCount: 5,
	}
}

// RentService estimates monthly market rent from coarse property attributes.
// Estimates are heuristic only; every adjustment is surfaced as an
// assumption string for transparency.
type RentService struct {
	policy RentPolicy
}

func NewRentService(policy RentPolicy) *RentService {
	return &RentService{policy: policy}
}

// EstimateRent maps property attributes to a rent estimate with a low/high
// band and confidence score. Missing optional attributes degrade confidence
// but never block the estimate.
func (s *RentService) EstimateRent(input domain.PropertyInput) (domain.RentEstimate, error) {
	if input.PurchasePrice <= 0 {
		return domain.RentEstimate{}, domain.NewValidationError(
			"purchase_price", "must be a positive amount")
	}

	assumptions := []string{}

	ratio := s.baseRatio(input.PurchasePrice)
	rent := input.PurchasePrice * ratio
	assumptions = append(assumptions, fmt.Sprintf(
		"Base estimate at %.2f%% of purchase price per month", ratio*100))

	rent, assumptions = s.applyPropertyType(input, rent, assumptions)
	rent, assumptions = s.applyCondition(input, rent, assumptions)
	rent, assumptions = s.applySize(input, rent, assumptions)

	low := rent * (1 - s.policy.BandLow)
	high := rent * (1 + s.policy.BandHigh)

	confidence := s.confidence(input)
	assumptions = append(assumptions, fmt.Sprintf(
		"Range reflects -%.0f%%/+%.0f%% estimation band",
		s.policy.BandLow*100, s.policy.BandHigh*100))

	return domain.RentEstimate{
		Monthly:         roundTo2Decimals(rent),
		Low:             roundTo2Decimals(low),
		High:            roundTo2Decimals(high),
		ConfidenceScore: roundTo2Decimals(confidence),
		Assumptions:     assumptions,
	}, nil
}

// baseRatio returns the monthly rent ratio for a purchase price. Tiers are
// ordered by ascending price ceiling.
func (s *RentService) baseRatio(price float64) float64 {
	for _, tier := range s.policy.Tiers {
		if price < tier.MaxPrice {
			return tier.Ratio
		}
	}
	return s.policy.Tiers[len(s.policy.Tiers)-1].Ratio
}

func (s *RentService) applyPropertyType(
	input domain.PropertyInput,
	rent float64,
	assumptions []string,
) (float64, []string) {

	if input.PropertyType == nil {
		return rent, append(assumptions,
			"Property type not specified - assuming single-family residence")
	}

	multiplier, ok := s.policy.PropertyTypeMultipliers[*input.PropertyType]
	if !ok {
		multiplier = 1.0
	}
	if multiplier != 1.0 {
		assumptions = append(assumptions, fmt.Sprintf(
			"Adjusted for %s (%+.0f%%)", *input.PropertyType, (multiplier-1)*100))
	}
	if *input.PropertyType == domain.PropertyTypeMultiFamily {
		assumptions = append(assumptions,
			"Multi-family property - estimate is a per-unit average")
	}
	return rent * multiplier, assumptions
}

func (s *RentService) applyCondition(
	input domain.PropertyInput,
	rent float64,
	assumptions []string,
) (float64, []string) {

	if input.Condition == nil {
		return rent, append(assumptions,
			"Condition not specified - assuming average condition")
	}

	multiplier, ok := s.policy.ConditionMultipliers[*input.Condition]
	if !ok {
		multiplier = 1.0
	}
	if multiplier != 1.0 {
		assumptions = append(assumptions, fmt.Sprintf(
			"%s condition (%+.0f%% rent adjustment)", *input.Condition, (multiplier-1)*100))
	}
	return rent * multiplier, assumptions
}

// applySize folds sqft, beds, and baths into the estimate when present.
// Larger and higher-bedroom homes trend toward higher absolute rent but a
// lower rate per square foot, so the sqft tiers grow sublinearly.
func (s *RentService) applySize(
	input domain.PropertyInput,
	rent float64,
	assumptions []string,
) (float64, []string) {

	if input.Sqft != nil {
		sqft := float64(*input.Sqft)
		for _, tier := range s.policy.SqftTiers {
			if sqft < tier.MaxPrice {
				rent *= tier.Ratio
				break
			}
		}
		assumptions = append(assumptions, fmt.Sprintf(
			"Sized for %d sqft", *input.Sqft))
	}

	if input.Beds != nil {
		delta := float64(*input.Beds-s.policy.BedsBaseline) * s.policy.BedsPerRoomDelta
		multiplier := clamp(1+delta, s.policy.BedsBounds[0], s.policy.BedsBounds[1])
		rent *= multiplier
		assumptions = append(assumptions, fmt.Sprintf(
			"%d bedrooms vs %d-bed baseline", *input.Beds, s.policy.BedsBaseline))
	}

	if input.Baths != nil {
		delta := (*input.Baths - s.policy.BathsBaseline) * s.policy.BathsPerBathDelta
		multiplier := clamp(1+delta, s.policy.BathsBounds[0], s.policy.BathsBounds[1])
		rent *= multiplier
		assumptions = append(assumptions, fmt.Sprintf(
			"%.1f bathrooms vs %.1f-bath baseline", *input.Baths, s.policy.BathsBaseline))
	}

	return rent, assumptions
}

// confidence grows with each supplied optional attribute and is capped below
// 1.0: with no live market data the estimate never merits high confidence.
func (s *RentService) confidence(input domain.PropertyInput) float64 {
	supplied := 0
	if input.PropertyType != nil {
		supplied++
	}
	if input.Beds != nil {
		supplied++
	}
	if input.Baths != nil {
		supplied++
	}
	if input.Sqft != nil {
		supplied++
	}
	if input.Condition != nil {
		supplied++
	}

	confidence := s.policy.BaseConfidence + float64(supplied)*s.policy.ConfidenceStep
	return math.Min(confidence, s.policy.MaxConfidence)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
