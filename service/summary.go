package service

import (
	"fmt"
	"strings"

	"dscr-calculator/domain"
)

// Disclaimer accompanies every calculation result.
const Disclaimer = "IMPORTANT: This is a rough estimate based on general market " +
	"patterns and assumptions. It is NOT a substitute for professional property " +
	"appraisal, rental market analysis, or underwriting. Actual rental income may " +
	"vary significantly based on specific property features, local market conditions, " +
	"property management, and numerous other factors. Do NOT make investment decisions " +
	"based solely on this estimate. Always conduct thorough due diligence including " +
	"professional inspections, appraisals, and market research."

func buildInputsSummary(result *domain.CalculationResult) string {
	return fmt.Sprintf("%s | $%.0f purchase | %.0f%% down | %.2f%% rate | %dyr term",
		result.Address,
		result.PurchasePrice,
		result.DownPaymentPercent*100,
		result.InterestRateAnnual*100,
		result.TermYears)
}

func buildHumanSummary(result *domain.CalculationResult) string {
	direction := "positive"
	if result.MonthlyCashflow < 0 {
		direction = "negative"
	}
	cashflowText := fmt.Sprintf("$%.0f/month %s cashflow", abs(result.MonthlyCashflow), direction)

	if result.DSCR == nil {
		return fmt.Sprintf(
			"For %s, estimated market rent is $%.0f/month. This is a cash purchase "+
				"with no debt service, so DSCR does not apply; the property shows %s.",
			result.Address, result.EstimatedMonthlyRent, cashflowText)
	}

	summary := fmt.Sprintf(
		"For %s, estimated market rent is $%.0f/month. With the given loan terms "+
			"and operating assumptions, the property shows a DSCR of %.2f (%s rating) with %s. ",
		result.Address, result.EstimatedMonthlyRent, *result.DSCR, result.RiskLabel, cashflowText)

	switch {
	case *result.DSCR >= RiskStrongMin:
		summary += "This indicates strong debt coverage with healthy margin for unexpected expenses."
	case *result.DSCR >= RiskBorderlineMin:
		summary += "This indicates borderline debt coverage - carefully verify rent estimates and expenses."
	default:
		summary += "This indicates weak debt coverage - property may have negative cashflow or tight margins."
	}
	return summary
}

func buildInvestorNotes(result *domain.CalculationResult) string {
	notes := []string{}

	if result.ConfidenceScore < 0.6 && result.RentSource == "auto" {
		notes = append(notes, "LOW CONFIDENCE in rent estimate due to limited property information.")
	}
	if result.DSCR != nil && *result.DSCR < RiskBorderlineMin {
		notes = append(notes, "CAUTION: DSCR below 1.10 indicates property may not generate sufficient income to cover debt.")
	}
	if result.MonthlyCashflow < 0 {
		notes = append(notes, "WARNING: Projected negative monthly cashflow. Property would require ongoing capital contributions.")
	} else if result.MonthlyCashflow < TightCashflowThreshold {
		notes = append(notes, "Tight cashflow margins - ensure reserve funds for repairs and vacancies.")
	}
	if result.TaxAccuracy == domain.TaxAccuracyEstimated {
		notes = append(notes, fmt.Sprintf("Property tax uses a generic %.1f%% rate - no county match for this address; verify with the local assessor.", DefaultAnnualTaxRate*100))
	}

	notes = append(notes,
		"Verify actual rents with local property managers or recent comparable leases.",
		"Consider getting professional appraisal and rent study before proceeding.",
		fmt.Sprintf("Operating expense ratio of %.0f%% is an estimate - verify actual costs for this property.", result.OperatingExpenseRatio*100),
		fmt.Sprintf("Insurance estimate of $%.0f/month is generic - get actual quote for this property.", result.InsuranceMonthly),
	)

	return strings.Join(notes, " ")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
