package domain

// TaxAccuracy reports how the property tax figure was obtained.
type TaxAccuracy string

const (
	// TaxAccuracyOK means an SC county was resolved and its official
	// millage rate was applied.
	TaxAccuracyOK TaxAccuracy = "ok"
	// TaxAccuracyEstimated means no county matched and the generic
	// fallback rate was used.
	TaxAccuracyEstimated TaxAccuracy = "estimated"
	// TaxAccuracyNotApplicable means the caller supplied the tax manually.
	TaxAccuracyNotApplicable TaxAccuracy = "not_applicable"
)

// TaxSource distinguishes automatic from caller-supplied tax figures.
type TaxSource string

const (
	TaxSourceAuto   TaxSource = "auto"
	TaxSourceManual TaxSource = "manual"
)

// CountyTaxRecord is one row of the static SC millage table. Records are
// loaded once at startup and shared read-only across calculations.
type CountyTaxRecord struct {
	CountyName      string  `json:"county_name"`
	MillageRate     float64 `json:"millage_rate"`
	AssessmentRatio float64 `json:"assessment_ratio"`
}

// TaxAssessment is the deterministic output of the SC rental tax formula.
type TaxAssessment struct {
	CountyName      string  `json:"county_name"`
	MillageRate     float64 `json:"millage_rate"`
	AssessmentRatio float64 `json:"assessment_ratio"`
	TaxableValue    float64 `json:"taxable_value"`
	AnnualTaxes     float64 `json:"annual_taxes"`
	MonthlyTaxes    float64 `json:"monthly_taxes"`
}
