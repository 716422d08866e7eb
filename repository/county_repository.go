package repository

import "dscr-calculator/domain"

// CountyRateRepository exposes the static South Carolina reference data used
// by the tax resolver: the county millage table plus the ZIP and city lookup
// indexes into it. Implementations are read-only after construction and safe
// for concurrent use.
type CountyRateRepository interface {
	// ByCounty returns the tax record for an exact county name.
	ByCounty(name string) (domain.CountyTaxRecord, bool)
	// CountyForZIP maps a 5-digit ZIP code to a county name.
	CountyForZIP(zip string) (string, bool)
	// CountyForCity maps a normalized (upper-case) city name to a county name.
	CountyForCity(city string) (string, bool)
	// Cities lists all known normalized city names.
	Cities() []string
	// Counties lists all county names in the millage table.
	Counties() []string
}
