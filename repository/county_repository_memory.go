package repository

import (
	"sort"
	"strings"

	"dscr-calculator/domain"
)

// scAssessmentRatio is the fixed SC assessment ratio for rental property (6%).
const scAssessmentRatio = 0.06

// scMillageRates is the versioned reference table of county millage rates.
// Values are reference data, not logic; updating a rate must never require a
// code change elsewhere.
var scMillageRates = map[string]float64{
	"Horry County":       0.1923,
	"Charleston County":  0.2410,
	"Greenville County":  0.2738,
	"Richland County":    0.3345,
	"York County":        0.2244,
	"Spartanburg County": 0.2876,
	"Florence County":    0.2995,
	"Beaufort County":    0.1821,
	"Georgetown County":  0.2108,
	"Dorchester County":  0.2685,
	"Berkeley County":    0.2492,
	"Lexington County":   0.2851,
	"Pickens County":     0.2130,
	"Anderson County":    0.2417,
	"Aiken County":       0.2659,
	"Sumter County":      0.3123,
}

// scZIPToCounty maps SC 5-digit ZIP codes to counties. A ZIP match always
// wins over a city-name match.
var scZIPToCounty = map[string]string{
	"29577": "Horry County", "29572": "Horry County", "29575": "Horry County",
	"29566": "Horry County", "29582": "Horry County", "29526": "Horry County",
	"29401": "Charleston County", "29403": "Charleston County", "29407": "Charleston County",
	"29412": "Charleston County", "29451": "Charleston County", "29464": "Charleston County",
	"29601": "Greenville County", "29605": "Greenville County", "29607": "Greenville County",
	"29650": "Greenville County", "29681": "Greenville County",
	"29201": "Richland County", "29203": "Richland County", "29210": "Richland County",
	"29223": "Richland County",
	"29730": "York County", "29732": "York County",
	"29301": "Spartanburg County", "29303": "Spartanburg County",
	"29501": "Florence County", "29505": "Florence County",
	"29902": "Beaufort County", "29910": "Beaufort County",
	"29926": "Beaufort County", "29928": "Beaufort County",
	"29440": "Georgetown County", "29585": "Georgetown County",
	"29483": "Dorchester County", "29485": "Dorchester County",
	"29445": "Berkeley County", "29461": "Berkeley County",
	"29072": "Lexington County", "29073": "Lexington County", "29063": "Lexington County",
	"29631": "Pickens County", "29640": "Pickens County",
	"29621": "Anderson County", "29624": "Anderson County",
	"29801": "Aiken County", "29803": "Aiken County",
	"29150": "Sumter County",
}

// scCityToCounty maps normalized SC city and town names to counties.
var scCityToCounty = map[string]string{
	"CHARLESTON":         "Charleston County",
	"NORTH CHARLESTON":   "Charleston County",
	"MOUNT PLEASANT":     "Charleston County",
	"FOLLY BEACH":        "Charleston County",
	"ISLE OF PALMS":      "Charleston County",
	"SULLIVANS ISLAND":   "Charleston County",
	"JOHNS ISLAND":       "Charleston County",
	"JAMES ISLAND":       "Charleston County",
	"DANIEL ISLAND":      "Charleston County",
	"KIAWAH ISLAND":      "Charleston County",
	"SEABROOK ISLAND":    "Charleston County",
	"COLUMBIA":           "Richland County",
	"FOREST ACRES":       "Richland County",
	"GREENVILLE":         "Greenville County",
	"GREER":              "Greenville County",
	"SIMPSONVILLE":       "Greenville County",
	"MAULDIN":            "Greenville County",
	"MYRTLE BEACH":       "Horry County",
	"NORTH MYRTLE BEACH": "Horry County",
	"LITTLE RIVER":       "Horry County",
	"SURFSIDE BEACH":     "Horry County",
	"GARDEN CITY":        "Horry County",
	"CONWAY":             "Horry County",
	"PAWLEYS ISLAND":     "Georgetown County",
	"MURRELLS INLET":     "Georgetown County",
	"GEORGETOWN":         "Georgetown County",
	"HILTON HEAD":        "Beaufort County",
	"HILTON HEAD ISLAND": "Beaufort County",
	"BLUFFTON":           "Beaufort County",
	"BEAUFORT":           "Beaufort County",
	"ROCK HILL":          "York County",
	"SUMMERVILLE":        "Dorchester County",
	"SPARTANBURG":        "Spartanburg County",
	"FLORENCE":           "Florence County",
	"ANDERSON":           "Anderson County",
	"AIKEN":              "Aiken County",
	"SUMTER":             "Sumter County",
	"GOOSE CREEK":        "Berkeley County",
	"HANAHAN":            "Berkeley County",
	"LEXINGTON":          "Lexington County",
	"WEST COLUMBIA":      "Lexington County",
	"CAYCE":              "Lexington County",
	"IRMO":               "Lexington County",
	"CLEMSON":            "Pickens County",
	"EASLEY":             "Pickens County",
}

// CountyRateRepositoryMemory serves the SC reference tables from memory.
// It is immutable after construction and safe for unsynchronized reads.
type CountyRateRepositoryMemory struct {
	records map[string]domain.CountyTaxRecord
	zips    map[string]string
	cities  map[string]string
}

// NewCountyRateRepositoryMemory builds the in-memory SC reference tables.
func NewCountyRateRepositoryMemory() *CountyRateRepositoryMemory {
	records := make(map[string]domain.CountyTaxRecord, len(scMillageRates))
	for county, millage := range scMillageRates {
		records[county] = domain.CountyTaxRecord{
			CountyName:      county,
			MillageRate:     millage,
			AssessmentRatio: scAssessmentRatio,
		}
	}
	return &CountyRateRepositoryMemory{
		records: records,
		zips:    scZIPToCounty,
		cities:  scCityToCounty,
	}
}

// ByCounty returns the tax record for an exact county name.
func (r *CountyRateRepositoryMemory) ByCounty(name string) (domain.CountyTaxRecord, bool) {
	record, ok := r.records[name]
	return record, ok
}

// CountyForZIP maps a 5-digit ZIP code to its county.
func (r *CountyRateRepositoryMemory) CountyForZIP(zip string) (string, bool) {
	county, ok := r.zips[zip]
	return county, ok
}

// CountyForCity maps a normalized city name to its county.
func (r *CountyRateRepositoryMemory) CountyForCity(city string) (string, bool) {
	county, ok := r.cities[strings.ToUpper(city)]
	return county, ok
}

// Cities lists all known city names, longest first so that substring
// matching prefers the most specific name.
func (r *CountyRateRepositoryMemory) Cities() []string {
	cities := make([]string, 0, len(r.cities))
	for city := range r.cities {
		cities = append(cities, city)
	}
	sort.Slice(cities, func(i, j int) bool {
		if len(cities[i]) != len(cities[j]) {
			return len(cities[i]) > len(cities[j])
		}
		return cities[i] < cities[j]
	})
	return cities
}

// Counties lists all county names in the millage table.
func (r *CountyRateRepositoryMemory) Counties() []string {
	counties := make([]string, 0, len(r.records))
	for county := range r.records {
		counties = append(counties, county)
	}
	sort.Strings(counties)
	return counties
}
