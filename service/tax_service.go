package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"dscr-calculator/domain"
	"dscr-calculator/repository"
)

// ErrInvalidCountyRecord reports a county record with an out-of-range rate.
var ErrInvalidCountyRecord = errors.New("invalid county record")

var (
	zipPattern      = regexp.MustCompile(`\b\d{5}\b`)
	nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9 ]+`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// countyCacheTTL bounds how long a resolved address stays cached. The
// reference table is static for the life of the process, so the TTL only
// matters across deploys that ship updated millage data.
const countyCacheTTL = 24 * time.Hour

// TaxService resolves a free-text address to a South Carolina county and
// applies the deterministic SC rental tax formula. It never invents a rate:
// an unmatched address is reported as unresolved and callers fall back to a
// generic estimate or manual entry.
type TaxService struct {
	counties repository.CountyRateRepository
	cache    repository.CacheRepository
}

func NewTaxService(
	counties repository.CountyRateRepository,
	cache repository.CacheRepository,
) *TaxService {
	return &TaxService{counties: counties, cache: cache}
}

// ResolveCounty matches an address against the SC reference tables. Match
// order: exact 5-digit ZIP, then city name (longest name first), then an
// explicit county-name mention. Malformed or out-of-state addresses resolve
// to not-found; this method never fails.
func (s *TaxService) ResolveCounty(ctx context.Context, address string) (domain.CountyTaxRecord, bool) {
	normalized := normalizeAddress(address)
	if normalized == "" {
		return domain.CountyTaxRecord{}, false
	}

	cacheKey := "county:" + normalized
	if name, ok := s.cache.Get(ctx, cacheKey); ok {
		if record, found := s.counties.ByCounty(name); found {
			return record, true
		}
	}

	name, ok := s.matchCounty(normalized)
	if !ok {
		return domain.CountyTaxRecord{}, false
	}

	record, found := s.counties.ByCounty(name)
	if !found {
		return domain.CountyTaxRecord{}, false
	}

	if err := s.cache.Set(ctx, cacheKey, name, countyCacheTTL); err != nil {
		log.Printf("Warning: failed to cache county resolution: %v", err)
	}
	return record, true
}

func (s *TaxService) matchCounty(normalized string) (string, bool) {
	// ZIP codes are unambiguous, so a ZIP match wins over any name match.
	for _, zip := range zipPattern.FindAllString(normalized, -1) {
		if county, ok := s.counties.CountyForZIP(zip); ok {
			return county, true
		}
	}

	// Name matching requires an SC marker in the address; "Columbia" or
	// "Anderson" alone could be anywhere in the country.
	if !mentionsSouthCarolina(normalized) {
		return "", false
	}

	// Cities() is ordered longest-first so "NORTH CHARLESTON" is preferred
	// over "CHARLESTON" when both occur.
	for _, city := range s.counties.Cities() {
		if strings.Contains(normalized, city) {
			if county, ok := s.counties.CountyForCity(city); ok {
				return county, true
			}
		}
	}

	for _, county := range s.counties.Counties() {
		base := strings.ToUpper(strings.TrimSuffix(county, " County"))
		if strings.Contains(normalized, base) {
			return county, true
		}
	}

	return "", false
}

// ComputeTax applies the SC rental property formula exactly:
// taxable value = price × assessment ratio; annual = taxable × millage;
// monthly = annual / 12. No rounding before display.
func (s *TaxService) ComputeTax(
	purchasePrice float64,
	record domain.CountyTaxRecord,
) (domain.TaxAssessment, error) {

	if record.MillageRate < 0 {
		return domain.TaxAssessment{}, fmt.Errorf(
			"%w: negative millage rate for %s", ErrInvalidCountyRecord, record.CountyName)
	}

	taxableValue := purchasePrice * record.AssessmentRatio
	annualTaxes := taxableValue * record.MillageRate

	return domain.TaxAssessment{
		CountyName:      record.CountyName,
		MillageRate:     record.MillageRate,
		AssessmentRatio: record.AssessmentRatio,
		TaxableValue:    taxableValue,
		AnnualTaxes:     annualTaxes,
		MonthlyTaxes:    annualTaxes / 12,
	}, nil
}

// normalizeAddress case-folds and strips punctuation so that matching is
// insensitive to formatting.
func normalizeAddress(address string) string {
	upper := strings.ToUpper(address)
	upper = nonAlphanumeric.ReplaceAllString(upper, " ")
	upper = whitespaceRun.ReplaceAllString(upper, " ")
	return strings.TrimSpace(upper)
}

// mentionsSouthCarolina reports whether the normalized address carries an
// explicit SC marker ("SC" as its own token, or the spelled-out state).
func mentionsSouthCarolina(normalized string) bool {
	if strings.Contains(normalized, "SOUTH CAROLINA") {
		return true
	}
	for _, token := range strings.Fields(normalized) {
		if token == "SC" {
			return true
		}
	}
	return false
}
