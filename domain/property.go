package domain

// PropertyType classifies the physical type of a property.
type PropertyType string

const (
	PropertyTypeSFR         PropertyType = "SFR"
	PropertyTypeCondo       PropertyType = "Condo"
	PropertyTypeTownhouse   PropertyType = "Townhouse"
	PropertyTypeMultiFamily PropertyType = "Multi-family"
	PropertyTypeOther       PropertyType = "Other"
)

// Condition describes the reported state of a property.
type Condition string

const (
	ConditionExcellent Condition = "Excellent"
	ConditionGood      Condition = "Good"
	ConditionAverage   Condition = "Average"
	ConditionPoor      Condition = "Poor"
	ConditionFixer     Condition = "Fixer"
)

// PropertyInput carries the raw property attributes supplied by the caller.
// Only Address and PurchasePrice are required; the optional attributes
// improve the rent estimate when present.
type PropertyInput struct {
	Address       string        `json:"address"`
	PurchasePrice float64       `json:"purchase_price"`
	PropertyType  *PropertyType `json:"property_type,omitempty"`
	Beds          *int          `json:"beds,omitempty"`
	Baths         *float64      `json:"baths,omitempty"`
	Sqft          *int          `json:"sqft,omitempty"`
	Condition     *Condition    `json:"condition,omitempty"`
}
