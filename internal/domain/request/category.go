package request

import "fmt"

// Category represents the kind of assistance a request asks for
type Category string

const (
	CategoryEmergencyAssistance Category = "emergency_assistance"
	CategoryEducationalSupport  Category = "educational_support"
	CategoryMedicalAssistance   Category = "medical_assistance"
	CategoryHousingSupport      Category = "housing_support"
	CategoryFoodAssistance      Category = "food_assistance"
	CategoryEmploymentSupport   Category = "employment_support"
	CategoryElderlyCare         Category = "elderly_care"
	CategoryDisabilitySupport   Category = "disability_support"
	CategoryOther               Category = "other"
)

var validCategories = map[Category]bool{
	CategoryEmergencyAssistance: true,
	CategoryEducationalSupport:  true,
	CategoryMedicalAssistance:   true,
	CategoryHousingSupport:      true,
	CategoryFoodAssistance:      true,
	CategoryEmploymentSupport:   true,
	CategoryElderlyCare:         true,
	CategoryDisabilitySupport:   true,
	CategoryOther:               true,
}

// Categories returns every category in declaration order
func Categories() []Category {
	return []Category{
		CategoryEmergencyAssistance,
		CategoryEducationalSupport,
		CategoryMedicalAssistance,
		CategoryHousingSupport,
		CategoryFoodAssistance,
		CategoryEmploymentSupport,
		CategoryElderlyCare,
		CategoryDisabilitySupport,
		CategoryOther,
	}
}

// ParseCategory converts a raw string into a Category
func ParseCategory(s string) (Category, error) {
	category := Category(s)
	if !category.IsValid() {
		return "", fmt.Errorf("unknown category: %q", s)
	}
	return category, nil
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// IsValid returns true if the category is a member of the catalog
func (c Category) IsValid() bool {
	return validCategories[c]
}
