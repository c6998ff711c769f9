package workflow

import (
	"github.com/aidcase/workflow/internal/domain/request"
)

const (
	// DefaultCriticalBuffer pads completion estimates for critical requests
	DefaultCriticalBuffer = 1.2

	// DefaultCompletionBuffer pads completion estimates for all other requests
	DefaultCompletionBuffer = 1.5
)

// CategoryProfile carries the per-category policy values
type CategoryProfile struct {
	Label        string
	MaxAmount    float64
	RequiredDocs []string
	Bonus        int
}

// UrgencyProfile carries the per-urgency SLA window and scoring bonus
type UrgencyProfile struct {
	SLAHours int
	Bonus    int
}

// PriorityProfile carries the per-priority SLA window
type PriorityProfile struct {
	SLAHours int
}

// AmountTier grants a scoring bonus to requests strictly below a threshold
type AmountTier struct {
	Below float64
	Bonus int
}

// DefaultCategoryProfiles returns the built-in assistance category table
func DefaultCategoryProfiles() map[request.Category]CategoryProfile {
	return map[request.Category]CategoryProfile{
		request.CategoryEmergencyAssistance: {
			Label:        "Emergency Assistance",
			MaxAmount:    50000,
			RequiredDocs: []string{"id_card", "income_statement", "emergency_proof"},
			Bonus:        15,
		},
		request.CategoryEducationalSupport: {
			Label:        "Educational Support",
			MaxAmount:    30000,
			RequiredDocs: []string{"id_card", "enrollment_certificate", "tuition_invoice"},
			Bonus:        5,
		},
		request.CategoryMedicalAssistance: {
			Label:        "Medical Assistance",
			MaxAmount:    100000,
			RequiredDocs: []string{"id_card", "medical_report", "treatment_invoice"},
			Bonus:        12,
		},
		request.CategoryHousingSupport: {
			Label:        "Housing Support",
			MaxAmount:    80000,
			RequiredDocs: []string{"id_card", "lease_agreement", "income_statement"},
			Bonus:        10,
		},
		request.CategoryFoodAssistance: {
			Label:        "Food Assistance",
			MaxAmount:    10000,
			RequiredDocs: []string{"id_card", "income_statement"},
			Bonus:        8,
		},
		request.CategoryEmploymentSupport: {
			Label:        "Employment Support",
			MaxAmount:    40000,
			RequiredDocs: []string{"id_card", "unemployment_certificate"},
			Bonus:        5,
		},
		request.CategoryElderlyCare: {
			Label:        "Elderly Care",
			MaxAmount:    60000,
			RequiredDocs: []string{"id_card", "pension_certificate", "care_assessment"},
			Bonus:        8,
		},
		request.CategoryDisabilitySupport: {
			Label:        "Disability Support",
			MaxAmount:    70000,
			RequiredDocs: []string{"id_card", "disability_certificate"},
			Bonus:        10,
		},
		request.CategoryOther: {
			Label:        "Other",
			MaxAmount:    20000,
			RequiredDocs: []string{"id_card"},
			Bonus:        0,
		},
	}
}

// DefaultUrgencyProfiles returns the built-in urgency SLA and bonus table
func DefaultUrgencyProfiles() map[request.Urgency]UrgencyProfile {
	return map[request.Urgency]UrgencyProfile{
		request.UrgencyRoutine:   {SLAHours: 168, Bonus: 0},
		request.UrgencyImportant: {SLAHours: 72, Bonus: 4},
		request.UrgencyUrgent:    {SLAHours: 24, Bonus: 7},
		request.UrgencyCritical:  {SLAHours: 4, Bonus: 10},
	}
}

// DefaultPriorityProfiles returns the built-in priority SLA table
func DefaultPriorityProfiles() map[request.Priority]PriorityProfile {
	return map[request.Priority]PriorityProfile{
		request.PriorityLow:    {SLAHours: 336},
		request.PriorityNormal: {SLAHours: 168},
		request.PriorityHigh:   {SLAHours: 72},
		request.PriorityUrgent: {SLAHours: 24},
	}
}

// DefaultAmountTiers returns the built-in amount bonus tiers, smallest threshold first
func DefaultAmountTiers() []AmountTier {
	return []AmountTier{
		{Below: 5000, Bonus: 5},
		{Below: 10000, Bonus: 2},
	}
}
