package config

import (
	appwf "github.com/aidcase/workflow/internal/application/workflow"
	"github.com/aidcase/workflow/internal/domain/request"
	domainwf "github.com/aidcase/workflow/internal/domain/workflow"
)

// ToComponentConfig converts the file-based workflow tables into the
// application factory's configuration. This provides a bridge between the
// string-keyed config loaded by viper and the typed domain profiles.
// Configured entries override the matching defaults; untouched entries
// keep their built-in values.
func (c *Config) ToComponentConfig() appwf.ComponentConfig {
	out := appwf.ComponentConfig{
		CriticalBuffer:   c.Workflow.Completion.CriticalBuffer,
		CompletionBuffer: c.Workflow.Completion.DefaultBuffer,
	}

	if len(c.Workflow.Categories) > 0 {
		categories := domainwf.DefaultCategoryProfiles()
		for name, cc := range c.Workflow.Categories {
			category, err := request.ParseCategory(name)
			if err != nil {
				// Unknown keys were rejected by Validate
				continue
			}
			label := cc.Label
			if label == "" {
				label = categories[category].Label
			}
			categories[category] = domainwf.CategoryProfile{
				Label:        label,
				MaxAmount:    cc.MaxAmount,
				RequiredDocs: cc.RequiredDocs,
				Bonus:        cc.Bonus,
			}
		}
		out.Categories = categories
	}

	if len(c.Workflow.Urgencies) > 0 {
		urgencies := domainwf.DefaultUrgencyProfiles()
		for name, uc := range c.Workflow.Urgencies {
			urgency, err := request.ParseUrgency(name)
			if err != nil {
				continue
			}
			urgencies[urgency] = domainwf.UrgencyProfile{
				SLAHours: uc.SLAHours,
				Bonus:    uc.Bonus,
			}
		}
		out.Urgencies = urgencies
	}

	if len(c.Workflow.Priorities) > 0 {
		priorities := domainwf.DefaultPriorityProfiles()
		for name, pc := range c.Workflow.Priorities {
			priority, err := request.ParsePriority(name)
			if err != nil {
				continue
			}
			priorities[priority] = domainwf.PriorityProfile{
				SLAHours: pc.SLAHours,
			}
		}
		out.Priorities = priorities
	}

	if len(c.Workflow.AmountTiers) > 0 {
		tiers := make([]domainwf.AmountTier, 0, len(c.Workflow.AmountTiers))
		for _, tc := range c.Workflow.AmountTiers {
			tiers = append(tiers, domainwf.AmountTier{
				Below: tc.Below,
				Bonus: tc.Bonus,
			})
		}
		out.AmountTiers = tiers
	}

	return out
}
