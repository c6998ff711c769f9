package workflow

import (
	"time"

	"github.com/aidcase/workflow/internal/domain/request"
	domainwf "github.com/aidcase/workflow/internal/domain/workflow"
)

// Components bundles the assembled domain collaborators. Every piece shares
// the same catalog and business tables, so terminality and SLA decisions
// cannot drift between them.
type Components struct {
	Catalog     *domainwf.StatusCatalog
	Transitions *domainwf.TransitionTable
	Permissions *domainwf.PermissionPolicy
	Scorer      *domainwf.EligibilityScorer
	SLA         *domainwf.SLACalculator
	Engine      *domainwf.Engine

	// Categories is the effective category table, kept for amount-cap checks
	Categories map[request.Category]domainwf.CategoryProfile
}

// ComponentConfig overrides the built-in business tables. Nil maps, zero
// buffers and a nil clock fall back to the defaults.
type ComponentConfig struct {
	Categories  map[request.Category]domainwf.CategoryProfile
	Urgencies   map[request.Urgency]domainwf.UrgencyProfile
	Priorities  map[request.Priority]domainwf.PriorityProfile
	AmountTiers []domainwf.AmountTier

	CriticalBuffer   float64
	CompletionBuffer float64

	// Now lets callers pin the clock, mainly in tests
	Now func() time.Time
}

// BuildComponents assembles the status catalog, transition table, permission
// policy, scorer, SLA calculator and engine from one configuration
func BuildComponents(cfg ComponentConfig) *Components {
	if cfg.Categories == nil {
		cfg.Categories = domainwf.DefaultCategoryProfiles()
	}
	if cfg.Urgencies == nil {
		cfg.Urgencies = domainwf.DefaultUrgencyProfiles()
	}
	if cfg.Priorities == nil {
		cfg.Priorities = domainwf.DefaultPriorityProfiles()
	}
	if cfg.AmountTiers == nil {
		cfg.AmountTiers = domainwf.DefaultAmountTiers()
	}
	if cfg.CriticalBuffer <= 0 {
		cfg.CriticalBuffer = domainwf.DefaultCriticalBuffer
	}
	if cfg.CompletionBuffer <= 0 {
		cfg.CompletionBuffer = domainwf.DefaultCompletionBuffer
	}

	catalog := domainwf.NewStatusCatalog()
	transitions := domainwf.NewTransitionTable()
	permissions := domainwf.NewPermissionPolicy()
	scorer := domainwf.NewEligibilityScorer(cfg.Categories, cfg.Urgencies, cfg.AmountTiers)

	slaOpts := []domainwf.SLAOption{
		domainwf.WithCompletionBuffers(cfg.CriticalBuffer, cfg.CompletionBuffer),
	}
	if cfg.Now != nil {
		slaOpts = append(slaOpts, domainwf.WithNow(cfg.Now))
	}
	sla := domainwf.NewSLACalculator(cfg.Urgencies, cfg.Priorities, catalog, slaOpts...)

	var engineOpts []domainwf.EngineOption
	if cfg.Now != nil {
		engineOpts = append(engineOpts, domainwf.WithEngineNow(cfg.Now))
	}
	engine := domainwf.NewEngine(catalog, transitions, permissions, sla, engineOpts...)

	return &Components{
		Catalog:     catalog,
		Transitions: transitions,
		Permissions: permissions,
		Scorer:      scorer,
		SLA:         sla,
		Engine:      engine,
		Categories:  cfg.Categories,
	}
}
