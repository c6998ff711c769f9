package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/aidcase/workflow/internal/domain/request"
)

// Config holds all application configuration
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Workflow WorkflowConfig `mapstructure:"workflow"`
	Export   ExportConfig   `mapstructure:"export"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// WorkflowConfig holds the business tables that drive eligibility scoring
// and SLA tracking. Entries override the matching built-in defaults, so a
// deployment only lists the categories or windows it wants to change.
type WorkflowConfig struct {
	Categories  map[string]CategoryConfig `mapstructure:"categories"`
	Urgencies   map[string]UrgencyConfig  `mapstructure:"urgencies"`
	Priorities  map[string]PriorityConfig `mapstructure:"priorities"`
	AmountTiers []AmountTierConfig        `mapstructure:"amount_tiers"`
	Completion  CompletionConfig          `mapstructure:"completion"`
}

// CategoryConfig holds per-category policy values
type CategoryConfig struct {
	Label        string   `mapstructure:"label"`
	MaxAmount    float64  `mapstructure:"max_amount"`
	RequiredDocs []string `mapstructure:"required_docs"`
	Bonus        int      `mapstructure:"bonus"`
}

// UrgencyConfig holds the per-urgency SLA window and scoring bonus
type UrgencyConfig struct {
	SLAHours int `mapstructure:"sla_hours"`
	Bonus    int `mapstructure:"bonus"`
}

// PriorityConfig holds the per-priority SLA window
type PriorityConfig struct {
	SLAHours int `mapstructure:"sla_hours"`
}

// AmountTierConfig grants a scoring bonus to requests below a threshold
type AmountTierConfig struct {
	Below float64 `mapstructure:"below"`
	Bonus int     `mapstructure:"bonus"`
}

// CompletionConfig holds the completion estimate buffers
type CompletionConfig struct {
	CriticalBuffer float64 `mapstructure:"critical_buffer"`
	DefaultBuffer  float64 `mapstructure:"default_buffer"`
}

// ExportConfig holds spreadsheet export configuration
type ExportConfig struct {
	SheetName string `mapstructure:"sheet_name"`
	OutputDir string `mapstructure:"output_dir"`
}

// WorkerConfig holds background worker configuration
type WorkerConfig struct {
	Expiry ExpiryConfig `mapstructure:"expiry"`
}

// ExpiryConfig tunes the sweeper that expires requests past their SLA deadline
type ExpiryConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
	ActorID   string        `mapstructure:"actor_id"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// A local .env feeds the environment before viper binds it
	if _, err := os.Stat(".env"); err == nil {
		if err := gotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Override with environment variables
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")

	// Completion estimate defaults
	viper.SetDefault("workflow.completion.critical_buffer", 1.2)
	viper.SetDefault("workflow.completion.default_buffer", 1.5)

	// Export defaults
	viper.SetDefault("export.sheet_name", "Requests")
	viper.SetDefault("export.output_dir", "exports")

	// Expiry sweeper defaults
	viper.SetDefault("worker.expiry.enabled", true)
	viper.SetDefault("worker.expiry.interval", "1h")
	viper.SetDefault("worker.expiry.batch_size", 100)
	viper.SetDefault("worker.expiry.actor_id", "system")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("logger.level", "WORKFLOW_LOG_LEVEL")
	viper.BindEnv("logger.output_path", "WORKFLOW_LOG_PATH")
	viper.BindEnv("logger.format", "WORKFLOW_LOG_FORMAT")
	viper.BindEnv("export.output_dir", "WORKFLOW_EXPORT_DIR")
	viper.BindEnv("worker.expiry.enabled", "WORKFLOW_EXPIRY_ENABLED")
	viper.BindEnv("worker.expiry.interval", "WORKFLOW_EXPIRY_INTERVAL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for name, cat := range c.Workflow.Categories {
		if _, err := request.ParseCategory(name); err != nil {
			return fmt.Errorf("workflow.categories: %w", err)
		}
		if cat.MaxAmount < 0 {
			return fmt.Errorf("workflow.categories.%s.max_amount must not be negative", name)
		}
	}

	for name, urg := range c.Workflow.Urgencies {
		if _, err := request.ParseUrgency(name); err != nil {
			return fmt.Errorf("workflow.urgencies: %w", err)
		}
		if urg.SLAHours <= 0 {
			return fmt.Errorf("workflow.urgencies.%s.sla_hours must be positive", name)
		}
	}

	for name, pri := range c.Workflow.Priorities {
		if _, err := request.ParsePriority(name); err != nil {
			return fmt.Errorf("workflow.priorities: %w", err)
		}
		if pri.SLAHours <= 0 {
			return fmt.Errorf("workflow.priorities.%s.sla_hours must be positive", name)
		}
	}

	for i, tier := range c.Workflow.AmountTiers {
		if tier.Below <= 0 {
			return fmt.Errorf("workflow.amount_tiers[%d].below must be positive", i)
		}
	}

	if c.Workflow.Completion.CriticalBuffer < 1 {
		return fmt.Errorf("workflow.completion.critical_buffer must be at least 1")
	}
	if c.Workflow.Completion.DefaultBuffer < 1 {
		return fmt.Errorf("workflow.completion.default_buffer must be at least 1")
	}

	if c.Export.SheetName == "" {
		return fmt.Errorf("export.sheet_name is required")
	}

	if c.Worker.Expiry.Enabled {
		if c.Worker.Expiry.Interval <= 0 {
			return fmt.Errorf("worker.expiry.interval must be positive")
		}
		if c.Worker.Expiry.BatchSize <= 0 {
			return fmt.Errorf("worker.expiry.batch_size must be positive")
		}
		if c.Worker.Expiry.ActorID == "" {
			return fmt.Errorf("worker.expiry.actor_id is required")
		}
	}

	return nil
}
