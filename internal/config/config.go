package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/clubhouse/internal/categories"
	"github.com/cleared-dev/clubhouse/internal/model"
)

// FileName is the club config file at the root of a club directory.
const FileName = "clubhouse.yaml"

// Config represents the top-level clubhouse.yaml configuration.
type Config struct {
	Club       ClubConfig       `yaml:"club"`
	Season     SeasonConfig     `yaml:"season"`
	Matching   MatchingConfig   `yaml:"matching"`
	Fees       FeesConfig       `yaml:"fees"`
	Categories []CategoryConfig `yaml:"categories"`
}

// ClubConfig identifies the club.
type ClubConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// SeasonConfig defines the season boundaries.
type SeasonConfig struct {
	Start string `yaml:"start"` // "MM-DD" format, e.g. "08-01"
}

// MatchingConfig holds the name-matching acceptance threshold for each
// import source. Rows scoring below the threshold go to review.
type MatchingConfig struct {
	PaymentsCSV  float64 `yaml:"payments_csv"`
	KitCSV       float64 `yaml:"kit_csv"`
	WhatsApp     float64 `yaml:"whatsapp"`
	SuggestLimit int     `yaml:"suggest_limit"`
}

// FeesConfig sets the default match fee.
type FeesConfig struct {
	MatchFee string `yaml:"match_fee"` // decimal string, e.g. "10.00"
	Category string `yaml:"category"`
}

// CategoryConfig is one ledger category.
type CategoryConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
}

// Load reads a clubhouse.yaml file from disk. Settings missing from the
// file take their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.fillDefaults()
	return &cfg, nil
}

// fillDefaults replaces zero values with those of Default. A zero
// threshold would accept any name as a match.
func (c *Config) fillDefaults() {
	def := Default(c.Club.Name)
	if c.Club.Currency == "" {
		c.Club.Currency = def.Club.Currency
	}
	if c.Season.Start == "" {
		c.Season.Start = def.Season.Start
	}
	m := &c.Matching
	if m.PaymentsCSV <= 0 {
		m.PaymentsCSV = def.Matching.PaymentsCSV
	}
	if m.KitCSV <= 0 {
		m.KitCSV = def.Matching.KitCSV
	}
	if m.WhatsApp <= 0 {
		m.WhatsApp = def.Matching.WhatsApp
	}
	if m.SuggestLimit <= 0 {
		m.SuggestLimit = def.Matching.SuggestLimit
	}
	if c.Fees.MatchFee == "" {
		c.Fees.MatchFee = def.Fees.MatchFee
	}
	if c.Fees.Category == "" {
		c.Fees.Category = def.Fees.Category
	}
	if len(c.Categories) == 0 {
		c.Categories = def.Categories
	}
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new club.
func Default(clubName string) *Config {
	cfg := &Config{
		Club: ClubConfig{
			Name:     clubName,
			Currency: "GBP",
		},
		Season: SeasonConfig{
			Start: "08-01",
		},
		Matching: MatchingConfig{
			PaymentsCSV:  0.70,
			KitCSV:       0.65,
			WhatsApp:     0.75,
			SuggestLimit: 3,
		},
		Fees: FeesConfig{
			MatchFee: "10.00",
			Category: categories.MatchFee,
		},
	}
	for _, c := range categories.DefaultCategories() {
		cfg.Categories = append(cfg.Categories, CategoryConfig{
			Name:        c.Name,
			Type:        string(c.Type),
			Description: c.Description,
		})
	}
	return cfg
}

// CategoryList converts the configured categories to model values.
func (c *Config) CategoryList() []model.Category {
	out := make([]model.Category, 0, len(c.Categories))
	for _, cc := range c.Categories {
		out = append(out, model.Category{Name: cc.Name, Type: model.TxType(cc.Type), Description: cc.Description})
	}
	return out
}

// Threshold returns the matching threshold for an import format. Unknown
// formats get the payments CSV threshold.
func (c *Config) Threshold(format string) float64 {
	switch format {
	case "kit":
		return c.Matching.KitCSV
	case "whatsapp":
		return c.Matching.WhatsApp
	default:
		return c.Matching.PaymentsCSV
	}
}
