package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"

	configPathEnv         = "AUTOBLOG_CONFIG"
	databaseDSNEnv        = "DATABASE_DSN"
	rankerAPIKeyEnv       = "GEMINI_API_KEY"
	generatorAPIKeyEnv    = "ANTHROPIC_API_KEY"
	trendsAPIKeyEnv       = "GOOGLE_SEARCH_API_KEY"
	trendsCXEnv           = "GOOGLE_SEARCH_CX"
	affiliateAccessKeyEnv = "COUPANG_ACCESS_KEY"
	affiliateSecretKeyEnv = "COUPANG_SECRET_KEY"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Sink      SinkConfig      `yaml:"sink"`
	Ranker    RankerConfig    `yaml:"ranker"`
	Generator GeneratorConfig `yaml:"generator"`
	Trends    TrendsConfig    `yaml:"trends"`
	Affiliate AffiliateConfig `yaml:"affiliate"`
	Image     ImageConfig     `yaml:"image"`
	Deploy    DeployConfig    `yaml:"deploy"`
	Site      SiteConfig      `yaml:"site"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SchedulerConfig defines when the pipeline should run. An empty cron
// expression means a single one-shot run.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// PipelineConfig tunes the per-run orchestration.
type PipelineConfig struct {
	Categories      []string `yaml:"categories"`
	CandidateLimit  int      `yaml:"candidateLimit"`
	AffiliateLimit  int      `yaml:"affiliateLimit"`
	CooldownSeconds int      `yaml:"cooldownSeconds"`
}

// Cooldown is the fixed inter-publish delay.
func (p PipelineConfig) Cooldown() time.Duration {
	return time.Duration(p.CooldownSeconds) * time.Second
}

// LedgerConfig locates the local idempotency database.
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// SinkConfig selects and configures the content sink.
// Kind is "file" or "postgres".
type SinkConfig struct {
	Kind        string `yaml:"kind"`
	ContentDir  string `yaml:"contentDir"`
	ImagePrefix string `yaml:"imagePrefix"`
	PostgresDSN string `yaml:"postgresDsn"`
}

// RankerConfig defines how to contact the topic-ranking judge. The
// endpoint speaks the OpenAI chat protocol (Gemini exposes one).
type RankerConfig struct {
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"apiKey"`
}

// GeneratorConfig defines the article-generation model call.
type GeneratorConfig struct {
	Model     string `yaml:"model"`
	APIKey    string `yaml:"apiKey"`
	MaxTokens int    `yaml:"maxTokens"`
}

// TrendsConfig wires the Google Custom Search trend lookup.
type TrendsConfig struct {
	APIKey string `yaml:"apiKey"`
	CX     string `yaml:"cx"`
}

// AffiliateConfig holds the signed affiliate API credentials.
type AffiliateConfig struct {
	Domain    string `yaml:"domain"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
}

// ImageConfig points at the local diffusion server.
type ImageConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// DeployConfig controls the git-based deployment push.
type DeployConfig struct {
	Enabled bool   `yaml:"enabled"`
	WorkDir string `yaml:"workDir"`
	Branch  string `yaml:"branch"`
}

// SiteConfig carries site-level values used by the sitemap utility.
type SiteConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Pipeline.Categories) == 0 {
		cfg.Pipeline.Categories = defaultConfig().Pipeline.Categories
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Sink.PostgresDSN = v
	}

	if v := os.Getenv(rankerAPIKeyEnv); v != "" {
		c.Ranker.APIKey = v
	}

	if v := os.Getenv(generatorAPIKeyEnv); v != "" {
		c.Generator.APIKey = v
	}

	if v := os.Getenv(trendsAPIKeyEnv); v != "" {
		c.Trends.APIKey = v
	}

	if v := os.Getenv(trendsCXEnv); v != "" {
		c.Trends.CX = v
	}

	if v := os.Getenv(affiliateAccessKeyEnv); v != "" {
		c.Affiliate.AccessKey = v
	}

	if v := os.Getenv(affiliateSecretKeyEnv); v != "" {
		c.Affiliate.SecretKey = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if len(override.Pipeline.Categories) > 0 {
		base.Pipeline.Categories = override.Pipeline.Categories
	}
	if override.Pipeline.CandidateLimit > 0 {
		base.Pipeline.CandidateLimit = override.Pipeline.CandidateLimit
	}
	if override.Pipeline.AffiliateLimit > 0 {
		base.Pipeline.AffiliateLimit = override.Pipeline.AffiliateLimit
	}
	if override.Pipeline.CooldownSeconds > 0 {
		base.Pipeline.CooldownSeconds = override.Pipeline.CooldownSeconds
	}

	if override.Ledger.Path != "" {
		base.Ledger.Path = override.Ledger.Path
	}

	if override.Sink.Kind != "" {
		base.Sink.Kind = override.Sink.Kind
	}
	if override.Sink.ContentDir != "" {
		base.Sink.ContentDir = override.Sink.ContentDir
	}
	if override.Sink.ImagePrefix != "" {
		base.Sink.ImagePrefix = override.Sink.ImagePrefix
	}
	if override.Sink.PostgresDSN != "" {
		base.Sink.PostgresDSN = override.Sink.PostgresDSN
	}

	if override.Ranker.BaseURL != "" {
		base.Ranker.BaseURL = override.Ranker.BaseURL
	}
	if override.Ranker.Model != "" {
		base.Ranker.Model = override.Ranker.Model
	}
	if override.Ranker.APIKey != "" {
		base.Ranker.APIKey = override.Ranker.APIKey
	}

	if override.Generator.Model != "" {
		base.Generator.Model = override.Generator.Model
	}
	if override.Generator.APIKey != "" {
		base.Generator.APIKey = override.Generator.APIKey
	}
	if override.Generator.MaxTokens > 0 {
		base.Generator.MaxTokens = override.Generator.MaxTokens
	}

	if override.Trends.APIKey != "" {
		base.Trends.APIKey = override.Trends.APIKey
	}
	if override.Trends.CX != "" {
		base.Trends.CX = override.Trends.CX
	}

	if override.Affiliate.Domain != "" {
		base.Affiliate.Domain = override.Affiliate.Domain
	}
	if override.Affiliate.AccessKey != "" {
		base.Affiliate.AccessKey = override.Affiliate.AccessKey
	}
	if override.Affiliate.SecretKey != "" {
		base.Affiliate.SecretKey = override.Affiliate.SecretKey
	}

	if override.Image.Endpoint != "" {
		base.Image.Endpoint = override.Image.Endpoint
	}

	if override.Deploy.Enabled {
		base.Deploy.Enabled = true
	}
	if override.Deploy.WorkDir != "" {
		base.Deploy.WorkDir = override.Deploy.WorkDir
	}
	if override.Deploy.Branch != "" {
		base.Deploy.Branch = override.Deploy.Branch
	}

	if override.Site.BaseURL != "" {
		base.Site.BaseURL = override.Site.BaseURL
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Scheduler: SchedulerConfig{CronExpression: "", Timezone: defaultTimezone, location: tz},
		Pipeline: PipelineConfig{
			Categories:      []string{"Supplements", "Gadgets", "HomeImprovement"},
			CandidateLimit:  5,
			AffiliateLimit:  3,
			CooldownSeconds: 5,
		},
		Ledger: LedgerConfig{Path: "data/autoblog.db"},
		Sink: SinkConfig{
			Kind:        "file",
			ContentDir:  "src/content/blog",
			ImagePrefix: "/images",
		},
		Ranker: RankerConfig{
			BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai",
			Model:   "gemini-1.5-flash",
		},
		Generator: GeneratorConfig{
			Model:     "claude-sonnet-4-5",
			MaxTokens: 4000,
		},
		Affiliate: AffiliateConfig{
			Domain: "https://api-gateway.coupang.com",
		},
		Image:  ImageConfig{Endpoint: "http://127.0.0.1:7801"},
		Deploy: DeployConfig{Enabled: false, WorkDir: ".", Branch: "main"},
		Site:   SiteConfig{BaseURL: "https://auto-blogs-7i9.pages.dev"},
	}
}
