package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"dakota/models"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string   `mapstructure:"APP_PORT"`
	Env               string   `mapstructure:"ENV"`
	LogLevel          string   `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int      `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`

	// OpenAI ChatKit.
	OpenAIKey        string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel      string `mapstructure:"OPENAI_MODEL"`
	ChatKitWorkflow  string `mapstructure:"CHATKIT_WORKFLOW_ID"`
	ChatKitAPIBase   string `mapstructure:"CHATKIT_API_BASE"`
	ChatKitDomainKey string `mapstructure:"CHATKIT_DOMAIN_KEY"`

	// Stripe.
	StripeKey            string `mapstructure:"STRIPE_SECRET_KEY"`
	StripePublishableKey string `mapstructure:"STRIPE_PUBLISHABLE_KEY"`
	StripeWebhookSecret  string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	SiteDomain           string `mapstructure:"SITE_DOMAIN"`

	// Redis configuration. An empty address keeps the webhook ledger in memory.
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisWebhookDB  int           `mapstructure:"REDIS_WEBHOOK_DB"`
	WebhookEventTTL time.Duration `mapstructure:"WEBHOOK_EVENT_TTL"`

	// Hero slideshow.
	SlideshowAutoplay       bool           `mapstructure:"SLIDESHOW_AUTOPLAY"`
	SlideshowIntervalMs     int            `mapstructure:"SLIDESHOW_INTERVAL_MS"`
	SlideshowSwipeThreshold float64        `mapstructure:"SLIDESHOW_SWIPE_THRESHOLD"`
	Slides                  []models.Slide `mapstructure:"SLIDES"`
}

var AppConfig Config

// DefaultSlides is the hero set used when no config file lists slides.
var DefaultSlides = []models.Slide{
	{Image: "/images/hero-1.jpg", Alt: "Farmhouse at sunrise", Title: "Dakota Country Home", Caption: "Quiet prairie mornings", SortOrder: 1},
	{Image: "/images/hero-2.jpg", Alt: "Wraparound porch", Title: "Slow Evenings", Caption: "A porch made for sunsets", SortOrder: 2},
	{Image: "/images/hero-3.jpg", Alt: "Open kitchen", Title: "Room to Gather", Caption: "Cook, eat and linger", SortOrder: 3},
	{Image: "/images/hero-4.jpg", Alt: "Main bedroom", Title: "Rest Easy", Caption: "Four bedrooms, sleeps ten", SortOrder: 4},
	{Image: "/images/hero-5.jpg", Alt: "Wheat fields", Title: "Wide Open Country", Caption: "Miles of sky in every direction", SortOrder: 5},
	{Image: "/images/hero-6.jpg", Alt: "Fire pit under stars", Title: "Starry Nights", Caption: "No city lights for miles", SortOrder: 6},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("CORS_ORIGINS", []string{"*"})
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4.1-mini")
	v.SetDefault("CHATKIT_WORKFLOW_ID", "")
	v.SetDefault("CHATKIT_API_BASE", "https://api.openai.com/v1")
	v.SetDefault("CHATKIT_DOMAIN_KEY", "")
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("STRIPE_PUBLISHABLE_KEY", "")
	v.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	v.SetDefault("SITE_DOMAIN", "http://localhost:3000")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_WEBHOOK_DB", 0)
	v.SetDefault("WEBHOOK_EVENT_TTL", "72h")
	v.SetDefault("SLIDESHOW_AUTOPLAY", true)
	v.SetDefault("SLIDESHOW_INTERVAL_MS", 5000)
	v.SetDefault("SLIDESHOW_SWIPE_THRESHOLD", 50.0)
	v.SetDefault("SLIDES", DefaultSlides)
}

// Load reads config.yaml from the given directories (or "." and "./config"),
// overlays environment variables and returns the result.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	// CORS_ORIGINS from the environment arrives as one comma separated string.
	cfg.CORSOrigins = splitList(strings.Join(cfg.CORSOrigins, ","))
	if len(cfg.Slides) == 0 {
		cfg.Slides = DefaultSlides
	}
	cfg.Slides = models.OrderedSlides(cfg.Slides)
	return cfg, nil
}

func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SlideshowInterval is the autoplay period as a duration.
func (c Config) SlideshowInterval() time.Duration {
	return time.Duration(c.SlideshowIntervalMs) * time.Millisecond
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
