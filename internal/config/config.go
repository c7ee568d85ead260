package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Firebase    FirebaseConfig    `yaml:"firebase"`
	Store       StoreConfig       `yaml:"store"`
	Auth        AuthConfig        `yaml:"auth"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Rewards     RewardsConfig     `yaml:"rewards"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
	Email       EmailConfig       `yaml:"email"`
	Log         LogConfig         `yaml:"log"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// FirebaseConfig contains Google Cloud project settings shared by the
// Firestore, Storage, Vision and Auth clients
type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
	StorageBucket   string `yaml:"storage_bucket"`
}

// StoreConfig selects the document store backend
type StoreConfig struct {
	Type string `yaml:"type"` // "firestore" or "memory"
}

// AuthConfig selects the bearer token verifier
type AuthConfig struct {
	Provider string `yaml:"provider"` // "firebase" or "local"
	Secret   string `yaml:"secret"`   // HS256 secret for the local provider
}

// IngestConfig contains upload processing settings
type IngestConfig struct {
	MaxImageSizeMB int64 `yaml:"max_image_size_mb"`
}

// RewardsConfig contains the point policy
type RewardsConfig struct {
	PhotoPoints      int64 `yaml:"photo_points"`
	RedemptionPoints int64 `yaml:"redemption_points"`
}

// LeaderboardConfig contains snapshot job settings
type LeaderboardConfig struct {
	TopN           int `yaml:"top_n"`
	ResetBatchSize int `yaml:"reset_batch_size"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	LeaderboardSnapshot string `yaml:"leaderboard_snapshot"`
	Timezone            string `yaml:"timezone"`
}

// EmailConfig contains SendGrid settings for operational notifications
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	From           string `yaml:"from"`
	OpsEmail       string `yaml:"ops_email"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Firebase
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Firebase.ProjectID = val
	}
	if val := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); val != "" {
		c.Firebase.CredentialsFile = val
	}
	if val := os.Getenv("FIREBASE_STORAGE_BUCKET"); val != "" {
		c.Firebase.StorageBucket = val
	}

	// Store
	if val := os.Getenv("STORE_TYPE"); val != "" {
		c.Store.Type = val
	}

	// Auth
	if val := os.Getenv("AUTH_PROVIDER"); val != "" {
		c.Auth.Provider = val
	}
	if val := os.Getenv("AUTH_SECRET"); val != "" {
		c.Auth.Secret = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}
	if val := os.Getenv("OPS_EMAIL"); val != "" {
		c.Email.OpsEmail = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks if the configuration is valid and applies defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Store defaults and validation
	if c.Store.Type == "" {
		c.Store.Type = "memory"
	}
	if c.Store.Type != "firestore" && c.Store.Type != "memory" {
		return fmt.Errorf("unsupported store type: %s", c.Store.Type)
	}
	if c.Store.Type == "firestore" && c.Firebase.ProjectID == "" {
		return fmt.Errorf("firebase project_id is required for the firestore store")
	}

	// Auth defaults and validation
	if c.Auth.Provider == "" {
		c.Auth.Provider = "local"
	}
	if c.Auth.Provider != "firebase" && c.Auth.Provider != "local" {
		return fmt.Errorf("unsupported auth provider: %s", c.Auth.Provider)
	}
	if c.Auth.Provider == "local" {
		if c.Auth.Secret == "" {
			return fmt.Errorf("auth secret is required for the local provider")
		}
		if len(c.Auth.Secret) < 32 {
			return fmt.Errorf("auth secret must be at least 32 characters")
		}
	}

	// Ingest defaults
	if c.Ingest.MaxImageSizeMB == 0 {
		c.Ingest.MaxImageSizeMB = 10
	}

	// Reward policy defaults
	if c.Rewards.PhotoPoints == 0 {
		c.Rewards.PhotoPoints = 10
	}
	if c.Rewards.RedemptionPoints == 0 {
		c.Rewards.RedemptionPoints = 1000
	}

	// Leaderboard defaults. The reset batch size must stay under the
	// store's 500-operation batch write ceiling.
	if c.Leaderboard.TopN == 0 {
		c.Leaderboard.TopN = 100
	}
	if c.Leaderboard.ResetBatchSize == 0 {
		c.Leaderboard.ResetBatchSize = 400
	}
	if c.Leaderboard.ResetBatchSize > 500 {
		return fmt.Errorf("leaderboard reset_batch_size %d exceeds the store batch write limit", c.Leaderboard.ResetBatchSize)
	}

	// Scheduler defaults
	if c.Scheduler.LeaderboardSnapshot == "" {
		c.Scheduler.LeaderboardSnapshot = "0 0 0 * * 1" // Mondays at midnight
	}
	if c.Scheduler.Timezone == "" {
		c.Scheduler.Timezone = "Asia/Tokyo"
	}
	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("invalid scheduler timezone %q: %w", c.Scheduler.Timezone, err)
	}

	return nil
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MaxImageSizeBytes returns the ingest size ceiling in bytes
func (c *Config) MaxImageSizeBytes() int64 {
	return c.Ingest.MaxImageSizeMB << 20
}

// SchedulerLocation returns the time zone the snapshot schedule is bound to
func (c *Config) SchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
