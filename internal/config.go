package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Vault  VaultConfig       `yaml:"vault"`
	Note   NoteConfig        `yaml:"note"`
	SQLite SQLiteConfig      `yaml:"sqlite"`
	Auth   AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.Note.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the vault layout: the vault root plus the daily-note
// and attachment directories inside it.
type VaultConfig struct {
	Path          string `yaml:"path"`
	DailyDir      string `yaml:"daily_dir"`
	AttachmentDir string `yaml:"attachment_dir"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.DailyDir, validation.Required),
		validation.Field(&c.AttachmentDir, validation.Required),
	)
}

// NoteConfig holds the section and tag conventions applied to daily notes.
// AnchorSection is the retrospective section that always stays last in the
// note; new sections are inserted above it.
type NoteConfig struct {
	DefaultSection string `yaml:"default_section"`
	AnchorSection  string `yaml:"anchor_section"`
	TodoSection    string `yaml:"todo_section"`
	BaselineTag    string `yaml:"baseline_tag"`
}

// Validate validates the note conventions.
func (c *NoteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultSection, validation.Required),
		validation.Field(&c.AnchorSection, validation.Required),
		validation.Field(&c.TodoSection, validation.Required),
		validation.Field(&c.BaselineTag, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 3939,
			},
		},
		Vault: VaultConfig{
			Path:          "./vault",
			DailyDir:      "10.Daily Notes",
			AttachmentDir: "attachments",
		},
		Note: NoteConfig{
			DefaultSection: "메모",
			AnchorSection:  "오늘 회고",
			TodoSection:    "오늘할일",
			BaselineTag:    "daily",
		},
		SQLite: SQLiteConfig{
			Path: "./haru.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
