// Package config provides configuration loading and management for the sync service.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/enrolsync/arlo-catalog-sync/internal/arlo"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
	"github.com/enrolsync/arlo-catalog-sync/internal/telemetry"
)

// EnvPrefix is the prefix for every environment variable the service reads
const EnvPrefix = "ARLO_SYNC"

const (
	// StorageTypeFile keeps checkpoints and records as JSON files
	StorageTypeFile = "file"

	// StorageTypeDatabase keeps checkpoints and records in PostgreSQL
	StorageTypeDatabase = "database"
)

const (
	// DefaultSchedule runs the driver every fifteen minutes (six field cron spec, seconds first)
	DefaultSchedule = "0 */15 * * * *"

	// DefaultDataDir is where file storage lives when not configured
	DefaultDataDir = "./data"

	// DefaultAPIAddress is the admin API listen address
	DefaultAPIAddress = ":8080"
)

const (
	// AuthModeAnonymous serves the admin API without authentication
	AuthModeAnonymous = "anonymous"

	// AuthModeToken requires an HMAC signed JWT bearer token
	AuthModeToken = "token"
)

// DefaultPublicPaths are served without authentication in token mode
var DefaultPublicPaths = []string{"/health", "/readiness", "/version"}

// Admin API actions
const (
	// ActionRead lists tenants, checkpoints and the API status
	ActionRead = "read"
	// ActionWrite triggers manual syncs
	ActionWrite = "write"
	// ActionAdmin overrides the API status flag
	ActionAdmin = "admin"
)

// DefaultScopeMapping is used when no scope mapping is configured
var DefaultScopeMapping = []ScopeMappingEntry{
	{Scope: "arlo-sync:read", Actions: []string{ActionRead}},
	{Scope: "arlo-sync:write", Actions: []string{ActionRead, ActionWrite}},
	{Scope: "arlo-sync:admin", Actions: []string{ActionRead, ActionWrite, ActionAdmin}},
}

// CronParser parses schedules in the format the coordinator accepts
var CronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	Tenants   []TenantConfig    `yaml:"tenants"`
	Sync      SyncConfig        `yaml:"sync,omitempty"`
	Storage   *StorageConfig    `yaml:"storage,omitempty"`
	Database  *DatabaseConfig   `yaml:"database,omitempty"`
	API       APIConfig         `yaml:"api,omitempty"`
	Log       logger.Config     `yaml:"log,omitempty"`
	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`
}

// TenantConfig is one Arlo platform to synchronize
type TenantConfig struct {
	// Platform is the Arlo platform host, e.g. "demo.arlo.co"
	Platform string `yaml:"platform"`

	// Enabled defaults to true
	Enabled *bool `yaml:"enabled,omitempty"`

	// Username for HTTP basic authentication against the Auth API
	Username string `yaml:"username"`

	// PasswordFile is the path to a file containing the API password.
	// When empty the password is read from ARLO_SYNC_<PLATFORM>_PASSWORD.
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// BaseURL overrides the resource root, defaults to https://<platform>/api/2012-02-01/auth/resources/
	BaseURL string `yaml:"baseURL,omitempty"`

	// PageSize sets the top= parameter. Zero leaves paging to the server.
	PageSize int `yaml:"pageSize,omitempty"`
}

// SyncConfig controls when collections are pulled
type SyncConfig struct {
	// Schedule is the cron spec the coordinator runs on
	Schedule string `yaml:"schedule,omitempty"`

	// PullInterval is the minimum time between drained pulls of the same collection.
	// Defaults to zero, meaning any scheduled run may pull.
	PullInterval string `yaml:"pullInterval,omitempty"`

	// RequestTimeout bounds each API request (e.g. "30s")
	RequestTimeout string `yaml:"requestTimeout,omitempty"`
}

// StorageConfig selects the storage backend
type StorageConfig struct {
	// Type is file or database
	Type string `yaml:"type"`

	// DataDir is the directory used by file storage
	DataDir string `yaml:"dataDir,omitempty"`
}

// APIConfig configures the admin HTTP API
type APIConfig struct {
	Address string `yaml:"address,omitempty"`

	// Auth protects the API. Nil means anonymous access.
	Auth *AuthConfig `yaml:"auth,omitempty"`
}

// AuthConfig configures bearer token authentication for the admin API
type AuthConfig struct {
	// Mode is anonymous or token. Defaults to anonymous.
	Mode string `yaml:"mode,omitempty"`

	// SecretFile holds the HMAC key tokens are signed with.
	// When empty the key is read from ARLO_SYNC_API_TOKEN_SECRET.
	SecretFile string `yaml:"secretFile,omitempty"`

	// Issuer, when set, must match the iss claim
	Issuer string `yaml:"issuer,omitempty"`

	// Audience, when set, must be present in the aud claim
	Audience string `yaml:"audience,omitempty"`

	// Realm is reported in WWW-Authenticate challenges
	Realm string `yaml:"realm,omitempty"`

	// PublicPaths bypass authentication. Defaults to DefaultPublicPaths.
	PublicPaths []string `yaml:"publicPaths,omitempty"`

	// ScopeMapping grants actions to token scopes. Defaults to DefaultScopeMapping.
	ScopeMapping []ScopeMappingEntry `yaml:"scopeMapping,omitempty"`
}

// ScopeMappingEntry grants Actions to tokens carrying Scope
type ScopeMappingEntry struct {
	Scope   string   `yaml:"scope"`
	Actions []string `yaml:"actions"`
}

// DatabaseConfig defines database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname or IP address
	Host string `yaml:"host"`

	// Port is the database server port
	Port int `yaml:"port"`

	// User is the database username
	User string `yaml:"user"`

	// PasswordFile is the path to a file containing the database password
	// This is the recommended approach for production deployments
	// The file should contain only the password with optional trailing whitespace
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// Database is the database name
	Database string `yaml:"database"`

	// SSLMode is the SSL mode for the connection (disable, require, verify-ca, verify-full)
	SSLMode string `yaml:"sslMode,omitempty"`

	// MaxOpenConns is the maximum number of open connections to the database
	MaxOpenConns int32 `yaml:"maxOpenConns,omitempty"`

	// MaxIdleConns is the maximum number of idle connections in the pool
	MaxIdleConns int32 `yaml:"maxIdleConns,omitempty"`

	// ConnMaxLifetime is the maximum lifetime of a connection (e.g., "1h", "30m")
	ConnMaxLifetime string `yaml:"connMaxLifetime,omitempty"`
}

// IsEnabled reports whether the tenant should be synced
func (t *TenantConfig) IsEnabled() bool {
	return t.Enabled == nil || *t.Enabled
}

// GetBaseURL returns the configured base URL or the platform default
func (t *TenantConfig) GetBaseURL() string {
	if t.BaseURL != "" {
		return t.BaseURL
	}
	return arlo.DefaultBaseURL(t.Platform)
}

// PasswordEnvVar returns the environment variable holding the tenant password,
// e.g. ARLO_SYNC_DEMO_ARLO_CO_PASSWORD for demo.arlo.co
func (t *TenantConfig) PasswordEnvVar() string {
	var b strings.Builder
	for _, r := range strings.ToUpper(t.Platform) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return EnvPrefix + "_" + b.String() + "_PASSWORD"
}

// GetPassword returns the API password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from the tenant environment variable (see PasswordEnvVar)
func (t *TenantConfig) GetPassword() (string, error) {
	return readSecret(t.PasswordFile, t.PasswordEnvVar(), fmt.Sprintf("tenant %s password", t.Platform))
}

// GetSchedule returns the cron schedule, using DefaultSchedule if not specified
func (s *SyncConfig) GetSchedule() string {
	if s.Schedule == "" {
		return DefaultSchedule
	}
	return s.Schedule
}

// GetPullInterval returns the parsed pull interval, zero if unset
func (s *SyncConfig) GetPullInterval() time.Duration {
	if s.PullInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(s.PullInterval)
	if err != nil {
		return 0
	}
	return d
}

// GetRequestTimeout returns the parsed request timeout, zero if unset
func (s *SyncConfig) GetRequestTimeout() time.Duration {
	if s.RequestTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(s.RequestTimeout)
	if err != nil {
		return 0
	}
	return d
}

// GetStorageType returns the storage type, inferring database when only a database block is present
func (c *Config) GetStorageType() string {
	if c.Storage != nil && c.Storage.Type != "" {
		return c.Storage.Type
	}
	if c.Database != nil {
		return StorageTypeDatabase
	}
	return StorageTypeFile
}

// GetFileStorageBaseDir returns the data directory for file storage
func (c *Config) GetFileStorageBaseDir() string {
	if c.Storage != nil && c.Storage.DataDir != "" {
		return c.Storage.DataDir
	}
	return DefaultDataDir
}

// GetAPIAddress returns the admin API address
func (c *Config) GetAPIAddress() string {
	if c.API.Address == "" {
		return DefaultAPIAddress
	}
	return c.API.Address
}

// GetMode returns the auth mode, anonymous when unset
func (a *AuthConfig) GetMode() string {
	if a == nil || a.Mode == "" {
		return AuthModeAnonymous
	}
	return a.Mode
}

// GetSecret reads the token signing key
func (a *AuthConfig) GetSecret() (string, error) {
	return readSecret(a.SecretFile, EnvPrefix+"_API_TOKEN_SECRET", "API token secret")
}

// GetPublicPaths returns the paths served without authentication
func (a *AuthConfig) GetPublicPaths() []string {
	if a == nil || a.PublicPaths == nil {
		return DefaultPublicPaths
	}
	return a.PublicPaths
}

// GetScopeMapping returns the configured scope mapping or DefaultScopeMapping
func (a *AuthConfig) GetScopeMapping() []ScopeMappingEntry {
	if a == nil || len(a.ScopeMapping) == 0 {
		return DefaultScopeMapping
	}
	return a.ScopeMapping
}

// FindTenant returns the tenant configured for platform
func (c *Config) FindTenant(platform string) (*TenantConfig, bool) {
	for i := range c.Tenants {
		if c.Tenants[i].Platform == platform {
			return &c.Tenants[i], true
		}
	}
	return nil, false
}

// GetPassword returns the database password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from ARLO_SYNC_DATABASE_PASSWORD environment variable
//
// The password from file will have leading/trailing whitespace trimmed.
func (d *DatabaseConfig) GetPassword() (string, error) {
	return readSecret(d.PasswordFile, EnvPrefix+"_DATABASE_PASSWORD", "database password")
}

// GetConnectionString builds a PostgreSQL connection string with proper password handling.
// The password is URL-escaped to handle special characters safely.
func (d *DatabaseConfig) GetConnectionString() (string, error) {
	password, err := d.GetPassword()
	if err != nil {
		return "", err
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	// URL-escape the password to handle special characters
	escapedPassword := url.QueryEscape(password)

	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		escapedPassword,
		d.Host,
		d.Port,
		d.Database,
		sslMode,
	)

	return connString, nil
}

func readSecret(file, envVar, what string) (string, error) {
	if file != "" {
		// Use filepath.Clean to prevent path traversal attacks
		cleanPath := filepath.Clean(file)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read %s from file %s: %w", what, file, err)
		}

		return strings.TrimSpace(string(data)), nil
	}

	if v := os.Getenv(envVar); v != "" {
		return v, nil
	}

	return "", fmt.Errorf("no %s configured: set a file or the %s environment variable", what, envVar)
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	// Read the entire file into memory
	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks the configuration for missing or malformed values
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if len(c.Tenants) == 0 {
		return fmt.Errorf("at least one tenant must be configured")
	}

	platforms := make(map[string]bool)
	for i, tenant := range c.Tenants {
		if tenant.Platform == "" {
			return fmt.Errorf("tenant[%d]: platform is required", i)
		}
		if platforms[tenant.Platform] {
			return fmt.Errorf("tenant[%d]: duplicate platform '%s'", i, tenant.Platform)
		}
		platforms[tenant.Platform] = true

		if err := validateTenant(&tenant, i); err != nil {
			return err
		}
	}

	if err := c.Sync.validate(); err != nil {
		return err
	}

	switch c.GetStorageType() {
	case StorageTypeFile:
	case StorageTypeDatabase:
		if c.Database == nil {
			return fmt.Errorf("storage: database configuration is required when storage type is database")
		}
	default:
		return fmt.Errorf("storage: unknown storage type '%s'", c.GetStorageType())
	}

	if err := c.API.Auth.validate(); err != nil {
		return fmt.Errorf("api.auth: %w", err)
	}

	if c.Telemetry != nil {
		if err := c.Telemetry.Validate(); err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
	}

	return nil
}

func (a *AuthConfig) validate() error {
	switch mode := a.GetMode(); mode {
	case AuthModeAnonymous, AuthModeToken:
	default:
		return fmt.Errorf("unsupported mode '%s'", mode)
	}

	for i, entry := range a.GetScopeMapping() {
		if entry.Scope == "" {
			return fmt.Errorf("scopeMapping[%d]: scope is required", i)
		}
		for _, action := range entry.Actions {
			switch action {
			case ActionRead, ActionWrite, ActionAdmin:
			default:
				return fmt.Errorf("scopeMapping[%d]: unknown action '%s'", i, action)
			}
		}
	}
	return nil
}

func validateTenant(tenant *TenantConfig, index int) error {
	prefix := fmt.Sprintf("tenant[%d] (%s)", index, tenant.Platform)

	if tenant.Username == "" {
		return fmt.Errorf("%s: username is required", prefix)
	}
	if tenant.PageSize < 0 {
		return fmt.Errorf("%s: pageSize must not be negative", prefix)
	}
	if tenant.BaseURL != "" {
		u, err := url.Parse(tenant.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s: baseURL must be an absolute URL", prefix)
		}
	}
	return nil
}

func (s *SyncConfig) validate() error {
	if _, err := CronParser.Parse(s.GetSchedule()); err != nil {
		return fmt.Errorf("sync.schedule must be a valid cron spec: %w", err)
	}
	if s.PullInterval != "" {
		d, err := time.ParseDuration(s.PullInterval)
		if err != nil {
			return fmt.Errorf("sync.pullInterval must be a valid duration (e.g., '30m', '1h'): %w", err)
		}
		if d < 0 {
			return fmt.Errorf("sync.pullInterval must not be negative")
		}
	}
	if s.RequestTimeout != "" {
		if _, err := time.ParseDuration(s.RequestTimeout); err != nil {
			return fmt.Errorf("sync.requestTimeout must be a valid duration: %w", err)
		}
	}
	return nil
}
