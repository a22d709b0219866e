package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	nasushttp "github.com/kachayev/nasus/http"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for nasus.
type Config struct {
	Server  ServerConfig         `mapstructure:"server"`
	Files   FilesConfig          `mapstructure:"files"`
	CORS    nasushttp.CORSConfig `mapstructure:"cors"`
	Auth    AuthConfig           `mapstructure:"auth"`
	Metrics MetricsConfig        `mapstructure:"metrics"`
	Log     LogConfig            `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Bind string `mapstructure:"bind" validate:"required"`
}

// FilesConfig holds the serving policy for the directory tree.
type FilesConfig struct {
	Dir           string   `mapstructure:"dir" validate:"required"`
	IndexDoc      string   `mapstructure:"index_doc"`
	NoIndex       bool     `mapstructure:"no_index"`
	Exclude       []string `mapstructure:"exclude"`
	FollowSymlink bool     `mapstructure:"follow_symlink"`
	IncludeHidden bool     `mapstructure:"include_hidden"`
	NoCache       bool     `mapstructure:"no_cache"`
	NoCompression bool     `mapstructure:"no_compression"`
}

// AuthConfig holds basic authentication settings. An empty user disables
// authentication; an empty password with a user set means the password is
// collected interactively at startup.
type AuthConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Realm    string `mapstructure:"realm" validate:"required"`
}

// Enabled reports whether authentication is configured.
func (c AuthConfig) Enabled() bool {
	return c.User != ""
}

// Credential splits the configured user into its user and password parts.
// The --auth flag accepts "user" or "user:password"; a password given
// inline wins over auth.password.
func (c AuthConfig) Credential() (user, password string) {
	if u, p, ok := strings.Cut(c.User, ":"); ok {
		return u, p
	}
	return c.User, c.Password
}

// MetricsConfig holds the Prometheus listener settings.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Enabled reports whether the metrics listener is configured.
func (c MetricsConfig) Enabled() bool {
	return c.Addr != ""
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":               "server.port",
	"bind":               "server.bind",
	"dir":                "files.dir",
	"index-doc":          "files.index_doc",
	"no-index":           "files.no_index",
	"exclude":            "files.exclude",
	"follow-symlink":     "files.follow_symlink",
	"include-hidden":     "files.include_hidden",
	"no-cache":           "files.no_cache",
	"no-compression":     "files.no_compression",
	"cors-origin":        "cors.origin",
	"cors-methods":       "cors.methods",
	"cors-allow-headers": "cors.allow_headers",
	"auth":               "auth.user",
	"realm":              "auth.realm",
	"metrics-addr":       "metrics.addr",
	"log-level":          "log.level",
	"log-format":         "log.format",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Use custom mapping if it exists, otherwise use flag name as-is
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 4444)
	v.SetDefault("server.bind", "0.0.0.0")

	v.SetDefault("files.dir", ".")
	v.SetDefault("files.index_doc", "") // empty means no index document
	v.SetDefault("files.no_index", false)
	v.SetDefault("files.exclude", []string{})
	v.SetDefault("files.follow_symlink", false)
	v.SetDefault("files.include_hidden", false)
	v.SetDefault("files.no_cache", false)
	v.SetDefault("files.no_compression", false)

	v.SetDefault("cors.origin", "") // empty disables cross-origin handling
	v.SetDefault("cors.methods", "")
	v.SetDefault("cors.allow_headers", "")

	v.SetDefault("auth.user", "") // empty disables authentication
	v.SetDefault("auth.password", "")
	v.SetDefault("auth.realm", "nasus")

	v.SetDefault("metrics.addr", "") // empty disables the metrics listener

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("NASUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
