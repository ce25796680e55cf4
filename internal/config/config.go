package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const envPrefix = "SITE_"

// Config holds the web server settings. Environment variables provide
// defaults and command line flags override them.
type Config struct {
	Addr         string
	TemplatesDir string
	PublicDir    string
	ContentDir   string
	LocalesDir   string
	// DataBaseURL loads data/*.json over HTTP when set, else from PublicDir.
	DataBaseURL string
	// BaseURL is the absolute site origin used in canonical links.
	BaseURL      string
	FormEndpoint string
	Secure       bool
	Dev          bool

	GoatCounterCode  string
	GoatCounterToken string
	FlashHashKey     []byte

	ContactInterval time.Duration
	ContactBurst    int
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

type Option func(*loaderOptions)

type loaderOptions struct {
	envMap       map[string]string
	useSystemEnv bool
	output       io.Writer
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.LookupEnv.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// WithOutput sets where flag usage and parse errors are printed.
func WithOutput(w io.Writer) Option {
	return func(o *loaderOptions) {
		o.output = w
	}
}

// Load resolves the configuration from the environment and args (without
// the program name).
func Load(args []string, opts ...Option) (Config, error) {
	options := loaderOptions{useSystemEnv: true, output: os.Stderr}
	for _, opt := range opts {
		opt(&options)
	}
	lookup := func(key string) (string, bool) {
		if v, ok := options.envMap[key]; ok {
			return v, true
		}
		if options.useSystemEnv {
			return os.LookupEnv(key)
		}
		return "", false
	}
	env := func(key string) (string, bool) { return lookup(envPrefix + key) }

	port := stringWithDefault(env, "PORT", "")
	if port == "" {
		port = stringWithDefault(lookup, "PORT", "8080")
	}

	var cfg Config
	var flashKey, contactInterval string
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	fs.SetOutput(options.output)
	fs.StringVar(&cfg.Addr, "addr", ":"+port, "HTTP listen address")
	fs.StringVar(&cfg.TemplatesDir, "templates", stringWithDefault(env, "TEMPLATES_DIR", "templates"), "templates directory")
	fs.StringVar(&cfg.PublicDir, "public", stringWithDefault(env, "PUBLIC_DIR", "public"), "public assets directory")
	fs.StringVar(&cfg.ContentDir, "content", stringWithDefault(env, "CONTENT_DIR", "content"), "markdown content directory")
	fs.StringVar(&cfg.LocalesDir, "locales", stringWithDefault(env, "LOCALES_DIR", "locales"), "message bundle directory")
	fs.StringVar(&cfg.DataBaseURL, "data-url", stringWithDefault(env, "DATA_BASE_URL", ""), "base URL of data/*.json (empty reads the public directory)")
	fs.StringVar(&cfg.BaseURL, "base-url", stringWithDefault(env, "BASE_URL", ""), "absolute site URL for canonical links")
	fs.StringVar(&cfg.FormEndpoint, "form-endpoint", stringWithDefault(env, "FORM_ENDPOINT", ""), "contact form endpoint overriding config.json")
	fs.BoolVar(&cfg.Secure, "secure", boolWithDefault(env, "SECURE_COOKIES", false), "mark cookies Secure")
	fs.BoolVar(&cfg.Dev, "dev", boolWithDefault(env, "DEV", false), "reload templates on each request and log to console")
	fs.StringVar(&cfg.GoatCounterCode, "goatcounter", stringWithDefault(env, "GOATCOUNTER_CODE", ""), "GoatCounter site code")
	fs.StringVar(&cfg.GoatCounterToken, "goatcounter-token", stringWithDefault(env, "GOATCOUNTER_TOKEN", ""), "GoatCounter API token for server-side counting")
	fs.StringVar(&flashKey, "flash-key", stringWithDefault(env, "FLASH_HASH_KEY", ""), "flash cookie signing key, at least 32 bytes")
	fs.StringVar(&contactInterval, "contact-interval", stringWithDefault(env, "CONTACT_INTERVAL", "1m"), "minimum interval between contact posts per client")
	fs.IntVar(&cfg.ContactBurst, "contact-burst", intWithDefault(env, "CONTACT_BURST", 3), "contact posts allowed in a burst")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.FlashHashKey = []byte(flashKey)

	var invalid []string
	if d, err := time.ParseDuration(contactInterval); err != nil || d < 0 {
		invalid = append(invalid, "ContactInterval")
	} else {
		cfg.ContactInterval = d
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		invalid = append(invalid, "Addr")
	}
	if cfg.BaseURL != "" && !absoluteURL(cfg.BaseURL) {
		invalid = append(invalid, "BaseURL")
	}
	if cfg.DataBaseURL != "" && !absoluteURL(cfg.DataBaseURL) {
		invalid = append(invalid, "DataBaseURL")
	}
	if cfg.FormEndpoint != "" && !absoluteURL(cfg.FormEndpoint) {
		invalid = append(invalid, "FormEndpoint")
	}
	if len(flashKey) > 0 && len(flashKey) < 32 {
		invalid = append(invalid, "FlashHashKey")
	}
	if cfg.GoatCounterToken != "" && cfg.GoatCounterCode == "" {
		invalid = append(invalid, "GoatCounterCode")
	}
	if cfg.ContactBurst <= 0 {
		invalid = append(invalid, "ContactBurst")
	}
	if len(invalid) > 0 {
		return Config{}, &ValidationError{fields: invalid}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

func absoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
