package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Server configuration
	Port    string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://slides.example.com)"`

	// Upstream configuration
	SourceURL    string        `long:"source-url" env:"SOURCE_URL" default:"https://www.studentersamfundet.dk/medlemsfordele" description:"Benefits page to extract"`
	UserAgent    string        `long:"user-agent" env:"USER_AGENT" default:"MemberBenefitsSlideshow/1.0 (+vercel)" description:"User agent string for upstream requests"`
	FetchTimeout time.Duration `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"15s" description:"Timeout for a single upstream fetch"`
	UpstreamRate float64       `long:"upstream-rate" env:"UPSTREAM_RATE" default:"1" description:"Max upstream requests per second (<=0 disables limiting)"`
	CacheTTL     int           `long:"cache-ttl" env:"CACHE_TTL" default:"0" description:"Seconds a successful payload is served without refetching"`

	// Slideshow runtime configuration
	SlideIntervalSeconds   string `long:"slide-interval" env:"SLIDE_INTERVAL_SECONDS" description:"Seconds between slides (default 10, min 3)"`
	RefreshIntervalMinutes string `long:"refresh-interval" env:"REFRESH_INTERVAL_MINUTES" description:"Minutes between refreshes (default 20, min 5)"`

	// Background refresh
	Prefetch    bool `long:"prefetch" env:"PREFETCH" description:"Refresh the cache in the background"`
	WorkerCount int  `long:"worker-count" env:"WORKER_COUNT" default:"1" description:"Number of background refresh workers"`

	// Presentation
	ThemeFile string `long:"theme-file" env:"THEME_FILE" description:"YAML file overriding the brand theme"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/Copenhagen)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
	LogJSON  bool   `long:"log-json" env:"LOG_JSON" description:"Emit logs as JSON"`
}

type rawClientCfg struct {
	Endpoint string        `long:"endpoint" env:"BENEFITS_ENDPOINT" default:"http://localhost:8080/api/benefits" description:"Benefits API endpoint"`
	Timeout  time.Duration `long:"timeout" env:"CLIENT_TIMEOUT" default:"10s" description:"Timeout for a single poll"`
	Debug    bool          `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Load reads the server configuration from .env, environment and flags.
// It returns nil, nil when help was requested.
func Load() (*Cfg, error) {
	loadDotEnv()

	cfg, err := parse(os.Args[1:])
	if isHelp(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// LoadClient reads the slideshow client configuration. Like Load, it
// returns nil, nil when help was requested.
func LoadClient() (*ClientCfg, error) {
	loadDotEnv()

	cfg, err := parseClient(os.Args[1:])
	if isHelp(err) {
		return nil, nil
	}
	return cfg, err
}

func parse(args []string) (*Cfg, error) {
	var raw rawCfg

	if err := parseArgs(&raw, args); err != nil {
		return nil, err
	}

	if raw.FetchTimeout < 0 {
		return nil, fmt.Errorf("fetch timeout must not be negative")
	}
	if raw.CacheTTL < 0 {
		return nil, fmt.Errorf("cache ttl must not be negative")
	}

	return &Cfg{
		Port:                   raw.Port,
		BaseUrl:                raw.BaseUrl,
		SourceURL:              raw.SourceURL,
		UserAgent:              raw.UserAgent,
		FetchTimeout:           raw.FetchTimeout,
		UpstreamRate:           raw.UpstreamRate,
		CacheTTL:               time.Duration(raw.CacheTTL) * time.Second,
		SlideIntervalSeconds:   raw.SlideIntervalSeconds,
		RefreshIntervalMinutes: raw.RefreshIntervalMinutes,
		Prefetch:               raw.Prefetch,
		WorkerCount:            max(raw.WorkerCount, 1),
		ThemeFile:              raw.ThemeFile,
		Timezone:               raw.Timezone,
		Debug:                  raw.Debug,
		LogJSON:                raw.LogJSON,
		Version:                GetVersion(),
	}, nil
}

func parseClient(args []string) (*ClientCfg, error) {
	var raw rawClientCfg

	if err := parseArgs(&raw, args); err != nil {
		return nil, err
	}

	return &ClientCfg{
		Endpoint: raw.Endpoint,
		Timeout:  raw.Timeout,
		Debug:    raw.Debug,
		Version:  GetVersion(),
	}, nil
}

var errHelp = errors.New("help requested")

func parseArgs(data any, args []string) error {
	parser := flags.NewParser(data, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return errHelp
		}
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	return nil
}

func isHelp(err error) bool {
	return errors.Is(err, errHelp)
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}
}

func applyTimezone(timezone string) error {
	if timezone == "" {
		return nil
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}

	time.Local = loc
	slog.Debug("Timezone configured", "timezone", timezone)

	return nil
}
