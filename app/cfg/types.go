package cfg

import "time"

type Cfg struct {
	// Server
	Port    string
	BaseUrl string

	// Upstream
	SourceURL    string
	UserAgent    string
	FetchTimeout time.Duration
	UpstreamRate float64
	CacheTTL     time.Duration

	// Slideshow runtime values, kept raw and parsed leniently by benefits.NewRuntimeConfig
	SlideIntervalSeconds   string
	RefreshIntervalMinutes string

	// Background refresh
	Prefetch    bool
	WorkerCount int

	// Presentation
	ThemeFile string

	// Application metadata
	Timezone string
	Debug    bool
	LogJSON  bool
	Version  string
}

type ClientCfg struct {
	Endpoint string
	Timeout  time.Duration
	Debug    bool
	Version  string
}
