package api

import (
	"context"

	"github.com/lysyi3m/benefit-slides/app/benefits"
	"github.com/lysyi3m/benefit-slides/app/cache"
	"github.com/lysyi3m/benefit-slides/app/loader"
	"github.com/lysyi3m/benefit-slides/app/theme"
)

type LoaderInterface interface {
	Load(ctx context.Context) (benefits.Payload, error)
	SourceURL() string
}

var _ LoaderInterface = (*loader.Loader)(nil)

type GeneratorInterface interface {
	Run(payload benefits.Payload) (string, error)
}

var _ GeneratorInterface = (*benefits.Generator)(nil)

type Handler struct {
	loader    LoaderInterface
	slot      *cache.Slot
	generator GeneratorInterface
	theme     theme.Theme
	version   string
}

type errorResponse struct {
	Error     string `json:"error"`
	SourceURL string `json:"sourceUrl"`
}
