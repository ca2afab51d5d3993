package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/benefit-slides/app/benefits"
	"github.com/lysyi3m/benefit-slides/app/cache"
	"github.com/lysyi3m/benefit-slides/app/theme"
)

const benefitsCacheControl = "public, max-age=0, s-maxage=300"

func NewHandler(loader LoaderInterface, slot *cache.Slot, generator GeneratorInterface,
	brand theme.Theme, version string) *Handler {
	return &Handler{
		loader:    loader,
		slot:      slot,
		generator: generator,
		theme:     brand,
		version:   version,
	}
}

// GetBenefits serves the current payload, live or stale. Clients may revalidate
// with If-None-Match against the body hash.
func (h *Handler) GetBenefits(c *gin.Context) {
	payload, err := h.loader.Load(c.Request.Context())
	if err != nil {
		h.upstreamFailure(c, err)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to encode benefits", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))

	c.Header("Cache-Control", benefitsCacheControl)
	c.Header("ETag", etag)

	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *Handler) GetBenefitsRSS(c *gin.Context) {
	payload, err := h.loader.Load(c.Request.Context())
	if err != nil {
		h.upstreamFailure(c, err)
		return
	}

	rss, err := h.generator.Run(payload)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Cache-Control", benefitsCacheControl)
	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Benefit-Items", strconv.Itoa(len(payload.Items)))
	c.Header("X-Benefit-Stale", strconv.FormatBool(payload.Stale))
	c.Header("X-Last-Updated", payload.UpdatedAt)

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, h.theme)
}

func (h *Handler) GetHealth(c *gin.Context) {
	cacheState := map[string]any{
		"present": false,
	}

	if entry, ok := h.slot.Get(); ok {
		cacheState["present"] = true
		cacheState["fetchedAt"] = benefits.FormatTimestamp(entry.FetchedAt)
		cacheState["items"] = len(entry.Payload.Items)
		cacheState["sourceUrl"] = entry.Payload.SourceURL
	}

	c.JSON(http.StatusOK, map[string]any{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
		"cache":     cacheState,
	})
}

func (h *Handler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     "Benefit Slides",
		"version":     h.version,
		"description": "Member benefits extracted from " + h.loader.SourceURL(),
		"endpoints": map[string]string{
			"benefits": "/api/benefits",
			"rss":      "/api/benefits/rss",
			"theme":    "/api/theme",
			"health":   "/health",
			"metrics":  "/metrics",
		},
	})
}

func (h *Handler) upstreamFailure(c *gin.Context, err error) {
	slog.Error("Benefits unavailable", "source_url", h.loader.SourceURL(), "error", err)
	c.JSON(http.StatusBadGateway, errorResponse{
		Error:     err.Error(),
		SourceURL: h.loader.SourceURL(),
	})
}
