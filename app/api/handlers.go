package api

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hwg121/eProject-sub001/app/cfg"
	"github.com/hwg121/eProject-sub001/app/content"
	"github.com/hwg121/eProject-sub001/app/json"
	"github.com/hwg121/eProject-sub001/app/tasks"
)

const FallbackHeader = "X-Content-Fallback"

func NewHandler(resolver ResolverInterface, configs ConfigCatalog, banner BannerInterface,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		resolver:  resolver,
		configs:   configs,
		banner:    banner,
		scheduler: scheduler,
	}
}

func (h *Handler) GetContent(c *gin.Context) {
	t, err := content.ParseType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_content_type", "type": c.Param("type")})
		return
	}

	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slug parameter"})
		return
	}

	res, err := h.resolver.Resolve(c.Request.Context(), t, slug)
	if err != nil {
		h.writeResolutionError(c, t, slug, err)
		return
	}

	// Nothing is written until the record encodes.
	body, err := json.Marshal(res.Record)
	if err != nil {
		slog.Error("Failed to render record", "type", t, "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.Header("X-Content-Type", string(t))
	if res.Fallback {
		c.Header(FallbackHeader, "true")
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *Handler) writeResolutionError(c *gin.Context, t content.Type, slug string, err error) {
	var resErr *content.ResolutionError
	if !errors.As(err, &resErr) {
		slog.Error("Resolution error", "type", t, "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	body := gin.H{
		"error": string(resErr.Kind),
		"type":  resErr.Type,
		"slug":  resErr.Slug,
	}

	switch resErr.Kind {
	case content.KindTransport:
		slog.Error("Content API unavailable", "type", t, "slug", slug, "error", err)
		c.JSON(http.StatusBadGateway, body)
	default:
		c.JSON(http.StatusNotFound, body)
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp":             time.Now().In(time.Local).Format(time.RFC3339),
		"version":               cfg.GetVersion(),
		"loaded_configurations": h.configs.GetConfigCount(),
		"maintenance":           h.banner.Active(),
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetMaintenance(c *gin.Context) {
	if !h.banner.Active() {
		c.JSON(http.StatusOK, gin.H{"active": false, "ends_at": nil, "remaining": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active":    true,
		"ends_at":   h.banner.EndsAt(),
		"remaining": h.banner.Text(),
	})
}

func (h *Handler) APIListContentTypes(c *gin.Context) {
	configs := h.configs.GetConfigs()

	names := make([]string, 0, len(configs))
	for t := range configs {
		names = append(names, string(t))
	}
	sort.Strings(names)

	types := make([]map[string]interface{}, 0, len(configs))
	for _, name := range names {
		config := configs[content.Type(name)]
		types = append(types, map[string]interface{}{
			"type":             config.Type,
			"endpoint":         config.Endpoint,
			"format":           config.Format,
			"fallback_policy":  config.FallbackPolicy,
			"slug_field":       config.SlugField,
			"title_field":      config.TitleField,
			"enabled":          config.Settings.Enabled,
			"refresh_interval": config.RefreshDuration().String(),
			"timeout":          config.TimeoutDuration().String(),
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"content_types": types,
		"total":         len(types),
	})
}

func (h *Handler) APIRefreshContentType(c *gin.Context) {
	t, err := content.ParseType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content type not found"})
		return
	}

	taskID, err := h.scheduler.EnqueueRefresh(t)
	if err != nil {
		slog.Error("Error enqueueing refresh task", "type", t, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue refresh task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Refresh task enqueued successfully",
		"task": gin.H{
			"id":           taskID,
			"type":         tasks.TaskTypeRefreshCollection,
			"content_type": t,
		},
	})
}
