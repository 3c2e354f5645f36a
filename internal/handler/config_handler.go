package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jigardalal/engageNinja-sub004/pkg/logger"
	"github.com/jigardalal/engageNinja-sub004/prometheus"
)

// ListConfig returns all platform configuration keys.
func (h *Handler) ListConfig(c echo.Context) error {
	log := logger.FromContext(c)

	if _, err := h.requirePlatformAdmin(c); err != nil {
		return respondError(c, log, err)
	}

	settings, err := h.Settings.List(c.Request().Context())
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"settings": settings})
}

// UpdateConfig upserts one platform configuration key. The write is audited
// as config.update before the handler reports success.
func (h *Handler) UpdateConfig(c echo.Context) error {
	log := logger.FromContext(c)

	actorID, err := h.requirePlatformAdmin(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := c.Bind(&req); err != nil || req.Key == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "key is required"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.Settings.Upsert(c.Request().Context(), req.Key, req.Value); err != nil {
		return respondError(c, log, err)
	}

	if err := h.Recorder.Record(c.Request().Context(), actorID, "config.update",
		fmt.Sprintf("config:%s", req.Key),
		echo.Map{"key": req.Key, "value": req.Value}); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Config updated",
		zap.String("key", req.Key),
		zap.Uint("actor_user_id", actorID))
	return c.JSON(http.StatusOK, echo.Map{"key": req.Key, "value": req.Value})
}
