package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vfg2006/weekly-growth-advisor/internal/config"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
	"github.com/vfg2006/weekly-growth-advisor/internal/scheduler"
	"github.com/vfg2006/weekly-growth-advisor/pkg/apiErrors"
	"github.com/vfg2006/weekly-growth-advisor/pkg/log"
)

// Limite do corpo aceito em /tick
const maxTickBody = 1 << 20

// TickSubmitter recebe as tarefas aceitas em /tick
type TickSubmitter interface {
	Submit(task scheduler.TickTask) error
}

// Tick aceita a solicitação, responde 202 imediatamente e entrega o insight em segundo plano
func Tick(dispatcher TickSubmitter, cfg *config.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		body, err := io.ReadAll(io.LimitReader(r.Body, maxTickBody))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Could not read request body", nil)
			return
		}

		var request domain.TickRequest
		if len(strings.TrimSpace(string(body))) > 0 {
			if err := json.Unmarshal(body, &request); err != nil {
				logger.WithError(err).Warn("tick: invalid payload")
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Request body must be a JSON object", nil)
				return
			}
		}

		destination := domain.Destination{
			Name:  "tick",
			URL:   cfg.Telex.TickURL,
			Shape: domain.TickShape,
		}
		if request.ReturnURL != "" {
			destination.URL = request.ReturnURL
		}

		if destination.URL == "" {
			logger.Error("tick: no destination configured")
			apiErrors.WriteError(w, apiErrors.ErrConfiguration, "Tick destination not configured", nil)
			return
		}

		err = dispatcher.Submit(scheduler.TickTask{
			Destination: destination,
			ChannelID:   request.ChannelID,
			ReceivedAt:  time.Now(),
		})
		if err != nil {
			logger.WithError(err).Warn("tick: task rejected")
			if errors.Is(err, domain.ErrQueueFull) || errors.Is(err, domain.ErrSchedulerStopped) {
				apiErrors.WriteError(w, apiErrors.ErrQueueFull, "Tick queue unavailable, try again later", nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	})
}
