package handler

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
	"github.com/vfg2006/weekly-growth-advisor/internal/observability/metrics"
	"github.com/vfg2006/weekly-growth-advisor/internal/usecases/insighting"
	"github.com/vfg2006/weekly-growth-advisor/pkg/apiErrors"
	"github.com/vfg2006/weekly-growth-advisor/pkg/log"
)

const generateInsightFailure = "Failed to generate business insight. Please try again later."

// GetWeeklyInsight calcula o insight a partir dos dados atuais da Paystack
func GetWeeklyInsight(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("insights: generating insight")

		insight, err := service.GenerateInsight(context.WithoutCancel(r.Context()))
		if err != nil {
			logger.WithError(err).Error("insights: failed to generate insight")
			apiErrors.WriteError(w, apiErrors.CodeOf(err, apiErrors.ErrInternalServer), generateInsightFailure, nil)
			return
		}

		metrics.IncInsightGenerated("http", string(insight.Classification))

		w.Header().Set("Cache-Control", "max-age=3600")
		writeJSON(w, http.StatusOK, insight)
	})
}

// GetMetricInsight aceita revenue, customers e conversion. Todas retornam o insight de receita.
func GetMetricInsight(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		name := httprouter.ParamsFromContext(r.Context()).ByName("name")
		if !slices.Contains(domain.SupportedMetrics, strings.ToLower(name)) {
			logger.WithField("metric", name).Warn("insights: unsupported metric")
			apiErrors.WriteError(w, apiErrors.ErrUnsupportedMetric, fmt.Sprintf("Metric '%s' not supported", name), nil)
			return
		}

		insight, err := service.GenerateInsight(context.WithoutCancel(r.Context()))
		if err != nil {
			logger.WithError(err).WithField("metric", name).Error("insights: failed to generate insight")
			apiErrors.WriteError(w, apiErrors.CodeOf(err, apiErrors.ErrInternalServer), generateInsightFailure, nil)
			return
		}

		metrics.IncInsightGenerated("http", string(insight.Classification))

		writeJSON(w, http.StatusOK, insight)
	})
}
