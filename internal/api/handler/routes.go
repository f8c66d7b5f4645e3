package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/weekly-growth-advisor/internal/api/handler/router"
	"github.com/vfg2006/weekly-growth-advisor/internal/config"
	"github.com/vfg2006/weekly-growth-advisor/internal/usecases/insighting"
	"github.com/vfg2006/weekly-growth-advisor/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/internal/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

// Insights expõe o caminho ad-hoc. Cada requisição consulta a Paystack, por isso o rate limit.
func Insights(service insighting.Insighter, limiter *middleware.RateLimiter) []router.Route {
	return []router.Route{
		{
			Path:        "/",
			Method:      http.MethodGet,
			Handler:     GetWeeklyInsight(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RateLimit(limiter)},
		},
		{
			Path:        "/metrics/:name",
			Method:      http.MethodGet,
			Handler:     GetMetricInsight(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RateLimit(limiter)},
		},
	}
}

func Integration(dispatcher TickSubmitter, cfg *config.Config, limiter *middleware.RateLimiter) []router.Route {
	return []router.Route{
		{
			Path:    "/integration.json",
			Method:  http.MethodGet,
			Handler: IntegrationDescriptor(cfg),
		},
		{
			Path:        "/tick",
			Method:      http.MethodPost,
			Handler:     Tick(dispatcher, cfg),
			Middlewares: []func(http.Handler) http.Handler{middleware.RateLimit(limiter)},
		},
	}
}

func CronJobs(job WeeklyInsightJob) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(job),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(job),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
