package handler

import (
	"fmt"
	"net/http"

	"github.com/vfg2006/weekly-growth-advisor/internal/config"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
)

const integrationCreatedAt = "2025-02-18"

// IntegrationDescriptor descreve o app para a plataforma de notificação.
// As URLs do próprio serviço são derivadas do host da requisição.
func IntegrationDescriptor(cfg *config.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme := "https"
		if r.TLS == nil && r.Header.Get("X-Forwarded-Proto") != "https" {
			scheme = "http"
		}
		baseURL := fmt.Sprintf("%s://%s", scheme, r.Host)

		descriptor := domain.IntegrationDescriptor{
			Data: domain.IntegrationData{
				Date: domain.IntegrationDate{
					CreatedAt: integrationCreatedAt,
					UpdatedAt: integrationCreatedAt,
				},
				Descriptions: domain.IntegrationDescriptions{
					AppName:         cfg.App.Name,
					AppDescription:  cfg.App.Description,
					AppURL:          baseURL,
					BackgroundColor: "#fff",
				},
				IsActive:            true,
				IntegrationType:     "interval",
				IntegrationCategory: "Finance & Payments",
				KeyFeatures: []string{
					"Weekly revenue comparison from Paystack transactions",
					"Actionable recommendation for each revenue trend",
					"Scheduled delivery to a Telex channel",
				},
				Author:  cfg.App.Name,
				Website: baseURL,
				Settings: []domain.TickSettings{
					{
						Label:    "interval",
						Type:     "text",
						Required: true,
						Default:  cfg.WeeklyInsight.CronSchedule,
					},
				},
				TargetURL: cfg.Telex.TargetURL,
				TickURL:   baseURL + "/tick",
			},
		}

		writeJSON(w, http.StatusOK, descriptor)
	})
}
