package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/weekly-growth-advisor/pkg/apiErrors"
)

// CronJobTypeWeeklyInsight identifica o job semanal nas rotas administrativas
const CronJobTypeWeeklyInsight = "weekly-insight"

// WeeklyInsightJob é a parte do agendador usada pelas rotas administrativas
type WeeklyInsightJob interface {
	TriggerManualSync() bool
	GetStatus(ctx context.Context) map[string]any
}

// RunCronJob executa manualmente o job informado na URL
func RunCronJob(job WeeklyInsightJob) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		if cronType != CronJobTypeWeeklyInsight {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: weekly-insight", nil)
			return
		}

		if !job.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrRunInProgress, "Execução já em andamento", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(job WeeklyInsightJob) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		writeJSON(w, http.StatusOK, map[string]any{
			CronJobTypeWeeklyInsight: job.GetStatus(r.Context()),
		})
	}
}
