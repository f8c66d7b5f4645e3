package telex

import (
	"fmt"

	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
	"github.com/vfg2006/weekly-growth-advisor/pkg/utils"
)

const (
	tickUsername  = "Weekly Business Growth Advisor"
	tickEventName = "Weekly Business Insight"
	tickStatus    = "success"
)

// BuildPayload monta o corpo do webhook de acordo com o formato do destino
func BuildPayload(insight *domain.BusinessInsight, shape domain.PayloadShape) (any, error) {
	switch shape {
	case domain.ScheduledShape:
		return domain.ScheduledPayload{
			Text: fmt.Sprintf(
				"# Weekly Business Insight: %s\n\n## Observation\n%s\n\n## Recommendation\n%s\n\n_Generated on %s UTC_",
				insight.Metric,
				insight.Observation,
				insight.Recommendation,
				utils.FormatGeneratedAt(insight.GeneratedAt),
			),
		}, nil
	case domain.TickShape:
		return domain.TickPayload{
			Message:   fmt.Sprintf(" %s\n %s", insight.Observation, insight.Recommendation),
			Username:  tickUsername,
			EventName: tickEventName,
			Status:    tickStatus,
		}, nil
	default:
		return nil, fmt.Errorf("formato de payload desconhecido: %q", shape)
	}
}
