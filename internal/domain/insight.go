package domain

import "time"

const RevenueMetric = "Revenue"

// Classification identifica a faixa de variação percentual de um insight
type Classification string

const (
	DroppedSignificantly Classification = "dropped_significantly"
	Decreased            Classification = "decreased"
	Unchanged            Classification = "unchanged"
	Increased            Classification = "increased"
	GrewSignificantly    Classification = "grew_significantly"
)

// BusinessInsight é imutável após criado pelo classificador
type BusinessInsight struct {
	Metric         string         `json:"metric"`
	Observation    string         `json:"observation"`
	Recommendation string         `json:"recommendation"`
	Classification Classification `json:"-"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// SupportedMetrics lista as métricas aceitas pela rota /metrics/:name.
// Todas retornam o insight de receita.
var SupportedMetrics = []string{"revenue", "customers", "conversion"}
