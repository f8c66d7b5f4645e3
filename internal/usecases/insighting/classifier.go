package insighting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
	"github.com/vfg2006/weekly-growth-advisor/pkg/utils"
)

var (
	hundred              = decimal.NewFromInt(100)
	significantThreshold = decimal.NewFromInt(15)
)

type rule struct {
	classification domain.Classification
	observation    string
	recommendation string
}

var rules = map[domain.Classification]rule{
	domain.DroppedSignificantly: {
		classification: domain.DroppedSignificantly,
		observation:    "Revenue dropped significantly by %s%% this week.",
		recommendation: "Run a promotional discount and email re-engagement campaign targeting inactive customers.",
	},
	domain.Decreased: {
		classification: domain.Decreased,
		observation:    "Revenue decreased by %s%% this week.",
		recommendation: "Analyze which product categories are underperforming and consider targeted marketing.",
	},
	domain.Unchanged: {
		classification: domain.Unchanged,
		observation:    "Revenue remained unchanged from last week.",
		recommendation: "Review customer feedback to identify improvement opportunities.",
	},
	domain.Increased: {
		classification: domain.Increased,
		observation:    "Revenue increased by %s%% this week.",
		recommendation: "Continue current strategy while testing new marketing channels.",
	},
	domain.GrewSignificantly: {
		classification: domain.GrewSignificantly,
		observation:    "Revenue grew significantly by %s%% this week.",
		recommendation: "Identify which products or campaigns drove this growth and consider scaling them.",
	},
}

// PercentChange calcula a variação percentual da semana anterior para a corrente.
// Base zero resulta em 100 quando houve receita e 0 quando não houve.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return hundred
	}

	return current.Sub(previous).Mul(hundred).Div(previous)
}

// bandOf determina a faixa da variação. Avaliado em ordem, primeira condição vence.
func bandOf(percentChange decimal.Decimal) domain.Classification {
	switch {
	case percentChange.LessThan(significantThreshold.Neg()):
		return domain.DroppedSignificantly
	case percentChange.IsNegative():
		return domain.Decreased
	case percentChange.IsZero():
		return domain.Unchanged
	case percentChange.LessThan(significantThreshold):
		return domain.Increased
	default:
		return domain.GrewSignificantly
	}
}

// magnitude formata a variação exibida na mensagem. Com base zero a variação é o inteiro 100,
// exibido sem casas decimais.
func magnitude(change, previous decimal.Decimal) string {
	if previous.IsZero() {
		return change.Abs().String()
	}
	return utils.FormatPercent(change)
}

// Classify é puro: mesmas entradas produzem sempre o mesmo texto.
func Classify(current, previous decimal.Decimal, generatedAt time.Time) (*domain.BusinessInsight, error) {
	if current.IsNegative() || previous.IsNegative() {
		return nil, domain.NewInsightError(domain.ErrInvalidRevenue, "", fmt.Sprintf("current=%s previous=%s", current, previous), nil)
	}

	change := PercentChange(current, previous)
	r := rules[bandOf(change)]

	observation := r.observation
	if r.classification != domain.Unchanged {
		observation = fmt.Sprintf(r.observation, magnitude(change, previous))
	}

	return &domain.BusinessInsight{
		Metric:         domain.RevenueMetric,
		Observation:    observation,
		Recommendation: r.recommendation,
		Classification: r.classification,
		GeneratedAt:    generatedAt,
	}, nil
}
