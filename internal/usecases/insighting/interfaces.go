package insighting

import (
	"context"

	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// Insighter gera o insight semanal a partir de dados atualizados
type Insighter interface {
	// GenerateInsight busca as duas janelas de receita e classifica a variação
	GenerateInsight(ctx context.Context) (*domain.BusinessInsight, error)
}
