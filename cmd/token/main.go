package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/weekly-growth-advisor/internal/config"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
	"github.com/vfg2006/weekly-growth-advisor/internal/usecases/authenticating"
)

// Emite um token de administrador assinado com SECRET_KEY para as rotas /v1/cron
func main() {
	subject := flag.String("subject", "ops", "identificação de quem usará o token")
	ttl := flag.Duration("ttl", 24*time.Hour, "validade do token")
	flag.Parse()

	logrus.SetOutput(os.Stderr)

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	token, err := authenticating.NewService(cfg).IssueToken(*subject, domain.RoleAdmin, *ttl)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao gerar token")
	}

	fmt.Println(token)
}
