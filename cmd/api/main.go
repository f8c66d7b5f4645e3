package main

import (
	"context"
	"errors"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/database"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/integrator/paystack"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/integrator/paystack/paystackclient"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/integrator/telex"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/integrator/telex/telexclient"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/repository"
	"github.com/vfg2006/weekly-growth-advisor/internal/api"
	"github.com/vfg2006/weekly-growth-advisor/internal/config"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
	"github.com/vfg2006/weekly-growth-advisor/internal/observability/metrics"
	"github.com/vfg2006/weekly-growth-advisor/internal/scheduler"
	"github.com/vfg2006/weekly-growth-advisor/internal/usecases/authenticating"
	"github.com/vfg2006/weekly-growth-advisor/internal/usecases/insighting"
	"github.com/vfg2006/weekly-growth-advisor/pkg/log"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível e o formato de log com base na configuração
	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())
	config.WatchLogLevel()

	metrics.Init(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runRepo, closeDB := jobRunRepository(ctx, cfg.Database)
	defer closeDB()

	paystackService := paystack.New(cfg, paystackclient.NewClient(cfg))
	insightService := insighting.NewService(paystackService)
	telexService := telex.New(cfg, telexclient.NewClient(cfg))

	authenticator := authenticating.NewService(cfg)

	weeklyInsightService := scheduler.NewWeeklyInsightService(
		insightService,
		telexService,
		runRepo,
		cfg,
	)

	// Sem o job semanal registrado o processo não deve subir
	if err := weeklyInsightService.Start(ctx); err != nil {
		if errors.Is(err, domain.ErrRegistration) {
			logrus.WithError(err).Fatal("Erro ao registrar o job de insight semanal")
		}
		logrus.WithError(err).Fatal("Erro ao iniciar o agendador de insight semanal")
	}
	logrus.Info("Agendador de insight semanal iniciado com sucesso")

	tickDispatcher := scheduler.NewTickDispatcher(insightService, telexService, cfg)
	tickDispatcher.Start(ctx)
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer stopCancel()
		tickDispatcher.Stop(stopCtx)
	}()

	server, err := api.New(
		cfg,
		insightService,
		authenticator,
		weeklyInsightService,
		tickDispatcher,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}

	weeklyInsightService.Stop()
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// jobRunRepository escolhe o armazenamento do ledger de execuções conforme DATABASE_DRIVER
func jobRunRepository(ctx context.Context, dbConfig config.Database) (repository.JobRunRepository, func()) {
	if dbConfig.Driver == database.DriverNone {
		logrus.Warn("DATABASE_DRIVER=none: histórico de execuções mantido apenas em memória")
		return repository.NewMemoryJobRunRepository(), func() {}
	}

	conn, err := database.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).WithField("driver", dbConfig.Driver).Fatal("Erro ao conectar ao banco de dados")
	}

	if err := database.Migrate(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}

	logrus.WithField("driver", dbConfig.Driver).Info("Conexão com o banco de dados estabelecida com sucesso")

	return repository.NewJobRunRepository(conn), func() {
		if err := conn.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão com o banco de dados")
		}
	}
}
