package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Paystack      Paystack      `mapstructure:",squash"`
	Telex         Telex         `mapstructure:",squash"`
	Render        Render        `mapstructure:",squash"`
	WeeklyInsight WeeklyInsight `mapstructure:",squash"`
	Delivery      Delivery      `mapstructure:",squash"`
	Tick          Tick          `mapstructure:",squash"`
	RateLimit     RateLimit     `mapstructure:",squash"`
	SecretKey     string        `mapstructure:"secret_key"`
}

type App struct {
	Name        string `mapstructure:"project_name"`
	Version     string `mapstructure:"project_version"`
	Description string `mapstructure:"project_description"`
	LogLevel    string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Path     string `mapstructure:"database_path"`
}

type Paystack struct {
	URL     string        `mapstructure:"paystack_url"`
	APIKey  string        `mapstructure:"paystack_api_key"`
	PerPage int           `mapstructure:"paystack_per_page"`
	Timeout time.Duration `mapstructure:"paystack_timeout"`
}

type Telex struct {
	WebhookURL string `mapstructure:"telex_webhook_url"`
	TickURL    string `mapstructure:"tick_url"`
	TargetURL  string `mapstructure:"target_url"`
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
}

type WeeklyInsight struct {
	JobID        string        `mapstructure:"-"`
	CronSchedule string        `mapstructure:"weekly_insight_cron"`
	MisfireGrace time.Duration `mapstructure:"weekly_insight_misfire_grace"`
	CatchUp      bool          `mapstructure:"weekly_insight_catch_up"`
	Enabled      bool          `mapstructure:"weekly_insight_enabled"`
}

type Delivery struct {
	MaxAttempts int           `mapstructure:"delivery_max_attempts"`
	RetryDelay  time.Duration `mapstructure:"delivery_retry_delay"`
	Timeout     time.Duration `mapstructure:"delivery_timeout"`
}

type Tick struct {
	Workers   int `mapstructure:"tick_workers"`
	QueueSize int `mapstructure:"tick_queue_size"`
}

type RateLimit struct {
	PerSecond float64 `mapstructure:"rate_limit_per_second"`
	Burst     int     `mapstructure:"rate_limit_burst"`
}

// WeeklyInsightJobID identifica o único job semanal registrado no processo
const WeeklyInsightJobID = "weekly_business_insight"

// PaystackSecretName é o nome do secret file no Render com a chave da Paystack
const PaystackSecretName = "paystack_api_key"

func SetDefaults() {
	viper.SetDefault("PROJECT_NAME", "Weekly-Business-Growth-Advisor")
	viper.SetDefault("PROJECT_VERSION", "0.0.1")
	viper.SetDefault("PROJECT_DESCRIPTION", "API for generating business growth insights")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("SECRET_KEY", "")

	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_URL", "localhost:5432/advisor?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "")
	viper.SetDefault("DATABASE_PATH", "weekly-growth-advisor.db")

	viper.SetDefault("PAYSTACK_URL", "https://api.paystack.co")
	viper.SetDefault("PAYSTACK_API_KEY", "")
	viper.SetDefault("PAYSTACK_PER_PAGE", 100)
	viper.SetDefault("PAYSTACK_TIMEOUT", "10s")

	viper.SetDefault("TELEX_WEBHOOK_URL", "")
	viper.SetDefault("TICK_URL", "")
	viper.SetDefault("TARGET_URL", "")

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")

	viper.SetDefault("WEEKLY_INSIGHT_CRON", "0 9 * * 1")   // Toda segunda-feira às 9h (UTC)
	viper.SetDefault("WEEKLY_INSIGHT_MISFIRE_GRACE", "1h") // Execução atrasada permitida por até 1 hora
	viper.SetDefault("WEEKLY_INSIGHT_CATCH_UP", true)      // Recuperar execução perdida ao iniciar
	viper.SetDefault("WEEKLY_INSIGHT_ENABLED", true)       // Habilitar envio semanal

	viper.SetDefault("DELIVERY_MAX_ATTEMPTS", 3)    // 1 tentativa + 2 retentativas
	viper.SetDefault("DELIVERY_RETRY_DELAY", "60s") // Intervalo fixo entre tentativas
	viper.SetDefault("DELIVERY_TIMEOUT", "10s")     // Timeout por tentativa

	viper.SetDefault("TICK_WORKERS", 2)
	viper.SetDefault("TICK_QUEUE_SIZE", 32)

	viper.SetDefault("RATE_LIMIT_PER_SECOND", 2)
	viper.SetDefault("RATE_LIMIT_BURST", 5)
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	config, err := decode()
	if err != nil {
		return nil, err
	}

	// A chave da Paystack pode vir de um secret file do Render
	if config.Paystack.APIKey == "" && config.Render.APIKey != "" && config.Render.ServiceID != "" {
		secrets, err := NewRenderClient(config).ListSecrets(config.Render.ServiceID)
		if err != nil {
			logrus.WithError(err).Warn("Não foi possível obter secrets do Render")
		} else if key, ok := secrets[PaystackSecretName]; ok {
			config.Paystack.APIKey = strings.TrimSpace(key)
			logrus.Info("Chave da Paystack carregada a partir do Render")
		}
	}

	config.Warn()

	return config, nil
}

// decode aplica os decode hooks do mapstructure e completa os campos derivados
func decode() (*Config, error) {
	config := &Config{}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.WeeklyInsight.JobID = WeeklyInsightJobID

	if config.Telex.TickURL == "" {
		config.Telex.TickURL = config.Telex.WebhookURL
	}

	config.Database.Driver = strings.ToLower(config.Database.Driver)

	switch config.Database.Driver {
	case "postgres":
		config.Database.DSN = fmt.Sprintf(
			"%s://%s:%s@%s",
			config.Database.Driver,
			config.Database.User,
			config.Database.Password,
			config.Database.URL,
		)
	case "sqlite":
		config.Database.DSN = config.Database.Path
	}

	return config, nil
}

// Warn registra credenciais ausentes. A ausência não impede a inicialização,
// o erro de configuração aparece na operação que depende da credencial.
func (c *Config) Warn() {
	if c.Paystack.APIKey == "" {
		logrus.Warn("PAYSTACK_API_KEY não configurada, geração de insights irá falhar")
	}
	if c.Telex.WebhookURL == "" {
		logrus.Warn("TELEX_WEBHOOK_URL não configurada, envio semanal irá falhar")
	}
	if c.SecretKey == "" {
		logrus.Warn("SECRET_KEY não configurada, rotas administrativas ficarão inacessíveis")
	}
}

// WatchLogLevel recarrega o nível de log quando o arquivo .env é alterado
func WatchLogLevel() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		level, err := logrus.ParseLevel(viper.GetString("LOG_LEVEL"))
		if err != nil {
			logrus.WithError(err).Warn("Nível de log inválido após alteração do .env, mantendo o atual")
			return
		}

		logrus.SetLevel(level)
		logrus.WithFields(logrus.Fields{
			"file":  e.Name,
			"level": level.String(),
		}).Info("Nível de log recarregado")
	})
	viper.WatchConfig()
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
