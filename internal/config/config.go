package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Rating     Rating     `mapstructure:",squash"`
	Telegram   Telegram   `mapstructure:",squash"`
	RatingPoll RatingPoll `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host        string   `mapstructure:"host"`
	Port        string   `mapstructure:"port"`
	Enabled     bool     `mapstructure:"server_enabled"`
	CorsOrigins []string `mapstructure:"server_cors_origins"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	Driver      string `mapstructure:"database_driver"`
	Password    string `mapstructure:"database_password"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
	Path        string `mapstructure:"database_path"`
	AutoMigrate bool   `mapstructure:"database_auto_migrate"`
}

// Rating descreve a página de ranking acompanhada e os marcadores usados na extração
type Rating struct {
	URL                   string `mapstructure:"rating_url"`
	TrackedID             string `mapstructure:"rating_tracked_id"`
	UserAgent             string `mapstructure:"rating_user_agent"`
	RequestTimeoutSeconds int    `mapstructure:"rating_request_timeout_seconds"`
	FetchRetries          int    `mapstructure:"rating_fetch_retries"`
	EntryClass            string `mapstructure:"rating_entry_class"`
	PositionClass         string `mapstructure:"rating_position_class"`
	ContractMarker        string `mapstructure:"rating_contract_marker"`
	PaidClass             string `mapstructure:"rating_paid_class"`
	UnpaidClass           string `mapstructure:"rating_unpaid_class"`
}

type Telegram struct {
	BotToken                 string  `mapstructure:"telegram_bot_token"`
	AdminIDs                 []int64 `mapstructure:"telegram_admin_ids"`
	SendIntervalMilliseconds int     `mapstructure:"telegram_send_interval_ms"`
	UpdateTimeoutSeconds     int     `mapstructure:"telegram_update_timeout_seconds"`
	Debug                    bool    `mapstructure:"telegram_debug"`
}

type RatingPoll struct {
	CronSchedule string `mapstructure:"rating_poll_cron"`
	Enabled      bool   `mapstructure:"rating_poll_enabled"`
	RunOnStart   bool   `mapstructure:"rating_poll_run_on_start"`
	EventBuffer  int    `mapstructure:"rating_poll_event_buffer"`
}

type Auth struct {
	Secret        string `mapstructure:"auth_secret"`
	TokenTTLHours int    `mapstructure:"auth_token_ttl_hours"`
}

// IsAdmin indica se o chat pertence a um administrador
func (t Telegram) IsAdmin(chatID int64) bool {
	for _, id := range t.AdminIDs {
		if id == chatID {
			return true
		}
	}
	return false
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("SERVER_ENABLED", true)
	viper.SetDefault("SERVER_CORS_ORIGINS", "")

	viper.SetDefault("DATABASE_DRIVER", DriverSQLite)
	viper.SetDefault("DATABASE_URL", "localhost:5432/rating")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "")
	viper.SetDefault("DATABASE_PATH", "rating.db")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)

	viper.SetDefault("RATING_URL", "https://abit.itmo.ru/ranking/bachelor/contract/2196")
	viper.SetDefault("RATING_TRACKED_ID", "4154668")
	viper.SetDefault("RATING_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	viper.SetDefault("RATING_REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("RATING_FETCH_RETRIES", 0)
	viper.SetDefault("RATING_ENTRY_CLASS", "RatingPage_table__item__qMY0F")
	viper.SetDefault("RATING_POSITION_CLASS", "RatingPage_table__position__uYWvi")
	viper.SetDefault("RATING_CONTRACT_MARKER", "Договор: да")
	viper.SetDefault("RATING_PAID_CLASS", "RatingPage_table__item_green__InEVk")
	viper.SetDefault("RATING_UNPAID_CLASS", "RatingPage_table__item_yellow__lbs7n")

	viper.SetDefault("TELEGRAM_BOT_TOKEN", "")
	viper.SetDefault("TELEGRAM_ADMIN_IDS", "")
	viper.SetDefault("TELEGRAM_SEND_INTERVAL_MS", 100) // 0.1s entre mensagens
	viper.SetDefault("TELEGRAM_UPDATE_TIMEOUT_SECONDS", 60)
	viper.SetDefault("TELEGRAM_DEBUG", false)

	viper.SetDefault("RATING_POLL_CRON", "0 */2 * * *") // A cada 2 horas
	viper.SetDefault("RATING_POLL_ENABLED", true)
	viper.SetDefault("RATING_POLL_RUN_ON_START", true)
	viper.SetDefault("RATING_POLL_EVENT_BUFFER", 16)

	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 24)

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize valida os valores carregados e monta o DSN do banco
func (c *Config) normalize() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))

	switch c.Database.Driver {
	case DriverPostgres:
		c.Database.DSN = fmt.Sprintf(
			"%s://%s:%s@%s",
			c.Database.Driver,
			c.Database.User,
			c.Database.Password,
			c.Database.URL,
		)
	case DriverSQLite:
		c.Database.DSN = c.Database.Path
	default:
		return fmt.Errorf("config: driver de banco não suportado: %q", c.Database.Driver)
	}

	if c.Rating.URL == "" {
		return fmt.Errorf("config: RATING_URL é obrigatório")
	}

	c.Rating.TrackedID = strings.TrimSpace(c.Rating.TrackedID)

	if c.Rating.RequestTimeoutSeconds <= 0 {
		c.Rating.RequestTimeoutSeconds = 30
	}
	if c.Rating.FetchRetries < 0 {
		c.Rating.FetchRetries = 0
	}
	if c.Telegram.SendIntervalMilliseconds < 0 {
		c.Telegram.SendIntervalMilliseconds = 0
	}
	if c.RatingPoll.EventBuffer <= 0 {
		c.RatingPoll.EventBuffer = 1
	}
	if c.Auth.TokenTTLHours <= 0 {
		c.Auth.TokenTTLHours = 24
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
