package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	"github.com/m04kA/SMC-TruckQueueService/pkg/types"
)

// Драйверы хранилища
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Переменные окружения, переопределяющие файл конфигурации
const (
	EnvConfigPath    = "CONFIG_PATH"
	EnvDBPassword    = "DB_PASSWORD"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvTicketSecret  = "TICKET_SECRET"
)

const DefaultPath = "config.toml"

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Storage    StorageConfig    `toml:"storage"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Telemetry  TelemetryConfig  `toml:"telemetry"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	CORS       CORSConfig       `toml:"cors"`
	MasterData MasterDataConfig `toml:"masterdata"`
	Notifier   NotifierConfig   `toml:"notifier"`
	Ticket     TicketConfig     `toml:"ticket"`
	Booking    BookingConfig    `toml:"booking"`
	Schedule   ScheduleConfig   `toml:"schedule"`
}

type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`     // секунды
	WriteTimeout    int    `toml:"write_timeout"`    // секунды
	IdleTimeout     int    `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int    `toml:"shutdown_timeout"` // секунды
	Timezone        string `toml:"timezone"`         // часовой пояс площадки, по умолчанию Local
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type StorageConfig struct {
	Driver string `toml:"driver"` // postgres | memory
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled           bool   `toml:"enabled"`
	Path              string `toml:"path"`
	ServiceName       string `toml:"service_name"`
	OccupancySchedule string `toml:"occupancy_schedule"` // cron spec
}

type TelemetryConfig struct {
	Endpoint string `toml:"endpoint"` // пустой - трейсинг выключен
	Insecure bool   `toml:"insecure"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`

	// TrustProxyHeader брать адрес клиента из X-Real-IP; включать только за своим reverse proxy
	TrustProxyHeader bool `toml:"trust_proxy_header"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type MasterDataConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

type NotifierConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Channel  string `toml:"channel"`
}

type TicketConfig struct {
	Secret string `toml:"secret"`
	QRSize int    `toml:"qr_size"`
}

type BookingConfig struct {
	MaxCreateRetries *int `toml:"max_create_retries"`
}

// Retries число повторов при конфликте номера очереди
func (b BookingConfig) Retries() int {
	if b.MaxCreateRetries == nil {
		return domain.DefaultMaxCreateRetries
	}
	return *b.MaxCreateRetries
}

// ScheduleConfig таблица слотов площадки; пустая таблица - эталонная конфигурация
type ScheduleConfig struct {
	Slots []SlotConfig        `toml:"slots"`
	Rules []WeekdayRuleConfig `toml:"rules"`
}

type SlotConfig struct {
	Label      string `toml:"label"`
	Start      string `toml:"start"`
	End        string `toml:"end"`
	Capacity   *int   `toml:"capacity"` // отсутствует - без ограничения
	QueueStart int    `toml:"queue_start"`
}

type WeekdayRuleConfig struct {
	Weekday string         `toml:"weekday"` // "saturday"
	Offered []string       `toml:"offered"` // отсутствует - все слоты
	Windows []WindowConfig `toml:"windows"`
}

type WindowConfig struct {
	Slot       string `toml:"slot"`
	QueueStart int    `toml:"queue_start"`
	Limit      *int   `toml:"limit"` // отсутствует - без ограничения
}

// Load читает конфигурацию из TOML файла, затем применяет .env и переменные окружения
// Путь из CONFIG_PATH имеет приоритет над аргументом
func Load(path string) (*Config, error) {
	// .env опционален
	_ = godotenv.Load()

	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		path = envPath
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:              "/metrics",
			ServiceName:       "truck_queue_service",
			OccupancySchedule: "* * * * *",
		},
		RateLimit:  RateLimitConfig{RPS: 20, Burst: 40},
		MasterData: MasterDataConfig{Timeout: 5},
		Notifier:   NotifierConfig{Channel: "truck-queue.bookings"},
		Ticket:     TicketConfig{QRSize: 256},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvRedisPassword); v != "" {
		c.Notifier.Password = v
	}
	if v := os.Getenv(EnvTicketSecret); v != "" {
		c.Ticket.Secret = v
	}
}

// Validate проверяет согласованность секций
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}

	if c.Booking.Retries() < 0 {
		return fmt.Errorf("config: booking.max_create_retries must not be negative")
	}
	if c.MasterData.Enabled && c.MasterData.URL == "" {
		return fmt.Errorf("config: masterdata.url is required when masterdata is enabled")
	}
	if c.Notifier.Enabled && c.Notifier.Addr == "" {
		return fmt.Errorf("config: notifier.addr is required when notifier is enabled")
	}
	if c.Ticket.Secret == "" {
		return fmt.Errorf("config: ticket.secret is required (or %s)", EnvTicketSecret)
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	// таблица слотов целиком проверяется каталогом, здесь только разбор значений
	if _, _, err := c.Schedule.ToDomain(); err != nil {
		return err
	}
	return nil
}

// Location часовой пояс площадки
func (c *Config) Location() (*time.Location, error) {
	if c.Server.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: server.timezone: %w", err)
	}
	return loc, nil
}

// ToDomain конвертирует таблицу слотов в доменные типы
func (s ScheduleConfig) ToDomain() ([]domain.TimeSlot, []domain.WeekdayRule, error) {
	if len(s.Slots) == 0 {
		if len(s.Rules) > 0 {
			return nil, nil, fmt.Errorf("config: schedule.rules require schedule.slots")
		}
		return domain.ReferenceSlots(), domain.ReferenceWeekdayRules(), nil
	}

	slots := make([]domain.TimeSlot, 0, len(s.Slots))
	for _, sc := range s.Slots {
		start, err := types.NewTimeStringFromString(sc.Start)
		if err != nil {
			return nil, nil, fmt.Errorf("config: slot %q start: %w", sc.Label, err)
		}
		end, err := types.NewTimeStringFromString(sc.End)
		if err != nil {
			return nil, nil, fmt.Errorf("config: slot %q end: %w", sc.Label, err)
		}

		label := sc.Label
		if label == "" {
			label = fmt.Sprintf("%s-%s", start, end)
		}

		slots = append(slots, domain.TimeSlot{
			Label:        label,
			StartTime:    start,
			EndTime:      end,
			BaseCapacity: sc.Capacity,
			QueueStart:   sc.QueueStart,
		})
	}

	rules := make([]domain.WeekdayRule, 0, len(s.Rules))
	for _, rc := range s.Rules {
		weekday, err := parseWeekday(rc.Weekday)
		if err != nil {
			return nil, nil, err
		}

		rule := domain.WeekdayRule{Weekday: weekday, OfferedSlots: rc.Offered}
		if len(rc.Windows) > 0 {
			rule.Windows = make(map[string]domain.CapacityWindow, len(rc.Windows))
			for _, wc := range rc.Windows {
				start := wc.QueueStart
				if start <= 0 {
					start = domain.DefaultQueueStart
				}
				rule.Windows[wc.Slot] = domain.CapacityWindow{Start: start, Limit: wc.Limit}
			}
		}
		rules = append(rules, rule)
	}

	return slots, rules, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), s) || strings.EqualFold(day.String()[:3], s) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("config: unknown weekday %q", s)
}
