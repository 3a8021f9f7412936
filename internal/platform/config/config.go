package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	pstrings "staywatch/pkg/platform/strings"
)

// Config is the full process configuration, read from the environment.
type Config struct {
	Server       Server       `envPrefix:"STAYWATCH_"`
	Log          Log          `envPrefix:"LOG_"`
	Postgres     Postgres     `envPrefix:"POSTGRES_"`
	Redis        RedisConfig  `envPrefix:"REDIS_"`
	Kafka        Kafka        `envPrefix:"KAFKA_"`
	AMQP         AMQP         `envPrefix:"AMQP_"`
	SMTP         SMTP         `envPrefix:"SMTP_"`
	Notification Notification `envPrefix:"NOTIFY_"`
	Policy       Policy       `envPrefix:"POLICY_"`
	Scheduler    Scheduler    `envPrefix:"SCHEDULER_"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Log struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"` // json, text
}

// Postgres is optional. An empty URL selects the in-memory stores.
type Postgres struct {
	URL          string `env:"URL"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns int    `env:"MAX_IDLE_CONNS" envDefault:"5"`
	Migrate      bool   `env:"MIGRATE" envDefault:"true"`
}

// RedisConfig is optional. An empty URL falls back to a process-local dispatch lease.
type RedisConfig struct {
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
	LeaseKey     string        `env:"LEASE_KEY" envDefault:"staywatch:dispatch"`
}

type Kafka struct {
	Brokers           []string `env:"BROKERS" envSeparator:","`
	Topic             string   `env:"TOPIC" envDefault:"staywatch.notifications"`
	Partitions        int32    `env:"PARTITIONS" envDefault:"1"`
	ReplicationFactor int16    `env:"REPLICATION_FACTOR" envDefault:"1"`
}

type AMQP struct {
	URL        string `env:"URL"`
	Exchange   string `env:"EXCHANGE" envDefault:"staywatch"`
	RoutingKey string `env:"ROUTING_KEY" envDefault:"notifications"`
}

type SMTP struct {
	Addr     string `env:"ADDR"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"staywatch@localhost"`
}

// Notification selects where the dispatch digest goes.
type Notification struct {
	Sink      string        `env:"SINK" envDefault:"log"` // log, smtp, kafka, amqp
	Recipient string        `env:"RECIPIENT" envDefault:"compliance-officer@example.com"`
	LeaseTTL  time.Duration `env:"LEASE_TTL" envDefault:"2m"`
}

// Policy holds the tunable classification thresholds.
type Policy struct {
	GreenThreshold      int      `env:"GREEN_THRESHOLD" envDefault:"30"`
	AmberThreshold      int      `env:"AMBER_THRESHOLD" envDefault:"10"`
	ExcludedTerritories []string `env:"EXCLUDED_TERRITORIES" envSeparator:","`
}

type Scheduler struct {
	Enabled     bool          `env:"ENABLED" envDefault:"false"`
	Interval    time.Duration `env:"INTERVAL" envDefault:"1h"`
	Concurrency int           `env:"CONCURRENCY" envDefault:"8"`
}

var validSinks = map[string]bool{"log": true, "smtp": true, "kafka": true, "amqp": true}

// Load reads an optional .env file (missing files are ignored) and then the
// process environment, which wins over the file.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.Kafka.Brokers = pstrings.Clean(cfg.Kafka.Brokers)
	cfg.Policy.ExcludedTerritories = pstrings.CleanFold(cfg.Policy.ExcludedTerritories)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field rules env tags cannot express.
func (c Config) Validate() error {
	sink := strings.ToLower(c.Notification.Sink)
	if !validSinks[sink] {
		return fmt.Errorf("NOTIFY_SINK %q must be one of log, smtp, kafka, amqp", c.Notification.Sink)
	}
	switch sink {
	case "smtp":
		if c.SMTP.Addr == "" {
			return errors.New("SMTP_ADDR is required when NOTIFY_SINK=smtp")
		}
	case "kafka":
		if len(c.Kafka.Brokers) == 0 {
			return errors.New("KAFKA_BROKERS is required when NOTIFY_SINK=kafka")
		}
	case "amqp":
		if c.AMQP.URL == "" {
			return errors.New("AMQP_URL is required when NOTIFY_SINK=amqp")
		}
	}
	if c.Policy.GreenThreshold < c.Policy.AmberThreshold {
		return fmt.Errorf("POLICY_GREEN_THRESHOLD (%d) must be >= POLICY_AMBER_THRESHOLD (%d)",
			c.Policy.GreenThreshold, c.Policy.AmberThreshold)
	}
	if c.Scheduler.Enabled && c.Scheduler.Interval <= 0 {
		return errors.New("SCHEDULER_INTERVAL must be positive")
	}
	return nil
}
