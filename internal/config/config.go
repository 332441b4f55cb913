package config

import (
	"errors"
	"strings"
	"time"
)

var DefaultConfig = []byte(`
application: "transfer-orchestrator"

logger:
  level: "debug"

is_prod_mode: false

server:
  listen: ":8086"

channel:
  id: "TelepesaApp"
  key: "TelepesaKey001"
  key_hash: ""

postgres:
  dsn: ""

redis:
  enabled: false
  uri: "localhost:6379"
  password: ""
  ttl_seconds: 300

mongo:
  enabled: false
  uri: "mongodb://localhost:27017"
  database: "telepesa"

kafka:
  enabled: false
  brokers:
    - "localhost:9092"
  topic: "transfer-events"
  client_name: "transfer-orchestrator"

ledger:
  base_url: "http://localhost:8083"
  timeout_seconds: 10

transfer:
  default_currency: "KES"
  reverse_on_credit_failure: false
`)

type Config struct {
	Application string   `koanf:"application"`
	Logger      Logger   `koanf:"logger"`
	IsProdMode  bool     `koanf:"is_prod_mode"`
	Server      Server   `koanf:"server"`
	Channel     Channel  `koanf:"channel"`
	Postgres    Postgres `koanf:"postgres"`
	Redis       Redis    `koanf:"redis"`
	Mongo       Mongo    `koanf:"mongo"`
	Kafka       Kafka    `koanf:"kafka"`
	Ledger      Ledger   `koanf:"ledger"`
	Transfer    Transfer `koanf:"transfer"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Server struct {
	Listen string `koanf:"listen"`
}

// Channel holds the caller credentials checked by the basic auth
// middleware. KeyHash, when set, is a bcrypt hash and takes precedence
// over the plaintext Key.
type Channel struct {
	ID      string `koanf:"id"`
	Key     string `koanf:"key"`
	KeyHash string `koanf:"key_hash"`
}

// Postgres DSN may be empty, in which case the server falls back to the
// in-memory transfer repository.
type Postgres struct {
	DSN string `koanf:"dsn"`
}

type Redis struct {
	Enabled    bool   `koanf:"enabled"`
	URI        string `koanf:"uri"`
	Password   string `koanf:"password"`
	TTLSeconds int    `koanf:"ttl_seconds"`
}

type Mongo struct {
	Enabled  bool   `koanf:"enabled"`
	URI      string `koanf:"uri"`
	Database string `koanf:"database"`
}

type Kafka struct {
	Enabled    bool     `koanf:"enabled"`
	Brokers    []string `koanf:"brokers"`
	Topic      string   `koanf:"topic"`
	ClientName string   `koanf:"client_name"`
}

type Ledger struct {
	BaseURL        string `koanf:"base_url"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
}

type Transfer struct {
	DefaultCurrency        string `koanf:"default_currency"`
	ReverseOnCreditFailure bool   `koanf:"reverse_on_credit_failure"`
}

func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Application) == "" {
		errs = append(errs, "application cannot be empty")
	}
	if strings.TrimSpace(c.Logger.Level) == "" {
		errs = append(errs, "logger.level cannot be empty")
	}
	if strings.TrimSpace(c.Server.Listen) == "" {
		errs = append(errs, "server.listen cannot be empty")
	}
	if strings.TrimSpace(c.Channel.ID) == "" {
		errs = append(errs, "channel.id cannot be empty")
	}
	if strings.TrimSpace(c.Channel.Key) == "" && strings.TrimSpace(c.Channel.KeyHash) == "" {
		errs = append(errs, "one of channel.key or channel.key_hash must be set")
	}
	if c.Redis.Enabled && strings.TrimSpace(c.Redis.URI) == "" {
		errs = append(errs, "redis.uri cannot be empty when redis is enabled")
	}
	if c.Mongo.Enabled && strings.TrimSpace(c.Mongo.URI) == "" {
		errs = append(errs, "mongo.uri cannot be empty when mongo is enabled")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, "kafka.brokers cannot be empty when kafka is enabled")
	}
	if strings.TrimSpace(c.Ledger.BaseURL) == "" {
		errs = append(errs, "ledger.base_url cannot be empty")
	}
	if c.Ledger.TimeoutSeconds <= 0 {
		errs = append(errs, "ledger.timeout_seconds must be positive")
	}
	if len(strings.TrimSpace(c.Transfer.DefaultCurrency)) != 3 {
		errs = append(errs, "transfer.default_currency must be 3 characters")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) LedgerTimeout() time.Duration {
	return time.Duration(c.Ledger.TimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	if c.Redis.TTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Redis.TTLSeconds) * time.Second
}
