package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/drone/envsubst"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultTemplate string

type Config struct {
	API       APIConfig       `yaml:"api"`
	Realtime  RealtimeConfig  `yaml:"realtime"`
	Offer     OfferConfig     `yaml:"offer"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
	Auth      AuthConfig      `yaml:"auth"`
	Store     StoreConfig     `yaml:"store"`
	Events    EventsConfig    `yaml:"events"`
	Control   ControlConfig   `yaml:"control"`
	Log       LogConfig       `yaml:"log"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

type RealtimeConfig struct {
	URL               string        `yaml:"url" validate:"required,url"`
	ReconnectDelay    time.Duration `yaml:"reconnect_delay" validate:"gt=0"`
	HeartbeatOutgoing time.Duration `yaml:"heartbeat_outgoing" validate:"gte=0"`
	HeartbeatIncoming time.Duration `yaml:"heartbeat_incoming" validate:"gte=0"`
}

type OfferConfig struct {
	Countdown int `yaml:"countdown" validate:"min=1"`
	// DeclineOnExpiry sends a best-effort decline when the countdown runs out.
	DeclineOnExpiry bool `yaml:"decline_on_expiry"`
	// LateAccept lets the driver still accept the most recently expired offer.
	LateAccept bool `yaml:"late_accept"`
}

type HeartbeatConfig struct {
	Interval  time.Duration `yaml:"interval" validate:"gt=0"`
	Latitude  *float64      `yaml:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64      `yaml:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

type AuthConfig struct {
	Email    string `yaml:"email" validate:"omitempty,email"`
	Password string `yaml:"password" validate:"required_with=Email"`
}

type StoreConfig struct {
	Path       string `yaml:"path"`
	Passphrase string `yaml:"passphrase" validate:"required_with=Path"`
}

type EventsConfig struct {
	Workers       int           `yaml:"workers" validate:"min=1"`
	BatchSize     int           `yaml:"batch_size" validate:"min=1"`
	FlushInterval time.Duration `yaml:"flush_interval" validate:"gt=0"`
	Console       bool          `yaml:"console"`
	KafkaBrokers  string        `yaml:"kafka_brokers"`
	KafkaTopic    string        `yaml:"kafka_topic" validate:"required_with=KafkaBrokers"`
	AMQPURL       string        `yaml:"amqp_url" validate:"omitempty,url"`
	AMQPExchange  string        `yaml:"amqp_exchange" validate:"required_with=AMQPURL"`
	PostgresDSN   string        `yaml:"postgres_dsn"`
}

func (c EventsConfig) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

type ControlConfig struct {
	Addr         string `yaml:"addr" validate:"required,hostname_port"`
	User         string `yaml:"user"`
	PasswordHash string `yaml:"password_hash" validate:"required_with=User"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Load reads the YAML file at path, or the built-in template when path is empty or
// missing, expanding ${VAR:-default} references from the environment.
func Load(path string) (*Config, error) {
	loadEnv()

	tmpl := defaultTemplate
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			tmpl = string(data)
		case errors.Is(err, os.ErrNotExist):
			log.Printf("Config file %s not found, using built-in defaults", path)
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return Parse(tmpl)
}

func Parse(tmpl string) (*Config, error) {
	replaced, err := envsubst.EvalEnv(tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(replaced), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if (c.Heartbeat.Latitude == nil) != (c.Heartbeat.Longitude == nil) {
		return errors.New("config validation failed: heartbeat latitude and longitude must be set together")
	}
	return nil
}

func loadEnv() {
	wd, err := os.Getwd()
	if err != nil {
		log.Printf("Error getting working directory: %v", err)
		return
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			log.Printf("Loaded environment variables from %s", envPath)
			return
		}
	}
}
