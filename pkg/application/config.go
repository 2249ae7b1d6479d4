package application

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/dataset"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/store"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/wsclient"
)

var configValidate = validator.New()

// ReceiverConfig configura la conexión con el receptor.
type ReceiverConfig struct {
	URL              string        `yaml:"url" validate:"required,url"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout" validate:"gte=0"`
	WriteTimeout     time.Duration `yaml:"write_timeout" validate:"gte=0"`
	ReadTimeout      time.Duration `yaml:"read_timeout" validate:"gte=0"`
}

// StoreConfig configura dónde se guarda el mensaje codificado.
type StoreConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// DatasetConfig configura el generador de datos de prueba.
type DatasetConfig struct {
	Plan     dataset.Plan `yaml:"plan"`
	Workers  int          `yaml:"workers" validate:"gte=1"`
	Seed     int64        `yaml:"seed"`
	Output   string       `yaml:"output" validate:"required"`
	Compress bool         `yaml:"compress"`
}

// MetricsConfig configura la exportación de métricas.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// LogConfig configura el logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Config es la configuración completa del emisor.
type Config struct {
	Receiver ReceiverConfig `yaml:"receiver"`
	Store    StoreConfig    `yaml:"store"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
}

// DefaultConfig devuelve la configuración por defecto. La URL del receptor
// respeta WS_URL.
func DefaultConfig() Config {
	return Config{
		Receiver: ReceiverConfig{
			URL:              wsclient.URLFromEnv(),
			HandshakeTimeout: 5 * time.Second,
			WriteTimeout:     5 * time.Second,
			ReadTimeout:      10 * time.Second,
		},
		Store: StoreConfig{Path: store.DefaultPath},
		Dataset: DatasetConfig{
			Plan:    dataset.DefaultPlan(),
			Workers: 4,
			Output:  "../tests/results/emisor_data.csv",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig lee la configuración YAML en path sobre los valores por defecto.
// Si path está vacío o el archivo no existe se usan solo los valores por defecto.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read the config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse the config file %s: %w", path, err)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate verifica la configuración, incluido el plan de pruebas.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("configuración inválida: %w", err)
	}
	return c.Dataset.Plan.Validate()
}

// Client construye el cliente WebSocket a partir de la configuración.
func (c Config) Client() *wsclient.Client {
	return &wsclient.Client{
		URL:              c.Receiver.URL,
		HandshakeTimeout: c.Receiver.HandshakeTimeout,
		WriteTimeout:     c.Receiver.WriteTimeout,
		ReadTimeout:      c.Receiver.ReadTimeout,
	}
}

// SlogLevel traduce el nivel configurado a slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
