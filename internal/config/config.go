// Package config carrega a configuração do serviço a partir do ambiente,
// com um .env opcional para desenvolvimento local.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config reúne as opções do serviço de extração.
type Config struct {
	Port    string `envconfig:"PORT" default:"8084"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`

	// Colunas designadas nos relatórios de liquidação.
	DateColumn   string `envconfig:"DATE_COLUMN" default:"Data de início da liquidação"`
	AmountColumn string `envconfig:"AMOUNT_COLUMN" default:"Contas a receber"`

	// Limite de upload em bytes (multipart).
	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"67108864"`

	// Por quanto tempo jobs terminados ficam disponíveis para replay.
	JobRetention time.Duration `envconfig:"JOB_RETENTION" default:"10m"`
}

// Load reads the configuration from the environment. A missing .env file is
// not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("extract", &cfg); err != nil {
		return Config{}, fmt.Errorf("erro ao carregar configuração: %w", err)
	}
	return cfg, nil
}
