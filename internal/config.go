package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Host             string        `env:"HOST,default=0.0.0.0" validate:"required"`
	Port             int           `env:"PORT,default=5000" validate:"gte=1,lte=65535"`
	LogLevel         string        `env:"LOG_LEVEL,default=info" validate:"required"`
	EnableModeration bool          `env:"ENABLE_MODERATION,default=true"`
	CharReplacement  string        `env:"CHARACTER_REPLACEMENT,default=*"`
	MetricInterval   time.Duration `env:"METRIC_INTERVAL,default=30s" validate:"gt=0"`
	RestartInterval  time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(&config); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return config, nil
}

// Addr renders the bind address for the TCP listener.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
