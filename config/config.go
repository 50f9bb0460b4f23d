package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port     string `env:"PORT" env-default:"8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	Speech struct {
		Key          string        `env:"SPEECH_KEY" env-required:"true"`
		Region       string        `env:"SPEECH_REGION" env-required:"true"`
		Locale       string        `env:"SPEECH_LOCALE" env-default:"ko-KR"`
		PollInterval time.Duration `env:"SPEECH_POLL_INTERVAL" env-default:"10s"`
		MaxPolls     int           `env:"SPEECH_MAX_POLLS" env-default:"30"`
	}

	Supabase struct {
		URL        string `env:"SUPABASE_URL" env-required:"true"`
		ServiceKey string `env:"SUPABASE_SERVICE_KEY" env-required:"true"`
		Bucket     string `env:"SUPABASE_AUDIO_BUCKET" env-default:"audio-files"`
	}

	// SignedURLExpiry is how long the speech service can read staged audio.
	SignedURLExpiry int `env:"SIGNED_URL_EXPIRY_SECONDS" env-default:"3600"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
