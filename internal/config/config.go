package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port              string `mapstructure:"PORT"`
	DBDSN             string `mapstructure:"DB_DSN"`
	MediaDir          string `mapstructure:"MEDIA_DIR"`
	MediaBaseURL      string `mapstructure:"MEDIA_BASE_URL"`
	LogFile           string `mapstructure:"LOG_FILE"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	TokenTTLMinutes   int    `mapstructure:"TOKEN_TTL_MINUTES"`
	UploadConcurrency int    `mapstructure:"UPLOAD_CONCURRENCY"`
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

var defaults = map[string]any{
	"PORT":               "8080",
	"DB_DSN":             "localcart.db", // sqlite file in project root
	"MEDIA_DIR":          "./media",
	"MEDIA_BASE_URL":     "/media",
	"LOG_FILE":           "./localcart.log",
	"JWT_SECRET":         "",
	"TOKEN_TTL_MINUTES":  60 * 24,
	"UPLOAD_CONCURRENCY": 4,
}

// Load reads a .env file when present, then the environment, over the
// defaults above.
func Load() (Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.TokenTTLMinutes <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL_MINUTES must be positive, got %d", cfg.TokenTTLMinutes)
	}
	if cfg.UploadConcurrency <= 0 {
		cfg.UploadConcurrency = 1
	}
	cfg.MediaBaseURL = strings.TrimRight(cfg.MediaBaseURL, "/")
	if cfg.JWTSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return Config{}, err
		}
		cfg.JWTSecret = hex.EncodeToString(b)
		log.Printf("[config] JWT_SECRET not set; using an ephemeral key, tokens end with the process")
	}

	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s MEDIA_BASE_URL=%s LOG_FILE=%s TOKEN_TTL_MINUTES=%d UPLOAD_CONCURRENCY=%d",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.MediaBaseURL, cfg.LogFile, cfg.TokenTTLMinutes, cfg.UploadConcurrency)
	return cfg, nil
}
