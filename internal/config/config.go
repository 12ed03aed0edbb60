package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr                string        `yaml:"addr"`
	JWTSecret           string        `yaml:"jwt_secret"`
	APITimeout          time.Duration `yaml:"timeout"`
	TokenDuration       time.Duration `yaml:"token_duration"`
	MongoURI            string        `yaml:"mongo_uri"`
	Database            string        `yaml:"database"`
	UploadDir           string        `yaml:"upload_dir"`
	FirebaseCredentials string        `yaml:"firebase_credentials"`
	PushWorkers         int           `yaml:"push_workers"`
}

const insecureDefaultSecret = "supersecretkey"

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:                getEnv("JOBCONNECT_ADDR", ":8080"),
		JWTSecret:           getEnv("JOBCONNECT_JWT_SECRET", insecureDefaultSecret),
		APITimeout:          15 * time.Second,
		TokenDuration:       24 * time.Hour,
		MongoURI:            getEnv("JOBCONNECT_MONGO_URI", "mongodb://localhost:27017"),
		Database:            getEnv("JOBCONNECT_DATABASE", "jobconnect"),
		UploadDir:           getEnv("JOBCONNECT_UPLOAD_DIR", "uploads"),
		FirebaseCredentials: getEnv("JOBCONNECT_FIREBASE_CREDENTIALS", ""),
		PushWorkers:         2,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that must never reach production.
func (c *Config) Validate() error {
	env := os.Getenv("JOBCONNECT_ENV")
	if c.JWTSecret == insecureDefaultSecret && env != "development" {
		return fmt.Errorf("jwt_secret is the insecure default; set JOBCONNECT_JWT_SECRET")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("mongo_uri is required")
	}
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
