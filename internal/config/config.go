package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration. Values come from an optional YAML file, then the environment.
type Config struct {
	Server struct {
		Port        string `yaml:"port"`
		CORSOrigins string `yaml:"cors_origins"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`
	Redis struct {
		Addr string `yaml:"addr"`
	} `yaml:"redis"`
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
	SurveysDir string   `yaml:"surveys_dir"`
	AI         AIConfig `yaml:"ai"`
}

// Load reads filename when it is non-empty and applies environment overrides
func Load(filename string) (*Config, error) {
	cfg := defaults()
	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", filename, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = "3001"
	cfg.Server.CORSOrigins = "*"
	cfg.Mongo.URI = "mongodb://localhost:27017"
	cfg.Mongo.Database = "surveyflow"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Log.Level = "info"
	cfg.SurveysDir = "surveys"
	cfg.AI = *DefaultAIConfig()
	return cfg
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.CORSOrigins = getEnv("CORS_ALLOWED_ORIGINS", c.Server.CORSOrigins)
	c.Database.URL = getEnv("DATABASE_URL", getEnv("POSTGRES_URL", c.Database.URL))
	c.Mongo.URI = getEnv("MONGO_URI", c.Mongo.URI)
	c.Mongo.Database = getEnv("MONGO_DATABASE", c.Mongo.Database)
	c.Redis.Addr = RedisAddr(getEnv("REDIS_URI", c.Redis.Addr))
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.SurveysDir = getEnv("SURVEYS_DIR", c.SurveysDir)
	c.AI.applyEnv()
}

// RedisAddr strips a redis:// scheme so the value can be used as go-redis Addr
func RedisAddr(uri string) string {
	return strings.TrimPrefix(uri, "redis://")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
