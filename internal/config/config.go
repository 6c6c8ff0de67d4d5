package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Config is built once at startup and handed to every component that
// needs it. Business logic never reads the process environment directly.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	Webpay struct {
		Env          string `yaml:"env"` // "integration" or "production"
		CommerceCode string `yaml:"commerce_code"`
		APIKey       string `yaml:"api_key"`
		ConfirmURL   string `yaml:"confirm_url"`
		SuccessURL   string `yaml:"success_url"`
		FailURL      string `yaml:"fail_url"`
	} `yaml:"webpay"`

	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
		Disabled bool   `yaml:"disabled"`
	} `yaml:"smtp"`

	Public struct {
		BaseURL    string `yaml:"base_url"`
		UploadsDir string `yaml:"uploads_dir"`
		PublicDir  string `yaml:"public_dir"`
	} `yaml:"public"`
}

// Load reads config/config.yaml (or CONFIG_PATH) and falls back to
// environment variables when DATABASE_URL is set, which is how tests
// and containerized deployments configure the service.
func Load() (*Config, error) {
	var cfg Config

	if os.Getenv("DATABASE_URL") == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("open config file %s: %w", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
		}

		cfg.applyDefaults()
		return &cfg, nil
	}

	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")

	cfg.Webpay.Env = os.Getenv("WEBPAY_ENV")
	cfg.Webpay.CommerceCode = os.Getenv("WEBPAY_COMMERCE_CODE")
	cfg.Webpay.APIKey = os.Getenv("WEBPAY_API_KEY")
	cfg.Webpay.ConfirmURL = os.Getenv("BACKEND_CONFIRM_URL")
	cfg.Webpay.SuccessURL = os.Getenv("FRONTEND_SUCCESS_URL")
	cfg.Webpay.FailURL = os.Getenv("FRONTEND_FAIL_URL")

	cfg.SMTP.Host = os.Getenv("SMTP_HOST")
	cfg.SMTP.Port, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.SMTP.User = os.Getenv("SMTP_USER")
	cfg.SMTP.Password = os.Getenv("SMTP_PASS")
	cfg.SMTP.From = os.Getenv("SMTP_FROM")
	cfg.SMTP.Disabled = os.Getenv("DISABLE_EMAIL") == "true"

	cfg.Public.BaseURL = os.Getenv("PUBLIC_BASE_URL")

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = "SmartRentPlus_Backend_JWT_KEY_2025"
	}
	if c.JWT.TTLHours == 0 {
		c.JWT.TTLHours = 8
	}
	if c.Webpay.Env == "" {
		c.Webpay.Env = "integration"
	}
	if c.Webpay.ConfirmURL == "" {
		c.Webpay.ConfirmURL = fmt.Sprintf("http://localhost:%d/api/subscriptions/confirm", c.Server.Port)
	}
	if c.Webpay.SuccessURL == "" {
		c.Webpay.SuccessURL = "http://localhost:8100/pago-exitoso"
	}
	if c.Webpay.FailURL == "" {
		c.Webpay.FailURL = "http://localhost:8100/pago-fallido"
	}
	if c.SMTP.From == "" {
		c.SMTP.From = "SmartRent+ <no-reply@smartrent.com>"
	}
	if c.Public.BaseURL == "" {
		c.Public.BaseURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if c.Public.UploadsDir == "" {
		c.Public.UploadsDir = "./uploads"
	}
	if c.Public.PublicDir == "" {
		c.Public.PublicDir = "./public"
	}
}
