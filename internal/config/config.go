// Package config loads settings for the resume client and the development
// backend.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	Client  ClientConfig  `yaml:"client" json:"client"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ClientConfig holds upload client configuration
type ClientConfig struct {
	APIURL string `yaml:"apiUrl" json:"apiUrl"`
}

// ServerConfig holds development backend configuration
type ServerConfig struct {
	Port         int       `yaml:"port" json:"port"`
	Environment  string    `yaml:"environment" json:"environment"`
	Bucket       string    `yaml:"bucket" json:"bucket"`
	AllowOrigin  string    `yaml:"allowOrigin" json:"allowOrigin"`
	MaxBodyBytes int64     `yaml:"maxBodyBytes" json:"maxBodyBytes"`
	AWS          AWSConfig `yaml:"aws" json:"aws"`
}

type AWSConfig struct {
	Region           string `yaml:"region" json:"region"`
	Endpoint         string `yaml:"endpoint" json:"endpoint"`
	AccessKeyID      string `yaml:"accessKeyId" json:"-"`
	SecretAccessKey  string `yaml:"secretAccessKey" json:"-"`
	S3ForcePathStyle bool   `yaml:"s3ForcePathStyle" json:"s3ForcePathStyle"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// DefaultConfig Default configuration values
var DefaultConfig = Config{
	Client: ClientConfig{
		APIURL: "http://localhost:5000",
	},
	Server: ServerConfig{
		Port:         5000,
		Environment:  "dev",
		AllowOrigin:  "*",
		MaxBodyBytes: 16 * 1024 * 1024, // base64 of a 10MB file plus envelope
		AWS: AWSConfig{
			Region:           "us-west-2",
			S3ForcePathStyle: true,
		},
	},
	Logging: LoggingConfig{
		Level:  "info",
		Format: "console",
	},
}

// EnvConfigPath names a config file when no path is passed to Load.
const EnvConfigPath = "RESUME_CONFIG"

var searchPaths = []string{
	"./resume.yaml",
	"./config/resume.yaml",
}

// Load builds the configuration in order of precedence:
// 1. Environment variables, including a .env file (highest precedence)
// 2. Configuration file
// 3. Default values (lowest precedence)
//
// It returns the config file path used, or "" when none was found.
func Load(path string) (*Config, string, error) {
	cfg := DefaultConfig

	path, err := loadFromFile(&cfg, path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config file: %w", err)
	}

	// a missing .env is not an error
	_ = godotenv.Load()

	if err := loadFromEnv(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, path, nil
}

func loadFromFile(cfg *Config, path string) (string, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		return path, readFile(cfg, path)
	}
	for _, p := range searchPaths {
		if _, err := os.Stat(p); err == nil {
			return p, readFile(cfg, p)
		}
	}
	return "", nil
}

func readFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	setString(&cfg.Client.APIURL, "RESUME_API_URL")
	setString(&cfg.Logging.Level, "RESUME_LOG_LEVEL")
	setString(&cfg.Logging.Format, "RESUME_LOG_FORMAT")

	setString(&cfg.Server.Environment, "ENVIRONMENT")
	setString(&cfg.Server.Bucket, "AWS_BUCKET_NAME")
	setString(&cfg.Server.AllowOrigin, "ALLOW_ORIGIN")
	setString(&cfg.Server.AWS.Region, "AWS_REGION")
	setString(&cfg.Server.AWS.Endpoint, "AWS_ENDPOINT")
	setString(&cfg.Server.AWS.AccessKeyID, "AWS_ACCESS_KEY_ID")
	setString(&cfg.Server.AWS.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")

	if v, ok := os.LookupEnv("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v, ok := os.LookupEnv("AWS_S3_FORCE_PATH_STYLE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid AWS_S3_FORCE_PATH_STYLE %q: %w", v, err)
		}
		cfg.Server.AWS.S3ForcePathStyle = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = strings.TrimSpace(v)
	}
}

// Validate checks the values that cannot be defaulted later.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Client.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api url %q", c.Client.APIURL)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Server.Environment == "" && c.Server.Bucket == "" {
		return fmt.Errorf("either environment or bucket is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body size %d", c.Server.MaxBodyBytes)
	}
	if _, err := c.Logging.ParseLevel(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Logging.Format)
	}
	return nil
}

// BucketName is the configured bucket, or resume-auto-uploads-<environment>.
func (c ServerConfig) BucketName() string {
	if c.Bucket != "" {
		return c.Bucket
	}
	return "resume-auto-uploads-" + c.Environment
}

func (c ServerConfig) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
