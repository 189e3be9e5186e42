package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	aws_pkg "deals-service/pkg/aws"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const serviceName = "deals-service"

// Config holds all configuration for the deals service.
type Config struct {
	Port   string
	AppEnv string

	MongoURL string
	MongoDB  string

	JWTSecret string

	MediaProvider       string
	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	S3Bucket            string
	S3Prefix            string
	S3Endpoint          string
	AWSRegion           string
	CloudFrontDomain    string

	RedisURL       string
	AllowedOrigins []string

	CloudWatchEnabled bool
}

// LoadConfig reads configuration from .env and the environment, with an optional
// Secrets Manager override.
func LoadConfig(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("No .env file loaded", zap.Error(err))
	}

	var secrets aws_pkg.SecretGetter
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		awsCfg, err := aws_pkg.LoadAWSConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config for secrets: %w", err)
		}
		secrets = aws_pkg.NewSecretsClient(awsCfg)
	}
	return loadConfig(ctx, secrets)
}

func loadConfig(ctx context.Context, secrets aws_pkg.SecretGetter) (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "3000"),
		AppEnv:              getEnv("APP_ENV", "development"),
		MongoURL:            os.Getenv("MONGO_URL"),
		MongoDB:             getEnv("MONGO_DB", "deals"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		MediaProvider:       strings.ToLower(getEnv("MEDIA_PROVIDER", "cloudinary")),
		CloudinaryURL:       os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		S3Bucket:            os.Getenv("AWS_S3_BUCKET"),
		S3Prefix:            getEnv("AWS_S3_PREFIX", "uploads"),
		S3Endpoint:          getEnv("AWS_S3_ENDPOINT", os.Getenv("AWS_ENDPOINT")),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		CloudFrontDomain:    os.Getenv("AWS_CLOUDFRONT_DOMAIN"),
		RedisURL:            os.Getenv("REDIS_URL"),
		AllowedOrigins:      splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		CloudWatchEnabled:   os.Getenv("CLOUDWATCH_ENABLED") == "true",
	}

	if secrets != nil {
		overrideFromSecrets(ctx, cfg, secrets)
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.MediaProvider {
	case "cloudinary":
		if cfg.CloudinaryURL == "" && (cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "") {
			return nil, fmt.Errorf("cloudinary credentials are incomplete")
		}
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("AWS_S3_BUCKET is required when MEDIA_PROVIDER=s3")
		}
	default:
		return nil, fmt.Errorf("unknown MEDIA_PROVIDER %q", cfg.MediaProvider)
	}
	return cfg, nil
}

// overrideFromSecrets replaces credentials with the deals/APP_SECRETS JSON document.
// A missing or unreadable secret leaves the environment values in place.
func overrideFromSecrets(ctx context.Context, cfg *Config, secrets aws_pkg.SecretGetter) {
	m, err := aws_pkg.SecretFields(ctx, secrets, "deals/APP_SECRETS")
	if err != nil {
		zap.L().Warn("Secrets Manager override skipped", zap.Error(err))
		return
	}
	if v := m["JWT_SECRET"]; v != "" {
		cfg.JWTSecret = v
	}
	if v := m["MONGO_URL"]; v != "" {
		cfg.MongoURL = v
	}
	if v := m["CLOUDINARY_URL"]; v != "" {
		cfg.CloudinaryURL = v
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
