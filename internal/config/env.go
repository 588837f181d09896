package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Env holds the full process configuration. Everything is supplied through
// environment variables (a local .env is honored when present); the tables
// themselves come from DATA_DIR or, when the files are absent, from S3_BUCKET.
type Env struct {
	AppAddr string
	GinMode string

	// APIKey is the plaintext key callers must present in x-api-key.
	// APIKeyHash is an optional bcrypt hash of the key; when set it takes
	// precedence and APIKey may be left empty.
	APIKey     string `validate:"required_without=APIKeyHash"`
	APIKeyHash string

	// ValidGroups are the tenant names accepted in x-group-name.
	ValidGroups []string `validate:"min=1"`

	DataDir     string `validate:"required"`
	S3Bucket    string
	AWSRegion   string
	S3Endpoint  string
	S3PathStyle bool

	DefaultLimit int `validate:"gte=1"`
	MaxLimit     int `validate:"gtefield=DefaultLimit"`

	CORSAllowedOrigins []string
}

// LoadEnv reads configuration from the environment and validates it.
// Missing credentials or groups are a startup failure, not a runtime one.
func LoadEnv() (Env, error) {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	env := Env{
		AppAddr:      envOr("APP_ADDR", ":8080"),
		GinMode:      strings.TrimSpace(os.Getenv("GIN_MODE")),
		APIKey:       strings.TrimSpace(os.Getenv("API_KEY")),
		APIKeyHash:   strings.TrimSpace(os.Getenv("API_KEY_HASH")),
		ValidGroups:  splitList(os.Getenv("VALID_GROUPS")),
		DataDir:      envOr("DATA_DIR", "data"),
		S3Bucket:     strings.TrimSpace(os.Getenv("S3_BUCKET")),
		AWSRegion:    strings.TrimSpace(os.Getenv("AWS_REGION")),
		S3Endpoint:   strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		DefaultLimit: 20,
		MaxLimit:     100,

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	if raw := strings.TrimSpace(os.Getenv("S3_PATH_STYLE")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Env{}, fmt.Errorf("S3_PATH_STYLE: %w", err)
		}
		env.S3PathStyle = v
	}
	if raw := strings.TrimSpace(os.Getenv("DEFAULT_LIMIT")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Env{}, fmt.Errorf("DEFAULT_LIMIT: %w", err)
		}
		env.DefaultLimit = v
	}
	if raw := strings.TrimSpace(os.Getenv("MAX_LIMIT")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Env{}, fmt.Errorf("MAX_LIMIT: %w", err)
		}
		env.MaxLimit = v
	}

	if err := validator.New().Struct(env); err != nil {
		return Env{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return env, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
