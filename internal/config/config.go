package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Port    string
	AppName string

	LogLevel  string
	LogFormat string

	// Storage
	StoreEngine string // memory|postgres|sqlite
	DBDSN       string
	DBDriver    string // pgx|postgres
	SQLitePath  string

	EnableTracing bool

	// Identidad
	AuthMode    string // dev|jwt|remote
	JWTSecret   string
	AuthBaseURL string
	AuthAPIKey  string

	// Fotos
	PhotoStore   string // local|s3
	PhotoDir     string
	PhotoBaseURL string
	S3Bucket     string
	S3Region     string
	S3Endpoint   string
	AWSAccessKey string
	AWSSecretKey string
	MaxUploadMB  int
}

// Load lee la configuración de env. Si CONFIG_FILE apunta a un YAML (claves con el mismo
// nombre que las env vars), sus valores se usan cuando la env var no está definida.
func Load() (Config, error) {
	var file map[string]string
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if file, err = parseFile(raw); err != nil {
			return Config{}, err
		}
	}
	return load(source{env: os.LookupEnv, file: file})
}

func parseFile(raw []byte) (map[string]string, error) {
	// yaml.v2 decodifica a map[interface{}]interface{}; se normaliza a strings.
	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		out[strings.ToUpper(k)] = fmt.Sprint(v)
	}
	return out, nil
}

type source struct {
	env  func(string) (string, bool)
	file map[string]string
}

func (s source) get(key string) (string, bool) {
	if s.env != nil {
		if v, ok := s.env(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	if v, ok := s.file[key]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), true
	}
	return "", false
}

func (s source) getEnvOrDefault(key, def string) string {
	if v, ok := s.get(key); ok {
		return v
	}
	return def
}

func (s source) getEnvAsIntOrDefault(key string, def int) (int, error) {
	v, ok := s.get(key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func (s source) getEnvAsBoolOrDefault(key string, def bool) (bool, error) {
	v, ok := s.get(key)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func load(s source) (Config, error) {
	cfg := Config{
		Port:      s.getEnvOrDefault("PORT", "8080"),
		AppName:   s.getEnvOrDefault("APP_NAME", "pet-care-journal"),
		LogLevel:  s.getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: s.getEnvOrDefault("LOG_FORMAT", "text"),

		StoreEngine: strings.ToLower(s.getEnvOrDefault("STORE_ENGINE", "memory")),
		DBDSN:       s.getEnvOrDefault("DB_DSN", ""),
		DBDriver:    strings.ToLower(s.getEnvOrDefault("DB_DRIVER", "pgx")),
		SQLitePath:  s.getEnvOrDefault("SQLITE_PATH", "pet-care-journal.db"),

		AuthMode:    strings.ToLower(s.getEnvOrDefault("AUTH_MODE", "dev")),
		JWTSecret:   s.getEnvOrDefault("JWT_SECRET", ""),
		AuthBaseURL: s.getEnvOrDefault("AUTH_BASE_URL", ""),
		AuthAPIKey:  s.getEnvOrDefault("AUTH_API_KEY", ""),

		PhotoStore:   strings.ToLower(s.getEnvOrDefault("PHOTO_STORE", "local")),
		PhotoDir:     s.getEnvOrDefault("PHOTO_DIR", "./media"),
		PhotoBaseURL: s.getEnvOrDefault("PHOTO_BASE_URL", ""),
		S3Bucket:     s.getEnvOrDefault("S3_BUCKET", ""),
		S3Region:     s.getEnvOrDefault("S3_REGION", "us-east-1"),
		S3Endpoint:   s.getEnvOrDefault("S3_ENDPOINT", ""),
		AWSAccessKey: s.getEnvOrDefault("AWS_ACCESS_KEY", ""),
		AWSSecretKey: s.getEnvOrDefault("AWS_SECRET_KEY", ""),
	}

	var err error
	if cfg.MaxUploadMB, err = s.getEnvAsIntOrDefault("MAX_UPLOAD_MB", 10); err != nil {
		return Config{}, err
	}
	if cfg.EnableTracing, err = s.getEnvAsBoolOrDefault("ENABLE_TRACING", false); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StoreEngine {
	case "memory", "sqlite":
	case "postgres":
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required when STORE_ENGINE=postgres")
		}
		if c.DBDriver != "pgx" && c.DBDriver != "postgres" {
			return fmt.Errorf("DB_DRIVER must be pgx or postgres, got %q", c.DBDriver)
		}
	default:
		return fmt.Errorf("unknown STORE_ENGINE %q", c.StoreEngine)
	}

	switch c.AuthMode {
	case "dev":
	case "jwt":
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
		}
	case "remote":
		if c.AuthBaseURL == "" {
			return fmt.Errorf("AUTH_BASE_URL is required when AUTH_MODE=remote")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}

	switch c.PhotoStore {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when PHOTO_STORE=s3")
		}
	default:
		return fmt.Errorf("unknown PHOTO_STORE %q", c.PhotoStore)
	}

	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be > 0")
	}
	return nil
}

// Addr devuelve la dirección de escucha (":8080").
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
