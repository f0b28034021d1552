package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config regroupe toute la configuration lue depuis l'environnement.
type Config struct {
	Port            string        `env:"PORT" envDefault:"5000"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"novaxiii"`

	MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"novaxiii"`

	JWTSecret  string        `env:"JWT_SECRET,required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	EmailHost  string `env:"EMAIL_HOST" envDefault:"smtp.gmail.com"`
	EmailPort  int    `env:"EMAIL_PORT" envDefault:"587"`
	EmailUser  string `env:"EMAIL_USER"`
	EmailPass  string `env:"EMAIL_PASS"`
	AdminEmail string `env:"ADMIN_EMAIL" envDefault:"admin@novaxiii.com"`

	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"30s"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
}

// LoadConfig lit l'environnement puis vérifie les valeurs énumérées.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of postgres, mongo, memory (got %q)", c.StoreDriver)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

// PostgresDSN builds the connection string for pgxpool.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// MailEnabled is true when SMTP credentials are present.
func (c *Config) MailEnabled() bool {
	return c.EmailUser != "" && c.EmailPass != ""
}

func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}
