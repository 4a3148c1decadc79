package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

type Config struct {
	Production         bool          `env:"PRODUCTION" envDefault:"false"`
	Port               string        `env:"PORT" envDefault:"80"`
	PostgresURL        string        `env:"POSTGRES_URL,required"`
	RunMigrations      bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
	RedisURL           string        `env:"REDIS_URL" envDefault:"redis:6379"`
	JwtTTL             time.Duration `env:"TOKEN_TTL" envDefault:"20m"`
	Secret             string        `env:"SECRET,required"`
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	SessionTokenLength int           `env:"SESSION_TOKEN_LENGTH" envDefault:"32"`
	AdminCacheTTL      time.Duration `env:"ADMIN_CACHE_TTL" envDefault:"5m"`
	ClientSecretPath   string        `env:"CLIENT_SECRET_PATH" envDefault:"secrets/client_secret.json"`
	RedirectURL        string        `env:"REDIRECT_URL" envDefault:""`
	ClientType         string        `env:"CLIENT_TYPE" envDefault:"web"`
	FirebaseAPIKey     string        `env:"FIREBASE_API_KEY" envDefault:""`
	StorageBackend     string        `env:"STORAGE_BACKEND" envDefault:"local"`
	StorageBucket      string        `env:"STORAGE_BUCKET" envDefault:""`
	FilesDir           string        `env:"FILES_DIR" envDefault:"files"`
	PublicURL          string        `env:"PUBLIC_URL" envDefault:"http://localhost"`
	MaxFileSize        int64         `env:"MAX_FILE_SIZE" envDefault:"5242880"`
	MaxImageWidth      int           `env:"MAX_IMAGE_WIDTH" envDefault:"1920"`
	TimeZone           string        `env:"TIMEZONE" envDefault:"Local"`
	DefaultLocale      string        `env:"DEFAULT_LOCALE" envDefault:"vi"`
	RemindersEnabled   bool          `env:"REMINDERS_ENABLED" envDefault:"false"`
	ReminderLead       time.Duration `env:"REMINDER_LEAD" envDefault:"1h"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional, variables may come straight from the environment.
	_ = godotenv.Load()

	conf := &Config{}
	if err := env.Parse(conf); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if conf.StorageBackend != "local" && conf.StorageBackend != "firebase" {
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", conf.StorageBackend)
	}
	if conf.StorageBackend == "firebase" && conf.StorageBucket == "" {
		return nil, fmt.Errorf("STORAGE_BUCKET must be set for firebase storage")
	}

	return conf, nil
}

// Location resolves TIMEZONE. "Local" keeps the zone of the host.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.TimeZone, err)
	}

	return loc, nil
}
