package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const productionEnv = "production"

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"crowdship"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	JWTSecret string        `env:"JWT_SECRET,notEmpty"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"720h"`

	// Events are only published when KafkaHost is set.
	KafkaHost                 string `env:"KAFKA_HOST"`
	KafkaShipmentChangedTopic string `env:"KAFKA_SHIPMENT_CHANGED_TOPIC" envDefault:"shipment.changed"`
	KafkaTripChangedTopic     string `env:"KAFKA_TRIP_CHANGED_TOPIC" envDefault:"trip.changed"`

	UploadDir     string `env:"UPLOAD_DIR" envDefault:"uploads"`
	UploadBaseURL string `env:"UPLOAD_BASE_URL" envDefault:"http://localhost:8080/uploads"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	ExpiryJobSchedule string `env:"EXPIRY_JOB_SCHEDULE" envDefault:"0 */5 * * * *"`
	DefaultUserPhoto  string `env:"DEFAULT_USER_PHOTO" envDefault:"http://localhost:8080/uploads/default.jpg"`
	MailFrom          string `env:"MAIL_FROM" envDefault:"crowdship <no-reply@crowdship.local>"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == productionEnv
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// PasswordResetURLBase is the prefix the reset token is appended to.
func (c Config) PasswordResetURLBase() string {
	return c.PublicBaseURL + "/api/auth/reset-password/"
}
