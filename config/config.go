package config

import (
	"github.com/kelseyhightower/envconfig"
)

// App holds all environment-driven configuration for the service.
type App struct {
	// Database
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"soundbridge"`

	// Payments
	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY"`

	// Auth
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// Notifications
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"soundbridge.notifications"`

	// Misc
	AppBaseURL         string `envconfig:"APP_BASE_URL" default:"https://soundbridge.live"`
	NewRelicLicenseKey string `envconfig:"NEW_RELIC_LICENSE_KEY"`
	Port               string `envconfig:"PORT" default:"8080"`
}

// Load reads configuration from the environment.
func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
