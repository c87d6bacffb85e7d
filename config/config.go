package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration (availability snapshot store).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Google Calendar service account.
	GCPClientEmail  string `mapstructure:"GCP_CLIENT_EMAIL"`
	GCPPrivateKey   string `mapstructure:"GCP_PRIVATE_KEY"`
	GCPProjectID    string `mapstructure:"GCP_PROJECT_ID"`
	GCPSubjectEmail string `mapstructure:"GCP_SUBJECT_EMAIL"`
	GCPImpersonate  bool   `mapstructure:"GCP_IMPERSONATE"`

	// Timezone used for naive clock-wall times (default slots, spoken summaries).
	CalendarTimezone string `mapstructure:"CALENDAR_TIMEZONE"`

	// Atoms voice agent (outbound calls).
	AtomsAPIKey             string `mapstructure:"ATOMS_API_KEY"`
	AtomsAPIBaseURL         string `mapstructure:"ATOMS_API_BASE_URL"`
	AtomsAgentID            string `mapstructure:"ATOMS_AGENT_ID"`
	AtomsDefaultPhoneNumber string `mapstructure:"ATOMS_DEFAULT_PHONE_NUMBER"`

	// SMTP for booking confirmation emails.
	SMTPHost   string `mapstructure:"SMTP_HOST"`
	SMTPPort   int    `mapstructure:"SMTP_PORT"`
	SMTPSecure bool   `mapstructure:"SMTP_SECURE"`
	SMTPUser   string `mapstructure:"SMTP_USER"`
	SMTPPass   string `mapstructure:"SMTP_PASS"`
	EmailFrom  string `mapstructure:"EMAIL_FROM"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "4000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("GCP_IMPERSONATE", false)
	viper.SetDefault("ATOMS_API_BASE_URL", "https://atoms-api.smallest.ai")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_SECURE", false)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// .env files commonly carry the key with literal "\n" sequences; restore
	// real newlines or the JWT signer rejects the PEM block.
	AppConfig.GCPPrivateKey = NormalizePrivateKey(AppConfig.GCPPrivateKey)
}

// NormalizePrivateKey strips accidental quoting/whitespace from a
// service-account private key and converts escaped newlines.
func NormalizePrivateKey(key string) string {
	key = strings.TrimSpace(key)
	if len(key) >= 2 && strings.HasPrefix(key, `"`) && strings.HasSuffix(key, `"`) {
		key = key[1 : len(key)-1]
	}
	return strings.ReplaceAll(key, `\n`, "\n")
}

// TargetCalendarID returns the calendar the receptionist books against:
// the impersonated subject when configured, otherwise the service account's
// own calendar.
func TargetCalendarID() string {
	if AppConfig.GCPSubjectEmail != "" {
		return AppConfig.GCPSubjectEmail
	}
	return AppConfig.GCPClientEmail
}

// CalendarLocation resolves CALENDAR_TIMEZONE, falling back to the process
// local timezone when unset or invalid.
func CalendarLocation() *time.Location {
	if AppConfig.CalendarTimezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(AppConfig.CalendarTimezone)
	if err != nil {
		log.Printf("Invalid CALENDAR_TIMEZONE %q, falling back to local: %v", AppConfig.CalendarTimezone, err)
		return time.Local
	}
	return loc
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
