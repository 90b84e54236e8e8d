package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	EmailSender string
	SendgridKey string

	EventWebhookURL string // Optional analytics/notification webhook

	// Reward policy knobs. These are product policy, kept configurable.
	LevelXPUnit            int // XP required per level
	VideoCompleteThreshold int // watch percentage that counts as completed

	XPVideoBase    int
	XPLabBase      int
	XPGameBase     int
	XPDocumentBase int

	DurationBonusStepMinutes int // every N minutes of content adds DurationBonusXP
	DurationBonusXP          int

	MultiplierBeginner     float64
	MultiplierIntermediate float64
	MultiplierAdvanced     float64

	ModuleBonusBaseXP int
	EnrollmentXP      int

	StreakReminderMinDays int // minimum streak length worth a reminder email
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		SendgridKey: getEnv("SENDGRID_API_KEY", ""),

		EventWebhookURL: getEnv("EVENT_WEBHOOK_URL", ""),

		LevelXPUnit:            getEnvInt("LEVEL_XP_UNIT", 500),
		VideoCompleteThreshold: getEnvInt("VIDEO_COMPLETE_THRESHOLD", 90),

		XPVideoBase:    getEnvInt("XP_VIDEO_BASE", 20),
		XPLabBase:      getEnvInt("XP_LAB_BASE", 50),
		XPGameBase:     getEnvInt("XP_GAME_BASE", 40),
		XPDocumentBase: getEnvInt("XP_DOCUMENT_BASE", 10),

		DurationBonusStepMinutes: getEnvInt("DURATION_BONUS_STEP_MINUTES", 30),
		DurationBonusXP:          getEnvInt("DURATION_BONUS_XP", 5),

		MultiplierBeginner:     getEnvFloat("MULTIPLIER_BEGINNER", 1.0),
		MultiplierIntermediate: getEnvFloat("MULTIPLIER_INTERMEDIATE", 1.5),
		MultiplierAdvanced:     getEnvFloat("MULTIPLIER_ADVANCED", 2.0),

		ModuleBonusBaseXP: getEnvInt("MODULE_BONUS_BASE_XP", 100),
		EnrollmentXP:      getEnvInt("ENROLLMENT_XP", 10),

		StreakReminderMinDays: getEnvInt("STREAK_REMINDER_MIN_DAYS", 3),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendgridKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Outgoing email is disabled.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvFloat retrieves an environment variable as a float or returns the default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to float: %v", key, err)
		return defaultValue
	}
	return floatValue
}
