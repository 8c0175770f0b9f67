package config

import "os"

// Business is the seller identity printed on invoices, PDFs and share
// messages.
type Business struct {
	Name         string
	Address      string
	Phone1       string
	Phone2       string
	Email        string
	GSTIN        string
	Jurisdiction string
}

// Config is the process configuration, loaded from the environment.
type Config struct {
	Port      string
	DataPath  string
	Env       string
	LogLevel  string
	LogFormat string
	Business  Business
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by the caller) > default.
func Load() Config {
	return Config{
		Port:      getEnv("PORT", "8080"),
		DataPath:  getEnv("DATA_PATH", "invoices.db"),
		Env:       getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
		Business: Business{
			Name:         getEnv("BUSINESS_NAME", "Aakash Furniture"),
			Address:      getEnv("BUSINESS_ADDRESS", "Shop No. 2, Near SBI Bank, Kolar Road, Bhopal (M.P) - 462042"),
			Phone1:       getEnv("BUSINESS_PHONE1", "+91 91110 92001"),
			Phone2:       getEnv("BUSINESS_PHONE2", "+91 99775 18856"),
			Email:        getEnv("BUSINESS_EMAIL", "aakashfurniture@gmail.com"),
			GSTIN:        getEnv("BUSINESS_GSTIN", "23ALVPL7961R2ZW"),
			Jurisdiction: getEnv("BUSINESS_JURISDICTION", "Bhopal"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
