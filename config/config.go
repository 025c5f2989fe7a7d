package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/phaetex/efootball-client/models"
)

// Config holds the client configuration.
type Config struct {
	// APIBaseURL is the backend root, including the /api prefix.
	APIBaseURL string
	// RequestTimeout bounds every backend call; a timeout is treated
	// the same as any other transport failure.
	RequestTimeout time.Duration
	// TokenDBPath is the SQLite file holding the durable session token,
	// the only persisted client-side state.
	TokenDBPath string
	// IntakeVariant selects the registration payment-evidence scheme.
	IntakeVariant models.IntakeVariant
	// RequireRegNo adds the admission/registration number field to the
	// intake form.
	RequireRegNo bool
}

// Load reads the client configuration from environment variables,
// optionally seeded from a .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	baseURL := getEnvOrDefault("API_BASE_URL", "http://localhost:8080/api")

	timeoutStr := getEnvOrDefault("REQUEST_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", timeout)
	}

	variant, err := models.ParseIntakeVariant(getEnvOrDefault("INTAKE_VARIANT", string(models.IntakeTransactionCode)))
	if err != nil {
		return nil, fmt.Errorf("invalid INTAKE_VARIANT: %w", err)
	}

	requireRegNo := false
	if v := os.Getenv("REQUIRE_REG_NO"); v != "" {
		requireRegNo, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUIRE_REG_NO: %w", err)
		}
	}

	return &Config{
		APIBaseURL:     baseURL,
		RequestTimeout: timeout,
		TokenDBPath:    getEnvOrDefault("TOKEN_DB_PATH", "efootball-session.db"),
		IntakeVariant:  variant,
		RequireRegNo:   requireRegNo,
	}, nil
}

// DevServerConfig holds the local stub backend configuration.
type DevServerConfig struct {
	Port             int
	JWTSecret        string
	TournamentName   string
	TournamentStatus models.TournamentStatus
	SeedAdminUser    string
	SeedAdminPass    string
	EntryFee         int
}

// LoadDevServer reads the stub backend configuration. Everything has a
// development default; the secret must still be overridden for anything
// reachable from outside localhost.
func LoadDevServer() (*DevServerConfig, error) {
	_ = godotenv.Load()

	portStr := getEnvOrDefault("DEVSERVER_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DEVSERVER_PORT: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("DEVSERVER_PORT must be between 1 and 65535, got %d", port)
	}

	status := models.TournamentStatus(getEnvOrDefault("TOURNAMENT_STATUS", string(models.TournamentNotStarted)))
	if status != models.TournamentNotStarted && status != models.TournamentStarted {
		return nil, fmt.Errorf("invalid TOURNAMENT_STATUS: %q", status)
	}

	fee, err := strconv.Atoi(getEnvOrDefault("ENTRY_FEE", "90"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENTRY_FEE: %w", err)
	}

	return &DevServerConfig{
		Port:             port,
		JWTSecret:        getEnvOrDefault("JWT_SECRET_KEY", "dev-only-secret"),
		TournamentName:   getEnvOrDefault("TOURNAMENT_NAME", "Machakos University Efootball Tournament"),
		TournamentStatus: status,
		SeedAdminUser:    getEnvOrDefault("SEED_ADMIN_USERNAME", "root_admin"),
		SeedAdminPass:    getEnvOrDefault("SEED_ADMIN_PASSWORD", "changemenow"),
		EntryFee:         fee,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
