package config

import (
	"os"
	"time"
)

// Criteria holds the attestation schema ids and attester addresses each
// verification strategy is pinned to. Keeping them in one struct (instead of
// ambient env lookups at call sites) makes strategy construction explicit.
type Criteria struct {
	ReceiptsRunningSchema string
	ReceiptsAttester      string
	CoinbaseCountrySchema string
	CoinbaseAccountSchema string
	CoinbaseOneSchema     string
	CoinbaseAttester      string
}

// Server captures process-level configuration.
type Server struct {
	Addr          string
	BaseURL       string
	DatabaseURL   string
	EASScanURL    string
	NeynarAPIKey  string
	JWTSigningKey string
	ClientTimeout time.Duration
	Criteria      Criteria
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("TARGETONCHAIN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	easURL := os.Getenv("BASE_EAS_SCAN_URL")
	if easURL == "" {
		easURL = "https://base.easscan.org/graphql"
	}

	clientTimeout := 10 * time.Second
	if raw := os.Getenv("CLIENT_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			clientTimeout = d
		}
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          addr,
		BaseURL:       baseURL,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		EASScanURL:    easURL,
		NeynarAPIKey:  os.Getenv("NEYNAR_API_KEY"),
		JWTSigningKey: jwtSigningKey,
		ClientTimeout: clientTimeout,
		Criteria: Criteria{
			ReceiptsRunningSchema: os.Getenv("RECEIPTS_XYZ_ALL_TIME_RUNNING_SCHEMA"),
			ReceiptsAttester:      os.Getenv("RECEIPTS_XYZ_ATTESTER"),
			CoinbaseCountrySchema: os.Getenv("COINBASE_ONCHAIN_VERIFICATION_COUNTRY_RESIDENCE_SCHEMA"),
			CoinbaseAccountSchema: os.Getenv("COINBASE_ONCHAIN_VERIFICATION_ACCOUNT_SCHEMA"),
			CoinbaseOneSchema:     os.Getenv("COINBASE_ONCHAIN_VERIFICATION_ONE_SCHEMA"),
			CoinbaseAttester:      os.Getenv("COINBASE_ONCHAIN_VERIFICATION_ATTESTER"),
		},
	}
}
