package config

import (
	"crypto/subtle"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds all runtime configuration. It is built once at process
// start and passed explicitly into the components that need it.
type Config struct {
	Port        string
	DatabaseURL string
	CSVPath     string
	JWTSecret   string
	Admin       AdminCredentials
}

// AdminCredentials is the single shared credential pair protecting the
// gated analytics endpoints. The password is only kept as a bcrypt hash.
type AdminCredentials struct {
	Username     string
	passwordHash []byte
}

// Verify reports whether the given pair matches the configured admin
// credentials. Both checks always run so timing does not leak which
// part was wrong.
func (a AdminCredentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) == 1
	passOK := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	return userOK && passOK
}

// NewAdminCredentials hashes the plaintext password and returns the
// credential pair. Exported for tests that need a known admin.
func NewAdminCredentials(username, password string) (AdminCredentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AdminCredentials{}, err
	}
	return AdminCredentials{Username: username, passwordHash: hash}, nil
}

// Load reads configuration from the environment. A .env file is loaded
// first when present. Missing required variables are fatal.
func Load() *Config {
	_ = godotenv.Load()

	admin, err := NewAdminCredentials(must("ADMIN_USERNAME"), must("ADMIN_PASSWORD"))
	if err != nil {
		log.Fatalf("hashing admin password: %v", err)
	}

	return &Config{
		Port:        getEnv("PORT", "8000"),
		DatabaseURL: getEnv("DATABASE_URL", "bookings.db"),
		CSVPath:     must("CSV_PATH"),
		JWTSecret:   must("JWT_SECRET"),
		Admin:       admin,
	}
}

func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
