package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	IdentityFirebase = "firebase"
	IdentityLocal    = "local"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Env  string
	Port string

	MongoURI string
	DBName   string

	StripeSecret    string
	SiteDomain      string
	Currency        string
	BoostAmount     int64
	PremiumAmount   int64
	CheckoutPerMin  int
	FreeIssueLimit  int64
	IssueDailyLimit int

	IdentityProvider        string
	FirebaseServiceKey      string
	FirebaseCredentialsFile string
	JWTSecret               string

	RedisAddress    string
	RedisPassword   string
	IssueLimitQueue string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Env:  getEnv("GO_ENV", "development"),
		Port: getEnv("PORT", "3000"),

		MongoURI: mongoURI(),
		DBName:   getEnv("DB_NAME", "cityFixDB"),

		StripeSecret:    os.Getenv("STRIPE_SECRET"),
		SiteDomain:      getEnv("SITE_DOMAIN", "http://localhost:5173"),
		Currency:        getEnv("PAYMENT_CURRENCY", "bdt"),
		BoostAmount:     int64(getEnvInt("BOOST_AMOUNT", 10000)),
		PremiumAmount:   int64(getEnvInt("PREMIUM_AMOUNT", 100000)),
		CheckoutPerMin:  getEnvInt("CHECKOUT_RATE_PER_MINUTE", 10),
		FreeIssueLimit:  int64(getEnvInt("FREE_ISSUE_LIMIT", 3)),
		IssueDailyLimit: getEnvInt("ISSUE_DAILY_LIMIT", 20),

		FirebaseServiceKey:      os.Getenv("FB_SERVICE_KEY"),
		FirebaseCredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		JWTSecret:               os.Getenv("JWT_SECRET"),

		RedisAddress:    os.Getenv("REDIS_ADDRESS"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		IssueLimitQueue: getEnv("REDIS_QUEUE_FOR_ISSUE_LIMIT", "issue-limit"),
	}

	cfg.IdentityProvider = os.Getenv("IDENTITY_PROVIDER")
	if cfg.IdentityProvider == "" {
		cfg.IdentityProvider = IdentityLocal
		if cfg.FirebaseServiceKey != "" || cfg.FirebaseCredentialsFile != "" {
			cfg.IdentityProvider = IdentityFirebase
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("please define MONGODB_URI or DB_USER/DB_PASS")
	}
	switch c.IdentityProvider {
	case IdentityFirebase:
		if c.FirebaseServiceKey == "" && c.FirebaseCredentialsFile == "" {
			return fmt.Errorf("firebase identity needs FB_SERVICE_KEY or GOOGLE_APPLICATION_CREDENTIALS")
		}
	case IdentityLocal:
		if c.JWTSecret == "" {
			return fmt.Errorf("local identity needs JWT_SECRET")
		}
	default:
		return fmt.Errorf("unknown IDENTITY_PROVIDER %q", c.IdentityProvider)
	}
	return nil
}

// mongoURI prefers MONGODB_URI and falls back to the Atlas cluster form built
// from DB_USER and DB_PASS.
func mongoURI() string {
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		return uri
	}
	user, pass := os.Getenv("DB_USER"), os.Getenv("DB_PASS")
	if user == "" || pass == "" {
		return ""
	}
	host := getEnv("DB_HOST", "cluster0.vybtxro.mongodb.net")
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?appName=Cluster0",
		url.QueryEscape(user), url.QueryEscape(pass), host)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
