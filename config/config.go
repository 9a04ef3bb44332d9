package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Geocoding service. The viewbox ("left,top,right,bottom" in degrees),
	// country restriction and bounded search keep matches inside the target
	// area; without them street names resolve all over the country.
	NominatimURL string
	UserAgent    string
	CityHint     string
	Viewbox      string
	CountryCodes string
	Language     string
	MaxKm        float64
	RateLimitMs  int
	GeoTimeoutMs int

	// Data files.
	CSVPath   string
	JSONPath  string
	CachePath string

	// Announce fetching.
	ChromeBin      string
	FetchTimeoutMs int

	// Viewer server.
	ListenAddr string
	StaticDir  string

	// Issue drafts.
	IssueRepo      string
	IssueLabel     string
	SubmitWindowMs int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		NominatimURL: getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
		UserAgent:    getEnv("GEO_USER_AGENT", "apartment-map-csv"),
		CityHint:     getEnv("GEO_CITY_HINT", "Montpellier, France"),
		Viewbox:      getEnv("GEO_VIEWBOX", "3.75,43.72,4.05,43.53"),
		CountryCodes: getEnv("GEO_COUNTRY_CODES", "fr"),
		Language:     getEnv("GEO_LANGUAGE", "fr"),
		MaxKm:        getEnvFloat("GEO_MAX_KM", 30),
		RateLimitMs:  getEnvInt("GEO_RATE_LIMIT_MS", 1000),
		GeoTimeoutMs: getEnvInt("GEO_TIMEOUT_MS", 15000),

		CSVPath:   getEnv("CSV_PATH", "data/apartments.csv"),
		JSONPath:  getEnv("JSON_PATH", "data/apartments.json"),
		CachePath: getEnv("GEO_CACHE_PATH", "data/.geocode_cache.json"),

		ChromeBin:      getEnv("CHROME_BIN", ""),
		FetchTimeoutMs: getEnvInt("FETCH_TIMEOUT_MS", 25000),

		ListenAddr: getEnv("LISTEN_ADDR", ":8787"),
		StaticDir:  getEnv("STATIC_DIR", "web"),

		IssueRepo:      getEnv("ISSUE_REPO", ""),
		IssueLabel:     getEnv("ISSUE_LABEL", "annonce"),
		SubmitWindowMs: getEnvInt("SUBMIT_WINDOW_MS", 1200),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}
