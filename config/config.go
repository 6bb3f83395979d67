package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	APIBaseURL    string
	SessionSecret string
	SessionTTL    time.Duration
	Debug         bool
}

func ParseFlags() (cfg Config, err error) {
	// .env is optional; flags win over environment values
	_ = godotenv.Load()

	var host string
	flag.StringVar(&host, "host", envOr("HOST", "0.0.0.0"), "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", uint(envOrInt("PORT", 3000)), "listen port number (default 3000)")
	flag.StringVar(&cfg.APIBaseURL, "api-url", envOr("API_URL", "http://localhost:5056"), "base URL of the survey API server")
	flag.StringVar(&cfg.SessionSecret, "session-secret", envOr("SESSION_SECRET", ""), "secret key for session cookie signing")
	var ttl uint
	flag.UintVar(&ttl, "session-ttl", uint(envOrInt("SESSION_TTL", 43200)), "session token TTL in seconds (default 43200)")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.SessionTTL = time.Duration(ttl) * time.Second

	if cfg.SessionSecret == "" {
		err = errors.New("missing parameter -session-secret")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
