package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Tables struct {
	Schema   string
	Dispatch string
}

type Postgres struct {
	Host     string
	Port     string
	DB       string
	User     string
	Password string
	SSLMode  string
}

type Source struct {
	BaseURL   string
	AuthToken string
	Status    string
	Timeout   time.Duration
}

type Poll struct {
	Interval time.Duration
	Window   time.Duration
}

type Dispatch struct {
	Delay   time.Duration
	Timeout time.Duration
}

type Printer struct {
	URL        string
	DeviceName string
}

type Kafka struct {
	Brokers []string
	Topic   string
}

type Config struct {
	HTTPAddr       string
	DetailCacheCap int

	Src      Source
	Poll     Poll
	Dispatch Dispatch
	Printer  Printer
	Pg       Postgres
	Tables   Tables
	Kafka    Kafka
}

// Load keeps the original API and fatals on error for simplicity in main().
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load("env/.env")

	cfg := Config{
		HTTPAddr:       envDefault("HTTP_ADDR", ":8081"),
		DetailCacheCap: envInt("DETAIL_CACHE_CAP", 256),

		Src: Source{
			BaseURL:   strings.TrimSpace(os.Getenv("API_BASE_URL")),
			AuthToken: strings.TrimSpace(os.Getenv("API_AUTH_TOKEN")),
			Status:    envDefault("ORDER_STATUS", "pending"),
			Timeout:   envDurationMS("API_TIMEOUT", 15*time.Second),
		},

		Poll: Poll{
			Interval: envDurationMS("POLL_INTERVAL", 30*time.Second),
			Window:   envDurationMS("POLL_WINDOW", 2*time.Minute),
		},

		Dispatch: Dispatch{
			Delay:   envDurationMS("DISPATCH_DELAY", time.Second),
			Timeout: envDurationMS("DISPATCH_TIMEOUT", 30*time.Second),
		},

		Printer: Printer{
			URL:        strings.TrimSpace(os.Getenv("PRINTER_URL")),
			DeviceName: strings.TrimSpace(os.Getenv("PRINTER_NAME")),
		},

		Pg: Postgres{
			Host:     strings.TrimSpace(os.Getenv("PG_HOST")),
			Port:     strings.TrimSpace(envDefault("PG_PORT", "5432")),
			DB:       strings.TrimSpace(os.Getenv("PG_DB")),
			User:     strings.TrimSpace(os.Getenv("PG_USER")),
			Password: strings.TrimSpace(os.Getenv("PG_PASSWORD")),
			SSLMode:  strings.TrimSpace(envDefault("PG_SSLMODE", "disable")),
		},

		Tables: Tables{
			Schema:   strings.TrimSpace(envDefault("DB_SCHEMA", "public")),
			Dispatch: strings.TrimSpace(envDefault("TBL_DISPATCH", "dispatch_records")),
		},

		Kafka: Kafka{
			Brokers: splitCSV(strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))),
			Topic:   strings.TrimSpace(os.Getenv("KAFKA_TOPIC")),
		},
	}

	// Validate required envs and basic sanity.
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	req := map[string]string{
		"API_BASE_URL":   c.Src.BaseURL,
		"API_AUTH_TOKEN": c.Src.AuthToken,
		"PRINTER_URL":    c.Printer.URL,
		"PG_HOST":        c.Pg.Host,
		"PG_DB":          c.Pg.DB,
		"PG_USER":        c.Pg.User,
		"PG_PASSWORD":    c.Pg.Password,
	}
	for k, v := range req {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &missingEnvError{Keys: missing}
	}

	// The rolling window must exceed the poll interval, otherwise an order
	// can fall between two consecutive windows and never be seen.
	if c.Poll.Window <= c.Poll.Interval {
		return &windowError{Window: c.Poll.Window, Interval: c.Poll.Interval}
	}

	if c.DetailCacheCap <= 0 {
		log.Printf("DETAIL_CACHE_CAP is %d, adjusting to 1", c.DetailCacheCap)
	}
	if c.Dispatch.Delay < 0 {
		log.Printf("DISPATCH_DELAY is %v, adjusting to 0", c.Dispatch.Delay)
	}
	if c.Kafka.Topic != "" && len(c.Kafka.Brokers) == 0 {
		return &missingEnvError{Keys: []string{"KAFKA_BROKERS"}}
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

type windowError struct {
	Window   time.Duration
	Interval time.Duration
}

func (e *windowError) Error() string {
	return "POLL_WINDOW (" + e.Window.String() + ") must exceed POLL_INTERVAL (" + e.Interval.String() + ")"
}

// DSN builds a proper Postgres URL, safely escaping user/pass and query.
func (c Config) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Pg.User, c.Pg.Password),
		Host:   net.JoinHostPort(c.Pg.Host, c.Pg.Port),
		Path:   "/" + c.Pg.DB,
	}
	q := url.Values{}
	if c.Pg.SSLMode != "" {
		q.Set("sslmode", c.Pg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

// envDurationMS supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "2m").
func envDurationMS(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	// If it looks like a duration with units, try ParseDuration first.
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	// Otherwise treat as milliseconds.
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
