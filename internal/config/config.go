package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything the engine needs for one run. Values come from
// the environment, optionally seeded from a .env file, and may be overridden
// on the command line.
type Config struct {
	// InputPath is the transaction CSV to read. Empty or "-" means stdin.
	InputPath string

	// Strict aborts the run on the first recoverable condition instead of
	// skipping the record.
	Strict bool

	// LogLevel is the level name for diagnostic output on stderr.
	LogLevel string

	// EventBrokers lists Kafka brokers for account-locked events. Empty
	// disables publishing.
	EventBrokers []string

	// EventTopic is the topic account-locked events are published to.
	EventTopic string

	// ArchiveDSN is the Postgres DSN snapshots are archived to. Empty
	// disables archiving.
	ArchiveDSN string
}

// Load builds a Config from the environment and command-line arguments.
// Flags win over environment variables. At most one positional argument is
// accepted, naming the input file.
func Load(args []string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Strict:       envBool("STRICT_MODE"),
		LogLevel:     envOr("LOG_LEVEL", "info"),
		EventBrokers: splitList(os.Getenv("EVENT_BROKERS")),
		EventTopic:   envOr("EVENT_TOPIC", "account_locked"),
		ArchiveDSN:   os.Getenv("ARCHIVE_DATABASE_URL"),
	}

	fs := flag.NewFlagSet("engine", flag.ContinueOnError)
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "abort on the first recoverable condition")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace|debug|info|warn|error|fatal|disabled)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.InputPath = fs.Arg(0)
	default:
		return Config{}, fmt.Errorf("config: expected at most one input file, got %d arguments", fs.NArg())
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
