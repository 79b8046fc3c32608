package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	TasksFile        string
	CategoriesFile   string
	ReminderInterval time.Duration
}

// Load reads configuration from the environment, with a best-effort
// .env file on top. File paths are carried here and handed to the
// stores explicitly; nothing downstream hardcodes a path.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:             getEnv("PORT", "8080"),
		TasksFile:        getEnv("TASKS_FILE", "tasks.json"),
		CategoriesFile:   getEnv("CATEGORIES_FILE", "categories.json"),
		ReminderInterval: getDuration("REMINDER_INTERVAL", time.Minute),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}
