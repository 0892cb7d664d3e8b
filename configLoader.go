package main

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const defaultApiBase = "http://localhost:8080/api"

const defaultPollInterval = 30

const (
	fileSessionStorage   = "file"
	redisSessionStorage  = "redis"
	memorySessionStorage = "memory"
)

type Config struct {
	apiBase          string
	apiTimeout       time.Duration
	pollInterval     time.Duration
	sessionStorage   string
	sessionFile      string
	redisOptions     *redis.Options
	sessionKeyPrefix string
	telegramToken    string
	telegramChatId   int64
	telegramOffline  bool
	// for test purpose override with mock server
	telegramURL    string
	metricsPushUrl string
	debug          bool
}

func loadConfig(envFilename string) (Config, error) {
	if envFilename != "" {
		err := godotenv.Load(envFilename)
		if err != nil {
			return Config{}, errors.New(fmt.Sprintf("Error loading %s file: %s", envFilename, err))
		}
	}

	apiTimeout, err := strconv.Atoi(os.Getenv("API_TIMEOUT"))
	if apiTimeout < 0 || err != nil {
		apiTimeout = 0
	}

	pollInterval, err := strconv.Atoi(os.Getenv("POLL_INTERVAL"))
	if pollInterval <= 0 || err != nil {
		pollInterval = defaultPollInterval
	}

	config := Config{
		apiBase:          strings.TrimRight(os.Getenv("API_BASE"), "/"),
		apiTimeout:       time.Second * time.Duration(apiTimeout),
		pollInterval:     time.Second * time.Duration(pollInterval),
		sessionStorage:   strings.ToLower(os.Getenv("SESSION_STORAGE")),
		sessionFile:      os.Getenv("SESSION_FILE"),
		sessionKeyPrefix: os.Getenv("SESSION_KEY_PREFIX"),
		telegramToken:    os.Getenv("TELEGRAM_TOKEN"),
		telegramOffline:  isTruthy(os.Getenv("TELEGRAM_OFFLINE")),
		telegramURL:      os.Getenv("TELEGRAM_URL"),
		metricsPushUrl:   os.Getenv("METRICS_PUSH_URL"),
		debug:            isTruthy(os.Getenv("DEBUG")),
	}

	if config.apiBase == "" {
		config.apiBase = defaultApiBase
	}

	switch config.sessionStorage {
	case "":
		config.sessionStorage = fileSessionStorage
		fallthrough

	case fileSessionStorage:
		if config.sessionFile == "" {
			config.sessionFile, err = defaultSessionFile()
		}

	case redisSessionStorage:
		if os.Getenv("REDIS_DSN") == "" {
			return Config{}, errors.New("empty REDIS_DSN")
		}
		config.redisOptions, err = redis.ParseURL(os.Getenv("REDIS_DSN"))

	case memorySessionStorage:

	default:
		return Config{}, fmt.Errorf("unknown SESSION_STORAGE %q", config.sessionStorage)
	}

	if err != nil {
		return Config{}, err
	}

	if config.telegramToken != "" {
		config.telegramChatId, err = strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
		if err != nil || config.telegramChatId == 0 {
			return Config{}, errors.New("empty TELEGRAM_CHAT_ID")
		}
	}

	return config, nil
}

func defaultSessionFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("empty SESSION_FILE and no home directory: %w", err)
	}

	return filepath.Join(home, ".grade-portal", "session.json"), nil
}

func isTruthy(value string) bool {
	return value == "1" || strings.ToLower(value) == "true"
}
