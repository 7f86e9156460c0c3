package configuration

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"seriestracker/internal/logger"
)

type StorageBackend string

const (
	StorageFile    StorageBackend = "file"
	StorageRedis   StorageBackend = "redis"
	StorageMongoDB StorageBackend = "mongodb"
)

type Config struct {
	ServerAddress         string
	StorageBackend        StorageBackend
	StateFilePath         string
	RedisURI              string
	DatabaseURI           string
	OMDBAPIKey            string
	OMDBCacheTTL          time.Duration
	ReminderCheckInterval time.Duration
	FCMKey                string
	FCMDeviceTokens       []string
	LogLevel              logger.Level
	LogToFile             bool
}

type tomlConfig struct {
	ServerAddress         string   `toml:"server_address"`
	StorageBackend        string   `toml:"storage_backend"`
	StateFilePath         string   `toml:"state_file_path"`
	RedisURI              string   `toml:"redis_uri"`
	DatabaseURI           string   `toml:"database_uri"`
	OMDBAPIKey            string   `toml:"omdb_api_key"`
	OMDBCacheTTL          string   `toml:"omdb_cache_ttl"`
	ReminderCheckInterval string   `toml:"reminder_check_interval"`
	FCMKey                string   `toml:"fcm_key"`
	FCMDeviceTokens       []string `toml:"fcm_device_tokens"`
	LogLevel              string   `toml:"log_level"`
	LogToFile             bool     `toml:"log_to_file"`
}

func GetConfig(path string) (*Config, error) {
	var tc tomlConfig
	_, err := toml.DecodeFile(path, &tc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode toml file with path: %s", path)
	}

	if tc.ServerAddress == "" {
		tc.ServerAddress = "localhost:8887"
	}

	if tc.StorageBackend == "" {
		tc.StorageBackend = string(StorageFile)
	}
	backend := StorageBackend(tc.StorageBackend)
	switch backend {
	case StorageFile:
		if tc.StateFilePath == "" {
			tc.StateFilePath = "series_tracker_state.json"
		}
	case StorageRedis:
		if tc.RedisURI == "" {
			tc.RedisURI = "redis://localhost:6379"
		}
	case StorageMongoDB:
		if tc.DatabaseURI == "" {
			tc.DatabaseURI = "mongodb://localhost:27017"
		}
	default:
		return nil, errors.Errorf("invalid storage_backend: %s", tc.StorageBackend)
	}

	if tc.OMDBCacheTTL == "" {
		tc.OMDBCacheTTL = "1h"
	}
	omdbCacheTTL, err := time.ParseDuration(tc.OMDBCacheTTL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse omdb_cache_ttl: %s", tc.OMDBCacheTTL)
	}

	if tc.ReminderCheckInterval == "" {
		tc.ReminderCheckInterval = "1m"
	}
	reminderCheckInterval, err := time.ParseDuration(tc.ReminderCheckInterval)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse reminder_check_interval: %s", tc.ReminderCheckInterval)
	}
	if reminderCheckInterval < time.Second {
		return nil, errors.Errorf("reminder_check_interval too short (%v), minimum interval: 1s", reminderCheckInterval)
	}

	if tc.LogLevel == "" {
		tc.LogLevel = "INFO"
	}
	logLevel, err := logger.ParseLevel(tc.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse log_level: %s", tc.LogLevel)
	}

	return &Config{
		ServerAddress:         tc.ServerAddress,
		StorageBackend:        backend,
		StateFilePath:         tc.StateFilePath,
		RedisURI:              tc.RedisURI,
		DatabaseURI:           tc.DatabaseURI,
		OMDBAPIKey:            tc.OMDBAPIKey,
		OMDBCacheTTL:          omdbCacheTTL,
		ReminderCheckInterval: reminderCheckInterval,
		FCMKey:                tc.FCMKey,
		FCMDeviceTokens:       tc.FCMDeviceTokens,
		LogLevel:              logLevel,
		LogToFile:             tc.LogToFile,
	}, nil
}
