package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"seriestracker/internal/client"
	"seriestracker/internal/configuration"
	"seriestracker/internal/logger"
	"seriestracker/internal/notify"
	"seriestracker/internal/schedule"
	"seriestracker/internal/server"
	"seriestracker/internal/store"
	"seriestracker/internal/tracker"
)

func main() {
	runApp()
	time.Sleep(10 * time.Second)
	os.Exit(1)
}

func runApp() error {
	appContext := context.Background()
	logOutput := io.Writer(os.Stdout)
	appLogger := logger.NewLogger(logger.LevelInfo, logOutput)

	defer func() {
		if r := recover(); r != nil {
			appLogger.Errorf("APPLICATION CRASHED: %+v", r)
		}
	}()

	// .env is optional, secrets can come from the environment instead of
	// config.toml.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		appLogger.Error("Error loading .env file:", err)
	}

	config, err := configuration.GetConfig("config.toml")
	if err != nil {
		appLogger.Error("Error getting configuration from config.toml:", err)
		return err
	}
	if config.OMDBAPIKey == "" {
		config.OMDBAPIKey = os.Getenv("OMDB_API_KEY")
	}
	if config.FCMKey == "" {
		config.FCMKey = os.Getenv("FCM_KEY")
	}

	if config.LogToFile {
		logFile, err := os.OpenFile("seriestracker.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			appLogger.Error("Error opening log file:", err)
			return err
		}
		defer func() {
			if err := logFile.Close(); err != nil {
				appLogger.Error("Error closing log file:", err)
			}
		}()
		logOutput = io.MultiWriter(logOutput, logFile)
	}
	appLogger = logger.NewLogger(config.LogLevel, logOutput)

	if config.LogLevel >= logger.LevelDebug {
		conf, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			appLogger.Error("Error marshalling Config to JSON:", err)
			return err
		}
		appLogger.Debugf("Config:\n%s", conf)
	}

	appClient := client.Client{
		Client:       &http.Client{Timeout: 15 * time.Second},
		OMDBAPIKey:   config.OMDBAPIKey,
		OMDBCacheTTL: config.OMDBCacheTTL,
		FCMKey:       config.FCMKey,
		Logger:       appLogger,
	}

	var stateStore store.Store
	switch config.StorageBackend {
	case configuration.StorageFile:
		appLogger.Info("Using file storage at", config.StateFilePath)
		stateStore = store.NewFileStore(config.StateFilePath)
	case configuration.StorageRedis:
		appLogger.Info("Connecting to Redis at", config.RedisURI)
		redisConn, err := store.ConnectRedis(appContext, config.RedisURI)
		if err != nil {
			appLogger.Error("Error connecting to Redis:", err)
			return err
		}
		defer func() {
			if err := redisConn.Close(); err != nil {
				appLogger.Error("Error disconnecting from Redis:", err)
			}
		}()
		stateStore = store.NewRedisStore(redisConn)
		appClient.Redis = redisConn
	case configuration.StorageMongoDB:
		appLogger.Info("Connecting to DB at", config.DatabaseURI)
		dbConn, err := store.ConnectDB(appContext, config.DatabaseURI)
		if err != nil {
			appLogger.Error("Error connecting to DB:", err)
			return err
		}
		defer func() {
			if err := dbConn.Disconnect(appContext); err != nil {
				appLogger.Error("Error disconnecting from DB:", err)
			}
		}()
		stateStore = store.NewMongoStore(dbConn)
	}

	notifier := &notify.LocalNotifier{
		Client:       appClient,
		DeviceTokens: config.FCMDeviceTokens,
		Logger:       appLogger,
	}
	appLogger.Info("Starting reminder dispatcher with interval:", config.ReminderCheckInterval)
	go notifier.DispatchInInterval(appContext, time.NewTicker(config.ReminderCheckInterval))

	appTracker := &tracker.Tracker{
		Store: stateStore,
		Scheduler: &schedule.Scheduler{
			Notifier: notifier,
			Logger:   appLogger,
		},
		Logger: appLogger,
	}
	if err := appTracker.Load(appContext); err != nil {
		appLogger.Error("Error loading TrackerState:", err)
		return err
	}

	srv := server.Server{
		Tracker: appTracker,
		Client:  appClient,
		Logger:  appLogger,
	}

	httpSrv := &http.Server{
		Handler:      srv.Router(),
		Addr:         config.ServerAddress,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	appLogger.Info("Serving on", httpSrv.Addr)
	return httpSrv.ListenAndServe()
}
