package main

import (
	"fmt"
	"os"
	"time"

	"orderflow/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()

	app, err := cmd.NewCompositionRoot(configs)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:        goDotEnvVariable("HTTP_PORT", "8080"),
		StorageDriver:   goDotEnvVariable("STORAGE_DRIVER", cmd.StorageDriverMemory),
		StorageFilePath: goDotEnvVariable("STORAGE_FILE_PATH", "orders.json"),
		DBHost:          goDotEnvVariable("DB_HOST", "localhost"),
		DBPort:          goDotEnvVariable("DB_PORT", "5432"),
		DBUser:          goDotEnvVariable("DB_USER", "postgres"),
		DBPassword:      goDotEnvVariable("DB_PASSWORD", ""),
		DBName:          goDotEnvVariable("DB_NAME", "orderflow"),
		DBSslMode:       goDotEnvVariable("DB_SSLMODE", "disable"),
		AdvanceDelay:    durationVariable("ADVANCE_DELAY", 5*time.Minute),
		AdvanceSchedule: goDotEnvVariable("ADVANCE_SCHEDULE", "@every 1m"),
	}
	return config
}

func goDotEnvVariable(key, fallback string) string {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load(".env")

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key, "")
	if raw == "" {
		return fallback
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return value
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
