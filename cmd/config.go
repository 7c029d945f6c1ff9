package cmd

import (
	"fmt"
	"time"
)

// Storage driver names accepted in Config.StorageDriver.
const (
	StorageDriverMemory   = "memory"
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
)

type Config struct {
	HTTPPort string

	// StorageDriver selects the repository backend: memory, file or postgres.
	StorageDriver string
	// StorageFilePath is the JSON document path for the file driver.
	StorageFilePath string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// AdvanceDelay is how long an order sits in the waiting status before
	// the scheduler advances it.
	AdvanceDelay time.Duration
	// AdvanceSchedule is the cron spec of the advancement scan.
	AdvanceSchedule string
}

// DSN assembles the postgres connection string for the gorm driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
