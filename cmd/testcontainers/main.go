package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/wastedash/internal/logger"
	"github.com/localnerve/wastedash/internal/testhelpers"
	"go.uber.org/zap"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var dbType string
	flag.StringVar(&dbType, "db", "mariadb", "database to start: mariadb or postgres")
	flag.Parse()

	usage := `
Run a throwaway wastedash database with the environment variables from the .env file.
The schema is migrated and the app user is granted read/insert/update.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-db mariadb|postgres]

ENV_FILE_PATH: path to the .env file

example
  testcontainers -f /path/to/something/.env -db postgres
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	log, err := logger.Init(logger.LogConfig{Level: "info", Environment: "development", ServiceName: "testcontainers"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if envFilename != "" {
		log.Info("Loading environment variables", zap.String("file", envFilename))
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatal("Failed to load environment variables", zap.Error(err))
		}
	} else {
		log.Info("No environment file specified, using current environment variables")
	}

	start := testhelpers.StartMariaDB
	switch dbType {
	case "mariadb", "mysql":
	case "postgres":
		start = testhelpers.StartPostgres
	default:
		log.Fatal("Unknown database", zap.String("db", dbType))
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	container, err := start(nil)
	if err != nil {
		log.Fatal("Failed to create test container", zap.Error(err))
	}

	cfg := container.Config
	fmt.Printf("DB_TYPE=%s\nDB_HOST=%s\nDB_PORT=%s\nDB_DATABASE=%s\nDB_APP_USER=%s\nDB_ADMIN_USER=%s\n",
		cfg.DBType, cfg.DBHost, cfg.DBPort, cfg.DBDatabase, cfg.DBAppUser, cfg.DBAdminUser)

	sig := <-sigs
	log.Info("Received signal, terminating test container", zap.Stringer("signal", sig))
	container.Terminate(nil)
}
