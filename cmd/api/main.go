package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Ahmed-Abdel-karim/cinema/internal/config"
	"github.com/Ahmed-Abdel-karim/cinema/internal/data"
	"github.com/Ahmed-Abdel-karim/cinema/internal/jsonlog"
	"github.com/Ahmed-Abdel-karim/cinema/internal/vcs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
)

var (
	version = vcs.Version()
)

type application struct {
	config *config.Config
	logger *jsonlog.Logger
	models data.Model
	// done is closed on shutdown to stop background loops.
	done chan struct{}
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.ShowVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := jsonlog.NewLogger(os.Stdout, jsonlog.ParseLevel(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		logger.PrintFatal(err, nil)
	}

	db, err := openDB(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()

	logger.PrintInfo("database connection pool established", nil)

	app := &application{
		config: cfg,
		logger: logger,
		models: data.NewModel(db),
		done:   make(chan struct{}),
	}

	SetupMetric(db)

	err = app.migrateDb(db)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.PrintFatal(err, nil)
	}
	logger.PrintInfo("database migrations applied", map[string]string{
		"source": cfg.MigrationsPath,
	})

	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

// The openDB() function returns a sql.DB connection pool.
func openDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	// Passing a value less than or equal to 0 means there is no limit.
	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)

	duration, err := cfg.IdleTimeout()
	if err != nil {
		return nil, err
	}
	db.SetConnMaxIdleTime(duration)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
