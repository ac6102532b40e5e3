package main

import (
	"database/sql"
	"errors"
	"os"
	"strconv"

	"github.com/RayuduBharani/meetocure-hs/config"
	"github.com/RayuduBharani/meetocure-hs/internal/infrastructure/database"
	appmigrations "github.com/RayuduBharani/meetocure-hs/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

// Usage: migrate [up|down|version|force <version>]
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	db, err := sql.Open("pgx", database.DSN(cfg.DB, cfg.App.Timezone))
	if err != nil {
		logrus.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		logrus.Fatalf("ping db: %v", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		logrus.Fatalf("db driver: %v", err)
	}

	srcDriver, err := iofs.New(appmigrations.FS, ".")
	if err != nil {
		logrus.Fatalf("source driver: %v", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		logrus.Fatalf("create migrator: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	cmd := "up"
	if len(os.Args) >= 2 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logrus.Fatalf("migrate up: %v", err)
		}
	case "down":
		if err := m.Steps(-1); err != nil {
			logrus.Fatalf("migrate down: %v", err)
		}
	case "force":
		if len(os.Args) < 3 {
			logrus.Fatal("force requires a version")
		}
		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			logrus.Fatalf("invalid version: %v", err)
		}
		if err := m.Force(version); err != nil {
			logrus.Fatalf("force version: %v", err)
		}
	case "version":
	default:
		logrus.Fatalf("unknown command %q", cmd)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		logrus.Fatalf("read version: %v", err)
	}
	logrus.Infof("Schema version %d (dirty=%t)", version, dirty)
}
