package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-door-keeper/internal/adapter"
	"github.com/MKhiriev/go-door-keeper/internal/config"
	handler "github.com/MKhiriev/go-door-keeper/internal/handler/http"
	"github.com/MKhiriev/go-door-keeper/internal/hardware"
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/server"
	"github.com/MKhiriev/go-door-keeper/internal/service"
	"github.com/MKhiriev/go-door-keeper/internal/store"
	"github.com/MKhiriev/go-door-keeper/internal/workers"
)

// pendingSampleLimit bounds how many fingerprint samples the sensor
// buffers between captures.
const pendingSampleLimit = 8

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-door-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := connectDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	bolt, err := newBolt(cfg.Hardware, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error initialising bolt actuator")
	}
	sensor := hardware.NewChannelSensor(pendingSampleLimit)
	keypad := hardware.NewMemoryKeypad()
	defer keypad.Close()

	notifier, err := adapter.NewWebhookNotifier(cfg.Notifier, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating webhook notifier")
	}

	services := service.NewServices(storages, cfg, bolt, sensor, notifier, log)

	handlers := handler.NewHandler(services, keypad, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	background := workers.NewWorkers(
		workers.NewKeypadWorker(ctx, keypad, services, cfg.Workers.KeypadPollInterval, log),
	)
	go background.Run()

	srv.RunServer()
}

func connectDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*store.DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return store.NewConnectSQLite(ctx, cfg, log)
	default:
		return store.NewConnectPostgres(ctx, cfg, log)
	}
}

func newBolt(cfg config.Hardware, log *logger.Logger) (hardware.Bolt, error) {
	switch cfg.BoltDriver {
	case config.BoltDriverGPIO:
		return hardware.NewGPIOBolt(cfg.BoltPin, log)
	default:
		return hardware.NewMockBolt(), nil
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
