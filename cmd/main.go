package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kenawards/reg-membership-service/internal/config"
	"github.com/kenawards/reg-membership-service/internal/interaction"
	"github.com/kenawards/reg-membership-service/internal/logging"
	"github.com/kenawards/reg-membership-service/internal/repository/database"
	"github.com/kenawards/reg-membership-service/internal/repository/database/inmemory"
	"github.com/kenawards/reg-membership-service/internal/repository/database/mysql"
	"github.com/kenawards/reg-membership-service/internal/repository/downstreams/mpesa"
	"github.com/kenawards/reg-membership-service/internal/server"
)

var configFilePath string

func main() {
	flag.StringVar(&configFilePath, "config", "config.yaml", "The path to a valid configuration file")
	flag.Parse()

	logger := logging.NewLogger()

	conf, err := loadConfiguration(configFilePath)
	if err != nil {
		logger.Fatal("could not load configuration from %s. [error]: %v", configFilePath, err)
	}

	logging.SetSeverity(conf.Logging.Severity)

	if err := config.Validate(conf, logger.Error); err != nil {
		logger.Fatal("configuration validation failed. [error]: %v", err)
	}

	repo, err := createRepository(conf, logger)
	if err != nil {
		logger.Fatal("could not create repository. [error]: %v", err)
	}

	if err := repo.Migrate(); err != nil {
		logger.Fatal("could not migrate the database. [error]: %v", err)
	}

	gatewayClient, err := mpesa.New(conf.Service.Mpesa)
	if err != nil {
		logger.Fatal("could not create payment gateway client. [error]: %v", err)
	}

	i, err := interaction.NewServiceInteractor(repo, gatewayClient, conf.Service.Plans, logger)
	if err != nil {
		logger.Fatal("could not create service interactor. [error]: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := server.CreateRouter(i, conf)
	srv := server.NewServer(ctx, &conf.Server, router)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cancel()
		logger.Info("stopping services now")

		tCtx, tcancel := context.WithTimeout(context.Background(), time.Second*5)
		defer tcancel()

		if err := srv.Shutdown(tCtx); err != nil {
			logger.Fatal("couldn't shutdown server gracefully. [error]: %v", err)
		}
	}()

	logger.Info("starting %s on %s", conf.Service.Name, srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped unexpectedly. [error]: %v", err)
	}
}

func loadConfiguration(path string) (*config.Application, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open configuration file: %w", err)
	}
	defer file.Close()

	return config.UnmarshalFromYamlConfiguration(file)
}

func createRepository(conf *config.Application, logger logging.Logger) (database.Repository, error) {
	switch conf.Database.Use {
	case config.Mysql:
		return mysql.NewMySQLConnector(conf.Database, logger)
	case config.Inmemory:
		logger.Warn("using in memory database, all data is lost on shutdown")
		return inmemory.NewInMemoryProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported database type %s", conf.Database.Use)
	}
}
