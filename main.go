// main.go
package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/cnv1902/KhacQuanMotorbikeRental/cmd"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/repository"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/wire"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/database"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/utils"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/vnpay"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Gateway client refuses to start without credentials
	vnpayClient, err := vnpay.NewClient(config.VNPay, logger)
	if err != nil {
		logger.Fatal("Failed to init payment gateway client", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(logger)

	// Wire all dependencies
	app := wire.Wiring(db, repos, vnpayClient, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
