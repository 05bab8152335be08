package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/m4r-ant/200millas-Backend/cmd"
	httpin "github.com/m4r-ant/200millas-Backend/internal/adapters/in/http"
	"github.com/m4r-ant/200millas-Backend/internal/adapters/out/postgres/assignmentrepo"
	"github.com/m4r-ant/200millas-Backend/internal/adapters/out/postgres/orderrepo"
	"github.com/m4r-ant/200millas-Backend/internal/adapters/out/postgres/staffrepo"
	"github.com/m4r-ant/200millas-Backend/internal/adapters/out/postgres/steprepo"
	"github.com/m4r-ant/200millas-Backend/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := jobs.NewJobManager(
		app.CreateAssignWorkCommandHandler(),
		app.CreateExpireWaitsCommandHandler(),
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		CookWaitSeconds:   goDotEnvIntVariable("T_COOK_SECONDS"),
		PackWaitSeconds:   goDotEnvIntVariable("T_PACK_SECONDS"),
		PickupWaitSeconds: goDotEnvIntVariable("T_PICKUP_SECONDS"),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvIntVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&staffrepo.StaffDTO{},
		&steprepo.StepDTO{},
		&assignmentrepo.RequestDTO{},
	)
	if err != nil {
		return nil, err
	}

	return gormDB, nil
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateRequestTransitionCommandHandler(),
		app.CreateReportAvailabilityCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetOrdersQueryHandler(),
		app.CreateGetTimelineQueryHandler(),
		app.CreateGetDashboardMetricsQueryHandler(),
		app.CreateGetStaffAvailabilityQueryHandler(),
		app.CreateGetStaffPerformanceQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
