package main

import (
	"fmt"
	"os"

	"github.com/MatheusFDS/deliveryserver-sub000/cmd"
	httpadapter "github.com/MatheusFDS/deliveryserver-sub000/internal/adapters/in/http"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/adapters/out/postgres"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"gorm.io/gorm"

	gorm_postgres "gorm.io/driver/postgres"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDB(configs)
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	metrics.Register()

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}
	defer app.Close()

	if err := app.JobManager().StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		MapsBaseURL:         goDotEnvVariable("MAPS_BASE_URL"),
		MapsAPIKey:          goDotEnvVariable("MAPS_API_KEY"),
		AuditBaseURL:        goDotEnvVariable("AUDIT_BASE_URL"),
		NotificationBaseURL: goDotEnvVariable("NOTIFICATION_BASE_URL"),
		PaymentsBaseURL:     goDotEnvVariable("PAYMENTS_BASE_URL"),
		GatewayAPIKey:       goDotEnvVariable("GATEWAY_API_KEY"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// mustOpenDB opens the database through the lib/pq driver so unique-constraint
// violations surface as *pq.Error for the repositories to classify.
func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateCreateRouteCommandHandler(),
		app.CreateUpdateRouteCommandHandler(),
		app.CreateReleaseRouteCommandHandler(),
		app.CreateRejectRouteCommandHandler(),
		app.CreateRemoveRouteCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateGetActiveDeliveriesQueryHandler(),
		app.CreateGetPendingApprovalsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
