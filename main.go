package main

import (
	"context"
	"log"

	"fairmind/adapters/excel"
	"fairmind/adapters/postgres"
	statsfairness "fairmind/adapters/stats/fairness"
	statsremediation "fairmind/adapters/stats/remediation"
	"fairmind/app"
	"fairmind/internal/config"
	"fairmind/internal/errors"
	"fairmind/internal/migration"
	"fairmind/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase opens the PostgreSQL connection and brings the schema up
// to date
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer db.Close()

	calculator, err := statsfairness.NewCalculator(appConfig.Fairness.Threshold)
	if err != nil {
		log.Fatalf("Failed to initialize fairness calculator: %v", err)
	}
	remediationService, err := statsremediation.NewService(appConfig.Fairness.Threshold)
	if err != nil {
		log.Fatalf("Failed to initialize remediation service: %v", err)
	}

	auditRepo := postgres.NewAuditRepository(db)
	datasetRepo := postgres.NewDatasetRepository(db)

	auditService := app.NewAuditService(calculator, remediationService, auditRepo, appConfig.Fairness.Threshold)
	datasetService := app.NewDatasetService(datasetRepo)
	reportService := app.NewReportService(auditRepo, excel.NewReportWriter(),
		appConfig.Report.TitlePrefix, appConfig.Report.Organization)

	if appConfig.Ops.Enabled {
		opsServer := ui.NewOpsServer(db)
		go func() {
			if err := opsServer.Run(appConfig.Ops.Port); err != nil {
				log.Printf("Ops server stopped: %v", err)
			}
		}()
	}

	server := ui.NewServer(auditService, datasetService, reportService, calculator, remediationService)
	if err := server.Run(appConfig.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
