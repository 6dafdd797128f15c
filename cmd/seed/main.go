package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"fairmind/adapters/postgres"
	statsfairness "fairmind/adapters/stats/fairness"
	statsremediation "fairmind/adapters/stats/remediation"
	"fairmind/app"
	"fairmind/domain/core"
	"fairmind/domain/fairness"
	"fairmind/internal/migration"
	"fairmind/internal/testkit"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Seeds the database with a synthetic biased lending dataset and a full
// audit over it, so a fresh deployment has something to look at.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	perGroup := 500
	if arg := os.Getenv("SEED_SAMPLES_PER_GROUP"); arg != "" {
		if n, err := strconv.Atoi(arg); err == nil && n > 0 {
			perGroup = n
		}
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	kit := testkit.NewTestKit()
	samples := kit.BiasedLendingSamples(perGroup, 0.5)

	datasetService := app.NewDatasetService(postgres.NewDatasetRepository(db))
	record, err := datasetService.Register(ctx, app.RegisterDatasetRequest{
		Name:        "synthetic_lending",
		Description: "Synthetic loan approvals with a deliberate approval-rate gap between groups",
		GroupColumn: "applicant_group",
		Source:      "synthetic",
		Samples:     samples,
	})
	if err != nil {
		log.Fatalf("Failed to register dataset: %v", err)
	}
	log.Printf("Registered dataset %s (%d records)", record.ID, record.RecordCount)

	calculator := statsfairness.NewDefaultCalculator()
	remediationService := statsremediation.NewDefaultService()
	auditService := app.NewAuditService(calculator, remediationService,
		postgres.NewAuditRepository(db), fairness.DefaultThreshold)

	result, err := auditService.RunAudit(ctx, app.AuditRequest{
		ModelID:   core.ModelID("seed-lending-model"),
		DatasetID: record.ID,
		Samples:   samples,
	})
	if err != nil {
		log.Fatalf("Audit failed: %v", err)
	}

	worst, score := result.Audit.WorstMetric()
	log.Printf("Seeded audit %s: passed=%t worst=%s(%.3f) in %dms",
		result.Audit.ID, result.Audit.OverallPassed, worst, score, result.RuntimeMs)
}
