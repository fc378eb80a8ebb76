package main

import (
	"context"
	"flag"
	"log"

	"equipment-dashboard/pkg/config"
	"equipment-dashboard/pkg/database/postgresql"
	applogger "equipment-dashboard/pkg/logger"
	"equipment-dashboard/seeders"
)

func main() {
	runUsers := flag.Bool("users", false, "create staff accounts")
	runDemo := flag.Bool("demo", false, "fill equipment, inventory and maintenance with demo rows")
	runAll := flag.Bool("all", false, "run every seeder (same as -users -demo)")
	password := flag.String("password", "Password123!", "password for seeded accounts")
	flag.Parse()

	if !*runUsers && !*runDemo && !*runAll {
		log.Println("no seeder selected")
		log.Println("")
		flag.PrintDefaults()
		log.Println("")
		log.Println("examples:")
		log.Println("  go run ./seeders/cmd/seed -users")
		log.Println("  go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	ctx := context.Background()

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer dbPool.Close()

	if *runAll || *runUsers {
		if err := seeders.SeedUsers(ctx, dbPool, *password); err != nil {
			log.Fatalf("seed users: %v", err)
		}
	}
	if *runAll || *runDemo {
		if err := seeders.SeedDemoData(ctx, dbPool); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
	}

	log.Println("seeding finished")
}
