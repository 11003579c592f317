// Command expirer runs the Scheduled Expirer once and exits, the way an
// external cron or Kubernetes CronJob invokes it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rentalmarket/core/internal/clock"
	"github.com/rentalmarket/core/internal/config"
	"github.com/rentalmarket/core/internal/expirer"
	"github.com/rentalmarket/core/internal/store"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "scan and report without committing cancellations")
	hours := flag.Int("hours", 48, "threshold in hours after which a PENDING booking is eligible for expiry")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}

	e := expirer.New(store.New(db), clock.System{})
	result, err := e.Run(context.Background(), expirer.Options{DryRun: *dryRun, ThresholdHours: *hours})
	if err != nil {
		log.Fatalf("expirer run failed: %v", err)
	}

	fmt.Printf("scanned=%d cancelled=%d dry_run=%v\n", result.Scanned, result.Cancelled, result.DryRun)
}
