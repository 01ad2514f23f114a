// seed_deliveries loads a route manifest into the expected_deliveries
// table. It runs offline, never from the portal: the capture flow only
// reads these rows.
package main

import (
	"flag"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"pod-portal/internal/config"
	"pod-portal/internal/logger"
	"pod-portal/internal/model"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	manifest := flag.String("manifest", "", "route manifest .xlsx (Reference ID, Consignee, Destination Address)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(config.LogConfig{Level: "info", Console: true})

	db, err := cfg.OpenGormDB()
	if err != nil {
		log.Fatal("db connect failed: ", err)
	}
	if err := db.AutoMigrate(&model.ExpectedDelivery{}); err != nil {
		log.Fatal("migrate failed: ", err)
	}

	// One batch id groups the whole manifest as a single route.
	batchID := "BATCH-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])

	var deliveries []model.ExpectedDelivery
	if *manifest != "" {
		deliveries, err = readManifest(*manifest, batchID)
		if err != nil {
			log.Fatal("read manifest: ", err)
		}
	} else {
		deliveries = demoBatch(batchID)
		logger.Info("no manifest given, seeding demo batch")
	}

	if len(deliveries) == 0 {
		log.Fatal("manifest contains no delivery rows")
	}

	// Re-running a manifest must not clobber rows that already exist.
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "reference_id"}},
		DoNothing: true,
	}).Create(&deliveries)
	if res.Error != nil {
		log.Fatal("seed failed: ", res.Error)
	}

	logger.Info("seed done", "batch_id", batchID, "rows", res.RowsAffected, "skipped", int64(len(deliveries))-res.RowsAffected)
}

func demoBatch(batchID string) []model.ExpectedDelivery {
	return []model.ExpectedDelivery{
		{
			BatchID:            batchID,
			ReferenceID:        "BOL-847291A",
			ConsigneeName:      "Desert Tech Manufacturing",
			DestinationAddress: "1400 E Innovation Park Dr, Tucson, AZ 85719",
			Status:             "PENDING",
		},
		{
			BatchID:            batchID,
			ReferenceID:        "BOL-847291B",
			ConsigneeName:      "Sonoran BioLabs",
			DestinationAddress: "Oro Valley Hospital Campus, Oro Valley, AZ 85755",
			Status:             "PENDING",
		},
		{
			BatchID:            batchID,
			ReferenceID:        "BOL-847291C",
			ConsigneeName:      "Catalina Distribution Center",
			DestinationAddress: "Retail Hub Blvd, Marana, AZ 85658",
			Status:             "PENDING",
		},
	}
}
