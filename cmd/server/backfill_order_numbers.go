package main

// Helper: go run ./cmd/server -backfill-order-numbers
// Assigns numbers to legacy orders imported without one.

import (
	"flag"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
)

var backfillFlag = flag.Bool("backfill-order-numbers", false, "Backfill missing order numbers and exit")

func runBackfillOrderNumbers(conn *gorm.DB) {
	var orders []models.Order
	if err := conn.Where("order_number = '' OR order_number IS NULL").Find(&orders).Error; err != nil {
		log.WithError(err).Fatal("list orders")
	}
	updated := 0
	for _, o := range orders {
		num := fmt.Sprintf("ORD-%06d", o.ID)
		if err := conn.Model(&models.Order{}).Where("id = ?", o.ID).Update("order_number", num).Error; err == nil {
			updated++
		}
	}
	log.WithField("updated", updated).Info("backfill done")
}
