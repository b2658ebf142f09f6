package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"docflow_app_go/models"

	"gorm.io/gorm"
)

// ProvisionalNumber builds a client-side document number used before a
// reservation is confirmed: <PREFIX>-<year>-<month>-<3-digit random>.
// Provisional numbers are never guaranteed unique.
func ProvisionalNumber(docType string, now time.Time) string {
	prefix := models.DocumentTypePrefix(docType)
	random := rand.Intn(999) + 1
	return fmt.Sprintf("%s-%d-%02d-%03d", prefix, now.Year(), int(now.Month()), random)
}

// ReserveNumber issues the next sequential number for a document type
// from the numbering sequence: <PREFIX>-<year>-<4-digit sequence>.
// The increment runs in a transaction so reserved numbers are unique.
func ReserveNumber(db *gorm.DB, docType string) (string, error) {
	var value int64

	err := db.Transaction(func(tx *gorm.DB) error {
		var seq models.NumberSequence
		err := tx.Where("doc_type = ?", docType).First(&seq).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = models.NumberSequence{DocType: docType}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		seq.LastValue++
		if err := tx.Save(&seq).Error; err != nil {
			return err
		}

		value = seq.LastValue
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to reserve document number: %w", err)
	}

	prefix := models.DocumentTypePrefix(docType)
	return fmt.Sprintf("%s-%d-%04d", prefix, time.Now().Year(), value), nil
}

// ReserveOrProvisional asks the numbering sequence for a reserved
// number and falls back to a provisional one when the reservation
// fails. The failure is logged, never surfaced: saving proceeds with
// the provisional number.
func ReserveOrProvisional(db *gorm.DB, docType string) (number string, reserved bool) {
	number, err := ReserveNumber(db, docType)
	if err != nil {
		log.Printf("[WARNING] Number reservation failed for %s: %v. Falling back to provisional number.", docType, err)
		return ProvisionalNumber(docType, time.Now()), false
	}
	return number, true
}
