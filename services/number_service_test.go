package services

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"docflow_app_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupNumberDB(t *testing.T) *gorm.DB {
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(&models.NumberSequence{})
	assert.NoError(t, err)

	return testDB
}

func TestProvisionalNumberPattern(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	invoicePattern := regexp.MustCompile(`^FFE-INV-2026-08-\d{3}$`)
	poPattern := regexp.MustCompile(`^PO-2026-08-\d{3}$`)
	doPattern := regexp.MustCompile(`^DO-2026-08-\d{3}$`)

	for i := 0; i < 50; i++ {
		assert.Regexp(t, invoicePattern, ProvisionalNumber(models.DocumentTypeInvoice, now))
		assert.Regexp(t, poPattern, ProvisionalNumber(models.DocumentTypePurchaseOrder, now))
		assert.Regexp(t, doPattern, ProvisionalNumber(models.DocumentTypeDeliveryOrder, now))
	}
}

func TestReserveNumberSequence(t *testing.T) {
	testDB := setupNumberDB(t)
	year := time.Now().Year()

	first, err := ReserveNumber(testDB, models.DocumentTypeInvoice)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("FFE-INV-%d-0001", year), first)

	second, err := ReserveNumber(testDB, models.DocumentTypeInvoice)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("FFE-INV-%d-0002", year), second)

	// Each type carries its own sequence
	po, err := ReserveNumber(testDB, models.DocumentTypePurchaseOrder)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PO-%d-0001", year), po)
}

func TestReserveOrProvisionalFallback(t *testing.T) {
	testDB := setupNumberDB(t)

	number, reserved := ReserveOrProvisional(testDB, models.DocumentTypeInvoice)
	assert.True(t, reserved)
	assert.Contains(t, number, "FFE-INV-")

	// Close the connection so the reservation fails
	sqlDB, err := testDB.DB()
	assert.NoError(t, err)
	assert.NoError(t, sqlDB.Close())

	number, reserved = ReserveOrProvisional(testDB, models.DocumentTypeInvoice)
	assert.False(t, reserved)
	assert.Regexp(t, regexp.MustCompile(`^FFE-INV-\d{4}-\d{2}-\d{3}$`), number)
}
