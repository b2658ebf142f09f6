package services

import (
	"context"
	"testing"

	"docflow_app_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDraftDB(t *testing.T) *DBDraftStore {
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(&models.Draft{})
	assert.NoError(t, err)

	return &DBDraftStore{DB: testDB}
}

func TestDBDraftStoreMissingKey(t *testing.T) {
	store := setupDraftDB(t)

	_, found, err := store.Get(context.Background(), "inv:draft")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestDBDraftStoreSetGet(t *testing.T) {
	store := setupDraftDB(t)
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "po:draft", `{"docType":"purchase_order"}`))

	payload, found, err := store.Get(ctx, "po:draft")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"docType":"purchase_order"}`, payload)
}

func TestDBDraftStoreOverwrite(t *testing.T) {
	store := setupDraftDB(t)
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "do:draft", "first"))
	assert.NoError(t, store.Set(ctx, "do:draft", "second"))

	payload, found, err := store.Get(ctx, "do:draft")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", payload)
}

func TestDBDraftStoreKeysAreIndependent(t *testing.T) {
	store := setupDraftDB(t)
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "inv:draft", "invoice draft"))

	_, found, err := store.Get(ctx, "po:draft")
	assert.NoError(t, err)
	assert.False(t, found)
}
