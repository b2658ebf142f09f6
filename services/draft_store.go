package services

import (
	"context"
	"errors"
	"log"
	"time"

	"docflow_app_go/config"
	"docflow_app_go/db"
	"docflow_app_go/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DraftStore persists unsaved editor state under a per-type draft key
// so a closed session can be restored later.
type DraftStore interface {
	// Get returns the stored payload; found is false when no draft
	// exists under the key.
	Get(ctx context.Context, key string) (payload string, found bool, err error)
	Set(ctx context.Context, key, payload string) error
}

// Drafts is the global draft store
var Drafts DraftStore

// InitializeDraftStore sets up the global draft store. Redis is used
// when configured and reachable; otherwise drafts go to the database.
func InitializeDraftStore(cfg *config.Config) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err == nil {
			Drafts = &RedisDraftStore{Client: client}
			log.Println("[INFO] Using Redis draft store")
			return
		}
		log.Printf("[WARNING] Redis not reachable at %s. Falling back to database draft store.", cfg.RedisAddr)
	}

	Drafts = &DBDraftStore{DB: db.DB}
	log.Println("[INFO] Using database draft store")
}

// RedisDraftStore keeps drafts in Redis, one string value per key.
type RedisDraftStore struct {
	Client *redis.Client
}

func (s *RedisDraftStore) Get(ctx context.Context, key string) (string, bool, error) {
	payload, err := s.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload, true, nil
}

func (s *RedisDraftStore) Set(ctx context.Context, key, payload string) error {
	return s.Client.Set(ctx, key, payload, 0).Err()
}

// DBDraftStore keeps drafts in the drafts table, one row per key.
type DBDraftStore struct {
	DB *gorm.DB
}

func (s *DBDraftStore) Get(ctx context.Context, key string) (string, bool, error) {
	var draft models.Draft
	err := s.DB.WithContext(ctx).Where("key = ?", key).First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return draft.Payload, true, nil
}

func (s *DBDraftStore) Set(ctx context.Context, key, payload string) error {
	draft := models.Draft{Key: key, Payload: payload, UpdatedAt: time.Now()}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&draft).Error
}
