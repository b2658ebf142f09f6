package models

import "time"

// Draft is the database fallback for the draft keystore: one JSON
// snapshot of in-progress form state per document type key.
type Draft struct {
	Key       string    `gorm:"primarykey" json:"key"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}
