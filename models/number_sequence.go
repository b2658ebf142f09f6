package models

import "time"

// NumberSequence backs the numbering collaborator: one row per document
// type holding the last reserved sequential value.
type NumberSequence struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DocType   string `gorm:"not null;uniqueIndex" json:"doc_type"`
	LastValue int64  `gorm:"not null;default:0" json:"last_value"`
}
