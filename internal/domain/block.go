package domain

import "time"

// Block is one stored content block. Data holds the field mapping
// serialized as a JSON object of strings.
type Block struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	PageID        uint64    `gorm:"index;not null" json:"pageId"`
	ComponentType string    `gorm:"not null" json:"componentType"`
	BlockOrder    int       `gorm:"not null;default:0" json:"blockOrder"`
	Data          string    `gorm:"type:text;not null;default:''" json:"data"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
