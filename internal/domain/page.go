package domain

import "time"

const (
	PageStatusDraft     = "draft"
	PageStatusPublished = "published"
)

// Page is the page record. Its blocks live in their own table.
type Page struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Status    string    `gorm:"not null;default:draft" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Blocks    []Block   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
