package domain

import "time"

// Component is a catalog entry describing one block type.
type Component struct {
	ID              uint64          `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Type            string          `gorm:"uniqueIndex;not null" json:"type"`
	ComponentSchema ComponentSchema `gorm:"serializer:json;type:jsonb" json:"componentSchema"`
	IsActive        bool            `gorm:"default:true" json:"isActive"`
	IsDeleted       bool            `gorm:"default:false" json:"isDeleted"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type ComponentSchema struct {
	Fields []SchemaField `json:"fields"`
}

type SchemaField struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Keys returns the schema field keys in declaration order.
func (s ComponentSchema) Keys() []string {
	keys := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}
