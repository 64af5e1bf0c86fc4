package db

import (
	"context"
	"fmt"

	"cms-admin/internal/component"
	"cms-admin/internal/domain"

	"github.com/rs/zerolog/log"
)

// Migrate runs database migrations
func Migrate() error {
	err := AppDb.AutoMigrate(
		&domain.Page{},
		&domain.Block{},
		&domain.Component{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	log.Info().Msg("Database schema migrated successfully")
	return nil
}

// DefaultComponents is the catalog a fresh database starts with.
func DefaultComponents() []domain.Component {
	field := func(key, label, typ string) domain.SchemaField {
		return domain.SchemaField{Key: key, Label: label, Type: typ}
	}
	return []domain.Component{
		{
			Name: "Text",
			Type: "text",
			ComponentSchema: domain.ComponentSchema{Fields: []domain.SchemaField{
				field("heading", "Heading", "text"),
				field("body", "Body", "textarea"),
			}},
			IsActive: true,
		},
		{
			Name: "Hero",
			Type: "hero",
			ComponentSchema: domain.ComponentSchema{Fields: []domain.SchemaField{
				field("title", "Title", "text"),
				field("subtitle", "Subtitle", "text"),
				field("imageUrl", "Image URL", "url"),
			}},
			IsActive: true,
		},
		{
			Name: "Call to action",
			Type: "cta",
			ComponentSchema: domain.ComponentSchema{Fields: []domain.SchemaField{
				field("label", "Button label", "text"),
				field("url", "Link", "url"),
			}},
			IsActive: true,
		},
		{
			Name: "Quote",
			Type: "quote",
			ComponentSchema: domain.ComponentSchema{Fields: []domain.SchemaField{
				field("quote", "Quote", "textarea"),
				field("author", "Author", "text"),
			}},
			IsActive: true,
		},
	}
}

// SeedData upserts the default catalog (for development only)
func SeedData(ctx context.Context, components component.Service) {
	defaults := DefaultComponents()
	if err := components.SaveComponents(ctx, defaults); err != nil {
		log.Error().Err(err).Msg("Error seeding components")
		return
	}
	log.Info().Int("count", len(defaults)).Msg("Seeded component catalog")
}
