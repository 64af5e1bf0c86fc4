// Package catalog is the read-only registry of block types a page can use.
package catalog

import (
	"context"
	"fmt"

	"cms-admin/internal/composer"
	"cms-admin/internal/domain"
)

// Source fetches the raw component list, including inactive entries.
type Source interface {
	ListComponents(ctx context.Context) ([]domain.Component, error)
}

type Entry struct {
	ID     uint64
	Type   string
	Name   string
	Fields []string
}

// Template converts the entry into what the composition appends.
func (e Entry) Template() composer.Template {
	return composer.Template{
		Type:   e.Type,
		Name:   e.Name,
		Fields: append([]string(nil), e.Fields...),
	}
}

type Catalog struct {
	entries []Entry
	byType  map[string]int
}

// New keeps the active, non-deleted components in the order given.
func New(components []domain.Component) *Catalog {
	c := &Catalog{byType: make(map[string]int)}
	for _, comp := range components {
		if !comp.IsActive || comp.IsDeleted {
			continue
		}
		if _, dup := c.byType[comp.Type]; dup {
			continue
		}
		c.byType[comp.Type] = len(c.entries)
		c.entries = append(c.entries, Entry{
			ID:     comp.ID,
			Type:   comp.Type,
			Name:   comp.Name,
			Fields: comp.ComponentSchema.Keys(),
		})
	}
	return c
}

// Load fetches the catalog once for an editor session.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	components, err := src.ListComponents(ctx)
	if err != nil {
		return nil, fmt.Errorf("load component catalog: %w", err)
	}
	return New(components), nil
}

func (c *Catalog) Lookup(typ string) (Entry, bool) {
	i, ok := c.byType[typ]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}
