// Package composer holds the in-memory block sequence of one page.
//
// Block order is never stored: it is the block's index in the sequence and is
// computed whenever a view is taken. Orders are therefore always 0..n-1.
package composer

import (
	"errors"
	"maps"
	"strconv"

	"github.com/google/uuid"
)

const transientPrefix = "tmp-"

var ErrIndexOutOfRange = errors.New("composer: index out of range")

// Template is what a block is created from: a catalog entry.
type Template struct {
	Type   string
	Name   string
	Fields []string
}

// Block is a read-only view of one block at the time the view was taken.
type Block struct {
	ID        string
	BackendID uint64
	Persisted bool
	Type      string
	Name      string
	Fields    map[string]string
	Order     int
}

// Stored is a block as loaded from the backend.
type Stored struct {
	BackendID uint64
	Type      string
	Name      string
	Fields    map[string]string
}

type block struct {
	id        string
	backendID uint64
	persisted bool
	typ       string
	name      string
	fields    map[string]string
}

// Composition is the ordered block sequence of one page. It is owned by a
// single editor session and is not safe for concurrent use.
type Composition struct {
	blocks []*block
	newID  func() string
}

func New() *Composition {
	return &Composition{newID: transientID}
}

// FromStored builds a composition from blocks in their final order.
func FromStored(stored []Stored) *Composition {
	c := New()
	c.blocks = make([]*block, 0, len(stored))
	for _, s := range stored {
		fields := maps.Clone(s.Fields)
		if fields == nil {
			fields = map[string]string{}
		}
		c.blocks = append(c.blocks, &block{
			id:        persistedID(s.BackendID),
			backendID: s.BackendID,
			persisted: true,
			typ:       s.Type,
			name:      s.Name,
			fields:    fields,
		})
	}
	return c
}

// Append adds a new transient block built from t at the end of the sequence.
func (c *Composition) Append(t Template) Block {
	fields := make(map[string]string, len(t.Fields))
	for _, key := range t.Fields {
		fields[key] = ""
	}
	b := &block{
		id:     c.newID(),
		typ:    t.Type,
		name:   t.Name,
		fields: fields,
	}
	c.blocks = append(c.blocks, b)
	return b.view(len(c.blocks) - 1)
}

// Remove deletes the block with the given id. It reports the removed block
// so the caller can decide whether the backend copy must be deleted too.
func (c *Composition) Remove(id string) (Block, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return Block{}, false
	}
	removed := c.blocks[i].view(i)
	c.blocks = append(c.blocks[:i], c.blocks[i+1:]...)
	return removed, true
}

// SetField sets one field value. Unknown ids are ignored.
func (c *Composition) SetField(id, key, value string) bool {
	i := c.IndexOf(id)
	if i < 0 {
		return false
	}
	c.blocks[i].fields[key] = value
	return true
}

// Reorder moves the block at from so that it ends up at index to.
func (c *Composition) Reorder(from, to int) error {
	n := len(c.blocks)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	moved := c.blocks[from]
	if from < to {
		copy(c.blocks[from:to], c.blocks[from+1:to+1])
	} else {
		copy(c.blocks[to+1:from+1], c.blocks[to:from])
	}
	c.blocks[to] = moved
	return nil
}

// MarkPersisted rekeys a transient block after its first successful create.
func (c *Composition) MarkPersisted(id string, backendID uint64) bool {
	i := c.IndexOf(id)
	if i < 0 {
		return false
	}
	b := c.blocks[i]
	b.id = persistedID(backendID)
	b.backendID = backendID
	b.persisted = true
	return true
}

// Blocks returns views of every block in sequence order.
func (c *Composition) Blocks() []Block {
	out := make([]Block, len(c.blocks))
	for i, b := range c.blocks {
		out[i] = b.view(i)
	}
	return out
}

func (c *Composition) Get(id string) (Block, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return Block{}, false
	}
	return c.blocks[i].view(i), true
}

func (c *Composition) IndexOf(id string) int {
	for i, b := range c.blocks {
		if b.id == id {
			return i
		}
	}
	return -1
}

func (c *Composition) Len() int {
	return len(c.blocks)
}

func (b *block) view(order int) Block {
	return Block{
		ID:        b.id,
		BackendID: b.backendID,
		Persisted: b.persisted,
		Type:      b.typ,
		Name:      b.name,
		Fields:    maps.Clone(b.fields),
		Order:     order,
	}
}

func transientID() string {
	return transientPrefix + uuid.NewString()
}

func persistedID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
