// Package roster builds the canonical identity index from a roster table.
package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/quizmerge/internal/domain/model"
	"github.com/okian/quizmerge/internal/domain/namekey"
	"github.com/okian/quizmerge/pkg/logger"
)

// Required roster columns.
const (
	ColumnID   = "ID"
	ColumnName = "Name"
)

// Collision records a name key that moved from one id to another.
type Collision struct {
	Key      namekey.Key
	Previous string
	Current  string
}

// Index maps ids to identities and name keys to ids. It is immutable once built.
type Index struct {
	byID       map[string]model.Identity
	byKey      map[namekey.Key]string
	order      []string
	collisions []Collision
}

type builder struct {
	strict bool
	logger logger.Logger
}

// Build creates an Index from a table with ID and Name columns.
//
// Ids are first-wins: a repeated id keeps its first display name. Name keys
// are last-wins: when two ids share a key the later row takes it, unless
// strict keys are enabled.
func Build(ctx context.Context, table model.Table, opts ...Option) (*Index, error) {
	b := &builder{logger: logger.Nop()}
	for _, opt := range opts {
		opt(b)
	}

	idCol, nameCol := table.Column(ColumnID), table.Column(ColumnName)
	var missing []string
	if idCol < 0 {
		missing = append(missing, ColumnID)
	}
	if nameCol < 0 {
		missing = append(missing, ColumnName)
	}
	if len(missing) > 0 {
		return nil, &MalformedRosterError{Missing: missing}
	}

	idx := &Index{
		byID:  make(map[string]model.Identity, len(table.Rows)),
		byKey: make(map[namekey.Key]string, len(table.Rows)),
	}

	for i, row := range table.Rows {
		id := strings.TrimSpace(cell(row, idCol))
		if id == "" {
			b.logger.Warn(ctx, "skipping roster row without id", logger.Int("row", i+1))
			continue
		}
		name := cell(row, nameCol)

		if _, ok := idx.byID[id]; !ok {
			idx.byID[id] = model.Identity{ID: id, DisplayTokens: strings.Fields(name)}
			idx.order = append(idx.order, id)
		}

		key := namekey.Parse(name)
		if key.IsZero() {
			continue
		}
		if prev, ok := idx.byKey[key]; ok && prev != id {
			c := Collision{Key: key, Previous: prev, Current: id}
			if b.strict {
				return nil, fmt.Errorf("%w: %q maps to ids %s and %s", ErrNameKeyCollision, key, prev, id)
			}
			idx.collisions = append(idx.collisions, c)
			b.logger.Warn(ctx, "roster name key reassigned; earlier id is unresolvable by name",
				logger.String("key", key.Label()),
				logger.String("previous", prev),
				logger.String("current", id),
			)
		}
		idx.byKey[key] = id
	}

	b.logger.Debug(ctx, "roster loaded",
		logger.Int("identities", len(idx.byID)),
		logger.Int("keys", len(idx.byKey)),
	)
	return idx, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// Identity returns the identity for id.
func (x *Index) Identity(id string) (model.Identity, bool) {
	ident, ok := x.byID[id]
	return ident, ok
}

// Lookup returns the id bound to key.
func (x *Index) Lookup(key namekey.Key) (string, bool) {
	id, ok := x.byKey[key]
	return id, ok
}

// IDs returns roster ids in first-appearance order.
func (x *Index) IDs() []string {
	out := make([]string, len(x.order))
	copy(out, x.order)
	return out
}

// Keys returns every name key with the id it resolves to.
func (x *Index) Keys() map[namekey.Key]string {
	out := make(map[namekey.Key]string, len(x.byKey))
	for k, v := range x.byKey {
		out[k] = v
	}
	return out
}

// Collisions returns the keys that were reassigned between ids.
func (x *Index) Collisions() []Collision {
	out := make([]Collision, len(x.collisions))
	copy(out, x.collisions)
	return out
}

// Len returns the number of identities.
func (x *Index) Len() int { return len(x.byID) }
