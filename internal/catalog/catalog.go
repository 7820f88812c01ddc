// Package catalog holds the static registry of known tools and the
// credential-based filter that decides which of them are usable right now.
package catalog

import (
	"context"
	"errors"

	pkgErrors "github.com/pkg/errors"
)

// ErrDuplicateName is returned when a tool name is registered twice
var ErrDuplicateName = errors.New("duplicate tool name")

// Handle is the single invocation entry point of a registered tool.
// The core only ever inspects a record's name and credential list; the
// handle's input contract is the tool's own concern.
type Handle interface {
	Invoke(ctx context.Context, input string) (string, error)
}

// ToolRecord is a catalog entry: a named capability and the environment
// credentials it needs before it can be used.
type ToolRecord struct {
	Name                string
	Description         string
	RequiredCredentials []string
	Handle              Handle
}

// Catalog is the static registry of tool records. It is populated once at
// startup and read-only afterwards, so selection calls need no locking.
type Catalog struct {
	records []ToolRecord
	byName  map[string]int
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		byName: make(map[string]int),
	}
}

// Register adds a tool record to the catalog. Names are unique keys;
// registering an existing name fails with ErrDuplicateName.
func (c *Catalog) Register(record ToolRecord) error {
	if record.Name == "" {
		return errors.New("tool record requires a name")
	}
	if _, exists := c.byName[record.Name]; exists {
		return pkgErrors.Wrapf(ErrDuplicateName, "tool %q", record.Name)
	}
	c.byName[record.Name] = len(c.records)
	c.records = append(c.records, record)
	return nil
}

// ListAll returns every record in insertion order. The returned slice is a
// copy; callers cannot mutate the catalog through it.
func (c *Catalog) ListAll() []ToolRecord {
	out := make([]ToolRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Get returns the record for a name, if registered
func (c *Catalog) Get(name string) (ToolRecord, bool) {
	idx, exists := c.byName[name]
	if !exists {
		return ToolRecord{}, false
	}
	return c.records[idx], true
}

// Len returns the number of registered records
func (c *Catalog) Len() int {
	return len(c.records)
}
