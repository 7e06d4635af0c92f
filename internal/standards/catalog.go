package standards

import "time"

// Catalog is the read-only query view of a Standard served to remote
// clients.
type Catalog struct {
	std *Standard
}

func NewCatalog(std *Standard) *Catalog {
	return &Catalog{std: std}
}

func (c *Catalog) Standard() *Standard { return c.std }

func (c *Catalog) Version() string { return c.std.store.Version() }

func (c *Catalog) Tables() []string { return c.std.store.Tables() }

// Lookup resolves a record. A zero asOf disables effective-date filtering.
func (c *Catalog) Lookup(table string, key SearchKey, sizing float64, asOf time.Time) (*Record, bool) {
	var opts []MatchOption
	if !asOf.IsZero() {
		opts = append(opts, AsOf(asOf))
	}
	return c.std.Lookup(table, key, sizing, opts...)
}
