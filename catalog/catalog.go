// Package catalog compiles declarative argument definitions into ready pipe
// chains. A YAML (or JSON) document names each argument, says where it comes
// from, and lists the pipes to run over it; Build turns the document into a
// Catalog of compiled chains keyed by argument name. Composition stays
// explicit data, not reflective wiring.
//
//	arguments:
//	  - name: id
//	    source: param
//	    pipes:
//	      - type: trim
//	      - type: int
//	        parameters: {status: 404}
//
//	cfg, err := catalog.Load("arguments.yaml")
//	cat, err := catalog.Build(cfg)
//	p, meta, ok := cat.Lookup("id")
package catalog

import (
	"slices"

	"github.com/spigot-labs/spigot/pipe"
)

// Catalog holds compiled argument pipes keyed by argument name. Catalogs are
// immutable after Build and safe for concurrent use.
type Catalog struct {
	entries map[string]entry
	names   []string
}

type entry struct {
	pipe pipe.Pipe
	meta pipe.Metadata
}

// Lookup returns the compiled pipe and metadata for an argument name,
// reporting whether the catalog knows it.
//
//nolint:ireturn
func (c *Catalog) Lookup(name string) (pipe.Pipe, pipe.Metadata, bool) {
	e, found := c.entries[name]
	if !found {
		return nil, pipe.Metadata{}, false
	}

	return e.pipe, e.meta, true
}

// Names returns the argument names in natural order ("arg2" before
// "arg10"). The slice is a copy; callers may keep it.
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Len returns the number of arguments in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}
