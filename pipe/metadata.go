package pipe

import "fmt"

// Source identifies where a request argument came from.
type Source string

const (
	// SourceQuery is a URL query parameter.
	SourceQuery Source = "query"
	// SourceParam is a path parameter.
	SourceParam Source = "param"
	// SourceHeader is a request header.
	SourceHeader Source = "header"
	// SourceBody is a field extracted from the request body.
	SourceBody Source = "body"
	// SourceEnv is an environment variable routed through a pipe (see the
	// envcfg package).
	SourceEnv Source = "env"
	// SourceCustom is anything extracted by caller-defined means.
	SourceCustom Source = "custom"
)

// Metadata describes the argument a pipe is working on. It is passed by
// value and never modified by the built-in pipes; treat it as read-only.
type Metadata struct {
	// Source is where the argument came from.
	Source Source
	// Name is the argument's name at its source ("id" in /users/:id), or ""
	// when the argument is not bound to a name.
	Name string
	// Index is the zero-based position of the argument in its handler's
	// parameter list.
	Index int
}

// String renders the metadata compactly for logs and span names, e.g.
// "param:id[0]" or "body[2]" for unnamed arguments.
func (m Metadata) String() string {
	if m.Name == "" {
		return fmt.Sprintf("%s[%d]", m.Source, m.Index)
	}

	return fmt.Sprintf("%s:%s[%d]", m.Source, m.Name, m.Index)
}
