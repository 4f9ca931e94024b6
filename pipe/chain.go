package pipe

import (
	"context"
	"strings"
)

// Chain runs pipes in sequence, feeding each pipe's output to the next. The
// first failure stops the chain and its error is returned as-is. An empty
// chain returns the input unchanged.
type Chain struct {
	name  string
	pipes []Pipe
}

// NewChain builds a chain from the given pipes, in order.
func NewChain(pipes ...Pipe) *Chain {
	names := make([]string, len(pipes))
	for i, p := range pipes {
		names[i] = p.Name()
	}

	return &Chain{
		name:  "chain(" + strings.Join(names, ",") + ")",
		pipes: pipes,
	}
}

// Name implements Pipe. The name lists the member pipes, e.g.
// "chain(trim,int)".
func (p *Chain) Name() string {
	return p.name
}

// Transform implements Pipe.
func (p *Chain) Transform(ctx context.Context, value any, meta Metadata) (any, error) {
	current := value

	for _, member := range p.pipes {
		next, err := member.Transform(ctx, current, meta)
		if err != nil {
			return nil, err
		}

		current = next
	}

	return current, nil
}
