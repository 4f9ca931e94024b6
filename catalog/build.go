package catalog

import (
	"errors"
	"fmt"
	"strings"

	"facette.io/natsort"
	"golang.org/x/text/unicode/norm"

	"github.com/spigot-labs/spigot/assert"
	"github.com/spigot-labs/spigot/pipe"
)

var (
	// ErrNilConfig is returned when Build receives a nil config.
	ErrNilConfig = errors.New("nil catalog config")
	// ErrArgumentNameRequired is returned for an argument without a name.
	ErrArgumentNameRequired = errors.New("argument name is required")
	// ErrDuplicateArgument is returned when two arguments share a name.
	ErrDuplicateArgument = errors.New("duplicate argument name")
	// ErrUnknownSource is returned for a source outside the pipe.Source set.
	ErrUnknownSource = errors.New("unknown argument source")
	// ErrUnknownPipeType is returned for a pipe type the factory does not
	// know.
	ErrUnknownPipeType = errors.New("unknown pipe type")
	// ErrMissingParameter is returned when a pipe type requires a parameter
	// the config does not carry.
	ErrMissingParameter = errors.New("missing pipe parameter")
	// ErrInvalidParameter is returned when a parameter carries the wrong
	// type or an unusable value.
	ErrInvalidParameter = errors.New("invalid pipe parameter")
	// ErrUnsupportedFormat is returned by Load for file extensions other
	// than .yaml, .yml, or .json.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// Build validates cfg and compiles every argument's pipes into a single
// chain. The first problem aborts the build; the error names the offending
// argument and pipe and wraps the matching sentinel.
func Build(cfg *Config) (*Catalog, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	entries := make(map[string]entry, len(cfg.Arguments))
	names := make([]string, 0, len(cfg.Arguments))

	for i, arg := range cfg.Arguments {
		if arg.Name == "" {
			return nil, fmt.Errorf("argument %d: %w", i, ErrArgumentNameRequired)
		}

		if _, exists := entries[arg.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateArgument, arg.Name)
		}

		source, err := parseSource(arg.Source)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", arg.Name, err)
		}

		chain, err := buildChain(arg.Pipes)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", arg.Name, err)
		}

		entries[arg.Name] = entry{
			pipe: chain,
			meta: pipe.Metadata{Source: source, Name: arg.Name, Index: i},
		}
		names = append(names, arg.Name)
	}

	natsort.Sort(names)

	return &Catalog{entries: entries, names: names}, nil
}

func parseSource(s string) (pipe.Source, error) {
	source := pipe.Source(s)

	switch source {
	case pipe.SourceQuery, pipe.SourceParam, pipe.SourceHeader,
		pipe.SourceBody, pipe.SourceEnv, pipe.SourceCustom:
		return source, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
	}
}

//nolint:ireturn
func buildChain(configs []PipeConfig) (pipe.Pipe, error) {
	pipes := make([]pipe.Pipe, 0, len(configs))

	for i, pc := range configs {
		built, err := buildPipe(pc)
		if err != nil {
			return nil, fmt.Errorf("pipe %d (%s): %w", i, pc.Type, err)
		}

		pipes = append(pipes, built)
	}

	if len(pipes) == 1 {
		return pipes[0], nil
	}

	return pipe.NewChain(pipes...), nil
}

// buildPipe is the factory switch from pipe type to constructor. Adding a
// type means adding a case here; there is no registration indirection.
//
//nolint:ireturn
func buildPipe(pc PipeConfig) (pipe.Pipe, error) {
	opts, err := pipeOptions(pc.Parameters)
	if err != nil {
		return nil, err
	}

	switch pc.Type {
	case "int":
		return pipe.NewInt(opts...), nil
	case "float":
		return pipe.NewFloat(opts...), nil
	case "bool":
		return pipe.NewBool(opts...), nil
	case "uuid":
		return buildUUID(pc, opts)
	case "enum":
		return buildEnum(pc, opts)
	case "array":
		return buildArray(pc, opts)
	case "default":
		value, found := pc.Parameters["value"]
		if !found {
			return nil, fmt.Errorf("%w: default requires %q", ErrMissingParameter, "value")
		}

		return pipe.NewDefault(value), nil
	case "trim":
		return pipe.NewTrim(), nil
	case "normalize":
		return buildNormalize(pc, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPipeType, pc.Type)
	}
}

// pipeOptions decodes the parameters every failing pipe understands: status
// (int) and optional (bool).
func pipeOptions(params map[string]any) ([]pipe.Option, error) {
	var opts []pipe.Option

	status, found, err := paramValue[int](params, "status")
	if err != nil {
		return nil, err
	}

	if found {
		opts = append(opts, pipe.WithStatus(status))
	}

	optional, found, err := paramValue[bool](params, "optional")
	if err != nil {
		return nil, err
	}

	if found && optional {
		opts = append(opts, pipe.Optional())
	}

	return opts, nil
}

func buildUUID(pc PipeConfig, opts []pipe.Option) (*pipe.UUID, error) {
	version, found, err := paramValue[int](pc.Parameters, "version")
	if err != nil {
		return nil, err
	}

	if found {
		return pipe.NewUUIDVersion(version, opts...), nil
	}

	return pipe.NewUUID(opts...), nil
}

func buildEnum(pc PipeConfig, opts []pipe.Option) (*pipe.Enum[string], error) {
	values, found, err := paramStrings(pc.Parameters, "values")
	if err != nil {
		return nil, err
	}

	if !found || len(values) == 0 {
		return nil, fmt.Errorf("%w: enum requires %q", ErrMissingParameter, "values")
	}

	return pipe.NewEnum(values, opts...), nil
}

func buildArray(pc PipeConfig, opts []pipe.Option) (*pipe.Array, error) {
	itemsRaw, found := pc.Parameters["items"]
	if !found {
		return nil, fmt.Errorf("%w: array requires %q", ErrMissingParameter, "items")
	}

	itemMap, err := assert.Type[map[string]any](itemsRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: items: %w", ErrInvalidParameter, err)
	}

	itemType, err := assert.Type[string](itemMap["type"])
	if err != nil {
		return nil, fmt.Errorf("%w: items.type: %w", ErrInvalidParameter, err)
	}

	itemParams, _ := itemMap["parameters"].(map[string]any)

	item, err := buildPipe(PipeConfig{Type: itemType, Parameters: itemParams})
	if err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}

	separator, _, err := paramValue[string](pc.Parameters, "separator")
	if err != nil {
		return nil, err
	}

	concurrency, found, err := paramValue[int](pc.Parameters, "concurrency")
	if err != nil {
		return nil, err
	}

	if found {
		return pipe.NewArrayConcurrent(item, separator, concurrency, opts...), nil
	}

	return pipe.NewArraySplit(item, separator, opts...), nil
}

func buildNormalize(pc PipeConfig, opts []pipe.Option) (*pipe.Normalize, error) {
	name, found, err := paramValue[string](pc.Parameters, "form")
	if err != nil {
		return nil, err
	}

	if !found {
		return pipe.NewNormalize(opts...), nil
	}

	form, err := parseForm(name)
	if err != nil {
		return nil, err
	}

	return pipe.NewNormalizeForm(form, opts...), nil
}

func parseForm(name string) (norm.Form, error) {
	switch strings.ToLower(name) {
	case "nfc":
		return norm.NFC, nil
	case "nfd":
		return norm.NFD, nil
	case "nfkc":
		return norm.NFKC, nil
	case "nfkd":
		return norm.NFKD, nil
	default:
		return 0, fmt.Errorf("%w: form: %q", ErrInvalidParameter, name)
	}
}

// paramValue reads one typed parameter. Absence is not an error; a present
// value of the wrong type is.
func paramValue[T any](params map[string]any, key string) (T, bool, error) {
	var zero T

	raw, found := params[key]
	if !found {
		return zero, false, nil
	}

	value, err := assert.Type[T](raw)
	if err != nil {
		return zero, false, fmt.Errorf("%w: %s: %w", ErrInvalidParameter, key, err)
	}

	return value, true, nil
}

// paramStrings reads a string-list parameter. YAML sequences decode as
// []any, so elements are asserted one by one.
func paramStrings(params map[string]any, key string) ([]string, bool, error) {
	raw, found := params[key]
	if !found {
		return nil, false, nil
	}

	list, err := assert.Type[[]any](raw)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %w", ErrInvalidParameter, key, err)
	}

	values := make([]string, 0, len(list))

	for i, item := range list {
		s, err := assert.Type[string](item)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %s[%d]: %w", ErrInvalidParameter, key, i, err)
		}

		values = append(values, s)
	}

	return values, true, nil
}
