// Package build exposes the version metadata of the running binary. Host
// applications inject it at compile time as a JSON blob:
//
//	go build -ldflags "-X github.com/spigot-labs/spigot/build.embedded=$BUILD_INFO"
//
// Without an injected blob the package falls back to what the Go toolchain
// recorded (module version, vcs revision and time). The telemetry package
// reads this to stamp exported spans with the service version.
package build

import (
	"encoding/json"
	rdebug "runtime/debug"
	"strings"

	"github.com/spigot-labs/spigot/lazy"
	"github.com/spigot-labs/spigot/logger"
)

// defaultVersion is reported when neither ldflags nor the toolchain recorded
// a version, which is the common case for `go run` and plain `go test`.
const defaultVersion = "1.0.0"

// embedded is the ldflags injection point. Must stay a plain string var;
// -X can only set those.
var embedded string //nolint:gochecknoglobals

//nolint:gochecknoglobals
var current = lazy.New(load)

// Info describes one build of a binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"` //nolint:tagliatelle
	GitBranch string `json:"git_branch"` //nolint:tagliatelle
	BuildTime string `json:"build_time"` //nolint:tagliatelle
	GoVersion string `json:"go_version"` //nolint:tagliatelle
}

// Parse deserializes a JSON string into build Info.
// Returns (nil, false) if the input is empty, "{}", or fails to parse.
func Parse(js string) (*Info, bool) {
	if len(js) == 0 {
		return nil, false
	}

	if js == "{}" {
		return nil, false
	}

	var info Info

	if err := json.Unmarshal([]byte(js), &info); err != nil {
		logger.Get().Warn("Failed to parse build info from JSON",
			"data", js,
			"error", err)

		return nil, false
	}

	return &info, true
}

// Current returns the build info for the running binary: the embedded blob
// when one was injected, otherwise the toolchain record. Never nil; computed
// once.
func Current() *Info {
	return current.Get()
}

// Version returns the recorded version, or a stable default when nothing was
// recorded.
func Version() string {
	if v := Current().Version; v != "" {
		return v
	}

	return defaultVersion
}

func load() *Info {
	if info, ok := Parse(embedded); ok {
		return info
	}

	return fromToolchain()
}

// fromToolchain assembles an Info from debug.ReadBuildInfo. Main.Version is
// "(devel)" outside of `go install module@version` builds, which counts as
// unrecorded.
func fromToolchain() *Info {
	info := &Info{}

	bi, ok := rdebug.ReadBuildInfo()
	if !ok {
		return info
	}

	info.GoVersion = bi.GoVersion

	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = strings.TrimPrefix(v, "v")
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.GitCommit = setting.Value
		case "vcs.time":
			info.BuildTime = setting.Value
		}
	}

	return info
}
