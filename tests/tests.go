// Package tests carries test metadata (a unique id, the test name, the
// *testing.T itself) through context.Context, so helpers deep in the call
// stack can name resources after the running test or skip based on the
// environment.
//
//	func TestCatalogReload(t *testing.T) {
//	    ctx := tests.GetUniqueContext(t)
//	    info, _ := tests.GetTestInfo(ctx)
//	    path := filepath.Join(t.TempDir(), info.Id+".yaml")
//	    ...
//	}
package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/spigot-labs/spigot/contexts"
	"github.com/spigot-labs/spigot/envcfg"
)

type contextKey string

const (
	// testIdKey stores the unique test identifier, a UUID prefixed with
	// "test-".
	testIdKey contextKey = "testId"

	// testNameKey stores t.Name(), including the subtest path.
	testNameKey contextKey = "testName"

	// testTestKey stores the *testing.T itself.
	testTestKey contextKey = "testTest"
)

// GetUniqueContext derives a context from t.Context() carrying a fresh
// unique id, the test name, and t. Use the id to name external resources so
// concurrent test runs never collide.
func GetUniqueContext(t *testing.T) context.Context {
	t.Helper()

	ctx := contexts.WithValue(t.Context(), testTestKey, t)
	ctx = contexts.WithValue(ctx, testIdKey, "test-"+uuid.New().String())

	return contexts.WithValue(ctx, testNameKey, t.Name())
}

// CheckSkipped skips the test when the given boolean environment variable
// is true. An optional default applies when the variable is unset or
// malformed.
//
//	tests.CheckSkipped(ctx, t, "SKIP_SLOW_TESTS")
func CheckSkipped(ctx context.Context, t *testing.T, envKey string, defaultValue ...bool) {
	t.Helper()

	defl := false
	if len(defaultValue) > 0 {
		defl = defaultValue[0]
	}

	shouldSkip := envcfg.Bool(ctx, envKey, envcfg.Default(defl)).ValueOrElse(defl)

	if shouldSkip {
		t.Skipf("Skipping test because of environment variable: %s=%v", envKey, shouldSkip)
	}
}

// GetTestName retrieves the test name from the context.
func GetTestName(ctx context.Context) (string, bool) {
	return contexts.GetValue[contextKey, string](ctx, testNameKey)
}

// GetTestId retrieves the unique test identifier from the context.
func GetTestId(ctx context.Context) (string, bool) {
	return contexts.GetValue[contextKey, string](ctx, testIdKey)
}

// GetTest retrieves the *testing.T from the context.
func GetTest(ctx context.Context) (*testing.T, bool) {
	return contexts.GetValue[contextKey, *testing.T](ctx, testTestKey)
}

// Info bundles the test metadata stored by GetUniqueContext.
type Info struct {
	Test *testing.T `json:"-"`
	Id   string     `json:"id"`
	Name string     `json:"name"`
}

// GetTestInfo retrieves the id, name, and test object together. It reports
// false only when none of them are present.
func GetTestInfo(ctx context.Context) (Info, bool) {
	name, nameOk := GetTestName(ctx)
	id, idOk := GetTestId(ctx)
	t, tOk := GetTest(ctx)

	if !nameOk && !idOk && !tOk {
		return Info{}, false
	}

	return Info{
		Test: t,
		Id:   id,
		Name: name,
	}, true
}
