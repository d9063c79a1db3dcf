package repwizard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testCategories() []Category {
	return []Category{
		{
			Name: "People",
			Fields: []FieldSpec{
				{Name: "name", Type: FTString, Label: "Name"},
				{Name: "age", Type: FTNumber, Label: "Age", HelpText: "Age in years"},
				{Name: "active", Type: FTBoolean, Label: "Active"},
			},
		},
		{
			Name: "Dates",
			Fields: []FieldSpec{
				{Name: "hired", Type: FTDate, Label: "Hire Date"},
				{Name: "updated_at", Type: FTDateTime, Label: "Last Update"},
			},
		},
	}
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := NewCatalog(testCategories())
	require.NoError(t, err)
	return cat
}

// testEnv returns an Env with observed logs and sequential prompt ids.
func testEnv(t *testing.T) (*Env, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	env := NewEnv(testCatalog(t), zap.New(core).Sugar())
	seq := 0
	env.NewID = func() string {
		seq++
		return fmt.Sprintf("prompt-%d", seq)
	}
	return env, logs
}
