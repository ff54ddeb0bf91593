package store

import (
	"context"
	"embed"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/migrations
var testMigrations embed.FS

type fakeExec struct {
	applied  []int
	executed []string
	failOn   string
}

func (f *fakeExec) Exec(_ context.Context, sql string, args ...any) error {
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return errors.New("boom")
	}
	f.executed = append(f.executed, sql)
	if strings.HasPrefix(sql, "INSERT INTO _migrations") {
		f.applied = append(f.applied, args[0].(int))
	}
	return nil
}

func (f *fakeExec) QueryVersions(context.Context, string) ([]int, error) {
	return append([]int(nil), f.applied...), nil
}

func TestMigrator_ParseMigrations(t *testing.T) {
	m := NewMigrator(testMigrations, "testdata/migrations")
	migs, err := m.ParseMigrations()
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, 1, migs[0].Version)
	assert.Equal(t, "a", migs[0].Name)
	assert.Equal(t, 2, migs[1].Version)
}

func TestMigrator_RunIsIdempotent(t *testing.T) {
	m := NewMigrator(testMigrations, "testdata/migrations")
	exec := &fakeExec{}

	res, err := m.Run(context.Background(), exec)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, res.Applied)
	assert.Empty(t, res.Skipped)

	res, err = m.Run(context.Background(), exec)
	require.NoError(t, err)
	assert.Empty(t, res.Applied)
	assert.Equal(t, []int{1, 2}, res.Skipped)
}

func TestMigrator_RunStopsOnFailure(t *testing.T) {
	m := NewMigrator(testMigrations, "testdata/migrations")
	exec := &fakeExec{failOn: "CREATE TABLE b"}

	res, err := m.Run(context.Background(), exec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2_b")
	assert.Equal(t, []int{1}, res.Applied)
}
