package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes tripctl with args against a file store in dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("DATA_DIR", dir)

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTrips_addThenList(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "--user", "+15550001111", "trips", "add", "Lisbon", "2099-06-01", "2099-06-10")
	require.NoError(t, err)
	assert.Equal(t, "Lisbon|2099-06-01|2099-06-10\n", out)

	out, err = run(t, dir, "--user", "+15550001111", "trips", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "DESTINATION")
	assert.Contains(t, out, "Lisbon")
	assert.Contains(t, out, "2099-06-10")

	out, err = run(t, dir, "--user", "+15559999999", "trips", "list")
	require.NoError(t, err)
	assert.Equal(t, "No trips found.\n", out, "another user's document is separate")
}

func TestTrips_addRejectsBadDates(t *testing.T) {
	_, err := run(t, t.TempDir(), "--user", "+15550001111", "trips", "add", "Lisbon", "2099-06-10", "2099-06-01")
	assert.Error(t, err)
}

func TestExpensesTotals_unknownTrip(t *testing.T) {
	_, err := run(t, t.TempDir(), "--user", "+15550001111", "expenses", "totals", "Nowhere|2099-01-01|2099-01-02")
	assert.Error(t, err)
}

func TestExpensesTotals_noExpenses(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "--user", "+15550001111", "trips", "add", "Porto", "2099-07-01", "2099-07-03")
	require.NoError(t, err)

	out, err := run(t, dir, "--user", "+15550001111", "expenses", "totals", "Porto|2099-07-01|2099-07-03")
	require.NoError(t, err)
	assert.Equal(t, "No expenses.\n", out)
}

func TestExport_csvIncludesTripsWithoutExpenses(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "--user", "+15550001111", "trips", "add", "Porto", "2099-07-01", "2099-07-03")
	require.NoError(t, err)

	out, err := run(t, dir, "--user", "+15550001111", "export")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "trip_id,"))
	assert.True(t, strings.HasPrefix(lines[1], "Porto|2099-07-01|2099-07-03,Porto,"))
}

func TestExport_rejectsUnknownFormat(t *testing.T) {
	_, err := run(t, t.TempDir(), "--user", "+15550001111", "export", "--format", "xml")
	assert.ErrorContains(t, err, "--format")
}

func TestCommands_requireUser(t *testing.T) {
	_, err := run(t, t.TempDir(), "trips", "list")
	assert.ErrorIs(t, err, errNoUser)
}

func TestMigrate_fileDriverHasNoSchema(t *testing.T) {
	out, err := run(t, t.TempDir(), "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "has no schema")
}
