package app_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/app"
	"github.com/pkordes/trip-planner/backend/internal/config"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

func testConfig(driver, dir string) config.Config {
	return config.Config{
		StorageDriver:     driver,
		DataDir:           dir,
		PersistMaxRetries: 0,
		PersistBackoff:    time.Millisecond,
		PhotoCacheTTL:     time.Hour,
	}
}

func newApp(t *testing.T, cfg config.Config) *app.App {
	t.Helper()
	a, err := app.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	return a
}

var lisbon = domain.TripInput{Destination: "Lisbon", StartDate: "2025-06-01", EndDate: "2025-06-10"}

func TestNew_signedOutByDefault(t *testing.T) {
	a := newApp(t, testConfig(config.DriverMemory, ""))
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	assert.Empty(t, a.Session.Current())

	_, _, err := a.Trips.List(context.Background(), "", domain.NewPaginationParams(nil, nil))
	assert.ErrorIs(t, err, domain.ErrNoIdentity)
}

func TestNew_unknownDriver(t *testing.T) {
	_, err := app.New(context.Background(), testConfig("floppy", ""), nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "floppy")
}

// TestApp_sessionAndTripsSurviveRestart signs in, writes through the file
// driver, closes, and reopens the same directory.
func TestApp_sessionAndTripsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.DriverFile, t.TempDir())

	first := newApp(t, cfg)
	user, err := first.Session.SignIn(ctx, "+1 (555) 000-1111")
	require.NoError(t, err)
	trip, err := first.Trips.Create(ctx, lisbon)
	require.NoError(t, err)
	_, err = first.Expenses.Create(ctx, trip.ID, domain.ExpenseInput{
		Name: "Tram", Amount: decimal.RequireFromString("3.10"), Currency: "EUR",
	})
	require.NoError(t, err)
	require.NoError(t, first.Close(ctx))

	second := newApp(t, cfg)
	t.Cleanup(func() { _ = second.Close(ctx) })

	assert.Equal(t, user, second.Session.Current())
	trips, total, err := second.Trips.List(ctx, "", domain.NewPaginationParams(nil, nil))
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, trip.ID, trips[0].ID)

	totals, err := second.Expenses.Totals(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, totals.Totals, 1)
	assert.Equal(t, "EUR", totals.Totals[0].Currency)
}

func TestApp_UseIdentity(t *testing.T) {
	ctx := context.Background()
	a := newApp(t, testConfig(config.DriverMemory, ""))
	t.Cleanup(func() { _ = a.Close(ctx) })

	require.NoError(t, a.UseIdentity(ctx, "555 000 2222"))
	assert.Equal(t, "5550002222", a.Store.Identity())
	assert.Empty(t, a.Session.Current(), "the remembered session is untouched")

	err := a.UseIdentity(ctx, "12")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApp_ServerHealth(t *testing.T) {
	a := newApp(t, testConfig(config.DriverMemory, ""))
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	assert.NotNil(t, a.Server().Routes())
}

func TestNewLogger_levels(t *testing.T) {
	var buf bytes.Buffer
	log := app.NewLogger(&buf, "warn")

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	app.NewLogger(&buf, "nonsense").Info("fallback")
	assert.Contains(t, buf.String(), "fallback")
}
