package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/identity"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/service"
	"github.com/pkordes/trip-planner/backend/internal/store"
)

func newSessions(t *testing.T) (*service.SessionService, *store.Store) {
	t.Helper()
	blobs := repo.NewMemoryBlobStore()
	s := store.New(blobs)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return service.NewSessionService(identity.NewSession(blobs, nil), s), s
}

func TestSessionService_SignInHydrates(t *testing.T) {
	svc, s := newSessions(t)
	ctx := context.Background()

	user, err := svc.SignIn(ctx, "+1 (555) 123-4567")

	require.NoError(t, err)
	assert.Equal(t, "+15551234567", user)
	assert.Equal(t, user, svc.Current())
	assert.Equal(t, store.Hydrated, s.Status())
	assert.Equal(t, service.Status{User: user, Hydration: "hydrated"}, svc.Status())
}

func TestSessionService_SignInRejectsInvalidPhone(t *testing.T) {
	svc, s := newSessions(t)

	_, err := svc.SignIn(context.Background(), "call me")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, store.Uninitialized, s.Status())
}

func TestSessionService_SignOutEmptiesStore(t *testing.T) {
	svc, s := newSessions(t)
	ctx := context.Background()
	_, err := svc.SignIn(ctx, "+15551234567")
	require.NoError(t, err)
	s.AddTrip(validTripInput())
	require.NoError(t, s.Flush(ctx))

	require.NoError(t, svc.SignOut(ctx))

	assert.Empty(t, svc.Current())
	assert.Empty(t, s.Trips())
	assert.Empty(t, svc.Status().User)

	// Signing back in restores the saved document.
	_, err = svc.SignIn(ctx, "+15551234567")
	require.NoError(t, err)
	assert.Len(t, s.Trips(), 1)
}

func TestSessionService_StatusReportsPersistError(t *testing.T) {
	sessions := &fakeSessions{user: "+15550001111"}
	st := &fakeSessionStore{status: store.Hydrated, persistErr: errors.New("disk full")}
	svc := service.NewSessionService(sessions, st)

	got := svc.Status()

	assert.Equal(t, "disk full", got.LastPersistError)
	assert.Equal(t, "+15550001111", got.User)
}

func TestSessionService_SignOutError(t *testing.T) {
	sessions := &fakeSessions{signOutErr: errors.New("read-only")}
	st := &fakeSessionStore{}
	svc := service.NewSessionService(sessions, st)

	err := svc.SignOut(context.Background())

	assert.ErrorContains(t, err, "read-only")
	assert.False(t, st.cleared, "the store keeps its identity when sign-out fails")
}

type fakeSessions struct {
	user       string
	signOutErr error
}

func (f *fakeSessions) SignIn(_ context.Context, raw string) (string, error) {
	f.user = raw
	return raw, nil
}

func (f *fakeSessions) SignOut(context.Context) error {
	return f.signOutErr
}

func (f *fakeSessions) Current() string {
	return f.user
}

type fakeSessionStore struct {
	status     store.Status
	persistErr error
	cleared    bool
}

func (f *fakeSessionStore) WaitHydrated(context.Context) error {
	return nil
}

func (f *fakeSessionStore) Identity() string {
	return "+15550001111"
}

func (f *fakeSessionStore) SetIdentity(_ context.Context, userKey string) {
	f.cleared = userKey == ""
}

func (f *fakeSessionStore) Status() store.Status {
	return f.status
}

func (f *fakeSessionStore) LastPersistError() error {
	return f.persistErr
}

var (
	_ service.Sessions     = (*fakeSessions)(nil)
	_ service.SessionStore = (*fakeSessionStore)(nil)
)
