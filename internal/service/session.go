package service

import (
	"context"
	"fmt"
)

// Sessions remembers the signed-in user. *identity.Session implements it.
type Sessions interface {
	SignIn(ctx context.Context, raw string) (string, error)
	SignOut(ctx context.Context) error
	Current() string
}

// Status describes the store behind the API.
type Status struct {
	User             string `json:"user"`
	Hydration        string `json:"hydration"`
	LastPersistError string `json:"lastPersistError,omitempty"`
}

// SessionService signs users in and out and points the store at the signed-in
// user's document.
type SessionService struct {
	sessions Sessions
	store    SessionStore
}

// NewSessionService constructs a SessionService.
func NewSessionService(sessions Sessions, s SessionStore) *SessionService {
	return &SessionService{sessions: sessions, store: s}
}

// SignIn normalises phone, remembers it and hydrates the store for it.
// Returns domain.ErrValidation for an invalid phone number.
func (s *SessionService) SignIn(ctx context.Context, phone string) (string, error) {
	user, err := s.sessions.SignIn(ctx, phone)
	if err != nil {
		return "", fmt.Errorf("service.SessionService.SignIn: %w", err)
	}
	s.store.SetIdentity(ctx, user)
	if err := s.store.WaitHydrated(ctx); err != nil {
		return "", fmt.Errorf("service.SessionService.SignIn: %w", err)
	}
	return user, nil
}

// SignOut forgets the user and empties the store.
func (s *SessionService) SignOut(ctx context.Context) error {
	if err := s.sessions.SignOut(ctx); err != nil {
		return fmt.Errorf("service.SessionService.SignOut: %w", err)
	}
	s.store.SetIdentity(ctx, "")
	return nil
}

// Current returns the signed-in user, or "".
func (s *SessionService) Current() string {
	return s.sessions.Current()
}

// Status reports who is signed in, the hydration state and the last
// write-back failure.
func (s *SessionService) Status() Status {
	st := Status{User: s.store.Identity(), Hydration: s.store.Status().String()}
	if err := s.store.LastPersistError(); err != nil {
		st.LastPersistError = err.Error()
	}
	return st
}
