package rest

import (
	"context"
	"sync"
	"time"

	"github.com/gymfitness/membership/internal/common"
	"github.com/gymfitness/membership/internal/server/auth"
	"github.com/gymfitness/membership/internal/server/models"
	"github.com/gymfitness/membership/internal/server/services"
)

type fakeAuth struct {
	mu sync.Mutex

	signUpIn  services.SignUpInput
	signUpErr error

	signInRes *services.SignInResult
	signInErr error

	changed   map[string]string
	changeErr error

	cancelled []string
	cancelErr error

	validToken string
	claims     *auth.Claims
}

func (f *fakeAuth) SignUp(ctx context.Context, in services.SignUpInput) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUpIn = in
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &models.User{ID: "user-1", Email: in.Email}, nil
}

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (*services.SignInResult, error) {
	return f.signInRes, f.signInErr
}

func (f *fakeAuth) ChangePassword(ctx context.Context, email, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.changeErr != nil {
		return f.changeErr
	}
	if f.changed == nil {
		f.changed = map[string]string{}
	}
	f.changed[email] = newPassword
	return nil
}

func (f *fakeAuth) Cancel(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, email)
	return nil
}

func (f *fakeAuth) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	if f.validToken == "" || token != f.validToken {
		return nil, common.ErrInvalidToken
	}
	return f.claims, nil
}

// stubLimiter allows the first n calls.
type stubLimiter struct {
	mu     sync.Mutex
	n      int
	calls  int
	keys   []string
	closed bool
}

func (s *stubLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) RateDecision {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.keys = append(s.keys, key)
	return RateDecision{Allowed: s.calls <= s.n, Count: s.calls, WindowEnd: time.Now().Add(window)}
}

func (s *stubLimiter) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
