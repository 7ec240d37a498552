package services

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gymfitness/membership/internal/common"
	"github.com/gymfitness/membership/internal/dbx"
	"github.com/gymfitness/membership/internal/logging"
	"github.com/gymfitness/membership/internal/server/auth"
	"github.com/gymfitness/membership/internal/server/models"
	"github.com/gymfitness/membership/internal/server/repositories/billings"
	"github.com/gymfitness/membership/internal/server/repositories/levels"
	"github.com/gymfitness/membership/internal/server/repositories/users"
)

// memStore is an in-memory stand-in for the three tables. Reads hand out
// copies so that only Update/Create change stored state.
type memStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	levels   map[models.LevelName]models.Level
	billings map[string]models.Billing
	writes   int

	existsErr  error
	getErr     error
	createErr  error
	updateErr  error
	levelErr   error
	billingErr error
}

func newMemStore() *memStore {
	s := &memStore{
		users:    map[string]models.User{},
		levels:   map[models.LevelName]models.Level{},
		billings: map[string]models.Billing{},
	}
	for i, n := range []models.LevelName{
		models.LevelMemberBasic, models.LevelMemberStandard, models.LevelMemberPremium, models.LevelAdmin, models.LevelInstructor,
	} {
		s.levels[n] = models.Level{ID: int64(i + 1), Name: n}
	}
	return s
}

func (s *memStore) user(email string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	return u, ok
}

func (s *memStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

type fakeUsersRepo struct{ s *memStore }

func (r fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createErr != nil {
		return nil, r.s.createErr
	}
	if _, ok := r.s.users[u.Email]; ok {
		return nil, common.ErrorConflict
	}
	u.CreatedAt = time.Now()
	r.s.users[u.Email] = *u
	r.s.writes++
	return u, nil
}

func (r fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.getErr != nil {
		return nil, r.s.getErr
	}
	u, ok := r.s.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r fakeUsersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.existsErr != nil {
		return false, r.s.existsErr
	}
	_, ok := r.s.users[email]
	return ok, nil
}

func (r fakeUsersRepo) Update(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.updateErr != nil {
		return r.s.updateErr
	}
	if _, ok := r.s.users[u.Email]; !ok {
		return common.ErrorNotFound
	}
	r.s.users[u.Email] = *u
	r.s.writes++
	return nil
}

type fakeLevelsRepo struct{ s *memStore }

func (r fakeLevelsRepo) FindByName(ctx context.Context, name models.LevelName) (*models.Level, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.levelErr != nil {
		return nil, r.s.levelErr
	}
	l, ok := r.s.levels[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &l, nil
}

type fakeBillingsRepo struct{ s *memStore }

func (r fakeBillingsRepo) Create(ctx context.Context, b *models.Billing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.billingErr != nil {
		return r.s.billingErr
	}
	r.s.billings[b.UserID] = *b
	r.s.writes++
	return nil
}

type fakeRepoManager struct{ s *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return fakeUsersRepo{m.s} }
func (m *fakeRepoManager) Levels(dbx.DBTX) levels.Repository            { return fakeLevelsRepo{m.s} }
func (m *fakeRepoManager) Billings(dbx.DBTX) billings.Repository        { return fakeBillingsRepo{m.s} }

// countingHasher is a transparent hasher that records Verify calls.
type countingHasher struct {
	mu          sync.Mutex
	verifyCalls int
	hashErr     error
	verifyErr   error
}

func (h *countingHasher) Hash(password string) ([]byte, error) {
	if h.hashErr != nil {
		return nil, h.hashErr
	}
	return []byte("hashed:" + password), nil
}

func (h *countingHasher) Verify(password string, hash []byte) (bool, error) {
	h.mu.Lock()
	h.verifyCalls++
	h.mu.Unlock()
	if h.verifyErr != nil {
		return false, h.verifyErr
	}
	return strings.TrimPrefix(string(hash), "hashed:") == password, nil
}

func (h *countingHasher) calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.verifyCalls
}

type fixture struct {
	svc    *AuthService
	store  *memStore
	hasher *countingHasher
	tokens *auth.TokenIssuer
	mock   sqlmock.Sqlmock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("sql expectations: %v", err)
		}
		db.Close()
	})

	store := newMemStore()
	hasher := &countingHasher{}
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	svc := NewAuthService(db, &fakeRepoManager{s: store}, hasher, tokens, logging.Nop())

	n := 0
	svc.newID = func() string {
		n++
		return "user-" + string(rune('0'+n))
	}

	return &fixture{svc: svc, store: store, hasher: hasher, tokens: tokens, mock: mock}
}

func (f *fixture) expectCommit() {
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
}

func (f *fixture) expectRollback() {
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
}

func signUpInput(email, level string) SignUpInput {
	return SignUpInput{
		FirstName:  "Anna",
		Surname:    "Berg",
		Email:      email,
		Password:   "s3cret",
		BankNo:     "1234567",
		ClearingNo: "8327",
		Level:      level,
	}
}

// register signs a member up, expecting success.
func (f *fixture) register(t *testing.T, email, level string) *models.User {
	t.Helper()
	f.expectCommit()
	u, err := f.svc.SignUp(context.Background(), signUpInput(email, level))
	if err != nil {
		t.Fatalf("SignUp(%s): %v", email, err)
	}
	return u
}
