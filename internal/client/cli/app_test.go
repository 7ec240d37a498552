package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gymfitness/membership/internal/client/client"
	"github.com/gymfitness/membership/internal/client/config"
	"github.com/gymfitness/membership/internal/client/models"
	"github.com/gymfitness/membership/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	signUpReq client.SignUpRequest
	signUpErr error

	signInEmail, signInPass string
	signInRes               *client.SignInResponse
	signInErr               error

	changedEmail, changedPass string
	changeErr                 error

	cancelledEmail string
	cancelErr      error

	meToken string
	meRes   *client.Profile
	meErr   error
}

func (f *fakeAPI) SignUp(_ context.Context, req client.SignUpRequest) (string, error) {
	f.signUpReq = req
	return "User registered successfully!", f.signUpErr
}

func (f *fakeAPI) SignIn(_ context.Context, email, password string) (*client.SignInResponse, error) {
	f.signInEmail, f.signInPass = email, password
	return f.signInRes, f.signInErr
}

func (f *fakeAPI) ChangePassword(_ context.Context, email, password string) (string, error) {
	f.changedEmail, f.changedPass = email, password
	return "Password changed successfully!", f.changeErr
}

func (f *fakeAPI) Cancel(_ context.Context, email string) (string, error) {
	f.cancelledEmail = email
	return "Membership cancelled successfully!", f.cancelErr
}

func (f *fakeAPI) Me(_ context.Context, token string) (*client.Profile, error) {
	f.meToken = token
	return f.meRes, f.meErr
}

func (f *fakeAPI) Ping(context.Context) error { return nil }

type memSessions struct {
	saved   *models.Session
	getErr  error
	cleared int
}

func (m *memSessions) Get(context.Context) (*models.Session, error) { return m.saved, m.getErr }

func (m *memSessions) Save(_ context.Context, s *models.Session) error {
	m.saved = s
	return nil
}

func (m *memSessions) Clear(context.Context) error {
	m.saved = nil
	m.cleared++
	return nil
}

// stubPassword replaces the no-echo prompt for the duration of a test.
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) (string, error) { return pw, nil }
	t.Cleanup(func() { getPassword = orig })
}

func newTestApp(api client.Client, input string) (*App, *bytes.Buffer) {
	app, out, _ := newTestAppWithSessions(api, input)
	return app, out
}

func newTestAppWithSessions(api client.Client, input string) (*App, *bytes.Buffer, *memSessions) {
	var out bytes.Buffer
	repo := &memSessions{}
	cfg := &config.Config{ServerEndpointAddr: "http://test", RequestTimeout: time.Second}
	return newApp(cfg, api, repo, strings.NewReader(input), &out), &out, repo
}

func TestNewApp(t *testing.T) {
	cfg := &config.Config{
		ServerEndpointAddr: "http://localhost:8085",
		RequestTimeout:     time.Second,
		SessionFile:        filepath.Join(t.TempDir(), "session.db"),
	}
	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, app.api)
	assert.NotNil(t, app.db)
	app.Close()

	_, err = NewApp(context.Background(), &config.Config{})
	assert.Error(t, err)
}

func TestRun_RestoresAndPersistsSession(t *testing.T) {
	api := &fakeAPI{meRes: &client.Profile{ID: "u1", Email: "anna@gym.se"}}
	app, out, repo := newTestAppWithSessions(api, "")
	repo.saved = &models.Session{Email: "anna@gym.se", AccessToken: "saved-tok"}

	require.NoError(t, app.Run(context.Background(), []string{"me"}))
	assert.Equal(t, "saved-tok", api.meToken)
	assert.Contains(t, out.String(), "id=u1")
}

func TestRun_SessionLoadFailureIsAWarning(t *testing.T) {
	app, out, repo := newTestAppWithSessions(&fakeAPI{}, "")
	repo.getErr = errors.New("disk gone")

	require.NoError(t, app.Run(context.Background(), []string{"logout"}))
	assert.Contains(t, out.String(), "warning: disk gone")
}

func TestRun_SingleCommand(t *testing.T) {
	stubPassword(t, "s3cret")
	api := &fakeAPI{signInRes: &client.SignInResponse{
		AccessToken: "tok", FirstName: "Anna", Surname: "Berg", Email: "anna@gym.se", Levels: []string{"ADMIN"},
	}}

	app, out, repo := newTestAppWithSessions(api, "anna@gym.se\n")

	require.NoError(t, app.Run(context.Background(), []string{"signin"}))

	require.NotNil(t, repo.saved)
	assert.Equal(t, "tok", repo.saved.AccessToken)
	assert.Equal(t, []string{"ADMIN"}, repo.saved.Levels)
	assert.Equal(t, "anna@gym.se", api.signInEmail)
	assert.Equal(t, "s3cret", api.signInPass)
	assert.Contains(t, out.String(), "Signed in as Anna Berg <anna@gym.se>")
	assert.Contains(t, out.String(), "Levels: ADMIN")
	assert.Contains(t, out.String(), "Token: tok")
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _ := newTestApp(&fakeAPI{}, "")
	err := app.Run(context.Background(), []string{"frobnicate"})
	assert.ErrorIs(t, err, errUnknownCommand)
}

func TestRun_ReportsServerErrors(t *testing.T) {
	stubPassword(t, "x")
	api := &fakeAPI{signInErr: &client.APIError{Status: 403, Message: "Error: Account has been Cancelled"}}
	app, out := newTestApp(api, "anna@gym.se\n")

	err := app.Run(context.Background(), []string{"signin"})

	assert.ErrorIs(t, err, common.ErrAccountCancelled)
	assert.Contains(t, out.String(), "This membership has been cancelled")
	assert.False(t, app.isSignedIn())
}
