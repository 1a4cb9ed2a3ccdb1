package http

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("http-test-secret")

type fakeUsers struct {
	registered []services.RegisterInput
	regErr     error

	token    string
	loginErr error
}

func (f *fakeUsers) Register(_ context.Context, in services.RegisterInput) error {
	f.registered = append(f.registered, in)
	return f.regErr
}

func (f *fakeUsers) Login(_ context.Context, _, _ string) (string, error) {
	return f.token, f.loginErr
}

type fakeTodos struct {
	owner     string
	lastID    int64
	lastPatch models.TodoPatch

	items []*models.Todo
	item  *models.Todo
	err   error
	panic bool
}

func (f *fakeTodos) Create(_ context.Context, owner, title string, description *string) (*models.Todo, error) {
	f.owner = owner
	if f.err != nil {
		return nil, f.err
	}
	return &models.Todo{ID: 1, UserEmail: owner, Title: title, Description: description}, nil
}

func (f *fakeTodos) List(_ context.Context, owner string) ([]*models.Todo, error) {
	if f.panic {
		panic("boom")
	}
	f.owner = owner
	return f.items, f.err
}

func (f *fakeTodos) Update(_ context.Context, owner string, id int64, patch models.TodoPatch) (*models.Todo, error) {
	f.owner, f.lastID, f.lastPatch = owner, id, patch
	return f.item, f.err
}

func (f *fakeTodos) Delete(_ context.Context, owner string, id int64) error {
	f.owner, f.lastID = owner, id
	return f.err
}

type fakeRecords struct {
	created   []models.Record
	lastEmail string
	lastPatch models.RecordPatch

	items []*models.Record
	err   error
}

func (f *fakeRecords) List(context.Context) ([]*models.Record, error) { return f.items, f.err }

func (f *fakeRecords) Create(_ context.Context, rec models.Record) error {
	f.created = append(f.created, rec)
	return f.err
}

func (f *fakeRecords) Update(_ context.Context, email string, patch models.RecordPatch) error {
	f.lastEmail, f.lastPatch = email, patch
	return f.err
}

func (f *fakeRecords) Delete(_ context.Context, email string) error {
	f.lastEmail = email
	return f.err
}

type fixture struct {
	srv     *Server
	codec   *auth.TokenCodec
	users   *fakeUsers
	todos   *fakeTodos
	records *fakeRecords
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	codec, err := auth.NewTokenCodec(testSecret)
	require.NoError(t, err)

	f := &fixture{codec: codec, users: &fakeUsers{}, todos: &fakeTodos{}, records: &fakeRecords{}}
	f.srv = NewServer(
		Options{Address: "127.0.0.1:0", CORSOrigins: []string{"http://localhost:3000"}},
		logging.Nop{}, codec, f.users, f.todos, f.records,
	)
	return f
}

func (f *fixture) token(t *testing.T, subject string) string {
	t.Helper()
	tok, err := f.codec.Issue(subject, time.Hour)
	require.NoError(t, err)
	return tok
}
