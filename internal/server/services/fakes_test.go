package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/records"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeUsersRepo is an in-memory users store keyed by email.
type fakeUsersRepo struct {
	mu        sync.Mutex
	byEmail   map[string]*models.User
	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return common.ErrorAlreadyExists
	}
	cp := *u
	cp.CreatedAt = time.Now()
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

// fakeTodosRepo is an in-memory todo store; errs injects failures per method.
type fakeTodosRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*models.Todo
	errs   map[string]error
	calls  []string
}

func newFakeTodosRepo() *fakeTodosRepo {
	return &fakeTodosRepo{items: map[int64]*models.Todo{}, errs: map[string]error{}}
}

func (f *fakeTodosRepo) record(op string) error {
	f.calls = append(f.calls, op)
	return f.errs[op]
}

func (f *fakeTodosRepo) Create(_ context.Context, t *models.Todo) (*models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Create"); err != nil {
		return nil, err
	}
	f.nextID++
	cp := *t
	cp.ID = f.nextID
	cp.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Second)
	f.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeTodosRepo) ListByUser(_ context.Context, email string) ([]*models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListByUser"); err != nil {
		return nil, err
	}
	out := make([]*models.Todo, 0)
	for _, it := range f.items {
		if it.UserEmail == email {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTodosRepo) GetForUpdate(_ context.Context, id int64, email string) (*models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetForUpdate"); err != nil {
		return nil, err
	}
	it, ok := f.items[id]
	if !ok || it.UserEmail != email {
		return nil, common.ErrorNotFound
	}
	cp := *it
	return &cp, nil
}

func (f *fakeTodosRepo) Update(_ context.Context, t *models.Todo) (*models.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Update"); err != nil {
		return nil, err
	}
	it, ok := f.items[t.ID]
	if !ok || it.UserEmail != t.UserEmail {
		return nil, common.ErrorNotFound
	}
	cp := *t
	f.items[t.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeTodosRepo) Delete(_ context.Context, id int64, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("Delete"); err != nil {
		return err
	}
	it, ok := f.items[id]
	if !ok || it.UserEmail != email {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeRecordsRepo struct {
	list      []*models.Record
	listErr   error
	created   []*models.Record
	createErr error
	updated   map[string]models.RecordPatch
	updateErr error
	deleted   []string
	deleteErr error
}

func (f *fakeRecordsRepo) List(context.Context) ([]*models.Record, error) {
	return f.list, f.listErr
}

func (f *fakeRecordsRepo) Create(_ context.Context, r *models.Record) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, r)
	return nil
}

func (f *fakeRecordsRepo) Update(_ context.Context, email string, p models.RecordPatch) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updated == nil {
		f.updated = map[string]models.RecordPatch{}
	}
	f.updated[email] = p
	return nil
}

func (f *fakeRecordsRepo) Delete(_ context.Context, email string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, email)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTodosRepo
	r *fakeRecordsRepo

	// handles passed to Todos, to tell pool calls from transaction calls
	todoHandles []dbx.DBTX
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.u }
func (m *fakeRepoManager) Records(dbx.DBTX) records.Repository          { return m.r }
func (m *fakeRepoManager) Todos(db dbx.DBTX) todos.Repository {
	m.todoHandles = append(m.todoHandles, db)
	return m.t
}
