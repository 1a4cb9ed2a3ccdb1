package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newTodoFixture(t *testing.T) (*TodoService, *fakeTodosRepo, *fakeRepoManager, *sql.DB, func() error) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	repo := newFakeTodosRepo()
	rm := &fakeRepoManager{t: repo}
	return NewTodoService(db, rm), repo, rm, db, mock.ExpectationsWereMet
}

func TestTodoService_CreateAndList(t *testing.T) {
	svc, _, _, _, _ := newTodoFixture(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "a@x.com", "buy milk", nil)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", first.UserEmail)
	assert.False(t, first.Completed)

	_, err = svc.Create(ctx, "a@x.com", "  call mom  ", ptr("sunday"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "b@x.com", "not yours", nil)
	require.NoError(t, err)

	items, err := svc.List(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "call mom", items[0].Title, "newest first, title trimmed")
	assert.Equal(t, "buy milk", items[1].Title)
}

func TestTodoService_Create_Validation(t *testing.T) {
	svc, repo, _, _, _ := newTodoFixture(t)

	_, err := svc.Create(context.Background(), "a@x.com", "   ", nil)
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, repo.calls)
}

func TestTodoService_Create_StoreError(t *testing.T) {
	svc, repo, _, _, _ := newTodoFixture(t)
	repo.errs["Create"] = errors.New("db error: broken pipe")

	_, err := svc.Create(context.Background(), "a@x.com", "t", nil)
	require.ErrorIs(t, err, common.ErrPersistence)
}

func TestTodoService_Update_MergesInTransaction(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := newFakeTodosRepo()
	rm := &fakeRepoManager{t: repo}
	svc := NewTodoService(db, rm)
	ctx := context.Background()

	item, err := svc.Create(ctx, "a@x.com", "buy milk", ptr("2 litres"))
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()

	updated, err := svc.Update(ctx, "a@x.com", item.ID, models.TodoPatch{Completed: ptr(true)})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "buy milk", updated.Title, "unset title kept")
	assert.Equal(t, "2 litres", *updated.Description, "unset description kept")
	assert.True(t, updated.Completed)
	assert.Equal(t, []string{"Create", "GetForUpdate", "Update"}, repo.calls)

	last := rm.todoHandles[len(rm.todoHandles)-1]
	_, inTx := last.(*sql.Tx)
	assert.True(t, inTx, "update must use the transaction handle")
}

func TestTodoService_Update_NotFoundRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := newFakeTodosRepo()
	svc := NewTodoService(db, &fakeRepoManager{t: repo})
	ctx := context.Background()

	item, err := svc.Create(ctx, "a@x.com", "mine", nil)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = svc.Update(ctx, "b@x.com", item.ID, models.TodoPatch{Title: ptr("stolen")})
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, "mine", repo.items[item.ID].Title)
}

func TestTodoService_Update_StoreErrorRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := newFakeTodosRepo()
	svc := NewTodoService(db, &fakeRepoManager{t: repo})
	ctx := context.Background()

	item, err := svc.Create(ctx, "a@x.com", "mine", nil)
	require.NoError(t, err)
	repo.errs["Update"] = errors.New("db error: deadlock")

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = svc.Update(ctx, "a@x.com", item.ID, models.TodoPatch{Title: ptr("new")})
	require.ErrorIs(t, err, common.ErrPersistence)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoService_Update_BeginFailure(t *testing.T) {
	db, mock := newSQLMockDB(t)
	svc := NewTodoService(db, &fakeRepoManager{t: newFakeTodosRepo()})

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	_, err := svc.Update(context.Background(), "a@x.com", 1, models.TodoPatch{Completed: ptr(true)})
	require.ErrorIs(t, err, common.ErrPersistence)
}

func TestTodoService_Update_EmptyTitle(t *testing.T) {
	svc, repo, _, _, met := newTodoFixture(t)

	_, err := svc.Update(context.Background(), "a@x.com", 1, models.TodoPatch{Title: ptr(" ")})
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, repo.calls)
	require.NoError(t, met(), "no transaction for invalid input")
}

func TestTodoService_Delete(t *testing.T) {
	svc, _, _, _, _ := newTodoFixture(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, "a@x.com", "t", nil)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, "b@x.com", item.ID), common.ErrorNotFound, "foreign owner")
	require.NoError(t, svc.Delete(ctx, "a@x.com", item.ID))
	require.ErrorIs(t, svc.Delete(ctx, "a@x.com", item.ID), common.ErrorNotFound, "already gone")
}

func TestStoreErr(t *testing.T) {
	for _, sentinel := range []error{common.ErrorNotFound, common.ErrorAlreadyExists, common.ErrorValidation} {
		assert.Equal(t, sentinel, storeErr(sentinel))
	}

	raw := errors.New("pq: relation does not exist")
	err := storeErr(raw)
	assert.ErrorIs(t, err, common.ErrPersistence)
	assert.ErrorIs(t, err, raw)
}

func TestTodoService_Update_TrimsTitle(t *testing.T) {
	db, mock := newSQLMockDB(t)
	repo := newFakeTodosRepo()
	svc := NewTodoService(db, &fakeRepoManager{t: repo})
	ctx := context.Background()

	item, err := svc.Create(ctx, "a@x.com", "buy milk", nil)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()

	updated, err := svc.Update(ctx, "a@x.com", item.ID, models.TodoPatch{Title: ptr("  buy oat milk  ")})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, "buy oat milk", updated.Title)

	items, err := svc.List(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "buy oat milk", items[0].Title, "stored title trimmed like Create")
}
