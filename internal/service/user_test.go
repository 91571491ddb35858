package service

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"querydemo/internal/errs"
	"querydemo/internal/model"
	"querydemo/internal/query"
	"querydemo/internal/repository"
	repoMocks "querydemo/internal/repository/mocks"
	"querydemo/internal/schema"
)

// inlineTx runs fn directly, recording how often a transaction was opened.
type inlineTx struct{ calls int }

func (t *inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func TestUserService_InsertGetResults_Mocked(t *testing.T) {
	ctx := context.Background()
	rows := []query.Row{
		query.R(schema.UserName.Eq("Sean")),
		query.R(schema.UserName.Eq("Tess")),
	}

	tests := []struct {
		name       string
		setupMocks func(mRepo *repoMocks.MockUserRepository)
		wantIDs    []int32
		wantErr    error
	}{
		{
			name: "happy path reverses the read back",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("Insert", ctx, rows).Return(int64(2), nil)
				mRepo.On("Latest", ctx, int64(2)).Return([]model.User{{ID: 9}, {ID: 8}}, nil)
			},
			wantIDs: []int32{8, 9},
		},
		{
			name: "nothing inserted skips the read back",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("Insert", ctx, rows).Return(int64(0), nil)
			},
			wantIDs: []int32{},
		},
		{
			name: "insert error",
			setupMocks: func(mRepo *repoMocks.MockUserRepository) {
				mRepo.On("Insert", ctx, rows).Return(int64(0), query.ErrEmptyBatch)
			},
			wantErr: query.ErrEmptyBatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockUserRepository)
			tx := &inlineTx{}
			tt.setupMocks(mRepo)

			svc := NewUserService(tx, mRepo)
			got, err := svc.InsertGetResults(ctx, rows...)

			assert.Equal(t, 1, tx.calls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				ids := make([]int32, 0, len(got))
				for _, u := range got {
					ids = append(ids, u.ID)
				}
				assert.Equal(t, tt.wantIDs, ids)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_InsertForm_InvalidSkipsRepository(t *testing.T) {
	mRepo := new(repoMocks.MockUserRepository)
	svc := NewUserService(&inlineTx{}, mRepo)

	n, err := svc.InsertForm(context.Background(), []byte(`{"hair_color":"Black"}`))
	assert.Zero(t, n)
	assert.True(t, errs.IsDeserialize(err))
	mRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestUserService_Select(t *testing.T) {
	ctx := context.Background()
	q := repository.UserQuery{Where: schema.UserName.Eq("Ruby"), Limit: 1}

	var seq iter.Seq2[model.User, error] = func(yield func(model.User, error) bool) {
		yield(model.User{ID: 1, Name: "Ruby"}, nil)
	}
	mRepo := new(repoMocks.MockUserRepository)
	mRepo.On("Find", ctx, q).Return(seq)

	svc := NewUserService(&inlineTx{}, mRepo)
	var names []string
	for u, err := range svc.Select(ctx, q) {
		require.NoError(t, err)
		names = append(names, u.Name)
	}
	assert.Equal(t, []string{"Ruby"}, names)
	mRepo.AssertExpectations(t)
}

func TestUserService_SomeUsers_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	t.Run("names", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("Names", ctx, false, []query.Order(nil)).Return(nil, boom)

		_, err := NewUserService(&inlineTx{}, mRepo).SomeUsers(ctx)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "load names")
	})

	t.Run("cursor", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("Names", ctx, false, []query.Order(nil)).Return([]string{}, nil)
		mRepo.On("Names", ctx, true, []query.Order(nil)).Return([]string{}, nil)
		mRepo.On("Count", ctx).Return(int64(0), nil)
		var seq iter.Seq2[model.User, error] = func(yield func(model.User, error) bool) {
			yield(model.User{}, repository.ErrCursorConsumed)
		}
		mRepo.On("Find", ctx, mock.Anything).Return(seq)

		_, err := NewUserService(&inlineTx{}, mRepo).SomeUsers(ctx)
		assert.ErrorIs(t, err, repository.ErrCursorConsumed)
	})
}

func TestUserService_UpdateUsers_Error(t *testing.T) {
	ctx := context.Background()
	dbErr := errs.NewDatabaseError(errs.CodeOther, 0, "gone", "", nil)

	mRepo := new(repoMocks.MockUserRepository)
	mRepo.On("Update", ctx, mock.Anything, mock.Anything).Return(int64(0), dbErr).Once()

	renamed, byID, err := NewUserService(&inlineTx{}, mRepo).UpdateUsers(ctx)
	assert.Zero(t, renamed)
	assert.Zero(t, byID)
	assert.ErrorIs(t, err, dbErr)
	mRepo.AssertNumberOfCalls(t, "Update", 1)
}
