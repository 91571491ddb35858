package mocks

import (
	"context"
	"iter"

	"github.com/stretchr/testify/mock"
	"querydemo/internal/model"
	"querydemo/internal/query"
	"querydemo/internal/repository"
	"querydemo/internal/service"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) count(args mock.Arguments) (int64, error) {
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserService) InsertDefaultValues(ctx context.Context) (int64, error) {
	return m.count(m.Called(ctx))
}

func (m *MockUserService) InsertSingleColumn(ctx context.Context) (int64, error) {
	return m.count(m.Called(ctx))
}

func (m *MockUserService) InsertMultipleColumns(ctx context.Context) (int64, error) {
	return m.count(m.Called(ctx))
}

func (m *MockUserService) InsertInsertableStruct(ctx context.Context) (int64, error) {
	return m.count(m.Called(ctx))
}

func (m *MockUserService) InsertInsertableStructOption(ctx context.Context) (int64, error) {
	return m.count(m.Called(ctx))
}

func (m *MockUserService) InsertSingleColumnBatch(ctx context.Context) (int64, error) {
	return m.count(m.Called(ctx))
}

func (m *MockUserService) InsertSingleColumnBatchWithDefault(ctx context.Context) (int64, error) {
	return m.count(m.Called(ctx))
}

func (m *MockUserService) InsertTupleBatch(ctx context.Context) (int64, error) {
	return m.count(m.Called(ctx))
}

func (m *MockUserService) InsertTupleBatchWithDefault(ctx context.Context) (int64, error) {
	return m.count(m.Called(ctx))
}

func (m *MockUserService) InsertInsertableStructBatch(ctx context.Context) (int64, error) {
	return m.count(m.Called(ctx))
}

func (m *MockUserService) Insert(ctx context.Context, rows ...query.Row) (int64, error) {
	return m.count(m.Called(ctx, rows))
}

func (m *MockUserService) InsertForm(ctx context.Context, data []byte) (int64, error) {
	return m.count(m.Called(ctx, data))
}

func (m *MockUserService) CreateFromForm(ctx context.Context, data []byte) ([]model.User, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) InsertGetResults(ctx context.Context, rows ...query.Row) ([]model.User, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) ExplicitReturning(ctx context.Context, name string) (int32, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, where query.Predicate, set ...query.Assignment) (int64, error) {
	return m.count(m.Called(ctx, where, set))
}

func (m *MockUserService) UpdateUsers(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) Delete(ctx context.Context, where query.Predicate) (int64, error) {
	return m.count(m.Called(ctx, where))
}

func (m *MockUserService) DeleteAll(ctx context.Context) (int64, error) {
	return m.count(m.Called(ctx))
}

func (m *MockUserService) Select(ctx context.Context, q repository.UserQuery) iter.Seq2[model.User, error] {
	args := m.Called(ctx, q)
	return args.Get(0).(iter.Seq2[model.User, error])
}

func (m *MockUserService) SomeUsers(ctx context.Context) (*service.UsersReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UsersReport), args.Error(1)
}

func (m *MockUserService) AllUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) Replace(ctx context.Context, rows ...query.Row) (int64, error) {
	return m.count(m.Called(ctx, rows))
}

func (m *MockUserService) InsertOrIgnore(ctx context.Context, rows ...query.Row) (int64, error) {
	return m.count(m.Called(ctx, rows))
}

func (m *MockUserService) ReplaceIntoUsers(ctx context.Context) (*service.ReplaceReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReplaceReport), args.Error(1)
}
