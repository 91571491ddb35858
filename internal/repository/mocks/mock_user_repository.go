package mocks

import (
	"context"
	"iter"

	"github.com/stretchr/testify/mock"
	"querydemo/internal/model"
	"querydemo/internal/query"
	"querydemo/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) InsertDefault(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Insert(ctx context.Context, rows ...query.Row) (int64, error) {
	args := m.Called(ctx, rows)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Replace(ctx context.Context, rows ...query.Row) (int64, error) {
	args := m.Called(ctx, rows)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) InsertIgnore(ctx context.Context, rows ...query.Row) (int64, error) {
	args := m.Called(ctx, rows)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, where query.Predicate, set ...query.Assignment) (int64, error) {
	args := m.Called(ctx, where, set)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, where query.Predicate) (int64, error) {
	args := m.Called(ctx, where)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Find(ctx context.Context, q repository.UserQuery) iter.Seq2[model.User, error] {
	args := m.Called(ctx, q)
	return args.Get(0).(iter.Seq2[model.User, error])
}

func (m *MockUserRepository) Latest(ctx context.Context, n int64) ([]model.User, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) LatestID(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockUserRepository) Names(ctx context.Context, distinct bool, order ...query.Order) ([]string, error) {
	args := m.Called(ctx, distinct, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) All(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}
