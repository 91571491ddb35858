package service

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"querydemo/internal/model"
	"querydemo/internal/query"
	"querydemo/internal/repository"
	"querydemo/internal/schema"
)

// Transactor runs fn atomically. *database.Transactor implements it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	userFormJSON       = `{ "name": "Sean", "hair_color": "Black" }`
	userFormOptionJSON = `{ "name": "Ruby", "hair_color": null }`
	userFormBatchJSON  = `[
		{ "name": "Sean", "hair_color": "Black" },
		{ "name": "Tess", "hair_color": "Brown" }
	]`
)

// UsersReport collects the reads of a SomeUsers run.
type UsersReport struct {
	Names         []string     `json:"names"`
	DistinctNames []string     `json:"distinct_names"`
	Count         int64        `json:"count"`
	Users         []model.User `json:"users"`
}

// ReplaceReport holds the names in id order after the replace and the
// insert-ignore phases of ReplaceIntoUsers.
type ReplaceReport struct {
	AfterReplace []string `json:"after_replace"`
	AfterIgnore  []string `json:"after_ignore"`
}

// UserService defines the statements run against `users`.
type UserService interface {
	InsertDefaultValues(ctx context.Context) (int64, error)
	InsertSingleColumn(ctx context.Context) (int64, error)
	InsertMultipleColumns(ctx context.Context) (int64, error)
	InsertInsertableStruct(ctx context.Context) (int64, error)
	InsertInsertableStructOption(ctx context.Context) (int64, error)
	InsertSingleColumnBatch(ctx context.Context) (int64, error)
	// InsertSingleColumnBatchWithDefault sends (?), (DEFAULT) for `name`,
	// which has no default, so the database rejects it.
	InsertSingleColumnBatchWithDefault(ctx context.Context) (int64, error)
	InsertTupleBatch(ctx context.Context) (int64, error)
	InsertTupleBatchWithDefault(ctx context.Context) (int64, error)
	InsertInsertableStructBatch(ctx context.Context) (int64, error)

	// Insert runs one INSERT for rows and returns the affected-row count.
	Insert(ctx context.Context, rows ...query.Row) (int64, error)

	// InsertForm decodes a JSON object or array of objects and inserts it.
	InsertForm(ctx context.Context, data []byte) (int64, error)

	// CreateFromForm decodes and inserts like InsertForm, then reads the
	// inserted rows back.
	CreateFromForm(ctx context.Context, data []byte) ([]model.User, error)

	// InsertGetResults inserts rows and reads them back in insertion order
	// inside one transaction. The read-back assumes ids grow with insertion
	// order and that no other writer interleaves.
	InsertGetResults(ctx context.Context, rows ...query.Row) ([]model.User, error)

	// ExplicitReturning inserts a user with the given name and returns its id.
	ExplicitReturning(ctx context.Context, name string) (int32, error)

	Update(ctx context.Context, where query.Predicate, set ...query.Assignment) (int64, error)

	// UpdateUsers renames Rust to Ruby with yellow hair, then renames id 1
	// to James. It returns both affected-row counts.
	UpdateUsers(ctx context.Context) (renamed, byID int64, err error)

	Delete(ctx context.Context, where query.Predicate) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)

	// Select streams matching users. The sequence can be ranged once.
	Select(ctx context.Context, q repository.UserQuery) iter.Seq2[model.User, error]

	SomeUsers(ctx context.Context) (*UsersReport, error)
	AllUsers(ctx context.Context) ([]model.User, error)

	Replace(ctx context.Context, rows ...query.Row) (int64, error)
	InsertOrIgnore(ctx context.Context, rows ...query.Row) (int64, error)

	// ReplaceIntoUsers replaces ids 1 and 2, replaces id 1 again, then
	// attempts insert-ignore of the same ids.
	ReplaceIntoUsers(ctx context.Context) (*ReplaceReport, error)
}

type userService struct {
	tx    Transactor
	users repository.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(tx Transactor, users repository.UserRepository) UserService {
	return &userService{tx: tx, users: users}
}

func (s *userService) InsertDefaultValues(ctx context.Context) (int64, error) {
	return s.users.InsertDefault(ctx)
}

func (s *userService) InsertSingleColumn(ctx context.Context) (int64, error) {
	return s.users.Insert(ctx, query.R(schema.UserName.Eq("Sean")))
}

func (s *userService) InsertMultipleColumns(ctx context.Context) (int64, error) {
	return s.users.Insert(ctx, query.R(
		schema.UserName.Eq("Tess"),
		schema.UserHairColor.Eq("Brown"),
	))
}

func (s *userService) InsertInsertableStruct(ctx context.Context) (int64, error) {
	return s.InsertForm(ctx, []byte(userFormJSON))
}

func (s *userService) InsertInsertableStructOption(ctx context.Context) (int64, error) {
	return s.InsertForm(ctx, []byte(userFormOptionJSON))
}

func (s *userService) InsertSingleColumnBatch(ctx context.Context) (int64, error) {
	return s.users.Insert(ctx,
		query.R(schema.UserName.Eq("Sean")),
		query.R(schema.UserName.Eq("Tess")),
	)
}

func (s *userService) InsertSingleColumnBatchWithDefault(ctx context.Context) (int64, error) {
	return s.users.Insert(ctx, query.R(schema.UserName.Eq("Sean")), nil)
}

func (s *userService) InsertTupleBatch(ctx context.Context) (int64, error) {
	return s.users.Insert(ctx,
		query.R(schema.UserName.Eq("Sean"), schema.UserHairColor.Eq("Black")),
		query.R(schema.UserName.Eq("Tess"), schema.UserHairColor.Eq("Brown")),
	)
}

func (s *userService) InsertTupleBatchWithDefault(ctx context.Context) (int64, error) {
	return s.users.Insert(ctx,
		query.R(schema.UserName.Eq("Sean"), schema.UserHairColor.Eq("Black")),
		query.R(schema.UserName.Eq("Ruby"), schema.UserHairColor.Default()),
	)
}

func (s *userService) InsertInsertableStructBatch(ctx context.Context) (int64, error) {
	return s.InsertForm(ctx, []byte(userFormBatchJSON))
}

func (s *userService) Insert(ctx context.Context, rows ...query.Row) (int64, error) {
	return s.users.Insert(ctx, rows...)
}

func (s *userService) InsertForm(ctx context.Context, data []byte) (int64, error) {
	forms, err := DecodeUserForms(data)
	if err != nil {
		return 0, err
	}
	return s.users.Insert(ctx, FormRows(forms)...)
}

func (s *userService) CreateFromForm(ctx context.Context, data []byte) ([]model.User, error) {
	forms, err := DecodeUserForms(data)
	if err != nil {
		return nil, err
	}
	return s.InsertGetResults(ctx, FormRows(forms)...)
}

func (s *userService) InsertGetResults(ctx context.Context, rows ...query.Row) ([]model.User, error) {
	var inserted []model.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := s.users.Insert(ctx, rows...)
		if err != nil {
			return err
		}
		if n == 0 {
			inserted = []model.User{}
			return nil
		}
		latest, err := s.users.Latest(ctx, n)
		if err != nil {
			return fmt.Errorf("read back inserted users: %w", err)
		}
		slices.Reverse(latest)
		inserted = latest
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

func (s *userService) ExplicitReturning(ctx context.Context, name string) (int32, error) {
	var id int32
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.Insert(ctx, query.R(schema.UserName.Eq(name))); err != nil {
			return err
		}
		var err error
		id, err = s.users.LatestID(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *userService) Update(ctx context.Context, where query.Predicate, set ...query.Assignment) (int64, error) {
	return s.users.Update(ctx, where, set...)
}

func (s *userService) UpdateUsers(ctx context.Context) (int64, int64, error) {
	renamed, err := s.users.Update(ctx,
		schema.UserName.Eq("Rust"),
		schema.UserName.Eq("Ruby"),
		schema.UserHairColor.Eq("yellow"),
	)
	if err != nil {
		return 0, 0, fmt.Errorf("rename Rust to Ruby: %w", err)
	}
	byID, err := s.users.Update(ctx, schema.UserID.Eq(1), schema.UserName.Eq("James"))
	if err != nil {
		return renamed, 0, fmt.Errorf("rename user 1: %w", err)
	}
	return renamed, byID, nil
}

func (s *userService) Delete(ctx context.Context, where query.Predicate) (int64, error) {
	return s.users.Delete(ctx, where)
}

func (s *userService) DeleteAll(ctx context.Context) (int64, error) {
	return s.users.Delete(ctx, nil)
}

func (s *userService) Select(ctx context.Context, q repository.UserQuery) iter.Seq2[model.User, error] {
	return s.users.Find(ctx, q)
}

func (s *userService) SomeUsers(ctx context.Context) (*UsersReport, error) {
	names, err := s.users.Names(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("load names: %w", err)
	}
	distinct, err := s.users.Names(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("load distinct names: %w", err)
	}
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	users := make([]model.User, 0)
	for u, err := range s.users.Find(ctx, repository.UserQuery{
		Where:   schema.UserName.Eq("Ruby"),
		OrderBy: []query.Order{schema.UserCreatedAt.Desc(), schema.UserID.Desc()},
		Limit:   5,
	}) {
		if err != nil {
			return nil, fmt.Errorf("load users: %w", err)
		}
		users = append(users, u)
	}

	return &UsersReport{
		Names:         names,
		DistinctNames: distinct,
		Count:         count,
		Users:         users,
	}, nil
}

func (s *userService) AllUsers(ctx context.Context) ([]model.User, error) {
	return s.users.All(ctx)
}

func (s *userService) Replace(ctx context.Context, rows ...query.Row) (int64, error) {
	return s.users.Replace(ctx, rows...)
}

func (s *userService) InsertOrIgnore(ctx context.Context, rows ...query.Row) (int64, error) {
	return s.users.InsertIgnore(ctx, rows...)
}

func (s *userService) ReplaceIntoUsers(ctx context.Context) (*ReplaceReport, error) {
	idName := func(id int, name string) query.Row {
		return query.R(schema.UserID.Eq(id), schema.UserName.Eq(name))
	}

	if _, err := s.users.Replace(ctx, idName(1, "Sean2"), idName(2, "Tess2")); err != nil {
		return nil, err
	}
	if _, err := s.users.Replace(ctx, idName(1, "Jim")); err != nil {
		return nil, err
	}
	afterReplace, err := s.users.Names(ctx, false, schema.UserID.Asc())
	if err != nil {
		return nil, err
	}

	if _, err := s.users.InsertIgnore(ctx, idName(1, "Jim")); err != nil {
		return nil, err
	}
	if _, err := s.users.InsertIgnore(ctx, idName(1, "Sean"), idName(2, "Tess")); err != nil {
		return nil, err
	}
	afterIgnore, err := s.users.Names(ctx, false, schema.UserID.Asc())
	if err != nil {
		return nil, err
	}

	return &ReplaceReport{AfterReplace: afterReplace, AfterIgnore: afterIgnore}, nil
}
