package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"recipe_share/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func strPtr(s string) *string { return &s }

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name           string
		user           models.User
		mockExpect     func(sqlmock.Sqlmock)
		wantID         int
		wantErr        error
		errContainsStr string
	}{
		{
			name: "success with optional fields",
			user: models.User{Username: "ana", PasswordHash: "h123", ImageURL: strPtr("http://img"), Bio: strPtr("cook")},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("ana", "h123", "http://img", "cook").
					WillReturnResult(sqlmock.NewResult(1, 1))
				m.ExpectCommit()
			},
			wantID: 1,
		},
		{
			name: "success with null optionals",
			user: models.User{Username: "bob", PasswordHash: "h456"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("bob", "h456", nil, nil).
					WillReturnResult(sqlmock.NewResult(2, 1))
				m.ExpectCommit()
			},
			wantID: 2,
		},
		{
			name: "duplicate username rolls back",
			user: models.User{Username: "ana", PasswordHash: "h123"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("ana", "h123", nil, nil).
					WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.username"))
				m.ExpectRollback()
			},
			wantErr: ErrDuplicateUsername,
		},
		{
			name: "exec error rolls back",
			user: models.User{Username: "carol", PasswordHash: "h789"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("carol", "h789", nil, nil).
					WillReturnError(errors.New("db exec failed"))
				m.ExpectRollback()
			},
			errContainsStr: "insert user",
		},
		{
			name: "last insert id error rolls back",
			user: models.User{Username: "dave", PasswordHash: "h000"},
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectBegin()
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("dave", "h000", nil, nil).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no last id")))
				m.ExpectRollback()
			},
			errContainsStr: "get last insert id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			id, err := repo.Create(context.Background(), tt.user)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if tt.errContainsStr != "" {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				if id != 0 {
					t.Fatalf("expected id=0 on error, got %d", id)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Fatalf("unexpected id: want %d, got %d", tt.wantID, id)
			}
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	userColumns := []string{"id", "username", "password_hash", "image_url", "bio"}

	tests := []struct {
		name           string
		username       string
		mockExpect     func(sqlmock.Sqlmock)
		wantUser       *models.User
		errContainsStr string
	}{
		{
			name:     "found with null optionals",
			username: "ana",
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(userColumns).AddRow(7, "ana", "h123", nil, nil)
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
					WithArgs("ana").
					WillReturnRows(rows)
			},
			wantUser: &models.User{ID: 7, Username: "ana", PasswordHash: "h123"},
		},
		{
			name:     "found with optionals set",
			username: "bob",
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(userColumns).AddRow(8, "bob", "h456", "http://img", "baker")
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
					WithArgs("bob").
					WillReturnRows(rows)
			},
			wantUser: &models.User{ID: 8, Username: "bob", PasswordHash: "h456", ImageURL: strPtr("http://img"), Bio: strPtr("baker")},
		},
		{
			name:     "not found (ErrNoRows)",
			username: "missing",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantUser: nil,
		},
		{
			name:     "query error",
			username: "carol",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
					WithArgs("carol").
					WillReturnError(errors.New("db query failed"))
			},
			errContainsStr: "select user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			u, err := repo.GetByUsername(context.Background(), tt.username)

			if tt.errContainsStr != "" {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertUserEqual(t, u, tt.wantUser)
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	userColumns := []string{"id", "username", "password_hash", "image_url", "bio"}

	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	rows := sqlmock.NewRows(userColumns).AddRow(7, "ana", "h123", nil, "cook")
	mock.ExpectQuery(regexp.QuoteMeta(selectUserByIDSQL)).
		WithArgs(7).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(selectUserByIDSQL)).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	u, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertUserEqual(t, u, &models.User{ID: 7, Username: "ana", PasswordHash: "h123", Bio: strPtr("cook")})

	u, err = repo.GetByID(context.Background(), 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user for missing id, got %+v", u)
	}
}

func assertUserEqual(t *testing.T, got, want *models.User) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Fatalf("expected nil user, got %+v", got)
		}
		return
	}
	if got == nil {
		t.Fatalf("expected user, got nil")
	}
	if got.ID != want.ID || got.Username != want.Username || got.PasswordHash != want.PasswordHash {
		t.Fatalf("unexpected user: want %+v, got %+v", want, got)
	}
	if !strPtrEqual(got.ImageURL, want.ImageURL) {
		t.Fatalf("unexpected image_url: want %v, got %v", want.ImageURL, got.ImageURL)
	}
	if !strPtrEqual(got.Bio, want.Bio) {
		t.Fatalf("unexpected bio: want %v, got %v", want.Bio, got.Bio)
	}
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
