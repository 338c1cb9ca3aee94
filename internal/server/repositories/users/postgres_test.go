package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/storehub/internal/common"
	"github.com/dmitrijs2005/storehub/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

var columns = []string{"id", "username", "password_hash", "contact", "address", "role",
	"image_key", "google_auth_access_token", "store_id", "created_at"}

var created = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func bobRow() *sqlmock.Rows {
	return sqlmock.NewRows(columns).
		AddRow("u-1", "bob", "hash", "555", "street", "customer", "img/1", "", "", created)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*username,\s*password_hash,.*\)\s*VALUES\s*\(\$1,.*\$9\)\s*RETURNING\s+created_at$`

	mock.ExpectQuery(q).
		WithArgs("u-1", "bob", "hash", "", "", "customer", "", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	got, err := repo.Create(context.Background(), &models.User{ID: "u-1", UserName: "bob", PasswordHash: "hash", Role: "customer"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-1" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_AssignsID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	got, err := repo.Create(context.Background(), &models.User{UserName: "bob", Role: "customer"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.User{UserName: "bob"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{UserName: "bob"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByNameAndRole_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s+AND\s+role\s*=\s*\$2$`
	mock.ExpectQuery(q).WithArgs("bob", "customer").WillReturnRows(bobRow())

	got, err := repo.GetByNameAndRole(context.Background(), "bob", "customer")
	if err != nil {
		t.Fatalf("GetByNameAndRole error: %v", err)
	}
	if got.ID != "u-1" || got.PasswordHash != "hash" || got.ImageKey != "img/1" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`
	mock.ExpectQuery(q).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByName_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+username\s*=\s*\$1$`
	mock.ExpectQuery(q).WithArgs("bob").WillReturnRows(bobRow())

	got, err := repo.GetByName(context.Background(), "bob")
	if err != nil || got.UserName != "bob" {
		t.Fatalf("GetByName = %+v, %v", got, err)
	}
}

func TestList_OmitsImage(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "contact", "address", "role",
		"google_auth_access_token", "store_id", "created_at"}).
		AddRow("u-1", "bob", "h", "", "", "customer", "", "", created).
		AddRow("u-2", "amy", "h", "", "", "merchant", "", "s-1", created)
	mock.ExpectQuery(`(?s)^SELECT\s+id,.*store_id,\s*created_at\s+FROM\s+users\s+ORDER\s+BY`).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[1].StoreID != "s-1" {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestList_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT`).WillReturnError(errors.New("boom"))

	if _, err := repo.List(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT\s+COUNT\(\*\)\s+FROM\s+users$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := repo.Count(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}

func TestUpdateProfile_KeepsImageWhenEmpty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+users\s+SET\s+username\s*=\s*\$2,\s*image_key\s*=\s*COALESCE\(NULLIF\(\$3,\s*''\),\s*image_key\)\s+WHERE\s+id\s*=\s*\$1\s+RETURNING`
	mock.ExpectQuery(q).WithArgs("u-1", "bobby", "").WillReturnRows(bobRow())

	if _, err := repo.UpdateProfile(context.Background(), "u-1", "bobby", ""); err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
}

func TestUpdateProfile_NameTaken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+users`).WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.UpdateProfile(context.Background(), "u-1", "amy", "")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want ErrorAlreadyExists, got %v", err)
	}
}

func TestUpdateStore_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+users\s+SET\s+store_id\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1`
	mock.ExpectQuery(q).WithArgs("ghost", "s-1").WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateStore(context.Background(), "ghost", "s-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestSetGoogleToken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+users\s+SET\s+google_auth_access_token\s*=\s*\$3\s+WHERE\s+username\s*=\s*\$1\s+AND\s+role\s*=\s*\$2`
	mock.ExpectQuery(q).WithArgs("bob", "customer", "tok").WillReturnRows(bobRow())

	if _, err := repo.SetGoogleToken(context.Background(), "bob", "customer", "tok"); err != nil {
		t.Fatalf("SetGoogleToken error: %v", err)
	}
}

func TestDelete_ReturnsDeleted(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s+RETURNING`).
		WithArgs("u-1").WillReturnRows(bobRow())

	got, err := repo.Delete(context.Background(), "u-1")
	if err != nil || got.ID != "u-1" {
		t.Fatalf("Delete = %+v, %v", got, err)
	}
}
