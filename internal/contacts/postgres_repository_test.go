package contacts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	draft := sampleDraft("Sara Haddad")
	mock.ExpectQuery("INSERT INTO contacts").
		WithArgs(pgxmock.AnyArg(), draft.PersonalName, pgxmock.AnyArg(), draft.PhoneNumber, draft.Email, draft.Services, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))

	repo := NewPostgresRepository(mock)
	contact, err := repo.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uuid.Parse(contact.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", contact.ID)
	}
	if !contact.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at from database, got %s", contact.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresRepositoryCreateWrapsError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery("INSERT INTO contacts").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(boom)

	_, err = NewPostgresRepository(mock).Create(context.Background(), sampleDraft("Sara Haddad"))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}

func TestPostgresRepositoryListNewestFirst(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	company := "Haddad Trading"
	newer := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)
	rows := pgxmock.NewRows([]string{"id", "personal_name", "company_name", "phone_number", "email", "services", "more_details", "created_at"}).
		AddRow("b1", "Omar Nasser", &company, "+971 4 123 4567", "omar@example.com", []string{"seo"}, (*string)(nil), newer).
		AddRow("a1", "Sara Haddad", (*string)(nil), "+966 55 123 4567", "sara@example.com", []string{}, (*string)(nil), older)
	mock.ExpectQuery("SELECT (.+) FROM contacts ORDER BY created_at DESC").WillReturnRows(rows)

	list, err := NewPostgresRepository(mock).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "b1" || list[1].ID != "a1" {
		t.Fatalf("unexpected list %+v", list)
	}
	if list[0].CompanyName == nil || *list[0].CompanyName != company {
		t.Fatalf("expected company on first row")
	}
	if list[1].CompanyName != nil {
		t.Fatalf("expected nil company on second row")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresRepositoryDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	id := uuid.New().String()
	missing := uuid.New().String()
	mock.ExpectExec("DELETE FROM contacts").WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM contacts").WithArgs(missing).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewPostgresRepository(mock)
	if err := repo.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(context.Background(), missing); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := repo.Delete(context.Background(), "not-a-uuid"); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected not found for malformed id, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresRepositoryGetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	id := uuid.New().String()
	mock.ExpectQuery("SELECT (.+) FROM contacts WHERE id").WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "personal_name", "company_name", "phone_number", "email", "services", "more_details", "created_at"}))

	if _, err := NewPostgresRepository(mock).Get(context.Background(), id); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
