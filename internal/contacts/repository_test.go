package contacts

import (
	"context"
	"errors"
	"testing"
	"time"
)

func sampleDraft(name string) Draft {
	return Draft{
		PersonalName: name,
		PhoneNumber:  "+1 555 010 2020",
		Email:        "lead@example.com",
		Services:     []string{"seo"},
	}
}

func TestInMemoryRepositoryCreateAssignsIdentity(t *testing.T) {
	repo := NewInMemoryRepository()
	before := time.Now().UTC()

	contact, err := repo.Create(context.Background(), sampleDraft("Sara Haddad"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if contact.ID == "" {
		t.Fatalf("expected id")
	}
	if contact.CreatedAt.Before(before) {
		t.Fatalf("createdAt %s before request start %s", contact.CreatedAt, before)
	}

	list, _ := repo.List(context.Background())
	if len(list) != 1 || list[0].ID != contact.ID {
		t.Fatalf("expected new contact at head of list, got %v", list)
	}
}

func TestInMemoryRepositoryNoDedupe(t *testing.T) {
	repo := NewInMemoryRepository()
	first, _ := repo.Create(context.Background(), sampleDraft("Sara Haddad"))
	second, _ := repo.Create(context.Background(), sampleDraft("Sara Haddad"))
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids for identical submissions")
	}
	list, _ := repo.List(context.Background())
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	if list[0].ID != second.ID {
		t.Fatalf("expected newest first")
	}
}

func TestInMemoryRepositoryDelete(t *testing.T) {
	repo := NewInMemoryRepository()
	contact, _ := repo.Create(context.Background(), sampleDraft("Sara Haddad"))

	if err := repo.Delete(context.Background(), contact.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(context.Background(), contact.ID); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(context.Background(), contact.ID); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestInMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := NewInMemoryRepository()
	contact, _ := repo.Create(context.Background(), sampleDraft("Sara Haddad"))
	contact.Services[0] = "mutated"

	stored, _ := repo.Get(context.Background(), contact.ID)
	if stored.Services[0] != "seo" {
		t.Fatalf("stored record was mutated through returned value")
	}
}
