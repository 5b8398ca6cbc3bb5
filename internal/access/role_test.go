package access

import (
	"context"
	"errors"
	"testing"
)

func TestCapabilities(t *testing.T) {
	cases := []struct {
		role      Role
		canView   bool
		canDelete bool
	}{
		{RoleStaff, true, false},
		{RoleAdmin, true, true},
		{Role("guest"), false, false},
		{Role(""), false, false},
	}
	for _, tc := range cases {
		if got := CanView(tc.role); got != tc.canView {
			t.Errorf("CanView(%q) = %v, want %v", tc.role, got, tc.canView)
		}
		if got := CanDelete(tc.role); got != tc.canDelete {
			t.Errorf("CanDelete(%q) = %v, want %v", tc.role, got, tc.canDelete)
		}
	}
}

func TestParseRole(t *testing.T) {
	if role, ok := ParseRole(" Admin "); !ok || role != RoleAdmin {
		t.Fatalf("expected admin, got %q %v", role, ok)
	}
	if role, ok := ParseRole("staff"); !ok || role != RoleStaff {
		t.Fatalf("expected staff, got %q %v", role, ok)
	}
	if _, ok := ParseRole("owner"); ok {
		t.Fatal("expected unknown role to be rejected")
	}
}

func TestRequireDelete(t *testing.T) {
	if _, err := RequireDelete(context.Background()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden without principal, got %v", err)
	}

	staff := WithPrincipal(context.Background(), Principal{Subject: "u1", Role: RoleStaff})
	if _, err := RequireView(staff); err != nil {
		t.Fatalf("staff should view: %v", err)
	}
	if _, err := RequireDelete(staff); !errors.Is(err, ErrForbidden) {
		t.Fatalf("staff should not delete, got %v", err)
	}

	admin := WithPrincipal(context.Background(), Principal{Subject: "u2", Role: RoleAdmin})
	p, err := RequireDelete(admin)
	if err != nil {
		t.Fatalf("admin should delete: %v", err)
	}
	if p.Subject != "u2" {
		t.Fatalf("unexpected principal %+v", p)
	}
}
