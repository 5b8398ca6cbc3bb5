package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardrock-co/agency-platform/internal/access"
	"github.com/hardrock-co/agency-platform/internal/contacts"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

func seedContacts(t *testing.T, names ...string) *contacts.InMemoryRepository {
	t.Helper()
	repo := contacts.NewInMemoryRepository()
	for _, name := range names {
		_, err := repo.Create(context.Background(), contacts.Draft{
			PersonalName: name,
			PhoneNumber:  "+971 50 123 4567",
			Email:        "lead@example.com",
			Services:     []string{"branding"},
		})
		require.NoError(t, err)
	}
	return repo
}

func asRole(req *http.Request, role access.Role) *http.Request {
	ctx := access.WithPrincipal(req.Context(), access.Principal{Subject: "user-1", Name: "Staff", Role: role})
	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestDashboardContactsList_NewestFirst(t *testing.T) {
	repo := seedContacts(t, "Sara Haddad", "Omar Khalil")
	handler := NewDashboardContactsHandler(repo, logging.Discard())

	req := asRole(httptest.NewRequest(http.MethodGet, "/dashboard/contacts", nil), access.RoleStaff)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ContactListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Contacts, 2)
	assert.Equal(t, "Omar Khalil", resp.Contacts[0].PersonalName)
	assert.Equal(t, "Sara Haddad", resp.Contacts[1].PersonalName)
}

func TestDashboardContactsList_EmptyIsArray(t *testing.T) {
	handler := NewDashboardContactsHandler(contacts.NewInMemoryRepository(), logging.Discard())

	req := asRole(httptest.NewRequest(http.MethodGet, "/dashboard/contacts", nil), access.RoleAdmin)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"contacts":[],"count":0}`, rec.Body.String())
}

func TestDashboardContactsList_NoPrincipal(t *testing.T) {
	handler := NewDashboardContactsHandler(contacts.NewInMemoryRepository(), logging.Discard())

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/dashboard/contacts", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDashboardContactsDelete_StaffForbidden(t *testing.T) {
	repo := seedContacts(t, "Sara Haddad")
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	id := list[0].ID

	handler := NewDashboardContactsHandler(repo, logging.Discard())
	req := httptest.NewRequest(http.MethodDelete, "/dashboard/contacts/"+id, nil)
	req = asRole(withURLParam(req, "id", id), access.RoleStaff)
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	after, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, after, 1)
}

func TestDashboardContactsDelete_AdminRemoves(t *testing.T) {
	repo := seedContacts(t, "Sara Haddad", "Omar Khalil")
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	id := list[0].ID

	handler := NewDashboardContactsHandler(repo, logging.Discard())
	req := httptest.NewRequest(http.MethodDelete, "/dashboard/contacts/"+id, nil)
	req = asRole(withURLParam(req, "id", id), access.RoleAdmin)
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, err = repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, contacts.ErrContactNotFound)
	after, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, after, 1)
}

func TestDashboardContactsDelete_UnknownID(t *testing.T) {
	repo := seedContacts(t, "Sara Haddad")
	handler := NewDashboardContactsHandler(repo, logging.Discard())

	for _, id := range []string{"9b2f5a3e-0000-4000-8000-000000000000", "not-a-uuid"} {
		req := httptest.NewRequest(http.MethodDelete, "/dashboard/contacts/"+id, nil)
		req = asRole(withURLParam(req, "id", id), access.RoleAdmin)
		rec := httptest.NewRecorder()
		handler.Delete(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
	}

	after, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, after, 1)
}

type brokenLister struct{}

func (brokenLister) List(context.Context) ([]*contacts.Contact, error) {
	return nil, errors.New("db down")
}

func (brokenLister) Delete(context.Context, string) error {
	return errors.New("db down")
}

func TestDashboardContacts_StorageErrors(t *testing.T) {
	handler := NewDashboardContactsHandler(brokenLister{}, logging.Discard())

	rec := httptest.NewRecorder()
	handler.List(rec, asRole(httptest.NewRequest(http.MethodGet, "/dashboard/contacts", nil), access.RoleAdmin))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")

	req := httptest.NewRequest(http.MethodDelete, "/dashboard/contacts/x", nil)
	req = asRole(withURLParam(req, "id", "x"), access.RoleAdmin)
	rec = httptest.NewRecorder()
	handler.Delete(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
