package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hardrock-co/agency-platform/internal/access"
	"github.com/hardrock-co/agency-platform/internal/contacts"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

type contactLister interface {
	List(ctx context.Context) ([]*contacts.Contact, error)
	Delete(ctx context.Context, id string) error
}

// DashboardContactsHandler serves the staff contact list and deletion.
type DashboardContactsHandler struct {
	contacts contactLister
	logger   *logging.Logger
}

// NewDashboardContactsHandler creates a handler over the contact service.
func NewDashboardContactsHandler(svc contactLister, logger *logging.Logger) *DashboardContactsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardContactsHandler{contacts: svc, logger: logger}
}

// ContactListResponse is the body of GET /dashboard/contacts.
type ContactListResponse struct {
	Contacts []*contacts.Contact `json:"contacts"`
	Count    int                 `json:"count"`
}

// List returns every stored submission, newest first.
// GET /dashboard/contacts
func (h *DashboardContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, err := access.RequireView(r.Context()); err != nil {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	list, err := h.contacts.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list contacts", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list contacts")
		return
	}
	if list == nil {
		list = []*contacts.Contact{}
	}
	writeJSON(w, http.StatusOK, ContactListResponse{Contacts: list, Count: len(list)})
}

// Delete removes one submission. Admin only.
// DELETE /dashboard/contacts/{id}
func (h *DashboardContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := access.RequireDelete(r.Context())
	if err != nil {
		h.logger.Warn("contact delete rejected",
			"subject", principal.Subject,
			"role", string(principal.Role),
		)
		writeError(w, http.StatusForbidden, "only admins can delete contacts")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.contacts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, contacts.ErrContactNotFound) {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		h.logger.Error("failed to delete contact", "contact_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete contact")
		return
	}

	h.logger.Info("contact deleted by staff", "contact_id", id, "subject", principal.Subject)
	w.WriteHeader(http.StatusNoContent)
}
