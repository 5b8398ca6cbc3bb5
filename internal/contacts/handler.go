package contacts

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/hardrock-co/agency-platform/pkg/logging"
)

const maxBodyBytes = 64 << 10

// Handler handles HTTP requests for the public contact form
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new contacts handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ValidationResponse is the 422 body.
type ValidationResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// Submit handles POST /contact requests
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	locale := LocaleFromRequest(r)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	input, err := decodeInput(r)
	if err != nil {
		h.logger.Warn("failed to decode contact submission", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	contact, err := h.service.Submit(r.Context(), input, locale)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, ValidationResponse{
				Message: locale.message(msgInvalidData),
				Errors:  verr.Fields,
			})
			return
		}
		http.Error(w, locale.message(msgStoreFailed), http.StatusInternalServerError)
		return
	}

	w.Header().Set("X-Contact-Id", contact.ID)
	if referer := r.Referer(); referer != "" && strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, referer, http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeInput(r *http.Request) (map[string]any, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		input := make(map[string]any, len(r.PostForm))
		for key, values := range r.PostForm {
			name := strings.TrimSuffix(key, "[]")
			if name == FieldServices {
				list, _ := input[FieldServices].([]any)
				for _, v := range values {
					list = append(list, v)
				}
				input[FieldServices] = list
				continue
			}
			if len(values) > 0 {
				input[name] = values[0]
			}
		}
		return input, nil
	default:
		var input map[string]any
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			return nil, err
		}
		if input == nil {
			return nil, errors.New("contacts: request body must be a JSON object")
		}
		return input, nil
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
