package handler

import (
	"encoding/json"
	"net/http"

	"github.com/devconsult/backend/internal/service"
	"github.com/devconsult/backend/internal/validation"
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
	maxUpload      int64
}

// NewContactHandler creates a ContactHandler. Attachments above maxUpload bytes are rejected.
func NewContactHandler(contactService service.ContactService, maxUpload int64) *ContactHandler {
	return &ContactHandler{contactService: contactService, maxUpload: maxUpload}
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact.
// Accepts JSON, or multipart/form-data with an optional "attachment" file.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var (
		in         validation.ContactInput
		attachment *service.Upload
	)

	if isMultipart(r) {
		cleanup, err := parseMultipart(w, r, h.maxUpload)
		defer cleanup()
		if err != nil {
			writeFormError(w, err)
			return
		}
		in = validation.ContactInput{
			Name:    r.FormValue("name"),
			Email:   r.FormValue("email"),
			Message: r.FormValue("message"),
		}
		upload, file, err := formUpload(r, "attachment", h.maxUpload)
		if err != nil {
			writeFormError(w, err)
			return
		}
		if file != nil {
			defer file.Close()
		}
		attachment = upload
	} else {
		var req submitRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, formOverhead)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		in = validation.ContactInput{Name: req.Name, Email: req.Email, Message: req.Message}
	}

	sub, err := h.contactService.Submit(r.Context(), in, attachment)
	if err != nil {
		writeSubmitError(w, "contact", err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		ID:      sub.ID,
		Title:   "Thanks!",
		Message: "We'll get back to you shortly.",
	})
}
