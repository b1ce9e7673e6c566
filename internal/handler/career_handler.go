package handler

import (
	"encoding/json"
	"net/http"

	"github.com/devconsult/backend/internal/service"
	"github.com/devconsult/backend/internal/validation"
)

// CareerHandler handles CV portal submissions.
type CareerHandler struct {
	careerService service.CareerService
	maxUpload     int64
}

func NewCareerHandler(careerService service.CareerService, maxUpload int64) *CareerHandler {
	return &CareerHandler{careerService: careerService, maxUpload: maxUpload}
}

type careerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Expertise string `json:"expertise"`
	Message   string `json:"message"`
	Consent   bool   `json:"consent"`
}

// Submit handles POST /api/careers.
// Accepts multipart/form-data with an optional "cv" file, or JSON without a file.
func (h *CareerHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var (
		in validation.CareerInput
		cv *service.Upload
	)

	if isMultipart(r) {
		cleanup, err := parseMultipart(w, r, h.maxUpload)
		defer cleanup()
		if err != nil {
			writeFormError(w, err)
			return
		}
		in = validation.CareerInput{
			Name:      r.FormValue("name"),
			Email:     r.FormValue("email"),
			Expertise: r.FormValue("expertise"),
			Message:   r.FormValue("message"),
			Consent:   parseConsent(r.FormValue("consent")),
		}
		upload, file, err := formUpload(r, "cv", h.maxUpload)
		if err != nil {
			writeFormError(w, err)
			return
		}
		if file != nil {
			defer file.Close()
		}
		cv = upload
	} else {
		var req careerRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, formOverhead)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		in = validation.CareerInput(req)
	}

	sub, err := h.careerService.Submit(r.Context(), in, cv)
	if err != nil {
		writeSubmitError(w, "career", err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		ID:      sub.ID,
		Title:   "CV submitted",
		Message: "Thanks for your interest! We'll be in touch.",
	})
}
