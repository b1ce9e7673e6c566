package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"github.com/devconsult/backend/internal/gate"
	"github.com/devconsult/backend/internal/service"
	"github.com/devconsult/backend/internal/view"
	"github.com/devconsult/backend/pkg/auth"
)

const dashboardPath = "/admin"

// DashboardHandler serves the server-rendered admin pages. Every request
// runs the gate again; nothing about the role is remembered between requests.
type DashboardHandler struct {
	gate  *gate.Gate
	files *AdminHandler
	cfg   DashboardConfig
}

// DashboardConfig holds the page settings.
type DashboardConfig struct {
	CookieName       string
	LoginURL         string
	CVBucket         string
	AttachmentBucket string
	BootstrapEnabled bool
}

// NewDashboardHandler creates a DashboardHandler. files provides the admin
// service, viewer and download signer.
func NewDashboardHandler(g *gate.Gate, files *AdminHandler, cfg DashboardConfig) *DashboardHandler {
	return &DashboardHandler{gate: g, files: files, cfg: cfg}
}

func (h *DashboardHandler) decide(r *http.Request) gate.Decision {
	return h.gate.Evaluate(r.Context(), auth.TokenFromRequest(r, h.cfg.CookieName))
}

func (h *DashboardHandler) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := h.cfg.LoginURL
	u, err := url.Parse(target)
	if err == nil {
		q := u.Query()
		q.Set("next", dashboardPath)
		u.RawQuery = q.Encode()
		target = u.String()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *DashboardHandler) denied(w http.ResponseWriter, r *http.Request, userID, notice string, status int) {
	w.Header().Set("Cache-Control", "no-store")
	page := view.AccessDenied(view.DeniedData{
		UserID:           userID,
		BootstrapEnabled: h.cfg.BootstrapEnabled,
		Notice:           notice,
	})
	templ.Handler(page, templ.WithStatus(status)).ServeHTTP(w, r)
}

// Show handles GET /admin.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	d := h.decide(r)
	if d.State == gate.StateUnauthenticated {
		h.redirectToLogin(w, r)
		return
	}
	if !d.Authorized() {
		h.denied(w, r, d.UserID, "", http.StatusForbidden)
		return
	}

	subs := h.files.viewer.FetchAll(r.Context())
	data := view.DashboardData{
		UserID:       d.UserID,
		Contacts:     make([]view.ContactRow, 0, len(subs.Contacts)),
		Careers:      make([]view.CareerRow, 0, len(subs.Careers)),
		FailedTables: subs.ErrorTables(),
	}
	for _, c := range subs.Contacts {
		row := view.ContactRow{ContactSubmission: c}
		if c.HasAttachment() {
			row.DownloadURL = fileLink(h.cfg.AttachmentBucket, *c.FilePath, deref(c.FileName))
		}
		data.Contacts = append(data.Contacts, row)
	}
	for _, c := range subs.Careers {
		row := view.CareerRow{CareerSubmission: c}
		if c.HasCV() {
			row.DownloadURL = fileLink(h.cfg.CVBucket, *c.CVFilePath, deref(c.CVFileName))
		}
		data.Careers = append(data.Careers, row)
	}

	w.Header().Set("Cache-Control", "no-store")
	templ.Handler(view.Dashboard(data)).ServeHTTP(w, r)
}

// Bootstrap handles POST /admin/bootstrap, the form on the Access Denied page.
func (h *DashboardHandler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	d := h.decide(r)
	switch d.State {
	case gate.StateUnauthenticated:
		h.redirectToLogin(w, r)
		return
	case gate.StateAuthorized:
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	if err := r.ParseForm(); err != nil {
		h.denied(w, r, d.UserID, "The form could not be read.", http.StatusBadRequest)
		return
	}

	_, err := h.files.adminService.BootstrapAdmin(r.Context(), d.UserID, r.PostFormValue("secret"))
	if err == nil {
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
		return
	}

	status, _ := bootstrapErrorStatus(err)
	switch {
	case errors.Is(err, service.ErrInvalidBootstrapSecret):
		h.denied(w, r, d.UserID, "Invalid bootstrap secret.", status)
	case errors.Is(err, service.ErrBootstrapUnavailable):
		h.denied(w, r, d.UserID, "Admin bootstrap is no longer available.", status)
	default:
		slog.Error("admin bootstrap failed", "user_id", d.UserID, "error", err)
		h.denied(w, r, d.UserID, "Bootstrap failed. Please try again.", status)
	}
}

// File handles GET /admin/files/{bucket}?key=&name= by redirecting an
// authorized admin to a freshly signed download URL.
func (h *DashboardHandler) File(w http.ResponseWriter, r *http.Request) {
	d := h.decide(r)
	if d.State == gate.StateUnauthenticated {
		h.redirectToLogin(w, r)
		return
	}
	if !d.Authorized() {
		h.denied(w, r, d.UserID, "", http.StatusForbidden)
		return
	}

	link, _, status, code := h.files.signFile(r)
	if status != 0 {
		writeError(w, status, code)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, link, http.StatusFound)
}

func fileLink(bucket, key, name string) string {
	q := url.Values{}
	q.Set("key", key)
	if name != "" {
		q.Set("name", name)
	}
	return dashboardPath + "/files/" + url.PathEscape(bucket) + "?" + q.Encode()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
