// Package view renders the admin dashboard pages.
package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/devconsult/backend/internal/model"
)

const dateLayout = "Jan 2, 2006 15:04"

// ContactRow is one contact submission plus its attachment link.
type ContactRow struct {
	*model.ContactSubmission
	DownloadURL string
}

// CareerRow is one career submission plus its CV link.
type CareerRow struct {
	*model.CareerSubmission
	DownloadURL string
}

// DashboardData is everything the dashboard page shows.
type DashboardData struct {
	UserID   string
	Contacts []ContactRow
	Careers  []CareerRow
	// FailedTables lists tables that could not be loaded.
	FailedTables []string
}

// DeniedData is the access denied page.
type DeniedData struct {
	UserID           string
	BootstrapEnabled bool
	// Notice is shown above the form, e.g. after a failed bootstrap attempt.
	Notice string
}

type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) rawf(format string, args ...any) {
	if w.err == nil {
		_, w.err = fmt.Fprintf(w.w, format, args...)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func page(title string, body func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\">")
		w.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		w.raw("<meta name=\"robots\" content=\"noindex\"><title>")
		w.text(title)
		w.raw("</title></head><body><main>")
		body(w)
		w.raw("</main></body></html>\n")
		return w.err
	})
}

// Dashboard renders both submission tables.
func Dashboard(d DashboardData) templ.Component {
	return page("Admin Dashboard", func(w *writer) {
		w.raw("<h1>Admin Dashboard</h1>")
		w.raw("<p>View and manage contact form submissions and CV uploads.</p>")

		for _, table := range d.FailedTables {
			w.raw(`<div class="alert error" role="alert">Failed to load `)
			w.text(strings.ReplaceAll(table, "_", " "))
			w.raw(".</div>")
		}

		w.rawf("<section id=\"contact\"><h2>Contact Submissions (%d)</h2>", len(d.Contacts))
		if len(d.Contacts) == 0 {
			w.raw("<p>No contact submissions yet.</p>")
		}
		for _, c := range d.Contacts {
			w.raw(`<article class="submission"><h3>`)
			w.text(c.Name)
			w.raw(`</h3><p><a href="mailto:`)
			w.text(c.Email)
			w.raw(`">`)
			w.text(c.Email)
			w.raw("</a></p><time>")
			w.text(c.CreatedAt.Format(dateLayout))
			w.raw(`</time><p class="message">`)
			w.text(c.Message)
			w.raw("</p>")
			if c.HasAttachment() && c.FileName != nil {
				w.raw(`<p>Attachment: <a href="`)
				w.text(c.DownloadURL)
				w.raw(`" download>`)
				w.text(*c.FileName)
				w.raw("</a></p>")
			}
			w.raw("</article>")
		}
		w.raw("</section>")

		w.rawf("<section id=\"careers\"><h2>CV Submissions (%d)</h2>", len(d.Careers))
		if len(d.Careers) == 0 {
			w.raw("<p>No CV submissions yet.</p>")
		}
		for _, c := range d.Careers {
			w.raw(`<article class="submission"><h3>`)
			w.text(c.Name)
			w.raw(`</h3><p><a href="mailto:`)
			w.text(c.Email)
			w.raw(`">`)
			w.text(c.Email)
			w.raw("</a></p><time>")
			w.text(c.CreatedAt.Format(dateLayout))
			w.raw("</time><p><strong>Areas of Expertise:</strong> ")
			w.text(c.Expertise)
			w.raw("</p>")
			if msg := c.MessageText(); msg != "" {
				w.raw(`<p class="message">`)
				w.text(msg)
				w.raw("</p>")
			}
			if c.HasCV() && c.CVFileName != nil {
				w.raw("<p>CV uploaded: ")
				w.text(*c.CVFileName)
				w.raw(` <a href="`)
				w.text(c.DownloadURL)
				w.raw(`" download>Download CV</a></p>`)
			}
			w.raw("</article>")
		}
		w.raw("</section>")
	})
}

// AccessDenied is shown to signed-in users without the admin role.
func AccessDenied(d DeniedData) templ.Component {
	return page("Access Denied", func(w *writer) {
		w.raw("<h1>Access Denied</h1>")
		w.raw("<p>You do not have permission to view this page.</p>")
		if d.UserID != "" {
			w.raw("<p>Signed in as <code>")
			w.text(d.UserID)
			w.raw("</code></p>")
		}
		if d.Notice != "" {
			w.raw(`<div class="alert" role="alert">`)
			w.text(d.Notice)
			w.raw("</div>")
		}
		if d.BootstrapEnabled {
			w.raw(`<form method="post" action="/admin/bootstrap">`)
			w.raw(`<p>If this is a new installation, enter the bootstrap secret to become the first administrator.</p>`)
			w.raw(`<label for="secret">Bootstrap secret</label>`)
			w.raw(`<input id="secret" name="secret" type="password" autocomplete="off" required>`)
			w.raw(`<button type="submit">Grant admin access</button></form>`)
		}
	})
}
