package notify

import (
	"fmt"
	"strings"
	"time"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// EscapeHTML escapes & < > " ' and / for interpolation into an email body.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// multiline escapes s and turns line breaks into <br>.
func multiline(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(EscapeHTML(s), "\n", "<br>")
}

// subjectSafe keeps user input on a single header line.
func subjectSafe(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

const submittedAtLayout = "Jan 2, 2006, 3:04 PM MST"

// Message is a composed notification email.
type Message struct {
	Subject string
	HTML    string
}

// ComposeContact renders the operator email for a contact submission.
func ComposeContact(n ContactNotification, dashboardURL string, at time.Time) Message {
	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission</h2>\n")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>\n", EscapeHTML(n.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", EscapeHTML(n.Email))
	b.WriteString("<p><strong>Message:</strong></p>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", multiline(n.Message))
	if n.FileName != nil && *n.FileName != "" {
		fmt.Fprintf(&b, "<p><strong>Attachment:</strong> %s</p>\n", EscapeHTML(*n.FileName))
		if dashboardURL != "" {
			fmt.Fprintf(&b, "<p><a href=\"%s\" target=\"_blank\">View in Admin Dashboard</a></p>\n", EscapeHTML(dashboardURL))
		}
	}
	b.WriteString("<hr>\n")
	fmt.Fprintf(&b, "<p><small>Submitted at: %s</small></p>\n", at.Format(submittedAtLayout))

	return Message{
		Subject: "New Contact Form Submission from " + subjectSafe(n.Name),
		HTML:    b.String(),
	}
}

// ComposeCareer renders the operator email for a career submission.
func ComposeCareer(n CareerNotification, at time.Time) Message {
	var b strings.Builder
	b.WriteString("<h2>New Career Application Received</h2>\n")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>\n", EscapeHTML(n.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", EscapeHTML(n.Email))
	fmt.Fprintf(&b, "<p><strong>Areas of Expertise:</strong> %s</p>\n", EscapeHTML(n.Expertise))
	if n.Message != nil && *n.Message != "" {
		fmt.Fprintf(&b, "<p><strong>Message:</strong></p><p>%s</p>\n", multiline(*n.Message))
	}
	if n.CVFileName != nil && *n.CVFileName != "" {
		fmt.Fprintf(&b, "<p><strong>CV File:</strong> %s</p>\n", EscapeHTML(*n.CVFileName))
	} else {
		b.WriteString("<p><em>No CV file uploaded</em></p>\n")
	}
	b.WriteString("<hr>\n")
	fmt.Fprintf(&b, "<p><small>Submitted at: %s</small></p>\n", at.Format(submittedAtLayout))

	return Message{
		Subject: "New Career Application from " + subjectSafe(n.Name),
		HTML:    b.String(),
	}
}
