package view

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/devconsult/backend/internal/model"
)

func strPtr(s string) *string { return &s }

func TestDashboard_EscapesAndLinks(t *testing.T) {
	created := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := Dashboard(DashboardData{
		Contacts: []ContactRow{{
			ContactSubmission: &model.ContactSubmission{
				Name: "<b>Jane</b>", Email: "jane@example.com", Message: "hi & bye",
				FileName: strPtr("brief.pdf"), FilePath: strPtr("1-a.pdf"), CreatedAt: created,
			},
			DownloadURL: "/api/files/tok?x=1&y=2",
		}},
		Careers: []CareerRow{{
			CareerSubmission: &model.CareerSubmission{Name: "Amara", Email: "a@b.co", Expertise: "Trade", CreatedAt: created},
		}},
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"&lt;b&gt;Jane&lt;/b&gt;",
		"hi &amp; bye",
		`href="/api/files/tok?x=1&amp;y=2"`,
		"Contact Submissions (1)",
		"CV Submissions (1)",
		"Feb 1, 2026 09:30",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	if strings.Contains(out, "<b>Jane</b>") {
		t.Error("expected raw markup to be escaped")
	}
	if strings.Contains(out, "Download CV") {
		t.Error("expected no CV link without a stored CV")
	}
}

func TestDashboard_FailedTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Dashboard(DashboardData{FailedTables: []string{"career_submissions"}}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Failed to load career submissions") {
		t.Errorf("expected failure banner, got %s", out)
	}
	if !strings.Contains(out, "No contact submissions yet.") {
		t.Error("expected the other table to still render")
	}
}

func TestAccessDenied_BootstrapForm(t *testing.T) {
	var buf bytes.Buffer
	if err := AccessDenied(DeniedData{UserID: "u-1", BootstrapEnabled: true, Notice: "Invalid secret"}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Access Denied", `action="/admin/bootstrap"`, "Invalid secret", "u-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}

	buf.Reset()
	if err := AccessDenied(DeniedData{}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "<form") {
		t.Error("expected no form when bootstrap is disabled")
	}
}
