package model

import "time"

// CareerSubmission is one CV portal entry.
type CareerSubmission struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Expertise  string    `json:"expertise"`
	Message    *string   `json:"message"`
	CVFileName *string   `json:"cv_file_name"`
	CVFilePath *string   `json:"cv_file_path"`
	CreatedAt  time.Time `json:"created_at"`
}

// HasCV reports whether a CV was stored with the submission.
func (c *CareerSubmission) HasCV() bool {
	return c.CVFilePath != nil && *c.CVFilePath != ""
}

// AttachCV records the stored CV on the submission.
func (c *CareerSubmission) AttachCV(f StoredFile) {
	name, key := f.OriginalName, f.Key
	c.CVFileName = &name
	c.CVFilePath = &key
}

// MessageText returns the optional message or "".
func (c *CareerSubmission) MessageText() string {
	if c.Message == nil {
		return ""
	}
	return *c.Message
}
