package model

import "time"

// ContactSubmission is one entry of the public contact form.
// FileName and FilePath are either both set (an attachment was uploaded) or both nil.
type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	FileName  *string   `json:"file_name"`
	FilePath  *string   `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}

// HasAttachment reports whether an attachment was stored with the submission.
func (c *ContactSubmission) HasAttachment() bool {
	return c.FilePath != nil && *c.FilePath != ""
}

// AttachFile records the stored attachment on the submission.
func (c *ContactSubmission) AttachFile(f StoredFile) {
	name, key := f.OriginalName, f.Key
	c.FileName = &name
	c.FilePath = &key
}
