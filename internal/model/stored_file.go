package model

// StoredFile references a blob written to a storage bucket.
// Key is the generated object path and never equals the original file name.
type StoredFile struct {
	Bucket       string `json:"bucket"`
	Key          string `json:"key"`
	OriginalName string `json:"original_name"`
}
