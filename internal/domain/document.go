package domain

import "time"

// Document is an uploaded source file and its extracted text.
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Extension  string    `json:"extension"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Content    string    `json:"content"`
	UploadedAt time.Time `json:"uploadedAt"`
}
