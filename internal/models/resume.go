package models

import "time"

type ResumeRecord struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	UploadDate time.Time `json:"uploadDate"`
	Content    string    `json:"content"`
}
