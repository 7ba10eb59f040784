package monitor

import "time"

type Status struct {
	PostgreSQL  bool      `json:"postgresql"`
	Redis       bool      `json:"redis"`
	Uploads     bool      `json:"uploads"`
	UploadCount int       `json:"upload_count"`
	LastCheck   time.Time `json:"last_check"`
}
