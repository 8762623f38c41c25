package models

import "strings"

// Mock is a mock-API definition owned by an app (PID). The payload fields are
// opaque to the backend; (pid, path, method) is unique.
type Mock struct {
	ID          int64  `json:"id" db:"id"`
	PID         int64  `json:"pid" db:"pid"`
	Name        string `json:"name" db:"name"`
	Path        string `json:"path" db:"path"`
	Method      string `json:"method" db:"method"`
	Status      int    `json:"status" db:"status"`
	ContentType string `json:"contentType" db:"content_type"`
	Data        string `json:"data" db:"data"`
	Remark      string `json:"remark" db:"remark"`
	CreatedAt   int64  `json:"createdAt" db:"created_at"`
	UpdatedAt   int64  `json:"updatedAt" db:"updated_at"`
}

// Normalize fills defaults for fields the UI usually leaves blank.
func (m *Mock) Normalize() {
	m.Path = strings.TrimSpace(m.Path)
	m.Method = strings.ToUpper(strings.TrimSpace(m.Method))
	if m.Method == "" {
		m.Method = "GET"
	}
	if m.Status == 0 {
		m.Status = 200
	}
	if strings.TrimSpace(m.ContentType) == "" {
		m.ContentType = "application/json"
	}
}
