package models

import (
	"time"
)

// ScanStatus is the lifecycle state of a vulnerability scan
type ScanStatus string

const (
	ScanStatusCompleted ScanStatus = "completed"
	ScanStatusRunning   ScanStatus = "running"
	ScanStatusFailed    ScanStatus = "failed"
)

// NotFinished is the FinishedAt sentinel for scans that have not completed
const NotFinished = "-"

// ScanRecord is one entry of the Kavach scan history
type ScanRecord struct {
	ScanID          string     `json:"scanId" yaml:"scanId"`
	Target          string     `json:"target" yaml:"target"`
	Status          ScanStatus `json:"status" yaml:"status"`
	FinishedAt      string     `json:"finishedAt" yaml:"finishedAt"` // date or NotFinished
	Vulnerabilities int        `json:"vulnerabilities" yaml:"vulnerabilities"`
}

// ScanCreated is the payload of a successful scan creation
type ScanCreated struct {
	ScanID string `json:"scanId" yaml:"scanId"`
}

// Report is a generated vulnerability report document
type Report struct {
	ScanID      string    `json:"scanId"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	GeneratedAt time.Time `json:"generatedAt"`
	Content     []byte    `json:"-"`
}

// Size returns the report length in bytes
func (r Report) Size() int {
	return len(r.Content)
}

// UploadedFile describes a file handed to a service operation. Only the
// name is used by the simulation; the body is never read.
type UploadedFile struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
}
