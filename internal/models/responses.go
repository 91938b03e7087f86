package models

import (
	"time"
)

// HealthResponse is the payload of the health endpoint
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Version   string    `json:"version" yaml:"version"`
	ServerID  string    `json:"server_id,omitempty" yaml:"server_id,omitempty"`
	Storage   string    `json:"storage" yaml:"storage"`
	Uptime    string    `json:"uptime" yaml:"uptime"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// JobAccepted is returned when a background job is queued
type JobAccepted struct {
	JobID  string    `json:"jobId" yaml:"jobId"`
	Status JobStatus `json:"status" yaml:"status"`
}
