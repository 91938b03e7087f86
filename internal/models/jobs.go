package models

import (
	"time"
)

// JobStatus is the state of a background job
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// Terminal reports whether no further transitions follow s
func (s JobStatus) Terminal() bool {
	return s == JobSucceeded || s == JobFailed
}

// Job kinds
const (
	JobKindScan      = "kavach.scan"
	JobKindInference = "trinetra.inference"
)

// Job is a snapshot of a background job
type Job struct {
	ID          string      `json:"id" yaml:"id"`
	Kind        string      `json:"kind" yaml:"kind"`
	Status      JobStatus   `json:"status" yaml:"status"`
	Attempts    int         `json:"attempts" yaml:"attempts"`
	SubmittedAt time.Time   `json:"submittedAt" yaml:"submittedAt"`
	StartedAt   *time.Time  `json:"startedAt,omitempty" yaml:"startedAt,omitempty"`
	FinishedAt  *time.Time  `json:"finishedAt,omitempty" yaml:"finishedAt,omitempty"`
	Result      interface{} `json:"result,omitempty" yaml:"result,omitempty"`
	Error       string      `json:"error,omitempty" yaml:"error,omitempty"`
}
