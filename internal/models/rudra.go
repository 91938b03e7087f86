package models

// ForecastPoint is one month of the cost forecast series. Actual is nil for
// months that have not happened yet.
type ForecastPoint struct {
	Month    string   `json:"month" yaml:"month"`
	Actual   *float64 `json:"actual" yaml:"actual"`
	Forecast float64  `json:"forecast" yaml:"forecast"`
}

// AlertType classifies an alert for display
type AlertType string

const (
	AlertWarning AlertType = "warning"
	AlertSuccess AlertType = "success"
	AlertInfo    AlertType = "info"
	AlertError   AlertType = "error"
)

// Severity ranks an alert
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// AlertMessage is a cost alert shown on the Rudra dashboard
type AlertMessage struct {
	ID       int       `json:"id" yaml:"id"`
	Type     AlertType `json:"type" yaml:"type"`
	Message  string    `json:"message" yaml:"message"`
	Severity Severity  `json:"severity" yaml:"severity"`
}

// CloudConfig is the cloud account posture submitted for a configuration check
type CloudConfig struct {
	EnforceMFA *bool `json:"enforce_mfa,omitempty"`
	PublicS3   *bool `json:"public_s3,omitempty"`
}

// MFAEnforced reports the MFA setting, defaulting to enforced
func (c CloudConfig) MFAEnforced() bool {
	if c.EnforceMFA == nil {
		return true
	}
	return *c.EnforceMFA
}

// S3Public reports the bucket exposure setting, defaulting to private
func (c CloudConfig) S3Public() bool {
	if c.PublicS3 == nil {
		return false
	}
	return *c.PublicS3
}

// Config check outcomes
const (
	ConfigStatusOK     = "ok"
	ConfigStatusIssues = "issues"
)

// ConfigCheckResult lists the problems found in a CloudConfig
type ConfigCheckResult struct {
	Status string   `json:"status" yaml:"status"`
	Issues []string `json:"issues" yaml:"issues"`
}
