package models

// Paging bounds for list endpoints
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
	MaxPageSkip      = 10000
)

// PageRequest represents limit/skip paging parameters for list requests
type PageRequest struct {
	Limit *int `json:"limit" form:"limit"`
	Skip  *int `json:"skip" form:"skip"`
}

// Requested reports whether any paging parameter was supplied
func (p *PageRequest) Requested() bool {
	return p.Limit != nil || p.Skip != nil
}

// Normalize returns the clamped limit and skip values
func (p *PageRequest) Normalize() (limit, skip int) {
	limit = DefaultPageLimit
	if p.Limit != nil {
		limit = *p.Limit
	}
	if limit < 1 {
		limit = 1
	} else if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	if p.Skip != nil {
		skip = *p.Skip
	}
	if skip < 0 {
		skip = 0
	} else if skip > MaxPageSkip {
		skip = MaxPageSkip
	}
	return limit, skip
}

// Page slices items according to the clamped parameters. When no parameter
// was supplied the input is returned unchanged.
func Page[T any](items []T, p PageRequest) []T {
	if !p.Requested() {
		return items
	}
	limit, skip := p.Normalize()
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

// CreateScanRequest is the JSON form of a scan creation request
type CreateScanRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// ForecastRequest selects the forecast horizon
type ForecastRequest struct {
	Months int `form:"months" binding:"omitempty,oneof=6 12"`
}

// BudgetAlertRequest sets the budget alert threshold
type BudgetAlertRequest struct {
	Threshold *float64 `json:"threshold" binding:"required,gte=0"`
}

// InferRequest is the JSON form of an inference request
type InferRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// SaveDecisionRequest records a QC decision
type SaveDecisionRequest struct {
	Filename string     `json:"filename" binding:"required"`
	Decision QCDecision `json:"decision" binding:"required,oneof=pass fail"`
	Defects  *int       `json:"defects" binding:"required,gte=0"`
}
