package models

// DefectLabels are the defect classes the detector can report, indexed by draw
var DefectLabels = []string{"scratch", "dent", "discoloration", "crack"}

// DetectionBox is a detected defect region. Coordinates and sizes are
// percentages of the image dimensions.
type DetectionBox struct {
	ID         int     `json:"id" yaml:"id"`
	X          float64 `json:"x" yaml:"x"`
	Y          float64 `json:"y" yaml:"y"`
	Width      float64 `json:"width" yaml:"width"`
	Height     float64 `json:"height" yaml:"height"`
	Label      string  `json:"label" yaml:"label"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// DetectionResult is the outcome of one inference run
type DetectionResult struct {
	DefectsFound   int            `json:"defectsFound" yaml:"defectsFound"`
	Confidence     float64        `json:"confidence" yaml:"confidence"`
	ProcessingTime string         `json:"processingTime" yaml:"processingTime"`
	BoundingBoxes  []DetectionBox `json:"boundingBoxes" yaml:"boundingBoxes"`
}

// QCDecision is an operator verdict on an inspected item
type QCDecision string

const (
	QCPass QCDecision = "pass"
	QCFail QCDecision = "fail"
)

// Valid reports whether d is pass or fail
func (d QCDecision) Valid() bool {
	return d == QCPass || d == QCFail
}

// QCTimestampLayout is the display layout of QcHistoryEntry timestamps
const QCTimestampLayout = "2006-01-02 15:04:05"

// QcHistoryEntry is one recorded QC decision
type QcHistoryEntry struct {
	ID        int        `json:"id" yaml:"id"`
	Filename  string     `json:"filename" yaml:"filename"`
	Decision  QCDecision `json:"decision" yaml:"decision"`
	Timestamp string     `json:"timestamp" yaml:"timestamp"`
	Defects   int        `json:"defects" yaml:"defects"`
}
