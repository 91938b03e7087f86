package trinetra

import (
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/random"
)

// ProcessingTime is the reported duration of every inference
const ProcessingTime = "1.2s"

// Detection bounds. Each value is drawn as min + r*span.
const (
	MaxDefects = 3

	boxXMin, boxXSpan           = 20.0, 60.0
	boxYMin, boxYSpan           = 15.0, 60.0
	boxWidthMin, boxWidthSpan   = 15.0, 20.0
	boxHeightMin, boxHeightSpan = 10.0, 15.0
	boxConfMin, boxConfSpan     = 0.7, 0.3
	overallConfMin, overallSpan = 0.85, 0.15
)

// GenerateDetection produces a randomized detection result. Draws happen in
// a fixed order: defect count, then x, y, width, height, label and
// confidence for each box, then the overall confidence.
func GenerateDetection(src random.Source) models.DetectionResult {
	count := random.Intn(src, MaxDefects+1)

	boxes := make([]models.DetectionBox, 0, count)
	for i := 0; i < count; i++ {
		box := models.DetectionBox{ID: i}
		box.X = random.Between(src, boxXMin, boxXSpan)
		box.Y = random.Between(src, boxYMin, boxYSpan)
		box.Width = random.Between(src, boxWidthMin, boxWidthSpan)
		box.Height = random.Between(src, boxHeightMin, boxHeightSpan)
		box.Label = models.DefectLabels[random.Intn(src, len(models.DefectLabels))]
		box.Confidence = random.Between(src, boxConfMin, boxConfSpan)
		boxes = append(boxes, box)
	}

	return models.DetectionResult{
		DefectsFound:   count,
		Confidence:     random.Between(src, overallConfMin, overallSpan),
		ProcessingTime: ProcessingTime,
		BoundingBoxes:  boxes,
	}
}
