package trinetra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/random"
)

func TestGenerateDetectionDrawOrder(t *testing.T) {
	src := random.NewSequence(
		0.5,                          // two defects
		0.5, 0.5, 0.5, 0.5, 0.5, 0.5, // box 0
		0, 0, 0, 0, 0.99, 0, // box 1
		0.5, // overall confidence
	)

	result := GenerateDetection(src)
	assert.Equal(t, 14, src.Draws())

	assert.Equal(t, 2, result.DefectsFound)
	assert.InDelta(t, 0.925, result.Confidence, 1e-9)
	assert.Equal(t, "1.2s", result.ProcessingTime)
	require.Len(t, result.BoundingBoxes, 2)

	b0 := result.BoundingBoxes[0]
	assert.Equal(t, 0, b0.ID)
	assert.InDelta(t, 50.0, b0.X, 1e-9)
	assert.InDelta(t, 45.0, b0.Y, 1e-9)
	assert.InDelta(t, 25.0, b0.Width, 1e-9)
	assert.InDelta(t, 17.5, b0.Height, 1e-9)
	assert.Equal(t, "discoloration", b0.Label)
	assert.InDelta(t, 0.85, b0.Confidence, 1e-9)

	b1 := result.BoundingBoxes[1]
	assert.Equal(t, 1, b1.ID)
	assert.InDelta(t, 20.0, b1.X, 1e-9)
	assert.InDelta(t, 15.0, b1.Y, 1e-9)
	assert.InDelta(t, 15.0, b1.Width, 1e-9)
	assert.InDelta(t, 10.0, b1.Height, 1e-9)
	assert.Equal(t, "crack", b1.Label)
	assert.InDelta(t, 0.7, b1.Confidence, 1e-9)
}

func TestGenerateDetectionNoDefects(t *testing.T) {
	src := random.NewSequence(0.1, 0)

	result := GenerateDetection(src)
	assert.Equal(t, 0, result.DefectsFound)
	assert.Empty(t, result.BoundingBoxes)
	assert.NotNil(t, result.BoundingBoxes)
	assert.InDelta(t, 0.85, result.Confidence, 1e-9)
	assert.Equal(t, 2, src.Draws())
}

func TestGenerateDetectionBounds(t *testing.T) {
	labels := map[string]bool{}
	for _, l := range models.DefectLabels {
		labels[l] = true
	}

	src := random.New(99)
	for i := 0; i < 500; i++ {
		result := GenerateDetection(src)

		assert.GreaterOrEqual(t, result.DefectsFound, 0)
		assert.LessOrEqual(t, result.DefectsFound, 3)
		assert.Len(t, result.BoundingBoxes, result.DefectsFound)
		assert.GreaterOrEqual(t, result.Confidence, 0.85)
		assert.Less(t, result.Confidence, 1.0)

		for j, b := range result.BoundingBoxes {
			assert.Equal(t, j, b.ID)
			assert.True(t, b.X >= 20 && b.X < 80, "x=%v", b.X)
			assert.True(t, b.Y >= 15 && b.Y < 75, "y=%v", b.Y)
			assert.True(t, b.Width >= 15 && b.Width < 35, "width=%v", b.Width)
			assert.True(t, b.Height >= 10 && b.Height < 25, "height=%v", b.Height)
			assert.True(t, labels[b.Label], "label=%s", b.Label)
			assert.GreaterOrEqual(t, b.Confidence, 0.7)
			assert.Less(t, b.Confidence, 1.0)
		}
	}
}
