package heatmap

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnel-cohort/pkg/models"
	"funnel-cohort/pkg/period"
)

func testMatrix() models.RetentionMatrix {
	jan := period.Of(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	feb := period.Of(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	return models.RetentionMatrix{
		jan: {0: 100, 1: 34.5, 3: 8.2},
		feb: {0: 100, 1: 12.0},
	}
}

func TestRender_Dimensions(t *testing.T) {
	img, err := Render(testMatrix())
	require.NoError(t, err)

	bounds := img.Bounds()
	// 2 cohortes × offsets 0..3
	assert.Equal(t, marginLeft+4*cellW+marginRight, bounds.Dx())
	assert.Equal(t, marginTop+2*cellH+marginBot, bounds.Dy())
}

func TestRender_EmptyMatrix(t *testing.T) {
	_, err := Render(models.RetentionMatrix{})
	require.Error(t, err)
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cohort_analysis.png")
	require.NoError(t, SavePNG(path, testMatrix()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())
	assert.Positive(t, img.Bounds().Dy())
}

func TestSavePNG_EmptyMatrixWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cohort_analysis.png")
	require.Error(t, SavePNG(path, nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRampColor_Bounds(t *testing.T) {
	for _, v := range []float64{-5, 0, 12.5, 25, 50, 100} {
		r, g, b := rampColor(v)
		for _, ch := range []float64{r, g, b} {
			assert.GreaterOrEqual(t, ch, 0.0)
			assert.LessOrEqual(t, ch, 1.0)
		}
	}
	// les valeurs hautes doivent être plus sombres que les basses
	lr, lg, lb := rampColor(0)
	hr, hg, hb := rampColor(50)
	assert.Greater(t, lr+lg+lb, hr+hg+hb)
}
