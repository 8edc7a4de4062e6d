package imaging

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/khaledhikmat/pd-go/service/config"
)

func grayMat(value float64, rows, cols int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(value, 0, 0, 0), rows, cols, gocv.MatTypeCV8UC1)
}

func TestScoreChangeIdenticalFrames(t *testing.T) {
	svc := NewOpenCV(config.NewEnvVars())

	a := grayMat(0, 200, 200)
	defer a.Close()
	b := grayMat(0, 200, 200)
	defer b.Close()

	result, err := svc.ScoreChange(a, b)
	require.NoError(t, err)
	assert.Zero(t, result.Score)
	assert.Empty(t, result.Contours)
}

func TestScoreChangeDetectsRegion(t *testing.T) {
	svc := NewOpenCV(config.NewEnvVars())

	a := grayMat(0, 200, 200)
	defer a.Close()
	b := grayMat(0, 200, 200)
	defer b.Close()

	// Paint a 50x50 change in the middle of the frame
	gocv.Rectangle(&b, image.Rect(75, 75, 125, 125), color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)

	result, err := svc.ScoreChange(a, b)
	require.NoError(t, err)
	// Dilation grows the region slightly beyond 2500 pixels
	assert.Greater(t, result.Score, 2000.0)
	assert.Less(t, result.Score, 200.0*200.0)
	assert.NotEmpty(t, result.Contours)
}

func TestScoreChangeDimensionMismatch(t *testing.T) {
	svc := NewOpenCV(config.NewEnvVars())

	a := grayMat(0, 100, 200)
	defer a.Close()
	b := grayMat(0, 200, 100)
	defer b.Close()

	_, err := svc.ScoreChange(a, b)
	assert.Error(t, err)
}

func TestScoreChangeIgnoresSmallContours(t *testing.T) {
	t.Setenv("PDGO_MIN_CONTOUR_AREA", "5000")
	svc := NewOpenCV(config.NewEnvVars())

	a := grayMat(0, 200, 200)
	defer a.Close()
	b := grayMat(0, 200, 200)
	defer b.Close()
	gocv.Rectangle(&b, image.Rect(75, 75, 125, 125), color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)

	result, err := svc.ScoreChange(a, b)
	require.NoError(t, err)
	assert.Zero(t, result.Score)
}

func TestPreprocessProducesGray(t *testing.T) {
	svc := NewOpenCV(config.NewEnvVars())

	src := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(200, 40, 10, 0), 120, 160, gocv.MatTypeCV8UC3)
	defer src.Close()

	gray := svc.Preprocess(src)
	defer gray.Close()

	assert.Equal(t, 1, gray.Channels())
	assert.Equal(t, src.Rows(), gray.Rows())
	assert.Equal(t, src.Cols(), gray.Cols())
}

func TestResizeTargetDimensions(t *testing.T) {
	svc := NewOpenCV(config.NewEnvVars())

	src := grayMat(0, 200, 100)
	defer src.Close()

	dst := svc.Resize(src, 400, 300)
	defer dst.Close()

	assert.Equal(t, 400, dst.Cols())
	assert.Equal(t, 300, dst.Rows())
}

func TestDecodeRoundTrip(t *testing.T) {
	svc := NewOpenCV(config.NewEnvVars())

	src := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(50, 100, 150, 0), 60, 80, gocv.MatTypeCV8UC3)
	defer src.Close()

	path := filepath.Join(t.TempDir(), "frame.png")
	require.True(t, gocv.IMWrite(path, src))

	mat, err := svc.Decode(path)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 60, mat.Rows())
	assert.Equal(t, 80, mat.Cols())
}

func TestDecodeUnreadable(t *testing.T) {
	svc := NewOpenCV(config.NewEnvVars())

	path := filepath.Join(t.TempDir(), "corrupt.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

	_, err := svc.Decode(path)
	assert.Error(t, err)

	_, err = svc.Decode(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}
