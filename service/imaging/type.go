package imaging

import (
	"image"

	"gocv.io/x/gocv"
)

// ChangeResult carries the dissimilarity score between two preprocessed
// frames plus the difference contours that contributed to it.
type ChangeResult struct {
	Score    float64
	Contours [][]image.Point
}

// IService is the preprocessing and scoring collaborator the change
// detector relies on. Every returned Mat is owned by the caller and must
// be closed.
type IService interface {
	Decode(path string) (gocv.Mat, error)
	Resize(src gocv.Mat, width, height int) gocv.Mat
	Preprocess(src gocv.Mat) gocv.Mat
	ScoreChange(a, b gocv.Mat) (ChangeResult, error)
}
