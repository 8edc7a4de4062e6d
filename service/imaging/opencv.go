package imaging

import (
	"image"
	"image/color"

	"golang.org/x/xerrors"

	"gocv.io/x/gocv"

	"github.com/khaledhikmat/pd-go/service/config"
)

const (
	// Per-pixel delta above which a difference counts towards a contour
	diffThreshold = 45
	// Dilation passes applied to the thresholded delta to join regions
	dilateIterations = 2
)

type openCVService struct {
	CfgSvc config.IService
}

func NewOpenCV(cfgsvc config.IService) IService {
	return &openCVService{
		CfgSvc: cfgsvc,
	}
}

func (svc *openCVService) Decode(path string) (gocv.Mat, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return gocv.Mat{}, xerrors.Errorf("unreadable image: %s", path)
	}

	return mat, nil
}

func (svc *openCVService) Resize(src gocv.Mat, width, height int) gocv.Mat {
	dst := gocv.NewMat()
	// image.Pt is (x, y) i.e. (columns, rows)
	gocv.Resize(src, &dst, image.Pt(width, height), 0, 0, gocv.InterpolationArea)
	return dst
}

func (svc *openCVService) Preprocess(src gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	for _, radius := range svc.CfgSvc.GetGaussianBlurRadii() {
		gocv.GaussianBlur(gray, &gray, image.Pt(radius, radius), 0, 0, gocv.BorderDefault)
	}

	svc.maskBorders(&gray)

	return gray
}

func (svc *openCVService) ScoreChange(a, b gocv.Mat) (ChangeResult, error) {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return ChangeResult{}, xerrors.Errorf("mismatched frame dimensions: %dx%d vs %dx%d",
			a.Cols(), a.Rows(), b.Cols(), b.Rows())
	}

	delta := gocv.NewMat()
	defer delta.Close()
	gocv.AbsDiff(a, b, &delta)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(delta, &thresh, diffThreshold, 255, gocv.ThresholdBinary)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()
	for i := 0; i < dilateIterations; i++ {
		gocv.Dilate(thresh, &thresh, kernel)
	}

	contours := gocv.FindContours(thresh, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	minArea := svc.CfgSvc.GetMinContourArea()
	result := ChangeResult{}
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if area < minArea {
			continue
		}

		result.Score += area
		result.Contours = append(result.Contours, contour.ToPoints())
	}

	return result, nil
}

// maskBorders blacks out the configured border percentages so that
// timestamps and watermark overlays do not register as change.
func (svc *openCVService) maskBorders(img *gocv.Mat) {
	mask := svc.CfgSvc.GetBlackMaskPercentages()
	if len(mask) != 4 {
		return
	}

	w := img.Cols()
	h := img.Rows()
	left, up, right, down := mask[0], mask[1], mask[2], mask[3]
	black := color.RGBA{}

	if left > 0 {
		gocv.Rectangle(img, image.Rect(0, 0, w*left/100, h), black, -1)
	}
	if up > 0 {
		gocv.Rectangle(img, image.Rect(0, 0, w, h*up/100), black, -1)
	}
	if right > 0 {
		gocv.Rectangle(img, image.Rect(w-w*right/100, 0, w, h), black, -1)
	}
	if down > 0 {
		gocv.Rectangle(img, image.Rect(0, h-h*down/100, w, h), black, -1)
	}
}
