package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/dea-toolkit/robustdea/model"
	"github.com/dea-toolkit/robustdea/solver/simplex"
)

func TestExtremeDistanceNotApplicableForCCR(t *testing.T) {
	p := s1Problem(t)
	adapter := simplex.New()
	_, _, err := ExtremeDistance(context.Background(), p, model.CCR, adapter, DefaultExtremeDistanceOptions())
	if !errors.Is(err, ErrDistanceNotApplicable) {
		t.Fatalf("ExtremeDistance(CCR) error = %v, want ErrDistanceNotApplicable", err)
	}
}

// TestExtremeDistanceS3 checks that, on the S3 fixed-score VDEA problem,
// every DMU's minimum distance to the best equals the fixed gap between
// its score and the best DMU's score (1, for this data).
func TestExtremeDistanceS3(t *testing.T) {
	p := vdeaS3Problem(t)
	adapter := simplex.New()

	res, _, err := ExtremeDistance(context.Background(), p, model.VDEA, adapter, DefaultExtremeDistanceOptions())
	if err != nil {
		t.Fatalf("ExtremeDistance() error = %v", err)
	}
	want := []float64{0, 0.5, 1}
	for i, w := range want {
		if math.Abs(res.Min[i]-w) > 1e-9 {
			t.Errorf("minDistance[%d] = %v, want %v", i, res.Min[i], w)
		}
	}
}
