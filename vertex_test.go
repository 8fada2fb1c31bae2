package lyon

import (
	"errors"
	"math"
	"testing"
)

func TestWithID_TagsVertices(t *testing.T) {
	ctor := WithID(5)

	v, err := ctor.NewFillVertex(Pt(1, 2))
	if err != nil {
		t.Fatalf("NewFillVertex: %v", err)
	}
	if v.Position != [2]float32{1, 2} || v.Prim != 5 {
		t.Errorf("fill vertex = %+v", v)
	}
	if v.Normal != [2]float32{} {
		t.Errorf("fill vertex normal = %v, want zero", v.Normal)
	}

	v, err = ctor.NewStrokeVertex(Pt(3, 4), Pt(0, 1))
	if err != nil {
		t.Fatalf("NewStrokeVertex: %v", err)
	}
	if v.Position != [2]float32{3, 4} || v.Normal != [2]float32{0, 1} || v.Prim != 5 {
		t.Errorf("stroke vertex = %+v", v)
	}
}

func TestWithID_RejectsNaN(t *testing.T) {
	nan := float32(math.NaN())
	ctor := WithID(0)

	if _, err := ctor.NewFillVertex(Pt(nan, 0)); !errors.Is(err, ErrNaNVertex) {
		t.Errorf("fill with NaN position: err = %v, want ErrNaNVertex", err)
	}
	if _, err := ctor.NewStrokeVertex(Pt(0, 0), Pt(0, nan)); !errors.Is(err, ErrNaNVertex) {
		t.Errorf("stroke with NaN normal: err = %v, want ErrNaNVertex", err)
	}
}

func TestSVGWithID_DropsNormal(t *testing.T) {
	ctor := SVGWithID(9)

	v, err := ctor.NewStrokeVertex(Pt(7, 8), Pt(0, -1))
	if err != nil {
		t.Fatalf("NewStrokeVertex: %v", err)
	}
	if v.Position != [2]float32{7, 8} || v.Prim != 9 {
		t.Errorf("stroke vertex = %+v", v)
	}

	if _, err := ctor.NewFillVertex(Pt(float32(math.NaN()), 0)); !errors.Is(err, ErrNaNVertex) {
		t.Errorf("fill with NaN: err = %v, want ErrNaNVertex", err)
	}
}

func TestBgVertexConstructor(t *testing.T) {
	v, err := BgVertexConstructor{}.NewFillVertex(Pt(-1, 1))
	if err != nil {
		t.Fatalf("NewFillVertex: %v", err)
	}
	if v.Position != [2]float32{-1, 1} {
		t.Errorf("bg vertex = %+v", v)
	}
}
