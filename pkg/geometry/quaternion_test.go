package geometry

import (
	"math"
	"testing"
)

func TestQuaternionTransform(t *testing.T) {
	q := NewQuaternion(ZAxis, 90)
	got := q.Transform(XAxis)

	if got.Distance(YAxis) > 1e-10 {
		t.Errorf("Transform failed: expected %v, got %v", YAxis, got)
	}
}

func TestQuaternionMultiplyOrder(t *testing.T) {
	// rotate around X first, then around Y
	q := NewQuaternion(YAxis, 90).Multiply(NewQuaternion(XAxis, 90))
	got := q.Transform(YAxis)

	// X(90) takes Y to Z, Y(90) takes Z to X
	if got.Distance(XAxis) > 1e-10 {
		t.Errorf("Multiply failed: expected %v, got %v", XAxis, got)
	}
}

func TestQuaternionInvert(t *testing.T) {
	q := NewQuaternion(NewVector3(1, 2, 3), 37)
	v := NewVector3(4, -5, 6)

	got := q.Invert().Transform(q.Transform(v))
	if got.Distance(v) > 1e-10 {
		t.Errorf("Invert failed: expected %v, got %v", v, got)
	}
}

func TestQuaternionAngleAxis(t *testing.T) {
	q := NewQuaternion(NewVector3(0, 2, 0), 60)

	if math.Abs(q.Angle()-60) > 1e-9 {
		t.Errorf("Angle failed: expected 60, got %v", q.Angle())
	}
	if q.Axis().Distance(YAxis) > 1e-10 {
		t.Errorf("Axis failed: expected %v, got %v", YAxis, q.Axis())
	}
	if IdentityQuaternion().Axis() != XAxis {
		t.Errorf("Axis of identity: expected %v, got %v", XAxis, IdentityQuaternion().Axis())
	}
}

func TestQuaternionMatrixMatchesTransform(t *testing.T) {
	q := NewQuaternion(NewVector3(-1, 0.5, 2), 123)
	v := NewVector3(0.3, -7, 2.5)

	byMatrix := q.Matrix().TransformPoint(v)
	byQuat := q.Transform(v)
	if byMatrix.Distance(byQuat) > 1e-9 {
		t.Errorf("Matrix failed: expected %v, got %v", byQuat, byMatrix)
	}
}
