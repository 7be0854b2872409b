package math3d

import (
	"math"
	"testing"
)

const eps = 1e-12

func vecNear(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Sub(b); got != V3(-3, -3, -3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Cross(b); got != V3(-3, 6, -3) {
		t.Errorf("Cross = %v, want (-3, 6, -3)", got)
	}
	if got := V3(0, 3, 4).Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := V3(2, 9, -1).MaxComponent(); got != 9 {
		t.Errorf("MaxComponent = %v, want 9", got)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero vector normalized to %v", got)
	}
	n := V3(3, 0, 4).Normalize()
	if math.Abs(n.Len()-1) > eps {
		t.Errorf("normalized length = %v", n.Len())
	}
}

func TestVec3Reflect(t *testing.T) {
	n := V3(0, 1, 0)
	// light direction pointing up and to the right, away from the surface
	l := V3(1, 1, 0).Normalize()
	r := l.Negate().Reflect(n)
	want := V3(-1, 1, 0).Normalize()
	if !vecNear(r, want, eps) {
		t.Errorf("reflect = %v, want %v", r, want)
	}
	// 2(N·L)N - L
	alt := n.Scale(2 * n.Dot(l)).Sub(l)
	if !vecNear(r, alt, eps) {
		t.Errorf("reflect = %v, want %v", r, alt)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateZ(0.3))
	if got := Identity().Mul(m); got != m {
		t.Errorf("identity*m mismatch")
	}
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m*identity mismatch")
	}
}

func TestRotateYMatchesRightHandedFormula(t *testing.T) {
	// x' = cos·x + sin·z, z' = -sin·x + cos·z
	angle := Radians(30)
	c, s := math.Cos(angle), math.Sin(angle)
	p := V3(1, 2, 3)
	got := RotateY(angle).MulVec3(p)
	want := V3(c*1+s*3, 2, -s*1+c*3)
	if !vecNear(got, want, eps) {
		t.Errorf("RotateY = %v, want %v", got, want)
	}
}

func TestModelTransformOrder(t *testing.T) {
	// scale first, then rotate, then translate
	m := ModelTransform(90, 2, V3(0, 0, 5), AxisY)
	got := m.MulVec3(V3(1, 0, 0))
	want := V3(0, 0, 3) // (1,0,0) -> (2,0,0) -> (0,0,-2) -> (0,0,3)
	if !vecNear(got, want, 1e-9) {
		t.Errorf("ModelTransform point = %v, want %v", got, want)
	}
	if tr := m.Translation(); tr != V3(0, 0, 5) {
		t.Errorf("translation = %v", tr)
	}
}

func TestModelTransformPeriodic(t *testing.T) {
	tr := V3(0.1, -0.2, 2.5)
	a := ModelTransform(0, 1.3, tr, AxisY)
	b := ModelTransform(360, 1.3, tr, AxisY)
	c := ModelTransform(-720, 1.3, tr, AxisY)
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-12 || math.Abs(a[i]-c[i]) > 1e-12 {
			t.Fatalf("element %d differs: %v %v %v", i, a[i], b[i], c[i])
		}
	}
}

func TestRotateAxis(t *testing.T) {
	tests := []struct {
		axis Axis
		in   Vec3
		want Vec3
	}{
		{AxisX, V3(0, 1, 0), V3(0, 0, 1)},
		{AxisY, V3(0, 0, 1), V3(1, 0, 0)},
		{AxisZ, V3(1, 0, 0), V3(0, 1, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.axis.String(), func(t *testing.T) {
			got := RotateAxis(tc.axis, math.Pi/2).MulVec3Dir(tc.in)
			if !vecNear(got, tc.want, 1e-12) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseAxis(t *testing.T) {
	for in, want := range map[string]Axis{"x": AxisX, "Y": AxisY, "": AxisY, " z ": AxisZ} {
		got, err := ParseAxis(in)
		if err != nil || got != want {
			t.Errorf("ParseAxis(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseAxis("w"); err == nil {
		t.Error("expected error for unknown axis")
	}
}
