package geo

import "testing"

func TestDistanceKMSamePointIsZero(t *testing.T) {
	d := DistanceKM(40.7128, -74.0060, 40.7128, -74.0060)
	if d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
}

func TestDistanceKMSymmetric(t *testing.T) {
	a := DistanceKM(40.7128, -74.0060, 40.7580, -73.9855)
	b := DistanceKM(40.7580, -73.9855, 40.7128, -74.0060)
	if a != b {
		t.Fatalf("distance not symmetric: a=%v b=%v", a, b)
	}
}

func TestDistanceKMKnownValue(t *testing.T) {
	// NYC (depot) to a midtown-ish point, about 5.3km apart.
	d := DistanceKM(40.7128, -74.0060, 40.7580, -73.9855)
	if d < 5 || d > 7 {
		t.Fatalf("distance = %v, want roughly 5-7km", d)
	}
}

func TestDistanceKMNonNegative(t *testing.T) {
	cases := [][4]float64{
		{0, 0, 0, 0},
		{-33.8688, 151.2093, 51.5074, -0.1278},
		{89.9, 0, -89.9, 180},
	}
	for _, c := range cases {
		d := DistanceKM(c[0], c[1], c[2], c[3])
		if d < 0 {
			t.Fatalf("distance %v is negative for %v", d, c)
		}
	}
}
