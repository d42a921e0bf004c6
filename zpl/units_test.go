package zpl

import (
	"math"
	"testing"
)

func TestDotsPerMM(t *testing.T) {
	cases := []struct {
		dpi  int
		want float64
	}{
		{DPI203, 8},
		{DPI300, 12},
		{DPI600, 24},
		{0, 8},
		{42, 8},
		{-300, 8},
	}
	for _, c := range cases {
		if got := DotsPerMM(c.dpi); got != c.want {
			t.Errorf("DotsPerMM(%d) = %v, want %v", c.dpi, got, c.want)
		}
	}
}

func TestMMToDots(t *testing.T) {
	cases := []struct {
		mm, dpmm float64
		want     int
	}{
		{10, 8, 80},
		{0.4, 8, 3},
		{0, 8, 0},
		{10, 12, 120},
		{1.5, 24, 36},
	}
	for _, c := range cases {
		if got := MMToDots(c.mm, c.dpmm); got != c.want {
			t.Errorf("MMToDots(%v, %v) = %d, want %d", c.mm, c.dpmm, got, c.want)
		}
	}
}

func TestRotationCode(t *testing.T) {
	cases := []struct {
		deg  float64
		want Orientation
	}{
		{0, OrientNormal},
		{44.9, OrientNormal},
		{45, OrientRight},
		{90, OrientRight},
		{134.9, OrientRight},
		{135, OrientInverted},
		{180, OrientInverted},
		{225, OrientLeft},
		{270, OrientLeft},
		{314.9, OrientLeft},
		{315, OrientNormal},
		{360, OrientNormal},
		{-90, OrientLeft},
		{math.NaN(), OrientNormal},
		{math.Inf(1), OrientNormal},
	}
	for _, c := range cases {
		if got := RotationCode(c.deg); got != c.want {
			t.Errorf("RotationCode(%v) = %s, want %s", c.deg, got, c.want)
		}
	}
}

func TestRotationCodeFullTurn(t *testing.T) {
	for deg := -360.0; deg <= 360; deg += 7.5 {
		if a, b := RotationCode(deg), RotationCode(deg+360); a != b {
			t.Fatalf("RotationCode(%v) = %s but RotationCode(%v) = %s", deg, a, deg+360, b)
		}
	}
}
