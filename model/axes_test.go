package model

import "testing"

func TestParseAxisOrder(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr bool
	}{
		{"enu", false},
		{"neu", false},
		{"wsu", false},
		{"seu", false},
		{"end", false},
		{"sen", true}, // s and n are both north-south, no vertical axis
		{"een", true},  // duplicate east-west
		{"en", true},   // too short
		{"enux", true}, // too long
		{"abc", true},  // unknown letters
	}
	for _, tt := range tests {
		_, err := ParseAxisOrder(tt.spec)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAxisOrder(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
		}
	}
}

func TestAxisOrderToENU(t *testing.T) {
	neu, err := ParseAxisOrder("neu")
	if err != nil {
		t.Fatalf("ParseAxisOrder: %v", err)
	}
	c := NewCoordinate(2.0, 1.0, 3.0) // north=2, east=1, up=3
	neu.ToENU(&c)
	if c.X != 1.0 || c.Y != 2.0 || c.Z != 3.0 {
		t.Errorf("neu.ToENU = %v, want (1, 2, 3)", c)
	}

	wsu, err := ParseAxisOrder("wsu")
	if err != nil {
		t.Fatalf("ParseAxisOrder: %v", err)
	}
	c = NewCoordinate(1.0, 2.0, 3.0) // west=1, south=2, up=3
	wsu.ToENU(&c)
	if c.X != -1.0 || c.Y != -2.0 || c.Z != 3.0 {
		t.Errorf("wsu.ToENU = %v, want (-1, -2, 3)", c)
	}
}

func TestAxisOrderRoundTrip(t *testing.T) {
	for _, spec := range []string{"enu", "neu", "wsu", "seu", "ues"} {
		a, err := ParseAxisOrder(spec)
		if err != nil {
			t.Fatalf("ParseAxisOrder(%q): %v", spec, err)
		}
		c := NewCoordinate(12.5, -7.25, 3.0)
		orig := c
		a.ToENU(&c)
		a.FromENU(&c)
		if c != orig {
			t.Errorf("%q: ToENU∘FromENU = %v, want %v", spec, c, orig)
		}
	}
}

func TestAxisOrderCanonicalIsNoOp(t *testing.T) {
	c := NewCoordinate2D(100.0, 200.0)
	AxesENU.ToENU(&c)
	if c.X != 100.0 || c.Y != 200.0 {
		t.Errorf("AxesENU.ToENU changed coordinate: %v", c)
	}
	if c.HasZ() {
		t.Errorf("AxesENU.ToENU populated an absent height")
	}
}
