package registry

import (
	"math"
	"reflect"
	"testing"

	"github.com/geodesyworks/reproj/core"
	"github.com/geodesyworks/reproj/model"
	"github.com/geodesyworks/reproj/proj"
)

func resolvedCRS(name string) *model.CRS {
	return &model.CRS{
		Name:       name,
		Projection: proj.NewLongLat(model.AxesENU, model.Greenwich),
		Datum:      model.WGS84Datum,
	}
}

func TestRegisterValidation(t *testing.T) {
	r := New()
	if err := r.Register(nil); err == nil {
		t.Error("nil CRS accepted")
	}
	if err := r.Register(&model.CRS{Projection: proj.NewLongLat(model.AxesENU, model.Greenwich), Datum: model.WGS84Datum}); err == nil {
		t.Error("unnamed CRS accepted")
	}
	if err := r.Register(&model.CRS{Name: "EPSG:0"}); err == nil {
		t.Error("unresolved CRS accepted")
	}
	if err := r.Register(resolvedCRS("EPSG:4326")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(resolvedCRS("EPSG:4326")); err == nil {
		t.Error("duplicate name accepted")
	}
}

func TestGetAndNames(t *testing.T) {
	r := New()
	for _, name := range []string{"b", "a", "c"} {
		if err := r.Register(resolvedCRS(name)); err != nil {
			t.Fatalf("Register(%q): %v", name, err)
		}
	}
	if got, ok := r.Get("b"); !ok || got.Name != "b" {
		t.Errorf("Get(b) = %v, %v", got, ok)
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) found something")
	}
	if got := r.Names(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Names() = %v, want sorted [a b c]", got)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestBuiltinsResolve(t *testing.T) {
	r := NewWithBuiltins()
	wanted := []string{
		"EPSG:4326", "EPSG:4269", "EPSG:4277", "EPSG:4230", "EPSG:4284",
		"EPSG:3857", "EPSG:32633", "EPSG:32733", "EPSG:27700",
		"EPSG:23032", "EPSG:28404", "EPSG:2154",
	}
	for _, name := range wanted {
		crs, ok := r.Get(name)
		if !ok {
			t.Errorf("builtin %s missing", name)
			continue
		}
		if !crs.IsResolved() {
			t.Errorf("builtin %s not resolved", name)
		}
	}
	if r.Len() != len(wanted) {
		t.Errorf("Len() = %d, want %d", r.Len(), len(wanted))
	}
}

func TestBuiltinsTransformable(t *testing.T) {
	r := NewWithBuiltins()
	src, _ := r.Get("EPSG:4326")
	for _, name := range r.Names() {
		tgt, _ := r.Get(name)
		tr, err := core.NewTransform(src, tgt)
		if err != nil {
			t.Errorf("NewTransform(EPSG:4326, %s): %v", name, err)
			continue
		}
		// Somewhere in each CRS's rough area of use.
		probe := map[string]model.Coordinate{
			"EPSG:27700": model.NewCoordinate2D(-1.5, 52.5),
			"EPSG:4277":  model.NewCoordinate2D(-1.5, 52.5),
			"EPSG:23032": model.NewCoordinate2D(7.5, 48),
			"EPSG:4230":  model.NewCoordinate2D(7.5, 48),
			"EPSG:28404": model.NewCoordinate2D(21.5, 55),
			"EPSG:4284":  model.NewCoordinate2D(21.5, 55),
			"EPSG:2154":  model.NewCoordinate2D(2.5, 47),
			"EPSG:32733": model.NewCoordinate2D(15.5, -20),
		}
		in, ok := probe[name]
		if !ok {
			in = model.NewCoordinate2D(15.5, 48)
		}
		out, err := tr.Apply(in)
		if err != nil {
			t.Errorf("Apply via %s: %v", name, err)
			continue
		}
		if math.IsNaN(out.X) || math.IsNaN(out.Y) {
			t.Errorf("Apply via %s produced NaN: %v", name, out)
		}
	}
}

func TestWebMercatorBuiltinKnownValue(t *testing.T) {
	r := NewWithBuiltins()
	src, _ := r.Get("EPSG:4326")
	tgt, _ := r.Get("EPSG:3857")
	tr, err := core.NewTransform(src, tgt)
	if err != nil {
		t.Fatalf("NewTransform: %v", err)
	}
	if tr.DatumTransformRequired() {
		t.Error("EPSG:4326 to EPSG:3857 must not run a datum stage")
	}
	out, err := tr.Apply(model.NewCoordinate2D(180, 0))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if math.Abs(out.X-20037508.342789244) > 1e-3 || math.Abs(out.Y) > 1e-9 {
		t.Errorf("world edge = (%v, %v), want (20037508.34, 0)", out.X, out.Y)
	}
}
