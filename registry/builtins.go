package registry

import (
	"github.com/geodesyworks/reproj/model"
	"github.com/geodesyworks/reproj/proj"
)

// NewWithBuiltins constructs a registry preloaded with a working set of
// common CRS definitions: the geographic systems of the built-in datums plus
// a spread of projected grids covering all three projection families.
func NewWithBuiltins() *Registry {
	r := New()

	add := func(name string, p model.Projection, d *model.Datum) {
		if err := r.Register(&model.CRS{Name: name, Projection: p, Datum: d}); err != nil {
			panic(err)
		}
	}

	// Geographic systems.
	add("EPSG:4326", proj.NewLongLat(model.AxesENU, model.Greenwich), model.WGS84Datum)
	add("EPSG:4269", proj.NewLongLat(model.AxesENU, model.Greenwich), model.NAD83Datum)
	add("EPSG:4277", proj.NewLongLat(model.AxesENU, model.Greenwich), model.OSGB36Datum)
	add("EPSG:4230", proj.NewLongLat(model.AxesENU, model.Greenwich), model.ED50Datum)
	add("EPSG:4284", proj.NewLongLat(model.AxesENU, model.Greenwich), model.Pulkovo1942Datum)

	// Web Mercator: spherical formulas on the WGS84-radius sphere, WGS84
	// datum. The ellipsoid mismatch is part of the definition, not a bug.
	webMercator := must(proj.NewMercator(proj.Params{
		Ellipsoid: model.WebSphereEllipsoid,
	}))
	add("EPSG:3857", webMercator, model.WGS84Datum)

	// UTM zone 33, both hemispheres.
	utm33N := must(proj.NewTransverseMercator(proj.Params{
		Ellipsoid:          model.WGS84Ellipsoid,
		CentralMeridianDeg: 15,
		ScaleFactor:        0.9996,
		FalseEasting:       500000,
	}))
	add("EPSG:32633", utm33N, model.WGS84Datum)

	utm33S := must(proj.NewTransverseMercator(proj.Params{
		Ellipsoid:          model.WGS84Ellipsoid,
		CentralMeridianDeg: 15,
		ScaleFactor:        0.9996,
		FalseEasting:       500000,
		FalseNorthing:      10000000,
	}))
	add("EPSG:32733", utm33S, model.WGS84Datum)

	// British National Grid on OSGB36/Airy.
	bng := must(proj.NewTransverseMercator(proj.Params{
		Ellipsoid:          model.Airy1830Ellipsoid,
		CentralMeridianDeg: -2,
		LatitudeOriginDeg:  49,
		ScaleFactor:        0.9996012717,
		FalseEasting:       400000,
		FalseNorthing:      -100000,
	}))
	add("EPSG:27700", bng, model.OSGB36Datum)

	// ED50 / UTM zone 32N on International 1924.
	ed50utm32 := must(proj.NewTransverseMercator(proj.Params{
		Ellipsoid:          model.Intl1924Ellipsoid,
		CentralMeridianDeg: 9,
		ScaleFactor:        0.9996,
		FalseEasting:       500000,
	}))
	add("EPSG:23032", ed50utm32, model.ED50Datum)

	// Pulkovo 1942 / Gauss-Krüger zone 4 on Krassovsky.
	gk4 := must(proj.NewTransverseMercator(proj.Params{
		Ellipsoid:          model.KrassovskyEllipsoid,
		CentralMeridianDeg: 21,
		FalseEasting:       4500000,
	}))
	add("EPSG:28404", gk4, model.Pulkovo1942Datum)

	// RGF93 / Lambert-93, the French national grid.
	lambert93 := must(proj.NewLambertConformalConic(proj.Params{
		Ellipsoid:          model.GRS80Ellipsoid,
		CentralMeridianDeg: 3,
		LatitudeOriginDeg:  46.5,
		FalseEasting:       700000,
		FalseNorthing:      6600000,
	}, 49, 44))
	add("EPSG:2154", lambert93, model.RGF93Datum)

	return r
}

func must[P model.Projection](p P, err error) P {
	if err != nil {
		panic(err)
	}
	return p
}
