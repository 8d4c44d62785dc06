package random

import (
	"sync"

	"github.com/paulmach/orb"

	"github.com/tingold/orb-geotools/config"
)

var (
	defaultOnce sync.Once
	defaultGen  *Generator
	defaultErr  error
)

// Default returns the package generator. Its configuration is read from the
// environment on first use and never again.
func Default() (*Generator, error) {
	defaultOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			defaultErr = err
			return
		}
		defaultGen, defaultErr = New(cfg, nil)
	})
	return defaultGen, defaultErr
}

// Longitude calls Generator.Longitude on the default generator.
func Longitude(opts ...Option) (float64, error) {
	g, err := Default()
	if err != nil {
		return 0, err
	}
	return g.Longitude(opts...)
}

// Latitude calls Generator.Latitude on the default generator.
func Latitude(opts ...Option) (float64, error) {
	g, err := Default()
	if err != nil {
		return 0, err
	}
	return g.Latitude(opts...)
}

// Position calls Generator.Position on the default generator.
func Position(opts ...Option) (orb.Point, error) {
	g, err := Default()
	if err != nil {
		return orb.Point{}, err
	}
	return g.Position(opts...)
}

// Positions calls Generator.Positions on the default generator.
func Positions(opts ...Option) ([]orb.Point, error) {
	g, err := Default()
	if err != nil {
		return nil, err
	}
	return g.Positions(opts...)
}

// Point calls Generator.Point on the default generator.
func Point(opts ...Option) (orb.Point, error) {
	g, err := Default()
	if err != nil {
		return orb.Point{}, err
	}
	return g.Point(opts...)
}

// LineString calls Generator.LineString on the default generator.
func LineString(opts ...Option) (orb.LineString, error) {
	g, err := Default()
	if err != nil {
		return nil, err
	}
	return g.LineString(opts...)
}

// Polygon calls Generator.Polygon on the default generator.
func Polygon(opts ...Option) (orb.Polygon, error) {
	g, err := Default()
	if err != nil {
		return nil, err
	}
	return g.Polygon(opts...)
}

// MultiPoint calls Generator.MultiPoint on the default generator.
func MultiPoint(opts ...Option) (orb.MultiPoint, error) {
	g, err := Default()
	if err != nil {
		return nil, err
	}
	return g.MultiPoint(opts...)
}

// MultiLineString calls Generator.MultiLineString on the default generator.
func MultiLineString(opts ...Option) (orb.MultiLineString, error) {
	g, err := Default()
	if err != nil {
		return nil, err
	}
	return g.MultiLineString(opts...)
}

// MultiPolygon calls Generator.MultiPolygon on the default generator.
func MultiPolygon(opts ...Option) (orb.MultiPolygon, error) {
	g, err := Default()
	if err != nil {
		return nil, err
	}
	return g.MultiPolygon(opts...)
}

// Geometry calls Generator.Geometry on the default generator.
func Geometry(opts ...Option) (orb.Geometry, error) {
	g, err := Default()
	if err != nil {
		return nil, err
	}
	return g.Geometry(opts...)
}

// GeometryCollection calls Generator.GeometryCollection on the default
// generator.
func GeometryCollection(opts ...Option) (orb.Collection, error) {
	g, err := Default()
	if err != nil {
		return nil, err
	}
	return g.GeometryCollection(opts...)
}
