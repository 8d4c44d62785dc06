// Package fgb writes orb geometries and geojson features to FlatGeobuf and
// reads them back. Files are always written with a packed Hilbert R-tree
// index, which the reader relies on to walk every feature.
package fgb

import (
	"errors"

	"github.com/paulmach/orb"
)

var (
	ErrEmpty           = errors.New("fgb: nothing to write")
	ErrUnsupportedType = errors.New("fgb: unsupported geometry type")
	ErrNoIndex         = errors.New("fgb: file has no spatial index")
	ErrClosed          = errors.New("fgb: reader is closed")
	ErrInvalidData     = errors.New("fgb: invalid data")
)

// CRS identifies the coordinate reference system of a layer.
type CRS struct {
	Code        int
	Name        string
	Description string
	WKT         string
}

// WGS84 is EPSG:4326, the CRS of every geometry this module generates.
func WGS84() *CRS {
	return &CRS{Code: 4326, Name: "WGS 84"}
}

// Option configures a write.
type Option func(*options)

type options struct {
	name        string
	description string
	crs         *CRS
}

func newOptions(opts []Option) options {
	o := options{crs: WGS84()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithName sets the layer name stored in the header.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithDescription sets the layer description stored in the header.
func WithDescription(description string) Option {
	return func(o *options) {
		o.description = description
	}
}

// WithCRS overrides the default WGS84 CRS. A nil crs writes none.
func WithCRS(crs *CRS) Option {
	return func(o *options) {
		o.crs = crs
	}
}

// Column describes one property column of a layer.
type Column struct {
	Name        string
	Type        string
	Title       string
	Description string
	Nullable    bool
}

// Header is the layer metadata at the start of a file.
type Header struct {
	Name          string
	Description   string
	GeometryType  string
	FeaturesCount uint64
	Envelope      orb.Bound
	CRS           *CRS
	HasIndex      bool
	Columns       []Column
}
