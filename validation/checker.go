package validation

import (
	"fmt"

	geotools "github.com/tingold/orb-geotools"
)

// checker walks a decoded JSON value and collects every problem found.
// Paths use JSON pointer-ish notation, e.g. "features[2].geometry".
type checker struct {
	messages []string
}

func (c *checker) fail(path, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if path != "" {
		msg = path + ": " + msg
	}
	c.messages = append(c.messages, msg)
}

func join(path, member string) string {
	if path == "" {
		return member
	}
	return path + "." + member
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func (c *checker) object(path string, v interface{}) (map[string]interface{}, bool) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		c.fail(path, "must be a JSON object")
	}
	return obj, ok
}

func (c *checker) array(path string, v interface{}) ([]interface{}, bool) {
	arr, ok := v.([]interface{})
	if !ok {
		c.fail(path, "must be an array")
	}
	return arr, ok
}

func (c *checker) typeIs(path string, obj map[string]interface{}, want string) bool {
	t, ok := obj["type"].(string)
	if !ok {
		c.fail(path, `"type" member is required and must be a string`)
		return false
	}
	if t != want {
		c.fail(path, "type must be %q, got %q", want, t)
		return false
	}
	return true
}

func (c *checker) any(path string, v interface{}) {
	obj, ok := c.object(path, v)
	if !ok {
		return
	}
	switch obj["type"] {
	case geotools.KindFeature:
		c.feature(path, obj)
	case geotools.KindFeatureCollection:
		c.featureCollection(path, obj)
	default:
		c.geometry(path, obj)
	}
}

func (c *checker) bbox(path string, obj map[string]interface{}) {
	raw, present := obj["bbox"]
	if !present {
		return
	}
	arr, ok := c.array(join(path, "bbox"), raw)
	if !ok {
		return
	}
	if len(arr) < 4 || len(arr)%2 != 0 {
		c.fail(join(path, "bbox"), "must hold 2*n numbers with n >= 2, got %d", len(arr))
	}
	for i, n := range arr {
		if _, ok := n.(float64); !ok {
			c.fail(index(join(path, "bbox"), i), "must be a number")
		}
	}
}

func (c *checker) position(path string, v interface{}) {
	arr, ok := c.array(path, v)
	if !ok {
		return
	}
	if len(arr) < 2 {
		c.fail(path, "position must have at least two elements, got %d", len(arr))
	}
	for i, n := range arr {
		if _, ok := n.(float64); !ok {
			c.fail(index(path, i), "position elements must be numbers")
		}
	}
}

func (c *checker) positions(path string, v interface{}, minCount int) []interface{} {
	arr, ok := c.array(path, v)
	if !ok {
		return nil
	}
	if len(arr) < minCount {
		c.fail(path, "must have at least %d positions, got %d", minCount, len(arr))
	}
	for i, p := range arr {
		c.position(index(path, i), p)
	}
	return arr
}

func (c *checker) linearRing(path string, v interface{}) {
	arr := c.positions(path, v, 4)
	if len(arr) < 2 {
		return
	}
	first, ok1 := arr[0].([]interface{})
	last, ok2 := arr[len(arr)-1].([]interface{})
	if !ok1 || !ok2 {
		return
	}
	if len(first) != len(last) {
		c.fail(path, "first and last positions of a linear ring must be equivalent")
		return
	}
	for i := range first {
		if first[i] != last[i] {
			c.fail(path, "first and last positions of a linear ring must be equivalent")
			return
		}
	}
}

func (c *checker) polygonCoordinates(path string, v interface{}) {
	rings, ok := c.array(path, v)
	if !ok {
		return
	}
	for i, r := range rings {
		c.linearRing(index(path, i), r)
	}
}

func (c *checker) geometry(path string, v interface{}) {
	obj, ok := c.object(path, v)
	if !ok {
		return
	}

	kind, _ := obj["type"].(string)
	if !geotools.IsGeometryKind(kind) {
		c.fail(path, "type must be a geometry type, got %q", kind)
		return
	}
	c.bbox(path, obj)

	if kind == geotools.KindGeometryCollection {
		geoms, ok := c.array(join(path, "geometries"), obj["geometries"])
		if !ok {
			return
		}
		for i, g := range geoms {
			c.geometry(index(join(path, "geometries"), i), g)
		}
		return
	}

	coords, present := obj["coordinates"]
	if !present {
		c.fail(path, `"coordinates" member is required`)
		return
	}

	cpath := join(path, "coordinates")
	switch kind {
	case geotools.KindPoint:
		c.position(cpath, coords)

	case geotools.KindMultiPoint:
		c.positions(cpath, coords, 0)

	case geotools.KindLineString:
		c.positions(cpath, coords, 2)

	case geotools.KindMultiLineString:
		lines, ok := c.array(cpath, coords)
		if !ok {
			return
		}
		for i, l := range lines {
			c.positions(index(cpath, i), l, 2)
		}

	case geotools.KindPolygon:
		c.polygonCoordinates(cpath, coords)

	case geotools.KindMultiPolygon:
		polys, ok := c.array(cpath, coords)
		if !ok {
			return
		}
		for i, p := range polys {
			c.polygonCoordinates(index(cpath, i), p)
		}
	}
}

func (c *checker) feature(path string, v interface{}) {
	obj, ok := c.object(path, v)
	if !ok || !c.typeIs(path, obj, geotools.KindFeature) {
		return
	}
	c.bbox(path, obj)

	if id, present := obj["id"]; present {
		switch id.(type) {
		case string, float64:
		default:
			c.fail(join(path, "id"), "must be a string or a number")
		}
	}

	geom, present := obj["geometry"]
	switch {
	case !present:
		c.fail(path, `"geometry" member is required`)
	case geom != nil:
		c.geometry(join(path, "geometry"), geom)
	}

	props, present := obj["properties"]
	switch {
	case !present:
		c.fail(path, `"properties" member is required`)
	case props != nil:
		if _, ok := props.(map[string]interface{}); !ok {
			c.fail(join(path, "properties"), "must be an object or null")
		}
	}
}

func (c *checker) featureCollection(path string, v interface{}) {
	obj, ok := c.object(path, v)
	if !ok || !c.typeIs(path, obj, geotools.KindFeatureCollection) {
		return
	}
	c.bbox(path, obj)

	features, ok := c.array(join(path, "features"), obj["features"])
	if !ok {
		return
	}
	for i, f := range features {
		c.feature(index(join(path, "features"), i), f)
	}
}
