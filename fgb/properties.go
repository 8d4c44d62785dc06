package fgb

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb/geojson"
)

type column struct {
	name string
	typ  flattypes.ColumnType
}

// schema is the ordered column list of a layer. Property buffers address
// columns by their position in it.
type schema []column

// inferSchema collects every non-null property of features, sorted by name,
// widening the column type when features disagree.
func inferSchema(features []*geojson.Feature) schema {
	types := make(map[string]flattypes.ColumnType)
	for _, f := range features {
		if f == nil {
			continue
		}
		for name, v := range f.Properties {
			if v == nil {
				continue
			}
			t := columnType(v)
			if prev, ok := types[name]; ok {
				t = widen(prev, t)
			}
			types[name] = t
		}
	}

	s := make(schema, 0, len(types))
	for name, t := range types {
		s = append(s, column{name: name, typ: t})
	}
	sort.Slice(s, func(i, j int) bool { return s[i].name < s[j].name })
	return s
}

func columnType(v any) flattypes.ColumnType {
	switch v := v.(type) {
	case bool:
		return flattypes.ColumnTypeBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		return flattypes.ColumnTypeLong
	case uint64:
		return flattypes.ColumnTypeULong
	case float32, float64:
		return flattypes.ColumnTypeDouble
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return flattypes.ColumnTypeLong
		}
		return flattypes.ColumnTypeDouble
	case string:
		return flattypes.ColumnTypeString
	}
	return flattypes.ColumnTypeJson
}

func isNumeric(t flattypes.ColumnType) bool {
	return t == flattypes.ColumnTypeLong || t == flattypes.ColumnTypeULong || t == flattypes.ColumnTypeDouble
}

func widen(a, b flattypes.ColumnType) flattypes.ColumnType {
	switch {
	case a == b:
		return a
	case isNumeric(a) && isNumeric(b):
		// Long and ULong share no integer type holding both ranges
		return flattypes.ColumnTypeDouble
	case a == flattypes.ColumnTypeString || b == flattypes.ColumnTypeString:
		return flattypes.ColumnTypeString
	}
	return flattypes.ColumnTypeJson
}

func (s schema) columns(b *flatbuffers.Builder) []*writer.Column {
	if len(s) == 0 {
		return nil
	}
	cols := make([]*writer.Column, len(s))
	for i, c := range s {
		col := writer.NewColumn(b)
		col.SetName(c.name)
		col.SetTitle(c.name)
		col.SetType(c.typ)
		col.SetNullable(true)
		cols[i] = col
	}
	return cols
}

// encode writes each non-null property as a little endian uint16 column
// index followed by the value in the column's encoding.
func (s schema) encode(props geojson.Properties) []byte {
	var buf []byte
	for i, c := range s {
		v, ok := props[c.name]
		if !ok || v == nil {
			continue
		}
		val, ok := encodeValue(c.typ, v)
		if !ok {
			continue
		}
		buf = binary.LittleEndian.AppendUint16(buf, uint16(i))
		buf = append(buf, val...)
	}
	return buf
}

func encodeValue(t flattypes.ColumnType, v any) ([]byte, bool) {
	le := binary.LittleEndian
	switch t {
	case flattypes.ColumnTypeBool:
		b, ok := v.(bool)
		if !ok {
			return nil, false
		}
		if b {
			return []byte{1}, true
		}
		return []byte{0}, true
	case flattypes.ColumnTypeLong:
		n, ok := asInt64(v)
		return le.AppendUint64(nil, uint64(n)), ok
	case flattypes.ColumnTypeULong:
		n, ok := v.(uint64)
		return le.AppendUint64(nil, n), ok
	case flattypes.ColumnTypeDouble:
		f, ok := asFloat64(v)
		return le.AppendUint64(nil, math.Float64bits(f)), ok
	case flattypes.ColumnTypeString:
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		return lengthPrefixed([]byte(s)), true
	case flattypes.ColumnTypeJson:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, false
		}
		return lengthPrefixed(raw), true
	}
	return nil, false
}

func lengthPrefixed(data []byte) []byte {
	out := binary.LittleEndian.AppendUint32(make([]byte, 0, 4+len(data)), uint32(len(data)))
	return append(out, data...)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	i, ok := asInt64(v)
	return float64(i), ok
}

// headerSchema reads the column list of a file.
func headerSchema(h *flattypes.Header) schema {
	s := make(schema, 0, h.ColumnsLength())
	for i := 0; i < h.ColumnsLength(); i++ {
		var col flattypes.Column
		if h.Columns(&col, i) {
			s = append(s, column{name: string(col.Name()), typ: col.Type()})
		}
	}
	return s
}

// decode reads a property buffer. Decoding stops at the first malformed
// entry; what was read so far is kept.
func (s schema) decode(data []byte) geojson.Properties {
	if len(data) == 0 || len(s) == 0 {
		return nil
	}

	props := make(geojson.Properties)
	for len(data) >= 2 {
		idx := int(binary.LittleEndian.Uint16(data))
		if idx >= len(s) {
			break
		}
		v, n := decodeValue(s[idx].typ, data[2:])
		if n == 0 {
			break
		}
		props[s[idx].name] = v
		data = data[2+n:]
	}
	return props
}

var fixedWidth = map[flattypes.ColumnType]int{
	flattypes.ColumnTypeBool:   1,
	flattypes.ColumnTypeByte:   1,
	flattypes.ColumnTypeUByte:  1,
	flattypes.ColumnTypeShort:  2,
	flattypes.ColumnTypeUShort: 2,
	flattypes.ColumnTypeInt:    4,
	flattypes.ColumnTypeUInt:   4,
	flattypes.ColumnTypeFloat:  4,
	flattypes.ColumnTypeLong:   8,
	flattypes.ColumnTypeULong:  8,
	flattypes.ColumnTypeDouble: 8,
}

// decodeValue returns the value and the number of bytes it used, or 0 bytes
// when data is too short or the type is unknown.
func decodeValue(t flattypes.ColumnType, data []byte) (any, int) {
	le := binary.LittleEndian

	if w, ok := fixedWidth[t]; ok {
		if len(data) < w {
			return nil, 0
		}
		switch t {
		case flattypes.ColumnTypeBool:
			return data[0] != 0, w
		case flattypes.ColumnTypeByte:
			return int64(int8(data[0])), w
		case flattypes.ColumnTypeUByte:
			return int64(data[0]), w
		case flattypes.ColumnTypeShort:
			return int64(int16(le.Uint16(data))), w
		case flattypes.ColumnTypeUShort:
			return int64(le.Uint16(data)), w
		case flattypes.ColumnTypeInt:
			return int64(int32(le.Uint32(data))), w
		case flattypes.ColumnTypeUInt:
			return int64(le.Uint32(data)), w
		case flattypes.ColumnTypeFloat:
			return float64(math.Float32frombits(le.Uint32(data))), w
		case flattypes.ColumnTypeLong:
			return int64(le.Uint64(data)), w
		case flattypes.ColumnTypeULong:
			return le.Uint64(data), w
		default:
			return math.Float64frombits(le.Uint64(data)), w
		}
	}

	if len(data) < 4 {
		return nil, 0
	}
	n := int(le.Uint32(data))
	if len(data) < 4+n {
		return nil, 0
	}
	raw := data[4 : 4+n]

	switch t {
	case flattypes.ColumnTypeString, flattypes.ColumnTypeDateTime:
		return string(raw), 4 + n
	case flattypes.ColumnTypeJson:
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return string(raw), 4 + n
		}
		return v, 4 + n
	case flattypes.ColumnTypeBinary:
		return append([]byte(nil), raw...), 4 + n
	}
	return nil, 0
}
