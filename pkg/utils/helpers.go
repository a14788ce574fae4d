package utils

import (
	"fmt"
	"strconv"
)

// NormalizeCell converts a value scanned by a database driver into the type
// the frame layer works with. MySQL text columns arrive as []byte and
// integer columns in assorted widths; both would otherwise break join-key
// comparison across tables.
func NormalizeCell(v interface{}) interface{} {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return int64(val)
	default:
		return v
	}
}

// KeyString renders a value as a join/group key. Numbers of the same
// magnitude collapse to the same key regardless of scanned width, so an
// INT id on one side joins a BIGINT reference on the other.
func KeyString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}
