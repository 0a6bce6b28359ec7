package upstream

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type scalarKind int

const (
	kindNull scalarKind = iota
	kindString
	kindInt
	kindFloat
	kindBool
)

// Scalar is the closed variant type for the search API's positional slots,
// where the same offset may carry a string, integer, float, bool or null
// depending on the record. Decoding tries each shape in that order.
type Scalar struct {
	kind scalarKind
	str  string
	i    int64
	f    float64
	b    bool
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Scalar{kind: kindNull}
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Scalar{kind: kindString, str: str}
		return nil
	}
	var i int64
	if err := json.Unmarshal(data, &i); err == nil {
		*s = Scalar{kind: kindInt, i: i}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*s = Scalar{kind: kindFloat, f: f}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = Scalar{kind: kindBool, b: b}
		return nil
	}
	return fmt.Errorf("not a JSON scalar: %s", data)
}

// String projects the scalar to display text. Null renders as "".
func (s Scalar) String() string {
	switch s.kind {
	case kindString:
		return s.str
	case kindInt:
		return strconv.FormatInt(s.i, 10)
	case kindFloat:
		return strconv.FormatFloat(s.f, 'g', -1, 64)
	case kindBool:
		return strconv.FormatBool(s.b)
	default:
		return ""
	}
}

// displayString is the coercion rule for identifier and text slots: an
// absent or blank value reads as "missing" rather than "".
func displayString(s Scalar) string {
	if v := strings.TrimSpace(s.String()); v != "" {
		return v
	}
	return "missing"
}
