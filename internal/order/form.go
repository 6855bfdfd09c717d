package order

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// maxFormIndex caps bracket-indexed array positions so a hostile form
// cannot allocate huge sparse slices.
const maxFormIndex = 1000

// top-level fields recognized on the order form; anything else is
// rejected instead of silently dropped.
var formGroups = map[string]bool{
	"personalInfo": true,
	"cardDesign":   true,
	"deliveryInfo": true,
	"product":      true,
	"notes":        true,
}

// ParseForm converts a flat form-encoded mapping, including
// bracket-path keys such as personalInfo[name] and
// personalInfo[phoneNumbers][0], into a typed order request.
// String booleans under cardDesign.includePrintedLogo and
// deliveryInfo.useSameContact are coerced; color tokens are
// canonicalized. Unrecognized keys fail with a validation error.
func ParseForm(values url.Values) (*Request, error) {
	nested := make(map[string]interface{})
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		path, err := parseBracketPath(key)
		if err != nil {
			return nil, Validationf("Unrecognized field: %s", key)
		}
		if !formGroups[path[0]] {
			return nil, Validationf("Unrecognized field: %s", key)
		}
		out, err := setPath(nested, path, vals[0])
		if err != nil {
			return nil, err
		}
		nested = out.(map[string]interface{})
	}

	coerceFormBool(nested, "cardDesign", "includePrintedLogo")
	coerceFormBool(nested, "deliveryInfo", "useSameContact")
	if design, ok := nested["cardDesign"].(map[string]interface{}); ok {
		if color, ok := design["color"].(string); ok {
			design["color"] = CanonicalColor(color)
		}
	}

	return decodeRequest(nested)
}

func decodeRequest(nested map[string]interface{}) (*Request, error) {
	var req Request
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &req,
		TagName:     "mapstructure",
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(nested); err != nil {
		return nil, Validationf("Invalid order payload: %v", err)
	}
	return &req, nil
}

// parseBracketPath splits personalInfo[phoneNumbers][0] into
// ["personalInfo", "phoneNumbers", "0"]. A key without brackets maps to
// a single segment.
func parseBracketPath(key string) ([]string, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		if key == "" {
			return nil, Validationf("empty form key")
		}
		return []string{key}, nil
	}
	base := key[:open]
	if base == "" {
		return nil, Validationf("malformed form key: %s", key)
	}
	path := []string{base}
	rest := key[open:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			return nil, Validationf("malformed form key: %s", key)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, Validationf("malformed form key: %s", key)
		}
		seg := rest[1:end]
		if seg == "" {
			return nil, Validationf("malformed form key: %s", key)
		}
		path = append(path, seg)
		rest = rest[end+1:]
	}
	return path, nil
}

// setPath writes val at path inside container, materializing nested
// maps and sparse slices as needed. Numeric segments address slice
// positions; gaps stay nil and decode to zero values.
func setPath(container interface{}, path []string, val interface{}) (interface{}, error) {
	seg := path[0]
	if idx, err := strconv.Atoi(seg); err == nil && idx >= 0 {
		if idx > maxFormIndex {
			return nil, Validationf("form array index out of range: %d", idx)
		}
		slice, _ := container.([]interface{})
		for len(slice) <= idx {
			slice = append(slice, nil)
		}
		if len(path) == 1 {
			slice[idx] = val
			return slice, nil
		}
		child, err := setPath(slice[idx], path[1:], val)
		if err != nil {
			return nil, err
		}
		slice[idx] = child
		return slice, nil
	}

	m, _ := container.(map[string]interface{})
	if m == nil {
		m = make(map[string]interface{})
	}
	if len(path) == 1 {
		m[seg] = val
		return m, nil
	}
	child, err := setPath(m[seg], path[1:], val)
	if err != nil {
		return nil, err
	}
	m[seg] = child
	return m, nil
}

// coerceFormBool turns the literal strings "true"/"false" into real
// booleans. Any other value is left untouched and surfaces as a value
// error when the request is decoded.
func coerceFormBool(nested map[string]interface{}, group, field string) {
	g, ok := nested[group].(map[string]interface{})
	if !ok {
		return
	}
	s, ok := g[field].(string)
	if !ok {
		return
	}
	if s == "true" || s == "false" {
		g[field] = cast.ToBool(s)
	}
}

// CanonicalColor maps recognized black/white aliases (names or hex) to
// the literal tokens "black"/"white"; other values pass through.
func CanonicalColor(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "black", "#000", "#000000":
		return "black"
	case "white", "#fff", "#ffffff":
		return "white"
	}
	return v
}
