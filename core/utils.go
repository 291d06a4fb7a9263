package core

import (
	"encoding/json"
	"fmt"
	urlpkg "net/url"
	"reflect"
	"strconv"
	"strings"
)

func toInt(val any) (int64, error) {
	var idInt int64
	switch v := val.(type) {
	case int64:
		idInt = v
	case int32:
		idInt = int64(v)
	case float64:
		idInt = int64(v)
	case int:
		idInt = int64(v)
	case json.Number:
		return v.Int64()
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("unexpected value for id field: %q", v)
		}
		idInt = parsed
	default:
		return 0, fmt.Errorf("unexpected type for id field: %T", v)
	}
	return idInt, nil
}

// BuildResourcePathWithID builds a resource path with an ID and optional trailing segments.
// Integer ids are formatted in decimal; string ids are path-escaped as given,
// so "007" stays "007". A nil or blank id is an error.
//
//	BuildResourcePathWithID("/articles", 7, "toggle-publish") // "/articles/7/toggle-publish"
//	BuildResourcePathWithID("/articles/type", "news letter")  // "/articles/type/news%20letter"
func BuildResourcePathWithID(resourcePath string, id any, additionalSegments ...string) (string, error) {
	segment, err := idSegment(id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", resourcePath, err)
	}
	path := strings.TrimRight(resourcePath, "/") + "/" + segment
	for _, extra := range additionalSegments {
		path += "/" + strings.Trim(extra, "/")
	}
	return path, nil
}

// idSegment renders id as a single escaped path segment.
func idSegment(id any) (string, error) {
	if isNilValue(id) {
		return "", ErrEmptyID
	}
	switch v := id.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", ErrEmptyID
		}
		return urlpkg.PathEscape(v), nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return strconv.FormatInt(n, 10), nil
		}
		return urlpkg.PathEscape(v.String()), nil
	case float32, float64:
		f := reflect.ValueOf(v).Float()
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10), nil
		}
		return "", fmt.Errorf("id must be an integer or a string, got %v", v)
	}
	rv := reflect.ValueOf(id)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.String:
		return idSegment(rv.String())
	}
	text := fmt.Sprint(id)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyID
	}
	return urlpkg.PathEscape(text), nil
}

// structToMap converts a struct to a map using json tags, recursing into nested structs.
// Nil pointers are dropped when the field is omitempty, non-nil pointers are dereferenced.
func structToMap(item any) map[string]any {
	res := map[string]any{}
	if item == nil {
		return res
	}

	v := reflect.TypeOf(item)
	reflectValue := reflect.Indirect(reflect.ValueOf(item))
	if v.Kind() == reflect.Ptr {
		if reflect.ValueOf(item).IsNil() {
			return res
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return res
	}

	for i := 0; i < v.NumField(); i++ {
		structField := v.Field(i)
		field := reflectValue.Field(i)
		if !field.CanInterface() {
			continue
		}
		// RawData is an escape hatch handled by NewParamsFromStruct.
		if structField.Name == "RawData" {
			continue
		}
		tagName, omitEmpty := parseJSONTag(structField.Tag.Get("json"))
		if tagName == "" || tagName == "-" {
			continue
		}

		switch {
		case field.Kind() == reflect.Ptr:
			if field.IsNil() {
				if omitEmpty {
					continue
				}
				res[tagName] = nil
			} else if field.Elem().Kind() == reflect.Struct {
				res[tagName] = structToMap(field.Interface())
			} else {
				res[tagName] = field.Elem().Interface()
			}

		case field.Kind() == reflect.Struct:
			res[tagName] = structToMap(field.Interface())

		case field.Kind() == reflect.Slice || field.Kind() == reflect.Map:
			if field.IsNil() || field.Len() == 0 {
				if omitEmpty {
					continue
				}
			}
			res[tagName] = field.Interface()

		default:
			if omitEmpty && field.IsZero() {
				continue
			}
			res[tagName] = field.Interface()
		}
	}
	return res
}

// parseJSONTag parses a json struct tag into the field name and whether omitempty is set.
//   - `json:"name"` returns ("name", false)
//   - `json:"name,omitempty"` returns ("name", true)
//   - `json:"-"` returns ("-", false)
func parseJSONTag(tag string) (name string, omitEmpty bool) {
	if tag == "" {
		return "", false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "omitempty" {
			omitEmpty = true
			break
		}
	}
	return name, omitEmpty
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("must: %v", err))
	}
	return v
}

// toBool interprets common truthy/falsy representations.
func toBool(val any) (bool, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "y", "on":
			return true, nil
		case "false", "0", "no", "n", "off", "":
			return false, nil
		}
		return false, fmt.Errorf("cannot convert %q to bool", v)
	case int:
		return v != 0, nil
	case int32:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case uint:
		return v != 0, nil
	case uint64:
		return v != 0, nil
	case float32:
		return v != 0, nil
	case float64:
		return v != 0, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return false, err
		}
		return f != 0, nil
	}
	return false, fmt.Errorf("cannot convert %T to bool", val)
}
