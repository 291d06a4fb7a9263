package core

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// FlexibleUnmarshal unmarshals JSON into target, reconciling scalar types that
// the backend is loose about:
//   - string fields accept numbers and booleans ("views": 12 -> "12")
//   - numeric fields accept numeric strings ("price": "19.5" -> 19.5)
//   - bool fields accept "true"/"false"/"1"/"0" and numbers
//
// Structs, slices, maps and pointers are walked recursively. Any target kind
// accepted by encoding/json is accepted here.
func FlexibleUnmarshal(data []byte, target any) error {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr || targetValue.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer")
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	converted := convertValue(raw, targetValue.Elem().Type())

	convertedJSON, err := json.Marshal(converted)
	if err != nil {
		return err
	}
	return json.Unmarshal(convertedJSON, target)
}

// convertValue converts a decoded JSON value to fit targetType.
func convertValue(value any, targetType reflect.Type) any {
	if value == nil {
		return nil
	}
	for targetType.Kind() == reflect.Ptr {
		targetType = targetType.Elem()
	}
	if targetType.Implements(jsonUnmarshalerType) || reflect.PointerTo(targetType).Implements(jsonUnmarshalerType) {
		return value
	}

	switch targetType.Kind() {
	case reflect.String:
		return convertToString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return convertToNumber(value)
	case reflect.Bool:
		if b, err := toBool(value); err == nil {
			return b
		}
		return value
	case reflect.Slice, reflect.Array:
		if arr, ok := value.([]any); ok {
			elemType := targetType.Elem()
			result := make([]any, len(arr))
			for i, item := range arr {
				result[i] = convertValue(item, elemType)
			}
			return result
		}
	case reflect.Map:
		if m, ok := value.(map[string]any); ok {
			elemType := targetType.Elem()
			result := make(map[string]any, len(m))
			for k, v := range m {
				result[k] = convertValue(v, elemType)
			}
			return result
		}
	case reflect.Struct:
		if m, ok := value.(map[string]any); ok {
			return convertMapToStruct(m, targetType)
		}
	}
	return value
}

var jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

// convertMapToStruct converts map values to match the struct's field types.
func convertMapToStruct(data map[string]any, structType reflect.Type) map[string]any {
	result := make(map[string]any, len(data))
	for key, value := range data {
		field, found := findFieldByJSONTag(structType, key)
		if !found {
			result[key] = value
			continue
		}
		result[key] = convertValue(value, field.Type)
	}
	return result
}

// convertToString stringifies scalars; objects and arrays are left alone so
// encoding/json reports the mismatch.
func convertToString(value any) any {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return value
	}
}

// convertToNumber parses numeric strings. An empty string becomes nil so the
// field keeps its zero value.
func convertToNumber(value any) any {
	s, ok := value.(string)
	if !ok {
		if b, isBool := value.(bool); isBool {
			if b {
				return 1
			}
			return 0
		}
		return value
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return value
}

// findFieldByJSONTag finds a struct field by its json name, falling back to a
// case-insensitive match on untagged field names the way encoding/json does.
// Embedded structs are searched as well.
func findFieldByJSONTag(structType reflect.Type, jsonKey string) (reflect.StructField, bool) {
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		tagName, _ := parseJSONTag(field.Tag.Get("json"))
		if tagName == "-" {
			continue
		}
		if field.Anonymous && tagName == "" {
			embedded := field.Type
			if embedded.Kind() == reflect.Ptr {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				if f, ok := findFieldByJSONTag(embedded, jsonKey); ok {
					return f, true
				}
			}
			continue
		}
		if tagName == jsonKey {
			return field, true
		}
		if tagName == "" && strings.EqualFold(field.Name, jsonKey) {
			return field, true
		}
	}
	return reflect.StructField{}, false
}
