package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"sort"
	"strings"

	"github.com/bndr/gotabulate"
)

const (
	ResourceTypeKey = "@resourceType"
	RawValueKey     = "@raw" // holds scalar payloads that are not JSON objects
)

var empty = struct{}{}

// printableAttrs are rendered as their own table rows; the rest is folded
// into a single compact JSON row.
var printableAttrs = map[string]struct{}{
	"id":          empty,
	"name":        empty,
	"title":       empty,
	"type":        empty,
	"category":    empty,
	"category_id": empty,
	"author":      empty,
	"published":   empty,
	"is_active":   empty,
	"isRead":      empty,
	"sort_order":  empty,
	"price":       empty,
	"phone":       empty,
	"email":       empty,
	"address":     empty,
	"url":         empty,
	RawValueKey:   empty,
}

type FillFunc func(Record, any) error

var fillFunc FillFunc = func(r Record, container any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return FlexibleUnmarshal(data, container)
}

//  ######################################################
//              FUNCTION PARAMS
//  ######################################################

// Params represents a flat set of key-value parameters used for query strings
// and request bodies.
type Params map[string]any

// FileData represents a file to be uploaded in multipart form data.
type FileData struct {
	Filename string
	Content  []byte
}

// ToQuery serializes the Params into a URL-encoded query string, skipping nil values.
func (pr Params) ToQuery() string {
	return convertMapToQuery(pr)
}

// ToBody serializes the Params into a JSON-encoded io.Reader.
func (pr Params) ToBody() (io.Reader, error) {
	buffer, err := json.Marshal(pr)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(buffer), nil
}

// MultipartFormData represents the result of ToMultipartFormData()
type MultipartFormData struct {
	Body        io.Reader
	ContentType string
}

// ToMultipartFormData serializes the Params into multipart/form-data format.
// FileData and []byte values become file parts, nil values are skipped and
// everything else is written as a plain field. Keys are written in sorted order.
func (pr Params) ToMultipartFormData() (*MultipartFormData, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	keys := make([]string, 0, len(pr))
	for key := range pr {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := pr[key].(type) {
		case nil:
			continue
		case FileData:
			if err := writeFilePart(writer, key, v.Filename, v.Content); err != nil {
				return nil, err
			}
		case *FileData:
			if v == nil {
				continue
			}
			if err := writeFilePart(writer, key, v.Filename, v.Content); err != nil {
				return nil, err
			}
		case []byte:
			if err := writeFilePart(writer, key, key, v); err != nil {
				return nil, err
			}
		default:
			value, ok := queryValue(v)
			if !ok {
				continue
			}
			if err := writer.WriteField(key, value); err != nil {
				return nil, fmt.Errorf("failed to write field %s: %w", key, err)
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return &MultipartFormData{
		Body:        &body,
		ContentType: writer.FormDataContentType(),
	}, nil
}

func writeFilePart(writer *multipart.Writer, field, filename string, content []byte) error {
	fileWriter, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("failed to create form file for %s: %w", field, err)
	}
	if _, err := fileWriter.Write(content); err != nil {
		return fmt.Errorf("failed to write file content for %s: %w", field, err)
	}
	return nil
}

// Update merges another Params map into the original Params.
// Existing keys are kept unless override is true.
func (pr Params) Update(other Params, override bool) {
	for key, value := range other {
		if _, exists := pr[key]; exists && !override {
			continue
		}
		pr[key] = value
	}
}

// Without removes the specified keys from the Params map.
func (pr Params) Without(keys ...string) {
	for _, key := range keys {
		delete(pr, key)
	}
}

// Compact removes nil values (including typed nil pointers).
func (pr Params) Compact() Params {
	for key, value := range pr {
		if isNilValue(value) {
			delete(pr, key)
		}
	}
	return pr
}

// FromStruct copies struct fields into Params using their json tags as keys.
func (pr Params) FromStruct(obj any) error {
	if obj == nil {
		return nil
	}
	for key, value := range structToMap(obj) {
		pr[key] = value
	}
	return nil
}

// NewParamsFromStruct creates a new Params map from any struct, respecting json tags.
//
// If the struct has a non-empty RawData field of type Params, that map is returned
// as is and the typed fields are ignored:
//
//	q := ArticleQuery{RawData: Params{"custom": "value"}}
//	params, _ := NewParamsFromStruct(q) // {"custom": "value"}
//
// A nil input or nil pointer yields an empty Params.
func NewParamsFromStruct(obj any) (Params, error) {
	params := make(Params)
	if obj == nil {
		return params, nil
	}

	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return params, nil
		}
		val = val.Elem()
	}
	if val.Kind() == reflect.Map {
		if p, ok := val.Interface().(Params); ok {
			return p, nil
		}
		if m, ok := val.Interface().(map[string]any); ok {
			return Params(m), nil
		}
		return nil, fmt.Errorf("unsupported map type %T", obj)
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct or pointer to struct, got %T", obj)
	}

	rawDataField := val.FieldByName("RawData")
	if rawDataField.IsValid() && rawDataField.Type() == reflect.TypeOf(Params{}) {
		if rawData, ok := rawDataField.Interface().(Params); ok && len(rawData) > 0 {
			return rawData, nil
		}
	}

	err := params.FromStruct(obj)
	return params, err
}

//  ######################################################
//              RETURN TYPES
//  ######################################################

// getPrintableAttrs returns a slice of keys to be printed from the Record
func getPrintableAttrs(r Record) []string {
	var attrs []string
	for key := range r {
		if _, ok := printableAttrs[key]; ok {
			attrs = append(attrs, key)
		}
	}
	sort.Strings(attrs)
	return attrs
}

// Renderable is an interface implemented by types that can render themselves
// into a human-readable string format, typically for CLI display or logging.
type Renderable interface {
	PrettyTable() string
	PrettyJson(indent ...string) string
}

// Filler is a generic interface for filling a struct or slice of structs.
type Filler interface {
	// Fill populates the given container with data from the implementing type.
	// The container can be a pointer to a struct (for Record),
	// or a pointer to a slice of structs (for RecordSet).
	Fill(container any) error
}

// DisplayableRecord combines rendering and struct population.
type DisplayableRecord interface {
	Renderable
	Filler
}

// Record represents a single generic data object as a key-value map.
// Empty responses (204 No Content, empty envelope data) are returned as Record{}.
type Record map[string]any

// RecordSet represents a list of Record objects.
type RecordSet []Record

// RecordUnion defines a union of supported record types for generic operations.
type RecordUnion interface {
	Record | RecordSet
}

// Fill populates the given struct pointer from the Record using json tags.
// String fields accept numbers and booleans, numeric fields accept numeric strings.
func (r Record) Fill(container any) error {
	val := reflect.ValueOf(container)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("container must be a non-nil pointer to a struct")
	}
	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("container must point to a struct")
	}
	return fillFunc(r.withoutMeta(), container)
}

// withoutMeta returns a shallow copy without client-side keys like @resourceType.
func (r Record) withoutMeta() Record {
	if _, ok := r[ResourceTypeKey]; !ok {
		return r
	}
	out := make(Record, len(r))
	for k, v := range r {
		if k == ResourceTypeKey {
			continue
		}
		out[k] = v
	}
	return out
}

// RecordID returns the "id" field of the record as an int64.
func (r Record) RecordID() int64 {
	idVal, ok := r["id"]
	if !ok {
		panic(fmt.Sprintf("record id not found in record %s", r.PrettyTable()))
	}
	intIdVal, err := toInt(idVal)
	if err != nil {
		panic(err)
	}
	return intIdVal
}

// RecordName returns the "name" field of the record, falling back to "title".
func (r Record) RecordName() string {
	if nameVal, ok := r["name"]; ok {
		return fmt.Sprintf("%v", nameVal)
	}
	if titleVal, ok := r["title"]; ok {
		return fmt.Sprintf("%v", titleVal)
	}
	panic(fmt.Sprintf("record name not found in record %s", r.PrettyTable()))
}

// SetMissingValue If the key is not present in the Record, set it to the provided value
func (r Record) SetMissingValue(key string, value any) {
	if _, exists := r[key]; !exists {
		r[key] = value
	}
}

// RawValue returns the scalar stored for non-object payloads.
func (r Record) RawValue() (any, bool) {
	v, ok := r[RawValueKey]
	return v, ok
}

// PrettyTable prints a single Record as a table
func (r Record) PrettyTable() string {
	headers := []string{"attr", "value"}
	var rows [][]any
	var name string
	if resourceTyp, ok := r[ResourceTypeKey].(string); ok {
		name = resourceTyp
	}
	if len(r) == 0 {
		return "<>"
	}
	for _, key := range getPrintableAttrs(r) {
		if val, ok := r[key]; ok && val != nil {
			rows = append(rows, []any{key, fmt.Sprintf("%v", val)})
		}
	}

	remainingAttrs := make(map[string]any)
	for key, value := range r {
		if _, ok := printableAttrs[key]; !ok {
			if key == ResourceTypeKey || value == nil {
				continue
			}
			remainingAttrs[key] = value
		}
	}
	if len(remainingAttrs) > 0 {
		remainingJSON, _ := json.Marshal(remainingAttrs)
		rows = append(rows, []any{"<<remaining attrs>>", string(remainingJSON)})
	}
	if len(rows) == 0 {
		return "<>"
	}
	t := gotabulate.Create(rows)
	t.SetHeaders(headers)
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(85)
	if name != "" {
		return fmt.Sprintf("%s:\n%s", name, t.Render("grid"))
	}
	return fmt.Sprintf("\n%s", t.Render("grid"))
}

// PrettyJson prints the Record as JSON, optionally indented
func (r Record) PrettyJson(indent ...string) string {
	return prettyJson(r, indent...)
}

func (r Record) Empty() bool {
	return len(r) == 0
}

func (r Record) String() string {
	return r.PrettyTable()
}

// Fill populates the provided slice pointer with one element per Record.
//
//	var articles []Article
//	err := recordSet.Fill(&articles)
//
// The container must be a pointer to a slice of structs or of struct pointers.
func (rs RecordSet) Fill(container any) error {
	val := reflect.ValueOf(container)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("container must be a non-nil pointer to a slice")
	}

	sliceVal := val.Elem()
	if sliceVal.Kind() != reflect.Slice {
		return fmt.Errorf("container must point to a slice")
	}

	elemType := sliceVal.Type().Elem()
	isPtrElem := elemType.Kind() == reflect.Ptr

	var targetType reflect.Type
	if isPtrElem {
		if elemType.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("slice element must be pointer to a struct")
		}
		targetType = elemType.Elem()
	} else {
		if elemType.Kind() != reflect.Struct {
			return fmt.Errorf("slice element must be a struct")
		}
		targetType = elemType
	}

	result := reflect.MakeSlice(sliceVal.Type(), 0, len(rs))
	for _, record := range rs {
		elemPtr := reflect.New(targetType)
		if err := record.Fill(elemPtr.Interface()); err != nil {
			return err
		}
		if isPtrElem {
			result = reflect.Append(result, elemPtr)
		} else {
			result = reflect.Append(result, elemPtr.Elem())
		}
	}
	sliceVal.Set(result)
	return nil
}

// PrettyTable prints the full RecordSet by rendering each individual Record
func (rs RecordSet) PrettyTable() string {
	if len(rs) == 0 {
		return "[]"
	}
	var out strings.Builder
	out.WriteString("[\n")
	for i, record := range rs {
		out.WriteString(record.PrettyTable())
		if i < len(rs)-1 {
			out.WriteString("\n\n")
		}
	}
	out.WriteString("\n]")
	return out.String()
}

func (rs RecordSet) Empty() bool {
	return len(rs) == 0
}

// PrettyJson prints the RecordSet as JSON, optionally indented
func (rs RecordSet) PrettyJson(indent ...string) string {
	return prettyJson(rs, indent...)
}

func prettyJson(v any, indent ...string) string {
	var (
		b   []byte
		err error
	)
	if len(indent) > 0 {
		b, err = json.MarshalIndent(v, "", indent[0])
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Sprintf("failed to marshal JSON: %v", err)
	}
	return string(b)
}

// ToRecord converts a generic map to a Record.
func ToRecord(m map[string]any) Record {
	converted := make(Record, len(m))
	for k, v := range m {
		converted[k] = v
	}
	return converted
}

// ToRecordSet converts a list of generic maps to a RecordSet.
func ToRecordSet(list []map[string]any) (RecordSet, error) {
	records := make(RecordSet, 0, len(list))
	for _, item := range list {
		records = append(records, ToRecord(item))
	}
	return records, nil
}

// anyToRenderable converts a decoded JSON value to a Record or RecordSet.
// Objects become Records, arrays become RecordSets (scalars wrapped under RawValueKey),
// null becomes an empty Record and other scalars are wrapped under RawValueKey.
func anyToRenderable(value any) Renderable {
	switch typed := value.(type) {
	case nil:
		return Record{}
	case map[string]any:
		return ToRecord(typed)
	case []any:
		recordSet := make(RecordSet, len(typed))
		for i, item := range typed {
			if m, ok := item.(map[string]any); ok {
				recordSet[i] = ToRecord(m)
			} else {
				recordSet[i] = Record{RawValueKey: item}
			}
		}
		return recordSet
	default:
		return Record{RawValueKey: typed}
	}
}

// ToRenderable converts any JSON-serializable value (typed models, slices,
// pages) into a Record or RecordSet. Renderables are returned as is.
func ToRenderable(value any) (Renderable, error) {
	if r, ok := value.(Renderable); ok {
		return r, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", value, err)
	}
	var decoded any
	if err = json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return anyToRenderable(decoded), nil
}

// typeMatch checks whether the dynamic type of val matches the generic type T.
//
//	if typeMatch[RecordSet](someRenderable) {
//	    // val is of type RecordSet
//	}
func typeMatch[T RecordUnion](val Renderable) bool {
	var zero T
	return reflect.TypeOf(val) == reflect.TypeOf(zero)
}

// setResourceKey sets resource type key for tabular formatting (only if not already set).
func setResourceKey(result Renderable, resourceType string) error {
	switch v := result.(type) {
	case Record:
		if _, ok := v[ResourceTypeKey]; !ok && len(v) > 0 {
			v[ResourceTypeKey] = resourceType
		}
		return nil
	case RecordSet:
		for _, rec := range v {
			if _, ok := rec[ResourceTypeKey]; !ok && len(rec) > 0 {
				rec[ResourceTypeKey] = resourceType
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported type %T", result)
	}
}

// ModelToRecord converts a typed model struct to a Record tagged with its type name.
func ModelToRecord(model any) (Record, error) {
	jsonBytes, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", model, err)
	}
	record := make(Record)
	if err := json.Unmarshal(jsonBytes, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %T to record: %w", model, err)
	}
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}
	record[ResourceTypeKey] = modelType.Name()
	return record, nil
}
