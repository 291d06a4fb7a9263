package openapi_schema

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// SchemaType returns the first declared type of s, "" when untyped.
func SchemaType(s *openapi3.Schema) string {
	if s == nil || s.Type == nil || len(*s.Type) == 0 {
		return ""
	}
	return (*s.Type)[0]
}

// ParameterType returns the type of a parameter's schema. Array parameters
// are reported as "array[<item type>]".
func ParameterType(p *openapi3.Parameter) string {
	if p == nil || p.Schema == nil || p.Schema.Value == nil {
		return ""
	}
	t := SchemaType(p.Schema.Value)
	if t == openapi3.TypeArray && p.Schema.Value.Items != nil {
		return "array[" + SchemaType(p.Schema.Value.Items.Value) + "]"
	}
	return t
}

// IsEmptySchema returns true if the schema reference is nil or declares nothing.
func IsEmptySchema(ref *openapi3.SchemaRef) bool {
	if ref == nil || ref.Value == nil {
		return true
	}
	schema := ref.Value
	return SchemaType(schema) == "" &&
		len(schema.Properties) == 0 &&
		schema.Items == nil &&
		len(schema.AllOf) == 0 &&
		len(schema.OneOf) == 0 &&
		len(schema.AnyOf) == 0
}
