package openapi_schema

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/labsite/go-admin-client/core"
)

// DefaultDocPath is where the backend publishes its OpenAPI document,
// relative to BaseURL (outside the API prefix).
const DefaultDocPath = "/api-json"

// Schema wraps a parsed OpenAPI document of the admin backend.
// Lookups accept resource paths the way resources declare them ("articles/{id}")
// and match them with or without the API prefix.
type Schema struct {
	doc    *openapi3.T
	prefix string
}

// Operation is one method/path pair declared by the document.
type Operation struct {
	Method      string   `json:"method" yaml:"method"`
	Path        string   `json:"path" yaml:"path"`
	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	OperationID string   `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

func (o Operation) String() string {
	return fmt.Sprintf("%s %s", o.Method, o.Path)
}

// LoadFromData parses an OpenAPI document (JSON or YAML).
// prefix is the API prefix to try when a path is not found as given.
func LoadFromData(data []byte, prefix string) (*Schema, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}
	if doc.Paths == nil {
		doc.Paths = openapi3.NewPaths()
	}
	return &Schema{doc: doc, prefix: "/" + strings.Trim(prefix, "/")}, nil
}

// LoadFromFile reads and parses an OpenAPI document from disk.
func LoadFromFile(path, prefix string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read OpenAPI document: %w", err)
	}
	return LoadFromData(data, prefix)
}

// Fetch downloads the document from the backend behind session. The
// session's credentials are sent along. docPath defaults to DefaultDocPath.
func Fetch(ctx context.Context, session core.RESTSession, docPath string) (*Schema, error) {
	config := session.GetConfig()
	if docPath == "" {
		docPath = DefaultDocPath
	}
	url := strings.TrimRight(config.BaseURL, "/") + "/" + strings.TrimLeft(docPath, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range core.AuthHeaders(session) {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set(core.HeaderAccept, core.ContentTypeJSON)

	client := http.DefaultClient
	if s, ok := session.(interface{ HTTPClient() *http.Client }); ok && s.HTTPClient() != nil {
		client = s.HTTPClient()
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch OpenAPI document: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read OpenAPI document: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &core.ApiError{
			Method:     http.MethodGet,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Message:    fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
		}
	}
	return LoadFromData(body, config.ApiPrefix)
}

// Doc returns the underlying document.
func (s *Schema) Doc() *openapi3.T {
	return s.doc
}

// Validate runs the document-level validation of kin-openapi.
func (s *Schema) Validate(ctx context.Context) error {
	return s.doc.Validate(ctx)
}

// Operations lists every declared operation sorted by path, then method.
func (s *Schema) Operations() []Operation {
	var ops []Operation
	for path, item := range s.doc.Paths.Map() {
		for method, op := range item.Operations() {
			ops = append(ops, Operation{
				Method:      strings.ToUpper(method),
				Path:        path,
				Summary:     op.Summary,
				OperationID: op.OperationID,
				Tags:        op.Tags,
			})
		}
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Path != ops[j].Path {
			return ops[i].Path < ops[j].Path
		}
		return ops[i].Method < ops[j].Method
	})
	return ops
}

// candidates returns the keys a resource path may be declared under.
func (s *Schema) candidates(resourcePath string) []string {
	normalized := "/" + strings.Trim(strings.TrimSpace(resourcePath), "/")
	keys := []string{normalized, normalized + "/"}
	if s.prefix != "/" && !strings.HasPrefix(normalized, s.prefix+"/") {
		prefixed := s.prefix + normalized
		keys = append(keys, prefixed, prefixed+"/")
	}
	return keys
}

// PathItem finds the path item for resourcePath. Template parameter names
// do not need to match ("articles/{articleId}" finds "/api/articles/{id}").
func (s *Schema) PathItem(resourcePath string) (*openapi3.PathItem, error) {
	for _, key := range s.candidates(resourcePath) {
		if item := s.doc.Paths.Find(key); item != nil {
			return item, nil
		}
	}
	// Case-insensitive fallback.
	for _, key := range s.candidates(resourcePath) {
		for path, item := range s.doc.Paths.Map() {
			if strings.EqualFold(path, key) {
				return item, nil
			}
		}
	}
	return nil, fmt.Errorf("path not found in OpenAPI document: %s", resourcePath)
}

// operation returns the operation for httpMethod on resourcePath.
func (s *Schema) operation(httpMethod, resourcePath string) (*openapi3.Operation, *openapi3.PathItem, error) {
	verb, err := core.ParseVerb(httpMethod)
	if err != nil {
		return nil, nil, fmt.Errorf("unsupported HTTP method: %s", httpMethod)
	}
	item, err := s.PathItem(resourcePath)
	if err != nil {
		return nil, nil, err
	}
	return item.GetOperation(verb.String()), item, nil
}

// ValidateOperationExists fails when the document does not declare
// httpMethod on resourcePath. The error lists the methods that are declared.
func (s *Schema) ValidateOperationExists(httpMethod, resourcePath string) error {
	op, item, err := s.operation(httpMethod, resourcePath)
	if err != nil {
		return err
	}
	if op == nil {
		var available []string
		for method := range item.Operations() {
			available = append(available, strings.ToUpper(method))
		}
		sort.Strings(available)
		return fmt.Errorf("method %s not found for path %s (available methods: %v)",
			strings.ToUpper(httpMethod), resourcePath, available)
	}
	return nil
}

// OperationSummary returns the summary of httpMethod on resourcePath.
func (s *Schema) OperationSummary(httpMethod, resourcePath string) (string, error) {
	op, _, err := s.operation(httpMethod, resourcePath)
	if err != nil {
		return "", err
	}
	if op == nil {
		return "", fmt.Errorf("operation not found for %s %s", strings.ToUpper(httpMethod), resourcePath)
	}
	return op.Summary, nil
}

// QueryParametersGET returns the query parameters of the GET operation on
// resourcePath. A path without GET has no query parameters.
func (s *Schema) QueryParametersGET(resourcePath string) ([]*openapi3.Parameter, error) {
	item, err := s.PathItem(resourcePath)
	if err != nil {
		return nil, err
	}
	params := make([]*openapi3.Parameter, 0)
	if item.Get == nil {
		return params, nil
	}
	for _, ref := range item.Get.Parameters {
		if ref == nil || ref.Value == nil {
			continue
		}
		if strings.EqualFold(ref.Value.In, openapi3.ParameterInQuery) {
			params = append(params, ref.Value)
		}
	}
	return params, nil
}

// RequestBodySchema returns the JSON (or multipart) request body schema of
// httpMethod on resourcePath, or nil when the operation takes no body.
func (s *Schema) RequestBodySchema(httpMethod, resourcePath string) (*openapi3.SchemaRef, error) {
	op, _, err := s.operation(httpMethod, resourcePath)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, fmt.Errorf("operation not found for %s %s", strings.ToUpper(httpMethod), resourcePath)
	}
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, nil
	}
	for _, contentType := range []string{core.ContentTypeJSON, core.ContentTypeMultipartForm} {
		if media := op.RequestBody.Value.Content.Get(contentType); media != nil {
			return media.Schema, nil
		}
	}
	return nil, nil
}

// Missing returns the operations in expected the document does not declare.
func (s *Schema) Missing(expected []Operation) []Operation {
	var missing []Operation
	for _, op := range expected {
		if err := s.ValidateOperationExists(op.Method, op.Path); err != nil {
			missing = append(missing, op)
		}
	}
	return missing
}
