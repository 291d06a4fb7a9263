package core

import (
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type articleQueryFixture struct {
	Page      int     `json:"page,omitempty"`
	Keyword   string  `json:"keyword,omitempty"`
	Published *bool   `json:"published,omitempty"`
	SortOrder string  `json:"sortOrder,omitempty"`
	RawData   Params  `json:"-"`
	Price     float64 `json:"price"`
}

func TestNewParamsFromStruct(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected Params
		wantErr  bool
	}{
		{name: "nil", input: nil, expected: Params{}},
		{name: "nil pointer", input: (*articleQueryFixture)(nil), expected: Params{}},
		{
			name:     "omitempty drops zero values",
			input:    articleQueryFixture{Page: 2, Keyword: "pump"},
			expected: Params{"page": 2, "keyword": "pump", "price": float64(0)},
		},
		{
			name:     "pointer to false is kept",
			input:    &articleQueryFixture{Published: boolPtr(false)},
			expected: Params{"published": false, "price": float64(0)},
		},
		{
			name:     "raw data wins",
			input:    articleQueryFixture{Page: 3, RawData: Params{"custom": "value"}},
			expected: Params{"custom": "value"},
		},
		{
			name:     "params pass through",
			input:    Params{"a": 1},
			expected: Params{"a": 1},
		},
		{
			name: "nested struct",
			input: struct {
				Name string `json:"name"`
				Page struct {
					CurrentPage int `json:"currentPage"`
					PageSize    int `json:"pageSize"`
				} `json:"page"`
			}{Name: "x", Page: struct {
				CurrentPage int `json:"currentPage"`
				PageSize    int `json:"pageSize"`
			}{CurrentPage: 1, PageSize: 20}},
			expected: Params{"name": "x", "page": map[string]any{"currentPage": 1, "pageSize": 20}},
		},
		{name: "not a struct", input: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParamsFromStruct(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParams_UpdateWithoutCompact(t *testing.T) {
	p := Params{"a": 1, "b": nil, "c": (*int)(nil)}
	p.Update(Params{"a": 2, "d": 4}, false)
	assert.Equal(t, 1, p["a"])
	assert.Equal(t, 4, p["d"])

	p.Update(Params{"a": 2}, true)
	assert.Equal(t, 2, p["a"])

	p.Compact()
	assert.Equal(t, Params{"a": 2, "d": 4}, p)

	p.Without("d")
	assert.Equal(t, Params{"a": 2}, p)
}

func TestParams_ToBody(t *testing.T) {
	reader, err := Params{"title": "hello", "published": false}.ToBody()
	require.NoError(t, err)
	raw, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"hello","published":false}`, string(raw))
}

func TestParams_ToMultipartFormData(t *testing.T) {
	params := Params{
		"address":      "Main st. 1",
		"phone":        nil,
		"wechatQrCode": FileData{Filename: "qr.png", Content: []byte("PNG")},
		"file":         &FileData{Filename: "cover.jpg", Content: []byte("JPG")},
		"sort":         3,
	}
	form, err := params.ToMultipartFormData()
	require.NoError(t, err)

	mediaType, mediaParams, err := mime.ParseMediaType(form.ContentType)
	require.NoError(t, err)
	assert.Equal(t, ContentTypeMultipartForm, mediaType)

	reader := multipart.NewReader(form.Body, mediaParams["boundary"])
	parts := map[string]string{}
	filenames := map[string]string{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(part)
		require.NoError(t, err)
		parts[part.FormName()] = string(content)
		filenames[part.FormName()] = part.FileName()
	}

	assert.Equal(t, map[string]string{
		"address":      "Main st. 1",
		"file":         "JPG",
		"sort":         "3",
		"wechatQrCode": "PNG",
	}, parts)
	assert.Equal(t, "qr.png", filenames["wechatQrCode"])
	assert.Equal(t, "cover.jpg", filenames["file"])
	assert.Empty(t, filenames["address"])
}

func TestRecord_Fill(t *testing.T) {
	type target struct {
		Id        int    `json:"id"`
		Title     string `json:"title"`
		Views     string `json:"views"`
		Published bool   `json:"published"`
	}

	record := Record{
		"id":            float64(3),
		"title":         "News",
		"views":         float64(120),
		"published":     "true",
		ResourceTypeKey: "Article",
	}
	var out target
	require.NoError(t, record.Fill(&out))
	assert.Equal(t, target{Id: 3, Title: "News", Views: "120", Published: true}, out)

	assert.Error(t, record.Fill(out))
	var notStruct int
	assert.Error(t, record.Fill(&notStruct))
}

func TestRecordSet_Fill(t *testing.T) {
	type target struct {
		Id   int    `json:"id"`
		Name string `json:"name"`
	}
	rs := RecordSet{{"id": float64(1), "name": "a"}, {"id": float64(2), "name": "b"}}

	var values []target
	require.NoError(t, rs.Fill(&values))
	assert.Equal(t, []target{{1, "a"}, {2, "b"}}, values)

	var pointers []*target
	require.NoError(t, rs.Fill(&pointers))
	require.Len(t, pointers, 2)
	assert.Equal(t, "b", pointers[1].Name)

	var wrong []int
	assert.Error(t, rs.Fill(&wrong))
}

func TestRecord_PrettyTable(t *testing.T) {
	assert.Equal(t, "<>", Record{}.PrettyTable())

	table := Record{"id": 1, "title": "Hello", "content": "long text", ResourceTypeKey: "Article"}.PrettyTable()
	assert.True(t, strings.HasPrefix(table, "Article:"))
	assert.Contains(t, table, "Hello")
	assert.Contains(t, table, "<<remaining attrs>>")
	assert.Contains(t, table, "long text")

	assert.Equal(t, "[]", RecordSet{}.PrettyTable())
}

func TestRecord_PrettyJson(t *testing.T) {
	record := Record{"id": 1}
	assert.JSONEq(t, `{"id":1}`, record.PrettyJson())
	assert.Contains(t, record.PrettyJson("  "), "\n  \"id\": 1")

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(RecordSet{{"id": 1}}.PrettyJson()), &decoded))
	assert.Len(t, decoded, 1)
}

func TestRecordHelpers(t *testing.T) {
	record := Record{"id": "12", "title": "Pump"}
	assert.Equal(t, int64(12), record.RecordID())
	assert.Equal(t, "Pump", record.RecordName())

	record.SetMissingValue("title", "other")
	record.SetMissingValue("type", "news")
	assert.Equal(t, "Pump", record["title"])
	assert.Equal(t, "news", record["type"])

	raw, ok := Record{RawValueKey: 5}.RawValue()
	assert.True(t, ok)
	assert.Equal(t, 5, raw)
}

func TestModelToRecord(t *testing.T) {
	type RentalNotice struct {
		Id    int    `json:"id"`
		Title string `json:"title"`
	}
	record, err := ModelToRecord(&RentalNotice{Id: 1, Title: "Deposit"})
	require.NoError(t, err)
	assert.Equal(t, "RentalNotice", record[ResourceTypeKey])
	assert.Equal(t, "Deposit", record["title"])
}

func TestSetResourceKey(t *testing.T) {
	rs := RecordSet{{"id": 1}, {}}
	require.NoError(t, setResourceKey(rs, "Message"))
	assert.Equal(t, "Message", rs[0][ResourceTypeKey])
	assert.NotContains(t, rs[1], ResourceTypeKey)

	record := Record{"id": 1, ResourceTypeKey: "Kept"}
	require.NoError(t, setResourceKey(record, "Other"))
	assert.Equal(t, "Kept", record[ResourceTypeKey])
}
