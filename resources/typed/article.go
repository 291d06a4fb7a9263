package typed

import (
	"context"
	"fmt"

	"github.com/labsite/go-admin-client/core"
	"github.com/labsite/go-admin-client/resources/untyped"
)

// -----------------------------------------------------
// SEARCH PARAMS
// -----------------------------------------------------

// ArticleSearchParams filters GET /articles.
type ArticleSearchParams struct {
	Page      int    `json:"page,omitempty" yaml:"page,omitempty"`
	Limit     int    `json:"limit,omitempty" yaml:"limit,omitempty"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`
	Keyword   string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Category  string `json:"category,omitempty" yaml:"category,omitempty"`
	Author    string `json:"author,omitempty" yaml:"author,omitempty"`
	Published *bool  `json:"published,omitempty" yaml:"published,omitempty"`
	// SortBy is one of createdAt, updatedAt, publishDate, title.
	SortBy string `json:"sortBy,omitempty" yaml:"sortBy,omitempty"`
	// SortOrder is ASC or DESC.
	SortOrder string `json:"sortOrder,omitempty" yaml:"sortOrder,omitempty"`

	RawData core.Params `json:"-" yaml:"-"`
}

// -----------------------------------------------------
// REQUEST BODY
// -----------------------------------------------------

// ArticleRequestBody is the create and partial update payload. Nil pointers
// are left out so a PATCH only touches the fields that are set.
type ArticleRequestBody struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Content     string `json:"content,omitempty" yaml:"content,omitempty"`
	CoverImage  string `json:"coverImage,omitempty" yaml:"coverImage,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Author      string `json:"author,omitempty" yaml:"author,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Duration    string `json:"duration,omitempty" yaml:"duration,omitempty"`
	Views       string `json:"views,omitempty" yaml:"views,omitempty"`
	VideoUrl    string `json:"videoUrl,omitempty" yaml:"videoUrl,omitempty"`
	Published   *bool  `json:"published,omitempty" yaml:"published,omitempty"`
	PublishDate string `json:"publishDate,omitempty" yaml:"publishDate,omitempty"`
}

// -----------------------------------------------------
// RESPONSE BODY
// -----------------------------------------------------

type ArticleResponseBody struct {
	Id          string `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string `json:"title" yaml:"title"`
	Summary     string `json:"summary" yaml:"summary"`
	Content     string `json:"content" yaml:"content"`
	CoverImage  string `json:"coverImage,omitempty" yaml:"coverImage,omitempty"`
	Type        string `json:"type" yaml:"type"`
	Author      string `json:"author,omitempty" yaml:"author,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Duration    string `json:"duration,omitempty" yaml:"duration,omitempty"`
	Views       string `json:"views,omitempty" yaml:"views,omitempty"`
	VideoUrl    string `json:"videoUrl,omitempty" yaml:"videoUrl,omitempty"`
	Published   bool   `json:"published" yaml:"published"`
	PublishDate string `json:"publishDate,omitempty" yaml:"publishDate,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// PaginatedArticles is the GET /articles payload.
type PaginatedArticles = core.Page[ArticleResponseBody]

// CoverUpload describes an uploaded cover image.
type CoverUpload struct {
	Url          string `json:"url" yaml:"url"`
	Filename     string `json:"filename" yaml:"filename"`
	OriginalName string `json:"originalName" yaml:"originalName"`
	Size         int64  `json:"size" yaml:"size"`
}

// -----------------------------------------------------
// RESOURCE METHODS
// -----------------------------------------------------

// Article is the typed articles service.
type Article struct {
	*core.TypedResource
}

func (r *Article) untyped() *untyped.Article {
	return r.Resource().(*untyped.Article)
}

// ListWithContext returns one page of articles. A response without data
// yields an empty first page sized by req.Limit (or the configured page limit).
func (r *Article) ListWithContext(ctx context.Context, req *ArticleSearchParams) (*PaginatedArticles, error) {
	params, err := core.NewParamsFromStruct(req)
	if err != nil {
		return nil, err
	}
	if req != nil && req.Type != "" {
		if err = untyped.ValidateArticleType(req.Type); err != nil {
			return nil, err
		}
	}
	page, err := core.FetchInto[*PaginatedArticles](r.CallerContext(ctx), r.Session(), core.FetchParams{
		Path:   r.untyped().GetResourcePath(),
		Verb:   core.VerbGet,
		Params: params,
	})
	if err != nil {
		return nil, err
	}
	if page == nil {
		limit := r.Session().GetConfig().PageLimit
		if req != nil && req.Limit > 0 {
			limit = req.Limit
		}
		empty := core.EmptyPage[ArticleResponseBody](limit)
		return &empty, nil
	}
	if page.Items == nil {
		page.Items = []ArticleResponseBody{}
	}
	return page, nil
}

func (r *Article) List(req *ArticleSearchParams) (*PaginatedArticles, error) {
	return r.ListWithContext(r.Ctx(), req)
}

// IteratorWithContext pages through GET /articles starting at req.Page.
func (r *Article) IteratorWithContext(ctx context.Context, req *ArticleSearchParams) (core.Iterator, error) {
	params, err := core.NewParamsFromStruct(req)
	if err != nil {
		return nil, err
	}
	return r.GetIteratorWithContext(ctx, params, 0), nil
}

func (r *Article) Iterator(req *ArticleSearchParams) (core.Iterator, error) {
	return r.IteratorWithContext(r.Ctx(), req)
}

// ListPublishedWithContext returns published articles.
func (r *Article) ListPublishedWithContext(ctx context.Context) ([]ArticleResponseBody, error) {
	records, err := r.untyped().PublishedWithContext(ctx)
	if err != nil {
		return nil, err
	}
	articles := []ArticleResponseBody{}
	if err = records.Fill(&articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *Article) ListPublished() ([]ArticleResponseBody, error) {
	return r.ListPublishedWithContext(r.Ctx())
}

// ListByTypeWithContext returns articles of one type (wechat, video or news).
func (r *Article) ListByTypeWithContext(ctx context.Context, articleType string) ([]ArticleResponseBody, error) {
	records, err := r.untyped().ByTypeWithContext(ctx, articleType)
	if err != nil {
		return nil, err
	}
	articles := []ArticleResponseBody{}
	if err = records.Fill(&articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *Article) ListByType(articleType string) ([]ArticleResponseBody, error) {
	return r.ListByTypeWithContext(r.Ctx(), articleType)
}

// GetByIdWithContext returns the article, or an empty one when the backend
// answers without data.
func (r *Article) GetByIdWithContext(ctx context.Context, id string) (*ArticleResponseBody, error) {
	path, err := core.BuildResourcePathWithID(r.untyped().GetResourcePath(), id)
	if err != nil {
		return nil, err
	}
	article, err := core.FetchInto[ArticleResponseBody](r.CallerContext(ctx), r.Session(), core.FetchParams{
		Path: path,
		Verb: core.VerbGet,
	})
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *Article) GetById(id string) (*ArticleResponseBody, error) {
	return r.GetByIdWithContext(r.Ctx(), id)
}

// CreateWithContext posts a new article and returns the whole envelope.
func (r *Article) CreateWithContext(ctx context.Context, body *ArticleRequestBody) (*core.ApiResponse[ArticleResponseBody], error) {
	if body == nil {
		return nil, fmt.Errorf("article body is required")
	}
	if body.Type != "" {
		if err := untyped.ValidateArticleType(body.Type); err != nil {
			return nil, err
		}
	}
	return core.DirectFetch[ArticleResponseBody](r.CallerContext(ctx), r.Session(), r.untyped().GetResourcePath(), core.DirectOptions{
		Verb: core.VerbPost,
		Body: body,
	})
}

func (r *Article) Create(body *ArticleRequestBody) (*core.ApiResponse[ArticleResponseBody], error) {
	return r.CreateWithContext(r.Ctx(), body)
}

// UpdateWithContext patches the fields set in body.
func (r *Article) UpdateWithContext(ctx context.Context, id string, body *ArticleRequestBody) (*core.ApiResponse[ArticleResponseBody], error) {
	if body == nil {
		body = &ArticleRequestBody{}
	}
	path, err := core.BuildResourcePathWithID(r.untyped().GetResourcePath(), id)
	if err != nil {
		return nil, err
	}
	return core.DirectFetch[ArticleResponseBody](r.CallerContext(ctx), r.Session(), path, core.DirectOptions{
		Verb: core.VerbPatch,
		Body: body,
	})
}

func (r *Article) Update(id string, body *ArticleRequestBody) (*core.ApiResponse[ArticleResponseBody], error) {
	return r.UpdateWithContext(r.Ctx(), id, body)
}

func (r *Article) DeleteWithContext(ctx context.Context, id string) (*core.ApiResponse[any], error) {
	path, err := core.BuildResourcePathWithID(r.untyped().GetResourcePath(), id)
	if err != nil {
		return nil, err
	}
	return core.DirectFetch[any](r.CallerContext(ctx), r.Session(), path, core.DirectOptions{
		Verb: core.VerbDelete,
	})
}

func (r *Article) Delete(id string) (*core.ApiResponse[any], error) {
	return r.DeleteWithContext(r.Ctx(), id)
}

// TogglePublishWithContext flips the published flag. Toggles of the same id
// are serialized with the untyped resource's.
func (r *Article) TogglePublishWithContext(ctx context.Context, id string) (*core.ApiResponse[ArticleResponseBody], error) {
	defer r.Lock("toggle-publish", id)()
	path, err := core.BuildResourcePathWithID(r.untyped().GetResourcePath(), id, "toggle-publish")
	if err != nil {
		return nil, err
	}
	return core.DirectFetch[ArticleResponseBody](r.CallerContext(ctx), r.Session(), path, core.DirectOptions{
		Verb: core.VerbPatch,
	})
}

func (r *Article) TogglePublish(id string) (*core.ApiResponse[ArticleResponseBody], error) {
	return r.TogglePublishWithContext(r.Ctx(), id)
}

// UploadCoverWithContext uploads content as the "file" part of a multipart form.
func (r *Article) UploadCoverWithContext(ctx context.Context, filename string, content []byte) (*core.ApiResponse[CoverUpload], error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("cover image %q is empty", filename)
	}
	return core.DirectFetch[CoverUpload](r.CallerContext(ctx), r.Session(), r.untyped().GetResourcePath()+"/upload-cover", core.DirectOptions{
		Verb:    core.VerbPost,
		Body:    core.Params{"file": core.FileData{Filename: filename, Content: content}},
		Headers: multipartHeaders(),
	})
}

func (r *Article) UploadCover(filename string, content []byte) (*core.ApiResponse[CoverUpload], error) {
	return r.UploadCoverWithContext(r.Ctx(), filename, content)
}
