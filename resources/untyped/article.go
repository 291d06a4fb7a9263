package untyped

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labsite/go-admin-client/core"
)

// Article types accepted by /articles/type/{type}.
const (
	ArticleTypeWechat = "wechat"
	ArticleTypeVideo  = "video"
	ArticleTypeNews   = "news"
)

// ValidateArticleType rejects anything but wechat, video and news.
func ValidateArticleType(articleType string) error {
	switch articleType {
	case ArticleTypeWechat, ArticleTypeVideo, ArticleTypeNews:
		return nil
	}
	return fmt.Errorf("unknown article type %q (expected %s, %s or %s)",
		articleType, ArticleTypeWechat, ArticleTypeVideo, ArticleTypeNews)
}

// Article ids are strings on the backend; every id argument accepts any value
// and is path-escaped when it is not numeric.
type Article struct {
	*core.Resource
}

// PublishedWithContext
// method: GET
// url: /articles/published
func (a *Article) PublishedWithContext(ctx context.Context) (core.RecordSet, error) {
	path := a.GetResourcePath() + "/published"
	return core.Request[core.RecordSet](ctx, a, core.VerbGet, path, nil, nil)
}

func (a *Article) Published() (core.RecordSet, error) {
	return a.PublishedWithContext(a.Rest.GetCtx())
}

// ByTypeWithContext
// method: GET
// url: /articles/type/{type}
func (a *Article) ByTypeWithContext(ctx context.Context, articleType string) (core.RecordSet, error) {
	if err := ValidateArticleType(articleType); err != nil {
		return nil, err
	}
	path, err := core.BuildResourcePathWithID(a.GetResourcePath()+"/type", articleType)
	if err != nil {
		return nil, err
	}
	return core.Request[core.RecordSet](ctx, a, core.VerbGet, path, nil, nil)
}

func (a *Article) ByType(articleType string) (core.RecordSet, error) {
	return a.ByTypeWithContext(a.Rest.GetCtx(), articleType)
}

// TogglePublishWithContext
// method: PATCH
// url: /articles/{id}/toggle-publish
// Concurrent toggles of the same article are serialized so they do not cancel out.
func (a *Article) TogglePublishWithContext(ctx context.Context, id any) (core.Record, error) {
	defer a.Lock("toggle-publish", id)()
	path, err := core.BuildResourcePathWithID(a.GetResourcePath(), id, "toggle-publish")
	if err != nil {
		return nil, err
	}
	return core.Request[core.Record](ctx, a, core.VerbPatch, path, nil, nil)
}

func (a *Article) TogglePublish(id any) (core.Record, error) {
	return a.TogglePublishWithContext(a.Rest.GetCtx(), id)
}

// UploadCoverWithContext
// method: POST
// url: /articles/upload-cover
// The image is sent as the "file" part of a multipart form.
func (a *Article) UploadCoverWithContext(ctx context.Context, filename string, content []byte) (core.Record, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("cover image %q is empty", filename)
	}
	path := a.GetResourcePath() + "/upload-cover"
	body := core.Params{
		"file": core.FileData{
			Filename: filename,
			Content:  content,
		},
	}
	headers := []http.Header{{
		core.HeaderContentType: []string{core.ContentTypeMultipartForm},
	}}
	return core.RequestWithHeaders[core.Record](ctx, a, core.VerbPost, path, nil, body, headers)
}

func (a *Article) UploadCover(filename string, content []byte) (core.Record, error) {
	return a.UploadCoverWithContext(a.Rest.GetCtx(), filename, content)
}
