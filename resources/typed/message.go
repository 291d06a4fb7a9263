package typed

import (
	"context"

	"github.com/labsite/go-admin-client/core"
	"github.com/labsite/go-admin-client/resources/untyped"
)

// MessageSearchParams is the POST /messages/list body.
type MessageSearchParams struct {
	Page     int    `json:"page,omitempty" yaml:"page,omitempty"`
	PageSize int    `json:"pageSize,omitempty" yaml:"pageSize,omitempty"`
	IsRead   *bool  `json:"isRead,omitempty" yaml:"isRead,omitempty"`
	Keyword  string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
}

type MessageResponseBody struct {
	Id        int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Company   string `json:"company,omitempty" yaml:"company,omitempty"`
	Content   string `json:"content" yaml:"content"`
	IsRead    bool   `json:"isRead" yaml:"isRead"`
	CreatedAt string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

type MessageList = ListResult[MessageResponseBody]

// Message is the typed visitor messages service.
type Message struct {
	*core.TypedResource
}

func (r *Message) untyped() *untyped.Message {
	return r.Resource().(*untyped.Message)
}

func (r *Message) ListWithContext(ctx context.Context, req *MessageSearchParams) (*MessageList, error) {
	if req == nil {
		req = &MessageSearchParams{}
	}
	list, err := core.FetchInto[MessageList](r.CallerContext(ctx), r.Session(), core.FetchParams{
		Path: r.untyped().GetResourcePath() + "/list",
		Verb: core.VerbPost,
		Body: req,
	})
	if err != nil {
		return nil, err
	}
	if list.Items == nil {
		list.Items = []MessageResponseBody{}
	}
	return &list, nil
}

func (r *Message) List(req *MessageSearchParams) (*MessageList, error) {
	return r.ListWithContext(r.Ctx(), req)
}

func (r *Message) MarkAsReadWithContext(ctx context.Context, id any) error {
	_, err := r.untyped().MarkAsReadWithContext(ctx, id)
	return err
}

func (r *Message) MarkAsRead(id any) error {
	return r.MarkAsReadWithContext(r.Ctx(), id)
}
