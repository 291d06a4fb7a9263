package typed

import (
	"context"

	"github.com/labsite/go-admin-client/core"
	"github.com/labsite/go-admin-client/resources/untyped"
)

// CompanyRequestBody is sent as a multipart form. Empty strings are left out.
type CompanyRequestBody struct {
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
	// WechatQrCode uploads a new QR code image when set.
	WechatQrCode *core.FileData `json:"-" yaml:"-"`
}

func (b *CompanyRequestBody) toForm() core.Params {
	form := core.Params{}
	if b.Address != "" {
		form["address"] = b.Address
	}
	if b.Phone != "" {
		form["phone"] = b.Phone
	}
	if b.Email != "" {
		form["email"] = b.Email
	}
	if b.WechatQrCode != nil && len(b.WechatQrCode.Content) > 0 {
		form["wechatQrCode"] = *b.WechatQrCode
	}
	return form
}

type CompanyResponseBody struct {
	Id           int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Address      string `json:"address,omitempty" yaml:"address,omitempty"`
	Phone        string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email        string `json:"email,omitempty" yaml:"email,omitempty"`
	WechatQrCode string `json:"wechatQrCode,omitempty" yaml:"wechatQrCode,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Company is the typed company profile service.
type Company struct {
	*core.TypedResource
}

func (r *Company) untyped() *untyped.Company {
	return r.Resource().(*untyped.Company)
}

// GetWithContext returns the profile; a missing profile yields an empty one.
func (r *Company) GetWithContext(ctx context.Context) (*CompanyResponseBody, error) {
	record, err := r.untyped().InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}
	var response CompanyResponseBody
	if err = record.Fill(&response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *Company) Get() (*CompanyResponseBody, error) {
	return r.GetWithContext(r.Ctx())
}

// UpdateWithContext replaces the profile (PUT multipart) and returns the whole envelope.
func (r *Company) UpdateWithContext(ctx context.Context, body *CompanyRequestBody) (*core.ApiResponse[CompanyResponseBody], error) {
	if body == nil {
		body = &CompanyRequestBody{}
	}
	response, err := core.DirectFetch[core.Record](r.CallerContext(ctx), r.Session(), r.untyped().GetResourcePath(), core.DirectOptions{
		Verb:    core.VerbPut,
		Body:    body.toForm(),
		Headers: multipartHeaders(),
	})
	if err != nil {
		return nil, err
	}
	typedResponse := &core.ApiResponse[CompanyResponseBody]{
		Status:  response.Status,
		Message: response.Message,
		Code:    response.Code,
	}
	if response.Data != nil {
		if err = untyped.UnwrapProfile(response.Data).Fill(&typedResponse.Data); err != nil {
			return nil, err
		}
	}
	return typedResponse, nil
}

func (r *Company) Update(body *CompanyRequestBody) (*core.ApiResponse[CompanyResponseBody], error) {
	return r.UpdateWithContext(r.Ctx(), body)
}
