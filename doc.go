/*
Package admin_client is a Go client for the site administration REST backend:
articles, company profile, instruments and their types, agent brands, visitor
messages, rental products and notices, service categories and service items.

Two clients are available. NewUntypedAdminRest returns resources that speak in
Params and Record/RecordSet values, suitable for tables and scripting.
NewTypedAdminRest layers request and response models on top of the same
resources.

Every response is expected in the {"status", "data", "message"} envelope where
status 0 means success. The client unwraps it once, in one place: legacy
{"success": bool} bodies, bodies without any envelope and doubly wrapped data
are normalized before a resource sees them.

	client, err := admin_client.NewTypedAdminRest(&admin_client.AdminConfig{
	    BaseURL:  "https://admin.example.com",
	    ApiToken: os.Getenv("ADMIN_TOKEN"),
	})
	page, err := client.Articles.List(&typed.ArticleSearchParams{Type: "news", Limit: 20})
*/
package admin_client
