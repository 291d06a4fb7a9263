package commands

import (
	"github.com/spf13/cobra"

	"github.com/labsite/go-admin-client/resources/typed"
)

func newArticlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "articles",
		Aliases: []string{"article"},
		Short:   "Manage news articles and videos",
	}

	var (
		search    typed.ArticleSearchParams
		published bool
		all       bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List articles page by page",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if cmd.Flags().Changed("published") {
				search.Published = &published
			}
			if all {
				iter, err := a.rest.Articles.IteratorWithContext(cmd.Context(), &search)
				if err != nil {
					return err
				}
				records, err := iter.All()
				if err != nil {
					return err
				}
				return a.printer.Print(records)
			}
			page, err := a.rest.Articles.ListWithContext(cmd.Context(), &search)
			if err != nil {
				return err
			}
			return a.printer.Print(page)
		},
	}
	list.Flags().IntVar(&search.Page, "page", 1, "page number")
	list.Flags().IntVar(&search.Limit, "limit", 0, "page size (default from config)")
	list.Flags().StringVar(&search.Type, "type", "", "article type: news, video or wechat")
	list.Flags().StringVar(&search.Keyword, "keyword", "", "full text filter")
	list.Flags().StringVar(&search.Category, "category", "", "category filter")
	list.Flags().StringVar(&search.Author, "author", "", "author filter")
	list.Flags().BoolVar(&published, "published", false, "only published (true) or drafts (false)")
	list.Flags().StringVar(&search.SortBy, "sort-by", "", "createdAt, updatedAt, publishDate or title")
	list.Flags().StringVar(&search.SortOrder, "sort-order", "", "ASC or DESC")
	list.Flags().BoolVar(&all, "all", false, "walk every page")

	publishedCmd := &cobra.Command{
		Use:   "published",
		Short: "List published articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			articles, err := a.rest.Articles.ListPublishedWithContext(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Print(articles)
		},
	}

	byType := &cobra.Command{
		Use:   "by-type <news|video|wechat>",
		Short: "List articles of one type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			articles, err := a.rest.Articles.ListByTypeWithContext(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(articles)
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			article, err := a.rest.Articles.GetByIdWithContext(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(article)
		},
	}

	var file string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an article from a JSON or YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			var body typed.ArticleRequestBody
			if err := readPayload(file, cmd.InOrStdin(), &body); err != nil {
				return err
			}
			response, err := a.rest.Articles.CreateWithContext(cmd.Context(), &body)
			if err != nil {
				return err
			}
			a.printer.Success("article %s created", response.Data.Id)
			return a.printer.Print(response.Data)
		},
	}
	create.Flags().StringVarP(&file, "file", "f", "", "payload file, - for stdin")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Patch an article with the fields of a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			var body typed.ArticleRequestBody
			if err := readPayload(file, cmd.InOrStdin(), &body); err != nil {
				return err
			}
			response, err := a.rest.Articles.UpdateWithContext(cmd.Context(), args[0], &body)
			if err != nil {
				return err
			}
			return a.printer.Print(response.Data)
		},
	}
	update.Flags().StringVarP(&file, "file", "f", "", "payload file, - for stdin")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if _, err := a.rest.Articles.DeleteWithContext(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Success("article %s deleted", args[0])
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle-publish <id>",
		Short: "Publish a draft or unpublish an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			response, err := a.rest.Articles.TogglePublishWithContext(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printer.Success("article %s published=%v", args[0], response.Data.Published)
			return nil
		},
	}

	upload := &cobra.Command{
		Use:   "upload-cover <image>",
		Short: "Upload a cover image and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			name, content, err := readFile(args[0])
			if err != nil {
				return err
			}
			response, err := a.rest.Articles.UploadCoverWithContext(cmd.Context(), name, content)
			if err != nil {
				return err
			}
			return a.printer.Print(response.Data)
		},
	}

	cmd.AddCommand(list, publishedCmd, byType, get, create, update, del, toggle, upload)
	return cmd
}
