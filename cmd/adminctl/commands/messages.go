package commands

import (
	"github.com/spf13/cobra"

	"github.com/labsite/go-admin-client/resources/typed"
)

func newMessagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"message"},
		Short:   "Read visitor messages",
	}

	var (
		search typed.MessageSearchParams
		unread bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "Search visitor messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if unread {
				isRead := false
				search.IsRead = &isRead
			}
			result, err := a.rest.Messages.ListWithContext(cmd.Context(), &search)
			if err != nil {
				return err
			}
			if err = a.printer.Print(result.Items); err != nil {
				return err
			}
			if result.Total > 0 {
				a.printer.Step("%d messages in total", result.Total)
			}
			return nil
		},
	}
	list.Flags().IntVar(&search.Page, "page", 1, "page number")
	list.Flags().IntVar(&search.PageSize, "page-size", 10, "page size")
	list.Flags().StringVar(&search.Keyword, "keyword", "", "text filter")
	list.Flags().BoolVar(&unread, "unread", false, "only unread messages")

	read := &cobra.Command{
		Use:   "read <id>...",
		Short: "Mark messages as read",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			for _, id := range args {
				if err := a.rest.Messages.MarkAsReadWithContext(cmd.Context(), id); err != nil {
					return err
				}
				a.printer.Success("message %s marked as read", id)
			}
			return nil
		},
	}

	cmd.AddCommand(list, read)
	return cmd
}
