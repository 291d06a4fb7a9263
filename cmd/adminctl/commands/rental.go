package commands

import (
	"github.com/spf13/cobra"

	"github.com/labsite/go-admin-client/resources/typed"
)

func newRentalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rental",
		Short: "Manage rental products and rental notices",
	}
	cmd.AddCommand(newRentalProductsCmd(), newRentalNoticesCmd())
	return cmd
}

func newRentalProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage rental products",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List rental products",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			products, err := a.rest.RentalProducts.ListWithContext(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Print(products)
		},
	}

	create := payloadCmd("create", "Create a rental product", cobra.NoArgs,
		func(cmd *cobra.Command, args []string, body *typed.RentalProductRequestBody) error {
			a := appFrom(cmd)
			product, err := a.rest.RentalProducts.CreateWithContext(cmd.Context(), body)
			if err != nil {
				return err
			}
			return a.printer.Print(product)
		})

	update := payloadCmd("update <id>", "Patch a rental product", cobra.ExactArgs(1),
		func(cmd *cobra.Command, args []string, body *typed.RentalProductRequestBody) error {
			a := appFrom(cmd)
			product, err := a.rest.RentalProducts.UpdateWithContext(cmd.Context(), args[0], body)
			if err != nil {
				return err
			}
			return a.printer.Print(product)
		})

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a rental product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if err := a.rest.RentalProducts.DeleteWithContext(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Success("rental product %s deleted", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}

func newRentalNoticesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notices",
		Aliases: []string{"notice"},
		Short:   "Manage rental notices",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List rental notices",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			notices, err := a.rest.RentalNotices.ListWithContext(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Print(notices)
		},
	}

	create := payloadCmd("create", "Create a rental notice", cobra.NoArgs,
		func(cmd *cobra.Command, args []string, body *typed.RentalNoticeRequestBody) error {
			a := appFrom(cmd)
			notice, err := a.rest.RentalNotices.CreateWithContext(cmd.Context(), body)
			if err != nil {
				return err
			}
			return a.printer.Print(notice)
		})

	update := payloadCmd("update <id>", "Patch a rental notice", cobra.ExactArgs(1),
		func(cmd *cobra.Command, args []string, body *typed.RentalNoticeRequestBody) error {
			a := appFrom(cmd)
			notice, err := a.rest.RentalNotices.UpdateWithContext(cmd.Context(), args[0], body)
			if err != nil {
				return err
			}
			return a.printer.Print(notice)
		})

	bulk := payloadCmd("bulk", "Replace every notice with the list in the payload file", cobra.NoArgs,
		func(cmd *cobra.Command, args []string, body *[]typed.RentalNoticeRequestBody) error {
			a := appFrom(cmd)
			notices, err := a.rest.RentalNotices.UpdateAllWithContext(cmd.Context(), *body)
			if err != nil {
				return err
			}
			a.printer.Success("%d rental notices stored", len(notices))
			return a.printer.Print(notices)
		})

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a rental notice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if err := a.rest.RentalNotices.DeleteWithContext(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Success("rental notice %s deleted", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, create, update, bulk, del)
	return cmd
}
