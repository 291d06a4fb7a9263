package commands

import (
	"github.com/spf13/cobra"

	"github.com/labsite/go-admin-client/resources/typed"
)

func newServicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service"},
		Short:   "Manage service categories and service items",
	}
	cmd.AddCommand(newServiceCategoriesCmd(), newServiceItemsCmd())
	return cmd
}

func newServiceCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage service categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every category, inactive ones included",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			categories, err := a.rest.ServiceCategories.ListWithContext(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Print(categories)
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			category, err := a.rest.ServiceCategories.GetByIdWithContext(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(category)
		},
	}

	create := payloadCmd("create", "Create a service category", cobra.NoArgs,
		func(cmd *cobra.Command, args []string, body *typed.ServiceCategoryRequestBody) error {
			a := appFrom(cmd)
			response, err := a.rest.ServiceCategories.CreateWithContext(cmd.Context(), body)
			if err != nil {
				return err
			}
			a.printer.Success("category %d created", response.Data.Id)
			return a.printer.Print(response.Data)
		})

	update := payloadCmd("update <id>", "Patch a service category", cobra.ExactArgs(1),
		func(cmd *cobra.Command, args []string, body *typed.ServiceCategoryRequestBody) error {
			a := appFrom(cmd)
			response, err := a.rest.ServiceCategories.UpdateWithContext(cmd.Context(), args[0], body)
			if err != nil {
				return err
			}
			return a.printer.Print(response.Data)
		})

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a service category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if _, err := a.rest.ServiceCategories.DeleteWithContext(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Success("category %s deleted", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}

func newServiceItemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item"},
		Short:   "Manage services",
	}

	var category string
	list := &cobra.Command{
		Use:   "list",
		Short: "List every service, or the services of one category",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			var (
				items []typed.ServiceItemResponseBody
				err   error
			)
			if category != "" {
				items, err = a.rest.ServiceItems.ListByCategoryWithContext(cmd.Context(), category)
			} else {
				items, err = a.rest.ServiceItems.ListWithContext(cmd.Context())
			}
			if err != nil {
				return err
			}
			return a.printer.Print(items)
		},
	}
	list.Flags().StringVar(&category, "category", "", "category id")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			item, err := a.rest.ServiceItems.GetByIdWithContext(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(item)
		},
	}

	create := payloadCmd("create", "Create a service", cobra.NoArgs,
		func(cmd *cobra.Command, args []string, body *typed.ServiceItemRequestBody) error {
			a := appFrom(cmd)
			response, err := a.rest.ServiceItems.CreateWithContext(cmd.Context(), body)
			if err != nil {
				return err
			}
			a.printer.Success("service %d created", response.Data.Id)
			return a.printer.Print(response.Data)
		})

	update := payloadCmd("update <id>", "Patch a service", cobra.ExactArgs(1),
		func(cmd *cobra.Command, args []string, body *typed.ServiceItemRequestBody) error {
			a := appFrom(cmd)
			response, err := a.rest.ServiceItems.UpdateWithContext(cmd.Context(), args[0], body)
			if err != nil {
				return err
			}
			return a.printer.Print(response.Data)
		})

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if _, err := a.rest.ServiceItems.DeleteWithContext(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Success("service %s deleted", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}
