package commands

import (
	"github.com/spf13/cobra"

	"github.com/labsite/go-admin-client/resources/typed"
)

func newInstrumentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instruments",
		Aliases: []string{"instrument"},
		Short:   "Manage instruments and instrument types",
	}

	var (
		search   typed.InstrumentSearchParams
		page     int
		pageSize int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "Search instruments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if page > 0 || pageSize > 0 {
				search.Page = &typed.InstrumentPageParams{CurrentPage: page, PageSize: pageSize}
			}
			result, err := a.rest.Instruments.ListWithContext(cmd.Context(), &search)
			if err != nil {
				return err
			}
			return a.printer.Print(result.Items)
		},
	}
	list.Flags().StringVar(&search.Name, "name", "", "name filter")
	list.Flags().StringVar(&search.Type, "type", "", "type id filter")
	list.Flags().IntVar(&page, "page", 0, "page number")
	list.Flags().IntVar(&pageSize, "page-size", 0, "page size")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one instrument",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			instrument, err := a.rest.Instruments.GetByIdWithContext(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(instrument)
		},
	}

	var file string
	save := &cobra.Command{
		Use:   "save",
		Short: "Create or update (when the payload has an id) an instrument",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			var body typed.InstrumentRequestBody
			if err := readPayload(file, cmd.InOrStdin(), &body); err != nil {
				return err
			}
			if err := a.rest.Instruments.SaveWithContext(cmd.Context(), &body); err != nil {
				return err
			}
			a.printer.Success("instrument %q saved", body.Name)
			return nil
		},
	}
	save.Flags().StringVarP(&file, "file", "f", "", "payload file, - for stdin")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an instrument",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if err := a.rest.Instruments.DeleteWithContext(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Success("instrument %s deleted", args[0])
			return nil
		},
	}

	types := &cobra.Command{
		Use:   "types",
		Short: "List instrument types",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			productTypes, err := a.rest.Instruments.ListTypesWithContext(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Print(productTypes)
		},
	}

	var productType typed.ProductType
	saveType := &cobra.Command{
		Use:   "save-type",
		Short: "Create or rename an instrument type",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if err := a.rest.Instruments.SaveTypeWithContext(cmd.Context(), &productType); err != nil {
				return err
			}
			a.printer.Success("instrument type %q saved", productType.Name)
			return nil
		},
	}
	saveType.Flags().Int64Var(&productType.Id, "id", 0, "type id to rename")
	saveType.Flags().StringVar(&productType.Name, "name", "", "type name")

	deleteType := &cobra.Command{
		Use:   "delete-type <id>",
		Short: "Delete an instrument type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if err := a.rest.Instruments.DeleteTypeWithContext(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Success("instrument type %s deleted", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, get, save, del, types, saveType, deleteType)
	return cmd
}
