package commands

import (
	"github.com/spf13/cobra"

	"github.com/labsite/go-admin-client/resources/typed"
)

func newAgentBrandsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "agent-brands",
		Aliases: []string{"brands"},
		Short:   "Manage the brands the company represents",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List agent brands",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			brands, err := a.rest.AgentBrands.ListWithContext(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Print(brands)
		},
	}

	var file string
	save := &cobra.Command{
		Use:   "save",
		Short: "Create or update (when the payload has an id) a brand",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			var body typed.AgentBrandRequestBody
			if err := readPayload(file, cmd.InOrStdin(), &body); err != nil {
				return err
			}
			if err := a.rest.AgentBrands.SaveWithContext(cmd.Context(), &body); err != nil {
				return err
			}
			a.printer.Success("brand %q saved", body.Name)
			return nil
		},
	}
	save.Flags().StringVarP(&file, "file", "f", "", "payload file, - for stdin")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if err := a.rest.AgentBrands.DeleteWithContext(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Success("brand %s deleted", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, save, del)
	return cmd
}
