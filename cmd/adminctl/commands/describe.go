package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labsite/go-admin-client/openapi_schema"
)

func newDescribeCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "List the operations of the backend OpenAPI document",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			schema, err := loadSchema(cmd, a, file)
			if err != nil {
				return err
			}
			return a.printer.Print(schema.Operations())
		},
	}
	cmd.PersistentFlags().StringVar(&file, "file", "", "read the document from a file instead of the backend")

	check := &cobra.Command{
		Use:   "check",
		Short: "Report routes the client calls that the backend does not declare",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			schema, err := loadSchema(cmd, a, file)
			if err != nil {
				return err
			}
			var expected []openapi_schema.Operation
			for _, route := range a.rest.Untyped.Routes() {
				expected = append(expected, openapi_schema.Operation{Method: route.Method, Path: route.Path})
			}
			missing := schema.Missing(expected)
			if len(missing) == 0 {
				a.printer.Success("all %d client routes are declared", len(expected))
				return nil
			}
			for _, op := range missing {
				a.printer.Warning("not declared: %s", op)
			}
			return fmt.Errorf("%d of %d client routes are not declared", len(missing), len(expected))
		},
	}

	params := &cobra.Command{
		Use:   "params <path>",
		Short: "Show the query parameters of a GET route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			schema, err := loadSchema(cmd, a, file)
			if err != nil {
				return err
			}
			parameters, err := schema.QueryParametersGET(args[0])
			if err != nil {
				return err
			}
			rows := make([]map[string]any, 0, len(parameters))
			for _, p := range parameters {
				rows = append(rows, map[string]any{
					"name":        p.Name,
					"type":        openapi_schema.ParameterType(p),
					"required":    p.Required,
					"description": p.Description,
				})
			}
			return a.printer.Print(rows)
		},
	}

	cmd.AddCommand(check, params)
	return cmd
}

func loadSchema(cmd *cobra.Command, a *app, file string) (*openapi_schema.Schema, error) {
	if file != "" {
		return openapi_schema.LoadFromFile(file, a.cfg.ApiPrefix)
	}
	return openapi_schema.Fetch(cmd.Context(), a.rest.GetSession(), a.cfg.DocPath)
}
