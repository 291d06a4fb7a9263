package commands

import (
	"fmt"

	version "github.com/hashicorp/go-version"
	"github.com/spf13/cobra"

	"github.com/labsite/go-admin-client/core"
)

func newVersionCmd() *cobra.Command {
	var constraint string
	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Print the CLI and client library versions",
		Annotations: map[string]string{"offline": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "adminctl %s (commit: %s, built: %s)\n", cliVersion, cliCommit, cliDate)
			fmt.Fprintf(out, "client library %s\n", core.ClientVersion())
			if constraint == "" {
				return nil
			}
			return checkClientVersion(constraint)
		},
	}
	cmd.Flags().StringVar(&constraint, "require", "", "fail unless the client library satisfies this constraint, e.g. \">= 1.0, < 2.0\"")
	return cmd
}

// checkClientVersion fails when the client library does not satisfy constraint.
func checkClientVersion(constraint string) error {
	constraints, err := version.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	current := core.ParsedClientVersion()
	if !constraints.Check(current) {
		return fmt.Errorf("client library %s does not satisfy %q", current, constraint)
	}
	return nil
}
