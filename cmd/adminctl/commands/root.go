package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/labsite/go-admin-client/internal/config"
	"github.com/labsite/go-admin-client/internal/logging"
	"github.com/labsite/go-admin-client/internal/printer"
	"github.com/labsite/go-admin-client/rest"
)

var (
	cliVersion = "dev"
	cliCommit  = "none"
	cliDate    = "unknown"
)

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	cliVersion = v
	cliCommit = c
	cliDate = d
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configFile string
	baseURL    string
	token      string
	output     string
	logFile    string
	verbose    bool
}

// app is built once per invocation by the root PersistentPreRunE.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	closeLog func()
	printer  *printer.Printer
	rest     *rest.TypedAdminRest
}

type appKey struct{}

// appFrom returns the app attached to cmd's context.
func appFrom(cmd *cobra.Command) *app {
	if a, ok := cmd.Context().Value(appKey{}).(*app); ok {
		return a
	}
	panic("adminctl: command ran without the root pre-run")
}

// NewRootCmd builds the adminctl command tree.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "adminctl",
		Short: "adminctl - command line client for the site admin API",
		Long: `adminctl manages the content of the site admin backend: articles,
the company profile, instruments, agent brands, visitor messages,
rental products and notices, and service categories and items.

Settings come from a YAML file (--config or ADMINCTL_CONFIG),
ADMINCTL_* environment variables, a local .env file and flags.`,
		Version: cliVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
		SilenceErrors:      true,
		SilenceUsage:       true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipSetup(cmd) {
				return nil
			}
			a, err := setup(flags, stdout, stderr)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a, ok := cmd.Context().Value(appKey{}).(*app); ok && a.closeLog != nil {
				a.closeLog()
			}
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("adminctl %s (commit: %s, built: %s)\n", cliVersion, cliCommit, cliDate))
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "YAML config file (default $ADMINCTL_CONFIG)")
	pf.StringVar(&flags.baseURL, "base-url", "", "backend address, e.g. https://admin.example.com")
	pf.StringVar(&flags.token, "token", "", "bearer token")
	pf.StringVarP(&flags.output, "output", "o", "", "output format: table, json, yaml or msgpack")
	pf.StringVar(&flags.logFile, "log-file", "", "log file (default ~/.adminctl/logs/adminctl.log)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		newArticlesCmd(),
		newCompanyCmd(),
		newInstrumentsCmd(),
		newAgentBrandsCmd(),
		newMessagesCmd(),
		newRentalCmd(),
		newServicesCmd(),
		newSnapshotCmd(),
		newDescribeCmd(),
		newVersionCmd(),
	)
	return root
}

// skipSetup reports whether cmd runs without a backend connection.
func skipSetup(cmd *cobra.Command) bool {
	if cmd.Annotations["offline"] == "true" || !cmd.HasParent() {
		return true
	}
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return cmd.Parent().Name() == "completion"
}

func setup(flags *globalFlags, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(config.LoadOptions{
		File:   flags.configFile,
		DotEnv: []string{".env"},
		Overrides: map[string]string{
			"base_url": flags.baseURL,
			"token":    flags.token,
			"output":   flags.output,
			"log_file": flags.logFile,
		},
	})
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(logging.Options{
		File:    cfg.LogFile,
		Level:   cfg.LogLevel,
		Verbose: flags.verbose,
		Console: stderr,
	})
	if err != nil {
		return nil, err
	}

	client, err := rest.NewTypedAdminRest(cfg.AdminConfig(logger))
	if err != nil {
		closeLog()
		return nil, err
	}
	logger.Debug("client ready", zap.String("base_url", cfg.BaseURL), zap.String("output", cfg.Output))

	return &app{
		cfg:      cfg,
		logger:   logger,
		closeLog: closeLog,
		printer:  &printer.Printer{Format: cfg.Output, Out: stdout, Err: stderr},
		rest:     client,
	}, nil
}

// Execute builds the command tree and runs it against os.Args.
func Execute() error {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		return printer.New("").Error("adminctl: command failed", err)
	}
	return nil
}
