package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/bankdomain/internal/cliconfig"
	"github.com/bft-labs/bankdomain/pkg/bankdomain"
	"github.com/bft-labs/bankdomain/pkg/catalog"
	"github.com/bft-labs/bankdomain/pkg/log"
	"github.com/bft-labs/bankdomain/plugins/catalogwatcher"
)

const helpDescription = `
Validate, format and look up Swedish bank account numbers.

Input is free form: "8129-9, 043 386 711-6" and "81299043386711 6" are the
same account. The bank is found from the clearing number and the account
digits are checked against the bank's checksum rule.

The bank table is embedded. Use --catalog to serve another one, either the
semicolon separated reference CSV or a file produced by "catalog compile".
`

var exampleUsage = strings.TrimSpace(`
  bankdomain validate "5000 1234567"
  bankdomain format --style default 8129-9,043-386-711-6
  bankdomain resolve 8129
  cat accounts.txt | bankdomain check --json
  bankdomain check --catalog ./clearingnummer.csv --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return bankdomain.Version
}

// app carries the resolved configuration into subcommands.
type app struct {
	cfg     cliconfig.Config
	cfgPath string
	logger  log.Logger
	out     *printer
}

func main() {
	a := &app{cfg: cliconfig.DefaultConfig()}

	root := newRootCmd(a)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "bankdomain",
		Short:         "Swedish bank account number toolkit",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.bankdomain/config.toml)")
	pf.StringVar(&a.cfg.CatalogFile, "catalog", a.cfg.CatalogFile, "bank catalog file (.csv or "+catalog.BinaryExt+"); embedded table when empty")
	pf.StringVar(&a.cfg.Style, "style", a.cfg.Style, "output style (default|pretty)")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug|info|warn|error)")
	pf.IntVar(&a.cfg.Concurrency, "concurrency", a.cfg.Concurrency, "parallel parses per batch (0 = GOMAXPROCS)")
	pf.BoolVar(&a.cfg.Color, "color", a.cfg.Color, "colorize output when writing to a terminal")
	pf.BoolVar(&a.cfg.JSON, "json", a.cfg.JSON, "print results as JSON lines")

	root.AddCommand(
		newValidateCmd(a),
		newFormatCmd(a),
		newResolveCmd(a),
		newBanksCmd(a),
		newCheckCmd(a),
		newCatalogCmd(a),
	)
	return root
}

// configure resolves flag > env > file > default and builds the logger.
func (a *app) configure(cmd *cobra.Command) error {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return err
		}
	}
	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = log.NewZerologAdapter(os.Stderr, level)
	a.logger.Debug("configuration",
		log.String("config_file", cfgFile),
		log.Any("config", a.cfg))

	if !a.cfg.Color {
		color.NoColor = true
	}
	a.out = newPrinter(cmd.OutOrStdout(), a.cfg.JSON)
	return nil
}

// newService builds a service over the configured catalog. Extra options
// are appended after the ones derived from the configuration.
func (a *app) newService(extra ...bankdomain.Option) (*bankdomain.Service, error) {
	opts := []bankdomain.Option{
		bankdomain.WithLogger(a.logger),
		bankdomain.WithConcurrency(a.cfg.Concurrency),
	}
	if a.cfg.CatalogFile != "" {
		opts = append(opts, bankdomain.WithCatalogFile(a.cfg.CatalogFile))
	}
	if a.cfg.Watch {
		opts = append(opts, catalogwatcher.WithCatalogWatcher(catalogwatcher.Config{
			DebounceDelay: a.cfg.DebounceDelay,
		}))
	}
	opts = append(opts, extra...)

	svc, err := bankdomain.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return svc, nil
}
