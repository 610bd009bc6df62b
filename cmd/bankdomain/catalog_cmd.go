package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bft-labs/bankdomain/pkg/catalog"
	"github.com/bft-labs/bankdomain/pkg/log"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with bank catalog files",
	}
	cmd.AddCommand(newCatalogCompileCmd(a), newCatalogLintCmd(a))
	return cmd
}

func newCatalogCompileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compile <in.csv> <out" + catalog.BinaryExt + ">",
		Short: "Convert a reference CSV into the binary catalog form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]

			c, err := catalog.LoadFile(in, catalog.WithLogger(a.logger))
			if err != nil {
				return err
			}
			if err := writeCatalog(out, c); err != nil {
				return err
			}

			a.logger.Info("catalog compiled",
				log.String("from", in),
				log.String("to", out),
				log.Int("banks", c.Len()))
			return nil
		},
	}
}

func writeCatalog(path string, c *catalog.Catalog) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := catalog.WriteBinary(f, c); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func newCatalogLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [file]",
		Short: "Report clearing ranges claimed by more than one scheme",
		Long: "Report clearing ranges claimed by more than one scheme. Without an argument\n" +
			"the --catalog file is checked, or the embedded table when none is set.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.CatalogFile
			if len(args) == 1 {
				path = args[0]
			}

			c := catalog.Default()
			if path != "" {
				loaded, err := catalog.LoadFile(path)
				if err != nil {
					return err
				}
				c = loaded
			}

			overlaps := c.Overlaps()
			if err := a.out.overlaps(overlaps); err != nil {
				return err
			}
			if len(overlaps) > 0 {
				return errInvalid
			}
			return nil
		},
	}
}
