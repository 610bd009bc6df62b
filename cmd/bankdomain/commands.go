package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bft-labs/bankdomain/pkg/account"
	"github.com/bft-labs/bankdomain/pkg/log"
)

// errInvalid is returned when at least one input failed validation. The
// results have already been printed, so main only sets the exit status.
var errInvalid = errors.New("invalid input")

// checkBatchSize bounds how many stdin lines are parsed together.
const checkBatchSize = 1024

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <account> [account...]",
		Short: "Report whether each argument is a valid account number",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService()
			if err != nil {
				return err
			}
			style, err := account.ParseStyle(a.cfg.Style)
			if err != nil {
				return err
			}

			invalid := 0
			for _, in := range args {
				b, err := svc.Parse(in)
				if err != nil {
					invalid++
				}
				if err := a.out.result(in, b, err, style); err != nil {
					return err
				}
			}
			if invalid > 0 {
				return errInvalid
			}
			return nil
		},
	}
}

func newFormatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "format <account> [account...]",
		Short: "Print each account in the configured style",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService()
			if err != nil {
				return err
			}
			style, err := account.ParseStyle(a.cfg.Style)
			if err != nil {
				return err
			}

			var failed error
			for _, in := range args {
				b, err := svc.Parse(in)
				if err != nil {
					failed = errInvalid
					if err := a.out.result(in, b, err, style); err != nil {
						return err
					}
					continue
				}
				if err := a.out.formatted(in, b, svc.Format(b, style)); err != nil {
					return err
				}
			}
			return failed
		},
	}
}

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <clearing> [clearing...]",
		Short: "Show the bank and account scheme behind clearing numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService()
			if err != nil {
				return err
			}

			var failed error
			for _, in := range args {
				m, err := svc.Resolve(strings.TrimSpace(in))
				if err != nil {
					failed = errInvalid
				}
				if err := a.out.match(in, m, err); err != nil {
					return err
				}
			}
			return failed
		},
	}
}

func newBanksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List the banks in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService()
			if err != nil {
				return err
			}
			return a.out.banks(svc.Catalog().Banks())
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate account numbers read line by line from stdin",
		Long: strings.TrimSpace(`
Validate account numbers read line by line from stdin. Blank lines are
skipped. With --watch the catalog file is reloaded whenever it changes and
each line is checked as soon as it arrives.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd)
		},
	}
	cmd.Flags().BoolVar(&a.cfg.Watch, "watch", a.cfg.Watch, "reload the --catalog file when it changes")
	cmd.Flags().DurationVar(&a.cfg.DebounceDelay, "debounce", a.cfg.DebounceDelay, "quiet period before a changed catalog is reloaded")
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command) error {
	style, err := account.ParseStyle(a.cfg.Style)
	if err != nil {
		return err
	}
	svc, err := a.newService()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svc.Stop(stopCtx); err != nil {
			a.logger.Warn("service stop failed", log.Err(err))
		}
	}()

	batchSize := checkBatchSize
	if a.cfg.Watch {
		batchSize = 1
	}

	var total, invalid int
	batch := make([]string, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		results, err := svc.CheckAll(ctx, batch)
		for _, r := range results {
			if r.Input == "" {
				continue
			}
			total++
			if !r.Valid() {
				invalid++
			}
			if err := a.out.result(r.Input, r.Account, r.Err, style); err != nil {
				return err
			}
		}
		batch = batch[:0]
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		batch = append(batch, line)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if err := flush(); err != nil {
		return err
	}

	a.logger.Info("check complete",
		log.Int("checked", total),
		log.Int("invalid", invalid))
	if invalid > 0 {
		return errInvalid
	}
	return nil
}
