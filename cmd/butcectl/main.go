package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"butce/internal/config"
	"butce/internal/database"
	"butce/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	cfgFile   string
	log       *logrus.Logger
	repo      *database.Repo
	portfolio *service.Portfolio
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "butcectl",
		Short:        "Inspect and edit the holdings worksheet",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.repo != nil {
				return a.repo.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print every holding with its computed total",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printView(cmd.OutOrStdout(), a.portfolio.View(cmd.Context()))
			},
		},
		&cobra.Command{
			Use:   "add TYPE NAME QUANTITY PRICE",
			Short: "Append a holding (TYPE: stock, fund, metal_fx, cash or its Turkish label)",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := a.portfolio.Add(cmd.Context(), service.AddRequest{
					Type: args[0], Name: args[1], Quantity: args[2], Price: args[3],
				})
				if err != nil {
					return err
				}
				return a.printView(cmd.OutOrStdout(), v)
			},
		},
		&cobra.Command{
			Use:   "delete NAME",
			Short: "Remove the first holding called NAME",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, deleted, err := a.portfolio.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !deleted {
					fmt.Fprintf(cmd.ErrOrStderr(), "no holding named %q\n", args[0])
				}
				return a.printView(cmd.OutOrStdout(), v)
			},
		},
		&cobra.Command{
			Use:   "total",
			Short: "Print the net worth",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				v := a.portfolio.View(cmd.Context())
				fmt.Fprintln(cmd.OutOrStdout(), v.GrandTotalDisplay)
				return nil
			},
		},
		newSeedCmd(a),
	)
	return root
}

func (a *app) open(ctx context.Context) error {
	cfg, err := config.Load(viper.New(), a.cfgFile)
	if err != nil {
		return err
	}
	a.log = cfg.NewLogger()
	a.log.SetOutput(os.Stderr)
	a.repo, err = database.Open(ctx, cfg, a.log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	a.portfolio = service.NewPortfolio(a.repo, cfg.Currency, a.log)
	return nil
}

func (a *app) printView(out io.Writer, v service.View) error {
	if v.Warning != "" {
		fmt.Fprintln(out, v.Warning)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "TUR\tISIM\tADET\tFIYAT\tTOPLAM\t")
	for _, r := range v.Holdings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			r.Label, r.Name,
			strconv.FormatFloat(r.Quantity, 'f', -1, 64),
			service.FormatMoney(r.Price, a.portfolio.Currency()),
			service.FormatMoney(r.Total, a.portfolio.Currency()),
		)
	}
	fmt.Fprintf(tw, "\t\t\t\t%s\t\n", v.GrandTotalDisplay)
	return tw.Flush()
}
