package main

import (
	"fmt"

	"butce/internal/service"

	"github.com/spf13/cobra"
)

// demoHoldings mixes the input styles the normalizer has to cope with.
var demoHoldings = []service.AddRequest{
	{Type: "stock", Name: "THYAO", Quantity: "100", Price: "285,50"},
	{Type: "stock", Name: "ASELS", Quantity: "250", Price: "62,15 TL"},
	{Type: "fund", Name: "TTE", Quantity: "1.500", Price: "2,4175"},
	{Type: "metal_fx", Name: "Gram Altın", Quantity: "12,5", Price: "2.450,75"},
	{Type: "metal_fx", Name: "USD", Quantity: "1.000", Price: "32,40"},
	{Type: "cash", Name: "Vadesiz Hesap", Quantity: "1", Price: "₺15.000"},
}

func newSeedCmd(a *app) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a demo portfolio to the worksheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if reset {
				for _, name := range a.portfolio.View(ctx).Names {
					if _, _, err := a.portfolio.Delete(ctx, name); err != nil {
						return err
					}
				}
			}
			var last service.View
			for _, h := range demoHoldings {
				v, err := a.portfolio.Add(ctx, h)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not add %s: %v\n", h.Name, err)
					continue
				}
				last = v
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d holdings, net worth %s\n", len(last.Holdings), last.GrandTotalDisplay)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "delete existing holdings first")
	return cmd
}
