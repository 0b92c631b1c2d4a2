package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yairfalse/ec2ctl/internal/dispatch"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Get info about instances",
		Long: `List every instance in the region with its ID, state
and public IP address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, d *dispatch.Dispatcher) error {
				return d.Info(ctx)
			})
		},
	}
}

func newAutoscaleInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "autoscale_info",
		Aliases: []string{"autoscale-info"},
		Short:   "Print information about Auto Scaling groups",
		Long: `List every Auto Scaling group in the region with its launch
configuration, size limits, load balancers and attached instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, d *dispatch.Dispatcher) error {
				return d.AutoscaleInfo(ctx)
			})
		},
	}
}
