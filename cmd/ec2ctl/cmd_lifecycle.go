package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yairfalse/ec2ctl/internal/dispatch"
)

type lifecycleAction func(d *dispatch.Dispatcher, ctx context.Context, instanceID string) error

func newLifecycleCmd(a *app, use, short, long, flagUsage string, action lifecycleAction) *cobra.Command {
	var instanceID string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Example: `  ec2ctl ` + use + ` --instance-id i-0abc123   # act on one instance
  ec2ctl ` + use + `                          # list instances, then prompt for an ID`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, d *dispatch.Dispatcher) error {
				return action(d, ctx, instanceID)
			})
		},
	}
	cmd.Flags().StringVar(&instanceID, "instance-id", "", flagUsage)
	return cmd
}

func newStartCmd(a *app) *cobra.Command {
	return newLifecycleCmd(a, "start", "Start an instance",
		`Start an instance unless it is pending, running or terminated.`,
		"Specify which instance to start", (*dispatch.Dispatcher).Start)
}

func newStopCmd(a *app) *cobra.Command {
	return newLifecycleCmd(a, "stop", "Stop an instance",
		`Stop an instance unless it is terminated, stopping or stopped.`,
		"Specify which instance to stop", (*dispatch.Dispatcher).Stop)
}

func newRebootCmd(a *app) *cobra.Command {
	return newLifecycleCmd(a, "reboot", "Reboot an instance",
		`Reboot an instance unless it is terminated.`,
		"Specify which instance to reboot", (*dispatch.Dispatcher).Reboot)
}
