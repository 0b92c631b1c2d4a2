package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yairfalse/ec2ctl/internal/dispatch"
)

func newDrupalStatusCmd(a *app) *cobra.Command {
	var publicIP string

	cmd := &cobra.Command{
		Use:     "drupal_status",
		Aliases: []string{"drupal-status"},
		Short:   "Check Drupal status",
		Long: `Fetch http://<public-ip>/drupal/install.php and print the
response body followed by the HTTP status code.`,
		Example: `  ec2ctl drupal_status --public-ip 54.12.0.7`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, d *dispatch.Dispatcher) error {
				return d.DrupalStatus(ctx, publicIP)
			})
		},
	}
	cmd.Flags().StringVar(&publicIP, "public-ip", "", "Specify public IP of host where Drupal is running")
	return cmd
}
