package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yairfalse/ec2ctl/internal/config"
	"github.com/yairfalse/ec2ctl/internal/dispatch"
	"github.com/yairfalse/ec2ctl/internal/provider/aws"
	"github.com/yairfalse/ec2ctl/internal/telemetry"
)

var version = "0.1.0"

// deps holds everything a command run touches outside the process.
type deps struct {
	lookupEnv   config.LookupFunc
	newProvider func(context.Context, config.AWSConfig, *telemetry.Provider) (dispatch.Provider, error)
	httpClient  dispatch.HTTPDoer
	in          io.Reader
	out         io.Writer
}

func defaultDeps() deps {
	return deps{
		lookupEnv: os.LookupEnv,
		newProvider: func(ctx context.Context, cfg config.AWSConfig, tel *telemetry.Provider) (dispatch.Provider, error) {
			return aws.New(ctx, cfg, tel)
		},
		httpClient: http.DefaultClient,
		in:         os.Stdin,
		out:        os.Stdout,
	}
}

// app is built once per invocation, after the environment has been checked.
type app struct {
	cfg        *config.Config
	tel        *telemetry.Provider
	dispatcher *dispatch.Dispatcher
}

func execute(ctx context.Context, args []string, d deps) error {
	var a app
	root := newRootCmd(d, &a)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if a.tel != nil {
		if shutdownErr := a.tel.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			log.Warn().Err(shutdownErr).Msg("telemetry shutdown failed")
		}
	}
	return err
}

func newRootCmd(d deps, a *app) *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:   "ec2ctl",
		Short: "Inspect and control EC2 instances and Auto Scaling groups",
		Long: `ec2ctl - EC2 and Auto Scaling from the command line

Lists instances and Auto Scaling groups, starts, stops and reboots
instances, and checks the Drupal install page on a host.

Credentials and region are read from AWS_CLI_ID, AWS_CLI_SECRET
and AWS_REGION. All three must be set.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return a.setup(cmd.Context(), d, debug)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetVersionTemplate(`ec2ctl {{.Version}}
`)
	root.SetOut(d.out)
	root.SetIn(d.in)
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newInfoCmd(a),
		newAutoscaleInfoCmd(a),
		newStartCmd(a),
		newStopCmd(a),
		newRebootCmd(a),
		newDrupalStatusCmd(a),
	)
	return root
}

// setup reads the environment and builds the client. It runs before any
// subcommand, so a missing variable stops the run before any AWS call.
func (a *app) setup(ctx context.Context, d deps, debug bool) error {
	cfg, err := config.FromEnv(d.lookupEnv)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := setupLogging(cfg.Log.Level, debug); err != nil {
		return err
	}

	tel, err := telemetry.NewProvider(ctx, cfg.OTEL)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	a.tel = tel

	provider, err := d.newProvider(ctx, cfg.AWS, tel)
	if err != nil {
		return fmt.Errorf("create aws client: %w", err)
	}

	a.dispatcher = dispatch.New(provider, d.httpClient, d.in, d.out)

	log.Debug().
		Str("region", cfg.AWS.Region).
		Bool("telemetry", cfg.OTEL.Enabled()).
		Msg("ec2ctl ready")
	return nil
}

func setupLogging(level string, debug bool) error {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// run executes one command inside a span and records its duration.
func (a *app) run(cmd *cobra.Command, fn func(context.Context, *dispatch.Dispatcher) error) error {
	name := cmd.Name()
	ctx, span := a.tel.StartSpan(cmd.Context(), "command."+name,
		attribute.String("aws.region", a.cfg.AWS.Region),
	)
	start := time.Now()

	err := fn(ctx, a.dispatcher)

	a.tel.RecordCommandDuration(ctx, name, time.Since(start))
	telemetry.EndSpan(span, err)
	return err
}
