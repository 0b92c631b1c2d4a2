// Package aws implements the EC2 and Auto Scaling client used by ec2ctl.
package aws

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yairfalse/ec2ctl/internal/config"
	"github.com/yairfalse/ec2ctl/internal/telemetry"
)

// Client issues EC2 and Auto Scaling calls for one account and region.
type Client struct {
	region string

	// AWS clients (interfaces for testability)
	ec2Client EC2API
	asgClient AutoScalingAPI

	tel *telemetry.Provider
}

// New builds a client from static credentials. No API call is made.
func New(ctx context.Context, cfg config.AWSConfig, tel *telemetry.Provider) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		// The tool makes exactly one attempt per call.
		awsconfig.WithRetryMaxAttempts(1),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewWithClients(cfg.Region, ec2.NewFromConfig(awsCfg), autoscaling.NewFromConfig(awsCfg), tel), nil
}

// NewWithClients wires pre-built SDK clients. tel may be nil.
func NewWithClients(region string, ec2Client EC2API, asgClient AutoScalingAPI, tel *telemetry.Provider) *Client {
	return &Client{
		region:    region,
		ec2Client: ec2Client,
		asgClient: asgClient,
		tel:       tel,
	}
}

// Region returns the region the client talks to.
func (c *Client) Region() string {
	return c.region
}

// observe wraps one API call in a span, a metric and a debug log line.
func (c *Client) observe(ctx context.Context, operation, target string, fn func(context.Context) error) error {
	if c.tel == nil {
		return c.logged(ctx, operation, target, fn)
	}

	ctx, span := c.tel.StartSpan(ctx, "aws."+operation,
		attribute.String("aws.region", c.region),
		attribute.String("aws.target", target),
	)
	err := c.logged(ctx, operation, target, fn)
	c.tel.RecordAPICall(ctx, operation, err)
	telemetry.EndSpan(span, err)
	return err
}

func (c *Client) logged(ctx context.Context, operation, target string, fn func(context.Context) error) error {
	log.Debug().Str("operation", operation).Str("target", target).Str("region", c.region).Msg("calling aws")
	err := fn(ctx)
	if err != nil {
		log.Debug().Err(err).Str("operation", operation).Msg("aws call failed")
	}
	return err
}
