package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"

	"github.com/yairfalse/ec2ctl/pkg/resource"
)

const errCodeInstanceNotFound = "InvalidInstanceID.NotFound"

// ListInstances returns every instance in the region, in the order AWS returns them.
func (c *Client) ListInstances(ctx context.Context) ([]resource.Instance, error) {
	var instances []resource.Instance

	err := c.observe(ctx, "DescribeInstances", "*", func(ctx context.Context) error {
		var nextToken *string
		for {
			output, err := c.ec2Client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{NextToken: nextToken})
			if err != nil {
				return fmt.Errorf("describe instances: %w", err)
			}

			for _, reservation := range output.Reservations {
				for _, instance := range reservation.Instances {
					instances = append(instances, convertInstance(instance))
				}
			}

			if output.NextToken == nil {
				return nil
			}
			nextToken = output.NextToken
		}
	})
	if err != nil {
		return nil, err
	}

	return instances, nil
}

// GetInstance fetches the current state of one instance.
func (c *Client) GetInstance(ctx context.Context, id string) (resource.Instance, error) {
	var found *resource.Instance

	err := c.observe(ctx, "DescribeInstances", id, func(ctx context.Context) error {
		output, err := c.ec2Client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{InstanceIds: []string{id}})
		if err != nil {
			if isNotFound(err) {
				return resource.ErrInstanceNotFound
			}
			return fmt.Errorf("describe instance %s: %w", id, err)
		}

		for _, reservation := range output.Reservations {
			for _, instance := range reservation.Instances {
				if aws.ToString(instance.InstanceId) == id {
					inst := convertInstance(instance)
					found = &inst
					return nil
				}
			}
		}
		return resource.ErrInstanceNotFound
	})
	if err != nil {
		return resource.Instance{}, err
	}

	return *found, nil
}

// StartInstance requests a start. AWS performs it asynchronously.
func (c *Client) StartInstance(ctx context.Context, id string) error {
	return c.observe(ctx, "StartInstances", id, func(ctx context.Context) error {
		if _, err := c.ec2Client.StartInstances(ctx, &ec2.StartInstancesInput{InstanceIds: []string{id}}); err != nil {
			return fmt.Errorf("start instance %s: %w", id, err)
		}
		return nil
	})
}

// StopInstance requests a stop. AWS performs it asynchronously.
func (c *Client) StopInstance(ctx context.Context, id string) error {
	return c.observe(ctx, "StopInstances", id, func(ctx context.Context) error {
		if _, err := c.ec2Client.StopInstances(ctx, &ec2.StopInstancesInput{InstanceIds: []string{id}}); err != nil {
			return fmt.Errorf("stop instance %s: %w", id, err)
		}
		return nil
	})
}

// RebootInstance requests a reboot. AWS performs it asynchronously.
func (c *Client) RebootInstance(ctx context.Context, id string) error {
	return c.observe(ctx, "RebootInstances", id, func(ctx context.Context) error {
		if _, err := c.ec2Client.RebootInstances(ctx, &ec2.RebootInstancesInput{InstanceIds: []string{id}}); err != nil {
			return fmt.Errorf("reboot instance %s: %w", id, err)
		}
		return nil
	})
}

func convertInstance(instance ec2types.Instance) resource.Instance {
	inst := resource.Instance{
		ID:       aws.ToString(instance.InstanceId),
		PublicIP: aws.ToString(instance.PublicIpAddress),
	}
	if instance.State != nil {
		inst.State = resource.State{
			Code: resource.NormalizeCode(aws.ToInt32(instance.State.Code)),
			Name: string(instance.State.Name),
		}
	}
	return inst
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == errCodeInstanceNotFound
}
