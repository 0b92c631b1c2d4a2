package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"

	"github.com/yairfalse/ec2ctl/pkg/resource"
)

// ListGroups returns every Auto Scaling group in the region, in AWS order.
func (c *Client) ListGroups(ctx context.Context) ([]resource.Group, error) {
	var groups []resource.Group

	err := c.observe(ctx, "DescribeAutoScalingGroups", "*", func(ctx context.Context) error {
		var nextToken *string
		for {
			output, err := c.asgClient.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{NextToken: nextToken})
			if err != nil {
				return fmt.Errorf("describe auto scaling groups: %w", err)
			}

			for _, asg := range output.AutoScalingGroups {
				groups = append(groups, convertGroup(asg))
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

	return groups, nil
}

func convertGroup(asg asgtypes.AutoScalingGroup) resource.Group {
	ids := make([]string, 0, len(asg.Instances))
	for _, inst := range asg.Instances {
		ids = append(ids, aws.ToString(inst.InstanceId))
	}

	return resource.Group{
		Name:                    aws.ToString(asg.AutoScalingGroupName),
		LaunchConfigurationName: aws.ToString(asg.LaunchConfigurationName),
		MinSize:                 aws.ToInt32(asg.MinSize),
		MaxSize:                 aws.ToInt32(asg.MaxSize),
		DesiredCapacity:         aws.ToInt32(asg.DesiredCapacity),
		LoadBalancerNames:       append([]string(nil), asg.LoadBalancerNames...),
		InstanceIDs:             ids,
	}
}
