package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockASGClient implements AutoScalingAPI for testing.
type mockASGClient struct {
	describeFunc func(ctx context.Context, params *autoscaling.DescribeAutoScalingGroupsInput, optFns ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error)
}

func (m *mockASGClient) DescribeAutoScalingGroups(ctx context.Context, params *autoscaling.DescribeAutoScalingGroupsInput, optFns ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error) {
	if m.describeFunc != nil {
		return m.describeFunc(ctx, params, optFns...)
	}
	return &autoscaling.DescribeAutoScalingGroupsOutput{}, nil
}

func TestListGroups(t *testing.T) {
	mock := &mockASGClient{
		describeFunc: func(_ context.Context, _ *autoscaling.DescribeAutoScalingGroupsInput, _ ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error) {
			return &autoscaling.DescribeAutoScalingGroupsOutput{
				AutoScalingGroups: []types.AutoScalingGroup{{
					AutoScalingGroupName:    aws.String("web"),
					LaunchConfigurationName: aws.String("web-lc-v2"),
					MinSize:                 aws.Int32(1),
					MaxSize:                 aws.Int32(4),
					DesiredCapacity:         aws.Int32(2),
					LoadBalancerNames:       []string{"web-elb", "web-elb-internal"},
					Instances: []types.Instance{
						{InstanceId: aws.String("i-1")},
						{InstanceId: aws.String("i-2")},
					},
				}},
			}, nil
		},
	}

	c := &Client{region: "us-east-1", asgClient: mock}
	groups, err := c.ListGroups(context.Background())

	require.NoError(t, err)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, "web", g.Name)
	assert.Equal(t, "web-lc-v2", g.LaunchConfigurationName)
	assert.Equal(t, int32(1), g.MinSize)
	assert.Equal(t, int32(4), g.MaxSize)
	assert.Equal(t, int32(2), g.DesiredCapacity)
	assert.Equal(t, []string{"web-elb", "web-elb-internal"}, g.LoadBalancerNames)
	assert.Equal(t, []string{"i-1", "i-2"}, g.InstanceIDs)
}

func TestListGroups_Pagination(t *testing.T) {
	callCount := 0
	mock := &mockASGClient{
		describeFunc: func(_ context.Context, _ *autoscaling.DescribeAutoScalingGroupsInput, _ ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error) {
			callCount++
			if callCount == 1 {
				return &autoscaling.DescribeAutoScalingGroupsOutput{
					AutoScalingGroups: []types.AutoScalingGroup{{AutoScalingGroupName: aws.String("a")}},
					NextToken:         aws.String("next"),
				}, nil
			}
			return &autoscaling.DescribeAutoScalingGroupsOutput{
				AutoScalingGroups: []types.AutoScalingGroup{{AutoScalingGroupName: aws.String("b")}},
			}, nil
		},
	}

	c := &Client{region: "us-east-1", asgClient: mock}
	groups, err := c.ListGroups(context.Background())

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "a", groups[0].Name)
	assert.Equal(t, "b", groups[1].Name)
	assert.Empty(t, groups[0].InstanceIDs)
	assert.Equal(t, 2, callCount)
}

func TestListGroups_Error(t *testing.T) {
	mock := &mockASGClient{
		describeFunc: func(_ context.Context, _ *autoscaling.DescribeAutoScalingGroupsInput, _ ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error) {
			return nil, errors.New("throttled")
		},
	}

	c := &Client{region: "us-east-1", asgClient: mock}
	_, err := c.ListGroups(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "describe auto scaling groups")
}
