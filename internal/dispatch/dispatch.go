// Package dispatch implements the ec2ctl commands. Each method maps to one
// subcommand, performs at most one mutating AWS call and writes plain text.
package dispatch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yairfalse/ec2ctl/pkg/resource"
)

// Prompt labels printed before reading a value from input.
const (
	PromptInstanceID = "Type instance ID:"
	PromptPublicIP   = "Type public IP:"
)

// Provider is the set of AWS operations the commands need.
type Provider interface {
	ListInstances(ctx context.Context) ([]resource.Instance, error)
	GetInstance(ctx context.Context, id string) (resource.Instance, error)
	StartInstance(ctx context.Context, id string) error
	StopInstance(ctx context.Context, id string) error
	RebootInstance(ctx context.Context, id string) error
	ListGroups(ctx context.Context) ([]resource.Group, error)
}

// HTTPDoer sends the Drupal probe request. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Dispatcher runs commands against a Provider.
type Dispatcher struct {
	provider Provider
	http     HTTPDoer
	out      io.Writer
	in       *bufio.Reader
}

// New creates a dispatcher. A nil httpClient means http.DefaultClient.
func New(provider Provider, httpClient HTTPDoer, in io.Reader, out io.Writer) *Dispatcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Dispatcher{
		provider: provider,
		http:     httpClient,
		out:      out,
		in:       bufio.NewReader(in),
	}
}

// Resolve returns value if set. Otherwise it prints the instance listing and
// label, then returns one line read from input as-is.
func (d *Dispatcher) Resolve(ctx context.Context, value, label string) (string, error) {
	if value != "" {
		return value, nil
	}

	if err := d.Info(ctx); err != nil {
		return "", err
	}
	fmt.Fprintln(d.out, label)

	line, err := d.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Info prints every instance in the region.
func (d *Dispatcher) Info(ctx context.Context) error {
	instances, err := d.provider.ListInstances(ctx)
	if err != nil {
		return err
	}

	for _, i := range instances {
		fmt.Fprintf(d.out, "Instance ID: %s\n", i.ID)
		fmt.Fprintf(d.out, "State: %s\n", i.State.Name)
		fmt.Fprintf(d.out, "Public IP: %s\n", i.PublicIP)
		fmt.Fprintln(d.out)
	}
	return nil
}

// Reboot reboots the instance unless it is terminated.
func (d *Dispatcher) Reboot(ctx context.Context, instanceID string) error {
	inst, ok, err := d.lookup(ctx, instanceID)
	if err != nil || !ok {
		return err
	}

	switch inst.State.Code {
	case resource.StateTerminated:
		fmt.Fprintf(d.out, "%s is terminated, so you cannot reboot it\n", inst.ID)
		return nil
	default:
		return d.provider.RebootInstance(ctx, inst.ID)
	}
}

// Start starts the instance unless it is pending, running or terminated.
func (d *Dispatcher) Start(ctx context.Context, instanceID string) error {
	inst, ok, err := d.lookup(ctx, instanceID)
	if err != nil || !ok {
		return err
	}

	switch inst.State.Code {
	case resource.StatePending:
		fmt.Fprintf(d.out, "%s is pending, so it will be running in a bit\n", inst.ID)
	case resource.StateRunning:
		fmt.Fprintf(d.out, "%s is already started\n", inst.ID)
	case resource.StateTerminated:
		fmt.Fprintf(d.out, "%s is terminated, so you cannot start it\n", inst.ID)
	default:
		return d.provider.StartInstance(ctx, inst.ID)
	}
	return nil
}

// Stop stops the instance unless it is terminated, stopping or stopped.
func (d *Dispatcher) Stop(ctx context.Context, instanceID string) error {
	inst, ok, err := d.lookup(ctx, instanceID)
	if err != nil || !ok {
		return err
	}

	switch inst.State.Code {
	case resource.StateTerminated:
		fmt.Fprintf(d.out, "%s is terminated, so you cannot stop it\n", inst.ID)
	case resource.StateStopping:
		fmt.Fprintf(d.out, "%s is stopping, so it will be stopped in a bit\n", inst.ID)
	case resource.StateStopped:
		fmt.Fprintf(d.out, "%s is already stopped\n", inst.ID)
	default:
		if err := d.provider.StopInstance(ctx, inst.ID); err != nil {
			return err
		}
		fmt.Fprintf(d.out, "%s stop process started\n", inst.ID)
	}
	return nil
}

// AutoscaleInfo prints every Auto Scaling group in the region.
func (d *Dispatcher) AutoscaleInfo(ctx context.Context) error {
	groups, err := d.provider.ListGroups(ctx)
	if err != nil {
		return err
	}

	for _, g := range groups {
		fmt.Fprintf(d.out, "Group name: %s\n", g.Name)
		fmt.Fprintf(d.out, "Launch config name: %s\n", g.LaunchConfigurationName)
		fmt.Fprintf(d.out, "Min size: %d\n", g.MinSize)
		fmt.Fprintf(d.out, "Max size: %d\n", g.MaxSize)
		fmt.Fprintf(d.out, "Desired size: %d\n", g.DesiredCapacity)
		fmt.Fprintln(d.out, "Loadbalancers: ")
		for _, lb := range g.LoadBalancerNames {
			fmt.Fprintf(d.out, "  %s\n", lb)
		}
		fmt.Fprintf(d.out, "Attached instances - %d: \n", len(g.InstanceIDs))
		for _, id := range g.InstanceIDs {
			fmt.Fprintf(d.out, "  ID: %s\n", id)
		}
		fmt.Fprintln(d.out, "---")
	}
	return nil
}

// DrupalStatus fetches the Drupal install page on publicIP and prints the
// body followed by the status code.
func (d *Dispatcher) DrupalStatus(ctx context.Context, publicIP string) error {
	ip, err := d.Resolve(ctx, publicIP, PromptPublicIP)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://%s/drupal/install.php", ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	log.Debug().Str("url", url).Msg("probing drupal")
	resp, err := d.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	writeLine(d.out, string(body))
	fmt.Fprintln(d.out, resp.StatusCode)
	return nil
}

// lookup resolves the ID and fetches the instance. ok is false when AWS has
// no such instance.
func (d *Dispatcher) lookup(ctx context.Context, instanceID string) (resource.Instance, bool, error) {
	id, err := d.Resolve(ctx, instanceID, PromptInstanceID)
	if err != nil {
		return resource.Instance{}, false, err
	}

	inst, err := d.provider.GetInstance(ctx, id)
	if errors.Is(err, resource.ErrInstanceNotFound) {
		log.Debug().Str("instance_id", id).Msg("instance does not exist")
		return resource.Instance{}, false, nil
	}
	if err != nil {
		return resource.Instance{}, false, err
	}

	log.Debug().Str("instance_id", inst.ID).Str("state", inst.State.Code.String()).Msg("instance found")
	return inst, true, nil
}

// writeLine writes s with exactly one trailing newline.
func writeLine(w io.Writer, s string) {
	if strings.HasSuffix(s, "\n") {
		fmt.Fprint(w, s)
		return
	}
	fmt.Fprintln(w, s)
}
