package midi

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/jsphweid/maestro/constants"
	"github.com/jsphweid/maestro/event"
	"github.com/jsphweid/maestro/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var (
	ErrNoInputDevice = errors.New("no midi input port available")
	ErrInputClosed   = errors.New("midi input closed")
)

// Driver wraps a gomidi driver (rtmididrv in practice) with port selection
// and the input/output collaborators used for playback.
type Driver struct {
	drv    drivers.Driver
	logger *log.Logger
}

type virtualOutOpener interface {
	OpenVirtualOut(name string) (drivers.Out, error)
}

func NewDriver(drv drivers.Driver, logger *log.Logger) *Driver {
	return &Driver{drv: drv, logger: logger}
}

func (d *Driver) Close() error {
	return d.drv.Close()
}

// inputs lists the input ports, leaving out our own virtual port.
func (d *Driver) inputs(exclude string) ([]drivers.In, error) {
	ins, err := d.drv.Ins()
	if err != nil {
		return nil, errors.Wrap(err, "listing midi inputs")
	}
	var res []drivers.In
	for _, in := range ins {
		if exclude != "" && strings.Contains(in.String(), exclude) {
			continue
		}
		res = append(res, in)
	}
	return res, nil
}

func (d *Driver) InputNames(exclude string) ([]string, error) {
	ins, err := d.inputs(exclude)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names, nil
}

// SelectPort picks a port by 1-based number or by case-insensitive name
// fragment. Anything that does not resolve falls back to the first port.
func SelectPort(names []string, selector string) int {
	selector = strings.TrimSpace(selector)
	if selector == "" || len(names) == 0 {
		return 0
	}
	if n, err := strconv.Atoi(selector); err == nil {
		if n >= 1 && n <= len(names) {
			return n - 1
		}
		return 0
	}
	needle := strings.ToLower(selector)
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			return i
		}
	}
	return 0
}

func (d *Driver) OpenInput(selector, exclude string) (*PortInput, error) {
	ins, err := d.inputs(exclude)
	if err != nil {
		return nil, err
	}
	if len(ins) == 0 {
		return nil, ErrNoInputDevice
	}

	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	port := ins[SelectPort(names, selector)]

	if err := port.Open(); err != nil {
		return nil, errors.Wrapf(err, "opening input %s", port.String())
	}

	p := newPortInput(port.String(), constants.InputBufferSize, d.logger)
	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		p.push(event.FromMessage(msg))
	}, gomidi.HandleError(func(err error) {
		d.logger.Warn("midi input error", "port", p.name, "err", err)
	}))
	if err != nil {
		port.Close()
		return nil, errors.Wrapf(err, "listening on %s", port.String())
	}
	p.port = port
	p.stop = stop
	return p, nil
}

// PortInput buffers live input between the port listener and the sequencer.
type PortInput struct {
	name      string
	events    chan model.RawEvent
	closed    chan struct{}
	closeOnce sync.Once
	port      drivers.In
	stop      func()
	logger    *log.Logger
}

func newPortInput(name string, size int, logger *log.Logger) *PortInput {
	return &PortInput{
		name:   name,
		events: make(chan model.RawEvent, size),
		closed: make(chan struct{}),
		logger: logger,
	}
}

func (p *PortInput) Name() string {
	return p.name
}

func (p *PortInput) push(evt model.RawEvent) {
	select {
	case p.events <- evt:
	default:
		p.logger.Debug("input buffer full, dropping event", "port", p.name)
	}
}

func (p *PortInput) Receive(ctx context.Context) (model.RawEvent, error) {
	select {
	case <-p.closed:
		return model.RawEvent{}, ErrInputClosed
	default:
	}
	select {
	case <-ctx.Done():
		return model.RawEvent{}, ctx.Err()
	case <-p.closed:
		return model.RawEvent{}, ErrInputClosed
	case evt := <-p.events:
		return evt, nil
	}
}

func (p *PortInput) Drain() {
	for {
		select {
		case <-p.events:
		default:
			return
		}
	}
}

// Close stops listening. Pending and later Receive calls fail with
// ErrInputClosed.
func (p *PortInput) Close() error {
	p.closeOnce.Do(func() { close(p.closed) })
	if p.stop != nil {
		p.stop()
	}
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

// PortOutput sends chords to a virtual output port that instruments can
// connect to.
type PortOutput struct {
	port drivers.Out
	send func(msg gomidi.Message) error
}

func (d *Driver) OpenVirtualOutput(name string) (*PortOutput, error) {
	opener, ok := d.drv.(virtualOutOpener)
	if !ok {
		return nil, errors.Errorf("driver %s cannot open virtual ports", d.drv.String())
	}
	port, err := opener.OpenVirtualOut(name)
	if err != nil {
		return nil, errors.Wrapf(err, "opening virtual output %s", name)
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		port.Close()
		return nil, errors.Wrapf(err, "preparing output %s", name)
	}
	return &PortOutput{port: port, send: send}, nil
}

func (p *PortOutput) Send(rec model.EventRecord) error {
	return p.send(event.ToMessage(rec))
}

func (p *PortOutput) Close() error {
	return p.port.Close()
}

// DryRunOutput prints events instead of sending them.
type DryRunOutput struct {
	w io.Writer
}

func NewDryRunOutput(w io.Writer) *DryRunOutput {
	return &DryRunOutput{w: w}
}

func (o *DryRunOutput) Send(rec model.EventRecord) error {
	_, err := fmt.Fprintf(o.w, "%-8s ch=%-2d note=%-3d vel=%-3d\n", rec.Kind, rec.Channel, rec.Note, rec.Velocity)
	return err
}
