// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package il0373

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}

// Opts defines the panel configuration.
type Opts struct {
	Width  int
	Height int

	// RefreshTime is the worst-case duration of a full refresh. Without a
	// busy line the driver always waits this long after DisplayRefresh.
	RefreshTime time.Duration

	// VCOMPowerOff selects the VCM DC payload of the power-down sequence.
	VCOMPowerOff VCOMPolicy

	// Delayer implements the protocol delays. Defaults to a timer.
	Delayer Delayer
	// Logger receives progress messages. Defaults to no logging.
	Logger *zerolog.Logger
}

// EPD2in13TriColor contains the configuration of the 2.13" 104x212
// black/white/red panel.
var EPD2in13TriColor = Opts{
	Width:       104,
	Height:      212,
	RefreshTime: 20 * time.Second,
}

// Dev is a handle to an IL0373 panel.
//
// Dev owns the SPI connection and both control lines. Operations are
// serialized; only one command is ever on the wire.
type Dev struct {
	mu sync.Mutex

	c         conn.Conn
	maxTxSize int

	dc   gpio.PinOut
	cs   gpio.PinOut
	busy gpio.PinIn

	opts    Opts
	delayer Delayer
	log     *zerolog.Logger

	state State
	frame *Frame
}

// New opens a handle to the panel.
//
// dc and cs are driven by the driver. busy is optional; when nil the
// refresh is waited out with a fixed delay.
func New(p spi.Port, dc, cs gpio.PinOut, busy gpio.PinIn, opts *Opts) (*Dev, error) {
	if opts.Width <= 0 || opts.Width > 0xFF || opts.Height <= 0 || opts.Height > 0xFFFF {
		return nil, fmt.Errorf("il0373: invalid panel size %dx%d", opts.Width, opts.Height)
	}

	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("il0373: failed to connect over spi: %w", err)
	}

	// Get the maxTxSize from the conn if it implements the conn.Limits interface,
	// otherwise use 4096 bytes.
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize == 0 {
		maxTxSize = 4096
	}

	d := &Dev{
		c:         c,
		maxTxSize: maxTxSize,
		dc:        dc,
		cs:        cs,
		busy:      busy,
		opts:      *opts,
		delayer:   opts.Delayer,
		log:       opts.Logger,
		state:     Unpowered,
		frame:     NewFrame(opts.Width, opts.Height),
	}
	if d.delayer == nil {
		d.delayer = timerDelayer{}
	}
	if d.log == nil {
		nop := zerolog.Nop()
		d.log = &nop
	}

	if busy != nil {
		if err := busy.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("il0373: failed to set busy line as input: %w", err)
		}
	}

	d.pinOut(cs, gpio.High)
	d.pinOut(dc, gpio.High)

	return d, nil
}

// Command sends cmd followed by data.
//
// A nil data sends the opcode alone. Chip-select is held low over the
// opcode and the whole payload; data/command-select is low for the opcode
// and high from then on.
func (d *Dev) Command(cmd Command, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.command(cmd, data)
}

func (d *Dev) command(cmd Command, data []byte) error {
	d.log.Debug().Stringer("cmd", cmd).Int("len", len(data)).Msg("il0373: command")

	d.pinOut(d.cs, gpio.High)
	d.pinOut(d.dc, gpio.Low)
	d.pinOut(d.cs, gpio.Low)

	if err := d.tx([]byte{byte(cmd)}); err != nil {
		return &TxError{Cmd: cmd, Err: err}
	}

	d.pinOut(d.dc, gpio.High)

	if data != nil {
		if err := d.tx(data); err != nil {
			return &TxError{Cmd: cmd, Payload: true, Err: err}
		}
	}

	d.pinOut(d.cs, gpio.High)
	return nil
}

// tx writes w in as few transfers as the connection allows. An empty w is
// not sent.
func (d *Dev) tx(w []byte) error {
	for len(w) > 0 {
		n := len(w)
		if n > d.maxTxSize {
			n = d.maxTxSize
		}
		if err := d.c.Tx(w[:n], nil); err != nil {
			return err
		}
		w = w[n:]
	}
	return nil
}

// pinOut drives a control line. Line writes are best-effort: a failure is
// logged and otherwise ignored.
func (d *Dev) pinOut(p gpio.PinOut, l gpio.Level) {
	if err := p.Out(l); err != nil {
		d.log.Warn().Err(err).Str("pin", p.String()).Msg("il0373: failed to drive line")
	}
}

func (d *Dev) setState(s State) {
	if d.state != s {
		d.log.Info().Stringer("from", d.state).Stringer("to", s).Msg("il0373: state")
	}
	d.state = s
}

func (d *Dev) expect(op string, states ...State) error {
	for _, s := range states {
		if d.state == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s while %s", ErrState, op, d.state)
}

// run executes fn and moves to Fault when it fails.
func (d *Dev) run(ctx context.Context, fn func(ctrl controller)) error {
	eh := errorHandler{ctx: ctx, d: d}
	fn(&eh)
	if eh.err != nil {
		d.setState(Fault)
	}
	return eh.err
}

func (d *Dev) checkFrame(f *Frame) error {
	want := PlaneSize(d.opts.Width, d.opts.Height)
	if f == nil || f.Black == nil || f.Red == nil || len(f.Black.Pix) != want || len(f.Red.Pix) != want {
		return fmt.Errorf("il0373: frame planes must be %d bytes each", want)
	}
	return nil
}

// State returns the tracked panel state.
func (d *Dev) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// PowerUp runs the power-up sequence and sets the resolution.
//
// It is accepted when the panel is Unpowered or after a Fault.
func (d *Dev) PowerUp(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.expect("PowerUp", Unpowered, Fault); err != nil {
		return err
	}
	return d.run(ctx, func(ctrl controller) {
		initDisplay(ctrl, &d.opts)
	})
}

// Write transfers both planes of f to the panel RAM.
func (d *Dev) Write(ctx context.Context, f *Frame) error {
	if err := d.checkFrame(f); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.expect("Write", Ready); err != nil {
		return err
	}
	return d.run(ctx, func(ctrl controller) {
		writePlanes(ctrl, f.Black.Bytes(), f.Red.Bytes())
	})
}

// Refresh redraws the panel from its RAM and blocks until it is done.
func (d *Dev) Refresh(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.expect("Refresh", Ready); err != nil {
		return err
	}
	return d.run(ctx, refreshDisplay)
}

// PowerDown runs the power-down sequence. It is accepted in any state.
func (d *Dev) PowerDown(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.run(ctx, func(ctrl controller) {
		powerDown(ctrl, d.opts.VCOMPowerOff)
	})
}

// Show runs a whole session on a panel in any state. It powers the panel
// down first, then powers it up, transfers both planes, refreshes and powers
// down again.
//
// Any error aborts the session; the panel is then in Fault.
func (d *Dev) Show(ctx context.Context, f *Frame) error {
	if err := d.checkFrame(f); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.run(ctx, func(ctrl controller) {
		session(ctrl, &d.opts, f.Black.Bytes(), f.Red.Bytes())
	})
}

// Demo shows the Bars test pattern.
func (d *Dev) Demo(ctx context.Context) error {
	return d.Show(ctx, Bars(d.opts.Width, d.opts.Height))
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return Palette
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.opts.Width, d.opts.Height)
}

// Draw implements display.Drawer.
//
// Only the pixels within dstRect change but the whole panel is refreshed.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error {
	d.mu.Lock()
	draw.Src.Draw(d.frame, dstRect.Intersect(d.Bounds()), src, sp)
	d.mu.Unlock()
	return d.Show(context.Background(), d.frame)
}

// Halt implements conn.Resource. It powers the panel down.
func (d *Dev) Halt() error {
	return d.PowerDown(context.Background())
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("il0373.Dev{%s, %s, %s, Width: %d, Height: %d}", d.c, d.dc, d.cs, d.opts.Width, d.opts.Height)
}
