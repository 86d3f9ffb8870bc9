// Package midictl drives an amplifier session from a MIDI foot controller.
//
// Program Change N recalls preset slot N. Control Change messages edit one
// amplifier control of the current preset and resend the amp settings.
//
//	in, _ := midi.FindInPort("FCB1010")
//	bridge := midictl.New(sess, midictl.WithChannel(0))
//	stop, err := bridge.Listen(in)
//	defer stop()
package midictl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/moffa90/go-mustang/amp"
	"github.com/moffa90/go-mustang/protocol"
)

// Controller is the part of an amp.Session the bridge drives.
type Controller interface {
	LoadSlot(ctx context.Context, slot protocol.PresetSlot) (*protocol.Preset, error)
	SendAmp(ctx context.Context, settings protocol.AmpSettings) error
}

// Control names an amplifier control reachable by Control Change.
type Control int

const (
	ControlVolume Control = iota
	ControlGain
	ControlGain2
	ControlMasterVolume
	ControlTreble
	ControlMiddle
	ControlBass
	ControlPresence
	ControlDepth
	ControlBias
)

func (c Control) String() string {
	switch c {
	case ControlVolume:
		return "volume"
	case ControlGain:
		return "gain"
	case ControlGain2:
		return "gain2"
	case ControlMasterVolume:
		return "master volume"
	case ControlTreble:
		return "treble"
	case ControlMiddle:
		return "middle"
	case ControlBass:
		return "bass"
	case ControlPresence:
		return "presence"
	case ControlDepth:
		return "depth"
	case ControlBias:
		return "bias"
	default:
		return fmt.Sprintf("control(%d)", int(c))
	}
}

// field returns the settings field c edits.
func (c Control) field(s *protocol.AmpSettings) *uint8 {
	switch c {
	case ControlVolume:
		return &s.Volume
	case ControlGain:
		return &s.Gain
	case ControlGain2:
		return &s.Gain2
	case ControlMasterVolume:
		return &s.MasterVolume
	case ControlTreble:
		return &s.Treble
	case ControlMiddle:
		return &s.Middle
	case ControlBass:
		return &s.Bass
	case ControlPresence:
		return &s.Presence
	case ControlDepth:
		return &s.Depth
	case ControlBias:
		return &s.Bias
	default:
		return nil
	}
}

// DefaultControlMap assigns controller numbers to amplifier controls.
// CC 7 is the MIDI channel volume; CC 1 the modulation wheel.
func DefaultControlMap() map[uint8]Control {
	return map[uint8]Control{
		1:  ControlGain,
		7:  ControlVolume,
		14: ControlGain2,
		15: ControlMasterVolume,
		16: ControlTreble,
		17: ControlMiddle,
		18: ControlBass,
		19: ControlPresence,
		20: ControlDepth,
		21: ControlBias,
	}
}

// Scale maps a 7-bit MIDI value onto the amplifier's 0-255 range.
func Scale(v uint8) uint8 {
	if v > 127 {
		v = 127
	}
	return uint8((int(v)*255 + 63) / 127)
}

// Bridge translates MIDI messages into session operations. It keeps the
// amp settings of the most recently loaded preset so that Control Change
// edits apply on top of them.
type Bridge struct {
	ctrl     Controller
	channel  uint8
	controls map[uint8]Control
	timeout  time.Duration
	logger   amp.Logger

	mu       sync.Mutex
	settings protocol.AmpSettings
	slot     int
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithChannel sets the MIDI channel (0-15) the bridge listens on.
func WithChannel(ch uint8) Option {
	return func(b *Bridge) {
		if ch < 16 {
			b.channel = ch
		}
	}
}

// WithControlMap replaces the controller number assignments.
func WithControlMap(m map[uint8]Control) Option {
	return func(b *Bridge) {
		b.controls = m
	}
}

// WithTimeout bounds each session operation triggered by a message.
func WithTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithLogger sets a logger for received messages and session failures.
func WithLogger(l amp.Logger) Option {
	return func(b *Bridge) {
		b.logger = l
	}
}

// WithSettings seeds the amp settings edited before any preset is loaded.
func WithSettings(s protocol.AmpSettings) Option {
	return func(b *Bridge) {
		b.settings = s
	}
}

// New creates a Bridge driving ctrl.
func New(ctrl Controller, opts ...Option) *Bridge {
	b := &Bridge{
		ctrl:     ctrl,
		controls: DefaultControlMap(),
		timeout:  2 * time.Second,
		slot:     -1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Settings returns the amp settings the bridge currently holds.
func (b *Bridge) Settings() protocol.AmpSettings {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.settings
}

// Slot returns the most recently loaded preset slot, or -1.
func (b *Bridge) Slot() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slot
}

// Handle applies one MIDI message. Messages on other channels, program
// numbers without a preset slot and unmapped controllers are ignored.
func (b *Bridge) Handle(ctx context.Context, msg midi.Message) error {
	var ch, prog, cc, val uint8

	switch {
	case msg.GetProgramChange(&ch, &prog):
		if ch != b.channel {
			return nil
		}
		return b.programChange(ctx, prog)
	case msg.GetControlChange(&ch, &cc, &val):
		if ch != b.channel {
			return nil
		}
		return b.controlChange(ctx, cc, val)
	}
	return nil
}

func (b *Bridge) programChange(ctx context.Context, prog uint8) error {
	slot, err := protocol.NewPresetSlot(int(prog))
	if err != nil {
		b.logDebug("program change ignored", "program", prog)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	preset, err := b.ctrl.LoadSlot(ctx, slot)
	if err != nil {
		return fmt.Errorf("program change %d: %w", prog, err)
	}
	b.settings = preset.Amp
	b.slot = int(slot)
	b.logInfo("preset recalled", "slot", int(slot), "name", preset.Name)
	return nil
}

func (b *Bridge) controlChange(ctx context.Context, cc, val uint8) error {
	control, ok := b.controls[cc]
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.settings
	field := control.field(&next)
	if field == nil {
		return nil
	}
	*field = Scale(val)

	if err := b.ctrl.SendAmp(ctx, next); err != nil {
		return fmt.Errorf("control change %d (%s): %w", cc, control, err)
	}
	b.settings = next
	b.logDebug("control changed", "control", control.String(), "value", *field)
	return nil
}

// Listen feeds every message arriving on in to Handle until stop is called.
// Errors are logged.
func (b *Bridge) Listen(in drivers.In) (stop func(), err error) {
	return midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		if err := b.Handle(context.Background(), msg); err != nil {
			b.logError("midi message failed", "message", msg.String(), "error", err)
		}
	})
}

func (b *Bridge) logDebug(msg string, keysAndValues ...any) {
	if b.logger != nil {
		b.logger.Debug(msg, keysAndValues...)
	}
}

func (b *Bridge) logInfo(msg string, keysAndValues ...any) {
	if b.logger != nil {
		b.logger.Info(msg, keysAndValues...)
	}
}

func (b *Bridge) logError(msg string, keysAndValues ...any) {
	if b.logger != nil {
		b.logger.Error(msg, keysAndValues...)
	}
}
