package amp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moffa90/go-mustang/protocol"
	"github.com/moffa90/go-mustang/usb"
)

// State is the lifecycle state of a Session.
type State int

const (
	// StateDisconnected means no device handle is held
	StateDisconnected State = iota

	// StateConnected means the device is open and its interface claimed
	StateConnected

	// StateReady means the initialization handshake completed
	StateReady
)

// drainLimit bounds how many stale packets are discarded after an
// abandoned response before the session gives up on the device.
const drainLimit = protocol.SlotCount

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session owns one amplifier connection. It drives the
// connect/handshake/ready/disconnect state machine and serializes every
// transfer on the device handle.
//
// Session is safe for concurrent use; operations run one at a time.
type Session struct {
	opener usb.Opener
	config Config

	mu        sync.Mutex
	state     State
	handle    usb.Handle
	productID uint16
	detached  bool
}

// New creates a Session that opens devices through opener.
//
// Example:
//
//	ctx := libusb.NewContext()
//	defer ctx.Close()
//
//	sess := amp.New(ctx,
//	    amp.WithLogger(slog.Default()),
//	    amp.WithTimeout(time.Second),
//	)
func New(opener usb.Opener, opts ...Option) *Session {
	if opener == nil {
		panic("opener cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}

	return &Session{
		opener: opener,
		config: cfg,
	}
}

// ID returns the session identifier used in log output.
func (s *Session) ID() string {
	return s.config.SessionID
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ProductID returns the product ID of the connected device, or 0.
func (s *Session) ProductID() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productID
}

// Model returns the model of the connected device.
func (s *Session) Model() (protocol.Model, bool) {
	return protocol.LookupModel(s.ProductID())
}

// Connect opens the first attached device among the configured product IDs,
// detaches an active kernel driver and claims the interface. On failure
// everything acquired so far is released and the session stays
// Disconnected.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require("connect", StateDisconnected); err != nil {
		return err
	}

	for _, pid := range s.config.ProductIDs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("connect: %w", err)
		}

		h, err := s.opener.Open(protocol.VendorID, pid)
		if errors.Is(err, usb.ErrDeviceNotFound) {
			s.logDebug("device not attached", "product_id", fmt.Sprintf("0x%04X", pid))
			continue
		}
		if err != nil {
			return fmt.Errorf("connect 0x%04X: %w", pid, err)
		}

		if err := s.claim(h); err != nil {
			return fmt.Errorf("connect 0x%04X: %w", pid, err)
		}

		s.handle = h
		s.productID = pid
		s.setState(StateConnected)

		model, _ := protocol.LookupModel(pid)
		s.logInfo("device connected",
			"product_id", fmt.Sprintf("0x%04X", pid),
			"model", model.Name,
			"kernel_driver_detached", s.detached,
		)
		return nil
	}

	return fmt.Errorf("connect: %w", usb.ErrDeviceNotFound)
}

// claim detaches the kernel driver and claims the interface, undoing the
// detach and closing h if the claim fails.
func (s *Session) claim(h usb.Handle) error {
	iface := s.config.Interface

	detached, err := h.DetachKernelDriver(iface)
	if err != nil {
		return errors.Join(err, h.Close())
	}

	if err := h.ClaimInterface(iface); err != nil {
		errs := []error{err}
		if detached {
			errs = append(errs, h.AttachKernelDriver(iface))
		}
		errs = append(errs, h.Close())
		return errors.Join(errs...)
	}

	s.detached = detached
	return nil
}

// Handshake sends the initialization command and waits for the device's
// acknowledgement.
func (s *Session) Handshake(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require("handshake", StateConnected); err != nil {
		return err
	}

	if err := s.write(ctx, "handshake", protocol.InitCommand()); err != nil {
		return s.fail("handshake", err)
	}
	if _, err := s.read(ctx, "handshake"); err != nil {
		return s.fail("handshake", err)
	}

	s.setState(StateReady)
	s.logInfo("handshake complete")
	return nil
}

// Close releases the interface, reattaches the kernel driver if Connect
// detached it and closes the device. Close is idempotent; every release
// step runs even if an earlier one fails.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.teardown()
}

func (s *Session) teardown() error {
	if s.handle == nil {
		s.setState(StateDisconnected)
		return nil
	}

	iface := s.config.Interface
	var errs []error
	if err := s.handle.ReleaseInterface(iface); err != nil {
		errs = append(errs, err)
	}
	if s.detached {
		if err := s.handle.AttachKernelDriver(iface); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.handle.Close(); err != nil {
		errs = append(errs, err)
	}

	s.handle = nil
	s.productID = 0
	s.detached = false
	s.setState(StateDisconnected)

	err := errors.Join(errs...)
	if err != nil {
		s.logError("release failed", "error", err)
	} else {
		s.logInfo("device released")
	}
	return err
}

// SendAmp writes the amplifier settings, the USB gain and an apply command.
func (s *Session) SendAmp(ctx context.Context, settings protocol.AmpSettings) error {
	pkt, err := protocol.EncodeAmp(settings)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require("send amp", StateReady); err != nil {
		return err
	}

	for _, p := range []protocol.Packet{pkt, protocol.EncodeUSBGain(settings), protocol.ApplyCommand()} {
		if err := s.write(ctx, "send amp", p); err != nil {
			return s.fail("send amp", err)
		}
	}

	s.logDebug("amp sent", "model", settings.Model.String(), "cabinet", settings.Cabinet.String())
	return nil
}

// SendEffects writes one block per effect category and an apply command.
// Categories without an effect are cleared.
func (s *Session) SendEffects(ctx context.Context, effects []protocol.EffectSettings) error {
	blocks, err := protocol.EncodeEffects(effects)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require("send effects", StateReady); err != nil {
		return err
	}

	for _, p := range blocks {
		if err := s.write(ctx, "send effects", p); err != nil {
			return s.fail("send effects", err)
		}
	}
	if err := s.write(ctx, "send effects", protocol.ApplyCommand()); err != nil {
		return s.fail("send effects", err)
	}

	s.logDebug("effects sent", "count", len(effects))
	return nil
}

// SlotNames requests the preset directory and returns the name of every
// slot in slot order.
func (s *Session) SlotNames(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require("slot names", StateReady); err != nil {
		return nil, err
	}

	if err := s.write(ctx, "slot names", protocol.DirectoryCommand()); err != nil {
		return nil, s.fail("slot names", err)
	}

	names := make([]string, protocol.SlotCount)
	for i := range names {
		p, err := s.read(ctx, "slot names")
		if err != nil {
			return nil, s.abandon(fmt.Sprintf("slot names (slot %d)", i), err)
		}
		names[i] = protocol.DecodeName(p)
	}
	return names, nil
}

// SaveSlot stores the device's current settings in slot under name.
func (s *Session) SaveSlot(ctx context.Context, slot protocol.PresetSlot, name string) error {
	if _, err := protocol.NewPresetSlot(int(slot)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require("save slot", StateReady); err != nil {
		return err
	}

	if err := s.write(ctx, "save slot", protocol.SaveSlotCommand(slot, name)); err != nil {
		return s.fail("save slot", err)
	}
	if _, err := s.read(ctx, "save slot"); err != nil {
		return s.fail("save slot", err)
	}

	s.logInfo("slot saved", "slot", int(slot), "name", name)
	return nil
}

// LoadSlot recalls a preset from device memory and returns its decoded
// contents. The device also switches to the recalled preset.
func (s *Session) LoadSlot(ctx context.Context, slot protocol.PresetSlot) (*protocol.Preset, error) {
	if _, err := protocol.NewPresetSlot(int(slot)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require("load slot", StateReady); err != nil {
		return nil, err
	}

	if err := s.write(ctx, "load slot", protocol.LoadSlotCommand(slot)); err != nil {
		return nil, s.fail("load slot", err)
	}

	packets := make([]protocol.Packet, protocol.LoadResponsePackets)
	for i := range packets {
		p, err := s.read(ctx, "load slot")
		if err != nil {
			return nil, s.abandon("load slot", err)
		}
		packets[i] = p
	}

	preset, err := protocol.DecodePreset(slot, packets)
	if err != nil {
		return nil, fmt.Errorf("load slot %d: %w", slot, err)
	}

	s.logInfo("slot loaded", "slot", int(slot), "name", preset.Name)
	return preset, nil
}

// require returns a SessionStateError unless the session is in want.
func (s *Session) require(op string, want State) error {
	if s.state != want {
		return &SessionStateError{Operation: op, State: s.state, Want: want}
	}
	return nil
}

// fail wraps err for op and tears the session down when err is a
// non-transient transfer error.
func (s *Session) fail(op string, err error) error {
	if te, ok := usb.AsTransferError(err); ok && !te.Transient() {
		s.logError("fatal transfer error", "op", op, "error", err)
		if terr := s.teardown(); terr != nil {
			err = errors.Join(err, terr)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// abandon handles a read failure in the middle of a multi-packet response.
// Fatal errors tear the session down. Otherwise the rest of the response is
// drained so the next request reads its own reply; a device that keeps
// sending is treated as fatal.
func (s *Session) abandon(op string, err error) error {
	if te, ok := usb.AsTransferError(err); ok && !te.Transient() {
		return s.fail(op, err)
	}

	n, quiet := s.drain(drainLimit)
	if !quiet {
		s.logError("response did not end", "op", op, "drained", n)
		if terr := s.teardown(); terr != nil {
			err = errors.Join(err, terr)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if n > 0 {
		s.logDebug("discarded stale packets", "op", op, "count", n)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// drain reads and discards IN packets until a read times out. It returns
// the number of packets discarded and whether the endpoint went quiet
// within limit reads.
func (s *Session) drain(limit int) (int, bool) {
	var p protocol.Packet
	for n := 0; n < limit; n++ {
		_, err := s.handle.InterruptTransfer(protocol.EndpointIn, p.Bytes(), s.config.Timeout)
		if err != nil {
			te, ok := usb.AsTransferError(err)
			return n, ok && te.Code == usb.CodeTimeout
		}
	}
	return limit, false
}

func (s *Session) write(ctx context.Context, op string, p protocol.Packet) error {
	return s.transfer(ctx, op, protocol.EndpointOut, p.Bytes())
}

func (s *Session) read(ctx context.Context, op string) (protocol.Packet, error) {
	var p protocol.Packet
	err := s.transfer(ctx, op, protocol.EndpointIn, p.Bytes())
	return p, err
}

// transfer runs one interrupt transfer, retrying transient failures up to
// the configured number of attempts.
func (s *Session) transfer(ctx context.Context, op string, endpoint uint8, buf []byte) error {
	attempts := s.config.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		timeout, err := s.transferTimeout(ctx)
		if err != nil {
			return err
		}

		n, err := s.handle.InterruptTransfer(endpoint, buf, timeout)
		if err == nil {
			if n != len(buf) {
				kind := "write"
				if usb.IsIn(endpoint) {
					kind = "read"
				}
				return usb.NewTransferError(op, usb.CodeIO,
					fmt.Sprintf("short %s: %d of %d bytes", kind, n, len(buf)))
			}
			return nil
		}

		te, ok := usb.AsTransferError(err)
		if !ok {
			te = usb.NewTransferError(op, usb.CodeOther, err.Error())
		}
		if !te.Transient() {
			return te
		}

		lastErr = te
		s.logDebug("transient transfer error",
			"op", op,
			"endpoint", fmt.Sprintf("0x%02X", endpoint),
			"attempt", attempt,
			"error", te.Name,
		)
	}
	return lastErr
}

// transferTimeout returns the configured timeout shortened to the context
// deadline.
func (s *Session) transferTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	timeout := s.config.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}
	return timeout, nil
}

func (s *Session) setState(to State) {
	from := s.state
	s.state = to
	if from != to && s.config.StateCallback != nil {
		s.config.StateCallback(from, to)
	}
}

// logDebug logs a debug message if a logger is configured.
func (s *Session) logDebug(msg string, keysAndValues ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, append([]any{"session", s.config.SessionID}, keysAndValues...)...)
	}
}

// logInfo logs an info message if a logger is configured.
func (s *Session) logInfo(msg string, keysAndValues ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, append([]any{"session", s.config.SessionID}, keysAndValues...)...)
	}
}

// logError logs an error message if a logger is configured.
func (s *Session) logError(msg string, keysAndValues ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, append([]any{"session", s.config.SessionID}, keysAndValues...)...)
	}
}
