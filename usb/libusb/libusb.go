// Package libusb implements usb.Opener on top of libusb via
// github.com/google/gousb.
//
//	ctx := libusb.NewContext()
//	defer ctx.Close()
//
//	sess := amp.New(ctx)
package libusb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/gousb"

	"github.com/moffa90/go-mustang/usb"
)

// Context owns a libusb context. It must be closed when no longer needed,
// after every handle it opened has been closed.
type Context struct {
	ctx *gousb.Context
}

// NewContext initializes libusb.
func NewContext() *Context {
	return &Context{ctx: gousb.NewContext()}
}

// Close releases the libusb context.
func (c *Context) Close() error {
	return c.ctx.Close()
}

// Open opens the first device matching vendorID and productID.
func (c *Context) Open(vendorID, productID uint16) (usb.Handle, error) {
	dev, err := c.ctx.OpenDeviceWithVIDPID(gousb.ID(vendorID), gousb.ID(productID))
	if err != nil {
		return nil, convert("open", err)
	}
	if dev == nil {
		return nil, usb.ErrDeviceNotFound
	}
	return &Handle{dev: dev}, nil
}

// Handle is an open libusb device.
type Handle struct {
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface
	in   map[int]*gousb.InEndpoint
	out  map[int]*gousb.OutEndpoint
}

// DetachKernelDriver enables libusb's automatic kernel driver handling: the
// driver is detached when the interface is claimed and reattached when it
// is released. gousb does not expose whether a driver was bound, so a
// successful call always reports true.
func (h *Handle) DetachKernelDriver(iface int) (bool, error) {
	if err := h.dev.SetAutoDetach(true); err != nil {
		if errors.Is(err, gousb.ErrorNotSupported) {
			return false, nil
		}
		return false, convert("detach kernel driver", err)
	}
	return true, nil
}

// AttachKernelDriver disables automatic driver handling. With auto-detach
// enabled libusb has already reattached the driver on ReleaseInterface.
func (h *Handle) AttachKernelDriver(iface int) error {
	if err := h.dev.SetAutoDetach(false); err != nil && !errors.Is(err, gousb.ErrorNotSupported) {
		return convert("attach kernel driver", err)
	}
	return nil
}

// ClaimInterface selects the active configuration and claims interface iface
// with alternate setting 0.
func (h *Handle) ClaimInterface(iface int) error {
	if h.intf != nil {
		return usb.NewTransferError("claim interface", usb.CodeBusy, "an interface is already claimed")
	}

	num, err := h.dev.ActiveConfigNum()
	if err != nil {
		return convert("claim interface", err)
	}
	cfg, err := h.dev.Config(num)
	if err != nil {
		return convert("claim interface", err)
	}
	intf, err := cfg.Interface(iface, 0)
	if err != nil {
		cfg.Close()
		return convert("claim interface", err)
	}

	h.cfg = cfg
	h.intf = intf
	h.in = make(map[int]*gousb.InEndpoint)
	h.out = make(map[int]*gousb.OutEndpoint)
	return nil
}

// ReleaseInterface releases the claimed interface and its configuration.
func (h *Handle) ReleaseInterface(iface int) error {
	if h.intf == nil {
		return usb.NewTransferError("release interface", usb.CodeNotFound, "no interface claimed")
	}
	h.intf.Close()
	h.intf = nil
	h.in, h.out = nil, nil

	err := h.cfg.Close()
	h.cfg = nil
	if err != nil {
		return convert("release interface", err)
	}
	return nil
}

// InterruptTransfer reads into data when endpoint is an IN address and
// writes data otherwise.
func (h *Handle) InterruptTransfer(endpoint uint8, data []byte, timeout time.Duration) (int, error) {
	op := "write"
	if usb.IsIn(endpoint) {
		op = "read"
	}
	if h.intf == nil {
		return 0, usb.NewTransferError(op, usb.CodeNotFound, "no interface claimed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	num := int(endpoint & 0x0F)
	var (
		n   int
		err error
	)
	if usb.IsIn(endpoint) {
		var ep *gousb.InEndpoint
		if ep, err = h.inEndpoint(num); err == nil {
			n, err = ep.ReadContext(ctx, data)
		}
	} else {
		var ep *gousb.OutEndpoint
		if ep, err = h.outEndpoint(num); err == nil {
			n, err = ep.WriteContext(ctx, data)
		}
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return n, usb.NewTransferError(op, usb.CodeTimeout, fmt.Sprintf("no completion within %s", timeout))
		}
		return n, convert(op, err)
	}
	return n, nil
}

func (h *Handle) inEndpoint(num int) (*gousb.InEndpoint, error) {
	if ep, ok := h.in[num]; ok {
		return ep, nil
	}
	ep, err := h.intf.InEndpoint(num)
	if err != nil {
		return nil, err
	}
	h.in[num] = ep
	return ep, nil
}

func (h *Handle) outEndpoint(num int) (*gousb.OutEndpoint, error) {
	if ep, ok := h.out[num]; ok {
		return ep, nil
	}
	ep, err := h.intf.OutEndpoint(num)
	if err != nil {
		return nil, err
	}
	h.out[num] = ep
	return ep, nil
}

// Close closes the device. A still-claimed interface is released first.
func (h *Handle) Close() error {
	var errs []error
	if h.intf != nil {
		errs = append(errs, h.ReleaseInterface(0))
	}
	if err := h.dev.Close(); err != nil {
		errs = append(errs, convert("close", err))
	}
	return errors.Join(errs...)
}

// convert maps gousb errors onto usb.TransferError.
func convert(op string, err error) error {
	var code usb.Code

	var uerr gousb.Error
	var status gousb.TransferStatus
	switch {
	case errors.As(err, &uerr):
		code = usb.Code(uerr)
	case errors.As(err, &status):
		code = statusCode(status)
	case errors.Is(err, context.DeadlineExceeded):
		code = usb.CodeTimeout
	case errors.Is(err, context.Canceled):
		code = usb.CodeInterrupted
	default:
		code = usb.CodeOther
	}
	return usb.NewTransferError(op, code, err.Error())
}

func statusCode(s gousb.TransferStatus) usb.Code {
	switch s {
	case gousb.TransferTimedOut:
		return usb.CodeTimeout
	case gousb.TransferCancelled:
		return usb.CodeInterrupted
	case gousb.TransferStall:
		return usb.CodePipe
	case gousb.TransferNoDevice:
		return usb.CodeNoDevice
	case gousb.TransferOverflow:
		return usb.CodeOverflow
	default:
		return usb.CodeIO
	}
}
