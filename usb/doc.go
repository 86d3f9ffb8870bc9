// Package usb defines the transport a device session runs over.
//
// The session layer never talks to libusb directly. It opens devices through
// an Opener and drives them through a Handle, which keeps sessions testable
// against in-memory fakes. Package usb/libusb provides the production
// implementation on top of github.com/google/gousb.
//
// # Errors
//
// Transport failures are reported as *TransferError carrying a Code that
// mirrors the libusb error numbering:
//
//	n, err := h.InterruptTransfer(protocol.EndpointIn, buf, time.Second)
//	if te, ok := usb.AsTransferError(err); ok && te.Transient() {
//	    // timeout, busy or interrupted: safe to retry
//	}
//
// Opener.Open returns ErrDeviceNotFound when no device matches the
// vendor/product pair.
package usb
