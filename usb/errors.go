package usb

import (
	"errors"
	"fmt"
)

// Code is a transport error code. Values mirror libusb's error numbering.
type Code int

// Transport error codes
const (
	CodeIO           Code = -1  // Input/output error
	CodeInvalidParam Code = -2  // Invalid parameter
	CodeAccess       Code = -3  // Access denied (insufficient permissions)
	CodeNoDevice     Code = -4  // No such device (it may have been disconnected)
	CodeNotFound     Code = -5  // Entity not found
	CodeBusy         Code = -6  // Resource busy
	CodeTimeout      Code = -7  // Operation timed out
	CodeOverflow     Code = -8  // Overflow
	CodePipe         Code = -9  // Pipe error (endpoint stalled)
	CodeInterrupted  Code = -10 // System call interrupted
	CodeNoMem        Code = -11 // Insufficient memory
	CodeNotSupported Code = -12 // Operation not supported or unimplemented
	CodeOther        Code = -99 // Other error
)

// Name returns the libusb identifier for the code.
func (c Code) Name() string {
	switch c {
	case CodeIO:
		return "LIBUSB_ERROR_IO"
	case CodeInvalidParam:
		return "LIBUSB_ERROR_INVALID_PARAM"
	case CodeAccess:
		return "LIBUSB_ERROR_ACCESS"
	case CodeNoDevice:
		return "LIBUSB_ERROR_NO_DEVICE"
	case CodeNotFound:
		return "LIBUSB_ERROR_NOT_FOUND"
	case CodeBusy:
		return "LIBUSB_ERROR_BUSY"
	case CodeTimeout:
		return "LIBUSB_ERROR_TIMEOUT"
	case CodeOverflow:
		return "LIBUSB_ERROR_OVERFLOW"
	case CodePipe:
		return "LIBUSB_ERROR_PIPE"
	case CodeInterrupted:
		return "LIBUSB_ERROR_INTERRUPTED"
	case CodeNoMem:
		return "LIBUSB_ERROR_NO_MEM"
	case CodeNotSupported:
		return "LIBUSB_ERROR_NOT_SUPPORTED"
	case CodeOther:
		return "LIBUSB_ERROR_OTHER"
	default:
		return fmt.Sprintf("UNKNOWN_ERROR_%d", int(c))
	}
}

// Transient reports whether an operation failing with this code may succeed
// when repeated unchanged.
func (c Code) Transient() bool {
	switch c {
	case CodeTimeout, CodeBusy, CodeInterrupted:
		return true
	}
	return false
}

// ErrDeviceNotFound is returned by Opener.Open when no device matches.
var ErrDeviceNotFound = errors.New("usb: device not found")

// TransferError reports a failed transport operation.
type TransferError struct {
	// Op is the operation that failed (e.g. "claim interface", "read")
	Op string

	// Code is the transport error code
	Code Code

	// Name is the symbolic name of Code
	Name string

	// Message is a human-readable description from the transport, if any
	Message string
}

// NewTransferError builds a TransferError for op, filling Name from code.
func NewTransferError(op string, code Code, message string) *TransferError {
	return &TransferError{Op: op, Code: code, Name: code.Name(), Message: message}
}

func (e *TransferError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("usb %s: %s (%d)", e.Op, e.Name, int(e.Code))
	}
	return fmt.Sprintf("usb %s: %s (%d): %s", e.Op, e.Name, int(e.Code), e.Message)
}

// Transient reports whether the failed operation may be retried.
func (e *TransferError) Transient() bool {
	return e.Code.Transient()
}

// AsTransferError returns the TransferError in err's chain, if any.
func AsTransferError(err error) (*TransferError, bool) {
	var te *TransferError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// IsTransient returns true if err is or wraps a transient TransferError.
func IsTransient(err error) bool {
	te, ok := AsTransferError(err)
	return ok && te.Transient()
}
