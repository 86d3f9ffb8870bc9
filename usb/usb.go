package usb

import "time"

// Opener locates and opens a device by vendor and product ID.
type Opener interface {
	// Open returns ErrDeviceNotFound when no matching device is attached.
	Open(vendorID, productID uint16) (Handle, error)
}

// Handle is an open device. Implementations are not required to be safe for
// concurrent use; callers serialize access.
type Handle interface {
	// DetachKernelDriver detaches an active kernel driver from the interface.
	// It reports whether a driver was detached.
	DetachKernelDriver(iface int) (bool, error)

	// AttachKernelDriver reattaches the kernel driver released by
	// DetachKernelDriver.
	AttachKernelDriver(iface int) error

	ClaimInterface(iface int) error
	ReleaseInterface(iface int) error

	// InterruptTransfer performs a blocking interrupt transfer. The direction
	// follows the endpoint address: bit 7 set reads into data, clear writes
	// data. It returns the number of bytes transferred.
	InterruptTransfer(endpoint uint8, data []byte, timeout time.Duration) (int, error)

	Close() error
}

// IsIn reports whether an endpoint address is device-to-host.
func IsIn(endpoint uint8) bool {
	return endpoint&0x80 != 0
}
