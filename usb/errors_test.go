package usb

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCodeName(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeIO, "LIBUSB_ERROR_IO"},
		{CodeAccess, "LIBUSB_ERROR_ACCESS"},
		{CodeNoDevice, "LIBUSB_ERROR_NO_DEVICE"},
		{CodeBusy, "LIBUSB_ERROR_BUSY"},
		{CodeTimeout, "LIBUSB_ERROR_TIMEOUT"},
		{CodePipe, "LIBUSB_ERROR_PIPE"},
		{CodeInterrupted, "LIBUSB_ERROR_INTERRUPTED"},
		{CodeOther, "LIBUSB_ERROR_OTHER"},
		{Code(-42), "UNKNOWN_ERROR_-42"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.code.Name(); got != tt.want {
				t.Errorf("Code(%d).Name() = %q, want %q", int(tt.code), got, tt.want)
			}
		})
	}
}

func TestTransient(t *testing.T) {
	transient := map[Code]bool{
		CodeTimeout:     true,
		CodeBusy:        true,
		CodeInterrupted: true,
	}
	all := []Code{
		CodeIO, CodeInvalidParam, CodeAccess, CodeNoDevice, CodeNotFound, CodeBusy, CodeTimeout,
		CodeOverflow, CodePipe, CodeInterrupted, CodeNoMem, CodeNotSupported, CodeOther,
	}
	for _, c := range all {
		if got := NewTransferError("read", c, "").Transient(); got != transient[c] {
			t.Errorf("%s.Transient() = %v, want %v", c.Name(), got, transient[c])
		}
	}
}

func TestTransferErrorMessage(t *testing.T) {
	err := NewTransferError("claim interface", CodeBusy, "")
	want := "usb claim interface: LIBUSB_ERROR_BUSY (-6)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	err = NewTransferError("write", CodeNoDevice, "device unplugged")
	if !strings.HasSuffix(err.Error(), ": device unplugged") {
		t.Errorf("Error() = %q, want message suffix", err.Error())
	}
}

func TestAsTransferError(t *testing.T) {
	wrapped := fmt.Errorf("send amp: %w", NewTransferError("write", CodeTimeout, ""))

	te, ok := AsTransferError(wrapped)
	if !ok {
		t.Fatal("AsTransferError did not find wrapped error")
	}
	if te.Code != CodeTimeout {
		t.Errorf("Code = %d, want %d", te.Code, CodeTimeout)
	}
	if !IsTransient(wrapped) {
		t.Error("IsTransient(wrapped timeout) = false")
	}

	if _, ok := AsTransferError(errors.New("plain")); ok {
		t.Error("AsTransferError(plain) = true")
	}
	if IsTransient(ErrDeviceNotFound) {
		t.Error("IsTransient(ErrDeviceNotFound) = true")
	}
}

func TestIsIn(t *testing.T) {
	if !IsIn(0x81) {
		t.Error("IsIn(0x81) = false")
	}
	if IsIn(0x01) {
		t.Error("IsIn(0x01) = true")
	}
}
