// Package amp provides a session API for controlling Fender Mustang amplifiers.
//
// # Overview
//
// A Session owns one USB connection and walks it through three states:
//
//	Disconnected --Connect--> Connected --Handshake--> Ready
//	      ^                                              |
//	      +------------- Close / fatal error ------------+
//
// Device operations (SendAmp, SendEffects, SlotNames, SaveSlot, LoadSlot)
// are only accepted in Ready. Anything else fails with a *SessionStateError
// before touching the device.
//
// # Basic Usage
//
//	ctx := libusb.NewContext()
//	defer ctx.Close()
//
//	sess := amp.New(ctx)
//	if err := sess.Connect(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close()
//
//	if err := sess.Handshake(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
//	err := sess.SendAmp(context.Background(), protocol.AmpSettings{
//	    Model:   protocol.Fender65TwinReverb,
//	    Cabinet: protocol.Cabinet65Twin,
//	    Gain:    60,
//	    Volume:  180,
//	})
//
// # Configuration Options
//
//	sess := amp.New(opener,
//	    amp.WithLogger(slog.Default()),
//	    amp.WithTimeout(time.Second),
//	    amp.WithAttempts(5),
//	    amp.WithProductIDs(protocol.ProductMustangIIIv2),
//	    amp.WithStateCallback(onStateChange),
//	)
//
// # Retries
//
// Each transfer is retried while it fails with a transient *usb.TransferError
// (timeout, busy, interrupted), up to the configured number of attempts. If
// every attempt fails the last error is returned and the session keeps its
// state. Any other transfer error releases the device and moves the session
// to Disconnected.
//
// # Context Support
//
// The per-transfer timeout is shortened to the context deadline, and a
// cancelled context stops an operation before its next transfer:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
//	defer cancel()
//
//	names, err := sess.SlotNames(ctx)
//
// # Error Handling
//
//   - *SessionStateError: operation not allowed in the current state
//   - *usb.TransferError: transport failure (see Transient)
//   - *protocol.ValidationError: invalid settings or unrecognized codes
//     in a device response
//
// # Hardware Independence
//
// Sessions open devices through a usb.Opener. Package usb/libusb provides
// one backed by libusb; tests substitute an in-memory fake.
package amp
