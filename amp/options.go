package amp

import (
	"time"

	"github.com/moffa90/go-mustang/protocol"
)

// Config holds the session configuration.
type Config struct {
	// StateCallback is called after every state transition (optional)
	StateCallback StateCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// Timeout is the per-transfer timeout. A context deadline that expires
	// sooner takes precedence.
	Timeout time.Duration

	// Attempts is the number of tries for a transfer failing with a
	// transient error. Values below 1 mean a single try.
	Attempts int

	// ProductIDs are probed in order on Connect; the first attached device wins
	ProductIDs []uint16

	// Interface is the USB interface number to claim
	Interface int

	// SessionID identifies the session in log output. A random UUID is
	// generated when empty.
	SessionID string
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	pids := make([]uint16, len(protocol.Models))
	for i, m := range protocol.Models {
		pids[i] = m.ProductID
	}
	return Config{
		Timeout:    500 * time.Millisecond,
		Attempts:   3,
		ProductIDs: pids,
		Interface:  protocol.DefaultInterface,
	}
}

// Option is a functional option for configuring the Session.
type Option func(*Config)

// WithStateCallback sets a callback invoked on every state transition.
//
// Example:
//
//	sess := amp.New(opener,
//	    amp.WithStateCallback(func(from, to amp.State) {
//	        fmt.Printf("%s -> %s\n", from, to)
//	    }),
//	)
func WithStateCallback(callback StateCallback) Option {
	return func(c *Config) {
		c.StateCallback = callback
	}
}

// WithLogger sets a logger for session operations. A *slog.Logger can be
// passed directly.
//
// Example:
//
//	sess := amp.New(opener, amp.WithLogger(slog.Default()))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithTimeout sets the per-transfer timeout.
//
// Example:
//
//	sess := amp.New(opener, amp.WithTimeout(time.Second))
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithAttempts sets how many times a transfer failing with a transient
// error is tried.
//
// Example:
//
//	sess := amp.New(opener, amp.WithAttempts(5))
func WithAttempts(attempts int) Option {
	return func(c *Config) {
		if attempts >= 1 {
			c.Attempts = attempts
		}
	}
}

// WithProductIDs restricts and orders the product IDs probed on Connect.
//
// Example:
//
//	sess := amp.New(opener, amp.WithProductIDs(protocol.ProductMustangIIIv2))
func WithProductIDs(ids ...uint16) Option {
	return func(c *Config) {
		if len(ids) > 0 {
			c.ProductIDs = append([]uint16(nil), ids...)
		}
	}
}

// WithInterface sets the USB interface number to claim.
func WithInterface(iface int) Option {
	return func(c *Config) {
		if iface >= 0 {
			c.Interface = iface
		}
	}
}

// WithSessionID sets the identifier logged with every session message.
func WithSessionID(id string) Option {
	return func(c *Config) {
		c.SessionID = id
	}
}
