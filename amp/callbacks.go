package amp

// StateCallback is called after the session changes state. It runs while
// the session is locked and must not call back into the session.
//
// Example:
//
//	sess := amp.New(opener,
//	    amp.WithStateCallback(func(from, to amp.State) {
//	        if to == amp.StateDisconnected {
//	            ui.ShowOffline()
//	        }
//	    }),
//	)
type StateCallback func(from, to State)

// Logger is an optional logging interface that can be provided to the session.
// This allows integration with any logging framework; *slog.Logger satisfies
// it as is.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...any) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...any)  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...any) { log.Println(msg, kv) }
//
//	sess := amp.New(opener, amp.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...any)

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...any)

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...any)
}
