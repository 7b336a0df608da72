package watch

// NullWatcher satisfies the watcher contract without arming anything. It
// backs one-shot commands where no process stays resident to receive
// events.
type NullWatcher struct{}

// NewNullWatcher returns a watcher that discards all registrations.
func NewNullWatcher() *NullWatcher {
	return &NullWatcher{}
}

// OnNextWrite accepts and drops the registration.
func (w *NullWatcher) OnNextWrite(key string, path string, callback func()) error {
	return nil
}
