package interfaces

// INotificationSink receives local notifications raised by the change
// notifier. Implementations must not block and must degrade to a no-op when
// the runtime has no notification capability.
type INotificationSink interface {
	Notify(title, body string)
}
