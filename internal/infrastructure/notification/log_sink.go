package notification

import (
	"log"

	"os_escolpi/internal/usecase/interfaces"
)

// LogSink writes notifications to the process log. It is the fallback sink
// for deployments without a client-facing notification channel.
type LogSink struct{}

var _ interfaces.INotificationSink = LogSink{}

func (LogSink) Notify(title, body string) {
	log.Printf("[notification] %s: %s", title, body)
}
