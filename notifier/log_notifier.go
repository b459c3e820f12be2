package notifier

import "github.com/sirupsen/logrus"

// LogNotifier is the fallback dispatcher used when no broker is
// configured. It keeps the notification contract observable in
// development and tests.
type LogNotifier struct {
	Logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

func (ln *LogNotifier) Notify(event Event) error {
	ln.Logger.WithFields(logrus.Fields{
		"kind":         string(event.Kind),
		"booking_kind": event.BookingKind,
		"booking_id":   event.BookingID,
		"phone":        event.CustomerPhone,
	}).Info("notification dispatched")
	return nil
}
