package notifications

import (
	"log"
	"time"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

// LogNotifier implements domain.Notifier by writing notices to the process
// log. The UI layer polls the session snapshot for state; the log is the
// operator-facing record of session transitions.
type LogNotifier struct{}

// NewLogNotifier creates a new log notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify implements domain.Notifier
func (n *LogNotifier) Notify(notice domain.Notice) {
	log.Printf("NOTICE: kind=%s message=%q timestamp=%s",
		notice.Kind, notice.Message, notice.Timestamp.Format(time.RFC3339))
}

// Compile-time interface compliance verification
var _ domain.Notifier = (*LogNotifier)(nil)
