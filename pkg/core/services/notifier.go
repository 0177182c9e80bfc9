package services

// Notifier delivers a message to a member. Delivery is best-effort and
// fire-and-forget from the engine's perspective: assignment persistence
// never depends on notification success, and failures are logged rather
// than returned.
type Notifier interface {
	SendEmail(to, subject, body string) error
}
