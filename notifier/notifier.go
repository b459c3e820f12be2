package notifier

import "time"

// Kind enumerates the outbound notification events the booking core can
// emit. Exactly one of the first three fires per booking creation.
type Kind string

const (
	BookingConfirmed     Kind = "booking_confirmed"
	VerificationRequired Kind = "verification_required"
	DuplicateOpenBooking Kind = "duplicate_open_booking"
	ReservationReminder  Kind = "reservation_reminder"
)

const (
	BookingKindReservation = "reservation"
	BookingKindOrder       = "order"
)

// Event is the payload handed to the notification collaborator. The
// collaborator owns content and transport; the core only states what
// happened and where to verify.
type Event struct {
	Kind          Kind       `json:"kind"`
	BookingKind   string     `json:"booking_kind"`
	BookingID     uint       `json:"booking_id"`
	RestaurantID  uint       `json:"restaurant_id"`
	CustomerName  string     `json:"customer_name,omitempty"`
	CustomerPhone string     `json:"customer_phone,omitempty"`
	CustomerEmail string     `json:"customer_email,omitempty"`
	VerifyURL     string     `json:"verify_url,omitempty"`
	RemindAt      *time.Time `json:"remind_at,omitempty"`
}

// Notifier dispatches events fire-and-forget. A failed dispatch must
// never roll back the booking that triggered it.
type Notifier interface {
	Notify(event Event) error
}
