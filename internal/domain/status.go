package domain

// statusTransitions explicit transition table for the appointment lifecycle.
// Pending and Confirmed can branch into the triage side states (Urgent,
// Transferred); Completed and Cancelled are terminal.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:     {StatusConfirmed, StatusCancelled, StatusUrgent, StatusTransferred},
	StatusConfirmed:   {StatusInProgress, StatusCancelled, StatusUrgent, StatusTransferred},
	StatusInProgress:  {StatusCompleted},
	StatusUrgent:      {StatusInProgress, StatusConfirmed, StatusCancelled},
	StatusTransferred: {StatusConfirmed, StatusCancelled},
	StatusCompleted:   {},
	StatusCancelled:   {},
}

// IsValidStatus reports whether the value is a known appointment status
func IsValidStatus(s AppointmentStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether the status machine allows moving
// an appointment from one status to another.
func CanTransition(from, to AppointmentStatus) bool {
	allowed, ok := statusTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
