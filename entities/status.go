package entities

// LoggedModelStatus is the lifecycle status of a logged model.
type LoggedModelStatus string

const (
	// StatusUnspecified is never a valid input; it only appears when a
	// record predates status tracking.
	StatusUnspecified LoggedModelStatus = "UNSPECIFIED"
	// StatusPending is the status assigned at creation.
	StatusPending LoggedModelStatus = "PENDING"
	// StatusReady marks a successfully finalized model.
	StatusReady LoggedModelStatus = "READY"
	// StatusFailed marks a model whose creation failed.
	StatusFailed LoggedModelStatus = "FAILED"
)

// Valid reports whether s is one of the known statuses.
func (s LoggedModelStatus) Valid() bool {
	switch s {
	case StatusUnspecified, StatusPending, StatusReady, StatusFailed:
		return true
	default:
		return false
	}
}

// Final reports whether s is a terminal status a model can be finalized to.
func (s LoggedModelStatus) Final() bool {
	return s == StatusReady || s == StatusFailed
}

func (s LoggedModelStatus) String() string { return string(s) }
