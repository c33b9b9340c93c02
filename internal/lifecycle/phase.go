package lifecycle

// Phase is the caller-visible state of one logical request.
type Phase int

const (
	Idle Phase = iota
	Pending
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of a controller's state.
type Snapshot struct {
	Phase Phase
	// Text is the generated text when Phase is Succeeded.
	Text string
	// Message is the fixed user-facing message when Phase is Failed.
	Message string
	// Disabled marks a failure caused by the AI feature being switched off.
	Disabled bool
	// Version increases with every transition; notifications may arrive out
	// of order and consumers should keep the highest Version.
	Version uint64
}
