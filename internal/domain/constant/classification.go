package constant

// Classification is the outcome of evaluating one task against the clock.
type Classification int

const (
	// Pending means the deadline is ahead and not on a notable minute boundary.
	Pending Classification = iota
	// Completed means the task is done and excluded from reminders.
	Completed
	// Overdue means the deadline has passed.
	Overdue
	// DueAtThreshold means the remaining whole minutes equal the configured threshold.
	DueAtThreshold
	// DueNow means the remaining whole minutes are exactly zero.
	DueNow
)

var classificationNames = map[Classification]string{
	Pending:        "pending",
	Completed:      "completed",
	Overdue:        "overdue",
	DueAtThreshold: "due_at_threshold",
	DueNow:         "due_now",
}

func (c Classification) String() string {
	if name, ok := classificationNames[c]; ok {
		return name
	}
	return "unknown"
}

// Notifies reports whether the classification can produce a reminder message.
func (c Classification) Notifies() bool {
	return c == Overdue || c == DueAtThreshold || c == DueNow
}
