package domain

// JournalEntry is a dated free-text note. Only Text is mutable after creation.
type JournalEntry struct {
	ID   string `json:"id"`
	Date string `json:"date"` // ISO date, "2006-01-02"
	Text string `json:"text"`
}

// JournalInput is the caller-supplied content of a new journal entry.
// A blank Date means "today".
type JournalInput struct {
	Date string
	Text string
}
