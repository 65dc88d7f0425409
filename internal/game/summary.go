package game

// Summary accumulates the human-readable messages produced by resolving one
// action. It is the sole narrative output consumed by any presentation layer.
type Summary struct {
	messages []string
}

// NewSummary builds a summary seeded with the supplied messages, if any.
func NewSummary(messages ...string) *Summary {
	s := &Summary{}
	s.messages = append(s.messages, messages...)
	return s
}

// Add appends a message to the summary.
func (s *Summary) Add(message string) {
	s.messages = append(s.messages, message)
}

// Combine appends all of other's messages after the current ones.
func (s *Summary) Combine(other *Summary) {
	if other == nil {
		return
	}
	s.messages = append(s.messages, other.messages...)
}

// Messages returns a copy of the accumulated messages.
func (s *Summary) Messages() []string {
	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out
}
