package session

// InputHistory is shell-style recall over previously sent texts. Up moves
// backward through the list, Down moves forward; stepping past the newest
// entry leaves recall mode and restores whatever draft was being typed
// when recall started.
type InputHistory struct {
	entries []string
	cursor  int // == len(entries) means not recalling
	draft   string
}

// NewInputHistory creates an empty history.
func NewInputHistory() *InputHistory {
	return &InputHistory{}
}

// Add appends a sent text and exits recall mode. Consecutive duplicates
// are collapsed the way shells do.
func (h *InputHistory) Add(text string) {
	if text != "" {
		if n := len(h.entries); n == 0 || h.entries[n-1] != text {
			h.entries = append(h.entries, text)
		}
	}
	h.cursor = len(h.entries)
	h.draft = ""
}

// Recalling reports whether the cursor sits on a history entry.
func (h *InputHistory) Recalling() bool {
	return h.cursor < len(h.entries)
}

// Prev steps backward. On the first step it stashes the in-progress draft.
// Returns the recalled text, or ok=false when there is nothing further back.
func (h *InputHistory) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if !h.Recalling() {
		h.draft = current
	} else if h.cursor == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps forward. Stepping past the newest entry restores the stashed
// draft and exits recall mode. Returns ok=false when not recalling.
func (h *InputHistory) Next() (string, bool) {
	if !h.Recalling() {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		draft := h.draft
		h.draft = ""
		return draft, true
	}
	return h.entries[h.cursor], true
}

// Len reports the number of stored entries.
func (h *InputHistory) Len() int {
	return len(h.entries)
}
