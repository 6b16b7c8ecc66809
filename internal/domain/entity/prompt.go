package entity

// Role tags a prompt turn for the completion backend.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// PromptTurn is one entry of the ordered history sent to the AI backend.
// Using a tagged type instead of loose maps makes the assembler's ordering
// contract checkable at compile time.
type PromptTurn struct {
	Role Role
	Text string
}

// Snippet is a knowledge fragment returned by the vector search service.
type Snippet struct {
	Text  string
	Score float32
}

// Retrieval holds the outcome of a knowledge-retrieval step. A nil *Retrieval
// means no retrieval ran; a non-nil value with zero snippets means retrieval
// ran and found nothing.
type Retrieval struct {
	Snippets []Snippet
}
