package usecase

import (
	"strings"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

const (
	knowledgeHeader = "Relevant Information:"

	noKnowledgeTurn = "No internal knowledge matched this question. " +
		"Answer from general knowledge."
)

// assemblePrompt builds the ordered turn list sent to the completion
// backend. The order is fixed: instruction first, prior transcript in
// stored order, the retrieval turn if retrieval ran, and the new user
// message last. The instruction is injected fresh on every call and never
// persisted, so it appears exactly once regardless of transcript length.
func assemblePrompt(instruction string, prior []entity.Message, newUserText string, retrieval *entity.Retrieval) []entity.PromptTurn {
	turns := make([]entity.PromptTurn, 0, len(prior)+3)

	turns = append(turns, entity.PromptTurn{
		Role: entity.RoleUser,
		Text: instruction,
	})

	for _, msg := range prior {
		turns = append(turns, entity.PromptTurn{
			Role: roleFor(msg.Sender),
			Text: msg.Text,
		})
	}

	if retrieval != nil {
		turns = append(turns, entity.PromptTurn{
			Role: entity.RoleUser,
			Text: retrievalTurnText(retrieval.Snippets),
		})
	}

	turns = append(turns, entity.PromptTurn{
		Role: entity.RoleUser,
		Text: newUserText,
	})

	return turns
}

func roleFor(sender entity.Sender) entity.Role {
	if sender == entity.SenderAssistant {
		return entity.RoleModel
	}
	return entity.RoleUser
}

// retrievalTurnText renders found snippets as a bullet list, or the
// explicit no-match fallback so the model does not hunt for grounding
// that was never provided.
func retrievalTurnText(snippets []entity.Snippet) string {
	if len(snippets) == 0 {
		return noKnowledgeTurn
	}

	var b strings.Builder
	b.WriteString(knowledgeHeader)
	for _, s := range snippets {
		b.WriteString("\n- ")
		b.WriteString(s.Text)
	}
	return b.String()
}
