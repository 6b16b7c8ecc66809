package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/types"
)

const titleColumnWidth = 40

// RenderConversationTable renders conversation summaries as an aligned
// table with a bold header row.
func RenderConversationTable(summaries []types.ConversationSummary) string {
	var b strings.Builder

	header := fmt.Sprintf("%-36s  %-*s  %8s  %s",
		"ID", titleColumnWidth, "TITLE", "MESSAGES", "UPDATED")
	b.WriteString(Styles.Bold.Render(header))
	b.WriteString("\n")

	for _, s := range summaries {
		b.WriteString(fmt.Sprintf("%-36s  %s  %8d  %s\n",
			s.ID,
			padTitle(s.Title, titleColumnWidth),
			s.MessageCount,
			formatUpdatedAt(s.UpdatedAt),
		))
	}

	return strings.TrimRight(b.String(), "\n")
}

// padTitle truncates wide titles on a display-cell boundary and pads
// narrow ones, so CJK and emoji titles keep the columns aligned.
func padTitle(title string, width int) string {
	if runewidth.StringWidth(title) > width {
		return runewidth.Truncate(title, width, "…")
	}
	return runewidth.FillRight(title, width)
}

func formatUpdatedAt(ts string) string {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return parsed.Local().Format("2006-01-02 15:04")
}
