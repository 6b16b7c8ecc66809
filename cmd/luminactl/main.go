package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/commands"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		// Handle unknown command errors specially
		errMsg := err.Error()
		if strings.Contains(errMsg, "unknown command") {
			ui.PrintError("%s", errMsg)
			fmt.Println("\nRun 'luminactl --help' for usage.")
		}
		os.Exit(1)
	}
}
