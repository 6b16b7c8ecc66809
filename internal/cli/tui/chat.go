// Package tui is the Bubble Tea chat interface for luminactl.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/session"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/types"
)

// UI configuration constants
const (
	defaultInputWidth     = 100
	defaultViewportWidth  = 100
	defaultViewportHeight = 30
	defaultWindowWidth    = 100
	defaultWindowHeight   = 40
	inputCharLimit        = 4000
	inputHeightReserved   = 2
	statusHeightReserved  = 3
	minContentHeight      = 10

	// Cadence of the processing → thinking → generating status line.
	phaseTickInterval = 900 * time.Millisecond

	// How often the stored token is re-validated while chatting.
	tokenPollInterval = 30 * time.Second
)

// Style definitions
var (
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

const fallbackAnswer = "Sorry, I encountered an error. Please try again."

// ChatProgram encapsulates the chat TUI program
type ChatProgram struct {
	model chatModel
}

// NewChatProgram creates a new chat program instance. poller may be nil
// for guest sessions; onInvalidated runs once if the poller concludes the
// token is dead (the caller purges the stored credentials there).
func NewChatProgram(ses *session.Session, poller *session.TokenPoller, authenticated bool, transcript []*types.Message, onInvalidated func()) *ChatProgram {
	return &ChatProgram{model: initialModel(ses, poller, authenticated, transcript, onInvalidated)}
}

// Run starts the chat TUI program
func (p *ChatProgram) Run() error {
	program := tea.NewProgram(p.model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// chatModel is the Bubble Tea model containing all chat interface state
type chatModel struct {
	// Dependencies
	session *session.Session
	poller  *session.TokenPoller
	machine *session.Machine
	history *session.InputHistory

	authenticated bool

	// UI components
	input       textinput.Model
	contentView viewport.Model

	// Transcript text
	content *strings.Builder // Use pointer to avoid Builder copy

	// Generation the current phase ticks belong to. Ticks scheduled
	// for an older send are dropped on arrival.
	sendSeq int

	// Set once the token poller reports invalidation.
	tokenInvalid  bool
	onInvalidated func()

	// Window dimensions
	width  int
	height int
}

// initialModel creates the initial chat model
func initialModel(ses *session.Session, poller *session.TokenPoller, authenticated bool, transcript []*types.Message, onInvalidated func()) chatModel {
	input := textinput.New()
	input.Placeholder = ""
	input.Focus()
	input.CharLimit = inputCharLimit
	input.Width = defaultInputWidth
	input.Prompt = ""
	input.TextStyle = lipgloss.NewStyle()
	input.PromptStyle = lipgloss.NewStyle()

	contentViewport := viewport.New(defaultViewportWidth, defaultViewportHeight)
	contentViewport.SetContent("")

	m := chatModel{
		session:       ses,
		poller:        poller,
		machine:       session.NewMachine(),
		history:       session.NewInputHistory(),
		authenticated: authenticated,
		onInvalidated: onInvalidated,
		input:         input,
		contentView:   contentViewport,
		content:       &strings.Builder{},
		width:         defaultWindowWidth,
		height:        defaultWindowHeight,
	}

	for _, msg := range transcript {
		m.appendTurn(msg.Sender, msg.Text)
	}
	m.refreshContent()

	return m
}

// Init initializes the model (Bubble Tea interface)
func (m chatModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.poller != nil {
		cmds = append(cmds, schedulePoll())
	}
	return tea.Batch(cmds...)
}

// Message type definitions
type (
	responseMsg struct {
		seq    int
		answer string
		err    error
	}
	phaseTickMsg struct{ seq int }
	pollDueMsg   struct{}
	pollDoneMsg  struct{ outcome session.PollOutcome }
)

// Update processes messages and updates the model (Bubble Tea interface)
func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyPress(msg)...)

	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)

	case phaseTickMsg:
		// Ticks from a previous send are stale.
		if msg.seq == m.sendSeq && m.machine.Current() != session.StateDone {
			m.machine.Tick()
			if m.machine.Current() != session.StateGenerating {
				cmds = append(cmds, schedulePhaseTick(m.sendSeq))
			}
		}

	case responseMsg:
		if msg.seq == m.sendSeq {
			m.machine.Respond()
			if msg.err != nil {
				m.appendAssistantError(msg.err)
			} else {
				m.appendTurn("assistant", msg.answer)
			}
			m.refreshContent()
		}

	case pollDueMsg:
		cmds = append(cmds, m.runPoll(), schedulePoll())

	case pollDoneMsg:
		if msg.outcome == session.PollInvalidated {
			m.tokenInvalid = true
			if m.onInvalidated != nil {
				m.onInvalidated()
			}
			m.content.WriteString("\n")
			m.content.WriteString(warningStyle.Render("Session expired. Run 'luminactl login' to continue."))
			m.content.WriteString("\n")
			m.refreshContent()
		}
	}

	if m.machine.CanSend() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m *chatModel) handleKeyPress(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		cmds = append(cmds, tea.Quit)

	case tea.KeyEnter:
		if m.machine.CanSend() && !m.tokenInvalid {
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				cmds = append(cmds, m.startSend(text)...)
			}
		}

	case tea.KeyUp:
		if recalled, ok := m.history.Prev(m.input.Value()); ok {
			m.input.SetValue(recalled)
			m.input.CursorEnd()
		}

	case tea.KeyDown:
		if restored, ok := m.history.Next(); ok {
			m.input.SetValue(restored)
			m.input.CursorEnd()
		}

	case tea.KeyPgUp:
		m.contentView.ViewUp()

	case tea.KeyPgDown:
		m.contentView.ViewDown()
	}

	return cmds
}

// handleWindowResize handles window size changes
func (m *chatModel) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := msg.Height - inputHeightReserved - statusHeightReserved
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}

	m.contentView.Width = msg.Width
	m.contentView.Height = contentHeight
	m.input.Width = msg.Width - 3

	// Reapply wrapping when window size changes
	m.refreshContent()
}

// startSend commits the user turn locally and dispatches the request.
func (m *chatModel) startSend(text string) []tea.Cmd {
	if err := m.machine.Submit(); err != nil {
		return nil
	}

	m.history.Add(text)
	m.input.Reset()
	m.sendSeq++

	m.appendTurn("user", text)
	m.refreshContent()

	return []tea.Cmd{
		m.sendCmd(m.sendSeq, text),
		schedulePhaseTick(m.sendSeq),
	}
}

// sendCmd performs the round trip off the UI goroutine.
func (m *chatModel) sendCmd(seq int, text string) tea.Cmd {
	ses := m.session
	return func() tea.Msg {
		answer, err := ses.Send(context.Background(), text)
		return responseMsg{seq: seq, answer: answer, err: err}
	}
}

func schedulePhaseTick(seq int) tea.Cmd {
	return tea.Tick(phaseTickInterval, func(time.Time) tea.Msg {
		return phaseTickMsg{seq: seq}
	})
}

func schedulePoll() tea.Cmd {
	return tea.Tick(tokenPollInterval, func(time.Time) tea.Msg {
		return pollDueMsg{}
	})
}

// runPoll re-validates the token off the UI goroutine.
func (m *chatModel) runPoll() tea.Cmd {
	poller := m.poller
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return pollDoneMsg{outcome: poller.Check(ctx)}
	}
}

// appendTurn appends one labelled transcript turn.
func (m *chatModel) appendTurn(sender, text string) {
	m.content.WriteString("\n")
	if sender == "user" {
		m.content.WriteString(boldStyle.Render("You"))
	} else {
		m.content.WriteString(accentStyle.Render("Assistant"))
	}
	m.content.WriteString("\n")
	m.content.WriteString(text)
	m.content.WriteString("\n")
}

// appendAssistantError renders a failed turn as an apologetic assistant
// reply so the transcript stays coherent.
func (m *chatModel) appendAssistantError(err error) {
	m.appendTurn("assistant", fallbackAnswer)
	m.content.WriteString(errorStyle.Render(fmt.Sprintf("(%v)", err)))
	m.content.WriteString("\n")
}

// refreshContent refreshes the display content
func (m *chatModel) refreshContent() {
	display := m.content.String()

	// Auto-wrap handling
	if m.width > 0 {
		display = wrapText(display, m.width)
	}

	m.contentView.SetContent(display)
	m.contentView.GotoBottom()
}

// wrapText applies auto-wrapping to text, correctly handling wide character widths
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 10 {
		return text
	}

	lines := strings.Split(text, "\n")
	var result strings.Builder

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}

		// Keep empty lines as-is
		if strings.TrimSpace(line) == "" {
			continue
		}

		result.WriteString(wrapLine(line, maxWidth))
	}

	return result.String()
}

// wrapLine wraps a single line of text on display-cell boundaries
func wrapLine(line string, maxWidth int) string {
	if runewidth.StringWidth(line) <= maxWidth {
		return line
	}

	var result strings.Builder
	var currentLine strings.Builder
	currentWidth := 0

	for _, r := range line {
		runeW := runewidth.RuneWidth(r)

		// If adding this character exceeds width, wrap first
		if currentWidth+runeW > maxWidth && currentWidth > 0 {
			result.WriteString(currentLine.String())
			result.WriteString("\n")
			currentLine.Reset()
			currentWidth = 0
		}

		currentLine.WriteRune(r)
		currentWidth += runeW
	}

	// Add final line
	if currentLine.Len() > 0 {
		result.WriteString(currentLine.String())
	}

	return result.String()
}

// statusLabel maps the send lifecycle to the status line.
func (m chatModel) statusLabel() string {
	switch m.machine.Current() {
	case session.StateProcessing:
		return " • processing..."
	case session.StateThinking:
		return " • thinking..."
	case session.StateGenerating:
		return " • generating..."
	default:
		return ""
	}
}

// sessionLabel names the current conversation handle for the status bar.
func (m chatModel) sessionLabel() string {
	if m.authenticated {
		if id := m.session.ConversationID(); id != "" {
			return "conversation " + shortID(id)
		}
		return "new conversation"
	}
	if id := m.session.GuestID(); id != "" {
		return "guest " + shortID(id)
	}
	return "guest"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// View renders the UI (Bubble Tea interface)
func (m chatModel) View() string {
	// Top status bar
	status := dimStyle.Render(m.sessionLabel() + m.statusLabel())
	if m.tokenInvalid {
		status += warningStyle.Render(" • session expired")
	}

	// Content area
	content := m.contentView.View()

	// Input area
	var inputView string
	if !m.machine.CanSend() {
		inputView = dimStyle.Render("> ") + dimStyle.Render("waiting for reply...")
	} else {
		inputView = promptStyle.Render("> ") + m.input.View()
	}

	// Bottom help text
	help := ""
	if m.machine.CanSend() {
		help = dimStyle.Render("Enter send • ↑↓ recall input • PgUp/PgDn scroll • Esc quit")
	}

	parts := []string{status, "", content, "", inputView}
	if help != "" {
		parts = append(parts, help)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
