package commands

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/jrnhq/jrn/internal/api"
)

// NewChatCommand creates the 'chat' command. With an argument it sends one
// message; without, it opens the interactive session.
func NewChatCommand() *cli.Command {
	return &cli.Command{
		Name:      "chat",
		Aliases:   []string{"c"},
		Usage:     "Talk to the journal assistant",
		ArgsUsage: "[message]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "copy", Usage: "Copy the reply to the clipboard"},
		},
		Action: func(c *cli.Context) error {
			client := api.NewClient()

			if c.NArg() == 0 {
				return runChatTUI(client)
			}

			message := strings.Join(c.Args().Slice(), " ")
			reply, err := client.Chat(message)
			if err != nil {
				return err
			}

			fmt.Print(renderMarkdown(reply))
			if c.Bool("copy") {
				if err := clipboard.WriteAll(reply); err != nil {
					return fmt.Errorf("failed to copy reply: %w", err)
				}
				fmt.Println("📋 Reply copied to clipboard")
			}
			return nil
		},
	}
}

var (
	userLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	aiLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	helpLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

type chatReplyMsg string

type chatErrMsg struct{ err error }

type chatModel struct {
	client   *api.Client
	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model
	lines    []string
	waiting  bool
	ready    bool
}

func newChatModel(client *api.Client) chatModel {
	input := textinput.New()
	input.Placeholder = "Write to your journal assistant…"
	input.Focus()
	input.CharLimit = 0

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return chatModel{
		client: client,
		input:  input,
		spin:   spin,
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadHistoryCmd(m.client))
}

func loadHistoryCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		messages, err := client.History()
		if err != nil {
			return chatErrMsg{err}
		}
		lines := make([]string, 0, len(messages))
		for _, msg := range messages {
			lines = append(lines, formatTurn(msg.Role, msg.Content))
		}
		return historyMsg(lines)
	}
}

type historyMsg []string

func sendCmd(client *api.Client, message string) tea.Cmd {
	return func() tea.Msg {
		reply, err := client.Chat(message)
		if err != nil {
			return chatErrMsg{err}
		}
		return chatReplyMsg(reply)
	}
}

func formatTurn(role, content string) string {
	if role == "ai" {
		return aiLineStyle.Render("JRN: ") + content
	}
	return userLineStyle.Render("you: ") + content
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.lines = append(m.lines, formatTurn("user", text))
			m.input.Reset()
			m.waiting = true
			m.refreshViewport()
			return m, tea.Batch(sendCmd(m.client, text), m.spin.Tick)
		}

	case tea.WindowSizeMsg:
		inputHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - inputHeight
		}
		m.refreshViewport()

	case historyMsg:
		m.lines = append([]string(msg), m.lines...)
		m.refreshViewport()

	case chatReplyMsg:
		m.waiting = false
		m.lines = append(m.lines, formatTurn("ai", string(msg)))
		m.refreshViewport()

	case chatErrMsg:
		m.waiting = false
		m.lines = append(m.lines, helpLineStyle.Render("error: "+msg.err.Error()))
		m.refreshViewport()

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	}

	var inputCmd, viewportCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.viewport, viewportCmd = m.viewport.Update(msg)
	return m, tea.Batch(inputCmd, viewportCmd)
}

func (m *chatModel) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m chatModel) View() string {
	if !m.ready {
		return "loading…"
	}

	status := helpLineStyle.Render("enter to send · esc to quit")
	if m.waiting {
		status = m.spin.View() + " thinking…"
	}
	return m.viewport.View() + "\n" + m.input.View() + "\n" + status
}

func runChatTUI(client *api.Client) error {
	program := tea.NewProgram(newChatModel(client), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
