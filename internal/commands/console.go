// internal/commands/console.go
package agroserve

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/agrisage/agroserve/internal/client"
	"github.com/agrisage/agroserve/internal/console"
	"github.com/agrisage/agroserve/mcp/tools"
)

// consoleCmd opens the interactive terminal UI over a live tool session.
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactively call tools from a terminal UI",
	Long: `The 'console' command opens a terminal UI over a live tool session: pick a
tool, type a query (a bare value for the tool's primary argument, or a full
JSON object), and read the results in a scrolling transcript.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		console.ForceUTF8()

		c, err := client.Dial(cmd.Context(), GetConfig())
		if err != nil {
			return err
		}
		defer c.Close()

		return runConsole(cmd.Context(), c)
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

// toolCaller is the slice of the session client the console needs. Keeping it
// narrow lets tests drive the model with a fake.
type toolCaller interface {
	Tools() []tools.Definition
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
}

// consoleState represents the current view of the console UI.
type consoleState int

const (
	// viewToolSelector is the state where the user picks a tool.
	viewToolSelector consoleState = iota
	// viewConsole is the state where the user submits queries and reads results.
	viewConsole
)

// Transcript entry roles.
const (
	roleUser   = "user"
	roleServer = "server"
	roleError  = "error"
)

// consoleEntry is a single line of the session transcript.
type consoleEntry struct {
	role string
	text string
}

// consoleModel is the Bubble Tea model for the interactive console.
type consoleModel struct {
	ctx       context.Context
	caller    toolCaller
	state     consoleState
	isLoading bool
	err       error

	toolList list.Model
	textArea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	defs         []tools.Definition
	selectedTool tools.Definition
	transcript   []consoleEntry

	width, height    int
	requestStartTime time.Time
	lastCallMillis   int64
}

// toolItem represents a selectable tool in the tool list.
type toolItem struct {
	title string
	desc  string
}

// Title returns the tool name.
func (i toolItem) Title() string { return i.title }

// Description returns the tool description.
func (i toolItem) Description() string { return i.desc }

// FilterValue returns the tool name, used for filtering.
func (i toolItem) FilterValue() string { return i.title }

// callDoneMsg is sent when a tool call completed and produced text.
type callDoneMsg struct {
	text    string
	elapsed time.Duration
}

// callErr is sent when the call itself failed to complete.
type callErr struct{ error }

// tickMsg drives the elapsed-time display while a call is in flight.
type tickMsg time.Time

// initialConsoleModel creates the console model with the advertised tools
// preloaded into the selector.
func initialConsoleModel(ctx context.Context, caller toolCaller) *consoleModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "Type a query..."
	ta.Focus()
	ta.Prompt = "Query: "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	defs := caller.Tools()
	items := make([]list.Item, len(defs))
	for i, def := range defs {
		items[i] = toolItem{title: def.Name, desc: def.Description}
	}
	toolList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	toolList.Title = "Select a Tool"

	vp := viewport.New(100, 5)

	return &consoleModel{
		ctx:      ctx,
		caller:   caller,
		state:    viewToolSelector,
		spinner:  s,
		textArea: ta,
		toolList: toolList,
		viewport: vp,
		defs:     defs,
	}
}

// callToolCmd runs one tool call and reports the outcome as a message.
func callToolCmd(ctx context.Context, caller toolCaller, name string, args map[string]any) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		text, err := caller.CallTool(ctx, name, args)
		if err != nil {
			return callErr{error: err}
		}
		return callDoneMsg{text: text, elapsed: time.Since(start)}
	}
}

// tickCmd creates a command that sends a tickMsg at a regular interval.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the spinner animation.
func (m *consoleModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update is the central update function for the console model.
func (m *consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.state == viewConsole {
				m.state = viewToolSelector
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.toolList.SetSize(msg.Width-2, msg.Height-4)
		m.textArea.SetWidth(msg.Width - 3)
		headerHeight := 3
		footerHeight := 4
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight

	case callDoneMsg:
		m.isLoading = false
		m.lastCallMillis = msg.elapsed.Milliseconds()
		m.transcript = append(m.transcript, consoleEntry{role: roleServer, text: msg.text})
		m.textArea.Focus()
		m.viewport.GotoBottom()
		return m, nil

	case callErr:
		m.isLoading = false
		m.err = msg.error
		return m, nil

	case tickMsg:
		if m.isLoading {
			return m, tickCmd()
		}
		return m, nil
	}

	switch m.state {
	case viewToolSelector:
		m.toolList, cmd = m.toolList.Update(msg)
		cmds = append(cmds, cmd)
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			if selected, ok := m.toolList.SelectedItem().(toolItem); ok {
				m.selectTool(selected.title)
			}
		}

	case viewConsole:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

		m.textArea, cmd = m.textArea.Update(msg)
		cmds = append(cmds, cmd)

		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			input := strings.TrimSpace(m.textArea.Value())
			if input != "" {
				args, err := buildToolArgs(m.selectedTool, input)
				if err != nil {
					m.transcript = append(m.transcript, consoleEntry{role: roleError, text: err.Error()})
					m.viewport.GotoBottom()
					return m, tea.Batch(cmds...)
				}
				m.transcript = append(m.transcript, consoleEntry{role: roleUser, text: input})
				m.textArea.Reset()
				m.isLoading = true
				m.err = nil
				m.requestStartTime = time.Now()

				cmds = append(cmds, m.spinner.Tick, callToolCmd(m.ctx, m.caller, m.selectedTool.Name, args), tickCmd())
			}
		}
	}

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// selectTool switches the console to the named tool and retargets the input
// placeholder at its primary argument.
func (m *consoleModel) selectTool(name string) {
	for _, def := range m.defs {
		if def.Name == name {
			m.selectedTool = def
			break
		}
	}
	m.state = viewConsole
	if primary, _, ok := primaryArgument(m.selectedTool.InputSchema); ok {
		m.textArea.Placeholder = fmt.Sprintf("%s (or a JSON object)...", primary)
	} else {
		m.textArea.Placeholder = "Submit {} to call with no arguments..."
	}
	m.textArea.Reset()
	m.textArea.Focus()
	m.viewport.GotoBottom()
}

// View renders the console UI based on the current state of the model.
func (m *consoleModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	switch m.state {
	case viewToolSelector:
		return lipgloss.NewStyle().Margin(1, 2).Render(m.toolList.View())
	case viewConsole:
		return m.consoleView()
	default:
		return "Unknown state"
	}
}

// consoleView renders the transcript plus either the in-flight spinner or the
// query input.
func (m *consoleModel) consoleView() string {
	var builder strings.Builder

	labelStyle := lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("Tool:"),
		headerStyle.MarginLeft(1).Render(m.selectedTool.Name),
	)
	help := lipgloss.NewStyle().Render(" (tab to switch tools, esc to quit)")
	builder.WriteString(header + help + "\n\n")

	var transcriptBuilder strings.Builder
	userStyle := lipgloss.NewStyle().Bold(true)
	serverStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	errorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	for _, entry := range m.transcript {
		var role string
		switch entry.role {
		case roleServer:
			role = serverStyle.Render("Server: ")
		case roleError:
			role = errorStyle.Render("Error: ")
		default:
			role = userStyle.Render("You: ")
		}
		wrapped := lipgloss.NewStyle().Width(m.width - lipgloss.Width(role) - 2).Render(entry.text)
		transcriptBuilder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, role, wrapped) + "\n")
	}

	m.viewport.SetContent(transcriptBuilder.String())
	builder.WriteString(m.viewport.View())

	if m.isLoading {
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		builder.WriteString("\n" + m.spinner.View() + fmt.Sprintf(" Calling %s... %ss", m.selectedTool.Name, timer))
	} else {
		builder.WriteString("\n" + m.textArea.View())
	}

	if DebugEnabled() && m.lastCallMillis > 0 && !m.isLoading {
		metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
		builder.WriteString("\n" + metaStyle.Render(fmt.Sprintf("  >>> [Last Call: %dms]", m.lastCallMillis)))
	}

	return builder.String()
}

// primaryArgument picks the argument a bare (non-JSON) query maps to: the
// first required property, falling back to the first property by name.
func primaryArgument(schema map[string]any) (string, string, bool) {
	props, ok := schema["properties"].(map[string]any)
	if !ok || len(props) == 0 {
		return "", "", false
	}

	propType := func(name string) string {
		detail, _ := props[name].(map[string]any)
		typeName, _ := detail["type"].(string)
		return typeName
	}

	switch req := schema["required"].(type) {
	case []string:
		if len(req) > 0 {
			return req[0], propType(req[0]), true
		}
	case []any:
		if len(req) > 0 {
			if s, ok := req[0].(string); ok {
				return s, propType(s), true
			}
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0], propType(names[0]), true
}

// buildToolArgs turns raw console input into a tool argument map. A JSON
// object passes through as-is; anything else becomes the value of the tool's
// primary argument, coerced to the schema type where that succeeds.
func buildToolArgs(def tools.Definition, input string) (map[string]any, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return map[string]any{}, nil
	}
	if strings.HasPrefix(input, "{") {
		var args map[string]any
		if err := json.Unmarshal([]byte(input), &args); err != nil {
			return nil, fmt.Errorf("invalid JSON arguments: %w", err)
		}
		return args, nil
	}

	primary, typeName, ok := primaryArgument(def.InputSchema)
	if !ok {
		return nil, fmt.Errorf("%s takes no arguments; submit {} to call it", def.Name)
	}

	switch typeName {
	case "integer":
		if n, err := strconv.Atoi(input); err == nil {
			return map[string]any{primary: n}, nil
		}
	case "number":
		if f, err := strconv.ParseFloat(input, 64); err == nil {
			return map[string]any{primary: f}, nil
		}
	}
	return map[string]any{primary: input}, nil
}

// runConsole owns the terminal while active, so stdlib log output is routed
// to a file for the duration of the session.
func runConsole(ctx context.Context, caller toolCaller) error {
	f, err := tea.LogToFile("agroserve-console.log", "debug")
	if err != nil {
		return fmt.Errorf("could not open console log file: %w", err)
	}
	defer f.Close()

	m := initialConsoleModel(ctx, caller)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running console: %w", err)
	}
	return nil
}
