package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/diogo/querychat/internal/api"
	"github.com/diogo/querychat/internal/chat"
	"github.com/diogo/querychat/internal/config"
	"github.com/diogo/querychat/internal/format"
	"github.com/diogo/querychat/internal/render"
)

// dotsInterval is the frame time of the loading placeholder
const dotsInterval = 300 * time.Millisecond

// Message types for the TUI
type (
	// outcomeMsg carries a settled question back to the update loop
	outcomeMsg struct {
		pending chat.Pending
		outcome api.Outcome
	}
	dotsTickMsg time.Time
	copiedMsg   struct {
		err error
	}
)

// Options configures the chat model
type Options struct {
	// Endpoint is shown in the header
	Endpoint string
	Catalog  config.PromptCatalog
	// Markdown renders bot answers with glamour instead of emphasis spans
	Markdown        bool
	MarkdownOptions render.Options
	Logger          *zap.Logger
}

// entry is one row of the transcript: a message, or the loading placeholder
type entry struct {
	message     chat.Message
	placeholder uuid.UUID
}

func (e entry) isPlaceholder() bool {
	return e.placeholder != uuid.Nil
}

// inputField adapts the textarea to chat.InputField
type inputField struct {
	ta *textarea.Model
}

func (f inputField) Value() string         { return f.ta.Value() }
func (f inputField) SetValue(value string) { f.ta.SetValue(value) }
func (f inputField) Focus()                { f.ta.Focus() }

// Model is the chat TUI. It is the chat.Surface the controller draws on, so
// it must be used through a pointer.
type Model struct {
	controller *chat.Controller
	binder     *chat.ShortcutBinder
	catalog    config.PromptCatalog
	opts       Options
	ctx        context.Context
	copy       func(string) error

	// UI components
	viewport viewport.Model
	textarea textarea.Model

	// Surface state
	active   bool
	entries  []entry
	controls bool

	// In-flight question, zero when idle
	pending chat.Pending

	// Example prompt focus (welcome view only)
	examplesFocused bool
	exampleCursor   int

	dotsFrame int
	status    string
	ready     bool

	width  int
	height int
}

var _ chat.Surface = (*Model)(nil)

// NewChatModel creates a chat model sending questions through querier
func NewChatModel(ctx context.Context, querier chat.Querier, opts Options) *Model {
	ta := textarea.New()
	ta.Placeholder = "Ask a question..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Model{
		catalog:  opts.Catalog,
		opts:     opts,
		ctx:      ctx,
		copy:     clipboard.WriteAll,
		textarea: ta,
		controls: true,
	}

	input := inputField{ta: &m.textarea}
	m.controller = chat.NewController(m, input, querier, chat.WithLogger(logger))
	m.binder = chat.NewShortcutBinder(input, opts.Catalog.SelectableItems())

	return m
}

// Activate switches from the welcome view to the transcript
func (m *Model) Activate() {
	m.active = true
	m.examplesFocused = false
}

// AppendMessage adds a rendered message to the transcript
func (m *Model) AppendMessage(msg chat.Message) {
	m.entries = append(m.entries, entry{message: msg})
	m.refresh()
}

// ShowPlaceholder appends the loading entry
func (m *Model) ShowPlaceholder(id uuid.UUID) {
	m.dotsFrame = 0
	m.entries = append(m.entries, entry{placeholder: id})
	m.refresh()
}

// RemovePlaceholder drops the loading entry with id
func (m *Model) RemovePlaceholder(id uuid.UUID) {
	for i, e := range m.entries {
		if e.placeholder == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			break
		}
	}
	m.refresh()
}

// ScrollToBottom keeps the newest entry in view
func (m *Model) ScrollToBottom() {
	m.viewport.GotoBottom()
}

// SetControlsEnabled enables or blocks the input field
func (m *Model) SetControlsEnabled(enabled bool) {
	m.controls = enabled
	if enabled {
		m.textarea.Focus()
	} else {
		m.textarea.Blur()
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func dotsTick() tea.Cmd {
	return tea.Tick(dotsInterval, func(t time.Time) tea.Msg {
		return dotsTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case outcomeMsg:
		if _, ok := m.controller.Settle(msg.pending, msg.outcome); ok {
			m.pending = chat.Pending{}
		}

	case dotsTickMsg:
		if m.controller.Loading().Visible() {
			m.dotsFrame++
			m.refresh()
			cmds = append(cmds, dotsTick())
		}

	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Answer copied to clipboard"
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.examplesFocused {
			m.examplesFocused = false
			m.textarea.Focus()
			return m, nil
		}
		return m, tea.Quit

	case "ctrl+y":
		return m, m.copyLastAnswer()

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// The field and submit control are disabled while a question is in flight
	if !m.controls {
		return m, nil
	}

	if m.examplesFocused {
		return m.handleExampleKey(msg)
	}

	if msg.String() == "tab" && !m.active && m.binder.Len() > 0 {
		m.examplesFocused = true
		m.textarea.Blur()
		return m, nil
	}

	ev, ok := keyEvent(msg)
	if !ok {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	if ev.Shift {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return m, cmd
	}

	p, sent := m.controller.HandleKey(ev)
	if !sent {
		return m, nil
	}
	m.pending = p
	m.status = ""
	return m, tea.Batch(m.await(p), dotsTick())
}

func (m *Model) handleExampleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.binder.Len()
	switch msg.String() {
	case "tab":
		m.examplesFocused = false
		m.textarea.Focus()
	case "up", "k":
		m.exampleCursor = (m.exampleCursor - 1 + n) % n
	case "down", "j":
		m.exampleCursor = (m.exampleCursor + 1) % n
	case "enter", " ":
		if _, ok := m.binder.Activate(m.exampleCursor); ok {
			m.examplesFocused = false
			m.textarea.CursorEnd()
		}
	}
	return m, nil
}

// keyEvent maps Enter and its "new line" variants. Terminals rarely report
// shift+enter, so alt+enter and ctrl+j count as the shifted key.
func keyEvent(msg tea.KeyMsg) (chat.KeyEvent, bool) {
	switch msg.String() {
	case "enter":
		return chat.KeyEvent{Key: chat.KeyEnter}, true
	case "shift+enter", "alt+enter", "ctrl+j":
		return chat.KeyEvent{Key: chat.KeyEnter, Shift: true}, true
	}
	return chat.KeyEvent{}, false
}

// await runs the request off the update loop
func (m *Model) await(p chat.Pending) tea.Cmd {
	ctrl, ctx := m.controller, m.ctx
	return func() tea.Msg {
		return outcomeMsg{pending: p, outcome: ctrl.Await(ctx, p)}
	}
}

func (m *Model) copyLastAnswer() tea.Cmd {
	last, ok := m.controller.Transcript().Last(chat.SenderBot)
	if !ok {
		m.status = "Nothing to copy yet"
		return nil
	}
	// Emphasis mode copies what is on screen, markdown mode copies the source
	text := last.Text
	if !m.opts.Markdown {
		text = format.PlainText(last.Spans)
	}
	copyFn := m.copy
	return func() tea.Msg {
		return copiedMsg{err: copyFn(text)}
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 4
	inputHeight := 6
	statusHeight := 2
	padding := 2

	vpHeight := height - headerHeight - inputHeight - statusHeight - padding
	if vpHeight < 5 {
		vpHeight = 5
	}
	contentWidth := width - 4

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 4)
	m.refresh()
}

// refresh re-renders the transcript into the viewport
func (m *Model) refresh() {
	if !m.ready {
		return
	}

	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	var content strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			content.WriteString("\n")
		}
		switch {
		case e.isPlaceholder():
			content.WriteString(botLabelStyle.Render("✦ Bot") + "\n")
			content.WriteString(botBubbleStyle.Render(renderDots(m.dotsFrame)))
		case e.message.Sender == chat.SenderUser:
			content.WriteString(userLabelStyle.Render("● You") + "\n")
			content.WriteString(userBubbleStyle.Width(bubbleWidth).Render(render.Spans(e.message.Spans, render.DefaultSpanStyles())))
		default:
			content.WriteString(botLabelStyle.Render("✦ Bot") + "\n")
			content.WriteString(botBubbleStyle.Width(bubbleWidth).Render(m.renderAnswer(e.message, bubbleWidth-4)))
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

func (m *Model) renderAnswer(msg chat.Message, width int) string {
	if m.opts.Markdown {
		return render.Answer(msg.Text, true, m.opts.MarkdownOptions.WithWidth(width), render.DefaultSpanStyles())
	}
	return render.Spans(msg.Spans, render.DefaultSpanStyles())
}

// renderDots draws the three-dot placeholder, lighting one more dot per frame
func renderDots(frame int) string {
	lit := frame%3 + 1
	var b strings.Builder
	for i := 0; i < 3; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		if i < lit {
			b.WriteString(loadingStyle.Render("●"))
		} else {
			b.WriteString(dotOffStyle.Render("○"))
		}
	}
	return b.String()
}

// View renders the TUI
func (m *Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	var sections []string

	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✦ QueryChat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.opts.Endpoint),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	messagesContent := m.viewport.View()
	if !m.active {
		messagesContent = m.renderWelcome()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	var inputContent string
	if m.controls {
		inputContent = lipgloss.JoinVertical(lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	} else {
		inputContent = lipgloss.JoinVertical(lipgloss.Left,
			inputLabelStyle.Render("You"),
			inputDisabledStyle.Render("Waiting for the answer..."),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))
	if m.status != "" {
		sections = append(sections, hintStyle.Render("  "+m.status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome draws the prompt catalog columns shown before the first message
func (m *Model) renderWelcome() string {
	width := m.viewport.Width - 4

	title := lipgloss.JoinHorizontal(lipgloss.Center,
		welcomeIconStyle.Render("✦ "),
		welcomeTitleStyle.Render("Ask about the Srimad Bhagavatam"),
	)

	cols := len(m.catalog.Columns)
	if cols == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, title)
	}
	colWidth := width/cols - 2
	if colWidth < 16 {
		colWidth = 16
	}

	selectable := 0
	columns := make([]string, 0, cols)
	for _, col := range m.catalog.Columns {
		rows := []string{columnTitleStyle.Render(col.Title)}
		for _, item := range col.Items {
			style := infoItemStyle
			if col.Selectable {
				style = exampleItemStyle
				if m.examplesFocused && selectable == m.exampleCursor {
					style = exampleSelectedStyle
				}
				selectable++
			}
			rows = append(rows, style.Width(colWidth).Render(item))
		}
		columns = append(columns, columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
	)
	if m.binder.Len() > 0 {
		body = lipgloss.JoinVertical(lipgloss.Center, body, "",
			hintStyle.Render("Press Tab to pick an example"))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (m *Model) renderStatusBar(width int) string {
	if m.examplesFocused {
		return renderShortcuts(statusBarStyle, width, []shortcut{
			{"↑↓", "Choose"},
			{"Enter", "Use example"},
			{"Tab/Esc", "Back"},
		})
	}
	return renderShortcuts(statusBarStyle, width, []shortcut{
		{"Enter", "Send"},
		{"Alt+Enter", "New line"},
		{"Ctrl+Y", "Copy"},
		{"PgUp/PgDn", "Scroll"},
		{"Esc", "Quit"},
	})
}

// RunChat starts the chat TUI
func RunChat(ctx context.Context, querier chat.Querier, opts Options) error {
	p := tea.NewProgram(
		NewChatModel(ctx, querier, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
