package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aman-CERP/sitesearch/internal/controller"
	"github.com/Aman-CERP/sitesearch/internal/render"
)

// Input receives every change of the query input.
type Input interface {
	Input(q string)
}

// Messages sent by Page into the running program.
type (
	statusMsg  string
	queryMsg   string
	resultsMsg []render.Result
	clearMsg   struct{}
)

// Model is the bubbletea model of the terminal search page: an input line,
// a status line and a results pane.
type Model struct {
	input   textinput.Model
	spinner spinner.Model
	styles  Styles
	color   bool
	onInput Input

	status  string
	results []render.Result
	shown   bool
	cursor  int
	loading bool

	width  int
	height int
}

// NewModel creates the page model. onInput may be nil until Bind is called.
func NewModel(styles Styles, color bool, onInput Input) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search the site..."
	ti.Prompt = "› "
	ti.PromptStyle = styles.Prompt
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Prompt

	return &Model{
		input:   ti,
		spinner: sp,
		styles:  styles,
		color:   color,
		onInput: onInput,
		loading: true,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, msg.Width-6)
		return m, nil

	case statusMsg:
		m.status = string(msg)
		m.loading = m.status == controller.StatusLoadingText
		return m, nil

	case queryMsg:
		m.input.SetValue(string(msg))
		m.input.CursorEnd()
		return m, nil

	case resultsMsg:
		m.results = msg
		m.shown = true
		m.cursor = 0
		return m, nil

	case clearMsg:
		m.results = nil
		m.shown = false
		m.cursor = 0
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // only navigation keys are handled here
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before && m.onInput != nil {
		m.onInput.Input(after)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Site search"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	b.WriteString(m.renderResults())
	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render("↑/↓ select • esc quit"))

	return b.String()
}

func (m *Model) renderStatus() string {
	switch {
	case m.loading:
		return m.spinner.View() + " " + m.styles.Status.Render(m.status)
	case m.status == controller.StatusFailedText:
		return m.styles.Error.Render(m.status)
	default:
		return m.styles.Status.Render(m.status)
	}
}

func (m *Model) renderResults() string {
	if !m.shown {
		return ""
	}
	if len(m.results) == 0 {
		return m.styles.Dim.Render(render.NoResultsText) + "\n"
	}

	width := max(20, m.width-4)
	hl := Highlighter(m.styles, m.color)

	var b strings.Builder
	for i, r := range m.results {
		marker := "  "
		title := m.styles.Title.Render(r.Title)
		if i == m.cursor {
			marker = m.styles.Selected.Render("▸ ")
			title = m.styles.Selected.Render(r.Title)
		}
		b.WriteString(marker + title + "\n")
		b.WriteString("  " + m.styles.Link.Render(r.Href) + "\n")
		if r.SnippetHTML != "" {
			snippet := render.Terminal(r.SnippetHTML, hl)
			b.WriteString(lipgloss.NewStyle().Width(width).PaddingLeft(2).Render(snippet) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the result under the cursor.
func (m *Model) Selected() (render.Result, bool) {
	if !m.shown || m.cursor >= len(m.results) {
		return render.Result{}, false
	}
	return m.results[m.cursor], true
}

// Page forwards controller writes into a running program. It is safe to use
// from the controller's goroutine.
type Page struct {
	program *tea.Program
}

// SetStatus implements controller.Page.
func (p *Page) SetStatus(text string) { p.program.Send(statusMsg(text)) }

// SetQuery implements controller.Page.
func (p *Page) SetQuery(q string) { p.program.Send(queryMsg(q)) }

// SetResults implements controller.Page.
func (p *Page) SetResults(results []render.Result) { p.program.Send(resultsMsg(results)) }

// ClearResults implements controller.Page.
func (p *Page) ClearResults() { p.program.Send(clearMsg{}) }

// App is the terminal search page.
type App struct {
	model   *Model
	program *tea.Program
}

// AppConfig configures NewApp.
type AppConfig struct {
	Input  io.Reader
	Output io.Writer
	// AltScreen runs the page in the alternate screen buffer.
	AltScreen bool
}

// NewApp creates the page. Call Bind before Run so typing reaches the controller.
func NewApp(cfg AppConfig) *App {
	color := UseColor(cfg.Output)
	model := NewModel(GetStyles(!color), color, nil)

	var opts []tea.ProgramOption
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	return &App{
		model:   model,
		program: tea.NewProgram(model, opts...),
	}
}

// Page returns the controller.Page backed by this program.
func (a *App) Page() controller.Page {
	return &Page{program: a.program}
}

// Bind routes input changes to in.
func (a *App) Bind(in Input) {
	a.model.onInput = in
}

// Run blocks until the user quits.
func (a *App) Run() error {
	if _, err := a.program.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// Quit stops a running program.
func (a *App) Quit() {
	a.program.Quit()
}
