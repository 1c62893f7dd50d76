// Package tui renders the terminal interface: five pages over shared
// state, with generation running off the update loop so the interface
// stays responsive while a completion is in flight.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"darijacode/chat"
	"darijacode/community"
	"darijacode/learning"
	"darijacode/learningpath"
	"darijacode/llm"
	"darijacode/projects"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#C1272D")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#006233")).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F25D94"))

	aiStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#04B575")).
		Bold(true)
)

type page int

const (
	pageChat page = iota
	pageLearn
	pagePath
	pageProjects
	pageForum
)

var pageNames = []string{"Chat", "Learn", "Path", "Projects", "Forum"}

// Deps carries the feature state the interface operates on.
type Deps struct {
	Session *chat.Session
	Library *learning.Library
	Planner *learningpath.Planner
	Catalog *projects.Catalog
	Board   *community.Board
	Logger  *zap.Logger
}

// contentMsg carries the result of a background generation back into the
// update loop.
type contentMsg struct {
	page page
	body string
	err  error
}

// refreshMsg re-renders the forum page so replies merged behind the delay
// become visible without a keypress.
type refreshMsg struct{}

type model struct {
	deps Deps

	page    page
	input   textinput.Model
	view    viewport.Model
	spin    spinner.Model
	busy    bool
	status  string
	width   int
	height  int
	content string
}

// Run starts the interface and blocks until the user quits.
func Run(deps Deps) error {
	input := textinput.New()
	input.Placeholder = "Ask me anything about coding..."
	input.Focus()
	input.CharLimit = 2000

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := model{
		deps:  deps,
		input: input,
		view:  viewport.New(80, 20),
		spin:  spin,
	}
	m.content = m.renderPage()
	m.view.SetContent(m.content)

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, refreshTick())
}

func refreshTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.page = (m.page + 1) % page(len(pageNames))
			m.status = ""
			m.input.Placeholder = placeholderFor(m.page)
			m.refresh()
			return m, nil
		case "shift+tab":
			m.page = (m.page + page(len(pageNames)) - 1) % page(len(pageNames))
			m.status = ""
			m.input.Placeholder = placeholderFor(m.page)
			m.refresh()
			return m, nil
		case "ctrl+l":
			if m.page == pageChat {
				m.cycleLanguage()
				m.refresh()
			}
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.busy {
				return m, nil
			}
			m.input.SetValue("")
			return m.submit(text)
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = msg.Width - 4
		m.view.Height = msg.Height - 7
		m.input.Width = msg.Width - 8
		m.refresh()
		return m, nil
	case contentMsg:
		m.busy = false
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		} else {
			m.status = ""
		}
		if msg.body != "" {
			m.content = msg.body
			m.view.SetContent(m.content)
			m.view.GotoTop()
		} else {
			m.refresh()
		}
		return m, nil
	case refreshMsg:
		if m.page == pageForum && !m.busy {
			m.refresh()
		}
		return m, refreshTick()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) refresh() {
	m.content = m.renderPage()
	m.view.SetContent(m.content)
}

func (m *model) cycleLanguage() {
	current := m.deps.Session.Language()
	for i, l := range llm.Languages {
		if l.ID == current {
			next := llm.Languages[(i+1)%len(llm.Languages)]
			m.deps.Session.SetLanguage(next.ID)
			m.status = statusStyle.Render("Language: " + next.Name)
			return
		}
	}
	m.deps.Session.SetLanguage(llm.LangEnglish)
}

// submit dispatches the input line to the current page. Commands that hit
// the network run as background tea.Cmds; local mutations apply inline.
func (m model) submit(text string) (tea.Model, tea.Cmd) {
	switch m.page {
	case pageChat:
		return m.startWork(func() tea.Msg {
			m.deps.Session.Send(context.Background(), text)
			return contentMsg{page: pageChat}
		})

	case pageLearn:
		if id, ok := strings.CutPrefix(text, "done "); ok {
			m.deps.Library.ToggleCompleted(strings.TrimSpace(id))
			m.refresh()
			return m, nil
		}
		topic, ok := learning.TopicByID(text)
		if !ok {
			m.status = errorStyle.Render("unknown topic: " + text)
			return m, nil
		}
		return m.startWork(func() tea.Msg {
			body := m.deps.Library.Lesson(context.Background(), topic)
			return contentMsg{page: pageLearn, body: renderMarkdown(body, m.view.Width)}
		})

	case pagePath:
		if id, ok := strings.CutPrefix(text, "done "); ok {
			m.deps.Planner.ToggleStep(strings.TrimSpace(id))
			m.refresh()
			return m, nil
		}
		return m.startWork(func() tea.Msg {
			_, err := m.deps.Planner.Generate(context.Background(), text)
			return contentMsg{page: pagePath, err: err}
		})

	case pageProjects:
		if id, ok := strings.CutPrefix(text, "save "); ok {
			m.deps.Catalog.ToggleSave(strings.TrimSpace(id))
			m.refresh()
			return m, nil
		}
		if id, ok := strings.CutPrefix(text, "flow "); ok {
			idea, found := m.ideaByID(strings.TrimSpace(id))
			if !found {
				m.status = errorStyle.Render("unknown idea: " + id)
				return m, nil
			}
			return m.startWork(func() tea.Msg {
				chart, err := m.deps.Catalog.Flowchart(context.Background(), idea)
				return contentMsg{page: pageProjects, body: chart, err: err}
			})
		}
		if id, ok := strings.CutPrefix(text, "info "); ok {
			idea, found := m.ideaByID(strings.TrimSpace(id))
			if !found {
				m.status = errorStyle.Render("unknown idea: " + id)
				return m, nil
			}
			return m.startWork(func() tea.Msg {
				body := m.deps.Catalog.Details(context.Background(), idea)
				return contentMsg{page: pageProjects, body: renderMarkdown(body, m.view.Width)}
			})
		}
		return m.startWork(func() tea.Msg {
			_, err := m.deps.Catalog.Generate(context.Background(), text)
			return contentMsg{page: pageProjects, err: err}
		})

	case pageForum:
		if m.deps.Board.UserName() == "" {
			m.deps.Board.SetUserName(text)
			m.status = statusStyle.Render("Posting as " + text)
			m.refresh()
			return m, nil
		}
		if id, ok := strings.CutPrefix(text, "like "); ok {
			m.deps.Board.ToggleLike(strings.TrimSpace(id))
			m.refresh()
			return m, nil
		}
		if id, ok := strings.CutPrefix(text, "flag "); ok {
			m.deps.Board.ToggleFlag(strings.TrimSpace(id))
			m.refresh()
			return m, nil
		}
		if rest, ok := strings.CutPrefix(text, "reply "); ok {
			id, body, found := strings.Cut(strings.TrimSpace(rest), " ")
			if !found {
				m.status = errorStyle.Render("usage: reply <post-id> <text>")
				return m, nil
			}
			m.deps.Board.SubmitReply(id, body)
			m.refresh()
			return m, nil
		}
		return m.startWork(func() tea.Msg {
			m.deps.Board.SubmitPost(context.Background(), text)
			return contentMsg{page: pageForum}
		})
	}
	return m, nil
}

func (m model) startWork(work func() tea.Msg) (tea.Model, tea.Cmd) {
	m.busy = true
	m.status = ""
	return m, tea.Batch(m.spin.Tick, func() tea.Msg { return work() })
}

func (m model) ideaByID(id string) (projects.ProjectIdea, bool) {
	for _, idea := range m.deps.Catalog.Ideas() {
		if idea.ID == id {
			return idea, true
		}
	}
	return projects.ProjectIdea{}, false
}

func placeholderFor(p page) string {
	switch p {
	case pageChat:
		return "Ask me anything about coding..."
	case pageLearn:
		return "Type a topic id, or: done <topic-id>"
	case pagePath:
		return "Describe your goal, or: done <step-id>"
	case pageProjects:
		return "Describe a project, or: save/flow/info <idea-id>"
	case pageForum:
		return "Write a post, or: reply/like/flag <post-id>"
	}
	return ""
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("DarijaCode Hub"))
	b.WriteString("  ")
	for i, name := range pageNames {
		if page(i) == m.page {
			b.WriteString(activeTabStyle.Render(name))
		} else {
			b.WriteString(tabStyle.Render(name))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.view.View())
	b.WriteString("\n")

	if m.busy {
		b.WriteString(m.spin.View() + " thinking...\n")
	} else if m.status != "" {
		b.WriteString(m.status + "\n")
	} else {
		b.WriteString(statusStyle.Render(helpFor(m.page)) + "\n")
	}
	b.WriteString(inputStyle.Render(m.input.View()))

	return b.String()
}

func helpFor(p page) string {
	base := "tab: switch page · ctrl+c: quit"
	if p == pageChat {
		return base + " · ctrl+l: language"
	}
	return base
}
