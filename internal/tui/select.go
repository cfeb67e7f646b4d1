// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/openlibrary/internal/openlibrary"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected an item.
	ActionSelected
	// ActionSkipped indicates the user closed the picker without a choice.
	ActionSkipped
	// ActionStopped indicates the user quit.
	ActionStopped
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection openlibrary.Record
}

type docItem struct {
	doc openlibrary.Record
}

// DocKey returns the Open Library key of a search doc, e.g. "/works/OL45804W".
func DocKey(doc openlibrary.Record) string {
	key, _ := doc.StringValue("key")
	return key
}

// DocTitle returns the display name of a search doc: its title for books,
// its name for authors, subjects and lists.
func DocTitle(doc openlibrary.Record) string {
	if title, ok := doc.Text("title"); ok && title != "" {
		return title
	}
	if name, ok := doc.StringValue("name"); ok && name != "" {
		return name
	}
	return DocKey(doc)
}

func (i docItem) Title() string {
	title := strings.ToUpper(DocTitle(i.doc))
	if year, ok := i.doc.IntValue("first_publish_year"); ok {
		return fmt.Sprintf("%s (%d)", title, year)
	}
	return title
}

func (i docItem) FilterValue() string {
	return DocTitle(i.doc)
}

func (i docItem) Description() string {
	if authors := i.doc.StringList("author_name"); len(authors) > 0 {
		return strings.Join(authors, ", ")
	}
	if work, ok := i.doc.StringValue("top_work"); ok {
		return work
	}
	return ""
}

// docType labels a doc by the collection its key points into.
func docType(doc openlibrary.Record) string {
	key := strings.TrimPrefix(DocKey(doc), "/")
	if kind, _, found := strings.Cut(key, "/"); found {
		return kind
	}
	if t, ok := doc.StringValue("type"); ok {
		return t
	}
	return "doc"
}

type itemStyles struct {
	normal        lipgloss.Style
	selected      lipgloss.Style
	typeStyle     lipgloss.Style
	titleStyle    lipgloss.Style
	authorStyle   lipgloss.Style
	metadataStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		typeStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")),
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		authorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
	}
}

type docDelegate struct {
	styles itemStyles
}

func newDelegate() docDelegate {
	return docDelegate{styles: newItemStyles()}
}

func (d docDelegate) Height() int                         { return 4 }
func (d docDelegate) Spacing() int                        { return 1 }
func (d docDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d docDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	doc, ok := item.(docItem)
	if !ok {
		return
	}

	typeLine := d.styles.typeStyle.Render(fmt.Sprintf("[%s] %s", strings.ToUpper(docType(doc.doc)), DocKey(doc.doc)))
	titleLine := d.styles.titleStyle.Render(truncate(doc.Title(), m.Width()-4))
	authorLine := d.styles.authorStyle.Render(truncate(doc.Description(), m.Width()-4))
	metadataLine := d.styles.metadataStyle.Render(formatMetadata(doc.doc, m.Width()-4))

	content := lipgloss.JoinVertical(lipgloss.Left, typeLine, titleLine, authorLine, metadataLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	list   list.Model
	query  string
	result SelectionResult
}

func newModel(query string, items []docItem) *model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:   l,
		query:  query,
		result: SelectionResult{Action: ActionNone},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(docItem); ok {
				m.result = SelectionResult{Action: ActionSelected, Selection: selected.doc}
				return m, tea.Quit
			}
		case "esc", "s":
			m.result = SelectionResult{Action: ActionSkipped}
			return m, tea.Quit
		case "ctrl+c", "q":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(fmt.Sprintf("%d results for: %s", len(m.list.Items()), m.query))
	help := helpStyle.Render("Up/Down navigate | Enter open | s skip | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// Select lets the user pick one search doc. Docs without a key cannot be
// opened and are left out; if none remain the result is ActionSkipped.
func Select(query string, docs []openlibrary.Record) (SelectionResult, error) {
	items := make([]docItem, 0, len(docs))
	for _, doc := range docs {
		if DocKey(doc) != "" {
			items = append(items, docItem{doc: doc})
		}
	}

	if len(items) == 0 {
		return SelectionResult{Action: ActionSkipped}, nil
	}

	finalModel, err := runProgram(newModel(query, items))
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

// formatMetadata joins edition count, language and rating into one line
func formatMetadata(doc openlibrary.Record, availableWidth int) string {
	var parts []string

	if n, ok := doc.IntValue("edition_count"); ok && n > 0 {
		parts = append(parts, pluralize(n, "edition"))
	}
	if n, ok := doc.IntValue("work_count"); ok && n > 0 {
		parts = append(parts, pluralize(n, "work"))
	}
	if langs := doc.StringList("language"); len(langs) > 0 {
		parts = append(parts, strings.ToUpper(strings.Join(langs, ",")))
	}
	if avg, ok := doc["ratings_average"]; ok {
		parts = append(parts, fmt.Sprintf("%v/5", avg))
	}

	if len(parts) == 0 {
		return "No metadata available"
	}

	return truncate(strings.Join(parts, " | "), availableWidth)
}

func pluralize(n int64, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.FormatInt(n, 10) + " " + noun + "s"
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
