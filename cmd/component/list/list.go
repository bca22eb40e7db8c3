package list

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var docStyle = lipgloss.NewStyle().Margin(3, 3)

type Item struct {
	TitleText       string
	DescriptionText string
}

var _ list.DefaultItem = Item{}

func (i Item) Title() string       { return i.TitleText }
func (i Item) Description() string { return i.DescriptionText }
func (i Item) FilterValue() string {
	return strings.Join([]string{i.TitleText, i.DescriptionText}, " ")
}

type Model struct {
	list list.Model
}

func NewModelWithDelegate(items []Item, title string, delegate list.ItemDelegate) Model {
	var listItems []list.Item
	for _, i := range items {
		listItems = append(listItems, i)
	}

	m := Model{
		list: list.New(listItems, delegate, 0, 0),
	}
	m.list.Title = title

	return m
}

func NewModel(items []Item, title string) Model {
	return NewModelWithDelegate(items, title, list.NewDefaultDelegate())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return docStyle.Render(m.list.View())
}
