package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/midbel/cli"
	"github.com/midbel/jsonpath"
	"github.com/midbel/jsonpath/json"
)

var exploreCmd = cli.Command{
	Name:    "explore",
	Summary: "query a json document interactively",
	Handler: &ExploreCmd{},
}

type ExploreCmd struct{}

func (c *ExploreCmd) Run(args []string) error {
	set := flag.NewFlagSet("explore", flag.ContinueOnError)
	if err := set.Parse(args); err != nil {
		return err
	}
	doc, err := parseDocument(set.Arg(0))
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(newExplorer(doc), tea.WithAltScreen()).Run()
	return err
}

var (
	promptStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	countStyle  = lipgloss.NewStyle().Faint(true)
)

type explorer struct {
	doc   json.Value
	input textinput.Model

	results []jsonpath.Result
	err     error
	height  int
}

func newExplorer(doc json.Value) explorer {
	input := textinput.New()
	input.Placeholder = "$.store.book[*].title"
	input.Focus()
	return explorer{
		doc:    doc,
		input:  input,
		height: 24,
	}
}

func (e explorer) Init() tea.Cmd {
	return textinput.Blink
}

func (e explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return e, tea.Quit
		case "enter":
			e.run()
			return e, nil
		}
	case tea.WindowSizeMsg:
		e.height = msg.Height
	}
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return e, cmd
}

func (e *explorer) run() {
	expr := strings.TrimSpace(e.input.Value())
	if expr == "" {
		e.results, e.err = nil, nil
		return
	}
	e.results, e.err = jsonpath.SelectAll(e.doc, expr)
}

func (e explorer) View() string {
	var view strings.Builder
	view.WriteString(promptStyle.Render("query"))
	view.WriteString(" ")
	view.WriteString(e.input.View())
	view.WriteString("\n\n")
	if e.err != nil {
		view.WriteString(errorStyle.Render(e.err.Error()))
		view.WriteString("\n")
		return view.String()
	}
	max := e.height - 4
	if max < 1 {
		max = 1
	}
	for i, res := range e.results {
		if i >= max {
			view.WriteString(countStyle.Render(fmt.Sprintf("... %d more", len(e.results)-max)))
			view.WriteString("\n")
			break
		}
		view.WriteString(pathStyle.Render(res.Path))
		view.WriteString(" = ")
		view.WriteString(json.Text(res.Value))
		view.WriteString("\n")
	}
	view.WriteString("\n")
	view.WriteString(countStyle.Render(fmt.Sprintf("%d result(s) - enter to run, esc to quit", len(e.results))))
	return view.String()
}
