package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/cfgprops/cfgprops"
)

var (
	tuiTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F87AF")).
			Padding(0, 1)

	tuiItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DDDDDD"))

	tuiDetailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	tuiDeprecatedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#626262")).
				Strikethrough(true)

	tuiHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(1, 0)
)

// maxTUICandidates bounds the popup height.
const maxTUICandidates = 12

func tuiCommand() *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Interactively explore completions as you type",
		Flags:  engineFlags(),
		Action: runTUI,
	}
}

func runTUI(_ context.Context, cmd *cli.Command) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return ErrNotATTY
	}

	engine, _, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	input := textinput.New()
	input.Placeholder = "server.port=8080"
	input.Focus()

	m := tuiModel{engine: engine, input: input}
	m.refresh()

	_, err = tea.NewProgram(m).Run()

	return err
}

type tuiModel struct {
	engine *cfgprops.Engine
	input  textinput.Model
	items  []cfgprops.CompletionItem
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		default:
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()

	return m, cmd
}

// refresh re-resolves completions for the current line with the caret at
// the end of the typed text.
func (m *tuiModel) refresh() {
	line := m.input.Value()

	collector := cfgprops.NewCollector()
	m.engine.Resolve(context.Background(), cfgprops.NewDocument(line), len(line), collector)
	m.items = collector.Items()
}

func (m tuiModel) View() string {
	var b []byte

	b = append(b, tuiTitleStyle.Render("cfgprops completion explorer")...)
	b = append(b, '\n', '\n')
	b = append(b, m.input.View()...)
	b = append(b, '\n', '\n')

	shown := m.items
	if len(shown) > maxTUICandidates {
		shown = shown[:maxTUICandidates]
	}

	for _, it := range shown {
		style := tuiItemStyle
		if it.Deprecation != cfgprops.DeprecationNone {
			style = tuiDeprecatedStyle
		}

		row := "  " + style.Render(it.Value)
		if it.Detail != "" {
			row += "  " + tuiDetailStyle.Render(it.Detail)
		}

		b = append(b, row...)
		b = append(b, '\n')
	}

	if hidden := len(m.items) - len(shown); hidden > 0 {
		b = append(b, tuiDetailStyle.Render(fmt.Sprintf("  … and %d more", hidden))...)
		b = append(b, '\n')
	}

	b = append(b, tuiHelpStyle.Render("esc to quit")...)

	return string(b)
}
