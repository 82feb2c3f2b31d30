package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/4nzor/dbrowse/internal/models"
)

const (
	fieldName = iota
	fieldEngine
	fieldHost
	fieldPort
	fieldDatabase
	fieldUser
	fieldPassword
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name", "Engine", "Host", "Port", "Database", "User", "Password",
}

// ConnectionForm collects a new connection descriptor. Invalid input keeps
// the form open with an inline error instead of dismissing it.
type ConnectionForm struct {
	Width  int
	Height int
	Style  lipgloss.Style

	inputs [fieldCount]textinput.Model
	active int
	errMsg string
}

// NewConnectionForm creates the form with sensible starting values.
func NewConnectionForm() *ConnectionForm {
	f := &ConnectionForm{}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 128
		f.inputs[i] = in
	}
	f.inputs[fieldEngine].SetValue("postgres")
	f.inputs[fieldHost].SetValue("localhost")
	f.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	f.inputs[fieldPassword].EchoCharacter = '*'
	f.inputs[fieldName].Focus()
	return f
}

// Update routes key input into the active field.
func (f *ConnectionForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.active], cmd = f.inputs[f.active].Update(msg)
	return cmd
}

// MoveField shifts focus between fields, wrapping at both ends.
func (f *ConnectionForm) MoveField(delta int) {
	f.inputs[f.active].Blur()
	f.active = (f.active + delta + fieldCount) % fieldCount
	f.inputs[f.active].Focus()
}

// SetError shows an inline validation error.
func (f *ConnectionForm) SetError(msg string) { f.errMsg = msg }

// Descriptor validates the fields and builds the connection config. Engine
// must parse, port must be a number (defaulted per engine when blank), and
// the descriptor itself must be complete.
func (f *ConnectionForm) Descriptor() (models.ConnectionConfig, error) {
	engine, err := models.ParseEngineKind(strings.TrimSpace(f.inputs[fieldEngine].Value()))
	if err != nil {
		return models.ConnectionConfig{}, err
	}

	port := engine.DefaultPort()
	if raw := strings.TrimSpace(f.inputs[fieldPort].Value()); raw != "" {
		port, err = strconv.Atoi(raw)
		if err != nil {
			return models.ConnectionConfig{}, fmt.Errorf("port must be a number: %q", raw)
		}
	}

	cfg := models.ConnectionConfig{
		Name:     strings.TrimSpace(f.inputs[fieldName].Value()),
		Engine:   engine,
		Host:     strings.TrimSpace(f.inputs[fieldHost].Value()),
		Port:     port,
		Database: strings.TrimSpace(f.inputs[fieldDatabase].Value()),
		User:     strings.TrimSpace(f.inputs[fieldUser].Value()),
		Password: f.inputs[fieldPassword].Value(),
	}
	if !cfg.Valid() {
		return models.ConnectionConfig{}, fmt.Errorf("incomplete descriptor: name, engine, host and database are required")
	}
	return cfg, nil
}

// View renders the form dialog.
func (f *ConnectionForm) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	b.WriteString(titleStyle.Render("Add Connection"))
	b.WriteString("\n\n")

	for i, in := range f.inputs {
		prefix := "  "
		if i == f.active {
			prefix = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-10s %s\n", prefix, fieldLabels[i]+":", in.View()))
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(f.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("↑/↓: Navigate | Enter: Save | Esc: Cancel\n")

	style := f.Style.
		Width(f.Width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62"))

	return style.Render(b.String())
}
