// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const codeCharLimit = 8

// codePromptModel asks for a single challenge code. The program quits on
// enter with a non-empty value, or on esc/ctrl+c with cancelled set.
type codePromptModel struct {
	title string
	hint  string

	input     textinput.Model
	errMsg    string
	submitted bool
	cancelled bool
}

func newCodePromptModel(title, hint string) codePromptModel {
	input := textinput.New()
	input.Placeholder = "code"
	input.CharLimit = codeCharLimit
	input.Width = 20
	input.Focus()

	return codePromptModel{title: title, hint: hint, input: input}
}

func (m codePromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m codePromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.esc), key.Matches(keyMsg, keys.quit):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.enter):
		if m.value() == "" {
			m.errMsg = "code is empty"
			return m, nil
		}
		m.submitted = true
		return m, tea.Quit
	}

	m.errMsg = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m codePromptModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	if m.hint != "" {
		b.WriteString(hintStyle.Render(m.hint))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(m.input.View()))
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter submit  esc cancel"))

	return appStyle.Render(b.String())
}

// value is the trimmed, upper-cased input.
func (m codePromptModel) value() string {
	return strings.ToUpper(strings.TrimSpace(m.input.Value()))
}
