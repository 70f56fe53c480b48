// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m codePromptModel, msg tea.Msg) (codePromptModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(codePromptModel)
	require.True(t, ok)
	return model, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestCodePrompt_SubmitUppercasesCode(t *testing.T) {
	m := newCodePromptModel("Guard code for u1", "")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" ab3cd")})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.submitted)
	assert.True(t, isQuit(cmd))
	assert.Equal(t, "AB3CD", m.value())
	assert.Empty(t, m.View())
}

func TestCodePrompt_EmptySubmitShowsError(t *testing.T) {
	m := newCodePromptModel("Guard code for u1", "sent to example.com")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.submitted)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "code is empty")
	assert.Contains(t, m.View(), "sent to example.com")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.NotContains(t, m.View(), "code is empty")
}

func TestCodePrompt_Cancel(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newCodePromptModel("Guard code for u1", "")

		m, cmd := update(t, m, msg)

		assert.True(t, m.cancelled, msg.String())
		assert.True(t, isQuit(cmd), msg.String())
	}
}

func TestCodePrompt_CharLimit(t *testing.T) {
	m := newCodePromptModel("Guard code for u1", "")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ABCDEFGHIJKL")})

	assert.Len(t, m.value(), codeCharLimit)
}
