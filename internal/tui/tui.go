// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui renders the interactive terminal prompts of the fleet.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrPromptCancelled = errors.New("prompt cancelled")

// PromptCode asks the operator for a challenge code and blocks until it is
// submitted, the prompt is cancelled or ctx is done. Extra program options
// (input, output) are passed to the underlying Bubble Tea program.
func PromptCode(ctx context.Context, title, hint string, opts ...tea.ProgramOption) (string, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)

	final, err := tea.NewProgram(newCodePromptModel(title, hint), opts...).Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}

	result, ok := final.(codePromptModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if result.cancelled {
		return "", ErrPromptCancelled
	}

	return result.value(), nil
}
