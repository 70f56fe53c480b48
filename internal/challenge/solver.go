// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package challenge produces second-factor codes for login challenges.
//
//go:generate mockgen -source=solver.go -destination=../mock/challenge_mock.go -package=mock
package challenge

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/tui"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// Solver answers a login challenge of account. domain is the email domain
// the code was sent to, empty for authenticator codes.
type Solver interface {
	Solve(ctx context.Context, account models.Account, domain string, lastCodeWrong bool) (string, error)
}

// PromptFunc asks the operator for a code.
type PromptFunc func(ctx context.Context, title, hint string) (string, error)

// TerminalPrompt asks on the controlling terminal.
func TerminalPrompt(ctx context.Context, title, hint string) (string, error) {
	return tui.PromptCode(ctx, title, hint)
}

type solver struct {
	clock  clockwork.Clock
	prompt PromptFunc
	logger *logger.Logger

	promptMu sync.Mutex
}

// NewSolver returns a Solver that derives codes from the account shared
// secret and falls back to prompt. A nil prompt disables prompting.
// Prompts of different accounts never overlap.
func NewSolver(clock clockwork.Clock, prompt PromptFunc, log *logger.Logger) Solver {
	return &solver{clock: clock, prompt: prompt, logger: log}
}

func (s *solver) Solve(ctx context.Context, account models.Account, domain string, lastCodeWrong bool) (string, error) {
	log := s.logger.ForAccount(account.Username)

	if account.Secret != "" {
		code, err := GenerateAuthCode(account.Secret, s.clock.Now())
		if err != nil {
			return "", err
		}
		log.Debug().Bool("last_code_wrong", lastCodeWrong).Msg("challenge code derived from shared secret")
		return code, nil
	}

	if s.prompt == nil {
		return "", ErrNoPrompt
	}

	s.promptMu.Lock()
	defer s.promptMu.Unlock()

	title := "Guard code for " + account.Username
	hint := "authenticator app code"
	if domain != "" {
		hint = "code sent to your email at " + domain
	}
	if lastCodeWrong {
		hint += ", the previous code was rejected"
	}

	log.Info().Str("domain", domain).Msg("waiting for challenge code")
	code, err := s.prompt(ctx, title, hint)
	if err != nil {
		return "", fmt.Errorf("error reading challenge code: %w", err)
	}
	return code, nil
}
