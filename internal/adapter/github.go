// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
)

const contentsPath = "/repos/{owner}/{repo}/contents/{path}"

type githubObjectAPI struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

type updateRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

type updateResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

// NewGitHubObjectAPI constructs an [ObjectAPI] over the GitHub contents API
// at baseURL, authenticated with a bearer token.
//
// Returns an error if baseURL cannot be parsed as a valid URL.
func NewGitHubObjectAPI(baseURL, token string, timeout time.Duration, log *logger.Logger) (ObjectAPI, error) {
	base, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid object api address: %w", err)
	}

	client := utils.NewHTTPClient(timeout)
	client.
		SetBaseURL(base).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("X-GitHub-Api-Version", "2022-11-28")
	if token != "" {
		client.SetAuthToken(token)
	}

	return &githubObjectAPI{client: client, logger: log}, nil
}

// GetContent implements [ObjectAPI]. It GETs the document at
// /repos/{owner}/{repo}/contents/{path}?ref={branch}.
func (g *githubObjectAPI) GetContent(ctx context.Context, ref ObjectRef) (ObjectContent, error) {
	var out contentResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"owner": ref.Owner, "repo": ref.Repo}).
		SetRawPathParams(map[string]string{"path": escapePath(ref.Path)}).
		SetQueryParam("ref", ref.Branch).
		SetResult(&out).
		Get(contentsPath)
	if err != nil {
		return ObjectContent{}, fmt.Errorf("get content request: %w", mapTransportError(err))
	}
	if err = mapHTTPError(resp); err != nil {
		return ObjectContent{}, fmt.Errorf("get content %s: %w", ref.Key(), err)
	}
	if out.SHA == "" {
		return ObjectContent{}, fmt.Errorf("get content %s: %w: missing sha", ref.Key(), ErrUnexpectedResponse)
	}
	if out.Encoding != "" && out.Encoding != "base64" {
		return ObjectContent{}, fmt.Errorf("get content %s: %w: encoding %q", ref.Key(), ErrUnexpectedResponse, out.Encoding)
	}

	return ObjectContent{Content: out.Content, VersionTag: out.SHA}, nil
}

// CreateOrUpdate implements [ObjectAPI]. It PUTs the document at
// /repos/{owner}/{repo}/contents/{path}.
func (g *githubObjectAPI) CreateOrUpdate(ctx context.Context, ref ObjectRef, content, versionTag, message string) (string, error) {
	var out updateResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"owner": ref.Owner, "repo": ref.Repo}).
		SetRawPathParams(map[string]string{"path": escapePath(ref.Path)}).
		SetBody(updateRequest{
			Message: message,
			Content: content,
			Branch:  ref.Branch,
			SHA:     versionTag,
		}).
		SetResult(&out).
		Put(contentsPath)
	if err != nil {
		return "", fmt.Errorf("update content request: %w", mapTransportError(err))
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("update content %s: %w", ref.Key(), err)
	}
	if out.Content.SHA == "" {
		return "", fmt.Errorf("update content %s: %w: missing sha", ref.Key(), ErrUnexpectedResponse)
	}

	return out.Content.SHA, nil
}

// escapePath escapes every segment of a repository path while keeping the
// separators.
func escapePath(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
