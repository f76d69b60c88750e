package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/martinsv/sitetrack/models"
)

// ListProjects returns every project visible to the current user.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	resp, err := c.api.GET("/projects").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Send()
	if err != nil {
		return nil, fmt.Errorf("failed to send project list request: %w", err)
	}

	var out []models.Project
	if err := parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProject fetches one project by id.
func (c *Client) GetProject(ctx context.Context, id string) (models.Project, error) {
	resp, err := c.api.GET("/projects/"+url.PathEscape(id)).
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Send()
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to send project request: %w", err)
	}

	var out models.Project
	if err := parseResponse(resp, &out); err != nil {
		return models.Project{}, err
	}
	return out, nil
}

// CreateProject creates a project and returns the stored record.
func (c *Client) CreateProject(ctx context.Context, draft models.ProjectDraft) (models.Project, error) {
	resp, err := c.api.POST("/projects").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Body().AsJSON(draft).
		Send()
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to send project create request: %w", err)
	}

	var out models.Project
	if err := parseResponse(resp, &out); err != nil {
		return models.Project{}, err
	}
	return out, nil
}

// UpdateProject replaces a project's editable fields.
func (c *Client) UpdateProject(ctx context.Context, id string, draft models.ProjectDraft) (models.Project, error) {
	resp, err := c.api.PUT("/projects/"+url.PathEscape(id)).
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Body().AsJSON(draft).
		Send()
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to send project update request: %w", err)
	}

	var out models.Project
	if err := parseResponse(resp, &out); err != nil {
		return models.Project{}, err
	}
	return out, nil
}

// ArchiveProject flags a project archived without touching its other fields.
func (c *Client) ArchiveProject(ctx context.Context, id string) (models.Project, error) {
	resp, err := c.api.PATCH("/projects/"+url.PathEscape(id)+"/archive").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Body().AsJSON(struct{}{}).
		Send()
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to send project archive request: %w", err)
	}

	var out models.Project
	if err := parseResponse(resp, &out); err != nil {
		return models.Project{}, err
	}
	return out, nil
}

// DeleteProject removes a project and, server-side, everything under it.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	resp, err := c.api.DELETE("/projects/"+url.PathEscape(id)).
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Send()
	if err != nil {
		return fmt.Errorf("failed to send project delete request: %w", err)
	}
	return discardResponse(resp)
}

// ReportURL builds the daily-report URL for sharing, omitting absent range
// bounds.
func (c *Client) ReportURL(projectID, from, to string) string {
	params := url.Values{}
	if from != "" {
		params.Set("from", from)
	}
	if to != "" {
		params.Set("to", to)
	}
	u := fmt.Sprintf("%s/projects/%s/reports/daily", c.baseURL, url.PathEscape(projectID))
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}
