package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/martinsv/sitetrack/models"
)

// ListFolders returns a project's folders.
func (c *Client) ListFolders(ctx context.Context, projectID string) ([]models.Folder, error) {
	resp, err := c.api.GET("/projects/"+url.PathEscape(projectID)+"/folders").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Send()
	if err != nil {
		return nil, fmt.Errorf("failed to send folder list request: %w", err)
	}

	var out []models.Folder
	if err := parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFolder adds a folder to a project. Names are not required to be
// unique.
func (c *Client) CreateFolder(ctx context.Context, projectID, name string) (models.Folder, error) {
	resp, err := c.api.POST("/projects/"+url.PathEscape(projectID)+"/folders").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Body().AsJSON(map[string]string{"name": name}).
		Send()
	if err != nil {
		return models.Folder{}, fmt.Errorf("failed to send folder create request: %w", err)
	}

	var out models.Folder
	if err := parseResponse(resp, &out); err != nil {
		return models.Folder{}, err
	}
	return out, nil
}

// DeleteFolder removes a folder. Logs keep working, they just lose the
// grouping.
func (c *Client) DeleteFolder(ctx context.Context, folderID string) error {
	resp, err := c.api.DELETE("/folders/"+url.PathEscape(folderID)).
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Send()
	if err != nil {
		return fmt.Errorf("failed to send folder delete request: %w", err)
	}
	return discardResponse(resp)
}
