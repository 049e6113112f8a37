package api

import (
	"context"
	"net/http"
	"net/url"

	"lana/internal/categories"
	"lana/internal/core"
)

// CategoryPayload is the write shape for categories.
type CategoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Schedulable bool   `json:"schedulable"`
}

// ListCategories fetches GET /categories/ and normalizes the alias-keyed
// records. Reading categories does not need the query token.
func (c *Client) ListCategories(ctx context.Context) ([]core.Category, error) {
	raw, err := c.request(ctx, http.MethodGet, "/categories/", nil, false)
	if err != nil {
		return nil, err
	}
	return categories.Normalize(decodeRecords(raw)), nil
}

// CreateCategory posts to /categories/. Category mutations require the
// query token.
func (c *Client) CreateCategory(ctx context.Context, p CategoryPayload) error {
	_, err := c.request(ctx, http.MethodPost, "/categories/", p, true)
	return err
}

func (c *Client) UpdateCategory(ctx context.Context, id core.CategoryID, p CategoryPayload) error {
	_, err := c.request(ctx, http.MethodPut, "/categories/"+url.PathEscape(string(id)), p, true)
	return err
}

func (c *Client) DeleteCategory(ctx context.Context, id core.CategoryID) error {
	_, err := c.request(ctx, http.MethodDelete, "/categories/"+url.PathEscape(string(id)), nil, true)
	return err
}
