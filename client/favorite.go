package client

import (
	"context"
	"net/http"
)

type FavoriteResult struct {
	Status     string `json:"status"`
	IsFavorite bool   `json:"is_favorite"`
}

func (c *Client) ToggleFavorite(ctx context.Context, path string) (FavoriteResult, error) {
	var res FavoriteResult
	err := c.doJSON(ctx, http.MethodPost, path, nil, &res)
	return res, err
}
