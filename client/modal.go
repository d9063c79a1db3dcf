package client

import (
	"context"
	"net/http"
	"net/url"

	"radiochild/repwizard"
)

// OpenModal fetches the form fragment for a create or edit modal.
func (c *Client) OpenModal(ctx context.Context, path string) (repwizard.ModalResponse, error) {
	var resp repwizard.ModalResponse
	err := c.doJSON(ctx, http.MethodGet, path, nil, &resp)
	return resp, err
}

// SubmitModal posts a modal form. A response with FormIsValid false carries
// the re-rendered form in HTMLForm.
func (c *Client) SubmitModal(ctx context.Context, path string, form url.Values) (repwizard.ModalResponse, error) {
	var resp repwizard.ModalResponse
	err := c.doJSON(ctx, http.MethodPost, path, form, &resp)
	if err != nil {
		return resp, err
	}
	if !resp.FormIsValid {
		c.logger.Debugf("modal form at %s rejected", path)
	}
	return resp, nil
}
