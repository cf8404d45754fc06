package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://graph.facebook.com/v20.0"

// Client talks to the Meta Graph API lead-ads endpoints. Page and form
// listing take the user token; lead reads take the page token.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("meta request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("meta API error: %s", apiErr.Error.Message)
		}
		return fmt.Errorf("meta API error: %d - %s", resp.StatusCode, string(body))
	}

	return json.Unmarshal(body, out)
}

// ValidateToken resolves the profile behind a user access token.
func (c *Client) ValidateToken(ctx context.Context, token string) (*UserProfile, error) {
	q := url.Values{"access_token": {token}}

	var profile UserProfile
	if err := c.get(ctx, "/me", q, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetPages lists the pages the token owner manages, with their page tokens.
func (c *Client) GetPages(ctx context.Context, userToken string) ([]Page, error) {
	q := url.Values{
		"fields":       {"id,name,access_token"},
		"access_token": {userToken},
	}

	var resp struct {
		Data []Page `json:"data"`
	}
	if err := c.get(ctx, "/me/accounts", q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetForms lists the lead-gen forms of a page.
func (c *Client) GetForms(ctx context.Context, pageID, pageToken string) ([]Form, error) {
	q := url.Values{"access_token": {pageToken}}

	var resp struct {
		Data []Form `json:"data"`
	}
	if err := c.get(ctx, "/"+pageID+"/leadgen_forms", q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetLeads fetches the submitted leads of a form.
func (c *Client) GetLeads(ctx context.Context, formID, pageToken string) ([]Lead, error) {
	q := url.Values{
		"fields":       {"id,created_time,field_data"},
		"access_token": {pageToken},
	}

	var resp struct {
		Data []Lead `json:"data"`
	}
	if err := c.get(ctx, "/"+formID+"/leads", q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
