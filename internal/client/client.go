package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"costwise/internal/config"
	"costwise/internal/types"
)

// Client talks to the restaurant management API. It satisfies
// wizard.Gateway, so a wizard session can commit through it directly.
type Client struct {
	baseURL   string
	tokenPath string
	token     string
	http      *http.Client
}

func New(cfg config.Config) (*Client, error) {
	tokenPath, err := cfg.ResolveTokenPath()
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   cfg.ServerBaseURL(),
		tokenPath: tokenPath,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	_ = c.loadToken()
	return c, nil
}

func NewWithBaseURL(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListIngredients(ctx context.Context) ([]types.IngredientSummary, error) {
	var resp IngredientsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/ingredients", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Ingredients, nil
}

func (c *Client) CreateRecipe(ctx context.Context, payload types.RecipePayload) (types.Entity, error) {
	var entity types.Entity
	if err := c.doJSON(ctx, http.MethodPost, "/v1/recipes", payload, true, &entity); err != nil {
		return types.Entity{}, err
	}
	return entity, nil
}

func (c *Client) UpdateRecipe(ctx context.Context, id string, payload types.RecipePayload) (types.Entity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.Entity{}, errors.New("recipe id is required")
	}
	var entity types.Entity
	if err := c.doJSON(ctx, http.MethodPut, "/v1/recipes/"+id, payload, true, &entity); err != nil {
		return types.Entity{}, err
	}
	return entity, nil
}

func (c *Client) CreateMenuItem(ctx context.Context, payload types.MenuItemPayload) (types.Entity, error) {
	var entity types.Entity
	if err := c.doJSON(ctx, http.MethodPost, "/v1/menu-items", payload, true, &entity); err != nil {
		return types.Entity{}, err
	}
	return entity, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, id string, payload types.MenuItemPayload) (types.Entity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.Entity{}, errors.New("menu item id is required")
	}
	var entity types.Entity
	if err := c.doJSON(ctx, http.MethodPut, "/v1/menu-items/"+id, payload, true, &entity); err != nil {
		return types.Entity{}, err
	}
	return entity, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, requireAuth bool, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requireAuth {
		if err := c.ensureToken(); err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	httpClient := c.http
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) ensureToken() error {
	if strings.TrimSpace(c.token) == "" {
		if err := c.loadToken(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.token) == "" {
		return errors.New("api token not found; run costwise login first")
	}
	return nil
}

func (c *Client) loadToken() error {
	if strings.TrimSpace(c.tokenPath) == "" {
		return nil
	}
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.token = ""
			return nil
		}
		return err
	}
	c.token = strings.TrimSpace(string(data))
	return nil
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
