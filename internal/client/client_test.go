package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"costwise/internal/types"
)

func testClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		token:   "token",
		http: &http.Client{
			Timeout: 2 * time.Second,
		},
	}
}

func TestClientCreateRecipeSendsPayload(t *testing.T) {
	var (
		seenMethod string
		seenPath   string
		seenAuth   string
		seenBody   map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenMethod = r.Method
		seenPath = r.URL.Path
		seenAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&seenBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"rec-1","kind":"recipe","name":"Carbonara","updated_at":"2026-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	entity, err := c.CreateRecipe(context.Background(), types.RecipePayload{
		Name:     "Carbonara",
		Servings: 4,
		Ingredients: []types.PayloadIngredient{
			{IngredientID: 1, Quantity: 2, Unit: "kg"},
		},
	})
	if err != nil {
		t.Fatalf("CreateRecipe error: %v", err)
	}
	if entity.ID != "rec-1" || entity.Kind != types.KindRecipe {
		t.Fatalf("unexpected entity: %#v", entity)
	}
	if seenMethod != http.MethodPost {
		t.Fatalf("expected POST method, got %s", seenMethod)
	}
	if seenPath != "/v1/recipes" {
		t.Fatalf("unexpected path: %s", seenPath)
	}
	if seenAuth != "Bearer token" {
		t.Fatalf("unexpected authorization header: %q", seenAuth)
	}
	if got, ok := seenBody["servings"].(float64); !ok || got != 4 {
		t.Fatalf("expected servings 4, got %#v", seenBody["servings"])
	}
	lines, ok := seenBody["ingredients"].([]any)
	if !ok || len(lines) != 1 {
		t.Fatalf("expected one ingredient line, got %#v", seenBody["ingredients"])
	}
}

func TestClientUpdateMenuItemUsesPut(t *testing.T) {
	var (
		seenMethod string
		seenPath   string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenMethod = r.Method
		seenPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"mi-9","kind":"menu-item","name":"Carbonara","updated_at":"2026-01-01T00:00:00Z"}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	entity, err := c.UpdateMenuItem(context.Background(), "mi-9", types.MenuItemPayload{
		Name: "Carbonara", Servings: 2, Category: "mains", Price: 14,
	})
	if err != nil {
		t.Fatalf("UpdateMenuItem error: %v", err)
	}
	if entity.ID != "mi-9" {
		t.Fatalf("unexpected entity: %#v", entity)
	}
	if seenMethod != http.MethodPut {
		t.Fatalf("expected PUT method, got %s", seenMethod)
	}
	if seenPath != "/v1/menu-items/mi-9" {
		t.Fatalf("unexpected path: %s", seenPath)
	}
}

func TestClientUpdateRejectsBlankID(t *testing.T) {
	c := &Client{}
	if _, err := c.UpdateRecipe(context.Background(), "   ", types.RecipePayload{}); err == nil {
		t.Fatalf("expected blank recipe id to fail")
	}
	if _, err := c.UpdateMenuItem(context.Background(), "", types.MenuItemPayload{}); err == nil {
		t.Fatalf("expected blank menu item id to fail")
	}
}

func TestClientListIngredients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/ingredients" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ingredients":[{"id":1,"name":"Eggs","unit":"unit","unit_cost":0.4}]}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	ingredients, err := c.ListIngredients(context.Background())
	if err != nil {
		t.Fatalf("ListIngredients error: %v", err)
	}
	if len(ingredients) != 1 || ingredients[0].Name != "Eggs" || ingredients[0].UnitCost != 0.4 {
		t.Fatalf("unexpected ingredients: %#v", ingredients)
	}
}

func TestClientDecodesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"name already taken"}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.CreateRecipe(context.Background(), types.RecipePayload{Name: "Dup", Servings: 1})
	if err == nil {
		t.Fatalf("expected an error")
	}
	apiErr := AsAPIError(err)
	if apiErr == nil {
		t.Fatalf("expected an APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.Message != "name already taken" {
		t.Fatalf("unexpected api error: %#v", apiErr)
	}
}

func TestClientMissingTokenFailsBeforeRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	c := &Client{baseURL: server.URL, http: &http.Client{Timeout: time.Second}}
	_, err := c.ListIngredients(context.Background())
	if err == nil {
		t.Fatalf("expected missing token error")
	}
	if errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected context error: %v", err)
	}
	if requests != 0 {
		t.Fatalf("request must not be sent without a token, saw %d", requests)
	}
}
