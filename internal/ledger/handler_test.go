package ledger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandlerGetBalances(t *testing.T) {
	handler := NewHandler(newTestService())
	server := httptest.NewServer(handler.Routes())
	defer server.Close()

	resp, err := http.Get(server.URL + "/groups/1")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Success bool                  `json:"success"`
		Data    GroupBalancesResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Success {
		t.Error("expected success response")
	}
	if body.Data.GroupID != 1 {
		t.Errorf("group_id = %d, want 1", body.Data.GroupID)
	}
	if len(body.Data.Balances) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(body.Data.Balances))
	}
	if body.Data.AllSettled {
		t.Error("expected all_settled to be false")
	}
}

func TestHandlerGetSuggestions(t *testing.T) {
	handler := NewHandler(newTestService())
	server := httptest.NewServer(handler.Routes())
	defer server.Close()

	resp, err := http.Get(server.URL + "/groups/1/suggestions")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Data SuggestionsResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Data.Suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(body.Data.Suggestions))
	}
	s := body.Data.Suggestions[0]
	if s.FromName != "Bob" || s.ToName != "Alice" || s.Amount != 15 {
		t.Errorf("unexpected suggestion %+v", s)
	}
}

func TestHandlerGroupNotFound(t *testing.T) {
	handler := NewHandler(newTestService())
	server := httptest.NewServer(handler.Routes())
	defer server.Close()

	resp, err := http.Get(server.URL + "/groups/99")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestHandlerInvalidGroupID(t *testing.T) {
	handler := NewHandler(newTestService())
	server := httptest.NewServer(handler.Routes())
	defer server.Close()

	resp, err := http.Get(server.URL + "/groups/abc/details")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
