package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukerupert/flexidiet/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-token", "noreply@example.com")
	client.httpClient = &http.Client{Transport: &rewriteTransport{base: http.DefaultTransport, target: server.URL}}
	return client
}

func TestSendIngredientRequest(t *testing.T) {
	var received postmarkEmail
	var gotToken string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Postmark-Server-Token")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"MessageID": "test-id"}`))
	})

	err := client.SendIngredientRequest(context.Background(), "admin@example.com", "dragonfruit", "Smoothie <Bowl>", "sam@example.com")
	if err != nil {
		t.Fatalf("send ingredient request: %v", err)
	}

	if gotToken != "test-token" {
		t.Errorf("server token = %q, want %q", gotToken, "test-token")
	}
	if received.To != "admin@example.com" {
		t.Errorf("To = %q, want %q", received.To, "admin@example.com")
	}
	if received.From != "noreply@example.com" {
		t.Errorf("From = %q, want %q", received.From, "noreply@example.com")
	}
	if received.Subject != "New Ingredient Request" {
		t.Errorf("Subject = %q, want %q", received.Subject, "New Ingredient Request")
	}
	if !strings.Contains(received.TextBody, "Ingredient: dragonfruit") {
		t.Errorf("TextBody missing ingredient: %q", received.TextBody)
	}
	if !strings.Contains(received.HtmlBody, "Smoothie &lt;Bowl&gt;") {
		t.Errorf("HtmlBody should escape recipe name: %q", received.HtmlBody)
	}
}

func TestSendGroceryList(t *testing.T) {
	var received postmarkEmail
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	})

	list := &model.GroceryList{
		WeekStartDate: "2026-10-11",
		Categories: model.Categories{
			"Pantry Staples": {{Name: "salt", Checked: true}},
			"Meat & Seafood": {{Name: "chicken breast", Quantity: "500", Unit: "g", ShowQuantity: true}},
			"Frozen Foods":   {},
		},
	}
	err := client.SendGroceryList(context.Background(), "sam@example.com", list, []string{"Pantry Staples", "Frozen Foods", "Meat & Seafood"})
	if err != nil {
		t.Fatalf("send grocery list: %v", err)
	}

	if received.Subject != "Your grocery list (2026-10-11)" {
		t.Errorf("Subject = %q", received.Subject)
	}
	want := "Grocery list for the week of 2026-10-11\n\nPantry Staples\n[x] salt\n\nMeat & Seafood\n[ ] 500 g chicken breast\n"
	if received.TextBody != want {
		t.Errorf("TextBody = %q, want %q", received.TextBody, want)
	}
	if strings.Contains(received.TextBody, "Frozen Foods") {
		t.Error("empty categories should be skipped")
	}
	if !strings.Contains(received.HtmlBody, "<s>salt</s>") {
		t.Errorf("checked items should be struck through: %q", received.HtmlBody)
	}
}

func TestSendNotConfigured(t *testing.T) {
	client := NewClient("", "noreply@example.com")

	err := client.SendIngredientRequest(context.Background(), "admin@example.com", "sumac", "", "sam@example.com")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestSendAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	err := client.SendIngredientRequest(context.Background(), "admin@example.com", "sumac", "", "sam@example.com")
	if err == nil {
		t.Fatal("expected error for API failure")
	}
}

func TestSendCancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := client.SendIngredientRequest(ctx, "admin@example.com", "sumac", "", "sam@example.com"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestConfigured(t *testing.T) {
	c1 := NewClient("token", "from@test.com")
	if !c1.Configured() {
		t.Error("expected Configured() = true")
	}

	c2 := NewClient("", "from@test.com")
	if c2.Configured() {
		t.Error("expected Configured() = false")
	}
}

// rewriteTransport redirects all requests to a test server URL.
type rewriteTransport struct {
	base   http.RoundTripper
	target string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.target[len("http://"):]
	return t.base.RoundTrip(req)
}
