package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/flexidiet/internal/model"
)

const defaultEndpoint = "https://api.postmarkapp.com/email"

var ErrNotConfigured = errors.New("email client not configured: missing server token")

type Client struct {
	serverToken string
	fromEmail   string
	endpoint    string
	httpClient  *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func NewClient(serverToken, fromEmail string, opts ...Option) *Client {
	c := &Client{
		serverToken: serverToken,
		fromEmail:   fromEmail,
		endpoint:    defaultEndpoint,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the server token is set.
func (c *Client) Configured() bool {
	return c.serverToken != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
	Tag      string `json:"Tag,omitempty"`
}

// SendIngredientRequest tells the admin that a recipe author could not find
// an ingredient in the catalog.
func (c *Client) SendIngredientRequest(ctx context.Context, to, ingredient, recipeName, reportedBy string) error {
	if recipeName == "" {
		recipeName = "(unnamed recipe)"
	}
	textBody := fmt.Sprintf(
		"A user has requested a new ingredient.\n\nIngredient: %s\nRecipe: %s\nReported by: %s\n",
		ingredient, recipeName, reportedBy,
	)
	htmlBody := fmt.Sprintf(
		`<p>A user has requested a new ingredient.</p><ul><li><strong>Ingredient:</strong> %s</li><li><strong>Recipe:</strong> %s</li><li><strong>Reported by:</strong> %s</li></ul>`,
		html.EscapeString(ingredient), html.EscapeString(recipeName), html.EscapeString(reportedBy),
	)
	return c.send(ctx, postmarkEmail{
		To:       to,
		Subject:  "New Ingredient Request",
		HtmlBody: htmlBody,
		TextBody: textBody,
		Tag:      "ingredient-request",
	})
}

// SendGroceryList mails list with its categories in the given order.
func (c *Client) SendGroceryList(ctx context.Context, to string, list *model.GroceryList, order []string) error {
	var text, body strings.Builder
	fmt.Fprintf(&text, "Grocery list for the week of %s\n", list.WeekStartDate)
	fmt.Fprintf(&body, "<h1>Grocery list for the week of %s</h1>", html.EscapeString(list.WeekStartDate))

	for _, category := range order {
		items := list.Categories[category]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&text, "\n%s\n", category)
		fmt.Fprintf(&body, "<h2>%s</h2><ul>", html.EscapeString(category))
		for _, item := range items {
			line := itemLine(item)
			box := "[ ]"
			if item.Checked {
				box = "[x]"
			}
			fmt.Fprintf(&text, "%s %s\n", box, line)
			if item.Checked {
				fmt.Fprintf(&body, "<li><s>%s</s></li>", html.EscapeString(line))
			} else {
				fmt.Fprintf(&body, "<li>%s</li>", html.EscapeString(line))
			}
		}
		body.WriteString("</ul>")
	}

	return c.send(ctx, postmarkEmail{
		To:       to,
		Subject:  fmt.Sprintf("Your grocery list (%s)", list.WeekStartDate),
		HtmlBody: body.String(),
		TextBody: text.String(),
		Tag:      "grocery-list",
	})
}

func itemLine(item model.ConsolidatedItem) string {
	if !item.ShowQuantity || item.Quantity == "" {
		return item.Name
	}
	return strings.TrimSpace(item.Quantity+" "+item.Unit) + " " + item.Name
}

func (c *Client) send(ctx context.Context, payload postmarkEmail) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	payload.From = c.fromEmail

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("postmark API error: status %d", resp.StatusCode)
	}

	return nil
}
