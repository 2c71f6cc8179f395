package deckapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/deck"
)

// DefaultTimeout bounds every request made by a Client.
const DefaultTimeout = 5 * time.Second

// ErrMalformedResponse is returned when the service answers with a body that
// does not match the protocol.
var ErrMalformedResponse = errors.New("malformed card-supply response")

// Client talks to a card-supply service. It implements deck.Remote.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

var _ deck.Remote = (*Client)(nil)

// NewClient creates a client for the service rooted at baseURL
func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.WithPrefix("deckapi"),
	}
}

// NewDeck opens a new shoe of decks*52 cards on the service.
func (c *Client) NewDeck(ctx context.Context, decks int, shuffle bool) (deck.Session, error) {
	q := url.Values{}
	q.Set("deck_count", strconv.Itoa(decks))
	if shuffle {
		q.Set("shuffle", "true")
	}

	var resp NewDeckResponse
	if err := c.get(ctx, "/new", q, &resp); err != nil {
		return deck.Session{}, err
	}
	if resp.DeckID == "" {
		return deck.Session{}, fmt.Errorf("%w: missing deck_id", ErrMalformedResponse)
	}
	c.logger.Debug("Opened deck", "id", resp.DeckID, "remaining", resp.Remaining, "shuffled", resp.Shuffled)
	return deck.Session{ID: resp.DeckID, Remaining: resp.Remaining, Shuffled: resp.Shuffled}, nil
}

// Draw takes one card from the deck. ok is false when the service has no cards.
func (c *Client) Draw(ctx context.Context, id string) (deck.Card, bool, error) {
	q := url.Values{}
	q.Set("count", "1")

	var resp DrawResponse
	if err := c.get(ctx, "/"+url.PathEscape(id)+"/draw", q, &resp); err != nil {
		return deck.Card{}, false, err
	}
	if len(resp.Cards) == 0 {
		return deck.Card{}, false, nil
	}
	card, err := resp.Cards[0].ToDeck()
	if err != nil {
		return deck.Card{}, false, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return card, true, nil
}

// Shuffle asks the service to reshuffle the deck
func (c *Client) Shuffle(ctx context.Context, id string) error {
	var resp ShuffleResponse
	return c.get(ctx, "/"+url.PathEscape(id)+"/shuffle", nil, &resp)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e ErrorResponse
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, e.Error)
		}
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
