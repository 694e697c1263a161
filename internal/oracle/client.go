// internal/oracle/client.go
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jason-s-yu/memoria/internal/game"
	"github.com/jason-s-yu/memoria/internal/models"
)

var (
	ErrDisabled    = errors.New("remote move service disabled")
	ErrTransport   = errors.New("remote move service unreachable")
	ErrStatus      = errors.New("remote move service returned an error status")
	ErrMalformed   = errors.New("remote move response malformed")
	ErrInvalidMove = errors.New("remote move names ineligible cards")
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 64 << 10

var validate = validator.New()

// Client asks a remote service which two cards the opponent should flip.
type Client struct {
	URL        string
	Enabled    bool
	HTTPClient *http.Client
}

// NewClient returns a client posting to url. timeout caps each request on top of the caller's context.
func NewClient(url string, enabled bool, timeout time.Duration) *Client {
	return &Client{
		URL:        url,
		Enabled:    enabled,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// SuggestMove posts {"state": snap} and returns the two suggested positions.
// Every failure wraps one of the package's sentinel errors.
func (c *Client) SuggestMove(ctx context.Context, snap models.Snapshot) (int, int, error) {
	if !c.Enabled || c.URL == "" {
		return 0, 0, ErrDisabled
	}

	body, err := json.Marshal(models.MoveRequest{State: snap})
	if err != nil {
		return 0, 0, fmt.Errorf("%w: encode request: %v", ErrMalformed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return 0, 0, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	var move models.MoveResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&move); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := validate.Struct(move); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	a, b := move.Cards[0], move.Cards[1]
	if err := game.ValidateSuggestion(snap, a, b); err != nil {
		return 0, 0, fmt.Errorf("%w: [%d %d]: %v", ErrInvalidMove, a, b, err)
	}
	return a, b, nil
}
