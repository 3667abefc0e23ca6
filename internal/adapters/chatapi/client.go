// Package chatapi talks to the conversational planner endpoints the front end
// calls (/api/chat and /api/summarize).
package chatapi

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"tripwise/internal/adapters/observability"
	"tripwise/internal/domain"
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("chat API base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 60 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- wire types ----

type chatRequest struct {
	Message             string               `json:"message"`
	ConversationHistory []domain.ChatMessage `json:"conversationHistory"`
}

type chatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

type summarizeRequest struct {
	ConversationHistory []domain.ChatMessage `json:"conversationHistory"`
}

type summarizeResponse struct {
	Success     bool                      `json:"success"`
	Preferences *domain.TravelPreferences `json:"preferences"`
	TripPlans   []domain.GeneratedPlan    `json:"tripPlans"`
	Error       string                    `json:"error,omitempty"`
}

// ---- Public API ----

func (c *Client) Chat(ctx context.Context, message string, history []domain.ChatMessage) (domain.ChatReply, error) {
	if history == nil {
		history = []domain.ChatMessage{}
	}
	var out chatResponse
	if err := c.post(ctx, "chat", chatRequest{Message: message, ConversationHistory: history}, &out); err != nil {
		return domain.ChatReply{}, err
	}
	if !out.Success {
		return domain.ChatReply{}, unsuccessful("chat", out.Error)
	}
	return domain.ChatReply{Response: out.Response}, nil
}

func (c *Client) Summarize(ctx context.Context, history []domain.ChatMessage) (domain.Handoff, error) {
	var out summarizeResponse
	if err := c.post(ctx, "summarize", summarizeRequest{ConversationHistory: history}, &out); err != nil {
		return domain.Handoff{}, err
	}
	if !out.Success {
		return domain.Handoff{}, unsuccessful("summarize", out.Error)
	}
	return domain.Handoff{Preferences: out.Preferences, Plans: out.TripPlans}, nil
}

// ---- Internals ----

var (
	ErrUnsuccessful = errors.New("chatapi: endpoint reported failure")
	ErrUnauthorized = errors.New("chatapi: unauthorized")
)

func unsuccessful(endpoint, detail string) error {
	if detail == "" {
		return fmt.Errorf("%s: %w", endpoint, ErrUnsuccessful)
	}
	return fmt.Errorf("%s: %w: %s", endpoint, ErrUnsuccessful, detail)
}

// post sends a JSON body with client-side rate limiting and retries, then
// decodes the response into out. Retries on 429 and transient 5xx, honoring
// Retry-After when provided.
func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	url := c.base + "/" + endpoint
	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("Authorization", "Bearer "+c.key)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "tripwise/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("chatapi", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			log.Debug().Err(err).Str("endpoint", endpoint).Str("err_type", observability.LabelErr(err)).
				Int("attempt", i+1).Msg("chat API request failed")
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("chatapi", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
