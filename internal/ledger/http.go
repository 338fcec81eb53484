package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"ledgerchat/internal/domain"
)

// HTTP talks to a ledger gateway bridge (the contract indexer, or the dev
// daemon) over JSON. All failures are reported as ErrLedgerUnavailable and
// never retried here; callers own the retry policy.
type HTTP struct {
	Base string
	HTTP *http.Client

	// PollInterval paces the event feed between polls. Zero means 2s.
	PollInterval time.Duration
}

// NewHTTP returns a gateway client for the given base URL.
func NewHTTP(base string) *HTTP { return &HTTP{Base: base, HTTP: http.DefaultClient} }

func (c *HTTP) AppendMessage(ctx context.Context, rec domain.MessageRecord) (domain.MessageRecord, error) {
	var out domain.MessageRecord
	if err := c.post(ctx, "/messages", rec, &out); err != nil {
		return domain.MessageRecord{}, err
	}
	return out, nil
}

func (c *HTTP) Messages(ctx context.Context, id domain.ConversationID) ([]domain.MessageRecord, error) {
	var out []domain.MessageRecord
	err := c.getJSON(ctx, "/conversations/"+url.PathEscape(string(id))+"/messages", &out)
	return out, err
}

func (c *HTTP) AppendReaction(ctx context.Context, rec domain.ReactionRecord) error {
	return c.post(ctx, "/reactions", rec, nil)
}

func (c *HTTP) Reactions(ctx context.Context, id domain.ConversationID) ([]domain.ReactionRecord, error) {
	var out []domain.ReactionRecord
	err := c.getJSON(ctx, "/conversations/"+url.PathEscape(string(id))+"/reactions", &out)
	return out, err
}

func (c *HTTP) AppendStatus(ctx context.Context, rec domain.StatusRecord) error {
	return c.post(ctx, "/statuses", rec, nil)
}

func (c *HTTP) Statuses(ctx context.Context, id domain.ConversationID) ([]domain.StatusRecord, error) {
	var out []domain.StatusRecord
	err := c.getJSON(ctx, "/conversations/"+url.PathEscape(string(id))+"/statuses", &out)
	return out, err
}

func (c *HTTP) AppendSupersede(ctx context.Context, rec domain.SupersedeRecord) error {
	return c.post(ctx, "/supersedes", rec, nil)
}

func (c *HTTP) Supersedes(ctx context.Context, id domain.ConversationID) ([]domain.SupersedeRecord, error) {
	var out []domain.SupersedeRecord
	err := c.getJSON(ctx, "/conversations/"+url.PathEscape(string(id))+"/supersedes", &out)
	return out, err
}

func (c *HTTP) PutContact(ctx context.Context, rec domain.ContactRecord) error {
	return c.post(ctx, "/contacts", rec, nil)
}

func (c *HTTP) Contact(ctx context.Context, owner, address domain.Address) (domain.ContactRecord, bool, error) {
	var out domain.ContactRecord
	path := "/contacts/" + url.PathEscape(owner.Canonical()) + "/" + url.PathEscape(address.Canonical())
	found, err := c.getJSONMaybe(ctx, path, &out)
	return out, found, err
}

func (c *HTTP) PublishKey(ctx context.Context, rec domain.PublicKeyRecord) error {
	return c.post(ctx, "/keys", rec, nil)
}

func (c *HTTP) PublicKey(ctx context.Context, address domain.Address) (string, bool, error) {
	var out domain.PublicKeyRecord
	found, err := c.getJSONMaybe(ctx, "/keys/"+url.PathEscape(address.Canonical()), &out)
	if err != nil || !found {
		return "", false, err
	}
	return out.PublicKey, out.PublicKey != "", nil
}

// Subscribe polls the gateway's event feed and dispatches matching events
// until the subscription is cancelled.
func (c *HTTP) Subscribe(kind domain.EventKind, fn func(domain.Event)) (domain.Subscription, error) {
	ctx, cancel := context.WithCancel(context.Background())
	sub := &httpSub{cancel: cancel}

	interval := c.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	go func() {
		var after int
		// Start at the current head so the subscriber sees only new events.
		var head struct {
			Seq int `json:"seq"`
		}
		if err := c.getJSON(ctx, "/events/head", &head); err == nil {
			after = head.Seq
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			var page struct {
				Events []domain.Event `json:"events"`
				Seq    int            `json:"seq"`
			}
			if err := c.getJSON(ctx, "/events?after="+strconv.Itoa(after), &page); err != nil {
				continue // transient; next tick retries the same cursor
			}
			after = page.Seq
			for _, ev := range page.Events {
				if ev.Kind != kind {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				fn(ev)
			}
		}
	}()
	return sub, nil
}

type httpSub struct {
	cancel context.CancelFunc
	once   sync.Once
}

// Cancel stops the polling loop. Safe to call multiple times.
func (s *httpSub) Cancel() { s.once.Do(s.cancel) }

func (c *HTTP) post(ctx context.Context, path string, in, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrLedgerUnavailable, path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post %s: %v", domain.ErrLedgerUnavailable, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: post %s: %s", domain.ErrLedgerUnavailable, path, resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode %s: %v", domain.ErrLedgerUnavailable, path, err)
		}
	}
	return nil
}

func (c *HTTP) getJSON(ctx context.Context, path string, out any) error {
	found, err := c.getJSONMaybe(ctx, path, out)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: get %s: not found", domain.ErrLedgerUnavailable, path)
	}
	return nil
}

// getJSONMaybe treats 404 as absence, not failure.
func (c *HTTP) getJSONMaybe(ctx context.Context, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %v", domain.ErrLedgerUnavailable, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode/100 != 2 {
		return false, fmt.Errorf("%w: get %s: %s", domain.ErrLedgerUnavailable, path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", domain.ErrLedgerUnavailable, path, err)
	}
	return true, nil
}

// Compile-time assertion that HTTP implements domain.Ledger.
var _ domain.Ledger = (*HTTP)(nil)
