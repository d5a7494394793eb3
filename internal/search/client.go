package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/session"
	"github.com/chris-regnier/moodlog/internal/storage"
)

// DefaultTimeout bounds a single search request.
const DefaultTimeout = 10 * time.Second

var (
	// ErrQueryFailed means the entry store could not answer. It is distinct
	// from an empty result.
	ErrQueryFailed = errors.New("search failed")

	// ErrTimeout means the store did not answer in time. It matches ErrQueryFailed.
	ErrTimeout = fmt.Errorf("%w: timed out", ErrQueryFailed)

	// ErrSuperseded means a newer request was issued before this one
	// resolved. Its result has been discarded and must not be shown.
	ErrSuperseded = errors.New("search superseded")
)

// Searcher is the read side of the entry store.
type Searcher interface {
	Search(ctx context.Context, q storage.Query) ([]entry.Entry, error)
}

// Page is one page of search results.
type Page struct {
	Entries []entry.Entry
	Offset  int
	HasMore bool
}

// Client executes searches against a store on behalf of the current user.
// It tracks a single current request; any earlier request that resolves
// later is reported as ErrSuperseded. Client is safe for concurrent use.
type Client struct {
	store    Searcher
	identity session.Provider
	timeout  time.Duration
	pageSize int
	logger   *slog.Logger

	generation atomic.Uint64
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithPageSize sets the limit used when a caller passes none.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client reading from store as the user named by identity.
func NewClient(store Searcher, identity session.Provider, opts ...Option) *Client {
	c := &Client{
		store:    store,
		identity: identity,
		timeout:  DefaultTimeout,
		pageSize: DefaultPageSize,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PageSize returns the default page size.
func (c *Client) PageSize() int {
	return c.pageSize
}

// Request is a search tagged with the generation it was issued under.
type Request struct {
	client     *Client
	generation uint64

	Filter Filter
	Offset int
	Limit  int
}

// NewRequest issues a request, superseding every request issued before it.
// The tag is taken synchronously so issue order, not execution order,
// decides which request is current.
func (c *Client) NewRequest(f Filter, offset, limit int) *Request {
	if limit <= 0 {
		limit = c.pageSize
	}
	if offset < 0 {
		offset = 0
	}
	return &Request{
		client:     c,
		generation: c.generation.Add(1),
		Filter:     f,
		Offset:     offset,
		Limit:      limit,
	}
}

// Cancel supersedes any in-flight request without issuing a new one.
func (c *Client) Cancel() {
	c.generation.Add(1)
}

// Search issues and executes a request in one step.
func (c *Client) Search(ctx context.Context, f Filter, offset, limit int) (Page, error) {
	return c.NewRequest(f, offset, limit).Execute(ctx)
}

// Generation returns the tag of this request.
func (r *Request) Generation() uint64 {
	return r.generation
}

// Current reports whether no newer request has been issued.
func (r *Request) Current() bool {
	return r.client.generation.Load() == r.generation
}

type outcome struct {
	entries []entry.Entry
	err     error
}

// Execute runs the request. An empty filter returns an empty page without
// touching the store. A request that is no longer current when it resolves
// returns ErrSuperseded.
func (r *Request) Execute(ctx context.Context) (Page, error) {
	c := r.client
	if r.Filter.IsEmpty() {
		return Page{Entries: []entry.Entry{}, Offset: r.Offset}, nil
	}

	owner, err := c.identity.CurrentUser(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("%w: resolving current user: %v", ErrQueryFailed, err)
	}

	q := BuildQuery(owner, r.Filter, r.Offset, r.Limit)
	q.Limit++ // one extra row tells us whether another page exists

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		entries, err := c.store.Search(ctx, q)
		done <- outcome{entries: entries, err: err}
	}()

	var res outcome
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	if !r.Current() {
		c.logger.Debug("discarding superseded search",
			"generation", r.generation,
			"latest", c.generation.Load())
		return Page{}, ErrSuperseded
	}

	if res.err != nil {
		if errors.Is(res.err, context.DeadlineExceeded) {
			c.logger.Warn("search timed out", "timeout", c.timeout, "generation", r.generation)
			return Page{}, ErrTimeout
		}
		c.logger.Warn("search failed", "error", res.err, "generation", r.generation)
		return Page{}, fmt.Errorf("%w: %v", ErrQueryFailed, res.err)
	}

	page := Page{Entries: res.entries, Offset: r.Offset}
	if page.Entries == nil {
		page.Entries = []entry.Entry{}
	}
	if len(page.Entries) > r.Limit {
		page.Entries = page.Entries[:r.Limit]
		page.HasMore = true
	}
	c.logger.Debug("search resolved",
		"generation", r.generation,
		"results", len(page.Entries),
		"has_more", page.HasMore)
	return page, nil
}
