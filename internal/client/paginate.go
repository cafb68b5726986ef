package client

import (
	"context"
	"iter"
	"math"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AutoPageSize is requested when walking every page so that the service
// returns as much as it allows per round trip.
const AutoPageSize = math.MaxInt32

// Page is the wire shape of every collection endpoint.
type Page[T any] struct {
	Results []T     `json:"results"`
	Next    *string `json:"next"`
}

// PageOptions are the user supplied page bounds. Nil means the flag was not
// passed.
type PageOptions struct {
	Page     *int `json:"page"`
	PageSize *int `json:"page_size"`
}

// AutoPaginate reports whether every page should be fetched. Pagination is
// opt-out: it stops only when the caller asked for a specific page.
func (o PageOptions) AutoPaginate() bool {
	return o.Page == nil && o.PageSize == nil
}

// Validate checks that explicit bounds are positive and given together.
func (o PageOptions) Validate() error {
	positive := []validation.Rule{
		validation.Required.Error("must be 1 or greater"),
		validation.Min(1).Error("must be 1 or greater"),
	}
	return validation.ValidateStruct(&o,
		validation.Field(&o.Page,
			validation.When(o.Page != nil, positive...),
			validation.When(o.Page == nil && o.PageSize != nil, validation.NotNil.Error("is required when page_size is set")),
		),
		validation.Field(&o.PageSize,
			validation.When(o.PageSize != nil, positive...),
			validation.When(o.PageSize == nil && o.Page != nil, validation.NotNil.Error("is required when page is set")),
		),
	)
}

// Params returns the page query parameters to send.
func (o PageOptions) Params() Params {
	if o.AutoPaginate() {
		return Params{{Key: "page_size", Value: AutoPageSize}}
	}
	return Params{
		{Key: "page", Value: o.Page},
		{Key: "page_size", Value: o.PageSize},
	}
}

// Walk fetches start and, when autoPaginate is set, every page linked by
// "next", handing each item to yield in service order. Page n+1 is only
// requested after page n has been fully read. Returning false from yield
// stops the walk without error.
func Walk[T any](ctx context.Context, c *Client, start *url.URL, autoPaginate bool, yield func(T) bool) error {
	current := *start
	for page := 1; ; page++ {
		var p Page[T]
		if err := c.GetJSON(ctx, &current, &p); err != nil {
			return err
		}
		c.logger.Debug("fetched page", "page", page, "items", len(p.Results), "url", current.String())

		for _, item := range p.Results {
			if !yield(item) {
				return nil
			}
		}

		if !autoPaginate || p.Next == nil || strings.TrimSpace(*p.Next) == "" {
			return nil
		}

		next, err := NextURL(&current, *p.Next)
		if err != nil {
			return err
		}
		current = *next
	}
}

// FetchAll collects every item Walk produces.
func FetchAll[T any](ctx context.Context, c *Client, start *url.URL, autoPaginate bool) ([]T, error) {
	results := []T{}
	err := Walk(ctx, c, start, autoPaginate, func(item T) bool {
		results = append(results, item)
		return true
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Iterate yields items one at a time. Ranging over the sequence again
// re-issues the whole request chain. A failure is yielded once as the
// final element.
func Iterate[T any](ctx context.Context, c *Client, start *url.URL, autoPaginate bool) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		stopped := false
		err := Walk(ctx, c, start, autoPaginate, func(item T) bool {
			if !yield(item, nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			var zero T
			yield(zero, err)
		}
	}
}

// NextURL resolves a next link against the page it came from. A link that
// points at the same host over plain http while the current page was
// fetched over https is rewritten back to the current scheme and port.
func NextURL(current *url.URL, next string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(next))
	if err != nil {
		return nil, &PaginationError{Next: next, Err: err}
	}
	resolved := current.ResolveReference(ref)
	if resolved.Host == "" {
		return nil, &PaginationError{Next: next}
	}

	if current.Scheme == "https" && resolved.Scheme == "http" &&
		strings.EqualFold(current.Hostname(), resolved.Hostname()) {
		resolved.Scheme = current.Scheme
		resolved.Host = current.Host
	}
	return resolved, nil
}
