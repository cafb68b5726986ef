// Package command composes URL building, HTTP calls and pagination into the
// show, list, add, update and delete verbs shared by every resource.
package command

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/faucetdb/ppls/internal/client"
)

// Session is the per-invocation connection to the document service.
type Session struct {
	Hostname string
	Client   *client.Client
	Logger   *slog.Logger
}

// Resource describes one collection endpoint. R is the wire type and T the
// output type produced by Transform.
type Resource[R, T any] struct {
	// Name is the singular noun used in messages, e.g. "tag".
	Name string

	// Path is the collection path, e.g. "/api/tags/".
	Path string

	// Singleton resources such as the profile have no per-id path.
	Singleton bool

	// NameFilter is the query key --name-contains maps to. Defaults to
	// name__icontains.
	NameFilter string

	Transform func(R) T
	Plain     func(T) string
}

// ItemPath returns the path of the object with the given id.
func (r Resource[R, T]) ItemPath(id int) string {
	if r.Singleton {
		return r.Path
	}
	return r.Path + strconv.Itoa(id) + "/"
}

// Label names one object in messages, e.g. "tag 3".
func (r Resource[R, T]) Label(id int) string {
	return fmt.Sprintf("%s %d", r.Name, id)
}

func (r Resource[R, T]) transform(raw R) T {
	if r.Transform != nil {
		return r.Transform(raw)
	}
	var out T
	if v, ok := any(raw).(T); ok {
		out = v
	}
	return out
}

func (r Resource[R, T]) transformAll(raw []R) []T {
	out := make([]T, 0, len(raw))
	for _, item := range raw {
		out = append(out, r.transform(item))
	}
	return out
}

// Identity returns a resource whose wire and output types match.
func Identity[T any](name, path string, plain func(T) string) Resource[T, T] {
	return Resource[T, T]{Name: name, Path: path, Plain: plain}
}

// ListOptions are the flags shared by every list command.
type ListOptions struct {
	Page         client.PageOptions
	Sort         string
	NameContains string

	// Params are extra resource specific filters.
	Params client.Params
}

func (o ListOptions) params(nameFilter string) client.Params {
	var p client.Params
	if s := strings.TrimSpace(o.Sort); s != "" {
		p = p.Set("ordering", s)
	}
	if n := strings.TrimSpace(o.NameContains); n != "" {
		if nameFilter == "" {
			nameFilter = "name__icontains"
		}
		p = p.Set(nameFilter, n)
	}
	p = append(p, o.Params...)
	return append(p, o.Page.Params()...)
}

// Show fetches one object.
func Show[R, T any](ctx context.Context, s *Session, res Resource[R, T], id int) (T, error) {
	var zero T
	u, err := client.BuildURL(s.Hostname, res.ItemPath(id), nil)
	if err != nil {
		return zero, err
	}
	var raw R
	if err := s.Client.GetJSON(ctx, u, &raw); err != nil {
		return zero, err
	}
	return res.transform(raw), nil
}

// List fetches a collection. Every page is walked unless opts bound the
// request to a single page.
func List[R, T any](ctx context.Context, s *Session, res Resource[R, T], opts ListOptions) ([]T, error) {
	if err := opts.Page.Validate(); err != nil {
		return nil, err
	}
	u, err := client.BuildURL(s.Hostname, res.Path, opts.params(res.NameFilter))
	if err != nil {
		return nil, err
	}
	raw, err := client.FetchAll[R](ctx, s.Client, u, opts.Page.AutoPaginate())
	if err != nil {
		return nil, err
	}
	return res.transformAll(raw), nil
}

// Add creates an object from payload.
func Add[R, T any](ctx context.Context, s *Session, res Resource[R, T], payload any) (T, error) {
	var zero T
	if err := validate(payload); err != nil {
		return zero, err
	}
	u, err := client.BuildURL(s.Hostname, res.Path, nil)
	if err != nil {
		return zero, err
	}
	var raw R
	if err := s.Client.PostJSON(ctx, u, payload, &raw); err != nil {
		return zero, err
	}
	return res.transform(raw), nil
}

// Update patches the object with the given id.
func Update[R, T any](ctx context.Context, s *Session, res Resource[R, T], id int, payload any) (T, error) {
	var zero T
	if err := validate(payload); err != nil {
		return zero, err
	}
	u, err := client.BuildURL(s.Hostname, res.ItemPath(id), nil)
	if err != nil {
		return zero, err
	}
	var raw R
	if err := s.Client.PatchJSON(ctx, u, payload, &raw); err != nil {
		return zero, err
	}
	return res.transform(raw), nil
}

// Deleted is the result of a delete whose response had no body.
type Deleted struct {
	Deleted bool `json:"deleted"`
	ID      int  `json:"id"`
}

// Delete removes the object with the given id after confirm agrees. A
// declined prompt returns (nil, false, nil).
func Delete[R, T any](ctx context.Context, s *Session, res Resource[R, T], id int, confirm *Confirmer) (any, bool, error) {
	if confirm != nil {
		ok, err := confirm.Confirm(res.Label(id))
		if err != nil || !ok {
			return nil, false, err
		}
	}
	u, err := client.BuildURL(s.Hostname, res.ItemPath(id), nil)
	if err != nil {
		return nil, false, err
	}
	result, err := s.Client.DeleteJSON(ctx, u)
	if err != nil {
		return nil, false, err
	}
	if result == nil {
		return Deleted{Deleted: true, ID: id}, true, nil
	}
	return result, true, nil
}

type validatable interface {
	Validate() error
}

func validate(payload any) error {
	if v, ok := payload.(validatable); ok {
		return v.Validate()
	}
	return nil
}
