package gateway

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pagination"
)

// ListQuery describes one list fetch.
type ListQuery struct {
	Filters map[string]string // parent scope, e.g. {"cluster_id": "7"}
	Page    int
	Limit   int
	Search  string
}

// params returns the query parameters, skipping every empty value.
func (q ListQuery) params() []param {
	var out []param
	if q.Page > 0 {
		out = append(out, param{key: "page", value: strconv.Itoa(q.Page)})
	}
	if q.Limit > 0 {
		out = append(out, param{key: "limit", value: strconv.Itoa(q.Limit)})
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		out = append(out, param{key: "search", value: s})
	}

	keys := make([]string, 0, len(q.Filters))
	for k, v := range q.Filters {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, param{key: k, value: strings.TrimSpace(q.Filters[k])})
	}
	return out
}

// Resource is the gateway for one entity path, e.g. "cluster".
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource binds an entity path to a client.
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: strings.Trim(path, "/")}
}

// Path returns the entity path.
func (r *Resource[T]) Path() string {
	return r.path
}

func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// List fetches one page of the collection.
func (r *Resource[T]) List(ctx context.Context, q ListQuery) (Page[T], error) {
	resp, err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   r.path,
		params: q.params(),
	})
	if err != nil {
		return Page[T]{}, err
	}

	perPage := q.Limit
	if perPage < 1 {
		perPage = pagination.DefaultItemsPerPage
	}
	return decodeList[T](resp, q.Page, perPage)
}

// Get fetches one record by id.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	resp, err := r.client.do(ctx, request{
		method: http.MethodGet,
		path:   r.itemPath(id),
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](resp)
}

// Create submits form as a multipart POST.
func (r *Resource[T]) Create(ctx context.Context, form *Form) (T, error) {
	return r.send(ctx, http.MethodPost, r.path, form)
}

// Update submits form as a full-replacement multipart PUT.
func (r *Resource[T]) Update(ctx context.Context, id string, form *Form) (T, error) {
	return r.send(ctx, http.MethodPut, r.itemPath(id), form)
}

// Delete removes the record. It does not refetch anything.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	resp, err := r.client.do(ctx, request{
		method: http.MethodDelete,
		path:   r.itemPath(id),
	})
	if err != nil {
		return err
	}
	return decodeAck(resp)
}

func (r *Resource[T]) send(ctx context.Context, method, path string, form *Form) (T, error) {
	var zero T
	if form == nil {
		form = NewForm(ModeCreate)
	}
	body, ctype, err := form.Encode()
	if err != nil {
		return zero, &Error{Kind: KindApplication, Msg: "could not encode form", Err: err}
	}

	resp, err := r.client.do(ctx, request{
		method: method,
		path:   path,
		body:   body,
		ctype:  ctype,
		upload: form.HasFile(),
	})
	if err != nil {
		return zero, err
	}
	return decodeOne[T](resp)
}
