// Package querycache is the client-side entity cache: values keyed by a
// normalized QueryIdentity, with freshness windows, coalesced fetches,
// ordered completions, invalidation by predicate and subscriber
// notification.
package querycache

import (
	"net/url"
	"slices"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
)

// Kind is the query family of an identity.
type Kind string

const (
	KindList     Kind = "list"
	KindDetail   Kind = "detail"
	KindComments Kind = "comments"
)

const keyPrefix = "blogs"

// QueryIdentity names one cached query. Two identities with the same Key
// address the same entry.
type QueryIdentity struct {
	Kind Kind
	// Scope is the blog id for detail and comments queries, empty for lists.
	Scope  string
	Params url.Values
}

// Key returns the canonical form blogs:<kind>[:<scope>][:<query>]. Params
// are sorted by name, values of a repeated param are sorted too, and empty
// values are dropped.
func (q QueryIdentity) Key() string {
	var b strings.Builder
	b.WriteString(keyPrefix)
	b.WriteByte(':')
	b.WriteString(string(q.Kind))
	if q.Scope != "" {
		b.WriteByte(':')
		b.WriteString(q.Scope)
	}
	if enc := compact(q.Params).Encode(); enc != "" {
		b.WriteByte(':')
		b.WriteString(enc)
	}
	return b.String()
}

func (q QueryIdentity) String() string { return q.Key() }

func compact(v url.Values) url.Values {
	out := url.Values{}
	for name, values := range v {
		for _, value := range values {
			if value != "" {
				out.Add(name, value)
			}
		}
		slices.Sort(out[name])
	}
	return out
}

// ListIdentity identifies one page of the blog list under the given filters.
func ListIdentity(params entity.ListParams) QueryIdentity {
	return QueryIdentity{Kind: KindList, Params: encode(params.Normalize())}
}

// DetailIdentity identifies one blog post.
func DetailIdentity(blogID string) QueryIdentity {
	return QueryIdentity{Kind: KindDetail, Scope: blogID}
}

// CommentsIdentity identifies one page of a blog's comments.
func CommentsIdentity(blogID string, params entity.CommentListParams) QueryIdentity {
	return QueryIdentity{Kind: KindComments, Scope: blogID, Params: encode(params.Normalize())}
}

func encode(v interface{}) url.Values {
	values, err := query.Values(v)
	if err != nil {
		// only structs are passed in
		return url.Values{}
	}
	return values
}

// Predicate selects identities for invalidation.
type Predicate func(QueryIdentity) bool

// AllLists matches every blog list page under any filters.
func AllLists() Predicate {
	return func(q QueryIdentity) bool { return q.Kind == KindList }
}

// Detail matches the detail query of one blog.
func Detail(blogID string) Predicate {
	return func(q QueryIdentity) bool { return q.Kind == KindDetail && q.Scope == blogID }
}

// Comments matches every comment page of one blog.
func Comments(blogID string) Predicate {
	return func(q QueryIdentity) bool { return q.Kind == KindComments && q.Scope == blogID }
}

// Exact matches a single identity.
func Exact(id QueryIdentity) Predicate {
	key := id.Key()
	return func(q QueryIdentity) bool { return q.Key() == key }
}

// AnyOf matches when at least one of preds matches.
func AnyOf(preds ...Predicate) Predicate {
	return func(q QueryIdentity) bool {
		for _, p := range preds {
			if p(q) {
				return true
			}
		}
		return false
	}
}
