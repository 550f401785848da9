package querycache

import (
	"net/url"
	"testing"

	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestQueryIdentity_KeyIsOrderIndependent(t *testing.T) {
	a := url.Values{}
	a.Set("page", "1")
	a.Set("limit", "10")
	b := url.Values{}
	b.Set("limit", "10")
	b.Set("page", "1")

	ka := QueryIdentity{Kind: KindList, Params: a}.Key()
	kb := QueryIdentity{Kind: KindList, Params: b}.Key()
	assert.Equal(t, ka, kb)
	assert.Equal(t, "blogs:list:limit=10&page=1", ka)
}

func TestQueryIdentity_EmptyValuesDropped(t *testing.T) {
	withEmpty := QueryIdentity{Kind: KindList, Params: url.Values{"q": {""}, "page": {"2"}}}
	without := QueryIdentity{Kind: KindList, Params: url.Values{"page": {"2"}}}
	assert.Equal(t, without.Key(), withEmpty.Key())
}

func TestListIdentity_DefaultsCollapse(t *testing.T) {
	assert.Equal(t,
		ListIdentity(entity.ListParams{}).Key(),
		ListIdentity(entity.ListParams{Page: 1, Limit: 10, Q: ""}).Key())
	assert.NotEqual(t,
		ListIdentity(entity.ListParams{Q: "farm"}).Key(),
		ListIdentity(entity.ListParams{}).Key())
}

func TestListIdentity_TagOrderDoesNotMatter(t *testing.T) {
	a := ListIdentity(entity.ListParams{Type: entity.BlogTypeNews, Tags: []string{"rice", "farm"}})
	b := ListIdentity(entity.ListParams{Type: entity.BlogTypeNews, Tags: []string{"farm", "rice", "farm"}})
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "blogs:list:limit=10&page=1&tags=farm&tags=rice&type=news", a.Key())

	raw := QueryIdentity{Kind: KindList, Params: url.Values{"tags": {"rice", "farm"}}}
	assert.Equal(t, "blogs:list:tags=farm&tags=rice", raw.Key())

	assert.NotEqual(t, a.Key(), ListIdentity(entity.ListParams{Tags: []string{"farm", "rice"}}).Key())
}

func TestIdentityKeys(t *testing.T) {
	assert.Equal(t, "blogs:detail:42", DetailIdentity("42").Key())
	assert.Equal(t, "blogs:comments:42:limit=10&page=2",
		CommentsIdentity("42", entity.CommentListParams{Page: 2}).Key())
}

func TestPredicates(t *testing.T) {
	list := ListIdentity(entity.ListParams{Q: "x"})
	detail1 := DetailIdentity("1")
	detail2 := DetailIdentity("2")
	comments1 := CommentsIdentity("1", entity.CommentListParams{Page: 3})

	assert.True(t, AllLists()(list))
	assert.False(t, AllLists()(detail1))

	assert.True(t, Detail("1")(detail1))
	assert.False(t, Detail("1")(detail2))
	assert.False(t, Detail("1")(comments1))

	assert.True(t, Comments("1")(comments1))
	assert.False(t, Comments("2")(comments1))

	assert.True(t, Exact(detail2)(DetailIdentity("2")))

	p := AnyOf(Detail("1"), AllLists())
	assert.True(t, p(list))
	assert.True(t, p(detail1))
	assert.False(t, p(detail2))
}
