package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeserve/routeserve/core/router"
)

func TestParsePattern(t *testing.T) {
	t.Parallel()

	t.Run("rejects templates without leading slash", func(t *testing.T) {
		t.Parallel()

		_, err := router.ParsePattern("users/:id")
		assert.ErrorIs(t, err, router.ErrInvalidPattern)

		_, err = router.ParsePattern("")
		assert.ErrorIs(t, err, router.ErrInvalidPattern)
	})

	t.Run("rejects non-trailing wildcard", func(t *testing.T) {
		t.Parallel()

		_, err := router.ParsePattern("/files/*/meta")
		assert.ErrorIs(t, err, router.ErrWildcardPosition)
	})

	t.Run("rejects duplicate parameter names", func(t *testing.T) {
		t.Parallel()

		_, err := router.ParsePattern("/a/:id/b/:id")
		assert.ErrorIs(t, err, router.ErrDuplicateParam)
	})

	t.Run("rejects empty parameter name", func(t *testing.T) {
		t.Parallel()

		_, err := router.ParsePattern("/a/:/b")
		assert.ErrorIs(t, err, router.ErrInvalidPattern)
	})

	t.Run("keeps the original template", func(t *testing.T) {
		t.Parallel()

		p := router.MustPattern("/foo/:bar/*")
		assert.Equal(t, "/foo/:bar/*", p.String())
	})
}

func TestPatternMatch(t *testing.T) {
	t.Parallel()

	t.Run("literal segments match exactly", func(t *testing.T) {
		t.Parallel()

		p := router.MustPattern("/test")

		captures, ok := p.Match("/test")
		assert.True(t, ok)
		assert.Empty(t, captures)

		_, ok = p.Match("/other")
		assert.False(t, ok)
	})

	t.Run("matching is case-sensitive", func(t *testing.T) {
		t.Parallel()

		p := router.MustPattern("/Test")

		_, ok := p.Match("/test")
		assert.False(t, ok)

		_, ok = p.Match("/Test")
		assert.True(t, ok)
	})

	t.Run("no prefix matches without wildcard", func(t *testing.T) {
		t.Parallel()

		p := router.MustPattern("/foo")

		_, ok := p.Match("/foo/bar")
		assert.False(t, ok)

		_, ok = p.Match("/foo/")
		assert.False(t, ok)
	})

	t.Run("named segment captures one path segment", func(t *testing.T) {
		t.Parallel()

		p := router.MustPattern("/foo/:bar")

		captures, ok := p.Match("/foo/123")
		require.True(t, ok)
		assert.Equal(t, map[string]string{"bar": "123"}, captures)

		_, ok = p.Match("/foo")
		assert.False(t, ok)

		_, ok = p.Match("/foo/123/extra")
		assert.False(t, ok)
	})

	t.Run("multiple parameters capture independently", func(t *testing.T) {
		t.Parallel()

		p := router.MustPattern("/orgs/:org/repos/:repo")

		captures, ok := p.Match("/orgs/acme/repos/site")
		require.True(t, ok)
		assert.Equal(t, "acme", captures["org"])
		assert.Equal(t, "site", captures["repo"])
	})

	t.Run("trailing wildcard captures remainder", func(t *testing.T) {
		t.Parallel()

		p := router.MustPattern("/assets/*")

		captures, ok := p.Match("/assets/css/app.css")
		require.True(t, ok)
		assert.Equal(t, "css/app.css", captures[router.WildcardKey])
	})

	t.Run("wildcard matches zero segments", func(t *testing.T) {
		t.Parallel()

		p := router.MustPattern("/assets/*")

		captures, ok := p.Match("/assets")
		require.True(t, ok)
		assert.Equal(t, "", captures[router.WildcardKey])
	})

	t.Run("root wildcard matches everything", func(t *testing.T) {
		t.Parallel()

		p := router.MustPattern("/*")

		captures, ok := p.Match("/any/depth/of/path")
		require.True(t, ok)
		assert.Equal(t, "any/depth/of/path", captures[router.WildcardKey])

		captures, ok = p.Match("/")
		require.True(t, ok)
		assert.Equal(t, "", captures[router.WildcardKey])
	})

	t.Run("root pattern matches only root", func(t *testing.T) {
		t.Parallel()

		p := router.MustPattern("/")

		_, ok := p.Match("/")
		assert.True(t, ok)

		_, ok = p.Match("/x")
		assert.False(t, ok)
	})

	t.Run("wildcard after parameters", func(t *testing.T) {
		t.Parallel()

		p := router.MustPattern("/users/:id/files/*")

		captures, ok := p.Match("/users/42/files/docs/a.txt")
		require.True(t, ok)
		assert.Equal(t, "42", captures["id"])
		assert.Equal(t, "docs/a.txt", captures[router.WildcardKey])
	})
}
