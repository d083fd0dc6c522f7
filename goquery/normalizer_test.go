package goquery_test

import (
	"testing"

	"github.com/fwojciec/eventsift/goquery"
	"github.com/stretchr/testify/assert"
)

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("strips noise elements and collapses whitespace", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><style>body { color: red }</style></head>
<body>
<header>Site Header</header>
<nav><a href="/">Home</a></nav>
<h1>Summer   Fest</h1>
<p>Join us
	in the park.</p>
<script>var x = 1;</script>
<footer>Copyright</footer>
</body></html>`

		got := goquery.NewNormalizer().Normalize(html)

		assert.Equal(t, "Summer Fest Join us in the park.", got)
	})

	t.Run("separates adjacent text nodes", func(t *testing.T) {
		t.Parallel()

		got := goquery.NewNormalizer().Normalize(`<div><span>Jazz</span><span>Night</span></div>`)

		assert.Equal(t, "Jazz Night", got)
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		got := goquery.NewNormalizer().Normalize(`<div><p>Open <b>bar</div> tonight`)

		assert.Equal(t, "Open bar tonight", got)
	})

	t.Run("returns empty string for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.NewNormalizer().Normalize(""))
	})

	t.Run("respects custom strip tags", func(t *testing.T) {
		t.Parallel()

		got := goquery.NewNormalizer("aside").Normalize(`<p>Main</p><aside>Ads</aside><nav>Menu</nav>`)

		assert.Equal(t, "Main Menu", got)
	})

	t.Run("drops comments", func(t *testing.T) {
		t.Parallel()

		got := goquery.NewNormalizer().Normalize(`<p>Visible<!-- hidden --></p>`)

		assert.Equal(t, "Visible", got)
	})
}
