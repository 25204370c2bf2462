package verse

import (
	"testing"

	"scripture-tui/internal/highlight"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const john3 = `<p><a class="va" rel="v43003016"></a><span class="woc">For God so loved the world,</span> ` +
	`<a class="va" rel="v43003017"></a><span class="woc">For God did not send</span> his Son</p>`

func bind(t *testing.T, c *Controller, markup string) []*Unit {
	t.Helper()
	return c.Bind(Segment(parse(t, markup)))
}

func allSpans(u *Unit, want SpanState) bool {
	for _, s := range u.Spans() {
		if s != want {
			return false
		}
	}
	return true
}

func TestBindRestoresStoredHighlight(t *testing.T) {
	session := highlight.NewSession()
	session.Store.ToggleSet("v43003016", "bg-red-600")
	c := NewController(session)

	units := bind(t, c, john3)
	require.Len(t, units, 2)

	assert.Equal(t, []highlight.Color{"bg-red-600"}, units[0].PaletteClasses())
	assert.True(t, allSpans(units[0], Emphasized))
	assert.Empty(t, units[1].PaletteClasses())
	assert.True(t, allSpans(units[1], Plain))

	got, ok := session.Store.Get("v43003016")
	assert.True(t, ok)
	assert.Equal(t, highlight.Color("bg-red-600"), got, "reconciliation does not toggle the store")
	_, armed := session.Arming.Armed()
	assert.False(t, armed, "restoring does not need an armed tool")
}

func TestBindIsStableAcrossRefetch(t *testing.T) {
	session := highlight.NewSession()
	c := NewController(session)
	require.NoError(t, session.Arming.Press("hl-teal"))

	units := bind(t, c, john3)
	require.True(t, c.Click(units[1]))

	units = bind(t, c, john3)
	assert.Equal(t, highlight.Color("bg-teal-600"), units[1].Color())
	assert.True(t, allSpans(units[1], Emphasized))
	assert.Equal(t, highlight.None, units[0].Color())
}

func TestClickUnarmedIsNoop(t *testing.T) {
	session := highlight.NewSession()
	session.Store.ToggleSet("v43003017", "bg-sky-600")
	c := NewController(session)
	units := bind(t, c, john3)

	for _, u := range units {
		before := u.PaletteClasses()
		assert.False(t, c.Click(u))
		assert.Equal(t, before, u.PaletteClasses())
	}
	assert.Equal(t, []highlight.Entry{{ID: "v43003017", Color: "bg-sky-600"}}, session.Store.Entries())
}

func TestClickToggleRoundTrip(t *testing.T) {
	session := highlight.NewSession()
	c := NewController(session)
	units := bind(t, c, john3)
	require.NoError(t, session.Arming.Press("hl-amber"))

	u := units[0]
	require.True(t, c.Click(u))
	assert.Equal(t, highlight.Color("bg-amber-600"), u.Color())
	assert.True(t, allSpans(u, Emphasized))
	got, _ := session.Store.Get("v43003016")
	assert.Equal(t, highlight.Color("bg-amber-600"), got)

	require.True(t, c.Click(u))
	assert.Empty(t, u.PaletteClasses())
	assert.True(t, allSpans(u, Plain))
	_, ok := session.Store.Get("v43003016")
	assert.False(t, ok)
	assert.True(t, HasClass(u.Node, ContainerClass))
}

func TestClickReplacesColor(t *testing.T) {
	session := highlight.NewSession()
	c := NewController(session)
	units := bind(t, c, john3)

	require.NoError(t, session.Arming.Press("hl-red"))
	c.Click(units[0])
	require.NoError(t, session.Arming.Press("hl-blue"))
	c.Click(units[0])

	assert.Equal(t, []highlight.Color{"bg-blue-600"}, units[0].PaletteClasses())
	assert.True(t, allSpans(units[0], Emphasized))
	got, _ := session.Store.Get("v43003016")
	assert.Equal(t, highlight.Color("bg-blue-600"), got)
}

func TestClickAtMostOneColor(t *testing.T) {
	session := highlight.NewSession()
	c := NewController(session)
	units := bind(t, c, john3)

	for i := 0; i < 40; i++ {
		require.NoError(t, session.Arming.PressIndex(i%len(highlight.Palette)))
		c.Click(units[i%2])
		for _, u := range units {
			assert.LessOrEqual(t, len(u.PaletteClasses()), 1)
			stored, ok := session.Store.Get(string(u.ID))
			if ok {
				assert.Equal(t, stored, u.Color())
			} else {
				assert.Equal(t, highlight.None, u.Color())
			}
		}
	}
}

func TestClickInertUnitSkipsStore(t *testing.T) {
	session := highlight.NewSession()
	c := NewController(session)
	units := bind(t, c, `<a class="va"></a><span class="woc">text</span>`)
	require.Len(t, units, 1)
	require.NoError(t, session.Arming.Press("hl-lime"))

	assert.True(t, c.Click(units[0]))
	assert.Equal(t, highlight.Color("bg-lime-600"), units[0].Color())
	assert.Equal(t, 0, session.Store.Len())
}

func TestRenderedMarkupAfterClick(t *testing.T) {
	session := highlight.NewSession()
	c := NewController(session)
	root := parse(t, `<a class="va" rel="v43003016"></a><span class="woc">loved</span>`)
	units := c.Bind(Segment(root))
	require.NoError(t, session.Arming.Press("hl-rose"))
	c.Click(units[0])

	assert.Equal(t,
		`<span class="verse bg-rose-600" data-verse="v43003016"><span class="woc-highlighted">loved</span></span>`,
		render(t, root))
}
