package htmlquery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestLineText(t *testing.T) {
	doc := parse(t, `<table><tr><td id="c">  First
line<br>Second&nbsp;line<br/><br>  <p>Third</p>   </td></tr></table>`)

	cell := FindFirst(doc, IsElement("td"))
	require.NotNil(t, cell)
	assert.Equal(t, "First line\nSecond\u00a0line\nThird", LineText(cell))
}

func TestLineTextKeepsSpacingInsideLine(t *testing.T) {
	doc := parse(t, `<table><tr><td>  Przychody:    1 234   5 678  <br>  Zysk:         -12 </td></tr></table>`)
	cell := FindFirst(doc, IsElement("td"))
	require.NotNil(t, cell)
	assert.Equal(t, "Przychody:    1 234   5 678\nZysk:         -12", LineText(cell))
}

func TestLineTextSkipsScripts(t *testing.T) {
	doc := parse(t, `<div>Visible<script>var x = 1;</script></div>`)
	assert.Equal(t, "Visible", LineText(FindFirst(doc, IsElement("div"))))
}

func TestFollowingSiblings(t *testing.T) {
	doc := parse(t, `<table>
		<tr id="a"><td>a</td></tr>
		<tr id="b"><td>b</td></tr>
		<tr id="c"><td>c</td></tr>
	</table>`)

	rows := FindAll(doc, IsElement("tr"))
	require.Len(t, rows, 3)

	after := FollowingSiblings(rows[0], "tr")
	require.Len(t, after, 2)
	id, _ := Attr(after[0], "id")
	assert.Equal(t, "b", id)

	assert.Empty(t, FollowingSiblings(rows[2], "tr"))
	assert.Nil(t, FollowingSiblings(nil, "tr"))
}

func TestClosest(t *testing.T) {
	doc := parse(t, `<table><tr><td><b>Label</b></td></tr></table>`)
	text := FindFirst(doc, ContainsText("Label"))
	require.NotNil(t, text)

	row := Closest(text, "tr")
	require.NotNil(t, row)
	assert.Equal(t, "tr", row.Data)
	assert.Nil(t, Closest(text, "ul"))
}

func TestInnermostContaining(t *testing.T) {
	doc := parse(t, `<table><tr><td id="outer">
		<table><tr><td id="inner"><span>Treść raportu:</span></td></tr></table>
	</td></tr></table>`)

	cell := InnermostContaining(doc, "Treść raportu", "td", "th")
	require.NotNil(t, cell)
	id, _ := Attr(cell, "id")
	assert.Equal(t, "inner", id)

	assert.Nil(t, InnermostContaining(doc, "missing", "td"))
}

func TestAttr(t *testing.T) {
	doc := parse(t, `<table><tr><td colspan="">x</td><td>y</td></tr></table>`)
	cells := FindAll(doc, IsElement("td"))
	require.Len(t, cells, 2)
	assert.True(t, HasAttr(cells[0], "colspan"))
	assert.False(t, HasAttr(cells[1], "colspan"))
	_, ok := Attr(nil, "colspan")
	assert.False(t, ok)
}
