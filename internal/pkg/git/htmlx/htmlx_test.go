package htmlx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head>
<meta name="octolytics-dimension-user_id" content="583231">
</head><body>
<div class="left-side"><div class="box" date="20240101" data-content="x"></div></div>
<div class="right-side">
  <div class="box level" date="20240102" data-content="2024-01-02: 3个贡献"></div>
  <div class="wrap"><div class="box" date="20240103" data-content="2024-01-03: 0个贡献"></div></div>
</div>
<tool-tip for="day-1">  2 contributions
 on January 1st. </tool-tip>
</body></html>`

func TestFind(t *testing.T) {
	doc, err := Parse([]byte(page))
	require.NoError(t, err)

	meta := First(doc, Element("meta", AttrEq("name", "octolytics-dimension-user_id")))
	require.NotNil(t, meta)
	content, ok := Attr(meta, "content")
	assert.True(t, ok)
	assert.Equal(t, "583231", content)

	all := FindAll(doc, Element("div", Class("box"), HasAttr("date")))
	assert.Len(t, all, 3)

	scoped := FindIn(doc, Element("div", Class("right-side")), Element("div", Class("box"), HasAttr("data-content")))
	require.Len(t, scoped, 2)
	date, _ := Attr(scoped[0], "date")
	assert.Equal(t, "20240102", date)

	assert.Empty(t, FindAll(doc, Element("div", Class("box", "missing"))))
}

func TestCustomElementAndText(t *testing.T) {
	doc, err := Parse([]byte(page))
	require.NoError(t, err)

	tip := First(doc, Element("tool-tip", HasAttr("for")))
	require.NotNil(t, tip)
	assert.Equal(t, "2 contributions on January 1st.", Text(tip))

	assert.Nil(t, First(doc, Element("img")))
}
