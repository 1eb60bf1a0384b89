package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartSetKeepsPosition(t *testing.T) {
	part := &Part{}
	part.Set("A", "1")
	part.Set("B", "2")
	part.Set("A", "3")

	assert.Equal(t, []Attribute{{"A", "3"}, {"B", "2"}}, part.Attributes)

	v, ok := part.Get("A")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	_, ok = part.Get("C")
	assert.False(t, ok)
}

func TestPartRows(t *testing.T) {
	part := &Part{}
	part.Set(LabelCode, "C11702")
	assert.Equal(t, part.Attributes, part.Rows())
	assert.Equal(t, "C11702", part.Code())

	part.Meta.DatasheetURL = "https://example.com/ds.pdf"
	part.Meta.Images = []Image{{0, "https://example.com/1.jpg"}}
	assert.Equal(t, []Attribute{
		{LabelCode, "C11702"},
		{LabelDatasheet, "https://example.com/ds.pdf"},
	}, part.Rows())

	// Rows must not alias the attribute slice
	assert.Len(t, part.Attributes, 1)
}

func TestPartRowsDatasheetAttribute(t *testing.T) {
	part := &Part{}
	part.Set(LabelDatasheet, "see vendor site")
	part.Meta.DatasheetURL = "https://example.com/ds.pdf"

	assert.Equal(t, []Attribute{
		{LabelDatasheet, "see vendor site"},
		{LabelDatasheetURL, "https://example.com/ds.pdf"},
	}, part.Rows())
}

func TestPartCodeMissing(t *testing.T) {
	assert.Equal(t, "", (&Part{}).Code())
}

func TestProductLinks(t *testing.T) {
	links := ProductLinks("C11702")
	assert.Equal(t, "https://www.lcsc.com/product-detail/C11702.html", links.LCSC)
	assert.Equal(t, "https://jlcpcb.com/partdetail/C11702", links.JLCPCB)

	code, ok := ExtractPartCode(links.JLCPCB)
	assert.True(t, ok)
	assert.Equal(t, "C11702", code)
}
