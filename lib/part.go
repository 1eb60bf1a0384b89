package lib

import (
	"fmt"

	"github.com/samber/lo"
)

const (
	LabelType         = "Type"
	LabelCode         = "Component Code"
	LabelDatasheet    = "Datasheet"
	LabelDatasheetURL = "Datasheet URL"
)

type Attribute struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Image is a product image URL and the index of the vendor list entry it
// came from.
type Image struct {
	Index int    `json:"index" yaml:"index"`
	URL   string `json:"url" yaml:"url"`
}

// PartMeta carries the data that drives secondary actions rather than the
// attribute table.
type PartMeta struct {
	Images       []Image `json:"images,omitempty" yaml:"images,omitempty"`
	DatasheetURL string  `json:"datasheet_url,omitempty" yaml:"datasheet_url,omitempty"`
}

/*
	A normalized JLCPCB component. Attributes keep insertion order; setting
	an existing label replaces its value in place.
*/
type Part struct {
	Attributes []Attribute `json:"attributes" yaml:"attributes"`
	Meta       PartMeta    `json:"meta" yaml:"meta"`
}

func (p *Part) Set(label, value string) {
	for i := range p.Attributes {
		if p.Attributes[i].Label == label {
			p.Attributes[i].Value = value
			return
		}
	}

	p.Attributes = append(p.Attributes, Attribute{Label: label, Value: value})
}

func (p *Part) Get(label string) (string, bool) {
	attr, ok := lo.Find(p.Attributes, func(a Attribute) bool {
		return a.Label == label
	})

	return attr.Value, ok
}

// Code returns the "Component Code" attribute, which the library generator
// takes verbatim.
func (p *Part) Code() string {
	code, _ := p.Get(LabelCode)
	return code
}

func (p *Part) Labels() []string {
	return lo.Map(p.Attributes, func(a Attribute, _ int) string {
		return a.Label
	})
}

// Rows returns the display table: visible attributes followed by a
// Datasheet row when the part has one.
func (p *Part) Rows() []Attribute {
	rows := append([]Attribute{}, p.Attributes...)
	if p.Meta.DatasheetURL != "" {
		rows = append(rows, Attribute{Label: DatasheetLabel(p.Labels()), Value: p.Meta.DatasheetURL})
	}

	return rows
}

// DatasheetLabel names the datasheet URL row of a table with the given
// labels. A vendor attribute already called Datasheet keeps that name.
func DatasheetLabel(labels []string) string {
	if lo.Contains(labels, LabelDatasheet) {
		return LabelDatasheetURL
	}

	return LabelDatasheet
}

type Links struct {
	LCSC   string
	JLCPCB string
}

func ProductLinks(code string) Links {
	return Links{
		LCSC:   fmt.Sprintf("https://www.lcsc.com/product-detail/%s.html", code),
		JLCPCB: fmt.Sprintf("https://jlcpcb.com/partdetail/%s", code),
	}
}
