package lib

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPartCode(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
		ok   bool
	}{
		{"bare code", "C11702", "C11702", true},
		{"surrounding whitespace", "  C11702 \n", "C11702", true},
		{"jlcpcb part url", "https://jlcpcb.com/partdetail/UniRoyal_Elec-0603WAF1002T5E/C11702", "C11702", true},
		{"jlcpcb item url", "https://item.jlcpcb.com/a/b/C11702", "C11702", true},
		{"lcsc product url", "https://www.lcsc.com/product-detail/Chip-Resistor-Surface-Mount_UNI-ROYAL-Uniroyal-Elec-0603WAF1002T5E_C11702.html", "C11702", true},
		{"lcsc url with filename suffix", "https://www.lcsc.com/product-detail/Resistors_C11702_extra.html", "C11702", true},
		{"jlcpcb url with trailing slash", "https://jlcpcb.com/partdetail/C11702/", "", false},
		{"jlcpcb url with query", "https://jlcpcb.com/partdetail/C11702?x=1", "", false},
		{"lcsc url without html", "https://www.lcsc.com/product-detail/X_C11702", "", false},
		{"other host", "https://example.com/parts/C11702", "", false},
		{"other host lcsc shape", "https://example.com/product-detail/X_C11702.html", "", false},
		{"letters after digits", "C123abc", "", false},
		{"hyphenated suffix", "C11702-R", "", false},
		{"lower case prefix", "c11702", "", false},
		{"prefix only", "C", "", false},
		{"other prefix", "R11702", "", false},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
		{"inner whitespace", "C117 02", "", false},
		{"non ascii digits", "C١٢٣", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPartCode(tt.term)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractPartCodeReturnsBareCodesUnchanged(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		code := "C" + strconv.FormatUint(r.Uint64(), 10)

		got, ok := ExtractPartCode(code)
		assert.True(t, ok, code)
		assert.Equal(t, code, got)
	}
}

func TestExtractPartCodeRejectsOtherTerms(t *testing.T) {
	for _, term := range []string{"11702", "resistor 10k", "0603WAF1002T5E", "ftp://lcsc.com/_C1.html", "UNI-ROYAL"} {
		_, ok := ExtractPartCode(term)
		assert.False(t, ok, term)
	}
}

func TestIsPartCode(t *testing.T) {
	assert.True(t, IsPartCode("C1"))
	assert.False(t, IsPartCode(" C1"))
	assert.False(t, IsPartCode("C1/2"))
	assert.False(t, IsPartCode(""))
}
