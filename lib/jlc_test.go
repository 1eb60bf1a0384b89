package lib

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailC11702 = `{
	"code": 200,
	"data": {
		"componentCode": "C11702",
		"componentLibraryType": "base",
		"firstTypeNameEn": "Resistors",
		"secondTypeNameEn": "Chip Resistor - Surface Mount",
		"componentBrandEn": "UNI-ROYAL(Uniroyal Elec)",
		"componentModelEn": "0603WAF1001T5E",
		"describe": "100mW Thick Film Resistors 75V ±1% 1kΩ 0603",
		"matchedPartDetail": null,
		"stockCount": 1234567,
		"leastNumber": 20,
		"leastNumberPrice": 0.0012,
		"attributes": [
			{"attribute_name_en": "Resistance", "attribute_value_name": "1kΩ"},
			{"attribute_name_en": "Tolerance", "attribute_value_name": "±1%"},
			{"attribute_name_en": "Power(Watts)"}
		],
		"imageList": [
			{"productBigImage": "https://assets.lcsc.com/images/1.jpg"},
			{"productBigImage": "https://assets.lcsc.com/images/2.jpg"},
			{"productBigImage": "https://assets.lcsc.com/images/3.jpg"}
		],
		"dataManualUrl": "https://www.lcsc.com/datasheet/lcsc_datasheet_1811081616_UNI-ROYAL_C11702.pdf"
	}
}`

func newTestJLC(t *testing.T, handler http.HandlerFunc) (*JLC, *int32) {
	t.Helper()

	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL + "/"
	cfg.Timeout = 5 * time.Second

	return NewJLC(cfg), &requests
}

func TestLookup(t *testing.T) {
	client, requests := newTestJLC(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/getComponentDetail", r.URL.Path)
		assert.Equal(t, "C11702", r.URL.Query().Get("componentCode"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Write([]byte(detailC11702))
	})

	part, err := client.Lookup(context.Background(), "C11702")
	require.NoError(t, err)
	assert.EqualValues(t, 1, *requests)

	assert.Equal(t, []Attribute{
		{"Type", "Basic"},
		{"Component Code", "C11702"},
		{"Primary Category", "Resistors"},
		{"Secondary Category", "Chip Resistor - Surface Mount"},
		{"Brand", "UNI-ROYAL(Uniroyal Elec)"},
		{"Model", "0603WAF1001T5E"},
		{"Description", "100mW Thick Film Resistors 75V ±1% 1kΩ 0603"},
		{"Details", "null"},
		{"Stock", "1234567"},
		{"Minimal Quantity", "20"},
		{"Minimum Price", "0.0012"},
		{"Resistance", "1kΩ"},
		{"Tolerance", "±1%"},
	}, part.Attributes)

	assert.Equal(t, []Image{
		{0, "https://assets.lcsc.com/images/1.jpg"},
		{1, "https://assets.lcsc.com/images/2.jpg"},
		{2, "https://assets.lcsc.com/images/3.jpg"},
	}, part.Meta.Images)
	assert.Equal(t, "https://www.lcsc.com/datasheet/lcsc_datasheet_1811081616_UNI-ROYAL_C11702.pdf", part.Meta.DatasheetURL)
	assert.Equal(t, "C11702", part.Code())
}

func TestSearchExtractsCodeFromURL(t *testing.T) {
	client, _ := newTestJLC(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "C11702", r.URL.Query().Get("componentCode"))
		w.Write([]byte(detailC11702))
	})

	part, err := client.Search(context.Background(), "https://www.lcsc.com/product-detail/Resistors_UNI-ROYAL_C11702.html")
	require.NoError(t, err)
	assert.Equal(t, "C11702", part.Code())
}

func TestSearchInvalidInputMakesNoRequest(t *testing.T) {
	client, requests := newTestJLC(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(detailC11702))
	})

	for _, term := range []string{"", "C123abc", "https://example.com/C1"} {
		part, err := client.Search(context.Background(), term)
		assert.Nil(t, part)
		assert.True(t, IsKind(err, InvalidInput), term)
	}

	_, err := client.Lookup(context.Background(), "C1&x=2")
	assert.True(t, IsKind(err, InvalidInput))

	assert.EqualValues(t, 0, *requests)
}

func TestLookupHttpStatus(t *testing.T) {
	client, _ := newTestJLC(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(detailC11702))
	})

	part, err := client.Lookup(context.Background(), "C11702")
	assert.Nil(t, part)
	require.True(t, IsKind(err, HttpStatus))

	var lErr *LookupError
	require.True(t, errors.As(err, &lErr))
	assert.Equal(t, http.StatusBadGateway, lErr.Status)
	assert.Equal(t, "C11702", lErr.Input)
}

func TestLookupNetwork(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.Timeout = time.Second

	_, err := NewJLC(cfg).Lookup(context.Background(), "C11702")
	assert.True(t, IsKind(err, Network))
}

func TestLookupCancelled(t *testing.T) {
	client, _ := newTestJLC(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(detailC11702))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Lookup(ctx, "C11702")
	assert.True(t, IsKind(err, Network))
}

func TestLookupMalformed(t *testing.T) {
	client, _ := newTestJLC(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := client.Lookup(context.Background(), "C11702")
	assert.True(t, IsKind(err, MalformedResponse))
}

func TestParseComponentDetail(t *testing.T) {
	part, err := ParseComponentDetail([]byte(`{"code":200,"data":{"componentCode":"C11702","componentBrandEn":"UNI-ROYAL"}}`))
	require.NoError(t, err)

	assert.Equal(t, []Attribute{
		{"Component Code", "C11702"},
		{"Brand", "UNI-ROYAL"},
	}, part.Attributes)
	assert.Empty(t, part.Meta.Images)
	assert.Empty(t, part.Meta.DatasheetURL)
}

func TestParseComponentDetailNotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"vendor code", `{"code":6400,"data":{"componentCode":"C11702"}}`},
		{"vendor code as string", `{"code":"200","data":{"componentCode":"C11702"}}`},
		{"vendor code fractional", `{"code":200.5,"data":{"componentCode":"C11702"}}`},
		{"vendor code null", `{"code":null,"data":{"componentCode":"C1"}}`},
		{"no data", `{"code":200}`},
		{"empty object", `{}`},
		{"array document", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part, err := ParseComponentDetail([]byte(tt.body))
			assert.Nil(t, part)
			assert.True(t, IsKind(err, NotFound), "got %v", err)
		})
	}
}

func TestParseComponentDetailNullData(t *testing.T) {
	part, err := ParseComponentDetail([]byte(`{"code":200,"data":null}`))
	require.NoError(t, err)
	assert.Empty(t, part.Attributes)
	assert.Empty(t, part.Meta.Images)
}

func TestParseComponentDetailNullFields(t *testing.T) {
	part, err := ParseComponentDetail([]byte(`{"code":200,"data":{
		"componentCode":"C1",
		"matchedPartDetail":null,
		"componentLibraryType":null,
		"attributes":[{"attribute_name_en":"Voltage","attribute_value_name":null}],
		"imageList":[{"productBigImage":null}],
		"dataManualUrl":null
	}}`))
	require.NoError(t, err)

	assert.Equal(t, []Attribute{
		{"Component Code", "C1"},
		{"Details", "null"},
		{"Voltage", "null"},
	}, part.Attributes)
	assert.Empty(t, part.Meta.Images)
	assert.Empty(t, part.Meta.DatasheetURL)
}

func TestParseComponentDetailImageIndex(t *testing.T) {
	part, err := ParseComponentDetail([]byte(`{"code":200,"data":{"imageList":[
		{"productBigImage":"0.jpg"},
		{"productSmallImage":"1s.jpg"},
		{"productBigImage":"2.jpg"}
	]}}`))
	require.NoError(t, err)

	assert.Equal(t, []Image{{0, "0.jpg"}, {2, "2.jpg"}}, part.Meta.Images)
}

func TestParseComponentDetailMalformed(t *testing.T) {
	for _, body := range []string{"", "{", `{"code":200}}`, `{"code":200} trailing`} {
		_, err := ParseComponentDetail([]byte(body))
		assert.True(t, IsKind(err, MalformedResponse), body)
	}
}

func TestParseComponentDetailWithoutCode(t *testing.T) {
	part, err := ParseComponentDetail([]byte(`{"data":{"componentCode":"C1"}}`))
	require.NoError(t, err)
	assert.Equal(t, "C1", part.Code())
}

func TestParseComponentDetailLibraryType(t *testing.T) {
	tests := map[string]string{
		`"base"`:   "Basic",
		`"expand"`: "Extended",
		`"other"`:  "",
		`null`:     "",
		`3`:        "",
	}

	for raw, want := range tests {
		part, err := ParseComponentDetail([]byte(`{"code":200,"data":{"componentLibraryType":` + raw + `}}`))
		require.NoError(t, err)

		got, ok := part.Get(LabelType)
		assert.Equal(t, want != "", ok, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestParseComponentDetailDuplicateAttributes(t *testing.T) {
	part, err := ParseComponentDetail([]byte(`{"code":200,"data":{
		"componentCode":"C1",
		"attributes":[
			{"attribute_name_en":"Voltage","attribute_value_name":"50V"},
			{"attribute_name_en":"Capacitance","attribute_value_name":"100nF"},
			{"attribute_name_en":"Voltage","attribute_value_name":"25V"}
		]}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Component Code", "Voltage", "Capacitance"}, part.Labels())
	voltage, _ := part.Get("Voltage")
	assert.Equal(t, "25V", voltage)
}

func TestParseComponentDetailStripsQuotes(t *testing.T) {
	part, err := ParseComponentDetail([]byte(`{"code":200,"data":{
		"componentModelEn":"\"0603\"",
		"attributes":[{"attribute_name_en":"\"Count\"","attribute_value_name":5}]
	}}`))
	require.NoError(t, err)

	model, _ := part.Get("Model")
	assert.Equal(t, "0603", model)
	count, ok := part.Get("Count")
	assert.True(t, ok)
	assert.Equal(t, "5", count)
}

func TestParseComponentDetailIgnoresBadShapes(t *testing.T) {
	part, err := ParseComponentDetail([]byte(`{"code":200,"data":{
		"componentCode":"C1",
		"attributes":{"attribute_name_en":"x","attribute_value_name":"y"},
		"imageList":[{"productSmallImage":"s.jpg"},"x",{"productBigImage":"b.jpg"}]
	}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Component Code"}, part.Labels())
	assert.Equal(t, []Image{{2, "b.jpg"}}, part.Meta.Images)
}

func TestParseComponentDetailIsDeterministic(t *testing.T) {
	first, err := ParseComponentDetail([]byte(detailC11702))
	require.NoError(t, err)
	second, err := ParseComponentDetail([]byte(detailC11702))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLookupAll(t *testing.T) {
	client, _ := newTestJLC(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("componentCode") == "C404" {
			w.Write([]byte(`{"code":6400}`))
			return
		}
		w.Write([]byte(`{"code":200,"data":{"componentCode":"` + r.URL.Query().Get("componentCode") + `"}}`))
	})

	results := []LookupResult{}
	for result := range client.LookupAll(context.Background(), []string{"C1", "bad", "C404", "C2"}) {
		results = append(results, result)
	}

	require.Len(t, results, 4)
	assert.Equal(t, "C1", results[0].Part.Code())
	assert.True(t, IsKind(results[1].Err, InvalidInput))
	assert.True(t, IsKind(results[2].Err, NotFound))
	assert.Equal(t, "C2", results[3].Part.Code())
}

func TestLookupAllStopsWhenCancelled(t *testing.T) {
	client, requests := newTestJLC(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"data":{"componentCode":"C1"}}`))
	})

	codes := make([]string, 50)
	for i := range codes {
		codes[i] = "C" + strconv.Itoa(i+1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	results := client.LookupAll(ctx, codes)
	<-results
	cancel()

	// the channel is closed without the rest being looked up
	for range results {
	}
	assert.Less(t, atomic.LoadInt32(requests), int32(len(codes)))
}

func TestNewJLCInterval(t *testing.T) {
	assert.Equal(t, time.Second, NewJLC(&Config{Interval: time.Second}).interval)
}

func TestLookupThrottle(t *testing.T) {
	client, requests := newTestJLC(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(detailC11702))
	})
	client.interval = 100 * time.Millisecond

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.Lookup(context.Background(), "C11702")
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
	assert.EqualValues(t, 3, atomic.LoadInt32(requests))
}

func TestLookupThrottleCancelled(t *testing.T) {
	client, requests := newTestJLC(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(detailC11702))
	})
	client.interval = 5 * time.Second

	_, err := client.Lookup(context.Background(), "C11702")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = client.Lookup(ctx, "C11702")
	assert.True(t, IsKind(err, Network))
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.EqualValues(t, 1, atomic.LoadInt32(requests))
}

func TestDatasheetURL(t *testing.T) {
	assert.Equal(t,
		"https://datasheet.lcsc.com/lcsc/1811081616_UNI-ROYAL_C11702.pdf",
		DatasheetURL("https://www.lcsc.com/datasheet/lcsc_datasheet_1811081616_UNI-ROYAL_C11702.pdf"),
	)
	assert.Equal(t, "https://example.com/a.pdf", DatasheetURL("https://example.com/a.pdf"))
}

func TestDownloadDatasheet(t *testing.T) {
	client, _ := newTestJLC(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/C11702.pdf" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("%PDF-1.4"))
	})

	srvURL := client.baseURL
	part := &Part{Meta: PartMeta{DatasheetURL: srvURL + "/C11702.pdf"}}
	part.Set(LabelCode, "C11702")

	dir := filepath.Join(t.TempDir(), "datasheets")
	dst, err := client.DownloadDatasheet(context.Background(), part, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "C11702.pdf"), dst)

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))

	part.Meta.DatasheetURL = srvURL + "/missing.pdf"
	_, err = client.DownloadDatasheet(context.Background(), part, dir)
	assert.True(t, IsKind(err, HttpStatus))

	part.Meta.DatasheetURL = ""
	_, err = client.DownloadDatasheet(context.Background(), part, dir)
	assert.Error(t, err)
}

func TestDownloadDatasheetShortBody(t *testing.T) {
	client, _ := newTestJLC(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.Write([]byte("%PDF-1.4"))
	})

	part := &Part{Meta: PartMeta{DatasheetURL: client.baseURL + "/C11702.pdf"}}
	part.Set(LabelCode, "C11702")

	dir := t.TempDir()
	_, err := client.DownloadDatasheet(context.Background(), part, dir)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "C11702.pdf"))
}
