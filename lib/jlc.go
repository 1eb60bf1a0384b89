package lib

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/TencentBlueKing/gopkg/stringx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const vendorSuccess = 200

type JLC struct {
	client   *http.Client
	baseURL  string
	interval time.Duration
	lock     chan struct{}
}

func NewJLC(cfg *Config) *JLC {
	return &JLC{
		client:   &http.Client{Timeout: cfg.Timeout},
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		interval: cfg.Interval,
		lock:     make(chan struct{}, 1),
	}
}

/*
	vendor field name -> display label, in display order
*/
var componentFields = []struct {
	key   string
	label string
}{
	{"componentCode", LabelCode},
	{"firstTypeNameEn", "Primary Category"},
	{"secondTypeNameEn", "Secondary Category"},
	{"componentBrandEn", "Brand"},
	{"componentName", "Full Name"},
	{"componentDesignator", "Designator"},
	{"componentModelEn", "Model"},
	{"componentSpecificationEn", "Specification"},
	{"assemblyProcess", "Assembly Process"},
	{"describe", "Description"},
	{"matchedPartDetail", "Details"},
	{"stockCount", "Stock"},
	{"leastNumber", "Minimal Quantity"},
	{"leastNumberPrice", "Minimum Price"},
}

var libraryTypes = map[string]string{
	"base":   "Basic",
	"expand": "Extended",
}

/*
	Space out requests when an interval is configured. The lock is held for
	the interval after a request starts. Waiting for it gives up when ctx is
	done.
*/
func (jlc *JLC) throttle(ctx context.Context) error {
	if jlc.interval <= 0 {
		return nil
	}

	select {
	case jlc.lock <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	go func() {
		time.Sleep(jlc.interval)
		<-jlc.lock
	}()

	return nil
}

// Search extracts the part code from a search term and looks it up.
func (jlc *JLC) Search(ctx context.Context, term string) (*Part, error) {
	code, ok := ExtractPartCode(term)
	if !ok {
		return nil, newInvalidInput(term)
	}

	return jlc.Lookup(ctx, code)
}

// Lookup fetches the component detail for code and normalizes it. The
// result is either a complete part or an error, never a partial part.
func (jlc *JLC) Lookup(ctx context.Context, code string) (*Part, error) {
	if !IsPartCode(code) {
		return nil, newInvalidInput(code)
	}

	if err := jlc.throttle(ctx); err != nil {
		return nil, newNetwork(code, err)
	}

	query := url.Values{}
	query.Set("componentCode", code)
	endpoint := jlc.baseURL + "/getComponentDetail?" + query.Encode()

	log := Logger().WithField("code", code)
	log.WithField("url", endpoint).Debug("requesting component detail")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newNetwork(code, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := jlc.client.Do(req)
	if err != nil {
		log.WithError(err).Warn("component detail request failed")
		return nil, newNetwork(code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Warn("component detail request rejected")
		return nil, newHttpStatus(code, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetwork(code, errors.Wrap(err, "read response"))
	}

	log.WithField("body", stringx.Truncate(string(body), 512)).Trace("component detail response")

	part, err := normalize(code, body)
	if err != nil {
		log.WithError(err).Info("component detail not usable")
		return nil, err
	}

	return part, nil
}

// ParseComponentDetail normalizes a getComponentDetail response body.
func ParseComponentDetail(body []byte) (*Part, error) {
	return normalize("", body)
}

func normalize(code string, body []byte) (*Part, error) {
	doc, err := DecodeValue(body)
	if err != nil {
		return nil, newMalformed(code, err)
	}

	/*
		a valid response can still report through its code field that no
		part exists, in which case the data section is ignored. A null code
		is a code too.
	*/
	if status, ok := doc.Lookup("code"); ok {
		if n, ok := status.Int(); !ok || n != vendorSuccess {
			return nil, newNotFound(code, "vendor reported code "+status.Text())
		}
	}

	// a null data section yields an empty part
	data, ok := doc.Lookup("data")
	if !ok {
		return nil, newNotFound(code, "response has no data section")
	}

	part := &Part{}

	if typ, ok := data.Get("componentLibraryType"); ok {
		if name, ok := libraryTypes[typ.Text()]; ok {
			part.Set(LabelType, name)
		}
	}

	for _, field := range componentFields {
		if value, ok := data.Lookup(field.key); ok {
			part.Set(field.label, value.Text())
		}
	}

	/*
		component specific attributes, these vary by component
	*/
	if attributes, ok := data.Get("attributes"); ok {
		array, _ := attributes.Array()
		for _, attribute := range array {
			name, ok := attribute.Lookup("attribute_name_en")
			if !ok {
				continue
			}
			value, ok := attribute.Lookup("attribute_value_name")
			if !ok {
				continue
			}

			part.Set(name.Text(), value.Text())
		}
	}

	/*
		meta URLs drive downloads and previews, so null ones are skipped.
		Images keep the index of their imageList element.
	*/
	if images, ok := data.Get("imageList"); ok {
		array, _ := images.Array()
		for i, image := range array {
			if u, ok := image.Get("productBigImage"); ok {
				part.Meta.Images = append(part.Meta.Images, Image{Index: i, URL: u.Text()})
			}
		}
	}

	if datasheet, ok := data.Get("dataManualUrl"); ok {
		part.Meta.DatasheetURL = datasheet.Text()
	}

	return part, nil
}

type LookupResult struct {
	Code string
	Part *Part
	Err  error
}

/*
	Look up every code in order and stream the results. The channel is
	closed once all codes are done or ctx is cancelled.
*/
func (jlc *JLC) LookupAll(ctx context.Context, codes []string) <-chan LookupResult {
	results := make(chan LookupResult, 10)

	go func() {
		defer close(results)

		for _, code := range codes {
			if ctx.Err() != nil {
				return
			}

			part, err := jlc.Lookup(ctx, code)

			select {
			case results <- LookupResult{Code: code, Part: part, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return results
}

const (
	datasheetViewer = "www.lcsc.com/datasheet/lcsc_datasheet_"
	datasheetDirect = "datasheet.lcsc.com/lcsc/"
)

// DatasheetURL turns the vendor's datasheet viewer URL into the URL of the
// PDF itself. Other URLs are returned unchanged.
func DatasheetURL(viewer string) string {
	return strings.Replace(viewer, datasheetViewer, datasheetDirect, 1)
}

// DownloadDatasheet saves the part's datasheet as <dir>/<code>.pdf and
// returns the written path.
func (jlc *JLC) DownloadDatasheet(ctx context.Context, part *Part, dir string) (string, error) {
	code := part.Code()
	if part.Meta.DatasheetURL == "" {
		return "", errors.Errorf("part %s has no datasheet", code)
	}

	src := DatasheetURL(part.Meta.DatasheetURL)
	Logger().WithFields(logrus.Fields{"code": code, "url": src}).Debug("downloading datasheet")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", errors.Wrap(err, "build datasheet request")
	}

	resp, err := jlc.client.Do(req)
	if err != nil {
		return "", newNetwork(code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newHttpStatus(code, resp.StatusCode)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "create %s", dir)
	}

	name := code
	if name == "" {
		name = "datasheet"
	}

	dst := filepath.Join(dir, name+".pdf")
	if err := writeFile(dst, resp.Body); err != nil {
		os.Remove(dst)
		return "", err
	}

	return dst, nil
}

func writeFile(dst string, r io.Reader) error {
	fp, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "create %s", dst)
	}

	if _, err := io.Copy(fp, r); err != nil {
		fp.Close()
		return errors.Wrapf(err, "write %s", dst)
	}

	return errors.Wrapf(fp.Close(), "close %s", dst)
}
