package lib

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blevesearch/bleve"
	"github.com/boltdb/bolt"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
)

var (
	PARTS_BKT    = []byte("parts")
	HISTORY_BKT  = []byte("history")
	SETTINGS_BKT = []byte("settings")
)

// setting keys remembered between runs
const (
	SettingPart              = "part"
	SettingExePath           = "exe_path"
	SettingDownloadDatasheet = "download_datasheet"
)

/*
	Local store of looked-up parts. Parts are kept in bolt keyed by their
	code, every lookup is appended to a history bucket keyed by ULID, and a
	bleve index makes the stored parts searchable.
*/
type Library struct {
	root  string
	db    *bolt.DB
	index bleve.Index
}

type HistoryEntry struct {
	ID   string
	Code string
	Time time.Time
}

/*
	document indexed for each part
*/
type partDocument struct {
	Code        string
	Brand       string
	Model       string
	Category    string
	Description string
	Text        string
}

/*
	Create or open library from root
*/
func NewLibrary(root string) (*Library, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrapf(err, "create library dir %s", root)
	}

	db, err := bolt.Open(filepath.Join(root, "jlckicad.db"), 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open library database")
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bkt := range [][]byte{PARTS_BKT, HISTORY_BKT, SETTINGS_BKT} {
			if _, err := tx.CreateBucketIfNotExists(bkt); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create library buckets")
	}

	var index bleve.Index
	ipath := filepath.Join(root, "jlckicad.index")
	if Exists(ipath) {
		index, err = bleve.Open(ipath)
	} else {
		index, err = bleve.New(ipath, bleve.NewIndexMapping())
	}
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "open library index")
	}

	return &Library{
		root:  root,
		db:    db,
		index: index,
	}, nil
}

func NewDefaultLibrary(cfg *Config) (*Library, error) {
	return NewLibrary(cfg.LibraryDir)
}

func (l *Library) Close() error {
	ierr := l.index.Close()
	if err := l.db.Close(); err != nil {
		return err
	}

	return ierr
}

// Save stores the part, records the lookup in the history and indexes it.
func (l *Library) Save(part *Part) error {
	code := part.Code()
	if !IsPartCode(code) {
		return errors.Errorf("part has no valid component code: %q", code)
	}

	bytes, err := Marshal(part)
	if err != nil {
		return errors.Wrap(err, "encode part")
	}

	err = l.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(PARTS_BKT).Put([]byte(code), bytes); err != nil {
			return err
		}

		return tx.Bucket(HISTORY_BKT).Put([]byte(ulid.Make().String()), []byte(code))
	})
	if err != nil {
		return errors.Wrapf(err, "store part %s", code)
	}

	return errors.Wrapf(l.index.Index(code, newPartDocument(part)), "index part %s", code)
}

func newPartDocument(part *Part) partDocument {
	doc := partDocument{Code: part.Code()}
	doc.Brand, _ = part.Get("Brand")
	doc.Model, _ = part.Get("Model")
	doc.Category, _ = part.Get("Secondary Category")
	doc.Description, _ = part.Get("Description")

	values := make([]string, 0, len(part.Attributes))
	for _, attr := range part.Attributes {
		values = append(values, attr.Value)
	}
	doc.Text = strings.Join(values, " ")

	return doc
}

// Get returns a stored part, or nil when the code was never saved.
func (l *Library) Get(code string) (*Part, error) {
	var part *Part
	err := l.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(PARTS_BKT).Get([]byte(code))
		if data == nil {
			return nil
		}

		part = &Part{}
		return Unmarshal(data, part)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "load part %s", code)
	}

	return part, nil
}

// Parts returns every stored part ordered by code.
func (l *Library) Parts() ([]*Part, error) {
	parts := []*Part{}
	err := l.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(PARTS_BKT).ForEach(func(k, v []byte) error {
			part := &Part{}
			if err := Unmarshal(v, part); err != nil {
				return errors.Wrapf(err, "decode part %s", k)
			}

			parts = append(parts, part)
			return nil
		})
	})

	return parts, err
}

// History returns up to limit lookups, newest first. limit <= 0 returns all.
func (l *Library) History(limit int) ([]HistoryEntry, error) {
	entries := []HistoryEntry{}
	err := l.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(HISTORY_BKT).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(entries) >= limit {
				break
			}

			entry := HistoryEntry{ID: string(k), Code: string(v)}
			if id, err := ulid.ParseStrict(string(k)); err == nil {
				entry.Time = ulid.Time(id.Time())
			}

			entries = append(entries, entry)
		}

		return nil
	})

	return entries, err
}

// Find searches the stored parts, best match first.
func (l *Library) Find(text string, limit int) ([]*Part, error) {
	if limit <= 0 {
		limit = 10
	}

	query := bleve.NewMatchQuery(text)
	request := bleve.NewSearchRequestOptions(query, limit, 0, false)

	result, err := l.index.Search(request)
	if err != nil {
		return nil, errors.Wrap(err, "search library")
	}

	parts := []*Part{}
	for _, hit := range result.Hits {
		part, err := l.Get(hit.ID)
		if err != nil {
			return nil, err
		}
		if part == nil {
			continue
		}

		parts = append(parts, part)
	}

	return parts, nil
}

func (l *Library) SetSetting(key, value string) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(SETTINGS_BKT).Put([]byte(key), []byte(value))
	})
}

// Setting returns the stored value for key, or def when it was never set.
func (l *Library) Setting(key, def string) string {
	value := def
	l.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(SETTINGS_BKT).Get([]byte(key)); v != nil {
			value = string(v)
		}

		return nil
	})

	return value
}
