package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrStale covers every case where a cache cannot be used: expired,
// missing, unreadable, or holding records of the wrong kind. Callers
// react the same way to all of them, by refreshing from the tool.
var ErrStale = errors.New("cache stale")

const kindKey = "data type"

// Store persists an ordered record list of one kind together with its
// capture timestamp. The on-disk form is a JSON array whose first
// element is the timestamp and whose remaining elements are the records,
// each tagged with the kind under the "data type" key.
type Store[T any] struct {
	Path string
	Kind string
	TTL  time.Duration

	// Now is swappable for tests; zero value means time.Now.
	Now func() time.Time
}

func NewStore[T any](path, kind string, ttl time.Duration) *Store[T] {
	return &Store[T]{Path: path, Kind: kind, TTL: ttl}
}

func (s *Store[T]) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Save stamps the current time and fully replaces any previous content.
func (s *Store[T]) Save(records []T) error {
	arr := make([]any, 0, len(records)+1)
	arr = append(arr, s.now().Format(time.RFC3339Nano))

	for _, r := range records {
		raw, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to encode %s record: %w", s.Kind, err)
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return fmt.Errorf("failed to tag %s record: %w", s.Kind, err)
		}
		m[kindKey] = s.Kind
		arr = append(arr, m)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return err
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	log.Debugf("caching %d %s records to %s", len(records), s.Kind, s.Path)
	return json.NewEncoder(f).Encode(arr)
}

// Load returns the cached records, or ErrStale when the envelope is
// missing, older than the TTL, or not decodable as this store's kind.
func (s *Store[T]) Load() ([]T, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, ErrStale
	}
	defer f.Close()

	var arr []json.RawMessage
	if err := json.NewDecoder(f).Decode(&arr); err != nil || len(arr) == 0 {
		return nil, ErrStale
	}

	var stamp string
	if err := json.Unmarshal(arr[0], &stamp); err != nil {
		return nil, ErrStale
	}
	captured, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return nil, ErrStale
	}
	if s.now().Sub(captured) >= s.TTL {
		log.Debugf("%s cache out of date, captured %s", s.Kind, captured)
		return nil, ErrStale
	}

	records := make([]T, 0, len(arr)-1)
	for _, raw := range arr[1:] {
		var probe struct {
			Kind string `json:"data type"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil || probe.Kind != s.Kind {
			return nil, ErrStale
		}
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, ErrStale
		}
		records = append(records, rec)
	}

	return records, nil
}
