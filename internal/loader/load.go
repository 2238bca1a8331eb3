// Package loader reads series from sample map files or the sample store.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
)

// storePrefix marks a source read from the sample store.
const storePrefix = "store:"

var (
	// ErrDuplicateSeries is returned when two sources resolve to the same name.
	ErrDuplicateSeries = errors.New("duplicate series name")

	// ErrNoStore is returned when a stored source is requested without a store.
	ErrNoStore = errors.New("sample store is not available")
)

// ParseSource turns a command-line argument into a source. Accepted forms:
//
//	path/to/insta.json        series "insta" read from the file
//	weekend=path/to/x.json    series "weekend" read from the file
//	store:insta               series "insta" read from the sample store
func ParseSource(arg string) (schema.Source, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return schema.Source{}, fmt.Errorf("empty source")
	}

	if name, ok := strings.CutPrefix(arg, storePrefix); ok {
		if name == "" {
			return schema.Source{}, fmt.Errorf("source %q has no series name", arg)
		}
		return schema.Source{Name: name, Stored: true}, nil
	}

	if name, path, ok := strings.Cut(arg, "="); ok {
		if name == "" || path == "" {
			return schema.Source{}, fmt.Errorf("source %q must look like name=path", arg)
		}
		return schema.Source{Name: name, Path: path}, nil
	}

	base := filepath.Base(arg)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		return schema.Source{}, fmt.Errorf("cannot derive a series name from %q", arg)
	}
	return schema.Source{Name: name, Path: arg}, nil
}

// ParseSources parses every argument and rejects duplicate names.
func ParseSources(args []string) ([]schema.Source, error) {
	sources := make([]schema.Source, 0, len(args))
	seen := make(map[string]struct{}, len(args))
	for _, arg := range args {
		src, err := ParseSource(arg)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[src.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeries, src.Name)
		}
		seen[src.Name] = struct{}{}
		sources = append(sources, src)
	}
	return sources, nil
}

// ReadSampleMap decodes a JSON object of timestamp to count.
// Counts must be non-negative integers.
func ReadSampleMap(r io.Reader) (schema.SampleMap, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string]json.Number
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("no JSON object found")
		}
		return nil, fmt.Errorf("cannot decode sample map: %w", err)
	}

	samples := make(schema.SampleMap, len(raw))
	for ts, num := range raw {
		n, err := num.Int64()
		if err != nil {
			return nil, fmt.Errorf("count for %q is not an integer: %s", ts, num)
		}
		if n < 0 {
			return nil, fmt.Errorf("count for %q is negative: %d", ts, n)
		}
		samples[ts] = int(n)
	}
	return samples, nil
}

// LoadFile reads a sample map from a JSON file.
func LoadFile(path string) (schema.SampleMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	samples, err := ReadSampleMap(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// Load resolves every source into a named series, in source order.
// store may be nil when no source is stored.
func Load(sources []schema.Source, store contract.SampleStore) ([]schema.Series, error) {
	series := make([]schema.Series, 0, len(sources))
	seen := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		if _, dup := seen[src.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeries, src.Name)
		}
		seen[src.Name] = struct{}{}

		var (
			samples schema.SampleMap
			err     error
		)
		if src.Stored {
			if store == nil {
				return nil, fmt.Errorf("%w: cannot load %s", ErrNoStore, src.Name)
			}
			samples, err = store.LoadSeries(src.Name)
		} else {
			samples, err = LoadFile(src.Path)
		}
		if err != nil {
			return nil, fmt.Errorf("cannot load series %s: %w", src.Name, err)
		}
		series = append(series, schema.Series{Name: src.Name, Samples: samples})
	}
	return series, nil
}

// FilePaths returns the paths of the file-backed sources.
func FilePaths(sources []schema.Source) []string {
	var paths []string
	for _, src := range sources {
		if !src.Stored {
			paths = append(paths, src.Path)
		}
	}
	return paths
}
