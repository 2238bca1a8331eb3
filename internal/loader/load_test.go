package loader

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/trendline/internal/iostore"
	"github.com/huangsam/trendline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		arg      string
		expected schema.Source
	}{
		{"testdata/insta.json", schema.Source{Name: "insta", Path: "testdata/insta.json"}},
		{"weekend=testdata/insta.json", schema.Source{Name: "weekend", Path: "testdata/insta.json"}},
		{"store:wechat", schema.Source{Name: "wechat", Stored: true}},
		{"  plain  ", schema.Source{Name: "plain", Path: "plain"}},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			src, err := ParseSource(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, src)
		})
	}

	for _, bad := range []string{"", "store:", "=x.json", "name="} {
		_, err := ParseSource(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseSourcesRejectsDuplicates(t *testing.T) {
	_, err := ParseSources([]string{"a/insta.json", "b/insta.json"})
	assert.ErrorIs(t, err, ErrDuplicateSeries)

	sources, err := ParseSources([]string{"a/insta.json", "other=b/insta.json"})
	require.NoError(t, err)
	assert.Len(t, sources, 2)
}

func TestReadSampleMap(t *testing.T) {
	m, err := ReadSampleMap(strings.NewReader(`{"2025-06-01T12:00": 3, "2025-06-01T12:10": 0}`))
	require.NoError(t, err)
	assert.Equal(t, schema.SampleMap{"2025-06-01T12:00": 3, "2025-06-01T12:10": 0}, m)

	m, err = ReadSampleMap(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestReadSampleMapErrors(t *testing.T) {
	tests := map[string]string{
		`{"2025-06-01T12:00": -1}`:  "negative",
		`{"2025-06-01T12:00": 1.5}`: "not an integer",
		`{"2025-06-01T12:00": "many"}`: "cannot decode",
		`[1, 2]`:                    "cannot decode",
		``:                          "no JSON object",
	}
	for in, want := range tests {
		_, err := ReadSampleMap(strings.NewReader(in))
		assert.ErrorContains(t, err, want, in)
	}
}

func TestLoadFile(t *testing.T) {
	m, err := LoadFile("testdata/insta.json")
	require.NoError(t, err)
	assert.Len(t, m, 4)
	assert.Equal(t, 20, m["2025-06-01T12:10"])

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	store := &iostore.MockSampleStore{}
	store.On("LoadSeries", "wechat").Return(schema.SampleMap{"2025-06-01T12:10": 5}, nil)

	series, err := Load([]schema.Source{
		{Name: "insta", Path: "testdata/insta.json"},
		{Name: "wechat", Stored: true},
	}, store)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "insta", series[0].Name)
	assert.Len(t, series[0].Samples, 4)
	assert.Equal(t, schema.SampleMap{"2025-06-01T12:10": 5}, series[1].Samples)
	store.AssertExpectations(t)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load([]schema.Source{{Name: "wechat", Stored: true}}, nil)
	assert.ErrorIs(t, err, ErrNoStore)

	_, err = Load([]schema.Source{
		{Name: "insta", Path: "testdata/insta.json"},
		{Name: "insta", Path: "testdata/wechat.json"},
	}, nil)
	assert.ErrorIs(t, err, ErrDuplicateSeries)

	store := &iostore.MockSampleStore{}
	store.On("LoadSeries", "gone").Return(schema.SampleMap(nil), iostore.ErrSeriesNotFound)
	_, err = Load([]schema.Source{{Name: "gone", Stored: true}}, store)
	assert.True(t, errors.Is(err, iostore.ErrSeriesNotFound))
	assert.ErrorContains(t, err, "gone")
}

func TestFilePaths(t *testing.T) {
	paths := FilePaths([]schema.Source{
		{Name: "a", Path: "a.json"},
		{Name: "b", Stored: true},
	})
	assert.Equal(t, []string{"a.json"}, paths)
	assert.Empty(t, FilePaths(nil))
}
