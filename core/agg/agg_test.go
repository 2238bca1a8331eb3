package agg

import (
	_ "embed"
	"strings"
	"testing"

	"github.com/huangsam/trendline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/posts.csv
var postsFixture string

func TestBucket(t *testing.T) {
	got, err := Bucket(strings.NewReader(postsFixture), BucketOptions{IntervalMinutes: 10})
	require.NoError(t, err)
	assert.Equal(t, schema.SampleMap{
		"2025-06-01T12:00": 3,
		"2025-06-01T12:10": 1,
		"2025-06-01T12:30": 1,
		"2025-06-01T13:00": 1,
	}, got)
}

func TestBucketUniqueBy(t *testing.T) {
	got, err := Bucket(strings.NewReader(postsFixture), BucketOptions{IntervalMinutes: 10, UniqueBy: "shortCode"})
	require.NoError(t, err)
	assert.Equal(t, 2, got["2025-06-01T12:00"])
}

func TestBucketHourly(t *testing.T) {
	got, err := Bucket(strings.NewReader(postsFixture), BucketOptions{IntervalMinutes: 60})
	require.NoError(t, err)
	assert.Equal(t, schema.SampleMap{
		"2025-06-01T12:00": 5,
		"2025-06-01T13:00": 1,
	}, got)
}

func TestBucketErrors(t *testing.T) {
	_, err := Bucket(strings.NewReader(postsFixture), BucketOptions{IntervalMinutes: 7})
	assert.ErrorContains(t, err, "divisor of 60")

	_, err = Bucket(strings.NewReader("id,when\n1,2025-06-01T12:00\n"), BucketOptions{IntervalMinutes: 10})
	assert.ErrorContains(t, err, `column "timestamp" not found`)

	_, err = Bucket(strings.NewReader("timestamp\n2025-06-01T12:00\n2025-06-01\n"), BucketOptions{IntervalMinutes: 10})
	assert.ErrorContains(t, err, "row 3")

	_, err = Bucket(strings.NewReader("timestamp\n2025-06-01T12:xx:00\n"), BucketOptions{IntervalMinutes: 10})
	assert.ErrorContains(t, err, "no valid minute")

	_, err = Bucket(strings.NewReader(postsFixture), BucketOptions{IntervalMinutes: 10, UniqueBy: "postId"})
	assert.ErrorContains(t, err, "postId")
}

func TestBucketEmpty(t *testing.T) {
	got, err := Bucket(strings.NewReader(""), BucketOptions{IntervalMinutes: 10})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Bucket(strings.NewReader("timestamp\n"), BucketOptions{IntervalMinutes: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBucketTimestamp(t *testing.T) {
	cases := map[string]string{
		"2025-06-01T12:00":         "2025-06-01T12:00",
		"2025-06-01T12:09:59Z":     "2025-06-01T12:00",
		"2025-06-01T23:59:59.999Z": "2025-06-01T23:50",
	}
	for in, want := range cases {
		got, err := BucketTimestamp(in, 10)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	got, err := BucketTimestamp("2025-06-01T12:44", 15)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01T12:30", got)
}

func TestCombineWindow(t *testing.T) {
	a := schema.SampleMap{"T1": 1, "T2": 2, "T3": 3, "T4": 4}
	b := schema.SampleMap{"T2": 10, "T3": 20, "T5": 50}
	got := CombineWindow(a, b)
	assert.Equal(t, schema.SampleMap{"T2": 12, "T3": 23, "T4": 4}, got)

	// inputs stay untouched
	assert.Len(t, a, 4)
	assert.Len(t, b, 3)
}

func TestCombineWindowEdges(t *testing.T) {
	assert.Empty(t, CombineWindow())
	assert.Empty(t, CombineWindow(schema.SampleMap{}, nil))

	single := schema.SampleMap{"T1": 1, "T2": 0}
	assert.Equal(t, single, CombineWindow(single, schema.SampleMap{}))

	disjoint := CombineWindow(schema.SampleMap{"T1": 1}, schema.SampleMap{"T2": 1})
	assert.Empty(t, disjoint)
}
