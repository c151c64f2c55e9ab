package promtext

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefine_OverwriteReplacesDefinition(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Define("m", "first help", Gauge))
	require.NoError(t, g.Define("m", "second help", Counter))

	out, err := g.FormatWithHeader("m", nil, 1)
	require.NoError(t, err)
	require.Equal(t, "# HELP m second help\n# TYPE m counter\nm 1", out)
}

func TestDefine_InvalidTypeLeavesDefinitionUntouched(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Define("m", "h", Gauge))

	err := g.Define("m", "new help", MetricType(42))
	var typeErr *InvalidMetricTypeError
	require.True(t, errors.As(err, &typeErr))
	require.Equal(t, "MetricType(42)", typeErr.Value)
	require.Equal(t, ValidMetricTypes(), typeErr.Valid)

	// Prior definition still in effect.
	out, err := g.FormatWithHeader("m", nil, 1)
	require.NoError(t, err)
	require.Contains(t, out, "# HELP m h")
	require.Contains(t, out, "# TYPE m gauge")
}

func TestDefine_InvalidTypeOnNewNameDoesNotInsert(t *testing.T) {
	g := NewGenerator()
	require.Error(t, g.Define("m", "h", MetricType(-1)))
	require.False(t, g.Defined("m"))
}

func TestFormatSample_UndefinedMetricFails(t *testing.T) {
	g := NewGenerator()
	_, err := g.FormatSample("never_defined", nil, 1)

	var undefErr *UndefinedMetricError
	require.True(t, errors.As(err, &undefErr))
	require.Equal(t, "never_defined", undefErr.Name)
}

func TestFormatSample_OmitsLabelBlockWhenEmpty(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Define("name", "h", Gauge))

	out, err := g.FormatSample("name", nil, 5)
	require.NoError(t, err)
	require.Equal(t, "name 5", out)

	out, err = g.FormatSample("name", LabelSet{{Key: "a", Value: nil}}, 5)
	require.NoError(t, err)
	require.Equal(t, "name 5", out)
}

func TestFormatSample_ValuePassThrough(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Define("m", "h", Gauge))

	cases := []struct {
		value any
		want  string
	}{
		{42, "m 42"},
		{42.5, "m 42.5"},
		{"verbatim", "m verbatim"},
		{uint64(18446744073709551615), "m 18446744073709551615"},
	}
	for _, tc := range cases {
		out, err := g.FormatSample("m", nil, tc.value)
		require.NoError(t, err)
		require.Equal(t, tc.want, out)
	}
}

func TestFormatWithHeader_EndToEndExample(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Define("http_requests_total", "Total number of HTTP requests", Counter))

	out, err := g.FormatWithHeader("http_requests_total", LabelSet{
		{Key: "method", Value: "GET"},
		{Key: "endpoint", Value: "/api/users"},
	}, 42)
	require.NoError(t, err)
	require.Equal(t, "# HELP http_requests_total Total number of HTTP requests\n"+
		"# TYPE http_requests_total counter\n"+
		`http_requests_total{method="GET",endpoint="/api/users"} 42`, out)
}

func TestFormatWithHeader_AlwaysIncludesHeader(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Define("m", "h", Gauge))
	require.NoError(t, g.Append("m", nil, 1))

	// Header already emitted into the buffer; the one-shot path still renders it.
	out, err := g.FormatWithHeader("m", nil, 2)
	require.NoError(t, err)
	require.Equal(t, "# HELP m h\n# TYPE m gauge\nm 2", out)
}

func TestDefineAndFormat_AlwaysRedefines(t *testing.T) {
	g := NewGenerator()

	out, err := g.DefineAndFormat("m", "old help", SampleOptions{Value: 1})
	require.NoError(t, err)
	require.Equal(t, "# HELP m old help\n# TYPE m gauge\nm 1", out)

	out, err = g.DefineAndFormat("m", "new help", SampleOptions{Type: Summary, Value: 2})
	require.NoError(t, err)
	require.Equal(t, "# HELP m new help\n# TYPE m summary\nm 2", out)

	// The overwrite sticks for later renders.
	out, err = g.FormatWithHeader("m", nil, 3)
	require.NoError(t, err)
	require.Equal(t, "# HELP m new help\n# TYPE m summary\nm 3", out)
}

func TestAppend_HeaderEmittedOncePerBuffer(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Define("reqs", "Requests", Counter))

	require.NoError(t, g.Append("reqs", LabelSet{{Key: "code", Value: 200}}, 10))
	require.NoError(t, g.Append("reqs", LabelSet{{Key: "code", Value: 404}}, 2))
	require.NoError(t, g.Append("reqs", LabelSet{{Key: "code", Value: 500}}, 1))

	require.Equal(t, []string{
		"# HELP reqs Requests",
		"# TYPE reqs counter",
		`reqs{code="200"} 10`,
		`reqs{code="404"} 2`,
		`reqs{code="500"} 1`,
	}, strings.Split(g.Output(), "\n"))
}

func TestAppend_InterleavedMetricsKeepAppendOrder(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Define("a", "A", Gauge))
	require.NoError(t, g.Define("b", "B", Gauge))

	require.NoError(t, g.Append("a", nil, 1))
	require.NoError(t, g.Append("b", nil, 2))
	require.NoError(t, g.Append("a", nil, 3))

	require.Equal(t, []string{
		"# HELP a A",
		"# TYPE a gauge",
		"a 1",
		"# HELP b B",
		"# TYPE b gauge",
		"b 2",
		"a 3",
	}, strings.Split(g.Output(), "\n"))
}

func TestAppend_UndefinedMetricLeavesBufferUnmodified(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Define("known", "h", Gauge))
	require.NoError(t, g.Append("known", nil, 1))
	before := g.Output()

	err := g.Append("unknown", nil, 2)
	var undefErr *UndefinedMetricError
	require.True(t, errors.As(err, &undefErr))
	require.Equal(t, before, g.Output())
	require.Equal(t, 3, g.Len())
}

func TestAppendWithDefine_KeepsExistingDefinition(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Define("m", "original help", Counter))

	// Supplied help/type ignored because m is already defined.
	require.NoError(t, g.AppendWithDefine("m", "other help", SampleOptions{Type: Summary, Value: 1}))

	require.Equal(t, []string{
		"# HELP m original help",
		"# TYPE m counter",
		"m 1",
	}, strings.Split(g.Output(), "\n"))
}

func TestAppendWithDefine_DefinesWhenAbsent(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.AppendWithDefine("fresh", "Fresh metric", SampleOptions{Type: Histogram, Value: 3}))

	require.True(t, g.Defined("fresh"))
	require.Equal(t, "# HELP fresh Fresh metric\n# TYPE fresh histogram\nfresh 3", g.Output())
}

func TestClear_ResetsHeadersButNotDefinitions(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Define("m", "h", Gauge))
	require.NoError(t, g.Append("m", nil, 1))

	g.Clear()
	require.Equal(t, "", g.Output())
	require.Equal(t, 0, g.Len())

	// No redefinition needed, and the header comes back exactly once.
	require.NoError(t, g.Append("m", nil, 2))
	require.NoError(t, g.Append("m", nil, 3))
	require.Equal(t, []string{
		"# HELP m h",
		"# TYPE m gauge",
		"m 2",
		"m 3",
	}, strings.Split(g.Output(), "\n"))
}

func TestAppend_QuoteEscapingExample(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Define("test_metric", "Test metric", Gauge))
	require.NoError(t, g.Append("test_metric", LabelSet{
		{Key: "path", Value: "/api/users?filter=active"},
		{Key: "message", Value: `Hello "World"`},
	}, 1))

	lines := strings.Split(g.Output(), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, `test_metric{path="/api/users?filter=active",message="Hello \"World\""} 1`, lines[2])
}

func TestOutput_NoTrailingNewline(t *testing.T) {
	g := NewGenerator()
	require.NoError(t, g.Define("m", "h", Gauge))
	require.NoError(t, g.Append("m", nil, 1))

	out := g.Output()
	require.False(t, strings.HasSuffix(out, "\n"))
}

func TestOutput_EmptyBuffer(t *testing.T) {
	require.Equal(t, "", NewGenerator().Output())
}

func TestGenerators_AreIndependent(t *testing.T) {
	a := NewGenerator()
	b := NewGenerator()
	require.NoError(t, a.Define("m", "h", Gauge))

	_, err := b.FormatSample("m", nil, 1)
	require.Error(t, err)
}
