package export

import (
	"testing"

	"biasaudit/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_Formats(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"html", "json", "markdown", "svg-accuracy-trend", "svg-score-distribution", "xlsx", "yaml"}, r.Formats())
}

func TestRegistry_Get(t *testing.T) {
	r := DefaultRegistry()

	e, err := r.Get(" HTML ")
	require.NoError(t, err)
	assert.Equal(t, "html", e.Format())

	_, err = r.Get("pdf")
	assert.ErrorIs(t, err, core.ErrUnknownFormat)
	assert.Contains(t, err.Error(), `"pdf"`)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry(NewJSONExporter(""))
	indented := NewJSONExporter("\t")
	r.Register(indented)

	e, err := r.Get("json")
	require.NoError(t, err)
	assert.Same(t, indented, e)
	assert.Len(t, r.Formats(), 1)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "audit.md", FileName("audit", NewMarkdownExporter()))
	xlsx, err := DefaultRegistry().Get("xlsx")
	require.NoError(t, err)
	assert.Equal(t, "audit.xlsx", FileName("audit", xlsx))
	assert.Equal(t, "audit-score-distribution.svg", FileName("audit", NewSVGExporter(ChartDistribution)))
}
