package export

import (
	"sort"
	"strings"
	"sync"

	"biasaudit/adapters/excel"
	"biasaudit/domain/core"
	"biasaudit/ports"
)

// fileNamer lets an exporter pick its own file name
type fileNamer interface {
	FileName(base string) string
}

// Registry looks exporters up by format name
type Registry struct {
	exporters map[string]ports.ReportExporterPort
	mu        sync.RWMutex
}

// NewRegistry creates a registry holding the given exporters
func NewRegistry(exporters ...ports.ReportExporterPort) *Registry {
	r := &Registry{exporters: make(map[string]ports.ReportExporterPort)}
	for _, e := range exporters {
		r.Register(e)
	}
	return r
}

// DefaultRegistry holds every built-in format
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewMarkdownExporter(),
		NewHTMLExporter(),
		NewJSONExporter("  "),
		NewYAMLExporter(),
		NewSVGExporter(ChartDistribution),
		NewSVGExporter(ChartTrend),
		excel.NewWorkbookExporter(),
	)
}

// Register adds or replaces the exporter for its format
func (r *Registry) Register(e ports.ReportExporterPort) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exporters[strings.ToLower(e.Format())] = e
}

// Get returns the exporter for a format, case-insensitively
func (r *Registry) Get(format string) (ports.ReportExporterPort, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.exporters[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, core.NewUnknownFormatError(format)
	}
	return e, nil
}

// Formats lists the registered format names in sorted order
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.exporters))
	for f := range r.exporters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// FileName is the output file name for an exporter given a base name
func FileName(base string, e ports.ReportExporterPort) string {
	if n, ok := e.(fileNamer); ok {
		return n.FileName(base)
	}
	return base + "." + e.Extension()
}
