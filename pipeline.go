package coinsum

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TableLoader yields raw tables by name. The file-based loader and the
// remote exchange adapter both implement it, so the pipeline never knows
// where its rows come from.
type TableLoader interface {
	Load(name string) (*Table, error)
}

// DirLoader loads CSV tables from files in a directory.
type DirLoader struct {
	Dir string
}

func (l DirLoader) Load(name string) (*Table, error) {
	path := filepath.Join(l.Dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()
	return ReadTable(name, f)
}

// SourceSummary is one source path's aggregate for one asset.
type SourceSummary struct {
	Source  string
	Summary Summary
}

// AssetSummary is the final per-asset aggregate, with the per-source
// breakdown it was reduced from.
type AssetSummary struct {
	Asset   string
	Sources []SourceSummary
	Final   Summary
}

// Pipeline drives every source through retrieve, normalize and aggregate,
// then reduces the per-source summaries into one summary per asset.
type Pipeline struct {
	loader  TableLoader
	sources []SourceSpec
}

// NewPipeline creates a pipeline over the given loader. With no explicit
// sources it runs the three built-in acquisition paths.
func NewPipeline(loader TableLoader, sources ...SourceSpec) *Pipeline {
	if len(sources) == 0 {
		sources = DefaultSources()
	}
	return &Pipeline{loader: loader, sources: sources}
}

// Asset runs the full pipeline for one asset ticker. The first structural
// fault (unavailable source, missing column, bad monetary cell) aborts this
// asset. An asset absent from every source is not a fault: it aggregates to
// zeros.
func (p *Pipeline) Asset(asset string) (AssetSummary, error) {
	result := AssetSummary{Asset: asset}
	summaries := make([]Summary, 0, len(p.sources))

	for _, spec := range p.sources {
		src := spec.Resolve(asset)
		t, err := src.Retrieve(p.loader)
		if err != nil {
			return result, fmt.Errorf("asset %s: %w", asset, err)
		}
		rs := NewRecordSet(t)
		if err := src.Recipe.Apply(rs); err != nil {
			return result, fmt.Errorf("asset %s: source %q: %w", asset, src.Name, err)
		}
		summary := Aggregate(rs, src.Fields)
		summaries = append(summaries, summary)
		result.Sources = append(result.Sources, SourceSummary{Source: src.Name, Summary: summary})
	}

	result.Final = Combine(summaries...)
	return result, nil
}

// Run processes every asset, in order, each with its own independent
// pipeline run. A failing asset does not prevent the remaining ones from
// being attempted: its error is joined into the returned error and the
// successful summaries are still returned.
func (p *Pipeline) Run(assets []string) ([]AssetSummary, error) {
	var results []AssetSummary
	var errs []error
	for _, asset := range assets {
		summary, err := p.Asset(asset)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, summary)
	}
	return results, errors.Join(errs...)
}
