// Package report runs every analytical view and exports the results as
// spreadsheets, CSV files and charts.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"freelancer-analyzer/serialize"
	"freelancer-analyzer/services"
	"freelancer-analyzer/utils"
)

// Section is the normalised result of one view.
type Section struct {
	Kind services.AnalysisKind
	Data serialize.Value
}

// Report holds every view in display order.
type Report struct {
	Source   string
	Total    int
	Sections []Section
}

// Build runs all views on a worker pool. Sections keep the order of
// services.AllKinds regardless of completion order.
func Build(a *services.Analyzer, source string, workers int, logger *utils.Logger) (*Report, error) {
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	sections := make([]Section, len(services.AllKinds))
	var (
		mu   sync.Mutex
		errs []error
	)

	pool := utils.NewWorkerPool(workers, 0)
	for i, kind := range services.AllKinds {
		i, kind := i, kind
		pool.Submit(func() {
			data, err := a.Run(kind)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", kind, err))
				mu.Unlock()
				return
			}
			sections[i] = Section{Kind: kind, Data: serialize.Normalize(data)}
		})
	}
	pool.Wait()

	if len(errs) > 0 {
		return nil, fmt.Errorf("report: %w", errors.Join(errs...))
	}
	logger.Info("[report] Built %d sections over %d records", len(sections), a.Total())
	return &Report{Source: source, Total: a.Total(), Sections: sections}, nil
}

// Row is one leaf of a flattened value tree.
type Row struct {
	Path  string
	Value serialize.Value
}

// Text renders the leaf for plain-text outputs; null is empty.
func (r Row) Text() string {
	v := r.Value
	switch v.Kind() {
	case serialize.KindBool:
		return strconv.FormatBool(v.Bool())
	case serialize.KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case serialize.KindFloat:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case serialize.KindString:
		return v.Str()
	case serialize.KindArray:
		return "[]"
	case serialize.KindObject:
		return "{}"
	}
	return ""
}

// Flatten lists the leaves of v with dotted member paths and bracketed
// array indexes, e.g. "market_share[0].platform". Empty containers are
// kept as leaves.
func Flatten(v serialize.Value) []Row {
	var rows []Row
	flatten("", v, &rows)
	return rows
}

func flatten(path string, v serialize.Value, rows *[]Row) {
	switch {
	case v.Kind() == serialize.KindObject && v.Len() > 0:
		for _, m := range v.Members() {
			key := m.Key
			if path != "" {
				key = path + "." + m.Key
			}
			flatten(key, m.Value, rows)
		}
	case v.Kind() == serialize.KindArray && v.Len() > 0:
		for i, item := range v.Items() {
			flatten(path+"["+strconv.Itoa(i)+"]", item, rows)
		}
	default:
		*rows = append(*rows, Row{Path: path, Value: v})
	}
}

// headline picks a one-line description of a section for overview tables.
func headline(s Section) string {
	if v, ok := s.Data.Get("summary"); ok && v.Kind() == serialize.KindString {
		return v.Str()
	}
	if v, ok := s.Data.Path("insights", "expert_completion_rate"); ok && v.Kind() == serialize.KindString {
		return v.Str()
	}
	return ""
}
