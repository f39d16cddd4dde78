package service

import (
	"context"
	"fmt"
	"strings"

	sc "smart_climate"
	"smart_climate/internal/flow"
	"smart_climate/internal/logger"
	"smart_climate/internal/models"
	"smart_climate/internal/repository"
	"smart_climate/internal/schema"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ImportReport summarises one ImportFile run.
type ImportReport struct {
	Created int           `json:"created"`
	Skipped int           `json:"skipped"`
	Invalid int           `json:"invalid"`
	Results []flow.Result `json:"results"`
}

type recordImporter interface {
	Import(ctx context.Context, handler string, record map[string]any) (flow.Result, error)
}

// ImportService feeds records from a static YAML or JSON file into the
// import step. The file holds a list of records under the smart_climate key.
type ImportService struct {
	entryRepo repository.EntryRepo
	flows     recordImporter
	audit     *auditor
	log       *logger.Logger
}

func NewImportService(entryRepo repository.EntryRepo, flows recordImporter, audit *auditor, log *logger.Logger) *ImportService {
	return &ImportService{entryRepo: entryRepo, flows: flows, audit: audit, log: log}
}

// ImportFile imports every record in path. Records whose main climate is
// already configured are skipped so that re-reading the file is harmless.
func (s *ImportService) ImportFile(ctx context.Context, path string) (ImportReport, error) {
	records, err := readImportFile(path)
	if err != nil {
		return ImportReport{}, err
	}

	existing, err := s.configuredClimates(ctx)
	if err != nil {
		return ImportReport{}, err
	}

	var rep ImportReport
	for i, rec := range records {
		main := normalizeEntityRef(rec[schema.KeyMainClimate])
		if _, dup := existing[main]; dup && main != "" {
			rep.Skipped++
			s.audit.record(ctx, models.FlowEvent{
				Type:        models.EventImportSkipped,
				Description: "Import skipped: " + main + " already configured",
				Metadata:    map[string]any{"index": i, "path": path},
			})
			continue
		}

		res, err := s.flows.Import(ctx, sc.Domain, rec)
		if err != nil {
			return rep, fmt.Errorf("import record %d: %w", i, err)
		}
		rep.Results = append(rep.Results, res)
		if res.Type == flow.ResultCreateEntry {
			rep.Created++
			existing[main] = struct{}{}
			continue
		}
		rep.Invalid++
		if s.log != nil {
			s.log.Warnw("import_record_invalid", "index", i, "path", path, "errors", res.Errors)
		}
	}
	return rep, nil
}

func (s *ImportService) configuredClimates(ctx context.Context) (map[string]struct{}, error) {
	entries, err := s.entryRepo.List(ctx, sc.Domain)
	if err != nil {
		return nil, fmt.Errorf("list entries for import: %w", err)
	}
	out := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if ref := normalizeEntityRef(e.Current()[schema.KeyMainClimate]); ref != "" {
			out[ref] = struct{}{}
		}
	}
	return out, nil
}

// readImportFile loads the records listed under the domain key. A single
// mapping is accepted as a one-record list.
func readImportFile(path string) ([]map[string]any, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read import file %q: %w", path, err)
	}

	raw := v.Get(sc.Domain)
	switch t := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]map[string]any, 0, len(t))
		for i, item := range t {
			m, err := cast.ToStringMapE(item)
			if err != nil {
				return nil, fmt.Errorf("import file %q: record %d is not a mapping", path, i)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		m, err := cast.ToStringMapE(t)
		if err != nil {
			return nil, fmt.Errorf("import file %q: %s must be a list of mappings", path, sc.Domain)
		}
		return []map[string]any{m}, nil
	}
}

func normalizeEntityRef(v any) string {
	s, _ := v.(string)
	return strings.ToLower(strings.TrimSpace(s))
}
