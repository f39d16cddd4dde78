package service

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	sc "smart_climate"
	"smart_climate/internal/flow"
	"smart_climate/internal/models"
)

func writeImportFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write import file: %v", err)
	}
	return path
}

func newImportFixture(t *testing.T) (*ImportService, *flowFixture) {
	t.Helper()
	fx := newFlowFixture(t)
	return NewImportService(fx.entries, fx.svc, fx.svc.audit, nil), fx
}

func TestImportService_ImportFile_YAML(t *testing.T) {
	svc, fx := newImportFixture(t)
	path := writeImportFile(t, "import.yaml", `
smart_climate:
  - main_climate: climate.Living_Room
    sensor: sensor.living_temp
    min_runtime_seconds: "120"
  - main_climate: climate.bedroom
    sensor: switch.not_a_sensor
  - main_climate: " climate.living_room "
    sensor: sensor.other
`)

	rep, err := svc.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if rep.Created != 1 || rep.Invalid != 1 || rep.Skipped != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if len(rep.Results) != 2 {
		t.Fatalf("expected 2 flow results, got %d", len(rep.Results))
	}

	entries, _ := fx.entries.List(context.Background(), sc.Domain)
	if len(entries) != 1 {
		t.Fatalf("expected 1 stored entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Source != models.SourceImport || e.Data["main_climate"] != "climate.living_room" || e.Data["min_runtime_seconds"] != 120 {
		t.Fatalf("unexpected entry: %+v", e)
	}

	// the invalid record's flow is not left behind
	if n := fx.svc.setup.Len(); n != 0 {
		t.Fatalf("expected no in-progress flows, got %d", n)
	}

	want := []string{models.EventEntryCreated, models.EventValidationFailed, models.EventFlowAborted, models.EventImportSkipped}
	if got := fx.events.types(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v; want %v", got, want)
	}
}

func TestImportService_ImportFile_SkipsConfigured(t *testing.T) {
	svc, fx := newImportFixture(t)
	ctx := context.Background()
	if _, err := fx.svc.Import(ctx, sc.Domain, validInput()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	path := writeImportFile(t, "import.json", `{"smart_climate": {"main_climate": "climate.living_room", "sensor": "sensor.x"}}`)
	rep, err := svc.ImportFile(ctx, path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if rep.Skipped != 1 || rep.Created != 0 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestImportService_ImportFile_Errors(t *testing.T) {
	svc, _ := newImportFixture(t)
	ctx := context.Background()

	if _, err := svc.ImportFile(ctx, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	bad := writeImportFile(t, "bad.yaml", "smart_climate:\n  - just a string\n")
	if _, err := svc.ImportFile(ctx, bad); err == nil {
		t.Fatalf("expected error for non-mapping record")
	}
}

func TestImportService_ImportFile_EmptyFile(t *testing.T) {
	svc, _ := newImportFixture(t)

	path := writeImportFile(t, "empty.yaml", "other_integration: {}\n")
	rep, err := svc.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if rep.Created+rep.Skipped+rep.Invalid != 0 || len(rep.Results) != 0 {
		t.Fatalf("expected empty report, got %+v", rep)
	}
}

func TestImportService_ImportFile_ListError(t *testing.T) {
	svc, fx := newImportFixture(t)
	fx.entries.listErr = os.ErrPermission

	path := writeImportFile(t, "import.yaml", "smart_climate: []\n")
	if _, err := svc.ImportFile(context.Background(), path); err == nil {
		t.Fatalf("expected list error")
	}
}

func TestImportService_ResultsCarryFlowIDs(t *testing.T) {
	svc, _ := newImportFixture(t)
	path := writeImportFile(t, "import.yaml", "smart_climate:\n  - main_climate: climate.a\n    sensor: sensor.a\n")

	rep, err := svc.ImportFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if rep.Results[0].Type != flow.ResultCreateEntry || rep.Results[0].FlowID == "" || rep.Results[0].EntryID == "" {
		t.Fatalf("unexpected result: %+v", rep.Results[0])
	}
}
