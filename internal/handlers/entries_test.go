package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"smart_climate/internal/models"
	"smart_climate/internal/service"
)

func TestEntryHandlers(t *testing.T) {
	entries := &mockEntries{
		list: []models.ConfigEntry{
			{EntryID: "e1", Domain: "smart_climate", Title: "Smart Climate"},
			{EntryID: "e2", Domain: "smart_climate", Title: "Smart Climate"},
		},
		entry: models.ConfigEntry{EntryID: "e1", Domain: "smart_climate", Data: map[string]any{"sensor": "sensor.a"}},
	}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Entries: entries}
	r := newTestRouter(s)

	w := doRequest(r, http.MethodGet, "/api/v1/entries", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d", w.Code)
	}
	var list struct {
		Count   int                  `json:"count"`
		Entries []models.ConfigEntry `json:"entries"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if list.Count != 2 || len(list.Entries) != 2 {
		t.Fatalf("unexpected list: %+v", list)
	}

	w = doRequest(r, http.MethodGet, "/api/v1/entries/e1", "")
	var e models.ConfigEntry
	_ = json.Unmarshal(w.Body.Bytes(), &e)
	if w.Code != http.StatusOK || e.Data["sensor"] != "sensor.a" || entries.lastEntryID != "e1" {
		t.Fatalf("unexpected get: code=%d entry=%+v", w.Code, e)
	}

	w = doRequest(r, http.MethodDelete, "/api/v1/entries/e1", "")
	if w.Code != http.StatusNoContent || len(entries.removed) != 1 {
		t.Fatalf("unexpected delete: code=%d removed=%v", w.Code, entries.removed)
	}

	entries.err = fmt.Errorf("%w: e3", service.ErrEntryNotFound)
	if w = doRequest(r, http.MethodGet, "/api/v1/entries/e3", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on get, got %d", w.Code)
	}
	if w = doRequest(r, http.MethodDelete, "/api/v1/entries/e3", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on delete, got %d", w.Code)
	}

	entries.listErr = errors.New("db down")
	if w = doRequest(r, http.MethodGet, "/api/v1/entries", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on list failure, got %d", w.Code)
	}
}

func TestEntityHandlers(t *testing.T) {
	ents := &mockEntities{list: []models.Entity{{EntityID: "climate.a", Domain: "climate"}}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Entities: ents}
	r := newTestRouter(s)

	w := doRequest(r, http.MethodGet, "/api/v1/entities?domain=Climate", "")
	if w.Code != http.StatusOK || ents.lastDomain != "climate" {
		t.Fatalf("unexpected list: code=%d domain=%q", w.Code, ents.lastDomain)
	}

	w = doRequest(r, http.MethodPut, "/api/v1/entities", `[{"entity_id":" Sensor.Hall ","name":"Hall"},{"entity_id":"climate.b"}]`)
	if w.Code != http.StatusOK {
		t.Fatalf("upsert status=%d body=%s", w.Code, w.Body.String())
	}
	if len(ents.upserted) != 2 || ents.upserted[0].EntityID != "sensor.hall" || ents.upserted[0].Name != "Hall" {
		t.Fatalf("unexpected upserts: %+v", ents.upserted)
	}

	w = doRequest(r, http.MethodPut, "/api/v1/entities", `[{"entity_id":"nodomain"}]`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad entity id, got %d", w.Code)
	}
	w = doRequest(r, http.MethodPut, "/api/v1/entities", `[{"name":"x"}]`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing entity id, got %d", w.Code)
	}
}

func TestSchemaAndHealth(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 1}})

	w := doRequest(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/api/v1/schema", "")
	if w.Code != http.StatusOK {
		t.Fatalf("schema status=%d", w.Code)
	}
	var js map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &js); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	props, _ := js["properties"].(map[string]any)
	if _, ok := props["main_climate"]; !ok {
		t.Fatalf("schema lacks main_climate: %v", js)
	}
}
