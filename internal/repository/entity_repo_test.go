package repository_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"smart_climate/internal/models"
	"smart_climate/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

type sqlmockArgumentFunc func(v driver.Value) bool

func (f sqlmockArgumentFunc) Match(v driver.Value) bool {
	return f(v)
}

func TestEntitySQLite_Upsert_DerivesDomainAndSetsUTC(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewEntitySQLite(db)

	isUTCRecent := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok || tm.Location() != time.UTC {
			return false
		}
		now := time.Now().UTC()
		return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO entities")).
		WithArgs("climate.hvac", "climate", "Living room", isUTCRecent).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Upsert(context.Background(), models.Entity{EntityID: " Climate.HVAC", Name: "Living room"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEntitySQLite_Upsert_RejectsMalformedID(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewEntitySQLite(db)
	for _, id := range []string{"", "climate", ".hvac", "climate."} {
		if err := repo.Upsert(context.Background(), models.Entity{EntityID: id}); err == nil {
			t.Fatalf("Upsert(%q) expected error", id)
		}
	}
}

func TestEntitySQLite_Upsert_ExecErrorIsPropagated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewEntitySQLite(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO entities")).
		WillReturnError(errors.New("db down"))

	if err := repo.Upsert(context.Background(), models.Entity{EntityID: "sensor.t"}); err == nil {
		t.Fatalf("Upsert() expected error, got nil")
	}
}

func TestEntitySQLite_List_FiltersByDomain(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewEntitySQLite(db)

	locNY, _ := time.LoadLocation("America/New_York")
	ts := time.Date(2024, 2, 1, 8, 30, 0, 0, locNY)
	rows := sqlmock.NewRows([]string{"entity_id", "domain", "name", "updated_at"}).
		AddRow("sensor.outside", "sensor", "Outside", ts).
		AddRow("sensor.room", "sensor", nil, ts)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT entity_id, domain, name, updated_at FROM entities WHERE domain = ? ORDER BY entity_id ASC")).
		WithArgs("sensor").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), "sensor")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Outside" || got[1].Name != "" {
		t.Fatalf("unexpected entities: %+v", got)
	}
	if got[0].UpdatedAt.Location() != time.UTC {
		t.Fatalf("UpdatedAt not UTC: %v", got[0].UpdatedAt.Location())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
