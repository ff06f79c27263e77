package service_test

import (
	"testing"
	"time"

	"github.com/SeAkman0/calocam-cli/internal/service"
)

func TestAddWaterAndDailyTotal(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	logged := time.Date(2026, 5, 4, 9, 0, 0, 0, time.Local)
	for _, ml := range []int{500, 250, 300} {
		if _, err := service.AddWater(db, service.AddWaterInput{AmountMl: ml, LoggedAt: logged}); err != nil {
			t.Fatalf("add water: %v", err)
		}
		logged = logged.Add(2 * time.Hour)
	}
	// Next day's entry stays out of the total.
	if _, err := service.AddWater(db, service.AddWaterInput{
		AmountMl: 400,
		LoggedAt: time.Date(2026, 5, 5, 9, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("add water: %v", err)
	}

	total, err := service.WaterTotalForDay(db, "2026-05-04")
	if err != nil {
		t.Fatalf("water total: %v", err)
	}
	if total != 1050 {
		t.Fatalf("expected 1050 ml, got %d", total)
	}

	empty, err := service.WaterTotalForDay(db, "2026-05-10")
	if err != nil {
		t.Fatalf("water total for empty day: %v", err)
	}
	if empty != 0 {
		t.Fatalf("expected 0 ml for empty day, got %d", empty)
	}
}

func TestAddWaterRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.AddWater(db, service.AddWaterInput{AmountMl: 0}); err == nil {
		t.Fatalf("expected error for 0 ml")
	}
	if _, err := service.AddWater(db, service.AddWaterInput{AmountMl: -250}); err == nil {
		t.Fatalf("expected error for negative ml")
	}
}

func TestListWaterByDate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.AddWater(db, service.AddWaterInput{
		AmountMl: 500,
		LoggedAt: time.Date(2026, 5, 4, 9, 0, 0, 0, time.Local),
	}); err != nil {
		t.Fatalf("add water: %v", err)
	}

	entries, err := service.ListWater(db, service.ListWaterFilter{Date: "2026-05-04"})
	if err != nil {
		t.Fatalf("list water: %v", err)
	}
	if len(entries) != 1 || entries[0].AmountMl != 500 {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	none, err := service.ListWater(db, service.ListWaterFilter{Date: "2026-05-05"})
	if err != nil {
		t.Fatalf("list water: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no entries, got %d", len(none))
	}
}

func TestDeleteWater(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	id, err := service.AddWater(db, service.AddWaterInput{AmountMl: 300})
	if err != nil {
		t.Fatalf("add water: %v", err)
	}
	if err := service.DeleteWater(db, id); err != nil {
		t.Fatalf("delete water: %v", err)
	}
	if err := service.DeleteWater(db, id); err == nil {
		t.Fatalf("expected second delete to fail")
	}
}
