package report

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"timetracker/internal/database"
	"timetracker/internal/database/dbtest"
	"timetracker/internal/models"

	"gorm.io/gorm"
)

type seedEntry struct {
	user, date, hours string
}

func seed(t *testing.T, db *gorm.DB, users []string, entries []seedEntry) {
	t.Helper()
	ids := map[string]uint{}
	for _, name := range users {
		u := models.User{Username: name, PasswordHash: "x", Role: models.RoleUser}
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("seed user %s: %v", name, err)
		}
		ids[name] = u.ID
	}
	for _, e := range entries {
		row := models.Entry{UserID: ids[e.user], Date: e.date, Hours: e.hours, Description: e.user + " " + e.date}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}
}

func fixture(t *testing.T) *Engine {
	t.Helper()
	db := dbtest.Open(t)
	seed(t, db, []string{"carol", "alice", "bob"}, []seedEntry{
		{"alice", "2024-01-15", "3"},
		{"bob", "2024-02-01", "abc"},
		{"alice", "2023-12-31", "2.5"},
		{"bob", "2024-01-20", "4"},
		{"alice", "2024-02-10", ""},
	})
	return NewEngine(db)
}

func dates(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Date)
	}
	return out
}

func TestBuildNoFilters(t *testing.T) {
	rep, err := fixture(t).Build(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{"2024-02-10", "2024-02-01", "2024-01-20", "2024-01-15", "2023-12-31"}
	if got := dates(rep.Rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("dates=%v want %v", got, want)
	}
	if math.Abs(rep.Total-9.5) > 1e-9 {
		t.Fatalf("total=%v want 9.5", rep.Total)
	}
	if rep.TotalString() != "9.50" {
		t.Fatalf("total string=%q", rep.TotalString())
	}
	if !reflect.DeepEqual(rep.Usernames, []string{"alice", "bob", "carol"}) {
		t.Fatalf("usernames=%v", rep.Usernames)
	}
	if !reflect.DeepEqual(rep.Years, []string{"2024", "2023"}) {
		t.Fatalf("years=%v", rep.Years)
	}
	if rep.Filters.User != All || rep.Filters.Month != All || rep.Filters.Year != All {
		t.Fatalf("filters not normalized: %+v", rep.Filters)
	}
}

func TestBuildTotalSkipsUnparsable(t *testing.T) {
	db := dbtest.Open(t)
	seed(t, db, []string{"alice"}, []seedEntry{
		{"alice", "2024-01-01", "3"},
		{"alice", "2024-01-02", "abc"},
		{"alice", "2024-01-03", "2.5"},
	})
	rep, err := NewEngine(db).Build(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if math.Abs(rep.Total-5.5) > 1e-9 {
		t.Fatalf("total=%v want 5.5", rep.Total)
	}
}

func TestBuildUserFilterKeepsSelectors(t *testing.T) {
	e := fixture(t)
	rep, err := e.Build(context.Background(), Filters{User: "alice"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, r := range rep.Rows {
		if r.Username != "alice" {
			t.Fatalf("unexpected row %+v", r)
		}
	}
	if len(rep.Rows) != 3 {
		t.Fatalf("rows=%d want 3", len(rep.Rows))
	}
	if math.Abs(rep.Total-5.5) > 1e-9 {
		t.Fatalf("total=%v", rep.Total)
	}
	if !reflect.DeepEqual(rep.Usernames, []string{"alice", "bob", "carol"}) {
		t.Fatalf("usernames changed by filter: %v", rep.Usernames)
	}
	if !reflect.DeepEqual(rep.Years, []string{"2024", "2023"}) {
		t.Fatalf("years changed by filter: %v", rep.Years)
	}
}

func TestBuildFiltersAreConjunctive(t *testing.T) {
	e := fixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		f    Filters
		want []string
	}{
		{"month padded", Filters{Month: "1"}, []string{"2024-01-20", "2024-01-15"}},
		{"year", Filters{Year: "2023"}, []string{"2023-12-31"}},
		{"user and month", Filters{User: "bob", Month: "01"}, []string{"2024-01-20"}},
		{"user month year", Filters{User: "alice", Month: "02", Year: "2024"}, []string{"2024-02-10"}},
		{"no match", Filters{User: "carol", Year: "2024"}, []string{}},
		{"explicit all", Filters{User: All, Month: All, Year: "2024"}, []string{"2024-02-10", "2024-02-01", "2024-01-20", "2024-01-15"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rep, err := e.Build(ctx, tc.f)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := dates(rep.Rows); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("dates=%v want %v", got, tc.want)
			}
		})
	}
}

func TestBuildFilterValuesAreBound(t *testing.T) {
	e := fixture(t)
	rep, err := e.Build(context.Background(), Filters{User: "alice' OR '1'='1"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(rep.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rep.Rows))
	}
}

func TestBuildStorageFailure(t *testing.T) {
	db := dbtest.Open(t)
	e := NewEngine(db)
	if err := database.Close(db); err != nil {
		t.Fatalf("close: %v", err)
	}

	rep, err := e.Build(context.Background(), Filters{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if rep != nil {
		t.Fatalf("partial report returned")
	}
}

func TestParseHours(t *testing.T) {
	cases := map[string]float64{
		"3":     3,
		"2.5":   2.5,
		" 1.25": 1.25,
		"abc":   0,
		"":      0,
		"4h":    4,
		".5":    0.5,
		"-1":    -1,
		"NaN":   0,
		"2,5":   2,
	}
	for in, want := range cases {
		if got := ParseHours(in); math.Abs(got-want) > 1e-9 {
			t.Fatalf("ParseHours(%q)=%v want %v", in, got, want)
		}
	}
}
