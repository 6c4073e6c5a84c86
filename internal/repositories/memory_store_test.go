package repositories

import (
	"context"
	"math"
	"testing"

	"casebackend/internal/domain"
	"casebackend/internal/domain/models"
)

func TestMemoryStoreArrangeJoinFansOut(t *testing.T) {
	store := NewMemoryStore()
	c := store.AddCase(models.Case{Title: "Leak", State: models.StateArranged})
	a1 := store.AddArrange(models.Arrange{CaseID: c.ID, Title: "Roof repair"})
	a2 := store.AddArrange(models.Arrange{CaseID: c.ID, Title: "roof check"})
	ctx := context.Background()

	ids, err := store.MatchArrangeIDs(ctx, "ROOF")
	if err != nil || len(ids) != 2 || ids[0] != a1.ID || ids[1] != a2.ID {
		t.Fatalf("unexpected arrange ids %v (err %v)", ids, err)
	}

	f := domain.CaseFilter{Clauses: []domain.SearchClause{{Term: "roof", ArrangeIDs: ids}}}
	n, _ := store.CountCases(ctx, f)
	if n != 2 {
		t.Fatalf("join without distinct should yield one row per arrange, got %d", n)
	}

	f.Distinct = true
	n, _ = store.CountCases(ctx, f)
	if n != 1 {
		t.Fatalf("distinct should collapse to one case, got %d", n)
	}
}

func TestMemoryStoreUnicodeFold(t *testing.T) {
	store := NewMemoryStore()
	store.AddCase(models.Case{Title: "STRASSE Ärger", State: models.StateUnassigned})

	f := domain.CaseFilter{Clauses: []domain.SearchClause{{Term: "ärger", Fields: []domain.SearchField{domain.FieldTitle}}}}
	n, _ := store.CountCases(context.Background(), f)
	if n != 1 {
		t.Fatalf("expected case-insensitive unicode match, got %d", n)
	}
}

func TestMemoryStoreCreateAndLookups(t *testing.T) {
	store := NewMemoryStore()
	road := store.AddType("道路")
	north := store.AddRegion("North")
	ctx := context.Background()

	c, err := store.CreateCase(ctx, models.Case{TypeID: road.ID, RegionID: north.ID, State: models.StateUnassigned})
	if err != nil {
		t.Fatalf("CreateCase returned error: %v", err)
	}
	got, err := store.GetCase(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCase returned error: %v", err)
	}
	if got.TypeName != "道路" || got.RegionName != "North" || got.Number == "" {
		t.Fatalf("unexpected case %+v", got)
	}

	if _, err := store.GetType(ctx, 99); !domain.IsNotFound(err) {
		t.Fatalf("expected type not found, got %v", err)
	}
	if _, err := store.GetRegion(ctx, north.ID); err != nil {
		t.Fatalf("GetRegion returned error: %v", err)
	}

	if _, err := store.CreateUser(ctx, models.User{Mobile: "0900"}); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if _, err := store.CreateUser(ctx, models.User{Mobile: "0900"}); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMemoryStoreFindCasesOutOfRangeWindow(t *testing.T) {
	store := NewMemoryStore()
	for i := 0; i < 3; i++ {
		store.AddCase(models.Case{Title: "x", State: models.StateUnassigned})
	}
	ctx := context.Background()
	sort := domain.Sort{Field: domain.SortByID}

	for _, w := range []domain.Window{
		{Offset: -4, Limit: 2},
		{Offset: 3, Limit: 2},
		{Offset: math.MaxInt, Limit: 2},
	} {
		cs, err := store.FindCases(ctx, domain.CaseFilter{}, sort, w)
		if err != nil || len(cs) != 0 {
			t.Fatalf("window %+v: expected empty page, got %d rows (err %v)", w, len(cs), err)
		}
	}

	cs, _ := store.FindCases(ctx, domain.CaseFilter{}, sort, domain.Window{Offset: 2, Limit: math.MaxInt})
	if len(cs) != 1 {
		t.Fatalf("limit overflowing the end should be cut at the last row, got %d", len(cs))
	}
}
