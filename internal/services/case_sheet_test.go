package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"casebackend/internal/domain"
	"casebackend/internal/domain/models"
	"casebackend/internal/repositories"
)

func TestCaseSheetGenerate(t *testing.T) {
	store := repositories.NewMemoryStore()
	road := store.AddType("道路")
	c := store.AddCase(models.Case{
		Number:         "20240102 00007",
		TypeID:         road.ID,
		Title:          "Broken lamp",
		Content:        "Lamp post 12 is dark",
		Location:       "Main St",
		State:          models.StateDisapprove,
		DisapproveInfo: "Duplicate",
	})
	at := time.Date(2024, 1, 3, 9, 30, 0, 0, time.UTC)
	store.AddArrange(models.Arrange{CaseID: c.ID, Title: "Site visit", ArrangeTime: &at})

	svc := CaseSheetService{Store: store, Now: func() time.Time { return at }}
	pdf, filename, err := svc.Generate(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("Generate did not return a PDF document")
	}
	if filename != "CASE_20240102_00007.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestCaseSheetGenerateHiddenCase(t *testing.T) {
	store := repositories.NewMemoryStore()
	c := store.AddCase(models.Case{Title: "Draft", State: models.StateDraft})

	_, _, err := CaseSheetService{Store: store}.Generate(context.Background(), c.ID)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found for draft case, got %v", err)
	}
}

func TestSafeFilenamePart(t *testing.T) {
	if got := safeFilenamePart("  "); got != "NA" {
		t.Fatalf("blank number should become NA, got %q", got)
	}
	if got := safeFilenamePart(`a/b:c*d`); got != "a_b_c_d" {
		t.Fatalf("unexpected sanitized name %q", got)
	}
	if got := safeFilenamePart(strings.Repeat("x", 60)); len(got) != 40 {
		t.Fatalf("name should be truncated to 40, got %d", len(got))
	}
}
