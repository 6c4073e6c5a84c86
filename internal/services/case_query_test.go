package services

import (
	"math"
	"net/url"
	"testing"

	"casebackend/internal/domain"
	"casebackend/internal/domain/models"

	"github.com/google/go-cmp/cmp"
)

func TestParseListQueryValid(t *testing.T) {
	values := url.Values{
		"query":     {"roof"},
		"sort":      {"number"},
		"ascending": {"desc"},
		"page":      {"3"},
		"limit":     {"5"},
	}

	q, err := ParseListQuery(values, 100)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := ListQuery{
		Query: "roof",
		Sort:  domain.Sort{Field: domain.SortByNumber, Desc: true},
		Page:  3,
		Limit: 5,
	}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Fatalf("query mismatch (-want +got):\n%s", diff)
	}
	if w := q.Window(); w.Offset != 10 || w.Limit != 5 {
		t.Fatalf("limit=5 page=3 should window offset 10 limit 5, got %+v", w)
	}
}

func TestParseListQueryDefaults(t *testing.T) {
	q, err := ParseListQuery(url.Values{}, 100)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if q.Sort.Field != domain.SortByID || q.Sort.Desc || q.Page != 1 || q.Limit != 10 || q.Query != "" {
		t.Fatalf("unexpected defaults: %+v", q)
	}
	if q.Window().Offset != 0 {
		t.Fatalf("page 1 must start at 0, got %d", q.Window().Offset)
	}
}

func TestParseListQueryFieldErrors(t *testing.T) {
	cases := []struct {
		name   string
		values url.Values
		fields []string
	}{
		{"bogus sort", url.Values{"sort": {"bogus"}}, []string{"sort"}},
		{"bad direction", url.Values{"ascending": {"up"}}, []string{"ascending"}},
		{"non numeric page", url.Values{"page": {"two"}}, []string{"page"}},
		{"zero page", url.Values{"page": {"0"}}, []string{"page"}},
		{"negative limit", url.Values{"limit": {"-5"}}, []string{"limit"}},
		{"zero limit", url.Values{"limit": {"0"}}, []string{"limit"}},
		{"limit above cap", url.Values{"limit": {"101"}}, []string{"limit"}},
		{"several at once", url.Values{"sort": {"title"}, "ascending": {"ASC"}, "page": {"x"}}, []string{"sort", "ascending", "page"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := ParseListQuery(tc.values, 100)
			if err == nil {
				t.Fatalf("expected error, got query %+v", q)
			}
			if q != (ListQuery{}) {
				t.Fatalf("no partial query may be returned, got %+v", q)
			}
			fields, ok := domain.AsFieldErrors(err)
			if !ok {
				t.Fatalf("expected field errors, got %T", err)
			}
			if len(fields) != len(tc.fields) {
				t.Fatalf("expected fields %v, got %v", tc.fields, fields)
			}
			for _, f := range tc.fields {
				if !fields.Has(f) {
					t.Fatalf("expected error on %q, got %v", f, fields)
				}
			}
		})
	}
}

func TestParseListQuerySortMessage(t *testing.T) {
	_, err := ParseListQuery(url.Values{"sort": {"bogus"}}, 100)
	fields, _ := domain.AsFieldErrors(err)
	if got := fields["sort"]; len(got) != 1 || got[0] != `"bogus" is not a valid choice.` {
		t.Fatalf("unexpected sort message: %v", got)
	}
}

func TestParseListQueryDefaultCap(t *testing.T) {
	if _, err := ParseListQuery(url.Values{"limit": {"100"}}, 0); err != nil {
		t.Fatalf("limit at default cap should pass, got %v", err)
	}
	if _, err := ParseListQuery(url.Values{"limit": {"101"}}, 0); err == nil {
		t.Fatalf("limit over default cap should fail")
	}
}

func TestResolveStateLabel(t *testing.T) {
	states := models.StateChoices

	if got := ResolveStateLabel("已結案", states); got != models.StateFinished {
		t.Fatalf("exact label should resolve to code, got %q", got)
	}
	if got := ResolveStateLabel("結案", states); got != "結案" {
		t.Fatalf("substring of a label must pass through, got %q", got)
	}
	if got := ResolveStateLabel("已結案 ", states); got != "已結案 " {
		t.Fatalf("label with trailing space must pass through, got %q", got)
	}
	if got := ResolveStateLabel("", states); got != "" {
		t.Fatalf("empty query must stay empty, got %q", got)
	}
	if got := ResolveStateLabel("roof", states); got != "roof" {
		t.Fatalf("plain text must pass through, got %q", got)
	}
}

func TestListQueryWindowHugePage(t *testing.T) {
	q, err := ParseListQuery(url.Values{"page": {"9223372036854775807"}, "limit": {"2"}}, 100)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	w := q.Window()
	if w.Offset < 0 {
		t.Fatalf("offset must not wrap negative, got %+v", w)
	}
	if w.Offset != math.MaxInt || w.Limit != 2 {
		t.Fatalf("overflowing page should saturate past the end, got %+v", w)
	}
}
