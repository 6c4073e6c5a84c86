package services

import (
	"context"
	"fmt"
	"strings"

	"casebackend/internal/domain"
	"casebackend/internal/domain/models"
)

// ArrangeMatcher finds arranges whose title or content contains a term.
type ArrangeMatcher interface {
	MatchArrangeIDs(ctx context.Context, term string) ([]int64, error)
}

// VuetableSearchFields are the Case attributes the listing search box matches.
var VuetableSearchFields = []domain.SearchField{
	domain.FieldNumber,
	domain.FieldTitle,
	domain.FieldContent,
	domain.FieldLocation,
	domain.FieldTypeName,
	domain.FieldState,
	domain.FieldDisapproveInfo,
}

// BrowseSearchFields are matched by the plain list endpoint's search param.
var BrowseSearchFields = []domain.SearchField{
	domain.FieldID,
	domain.FieldNumber,
	domain.FieldTypeName,
	domain.FieldLocation,
	domain.FieldTitle,
	domain.FieldContent,
	domain.FieldDisapproveInfo,
}

// BaseCaseFilter is the visible set: every case that is not a draft.
func BaseCaseFilter() domain.CaseFilter {
	return domain.CaseFilter{ExcludeStates: []string{models.StateDraft}}
}

// ComposeSearch builds the filter for one search term. An empty term leaves
// the base filter as is. Otherwise a case matches when term hits any of fields
// or one of its arranges; the result is distinct per case.
func ComposeSearch(ctx context.Context, arranges ArrangeMatcher, term string, fields []domain.SearchField) (domain.CaseFilter, error) {
	return ComposeTerms(ctx, arranges, []string{term}, fields)
}

// ComposeTerms ANDs one search clause per non-empty term.
func ComposeTerms(ctx context.Context, arranges ArrangeMatcher, terms []string, fields []domain.SearchField) (domain.CaseFilter, error) {
	filter := BaseCaseFilter()
	for _, term := range terms {
		if term == "" {
			continue
		}
		ids, err := arranges.MatchArrangeIDs(ctx, term)
		if err != nil {
			return domain.CaseFilter{}, fmt.Errorf("search arranges: %w", err)
		}
		filter.Clauses = append(filter.Clauses, domain.SearchClause{
			Term:       term,
			Fields:     fields,
			ArrangeIDs: ids,
		})
		filter.Distinct = true
	}
	return filter, nil
}

// SplitSearchTerms splits a search param on whitespace and commas.
func SplitSearchTerms(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
