package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"casebackend/internal/domain"
	"casebackend/internal/domain/models"
	"casebackend/internal/utils"
)

// CaseStore is the persistence the case endpoints need. Implemented by
// repositories.CaseRepository (MySQL) and repositories.MemoryStore.
type CaseStore interface {
	ArrangeMatcher
	CountCases(ctx context.Context, f domain.CaseFilter) (int, error)
	FindCases(ctx context.Context, f domain.CaseFilter, s domain.Sort, w domain.Window) ([]models.Case, error)
	GetCase(ctx context.Context, id int64) (models.Case, error)
	CreateCase(ctx context.Context, c models.Case) (models.Case, error)
}

// CaseListResult is the listing envelope. Count is the total before windowing.
type CaseListResult struct {
	Data  []CaseSummary `json:"data"`
	Count int           `json:"count"`
}

// CasePage is one limit/offset page of the plain list endpoint.
type CasePage struct {
	Count   int
	Limit   int
	Offset  int
	Results []CaseSummary
}

// CaseService serves case reads and creates. It keeps no per-request state,
// so one value can be shared by concurrent requests.
//
// Count and page are two separate store reads. A concurrent write between them
// can make Count disagree with the rows returned; that is accepted.
type CaseService struct {
	Store     CaseStore
	MaxLimit  int
	States    []models.StateChoice
	RequestID string
}

func (s CaseService) states() []models.StateChoice {
	if s.States != nil {
		return s.States
	}
	return models.StateChoices
}

func (s CaseService) maxLimit() int {
	if s.MaxLimit > 0 {
		return s.MaxLimit
	}
	return DefaultMaxListLimit
}

// Vuetable validates raw params and runs the listing. Validation failures
// return domain.FieldErrors before the store is touched.
func (s CaseService) Vuetable(ctx context.Context, values url.Values) (CaseListResult, error) {
	q, err := ParseListQuery(values, s.maxLimit())
	if err != nil {
		return CaseListResult{}, err
	}
	return s.List(ctx, q)
}

// List runs a validated query: label resolution, search composition, count, page.
func (s CaseService) List(ctx context.Context, q ListQuery) (CaseListResult, error) {
	term := ResolveStateLabel(q.Query, s.states())

	filter, err := ComposeSearch(ctx, s.Store, term, VuetableSearchFields)
	if err != nil {
		return CaseListResult{}, err
	}

	cs, count, err := Paginate(ctx, s.Store, filter, q.Sort, q.Window())
	if err != nil {
		return CaseListResult{}, err
	}

	utils.LogEvent(s.RequestID, "cases", "vuetable",
		fmt.Sprintf("query=%q sort=%s page=%d limit=%d count=%d", term, q.Sort, q.Page, q.Limit, count))
	return AssembleList(cs, count), nil
}

// CasePager is the read side Paginate needs.
type CasePager interface {
	CountCases(ctx context.Context, f domain.CaseFilter) (int, error)
	FindCases(ctx context.Context, f domain.CaseFilter, s domain.Sort, w domain.Window) ([]models.Case, error)
}

// Paginate counts everything f matches, then fetches window w in sort order.
// A window past the end, or one with a negative offset, yields an empty page.
func Paginate(ctx context.Context, store CasePager, f domain.CaseFilter, sort domain.Sort, w domain.Window) ([]models.Case, int, error) {
	count, err := store.CountCases(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	if count == 0 || w.Offset < 0 || w.Offset >= count {
		return []models.Case{}, count, nil
	}
	cs, err := store.FindCases(ctx, f, sort, w)
	if err != nil {
		return nil, 0, err
	}
	return cs, count, nil
}

// AssembleList wraps a page of cases and the pre-window count.
func AssembleList(cs []models.Case, count int) CaseListResult {
	return CaseListResult{Data: ShapeCases(cs), Count: count}
}

// Browse serves the plain list endpoint: limit/offset, multi-term search and
// "-field" ordering. Unusable values fall back to defaults instead of failing.
func (s CaseService) Browse(ctx context.Context, values url.Values) (CasePage, error) {
	limit := intParam(values, "limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > s.maxLimit() {
		limit = s.maxLimit()
	}
	offset := intParam(values, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	filter, err := ComposeTerms(ctx, s.Store, SplitSearchTerms(values.Get("search")), BrowseSearchFields)
	if err != nil {
		return CasePage{}, err
	}

	sort := ParseOrdering(values.Get("ordering"))
	cs, count, err := Paginate(ctx, s.Store, filter, sort, domain.Window{Offset: offset, Limit: limit})
	if err != nil {
		return CasePage{}, err
	}

	utils.LogEvent(s.RequestID, "cases", "list", fmt.Sprintf("ordering=%s offset=%d limit=%d count=%d", sort, offset, limit, count))
	return CasePage{Count: count, Limit: limit, Offset: offset, Results: ShapeCases(cs)}, nil
}

// ParseOrdering reads "-number,id" style ordering and keeps the first known field.
func ParseOrdering(raw string) domain.Sort {
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		field := strings.TrimPrefix(part, "-")
		if domain.ValidSortField(field) {
			return domain.Sort{Field: domain.SortField(field), Desc: desc}
		}
	}
	return domain.Sort{Field: domain.SortByID}
}

// Retrieve loads one visible case.
func (s CaseService) Retrieve(ctx context.Context, id int64) (models.Case, error) {
	if id <= 0 {
		return models.Case{}, domain.NotFoundError{Resource: "case"}
	}
	return s.Store.GetCase(ctx, id)
}

// Create stores a new case owned by mobile. Unknown or empty states become unassigned.
func (s CaseService) Create(ctx context.Context, in CaseWrite, mobile string) (models.Case, error) {
	if strings.TrimSpace(mobile) == "" {
		return models.Case{}, domain.UnauthorizedError{}
	}
	state := strings.TrimSpace(in.State)
	if !models.ValidState(state) {
		state = models.StateUnassigned
	}

	c, err := s.Store.CreateCase(ctx, models.Case{
		TypeID:   in.Type,
		RegionID: in.Region,
		Title:    utils.NormalizeSpace(in.Title),
		Content:  in.Content,
		Location: utils.NormalizeSpace(in.Location),
		State:    state,
		Mobile:   mobile,
	})
	if err != nil {
		return c, err
	}
	utils.LogEvent(s.RequestID, "cases", "create", fmt.Sprintf("case_id=%d number=%s", c.ID, c.Number))
	return c, nil
}

func intParam(values url.Values, key string, fallback int) int {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
