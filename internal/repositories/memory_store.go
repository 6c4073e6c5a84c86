package repositories

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"casebackend/internal/domain"
	"casebackend/internal/domain/models"

	"golang.org/x/text/cases"
)

// MemoryStore keeps cases, arranges, lookups and users in process memory.
// It evaluates filters the way the SQL store does, including the one-row-per-
// arrange fan-out of the arranges join, so Distinct has the same effect.
type MemoryStore struct {
	mu       sync.RWMutex
	cases    []models.Case
	arranges []models.Arrange
	types    []models.CaseType
	regions  []models.Region
	users    []models.User
	nextID   map[string]int64
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: map[string]int64{},
		now:    time.Now,
	}
}

func (m *MemoryStore) allocID(kind string) int64 {
	m.nextID[kind]++
	return m.nextID[kind]
}

// AddType stores a case type and returns it with its id.
func (m *MemoryStore) AddType(name string) models.CaseType {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := models.CaseType{ID: m.allocID("type"), Name: name}
	m.types = append(m.types, t)
	return t
}

// AddRegion stores a region and returns it with its id.
func (m *MemoryStore) AddRegion(name string) models.Region {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := models.Region{ID: m.allocID("region"), Name: name}
	m.regions = append(m.regions, r)
	return r
}

// AddCase stores c as-is (any state, including draft). A zero ID is assigned.
func (m *MemoryStore) AddCase(c models.Case) models.Case {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		c.ID = m.allocID("case")
	} else if c.ID > m.nextID["case"] {
		m.nextID["case"] = c.ID
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = m.now()
		c.UpdatedAt = c.CreatedAt
	}
	if c.Number == "" {
		c.Number = models.CaseNumber(c.CreatedAt, c.ID)
	}
	c.Arranges = nil
	m.cases = append(m.cases, c)
	return c
}

// AddArrange attaches an arrange to its CaseID.
func (m *MemoryStore) AddArrange(a models.Arrange) models.Arrange {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.allocID("arrange")
	if a.CreatedAt.IsZero() {
		a.CreatedAt = m.now()
	}
	m.arranges = append(m.arranges, a)
	return a
}

func (m *MemoryStore) MatchArrangeIDs(_ context.Context, term string) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := []int64{}
	for _, a := range m.arranges {
		if containsFold(a.Title, term) || containsFold(a.Content, term) {
			ids = append(ids, a.ID)
		}
	}
	return ids, nil
}

func (m *MemoryStore) CountCases(_ context.Context, f domain.CaseFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.filterRows(f)), nil
}

func (m *MemoryStore) FindCases(_ context.Context, f domain.CaseFilter, s domain.Sort, w domain.Window) ([]models.Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.filterRows(f)
	sort.SliceStable(rows, func(i, j int) bool {
		return lessCase(rows[i], rows[j], s)
	})

	if w.Offset < 0 || w.Offset >= len(rows) || w.Limit <= 0 {
		return []models.Case{}, nil
	}
	end := w.Offset + w.Limit
	if end > len(rows) || end < w.Offset {
		end = len(rows)
	}
	out := make([]models.Case, end-w.Offset)
	copy(out, rows[w.Offset:end])
	return out, nil
}

func (m *MemoryStore) GetCase(_ context.Context, id int64) (models.Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.cases {
		if c.ID != id || c.State == models.StateDraft {
			continue
		}
		c = m.decorate(c)
		c.Arranges = m.arrangesOf(c.ID)
		return c, nil
	}
	return models.Case{}, domain.NotFoundError{Resource: "case"}
}

func (m *MemoryStore) CreateCase(_ context.Context, c models.Case) (models.Case, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = m.allocID("case")
	c.CreatedAt = m.now()
	c.UpdatedAt = c.CreatedAt
	c.Number = models.CaseNumber(c.CreatedAt, c.ID)
	c.Arranges = nil
	m.cases = append(m.cases, c)
	return c, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) ListTypes(context.Context) ([]models.CaseType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.CaseType{}, m.types...), nil
}

func (m *MemoryStore) GetType(_ context.Context, id int64) (models.CaseType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.types {
		if t.ID == id {
			return t, nil
		}
	}
	return models.CaseType{}, domain.NotFoundError{Resource: "type"}
}

func (m *MemoryStore) ListRegions(context.Context) ([]models.Region, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Region{}, m.regions...), nil
}

func (m *MemoryStore) GetRegion(_ context.Context, id int64) (models.Region, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.regions {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Region{}, domain.NotFoundError{Resource: "region"}
}

func (m *MemoryStore) GetUserByMobile(_ context.Context, mobile string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Mobile == mobile {
			return u, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user"}
}

func (m *MemoryStore) CreateUser(_ context.Context, u models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Mobile == u.Mobile {
			return u, domain.ConflictError{Resource: "user", Msg: "mobile already registered"}
		}
	}
	u.ID = m.allocID("user")
	u.CreatedAt = m.now()
	m.users = append(m.users, u)
	return u, nil
}

// filterRows evaluates f over the cases LEFT JOIN arranges row set.
func (m *MemoryStore) filterRows(f domain.CaseFilter) []models.Case {
	join := f.JoinsArranges()
	seen := map[int64]bool{}
	out := []models.Case{}

	for _, c := range m.cases {
		if excluded(c.State, f.ExcludeStates) {
			continue
		}
		c = m.decorate(c)

		joined := []*models.Arrange{nil}
		if join {
			if own := m.arrangesOf(c.ID); len(own) > 0 {
				joined = joined[:0]
				for i := range own {
					joined = append(joined, &own[i])
				}
			}
		}

		for _, a := range joined {
			if !matchesAll(c, a, f.Clauses) {
				continue
			}
			if f.Distinct {
				if seen[c.ID] {
					continue
				}
				seen[c.ID] = true
			}
			out = append(out, c)
		}
	}
	return out
}

func (m *MemoryStore) decorate(c models.Case) models.Case {
	for _, t := range m.types {
		if t.ID == c.TypeID {
			c.TypeName = t.Name
		}
	}
	for _, r := range m.regions {
		if r.ID == c.RegionID {
			c.RegionName = r.Name
		}
	}
	return c
}

func (m *MemoryStore) arrangesOf(caseID int64) []models.Arrange {
	out := []models.Arrange{}
	for _, a := range m.arranges {
		if a.CaseID == caseID {
			out = append(out, a)
		}
	}
	return out
}

func matchesAll(c models.Case, a *models.Arrange, clauses []domain.SearchClause) bool {
	for _, cl := range clauses {
		if !matchesClause(c, a, cl) {
			return false
		}
	}
	return true
}

func matchesClause(c models.Case, a *models.Arrange, cl domain.SearchClause) bool {
	for _, f := range cl.Fields {
		if containsFold(caseFieldValue(c, f), cl.Term) {
			return true
		}
	}
	if a != nil {
		for _, id := range cl.ArrangeIDs {
			if a.ID == id {
				return true
			}
		}
	}
	return false
}

func caseFieldValue(c models.Case, f domain.SearchField) string {
	switch f {
	case domain.FieldID:
		return strconv.FormatInt(c.ID, 10)
	case domain.FieldNumber:
		return c.Number
	case domain.FieldTitle:
		return c.Title
	case domain.FieldContent:
		return c.Content
	case domain.FieldLocation:
		return c.Location
	case domain.FieldTypeName:
		return c.TypeName
	case domain.FieldState:
		return c.State
	case domain.FieldDisapproveInfo:
		return c.DisapproveInfo
	default:
		return ""
	}
}

func lessCase(a, b models.Case, s domain.Sort) bool {
	cmp := 0
	switch s.Field {
	case domain.SortByNumber:
		cmp = strings.Compare(a.Number, b.Number)
	case domain.SortByType:
		cmp = compareInt(a.TypeID, b.TypeID)
	}
	if cmp == 0 {
		cmp = compareInt(a.ID, b.ID)
	}
	if s.Desc {
		return cmp > 0
	}
	return cmp < 0
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func excluded(state string, states []string) bool {
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}

// containsFold is a Unicode case-insensitive substring test.
func containsFold(value, term string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(value), fold.String(term))
}
