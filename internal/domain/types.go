package domain

// ID is used across domain entities.
type ID int64

// SearchField names a Case attribute a free-text term may match.
type SearchField string

const (
	FieldID             SearchField = "id"
	FieldNumber         SearchField = "number"
	FieldTitle          SearchField = "title"
	FieldContent        SearchField = "content"
	FieldLocation       SearchField = "location"
	FieldTypeName       SearchField = "type__name"
	FieldState          SearchField = "state"
	FieldDisapproveInfo SearchField = "disapprove_info"
)

// SortField is one of the orderable Case attributes.
type SortField string

const (
	SortByID     SortField = "id"
	SortByNumber SortField = "number"
	SortByType   SortField = "type"
)

// SortFields lists the accepted ordering keys.
var SortFields = []SortField{SortByID, SortByNumber, SortByType}

// ValidSortField reports whether s is an accepted ordering key.
func ValidSortField(s string) bool {
	for _, f := range SortFields {
		if string(f) == s {
			return true
		}
	}
	return false
}

// Sort defines sorting preference.
type Sort struct {
	Field SortField `json:"field"`
	Desc  bool      `json:"desc"`
}

// String renders the sort the way ordering params spell it ("-number").
func (s Sort) String() string {
	if s.Desc {
		return "-" + string(s.Field)
	}
	return string(s.Field)
}

// SearchClause matches Cases where Term is a case-insensitive substring of any
// of Fields, or where the Case owns an Arrange listed in ArrangeIDs.
type SearchClause struct {
	Term       string
	Fields     []SearchField
	ArrangeIDs []int64
}

// CaseFilter is the predicate a store evaluates. Clauses are ANDed together;
// an empty Clauses slice matches every Case not in ExcludeStates.
type CaseFilter struct {
	ExcludeStates []string
	Clauses       []SearchClause
	// Distinct collapses rows to one per Case identity.
	Distinct bool
}

// JoinsArranges reports whether evaluating the filter touches the Arrange relation.
func (f CaseFilter) JoinsArranges() bool {
	for _, c := range f.Clauses {
		if len(c.ArrangeIDs) > 0 {
			return true
		}
	}
	return false
}

// Window is the offset/limit slice of an ordered result set.
type Window struct {
	Offset int
	Limit  int
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Mobile string `json:"mobile"`
}
