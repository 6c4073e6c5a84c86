package services

import (
	"time"

	"casebackend/internal/domain/models"
)

// CaseAction selects which representation a case is rendered in.
type CaseAction string

const (
	ActionList     CaseAction = "list"
	ActionRetrieve CaseAction = "retrieve"
	ActionCreate   CaseAction = "create"
)

// CaseSummary is the list representation.
type CaseSummary struct {
	ID         int64     `json:"id"`
	Number     string    `json:"number"`
	Type       string    `json:"type"`
	Region     string    `json:"region"`
	Title      string    `json:"title"`
	Location   string    `json:"location"`
	State      string    `json:"state"`
	StateTitle string    `json:"state_title"`
	CreatedAt  time.Time `json:"created_at"`
}

// CaseDetail is the retrieve representation.
type CaseDetail struct {
	ID             int64           `json:"id"`
	Number         string          `json:"number"`
	Type           models.CaseType `json:"type"`
	Region         models.Region   `json:"region"`
	Title          string          `json:"title"`
	Content        string          `json:"content"`
	Location       string          `json:"location"`
	State          string          `json:"state"`
	StateTitle     string          `json:"state_title"`
	DisapproveInfo string          `json:"disapprove_info"`
	Arranges       []ArrangeDetail `json:"arranges"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type ArrangeDetail struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	ArrangeTime *time.Time `json:"arrange_time"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CaseWrite is both the create payload and its echoed response.
type CaseWrite struct {
	ID       int64  `json:"id"`
	Number   string `json:"number"`
	Type     int64  `json:"type"`
	Region   int64  `json:"region"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Location string `json:"location"`
	State    string `json:"state"`
}

var caseShapes = map[CaseAction]func(models.Case) any{
	ActionList:     func(c models.Case) any { return toSummary(c) },
	ActionRetrieve: func(c models.Case) any { return toDetail(c) },
	ActionCreate:   func(c models.Case) any { return toWrite(c) },
}

// ShapeCase renders c for action. Unknown actions fall back to the list shape.
func ShapeCase(action CaseAction, c models.Case) any {
	if shape, ok := caseShapes[action]; ok {
		return shape(c)
	}
	return toSummary(c)
}

// ShapeCases renders every case in the list representation.
func ShapeCases(cs []models.Case) []CaseSummary {
	out := make([]CaseSummary, 0, len(cs))
	for _, c := range cs {
		out = append(out, toSummary(c))
	}
	return out
}

func toSummary(c models.Case) CaseSummary {
	return CaseSummary{
		ID:         c.ID,
		Number:     c.Number,
		Type:       c.TypeName,
		Region:     c.RegionName,
		Title:      c.Title,
		Location:   c.Location,
		State:      c.State,
		StateTitle: models.StateLabel(c.State),
		CreatedAt:  c.CreatedAt,
	}
}

func toDetail(c models.Case) CaseDetail {
	arranges := make([]ArrangeDetail, 0, len(c.Arranges))
	for _, a := range c.Arranges {
		arranges = append(arranges, ArrangeDetail{
			ID:          a.ID,
			Title:       a.Title,
			Content:     a.Content,
			ArrangeTime: a.ArrangeTime,
			CreatedAt:   a.CreatedAt,
		})
	}
	return CaseDetail{
		ID:             c.ID,
		Number:         c.Number,
		Type:           models.CaseType{ID: c.TypeID, Name: c.TypeName},
		Region:         models.Region{ID: c.RegionID, Name: c.RegionName},
		Title:          c.Title,
		Content:        c.Content,
		Location:       c.Location,
		State:          c.State,
		StateTitle:     models.StateLabel(c.State),
		DisapproveInfo: c.DisapproveInfo,
		Arranges:       arranges,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toWrite(c models.Case) CaseWrite {
	return CaseWrite{
		ID:       c.ID,
		Number:   c.Number,
		Type:     c.TypeID,
		Region:   c.RegionID,
		Title:    c.Title,
		Content:  c.Content,
		Location: c.Location,
		State:    c.State,
	}
}
