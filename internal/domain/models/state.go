package models

const (
	StateDraft      = "draft"
	StateUnassigned = "unassigned"
	StateArranged   = "arranged"
	StateProcessing = "processing"
	StateFinished   = "finished"
	StateDisapprove = "disapprove"
)

// StateChoice pairs a stored state code with its display label.
type StateChoice struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// StateChoices is the closed set of Case states, in workflow order.
var StateChoices = []StateChoice{
	{Code: StateDraft, Label: "草稿"},
	{Code: StateUnassigned, Label: "待分派"},
	{Code: StateArranged, Label: "已排程"},
	{Code: StateProcessing, Label: "處理中"},
	{Code: StateFinished, Label: "已結案"},
	{Code: StateDisapprove, Label: "不受理"},
}

// StateLabel returns the display label for code, or code itself when unknown.
func StateLabel(code string) string {
	for _, s := range StateChoices {
		if s.Code == code {
			return s.Label
		}
	}
	return code
}

// ValidState reports whether code belongs to StateChoices.
func ValidState(code string) bool {
	for _, s := range StateChoices {
		if s.Code == code {
			return true
		}
	}
	return false
}
