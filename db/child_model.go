package db

type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

type ConcernStatus string

const (
	ConcernOpen       ConcernStatus = "OPEN"
	ConcernInProgress ConcernStatus = "IN_PROGRESS"
	ConcernResolved   ConcernStatus = "RESOLVED"
	ConcernClosed     ConcernStatus = "CLOSED"
)

// ChildModel is the profile of a child under counseling.
// Owned by the case-management application; read-only here.
type ChildModel struct {
	ID          string   `json:"id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	Age         int      `json:"age" bson:"age"`
	Gender      string   `json:"gender" bson:"gender"`
	State       string   `json:"state" bson:"state"`
	District    string   `json:"district" bson:"district"`
	SchoolLevel string   `json:"schoolLevel" bson:"schoolLevel"`
	Language    string   `json:"language" bson:"language"`
	Background  string   `json:"background" bson:"background"`
	Interests   []string `json:"interests" bson:"interests"`
	Challenges  []string `json:"challenges" bson:"challenges"`
	Tags        []string `json:"tags" bson:"tags"`
}

func (m ChildModel) Id() string { return m.ID }

func (m ChildModel) CollectionName() string { return "children" }

type ConcernModel struct {
	ID           string        `json:"id" bson:"_id"`
	ChildID      string        `json:"childId" bson:"childId"`
	Category     string        `json:"category" bson:"category"`
	Title        string        `json:"title" bson:"title"`
	Description  string        `json:"description" bson:"description"`
	Severity     Severity      `json:"severity" bson:"severity"`
	Status       ConcernStatus `json:"status" bson:"status"`
	IdentifiedOn int64         `json:"identifiedOn" bson:"identifiedOn"`
}

func (m ConcernModel) Id() string { return m.ID }

func (m ConcernModel) CollectionName() string { return "concerns" }

// IsActive reports whether the concern still needs attention.
func (m ConcernModel) IsActive() bool {
	return m.Status != ConcernResolved
}

// AssignmentModel links a volunteer to a child.
type AssignmentModel struct {
	ID          string `json:"id" bson:"_id"`
	ChildID     string `json:"childId" bson:"childId"`
	VolunteerID string `json:"volunteerId" bson:"volunteerId"`
	IsActive    bool   `json:"isActive" bson:"isActive"`
	AssignedOn  int64  `json:"assignedOn" bson:"assignedOn"`
}

func (m AssignmentModel) Id() string { return m.ID }

func (m AssignmentModel) CollectionName() string { return "assignments" }

// ChildProfile is a child together with its active concerns and assignments.
type ChildProfile struct {
	Child             ChildModel        `json:"child"`
	ActiveConcerns    []ConcernModel    `json:"activeConcerns"`
	ActiveAssignments []AssignmentModel `json:"activeAssignments"`
}
