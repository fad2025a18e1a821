package db

// SessionSummary is written by the volunteer after a counseling session.
// It is embedded in its session, so it always belongs to exactly one session.
type SessionSummary struct {
	Summary             string   `json:"summary" bson:"summary"`
	ConcernsDiscussed   []string `json:"concernsDiscussed" bson:"concernsDiscussed"`
	CulturalStoriesUsed []string `json:"culturalStoriesUsed" bson:"culturalStoriesUsed"`
	ProgressMade        string   `json:"progressMade" bson:"progressMade"`
	NextSteps           []string `json:"nextSteps" bson:"nextSteps"`
	ResolutionStatus    string   `json:"resolutionStatus" bson:"resolutionStatus"`
}

type SessionModel struct {
	ID            string          `json:"id" bson:"_id"`
	ChildID       string          `json:"childId" bson:"childId"`
	VolunteerID   string          `json:"volunteerId" bson:"volunteerId"`
	VolunteerName string          `json:"volunteerName" bson:"volunteerName"`
	Status        string          `json:"status" bson:"status"`
	SessionType   string          `json:"sessionType" bson:"sessionType"`
	StartedOn     int64           `json:"startedOn" bson:"startedOn"`
	EndedOn       int64           `json:"endedOn" bson:"endedOn"`
	Notes         string          `json:"notes" bson:"notes"`
	Summary       *SessionSummary `json:"summary,omitempty" bson:"summary,omitempty"`
	CreatedOn     int64           `json:"createdOn" bson:"createdOn"`
}

func (m SessionModel) Id() string { return m.ID }

func (m SessionModel) CollectionName() string { return "sessions" }
