package db

type MemoryType string

const (
	ImportantInsight   MemoryType = "IMPORTANT_INSIGHT"
	BreakthroughMoment MemoryType = "BREAKTHROUGH_MOMENT"
	EffectiveTechnique MemoryType = "EFFECTIVE_TECHNIQUE"
	ChildPreference    MemoryType = "CHILD_PREFERENCE"
	WarningSign        MemoryType = "WARNING_SIGN"
	CulturalReference  MemoryType = "CULTURAL_REFERENCE"
)

// MemoryModel is a note captured from one mentor exchange.
// Memories are append-only: they are created once and never updated.
type MemoryModel struct {
	ID             string     `json:"id" bson:"_id"`
	ChildID        string     `json:"childId" bson:"childId"`
	VolunteerID    string     `json:"volunteerId" bson:"volunteerId"`
	SessionID      string     `json:"sessionId" bson:"sessionId"`
	MemoryType     MemoryType `json:"memoryType" bson:"memoryType"`
	Content        string     `json:"content" bson:"content"`
	Importance     int        `json:"importance" bson:"importance"` // 1..5
	AssociatedTags []string   `json:"associatedTags" bson:"associatedTags"`
	CreatedOn      int64      `json:"createdOn" bson:"createdOn"`
}

func (m MemoryModel) Id() string { return m.ID }

func (m MemoryModel) CollectionName() string { return "conversation_memories" }
