package db

// Knowledge categories that are always relevant to mentoring.
const (
	CategoryPsychologicalCounseling = "PSYCHOLOGICAL_COUNSELING"
	CategoryCulturalWisdom          = "CULTURAL_WISDOM"
)

type CulturalStoryModel struct {
	ID            string   `json:"id" bson:"_id"`
	Title         string   `json:"title" bson:"title"`
	Summary       string   `json:"summary" bson:"summary"`
	Themes        []string `json:"themes" bson:"themes"`
	ApplicableFor []string `json:"applicableFor" bson:"applicableFor"` // gender, age bucket or state
}

func (m CulturalStoryModel) Id() string { return m.ID }

func (m CulturalStoryModel) CollectionName() string { return "cultural_stories" }

type KnowledgeModel struct {
	ID       string   `json:"id" bson:"_id"`
	Title    string   `json:"title" bson:"title"`
	Category string   `json:"category" bson:"category"`
	Summary  string   `json:"summary" bson:"summary"`
	Tags     []string `json:"tags" bson:"tags"`
}

func (m KnowledgeModel) Id() string { return m.ID }

func (m KnowledgeModel) CollectionName() string { return "knowledge_resources" }
