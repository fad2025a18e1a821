package store

import (
	"slices"

	"github.com/SaiNageswarS/mentor-boot/db"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// StoryQuery matches stories applicable to any of ApplicableFor, or carrying any of Themes.
type StoryQuery struct {
	ApplicableFor []string
	Themes        []string
}

func (q StoryQuery) Filter() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"applicableFor": bson.M{"$in": nonNil(q.ApplicableFor)}},
		bson.M{"themes": bson.M{"$in": nonNil(q.Themes)}},
	}}
}

// Matches mirrors Filter for stores that evaluate queries in process.
func (q StoryQuery) Matches(story db.CulturalStoryModel) bool {
	return intersects(story.ApplicableFor, q.ApplicableFor) || intersects(story.Themes, q.Themes)
}

// KnowledgeQuery matches resources in any of Categories, or tagged with any of Tags.
type KnowledgeQuery struct {
	Categories []string
	Tags       []string
}

func (q KnowledgeQuery) Filter() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"category": bson.M{"$in": nonNil(q.Categories)}},
		bson.M{"tags": bson.M{"$in": nonNil(q.Tags)}},
	}}
}

func (q KnowledgeQuery) Matches(resource db.KnowledgeModel) bool {
	return slices.Contains(q.Categories, resource.Category) || intersects(resource.Tags, q.Tags)
}

func intersects(a, b []string) bool {
	for _, x := range a {
		if slices.Contains(b, x) {
			return true
		}
	}
	return false
}

// mongo rejects $in with a null operand.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
