package ragcontext

import (
	"github.com/SaiNageswarS/go-collection-boot/ds"
	"github.com/SaiNageswarS/mentor-boot/db"
	"github.com/SaiNageswarS/mentor-boot/store"
)

// Age bucket labels matched against a story's applicableFor list.
const (
	AgeEarlyChildhood = "early-childhood"
	AgePrimary        = "primary"
	AgePreTeen        = "pre-teen"
	AgeTeen           = "teen"
	AgeYoungAdult     = "young-adult"
)

// AgeBucket returns "" for an unknown (non-positive) age.
func AgeBucket(age int) string {
	switch {
	case age <= 0:
		return ""
	case age < 6:
		return AgeEarlyChildhood
	case age <= 10:
		return AgePrimary
	case age <= 13:
		return AgePreTeen
	case age <= 17:
		return AgeTeen
	default:
		return AgeYoungAdult
	}
}

// StoryQueryFor selects stories applicable to the child's gender, age bucket
// or state, or themed around one of the child's first three interests.
func StoryQueryFor(child db.ChildModel) store.StoryQuery {
	applicable := make([]string, 0, 3)
	for _, label := range []string{child.Gender, AgeBucket(child.Age), child.State} {
		if label != "" {
			applicable = append(applicable, label)
		}
	}

	return store.StoryQuery{
		ApplicableFor: applicable,
		Themes:        firstN(child.Interests, 3),
	}
}

// KnowledgeQueryFor selects counseling and cultural-wisdom resources, plus
// anything tagged with the child's first three interests or first two challenges.
func KnowledgeQueryFor(child db.ChildModel) store.KnowledgeQuery {
	tags := ds.NewSet[string]()
	for _, tag := range firstN(child.Interests, 3) {
		tags.Add(tag)
	}
	for _, tag := range firstN(child.Challenges, 2) {
		tags.Add(tag)
	}

	return store.KnowledgeQuery{
		Categories: []string{db.CategoryPsychologicalCounseling, db.CategoryCulturalWisdom},
		Tags:       tags.ToSlice(),
	}
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		values = values[:n]
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
