package interpreter

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Roadmap is the session plan generated before a counseling session.
type Roadmap struct {
	PreSessionPrep       Text `json:"preSessionPrep"`
	SessionObjectives    List `json:"sessionObjectives"`
	WarningSigns         List `json:"warningSigns"`
	ConversationStarters List `json:"conversationStarters"`
	RecommendedApproach  Text `json:"recommendedApproach"`
	CulturalContext      Text `json:"culturalContext"`
	ExpectedChallenges   List `json:"expectedChallenges"`
	SuccessIndicators    List `json:"successIndicators"`
	FollowUpActions      List `json:"followUpActions"`
}

// FallbackRoadmap is served when the model reply is unusable.
func FallbackRoadmap() Roadmap {
	return Roadmap{
		PreSessionPrep: "Review the child's profile, active concerns and notes from previous sessions. " +
			"Prepare a calm, private space and one or two simple activities the child enjoys.",
		SessionObjectives: List{
			"Build rapport and make the child feel safe",
			"Check in on how the child has been feeling since the last session",
			"Explore one active concern at the child's pace",
		},
		WarningSigns: List{
			"Withdrawal or unusual silence",
			"Signs of physical harm or neglect",
			"Statements about self-harm or hopelessness",
		},
		ConversationStarters: List{
			"What was the best part of your week?",
			"Is there something you have been thinking about a lot lately?",
			"What would you like to talk about today?",
		},
		RecommendedApproach: "Use active listening and open-ended questions. Let the child lead, " +
			"validate their feelings and avoid pressing on sensitive topics.",
		CulturalContext: "Respect the child's family values, language and traditions. " +
			"Use familiar stories and examples from the child's community where helpful.",
		ExpectedChallenges: List{
			"The child may be hesitant to open up",
			"Limited time to cover every concern",
		},
		SuccessIndicators: List{
			"The child participates willingly in the conversation",
			"The child shares at least one feeling or experience",
		},
		FollowUpActions: List{
			"Record session notes and a summary",
			"Escalate any safety concern to the supervisor",
			"Plan the focus of the next session",
		},
	}
}

// SanitizeRoadmap fills every empty field from the fallback so callers always
// receive all nine fields populated.
func SanitizeRoadmap(r *Roadmap) {
	fb := FallbackRoadmap()

	fillText(&r.PreSessionPrep, fb.PreSessionPrep)
	fillList(&r.SessionObjectives, fb.SessionObjectives)
	fillList(&r.WarningSigns, fb.WarningSigns)
	fillList(&r.ConversationStarters, fb.ConversationStarters)
	fillText(&r.RecommendedApproach, fb.RecommendedApproach)
	fillText(&r.CulturalContext, fb.CulturalContext)
	fillList(&r.ExpectedChallenges, fb.ExpectedChallenges)
	fillList(&r.SuccessIndicators, fb.SuccessIndicators)
	fillList(&r.FollowUpActions, fb.FollowUpActions)
}

// InterpretRoadmap parses a roadmap reply; it never fails.
func InterpretRoadmap(raw string) Result[Roadmap] {
	return Interpret(raw, FallbackRoadmap, SanitizeRoadmap)
}

func fillText(t *Text, fallback Text) {
	if strings.TrimSpace(string(*t)) == "" {
		*t = fallback
	}
}

func fillList(l *List, fallback List) {
	if len(*l) == 0 {
		*l = fallback
	}
}

// Text accepts a JSON string, or a list that is joined into one string.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var list List
	if err := list.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = Text(strings.Join(list, " "))
	return nil
}

// List accepts a JSON list, or a single string treated as one item.
// Blank items are dropped and non-string scalars are formatted.
type List []string

func (l *List) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var items []any
	switch v := raw.(type) {
	case nil:
		*l = nil
		return nil
	case []any:
		items = v
	default:
		items = []any{v}
	}

	out := make(List, 0, len(items))
	for _, item := range items {
		var s string
		switch v := item.(type) {
		case nil:
			continue
		case string:
			s = v
		case map[string]any, []any:
			b, err := json.Marshal(v)
			if err != nil {
				return err
			}
			s = string(b)
		default:
			s = fmt.Sprint(v)
		}

		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}
