package mentor

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/mentor-boot/db"
	"github.com/SaiNageswarS/mentor-boot/interpreter"
	"github.com/SaiNageswarS/mentor-boot/llm"
	"github.com/SaiNageswarS/mentor-boot/metrics"
	"github.com/SaiNageswarS/mentor-boot/prompts"
	"github.com/SaiNageswarS/mentor-boot/ragcontext"
	"go.uber.org/zap"
)

// Roadmap plans the next session for a child. It never fails: an unreachable
// model or an unusable reply yields the fallback roadmap.
func (m *Mentor) Roadmap(ctx context.Context, req RoadmapRequest) *RoadmapResponse {
	storiesTask := async.Go(func() ([]db.CulturalStoryModel, error) {
		return m.config.Store.FindStories(ctx, ragcontext.StoryQueryFor(req.ChildProfile), m.config.RecommendedStories)
	})

	roadmap := m.generateRoadmap(ctx, req)

	stories, err := async.Await(storiesTask)
	if err != nil {
		logger.Error("Failed to load recommended stories", zap.String("childId", req.ChildProfile.ID), zap.Error(err))
	}
	if stories == nil {
		stories = []db.CulturalStoryModel{}
	}

	return &RoadmapResponse{
		Success:            true,
		Roadmap:            roadmap,
		RecommendedStories: stories,
	}
}

func (m *Mentor) generateRoadmap(ctx context.Context, req RoadmapRequest) interpreter.Roadmap {
	active := make([]db.ConcernModel, 0, len(req.ActiveConcerns))
	for _, c := range req.ActiveConcerns {
		if c.IsActive() {
			active = append(active, c)
		}
	}

	systemPrompt, userPrompt, err := prompts.RenderRoadmapPrompt(req.ChildProfile, active, req.RecentSessions)
	if err != nil {
		return fallback("prompt", req.ChildProfile.ID, err)
	}

	completion, err := m.config.Completer.Complete(ctx, systemPrompt, nil, userPrompt,
		llm.WithTemperature(m.config.Temperature),
		llm.WithMaxTokens(m.config.RoadmapMaxTokens),
		llm.WithJSONResponse(true),
	)
	if err != nil {
		return fallback("upstream", req.ChildProfile.ID, err)
	}

	result := interpreter.InterpretRoadmap(completion.Content)
	if !result.Parsed {
		logger.Error("Unparseable roadmap reply", zap.String("raw", completion.Content))
		return fallback("parse", req.ChildProfile.ID, result.Err)
	}

	logger.Info("Generated session roadmap", zap.String("childId", req.ChildProfile.ID), zap.Int64("latencyMs", completion.LatencyMs))
	return result.Value
}

func fallback(reason, childID string, err error) interpreter.Roadmap {
	metrics.RoadmapFallbacks.WithLabelValues(reason).Inc()
	logger.Error("Serving fallback roadmap", zap.String("reason", reason), zap.String("childId", childID), zap.Error(err))
	return interpreter.FallbackRoadmap()
}
