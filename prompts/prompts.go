package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strings"
	"text/template"
	"time"

	"github.com/SaiNageswarS/mentor-boot/db"
	"github.com/SaiNageswarS/mentor-boot/ragcontext"
)

//go:embed templates/*
var templatesFS embed.FS

// NoneAvailable stands in for any absent field or empty section so the
// model never has to guess what a missing value means.
const NoneAvailable = "None available"

// Placeholders rendered for empty sections of the mentor system prompt.
const (
	NoConcerns  = "No active concerns recorded."
	NoSessions  = "No previous sessions recorded."
	NoCurrent   = "No current session selected."
	NoMemories  = "No conversation memories available."
	NoStories   = "No cultural stories available."
	NoKnowledge = "No knowledge resources available."
)

// Caps on what the mentor system prompt renders from each slice.
const (
	MaxPromptSessions  = 3
	MaxPromptMemories  = 8
	MaxPromptStories   = 5
	MaxPromptKnowledge = 5
)

var funcs = template.FuncMap{
	"orNone": orNone,
	"list":   list,
	"date":   date,
}

// ComposeSystemPrompt renders the mentor system prompt for one turn.
// Output depends only on rc.
func ComposeSystemPrompt(rc *ragcontext.RagContext) (string, error) {
	data := struct {
		Child          db.ChildModel
		AgeBucket      string
		Concerns       []db.ConcernModel
		Sessions       []db.SessionModel
		CurrentSession *db.SessionModel
		Memories       []db.MemoryModel
		Stories        []db.CulturalStoryModel
		Knowledge      []db.KnowledgeModel
		State          string
		Language       string
		NoConcerns     string
		NoSessions     string
		NoCurrent      string
		NoMemories     string
		NoStories      string
		NoKnowledge    string
	}{
		Child:          rc.Child,
		AgeBucket:      ragcontext.AgeBucket(rc.Child.Age),
		Concerns:       rc.ActiveConcerns,
		Sessions:       head(rc.SessionHistory, MaxPromptSessions),
		CurrentSession: rc.CurrentSession,
		Memories:       head(rc.Memories, MaxPromptMemories),
		Stories:        head(rc.CulturalStories, MaxPromptStories),
		Knowledge:      head(rc.Knowledge, MaxPromptKnowledge),
		State:          rc.Metadata.CulturalContext.State,
		Language:       rc.Metadata.CulturalContext.Language,
		NoConcerns:     NoConcerns,
		NoSessions:     NoSessions,
		NoCurrent:      NoCurrent,
		NoMemories:     NoMemories,
		NoStories:      NoStories,
		NoKnowledge:    NoKnowledge,
	}

	return loadPrompt("templates/mentor_system.md", data)
}

// RenderRoadmapPrompt renders the prompts asking for a JSON session roadmap.
func RenderRoadmapPrompt(child db.ChildModel, concerns []db.ConcernModel, sessions []db.SessionModel) (systemPrompt, userPrompt string, err error) {
	systemPrompt, err = loadPrompt("templates/roadmap_system.md", nil)
	if err != nil {
		return "", "", err
	}

	data := struct {
		Child     db.ChildModel
		AgeBucket string
		Concerns  []db.ConcernModel
		Sessions  []db.SessionModel
	}{
		Child:     child,
		AgeBucket: ragcontext.AgeBucket(child.Age),
		Concerns:  concerns,
		Sessions:  head(sessions, MaxPromptSessions),
	}

	userPrompt, err = loadPrompt("templates/roadmap_user.md", data)
	if err != nil {
		return "", "", err
	}

	return systemPrompt, userPrompt, nil
}

func loadPrompt(templatePath string, data any) (string, error) {
	tmpl, err := template.New(path.Base(templatePath)).Funcs(funcs).ParseFS(templatesFS, templatePath)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", templatePath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", templatePath, err)
	}

	return buf.String(), nil
}

func orNone(value any) string {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return NoneAvailable
		}
		return v
	case int:
		if v <= 0 {
			return NoneAvailable
		}
		return fmt.Sprint(v)
	case nil:
		return NoneAvailable
	default:
		return orNone(fmt.Sprint(v))
	}
}

func list(values []string) string {
	if len(values) == 0 {
		return NoneAvailable
	}
	return strings.Join(values, ", ")
}

// date formats epoch millis in UTC so rendering does not depend on the host zone.
func date(millis int64) string {
	if millis <= 0 {
		return NoneAvailable
	}
	return time.UnixMilli(millis).UTC().Format("2006-01-02")
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
