// Package projects manages the project idea catalog: generating new ideas
// from a prompt, saving favorites, and producing per-project flowcharts
// and build guides.
package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"darijacode/extract"
	"darijacode/llm"
	"darijacode/schema"
	"darijacode/store"
)

// IdeasKey is the store key holding the idea collection.
const IdeasKey = "projectIdeas"

const (
	ideaMaxTokens   = 1024
	ideaTemperature = 0.7

	flowchartMaxTokens   = 1024
	flowchartTemperature = 0.3

	detailMaxTokens   = 2048
	detailTemperature = 0.5

	defaultTitle      = "New Project"
	defaultDifficulty = "beginner"

	fallbackDetails = "Sorry, there was an error generating the project details. Please make sure your API key is set up correctly."
	emptyDetails    = "Sorry, I couldn't generate details for this project."
)

var difficulties = []string{"beginner", "intermediate", "advanced"}

const ideaSystemPrompt = "You are DarijaCode Hub's project idea generator for Moroccan developers. " +
	"Generate a project idea based on the user's description, and format your output as JSON. " +
	"Include fields: title, description, difficulty (beginner/intermediate/advanced), tags (array of strings)."

const flowchartSystemPrompt = "You are an expert at creating Mermaid.js flowcharts. " +
	"Create a simple, clear flowchart for the given project. " +
	"Use only flowchart syntax, not other Mermaid diagram types. " +
	"Keep it simple with 5-10 nodes maximum."

const detailSystemPrompt = "You are DarijaCode Hub's project assistant, helping Moroccan developers with coding projects. " +
	"Your responses should include practical steps to implement the project, suggested technologies, " +
	"possible extensions, and learning outcomes. Format with markdown."

// ProjectIdea is one entry in the idea catalog.
type ProjectIdea struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Tags        []string `json:"tags"`
	Saved       bool     `json:"saved"`
}

// SeedIdeas returns the default catalog shown before any generation.
func SeedIdeas() []ProjectIdea {
	return []ProjectIdea{
		{ID: "idea-1", Title: "Souk Price Tracker", Description: "Track prices of fruits and vegetables across Moroccan souks and show weekly trends.", Difficulty: "beginner", Tags: []string{"frontend", "data"}},
		{ID: "idea-2", Title: "Darija Flashcards", Description: "A flashcard app for learning programming vocabulary in Darija with spaced repetition.", Difficulty: "beginner", Tags: []string{"frontend", "education"}},
		{ID: "idea-3", Title: "Taxi Fare Estimator", Description: "Estimate petit taxi fares between Casablanca neighborhoods from distance and time of day.", Difficulty: "intermediate", Tags: []string{"api", "maps"}},
		{ID: "idea-4", Title: "Ftour Planner", Description: "Plan Ramadan ftour menus for a week and generate a shopping list automatically.", Difficulty: "beginner", Tags: []string{"frontend", "planning"}},
		{ID: "idea-5", Title: "Artisan Marketplace", Description: "A marketplace where Moroccan artisans list handmade goods with photos and orders.", Difficulty: "advanced", Tags: []string{"fullstack", "ecommerce"}},
		{ID: "idea-6", Title: "Bus Schedule Notifier", Description: "Notify users when their city bus line is approaching, based on published schedules.", Difficulty: "intermediate", Tags: []string{"api", "notifications"}},
	}
}

// Catalog owns the idea collection and its persistence.
type Catalog struct {
	store     *store.Store
	completer llm.Completer
	logger    *zap.Logger

	mu    sync.Mutex
	ideas []ProjectIdea
}

// NewCatalog loads the persisted ideas, seeding the defaults when nothing
// has been stored yet.
func NewCatalog(s *store.Store, completer llm.Completer, logger *zap.Logger) *Catalog {
	return &Catalog{
		store:     s,
		completer: completer,
		logger:    logger,
		ideas:     store.Load(s, IdeasKey, SeedIdeas()),
	}
}

// Ideas returns a snapshot of the current collection, newest first.
func (c *Catalog) Ideas() []ProjectIdea {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ProjectIdea, len(c.ideas))
	copy(out, c.ideas)
	return out
}

// Generate creates a new idea from a free-text prompt and prepends it to
// the collection. A transport failure leaves the collection untouched and
// returns the error. An unreadable payload still commits an idea, built
// from the prompt itself, so the user's request is never silently lost.
func (c *Catalog) Generate(ctx context.Context, prompt string) (ProjectIdea, error) {
	raw, err := c.completer.Complete(ctx, llm.Request{
		System:      ideaSystemPrompt,
		User:        "Generate a coding project idea based on: " + prompt,
		MaxTokens:   ideaMaxTokens,
		Temperature: ideaTemperature,
	})
	if err != nil {
		c.logger.Warn("idea generation failed", zap.Error(err))
		return ProjectIdea{}, fmt.Errorf("generate project idea: %w", err)
	}

	var idea ProjectIdea
	v, err := extract.Decode(raw)
	if err != nil {
		c.logger.Warn("idea payload unreadable", zap.Error(err))
		idea = fromPayload(nil, prompt)
	} else {
		idea = fromPayload(v, prompt)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]ProjectIdea, 0, len(c.ideas)+1)
	next = append(next, idea)
	c.ideas = append(next, c.ideas...)
	c.persist()
	return idea, nil
}

// ToggleSave flips the saved flag on the idea with the given id. Unknown
// ids leave the collection unchanged.
func (c *Catalog) ToggleSave(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.ideas {
		if c.ideas[i].ID == id {
			c.ideas[i].Saved = !c.ideas[i].Saved
		}
	}
	c.persist()
}

// Filter narrows the collection by difficulty, tag and a free-text search
// over title and description. Empty or "all" values disable that filter.
func (c *Catalog) Filter(difficulty, tag, search string) []ProjectIdea {
	ideas := c.Ideas()
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]ProjectIdea, 0, len(ideas))
	for _, idea := range ideas {
		if difficulty != "" && difficulty != "all" && !strings.EqualFold(idea.Difficulty, difficulty) {
			continue
		}
		if tag != "" && tag != "all" && !hasTag(idea, tag) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(idea.Title), search) &&
			!strings.Contains(strings.ToLower(idea.Description), search) {
			continue
		}
		out = append(out, idea)
	}
	return out
}

// Flowchart renders a Mermaid flowchart for an idea. The result is not
// persisted; each call generates a fresh chart.
func (c *Catalog) Flowchart(ctx context.Context, idea ProjectIdea) (string, error) {
	raw, err := c.completer.Complete(ctx, llm.Request{
		System:      flowchartSystemPrompt,
		User:        "Create a Mermaid.js flowchart for this project: " + idea.Title + ". " + idea.Description,
		MaxTokens:   flowchartMaxTokens,
		Temperature: flowchartTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate flowchart: %w", err)
	}
	return extract.Block(raw, "mermaid"), nil
}

// Details generates a step-by-step build guide for an idea. A failed
// request yields explanatory fallback text rather than an error.
func (c *Catalog) Details(ctx context.Context, idea ProjectIdea) string {
	content, err := c.completer.Complete(ctx, llm.Request{
		System:      detailSystemPrompt,
		User:        "Provide detailed guidance for the project: " + idea.Title + ". " + idea.Description,
		MaxTokens:   detailMaxTokens,
		Temperature: detailTemperature,
	})
	switch {
	case errors.Is(err, llm.ErrEmptyCompletion):
		return emptyDetails
	case err != nil:
		c.logger.Warn("project details failed", zap.String("idea", idea.ID), zap.Error(err))
		return fallbackDetails
	}
	return content
}

func (c *Catalog) persist() {
	if err := store.Save(c.store, IdeasKey, c.ideas); err != nil {
		c.logger.Warn("persist project ideas", zap.Error(err))
	}
}

// fromPayload normalizes a decoded payload into a ProjectIdea, filling
// defaults for anything missing or of the wrong shape.
func fromPayload(v any, prompt string) ProjectIdea {
	m := schema.Obj(v)
	return ProjectIdea{
		ID:          fmt.Sprintf("idea-%d", time.Now().UnixMilli()),
		Title:       schema.Str(m, "title", defaultTitle),
		Description: schema.Str(m, "description", prompt),
		Difficulty:  schema.Choice(m, "difficulty", difficulties, defaultDifficulty),
		Tags:        schema.Tags(m["tags"], "other", 0),
	}
}

func hasTag(idea ProjectIdea, tag string) bool {
	for _, t := range idea.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
