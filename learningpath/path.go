// Package learningpath generates a personal learning path from a stated
// goal and tracks progress through its steps.
package learningpath

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"darijacode/extract"
	"darijacode/llm"
	"darijacode/schema"
	"darijacode/store"
)

const (
	// PathKey is the store key holding the current path.
	PathKey = "learningPath"
	// GoalKey is the store key holding the goal the path was built from.
	GoalKey = "pathGoal"

	pathMaxTokens   = 2048
	pathTemperature = 0.7

	defaultCategory    = "web development"
	defaultLevel       = "beginner"
	defaultDescription = "Custom learning path"
)

var levels = []string{"beginner", "intermediate", "advanced"}

const pathSystemPrompt = "You are DarijaCode Hub's learning path assistant, helping Moroccan developers create structured learning plans. " +
	"When responding, format your output as valid JSON that can be parsed. " +
	"The response should include a learning path with steps that have the following structure: " +
	"{id, title, description, level, category, steps: [{id, title, description, resources: [{title, url}], estimatedTime, completed: false}]}."

// Resource links one step to external reading material.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// PathStep is one unit of work inside a path.
type PathStep struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Resources     []Resource `json:"resources"`
	EstimatedTime string     `json:"estimatedTime"`
	Completed     bool       `json:"completed"`
}

// LearningPath is a generated plan toward one goal.
type LearningPath struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Goal        string     `json:"goal"`
	Level       string     `json:"level"`
	Category    string     `json:"category"`
	Steps       []PathStep `json:"steps"`
}

// Planner generates and persists a learning path. At most one path exists
// at a time; generating a new one replaces it.
type Planner struct {
	store     *store.Store
	completer llm.Completer
	logger    *zap.Logger

	mu   sync.Mutex
	goal string
	path *LearningPath
}

// NewPlanner loads any previously generated path and its goal.
func NewPlanner(s *store.Store, completer llm.Completer, logger *zap.Logger) *Planner {
	p := &Planner{store: s, completer: completer, logger: logger}
	p.goal = store.Load(s, GoalKey, "")
	stored := store.Load(s, PathKey, LearningPath{})
	if stored.ID != "" {
		p.path = &stored
	}
	return p
}

// Path returns a copy of the current path, if one has been generated.
func (p *Planner) Path() (LearningPath, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.path == nil {
		return LearningPath{}, false
	}
	return clonePath(*p.path), true
}

// Goal returns the goal the current path was generated from.
func (p *Planner) Goal() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.goal
}

// Generate builds a new path for the goal, replacing any existing one. A
// transport failure leaves the stored path untouched and returns the
// error. An unreadable payload commits a minimal path derived from the
// goal instead, so the page always ends up with a usable record.
func (p *Planner) Generate(ctx context.Context, goal string) (LearningPath, error) {
	raw, err := p.completer.Complete(ctx, llm.Request{
		System: pathSystemPrompt,
		User: "Create a detailed coding learning path for me to " + goal +
			", using Moroccan references if possible. Return it as a JSON object only, " +
			"with no explanation. Make sure it's a valid JSON that can be parsed.",
		MaxTokens:   pathMaxTokens,
		Temperature: pathTemperature,
	})
	if err != nil {
		p.logger.Warn("path generation failed", zap.String("goal", goal), zap.Error(err))
		return LearningPath{}, fmt.Errorf("generate learning path: %w", err)
	}

	var path LearningPath
	v, err := extract.Decode(raw)
	if err != nil {
		p.logger.Warn("path payload unreadable", zap.String("goal", goal), zap.Error(err))
		path = fromPayload(nil, goal)
	} else {
		path = fromPayload(v, goal)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.goal = goal
	p.path = &path
	p.persist()
	return clonePath(path), nil
}

// ToggleStep flips the completion state of one step and persists the
// path. Unknown ids leave the path unchanged.
func (p *Planner) ToggleStep(stepID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.path == nil {
		return
	}
	for i := range p.path.Steps {
		if p.path.Steps[i].ID == stepID {
			p.path.Steps[i].Completed = !p.path.Steps[i].Completed
		}
	}
	p.persist()
}

// Progress returns the fraction of completed steps, zero when no path or
// no steps exist.
func (p *Planner) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.path == nil || len(p.path.Steps) == 0 {
		return 0
	}
	done := 0
	for _, s := range p.path.Steps {
		if s.Completed {
			done++
		}
	}
	return float64(done) / float64(len(p.path.Steps))
}

func (p *Planner) persist() {
	if err := store.Save(p.store, PathKey, *p.path); err != nil {
		p.logger.Warn("persist learning path", zap.Error(err))
	}
	if err := store.Save(p.store, GoalKey, p.goal); err != nil {
		p.logger.Warn("persist path goal", zap.Error(err))
	}
}

// fromPayload normalizes a decoded payload into a LearningPath, filling
// defaults for anything missing or of the wrong shape. Step completion
// always starts false, whatever the payload claims.
func fromPayload(v any, goal string) LearningPath {
	m := schema.Obj(v)
	path := LearningPath{
		ID:          schema.Str(m, "id", fmt.Sprintf("path-%d", time.Now().UnixMilli())),
		Title:       schema.Str(m, "title", goal),
		Description: schema.Str(m, "description", defaultDescription),
		Goal:        goal,
		Level:       schema.Choice(m, "level", levels, defaultLevel),
		Category:    schema.Str(m, "category", defaultCategory),
		Steps:       []PathStep{},
	}
	for i, raw := range schema.List(m, "steps") {
		sm := schema.Obj(raw)
		resources := []Resource{}
		for _, rr := range schema.List(sm, "resources") {
			rm := schema.Obj(rr)
			resources = append(resources, Resource{
				Title: schema.Str(rm, "title", ""),
				URL:   schema.Str(rm, "url", ""),
			})
		}
		path.Steps = append(path.Steps, PathStep{
			ID:            schema.Str(sm, "id", fmt.Sprintf("step-%d", i+1)),
			Title:         schema.Str(sm, "title", fmt.Sprintf("Step %d", i+1)),
			Description:   schema.Str(sm, "description", ""),
			Resources:     resources,
			EstimatedTime: schema.Str(sm, "estimatedTime", "Unknown"),
		})
	}
	return path
}

func clonePath(path LearningPath) LearningPath {
	steps := make([]PathStep, len(path.Steps))
	copy(steps, path.Steps)
	path.Steps = steps
	return path
}
