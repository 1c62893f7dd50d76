// Package learning exposes the lesson catalog, tracks which lessons are
// completed, and generates lesson content on demand.
package learning

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"darijacode/llm"
	"darijacode/store"
)

// CompletedKey is the store key holding the completed lesson ids.
const CompletedKey = "completedLessons"

const (
	lessonMaxTokens   = 2048
	lessonTemperature = 0.5

	fallbackLesson = "Sorry, there was an error generating the learning content. Please make sure your API key is set up correctly."
	emptyLesson    = "Sorry, I couldn't generate content for this topic."
)

// Topic is one entry in the lesson catalog. Language selects the language
// the generated lesson is written in.
type Topic struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Language    string   `json:"language"`
}

// Catalog returns the built-in lesson topics.
func Catalog() []Topic {
	return []Topic{
		{ID: "html-basics", Title: "HTML Basics", Description: "Learn the fundamentals of HTML to create web pages.", Category: "web", Tags: []string{"html", "beginner"}, Language: llm.LangEnglish},
		{ID: "css-styling", Title: "CSS Styling", Description: "Learn how to style your web pages with CSS.", Category: "web", Tags: []string{"css", "beginner"}, Language: llm.LangEnglish},
		{ID: "javascript-intro", Title: "JavaScript Introduction", Description: "Get started with JavaScript programming.", Category: "web", Tags: []string{"javascript", "beginner"}, Language: llm.LangEnglish},
		{ID: "python-basics", Title: "Python Basics", Description: "Start your Python programming journey.", Category: "programming", Tags: []string{"python", "beginner"}, Language: llm.LangEnglish},
		{ID: "react-intro", Title: "React Introduction", Description: "Learn the basics of React library for building user interfaces.", Category: "web", Tags: []string{"react", "javascript", "intermediate"}, Language: llm.LangEnglish},
		{ID: "git-basics", Title: "Git Basics", Description: "Master the essential Git commands for version control.", Category: "tools", Tags: []string{"git", "beginner"}, Language: llm.LangEnglish},
		{ID: "database-intro", Title: "Database Introduction", Description: "Understand the basics of databases and SQL.", Category: "database", Tags: []string{"sql", "database", "beginner"}, Language: llm.LangEnglish},
		{ID: "html-basics-fr", Title: "Bases de HTML", Description: "Apprendre les fondamentaux de HTML pour créer des pages web.", Category: "web", Tags: []string{"html", "beginner"}, Language: llm.LangFrench},
		{ID: "python-basics-ar", Title: "أساسيات بايثون", Description: "ابدأ رحلتك في برمجة بايثون.", Category: "programming", Tags: []string{"python", "beginner"}, Language: llm.LangArabic},
		{ID: "javascript-intro-darija", Title: "Mouqadima JavaScript", Description: "Bda t3llem JavaScript mn louwel.", Category: "web", Tags: []string{"javascript", "beginner"}, Language: llm.LangDarija},
	}
}

// TopicByID looks a topic up in the catalog.
func TopicByID(id string) (Topic, bool) {
	for _, t := range Catalog() {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// Filter narrows topics by category, language and a free-text search over
// title, description and tags. Empty or "all" values disable that filter.
func Filter(topics []Topic, category, language, search string) []Topic {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]Topic, 0, len(topics))
	for _, t := range topics {
		if category != "" && category != "all" && !strings.EqualFold(t.Category, category) {
			continue
		}
		if language != "" && language != "all" && t.Language != language {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(t Topic, lowered string) bool {
	if strings.Contains(strings.ToLower(t.Title), lowered) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), lowered) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), lowered) {
			return true
		}
	}
	return false
}

// Library tracks lesson completion and generates lesson content. The
// completed set survives restarts through the store.
type Library struct {
	store     *store.Store
	completer llm.Completer
	logger    *zap.Logger

	mu        sync.Mutex
	completed []string
}

// NewLibrary loads the persisted completion state.
func NewLibrary(s *store.Store, completer llm.Completer, logger *zap.Logger) *Library {
	return &Library{
		store:     s,
		completer: completer,
		logger:    logger,
		completed: store.Load(s, CompletedKey, []string{}),
	}
}

// Completed returns the completed lesson ids.
func (l *Library) Completed() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.completed))
	copy(out, l.completed)
	return out
}

// IsCompleted reports whether the lesson with the given id is done.
func (l *Library) IsCompleted(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, c := range l.completed {
		if c == id {
			return true
		}
	}
	return false
}

// ToggleCompleted marks a lesson done, or not done if it already was, and
// persists the new set.
func (l *Library) ToggleCompleted(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]string, 0, len(l.completed)+1)
	found := false
	for _, c := range l.completed {
		if c == id {
			found = true
			continue
		}
		next = append(next, c)
	}
	if !found {
		next = append(next, id)
	}
	l.completed = next
	if err := store.Save(l.store, CompletedKey, l.completed); err != nil {
		l.logger.Warn("persist completed lessons", zap.Error(err))
	}
}

// Lesson generates the content for a topic, in the topic's language. A
// failed request yields explanatory fallback text rather than an error so
// the page always has something to show.
func (l *Library) Lesson(ctx context.Context, topic Topic) string {
	content, err := l.completer.Complete(ctx, llm.Request{
		System: llm.LearningSystemPrompt(topic.Language),
		User: "Teach me about " + topic.Title + ". Include: 1) An introduction, " +
			"2) Key concepts, 3) Code examples, 4) Practice exercises, " +
			"5) Additional resources. Format with markdown headings and sections.",
		MaxTokens:   lessonMaxTokens,
		Temperature: lessonTemperature,
	})
	switch {
	case errors.Is(err, llm.ErrEmptyCompletion):
		return emptyLesson
	case err != nil:
		l.logger.Warn("lesson generation failed",
			zap.String("topic", topic.ID), zap.Error(err))
		return fallbackLesson
	}
	return content
}
