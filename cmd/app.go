package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"darijacode/chat"
	"darijacode/community"
	"darijacode/config"
	"darijacode/learning"
	"darijacode/learningpath"
	"darijacode/llm"
	"darijacode/logging"
	"darijacode/paths"
	"darijacode/projects"
	"darijacode/store"
	"darijacode/transcribe"
)

// app wires configuration, logging, persistence and the generation
// clients into the feature state every command operates on.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	session *chat.Session
	library *learning.Library
	planner *learningpath.Planner
	catalog *projects.Catalog
	board   *community.Board

	transcriber transcribe.Transcriber
}

func newApp() (*app, error) {
	if err := paths.EnsureDataDir(); err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	completer := llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.Model)

	board := community.NewBoard(s, completer, logger)
	board.SetReplyDelay(cfg.ReplyDelay())

	return &app{
		cfg:         cfg,
		logger:      logger,
		session:     chat.NewSession(s, completer, logger, cfg.Language),
		library:     learning.NewLibrary(s, completer, logger),
		planner:     learningpath.NewPlanner(s, completer, logger),
		catalog:     projects.NewCatalog(s, completer, logger),
		board:       board,
		transcriber: transcribe.NewClient(cfg.HFToken, cfg.WhisperEndpoint),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
