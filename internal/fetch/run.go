package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"oraj-pole/internal/model"
)

const (
	phaseEnqueue  = "Enqueuing all Score IDs to be downloaded."
	phaseDownload = "Downloading all replays."
	doneMessage   = "Et voila!"
)

// API is the subset of the leaderboard service the pipeline consumes.
type API interface {
	ListPlayers(ctx context.Context, mode model.Mode, cmode model.CustomMode, page int) ([]model.PlayerID, error)
	ListBestScores(ctx context.Context, player model.PlayerID, mode model.Mode, cmode model.CustomMode) ([]model.ScoreID, error)
	FetchReplay(ctx context.Context, score model.ScoreID) ([]byte, error)
}

type Store interface {
	Ensure() error
	Save(player model.PlayerID, score model.ScoreID, data []byte) (string, error)
}

type Options struct {
	API   API
	Store Store
	// Collect is called once, after the output directory exists.
	Collect func() (model.Params, error)
	// SkipFailedPlayers turns a per-player score listing failure into a skip
	// instead of aborting the run.
	SkipFailedPlayers bool
	Reporter          Reporter
	Logger            *slog.Logger
}

type RunResult struct {
	Params  model.Params
	Players []model.PlayerID
	Queue   model.Queue
}

// Run executes setup, parameter collection, both enumeration passes and the download pass.
func Run(ctx context.Context, opts Options) (RunResult, error) {
	if opts.API == nil {
		return RunResult{}, errors.New("api client is required")
	}
	if opts.Store == nil {
		return RunResult{}, errors.New("replay store is required")
	}
	if opts.Collect == nil {
		return RunResult{}, errors.New("parameter collector is required")
	}
	rep := opts.Reporter
	if rep == nil {
		rep = nopReporter{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := opts.Store.Ensure(); err != nil {
		return RunResult{}, err
	}

	params, err := opts.Collect()
	if err != nil {
		return RunResult{}, fmt.Errorf("collect parameters: %w", err)
	}
	if !params.Mode.Valid() || !params.CustomMode.Valid() {
		return RunResult{}, fmt.Errorf("collect parameters: unsupported selection %s/%s", params.Mode, params.CustomMode)
	}
	logger.Debug("parameters collected", "mode", params.Mode.String(), "custom_mode", params.CustomMode.String(), "page", params.Page)

	rep.Message("Fetching users...")
	players, err := opts.API.ListPlayers(ctx, params.Mode, params.CustomMode, params.Page)
	if err != nil {
		return RunResult{}, err
	}
	rep.Message(fmt.Sprintf("Found %d players to query.", len(players)))

	queue, err := BuildQueue(ctx, opts.API, players, params, QueueOptions{
		SkipFailedPlayers: opts.SkipFailedPlayers,
		Reporter:          rep,
		Logger:            logger,
	})
	if err != nil {
		return RunResult{}, err
	}
	rep.Message(fmt.Sprintf("Enqueued %d replays to download.", len(queue)))

	DownloadQueue(ctx, opts.API, opts.Store, queue, rep, logger)

	rep.Message(doneMessage)
	return RunResult{
		Params:  params,
		Players: players,
		Queue:   queue,
	}, nil
}
