package fetch

import (
	"context"
	"fmt"
	"log/slog"

	"oraj-pole/internal/model"
)

type ScoreLister interface {
	ListBestScores(ctx context.Context, player model.PlayerID, mode model.Mode, cmode model.CustomMode) ([]model.ScoreID, error)
}

type QueueOptions struct {
	SkipFailedPlayers bool
	Reporter          Reporter
	Logger            *slog.Logger
}

// BuildQueue concatenates each player's best score ids in player order, tagging
// every pair with its player. It advances one progress step per player.
func BuildQueue(ctx context.Context, api ScoreLister, players []model.PlayerID, params model.Params, opts QueueOptions) (model.Queue, error) {
	rep := opts.Reporter
	if rep == nil {
		rep = nopReporter{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	progress := rep.Phase(phaseEnqueue, len(players))
	defer progress.Done()

	queue := make(model.Queue, 0, len(players)*10)
	for _, player := range players {
		scores, err := api.ListBestScores(ctx, player, params.Mode, params.CustomMode)
		if err != nil {
			if !opts.SkipFailedPlayers {
				return nil, err
			}
			logger.Debug("skipping player", "player_id", player.String(), "error", err)
			rep.Error(fmt.Sprintf("Failed to list best scores for player %s, skipping!", player), err)
			progress.Advance()
			continue
		}
		for _, score := range scores {
			queue = append(queue, model.DownloadTask{PlayerID: player, ScoreID: score})
		}
		progress.Advance()
	}
	return queue, nil
}
