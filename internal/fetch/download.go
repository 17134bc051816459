package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"oraj-pole/internal/model"
	"oraj-pole/internal/ussr"
)

type ReplayFetcher interface {
	FetchReplay(ctx context.Context, score model.ScoreID) ([]byte, error)
}

type ReplaySaver interface {
	Save(player model.PlayerID, score model.ScoreID, data []byte) (string, error)
}

// DownloadReplay fetches one replay and stores it. A non-nil error always comes
// with a skipped outcome; nothing is written in that case.
func DownloadReplay(ctx context.Context, api ReplayFetcher, store ReplaySaver, task model.DownloadTask) (model.Outcome, error) {
	data, err := api.FetchReplay(ctx, task.ScoreID)
	if err != nil {
		if errors.Is(err, ussr.ErrReplayNotFound) {
			return model.OutcomeSkippedMissing, err
		}
		return model.OutcomeSkippedError, err
	}
	if _, err := store.Save(task.PlayerID, task.ScoreID, data); err != nil {
		return model.OutcomeSkippedError, err
	}
	return model.OutcomeDownloaded, nil
}

// DownloadQueue attempts every task in order. A failing task is reported and
// skipped; progress advances after each task whatever its outcome.
func DownloadQueue(ctx context.Context, api ReplayFetcher, store ReplaySaver, queue model.Queue, rep Reporter, logger *slog.Logger) {
	if rep == nil {
		rep = nopReporter{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	progress := rep.Phase(phaseDownload, len(queue))
	defer progress.Done()

	for _, task := range queue {
		outcome, err := guardedDownload(ctx, api, store, task)
		if !outcome.IsSkipped() {
			logger.Debug("replay saved", "player_id", task.PlayerID.String(), "score_id", task.ScoreID.String())
			progress.Advance()
			continue
		}
		logger.Debug("replay skipped", "score_id", task.ScoreID.String(), "outcome", string(outcome), "error", err)
		if outcome == model.OutcomeSkippedMissing {
			rep.Error(fmt.Sprintf("Failed to download replay %s as it doesn't exist!", task.ScoreID), nil)
		} else {
			rep.Error(fmt.Sprintf("Failed to download replay %s due to error!", task.ScoreID), err)
		}
		progress.Advance()
	}
}

func guardedDownload(ctx context.Context, api ReplayFetcher, store ReplaySaver, task model.DownloadTask) (outcome model.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = model.OutcomeSkippedError
			err = fmt.Errorf("panic while downloading replay %s: %v", task.ScoreID, r)
		}
	}()
	return DownloadReplay(ctx, api, store, task)
}
