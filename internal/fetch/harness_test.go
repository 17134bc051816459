package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"oraj-pole/internal/model"
	"oraj-pole/internal/ussr"
)

type fakeAPI struct {
	players     []model.PlayerID
	playersErr  error
	scores      map[model.PlayerID][]model.ScoreID
	scoreErrs   map[model.PlayerID]error
	replays     map[model.ScoreID][]byte
	replayErrs  map[model.ScoreID]error
	replayPanic map[model.ScoreID]bool

	mu      sync.Mutex
	fetched []model.ScoreID
}

func (f *fakeAPI) ListPlayers(_ context.Context, _ model.Mode, _ model.CustomMode, _ int) ([]model.PlayerID, error) {
	if f.playersErr != nil {
		return nil, f.playersErr
	}
	return f.players, nil
}

func (f *fakeAPI) ListBestScores(_ context.Context, player model.PlayerID, _ model.Mode, _ model.CustomMode) ([]model.ScoreID, error) {
	if err := f.scoreErrs[player]; err != nil {
		return nil, err
	}
	return f.scores[player], nil
}

func (f *fakeAPI) FetchReplay(_ context.Context, score model.ScoreID) ([]byte, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, score)
	f.mu.Unlock()
	if f.replayPanic[score] {
		panic("decoder exploded")
	}
	if err := f.replayErrs[score]; err != nil {
		return nil, err
	}
	data, ok := f.replays[score]
	if !ok {
		return nil, fmt.Errorf("%w: score %s (status 404)", ussr.ErrReplayNotFound, score)
	}
	return data, nil
}

type recordingReporter struct {
	messages []string
	errors   []string
	phases   []*recordingProgress
}

type recordingProgress struct {
	label    string
	total    int
	advanced int
	done     bool
}

func (r *recordingReporter) Message(msg string) {
	r.messages = append(r.messages, msg)
}

func (r *recordingReporter) Error(msg string, err error) {
	if err != nil {
		msg += " " + err.Error()
	}
	r.errors = append(r.errors, msg)
}

func (r *recordingReporter) Phase(label string, total int) Progress {
	p := &recordingProgress{label: label, total: total}
	r.phases = append(r.phases, p)
	return p
}

func (p *recordingProgress) Advance() { p.advanced++ }
func (p *recordingProgress) Done()    { p.done = true }

func (r *recordingReporter) errorsContaining(s string) int {
	n := 0
	for _, e := range r.errors {
		if strings.Contains(e, s) {
			n++
		}
	}
	return n
}

var errConnReset = errors.New("read: connection reset by peer")
