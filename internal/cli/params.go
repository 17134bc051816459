package cli

import (
	"fmt"
	"strconv"
	"strings"

	"oraj-pole/internal/fetch"
	"oraj-pole/internal/model"
)

const invalidIntegerMessage = "Please enter a valid integer number"

func SelectCustomMode(p Prompter, r fetch.Reporter) (model.CustomMode, error) {
	options := model.JoinOptions(model.CustomModeOptions())
	label := fmt.Sprintf("Pick a custom mode to use (%s)", options)
	for {
		answer, err := p.Ask(label)
		if err != nil {
			return 0, fmt.Errorf("custom mode: %w", err)
		}
		if mode, ok := model.ParseCustomMode(answer); ok {
			return mode, nil
		}
		r.Error(fmt.Sprintf("Incorrect option! (Valid: %s)", options), nil)
	}
}

func SelectMode(p Prompter, r fetch.Reporter) (model.Mode, error) {
	options := model.JoinOptions(model.ModeOptions())
	label := fmt.Sprintf("Pick a mode to use (%s)", options)
	for {
		answer, err := p.Ask(label)
		if err != nil {
			return 0, fmt.Errorf("mode: %w", err)
		}
		if mode, ok := model.ParseMode(answer); ok {
			return mode, nil
		}
		r.Error(fmt.Sprintf("Incorrect option! (Valid: %s)", options), nil)
	}
}

// SelectPage accepts any base-10 integer.
func SelectPage(p Prompter, r fetch.Reporter) (int, error) {
	for {
		answer, err := p.Ask("Pick the leaderboards page to query")
		if err != nil {
			return 0, fmt.Errorf("page: %w", err)
		}
		page, convErr := strconv.Atoi(strings.TrimSpace(answer))
		if convErr == nil {
			return page, nil
		}
		r.Error(invalidIntegerMessage, nil)
	}
}

func CollectParams(p Prompter, r fetch.Reporter) (model.Params, error) {
	cmode, err := SelectCustomMode(p, r)
	if err != nil {
		return model.Params{}, err
	}
	mode, err := SelectMode(p, r)
	if err != nil {
		return model.Params{}, err
	}
	page, err := SelectPage(p, r)
	if err != nil {
		return model.Params{}, err
	}
	return model.Params{CustomMode: cmode, Mode: mode, Page: page}, nil
}
