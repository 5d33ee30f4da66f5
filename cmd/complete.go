package cmd

import (
	"github.com/etnz/dailyprompt/config"
	"github.com/etnz/dailyprompt/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	topics, _ := docs.GetAllTopics()
	topics = append(topics, "readme")

	prompt := map[string]complete.Predictor{
		"starting-equity": predict.Something,
		"today":           predict.Something,
	}
	generate := map[string]complete.Predictor{
		"o":      predict.Files("*.md"),
		"ledger": predict.Files("*.csv"),
		"i":      predict.Nothing,
		"q":      predict.Nothing,
	}
	ask := map[string]complete.Predictor{"once": predict.Nothing}
	for k, v := range prompt {
		generate[k] = v
		ask[k] = v
	}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"d":      predict.Dirs("*"),
			"source": predict.Set(config.Sources),
			"v":      predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"generate": {Flags: generate},
			"ask":      {Flags: ask},
			"search":   {Flags: map[string]complete.Predictor{"key": predict.Something}},
			"config": {
				Flags: map[string]complete.Predictor{"f": predict.Nothing},
				Args:  predict.Set{"init", "show"},
			},
			"topic": {Args: predict.Set(topics)},
			"help":  {},
		},
	}
}
