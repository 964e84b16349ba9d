package cmd

import (
	"os"

	"github.com/etnz/kil"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete runs the shell completion if the process was invoked for it, and
// exits. Otherwise it does nothing. Call it before flag.Parse().
//
// Install the completion with COMP_INSTALL=1 kil.
func Complete(name string) {
	completion().Complete(name)
}

func completion() *complete.Command {
	names := complete.PredictFunc(predictNames)
	dates := predict.Set{"0d", "+1d", "+1w", "+2w", "+1m"}
	sorts := predict.Set{"insertion", "name", "name:desc", "stock", "stock:desc", "shipment", "shipment:desc"}
	data := predict.Files("*" + kil.Extension)

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"file":   data,
			"config": predict.Files("*.jsonc"),
			"v":      predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"add":     {Flags: map[string]complete.Predictor{"n": predict.Something, "s": predict.Something}},
			"remove":  {Flags: map[string]complete.Predictor{"n": names}},
			"receive": {Flags: map[string]complete.Predictor{"n": names, "a": predict.Something}},
			"use":     {Flags: map[string]complete.Predictor{"n": names, "a": predict.Something}},
			"order":   {Flags: map[string]complete.Predictor{"n": names, "d": dates, "a": predict.Something}},
			"cost":    {Flags: map[string]complete.Predictor{"n": names, "p": predict.Something, "c": predict.Set{"EUR", "USD", "GBP", "CHF", "JPY"}}},
			"list":    {Flags: map[string]complete.Predictor{"f": predict.Something, "sort": sorts}},
			"log":     {Flags: map[string]complete.Predictor{"n": names}},
			"report":  {Flags: map[string]complete.Predictor{"d": dates, "f": predict.Something, "sort": sorts}},
			"import":  {Flags: map[string]complete.Predictor{"replace": predict.Nothing}, Args: data},
			"export":  {Args: data},
			"fmt":     {},
			"help":    {},
			"topic":   {Args: predict.Set{"filter", "dates", "format", "config", "*"}},
		},
	}
}

// predictNames returns the line item names of the configured data file.
// Flags are not parsed yet, so only the environment and the config file apply.
func predictNames(prefix string) []string {
	c, err := LoadConfig("kil.jsonc", os.LookupEnv)
	if err != nil {
		return nil
	}
	data, err := os.Open(c.File)
	if err != nil {
		return nil
	}
	defer data.Close()
	s, err := kil.Import(data)
	if err != nil {
		return nil
	}
	var list []string
	for _, item := range s.All() {
		list = append(list, item.Name())
	}
	return list
}
