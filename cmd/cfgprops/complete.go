package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cfgprops/cfgprops"
)

func completeCommand() *cli.Command {
	return &cli.Command{
		Name:      "complete",
		Usage:     "Resolve completions for a line of configuration",
		ArgsUsage: "<line>",
		Flags: append(engineFlags(),
			&cli.IntFlag{
				Name:  "caret",
				Usage: "caret offset within the line (defaults to end of line)",
				Value: -1,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "output candidates as JSON",
			},
		),
		Action: runComplete,
	}
}

func runComplete(ctx context.Context, cmd *cli.Command) error {
	line := cmd.Args().First()

	engine, _, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	caret := int(cmd.Int("caret"))
	if caret < 0 || caret > len(line) {
		caret = len(line)
	}

	collector := cfgprops.NewCollector()
	engine.Resolve(ctx, cfgprops.NewDocument(line), caret, collector)

	items, err := collector.Wait(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return printJSON(items)
	}

	for _, it := range items {
		if it.Detail != "" {
			fmt.Printf("%s\t%s\n", it.Value, it.Detail)
		} else {
			fmt.Println(it.Value)
		}
	}

	return nil
}

type jsonItem struct {
	Value       string `json:"value"`
	Detail      string `json:"detail,omitempty"`
	Description string `json:"description,omitempty"`
	Deprecation string `json:"deprecation,omitempty"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
}

func printJSON(items []cfgprops.CompletionItem) error {
	out := make([]jsonItem, 0, len(items))
	for _, it := range items {
		ji := jsonItem{
			Value:       it.Value,
			Detail:      it.Detail,
			Description: it.Description,
			Start:       it.StartOffset,
			End:         it.EndOffset,
		}
		if it.Deprecation != cfgprops.DeprecationNone {
			ji.Deprecation = it.Deprecation.String()
		}
		out = append(out, ji)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}
