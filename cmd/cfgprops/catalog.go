package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/cfgprops/cfgprops"
)

// ErrUnknownProperty is returned when "catalog show" misses.
var ErrUnknownProperty = errors.New("property not found in catalog")

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Inspect metadata catalogs",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all properties",
				Flags:  engineFlags(),
				Action: runCatalogList,
			},
			{
				Name:      "show",
				Usage:     "Show one property's metadata",
				ArgsUsage: "<property>",
				Flags:     engineFlags(),
				Action:    runCatalogShow,
			},
		},
	}
}

func runCatalogList(_ context.Context, cmd *cli.Command) error {
	_, cat, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	for _, p := range cat.All() {
		marker := " "
		switch p.Deprecation {
		case cfgprops.DeprecationWarning:
			marker = "D"
		case cfgprops.DeprecationError:
			marker = "E"
		case cfgprops.DeprecationNone:
		}

		fmt.Printf("%s %-50s %s\n", marker, p.Name, p.Type)
	}

	return nil
}

func runCatalogShow(_ context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()

	_, cat, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	meta, ok := cat.LookupByName(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}

	fmt.Printf("Name:        %s\n", meta.Name)
	fmt.Printf("Type:        %s\n", meta.Type)

	if meta.Description != "" {
		fmt.Printf("Description: %s\n", meta.Description)
	}
	if meta.DefaultValue != "" {
		fmt.Printf("Default:     %s\n", meta.DefaultValue)
	}
	if meta.SourceType != "" {
		fmt.Printf("Source:      %s\n", meta.SourceType)
	}
	if meta.Deprecation != cfgprops.DeprecationNone {
		fmt.Printf("Deprecated:  %s\n", meta.Deprecation)
		if meta.Replacement != "" {
			fmt.Printf("Replacement: %s\n", meta.Replacement)
		}
	}

	if len(meta.Hints.ValueHints) > 0 {
		fmt.Println("Value hints:")
		for _, h := range meta.Hints.ValueHints {
			fmt.Printf("  %s\t%s\n", h.Value, h.Description)
		}
	}
	if len(meta.Hints.KeyHints) > 0 {
		fmt.Println("Key hints:")
		for _, h := range meta.Hints.KeyHints {
			fmt.Printf("  %s\t%s\n", h.Value, h.Description)
		}
	}
	for _, vp := range meta.Hints.ValueProviders {
		fmt.Printf("Value provider: %s %v\n", vp.Name, vp.Parameters)
	}
	for _, vp := range meta.Hints.KeyProviders {
		fmt.Printf("Key provider: %s %v\n", vp.Name, vp.Parameters)
	}

	return nil
}
