// Package main loads a check suite file, validates it and prints the cases it expands to.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"dqv/pkg/checks"
	"dqv/pkg/suite"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: suite_lint <path-to-suite-file> | -default")
		os.Exit(1)
	}

	var s *suite.Suite
	if os.Args[1] == "-default" {
		s = suite.DefaultSuite("")
		fmt.Print("Using built-in suite\n\n")
		if err := suite.ValidateSuite(s); err != nil {
			color.Red("Built-in suite is invalid: %v\n", err)
			os.Exit(1)
		}
	} else {
		filePath := os.Args[1]
		fmt.Printf("Parsing file: %s\n\n", filePath)

		var err error
		s, err = suite.LoadSuiteFromFile(filePath)
		if err != nil {
			color.Red("Error parsing suite file: %v\n", err)
			os.Exit(1)
		}
		color.Green("✅ Successfully parsed suite file!\n")
	}

	color.Cyan("ID: %s\n", s.Metadata.ID)
	if s.Metadata.Title != "" {
		color.Cyan("Title: %s\n", s.Metadata.Title)
	}
	color.Cyan("Version: %s\n", s.Metadata.Version)

	fmt.Println("\n📋 Suite Structure Summary:")
	fmt.Printf("- Dataset: %s\n", s.Dataset.Path)
	if s.Dataset.Format != "" {
		fmt.Printf("  Format: %s\n", s.Dataset.Format)
	}
	if s.Dataset.Delimiter != "" {
		fmt.Printf("  Delimiter: %q\n", s.Dataset.Delimiter)
	}

	fmt.Printf("- Checks (%d):\n", len(s.Checks))
	for i, check := range s.Checks {
		fmt.Printf("  [%d] %s\n", i+1, check.Type)
		if check.Description != "" {
			fmt.Printf("      %s\n", truncateString(check.Description, 60))
		}
		if _, err := checks.DefaultRegistry.Get(check.Type); err != nil {
			color.Yellow("      no handler registered for this type\n")
		}
	}

	cases := s.Cases()
	fmt.Printf("- Cases (%d):\n", len(cases))
	for _, c := range cases {
		fmt.Printf("  %s\n", c.Name())
	}

	// Save as YAML to verify our understanding
	outputPath := filepath.Join(os.TempDir(), "parsed_suite.yaml")
	if err := suite.SaveSuiteToFile(s, outputPath, true); err != nil {
		color.Red("Error saving parsed suite: %v\n", err)
	} else {
		color.Green("\n✅ Saved parsed suite to: %s\n", outputPath)
	}

	if _, err := os.Stat(s.Dataset.Path); err != nil {
		color.Yellow("⚠ Dataset not found at %s\n", s.Dataset.Path)
	}
}

// truncateString shortens a string if it's too long
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
