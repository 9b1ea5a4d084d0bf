// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/docstring-checker/services/docstrings"
	"github.com/AleutianAI/docstring-checker/services/docstrings/config"
	"github.com/AleutianAI/docstring-checker/services/docstrings/report"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Verify required docstring sections without modifying files",
	Long: "Verify that every eligible function's docstring contains the configured\n" +
		"required sections (commonly Args and Returns, optionally Raises).\n" +
		"Exits non-zero when any section is missing or any file fails to parse.",
	Args: cobra.MinimumNArgs(1),
	RunE: runCheckCommand,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheckCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	runner := docstrings.NewRunner(cfg, slog.Default())
	result := runner.Run(cmd.Context(), docstrings.ModeCheck, args)

	if out := report.Diagnostics(result.Diagnostics, !noColor); out != "" {
		cmd.Print(out)
	}
	cmd.Println(report.Summary(docstrings.ModeCheck, result, !noColor))

	exitCode = result.ExitCode()
	return nil
}
