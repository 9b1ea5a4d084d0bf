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

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Rewrite files in place so every eligible function has a canonical docstring",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFixCommand,
}

func init() {
	rootCmd.AddCommand(fixCmd)
}

func runFixCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	runner := docstrings.NewRunner(cfg, slog.Default())
	result := runner.Run(cmd.Context(), docstrings.ModeFix, args)

	if out := report.Diagnostics(result.Diagnostics, !noColor); out != "" {
		cmd.Print(out)
	}
	cmd.Println(report.Summary(docstrings.ModeFix, result, !noColor))

	exitCode = result.ExitCode()
	return nil
}
