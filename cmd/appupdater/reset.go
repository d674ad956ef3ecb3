package main

import (
	"context"
	"fmt"
	"io"

	"appupdater/pkg/appupdater"

	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the show-every counter and re-enable prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func runReset(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	u, err := appupdater.FromConfig(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = u.Close() }()

	if err := u.ResetPreferences(ctx); err != nil {
		return fmt.Errorf("reset preferences: %w", err)
	}
	_, _ = fmt.Fprintln(out, "Preferences reset: prompts re-enabled, counter cleared")
	return nil
}
