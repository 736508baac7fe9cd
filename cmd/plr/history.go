package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/plrgo/internal/output"
)

var errHistoryDisabled = errors.New("history is disabled (--no-history)")

func historyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent calculations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.history == nil {
				return errHistoryDisabled
			}
			fmt.Fprint(cmd.OutOrStdout(), output.FormatHistory(a.history.Entries()))
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove [index]",
		Short: "Remove one entry by its index in 'plr history'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.history == nil {
				return errHistoryDisabled
			}
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
			if err := a.history.Remove(idx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registro %d removido.\n", idx)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.history == nil {
				return errHistoryDisabled
			}
			if err := a.history.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Histórico apagado.")
			return nil
		},
	}

	cmd.AddCommand(removeCmd, clearCmd)
	return cmd
}
