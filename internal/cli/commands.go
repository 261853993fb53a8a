// Package cli holds the cobra commands of the railtools terminal client.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/railtools/pkg/clients/railtools"
)

const requestTimeout = 30 * time.Second

// NewRootCmd builds the command tree around client.
func NewRootCmd(client railtools.Client) *cobra.Command {
	root := &cobra.Command{
		Use:           "railtools",
		Short:         "Railway maintenance calculators",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		NewThemesCmd(client),
		NewCalcCmd(client),
		NewHistoryCmd(client),
	)
	return root
}

// NewThemesCmd lists the calculation themes.
func NewThemesCmd(client railtools.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List calculation themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			themes, err := client.Themes(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range themes {
				fmt.Fprintf(out, "%-16s %-24s %s\n", t.ID, t.Title, t.Description)
			}
			return nil
		},
	}
}

type calcCmd struct {
	client railtools.Client
	mode   string
	values []string
	save   bool
	images []string
}

// NewCalcCmd runs one calculation: calc THEME --mode M --set k=v.
func NewCalcCmd(client railtools.Client) *cobra.Command {
	cc := &calcCmd{client: client}
	cmd := &cobra.Command{
		Use:   "calc THEME",
		Short: "Run a calculation",
		Args:  cobra.ExactArgs(1),
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.mode, "mode", "", "Calculation mode (default mode of the theme when empty)")
	cmd.Flags().StringArrayVar(&cc.values, "set", nil, "Input value as name=value, repeatable")
	cmd.Flags().BoolVar(&cc.save, "save", false, "Save the result to the history")
	cmd.Flags().StringArrayVar(&cc.images, "image", nil, "Image uri attached to the saved entry, repeatable")

	return cmd
}

func (cc *calcCmd) run(cmd *cobra.Command, args []string) error {
	inputs, err := parseAssignments(cc.values)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	resp, err := cc.client.Calculate(ctx, args[0], railtools.CalculateRequest{
		Mode:   cc.mode,
		Inputs: inputs,
		Save:   cc.save,
		Images: cc.images,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", resp.Result.ThemeName, resp.Result.CalculationType)
	for _, m := range resp.Result.Metrics {
		fmt.Fprintf(out, "  %-28s %s %s\n", m.Label, m.Display, m.Unit)
	}
	fmt.Fprintln(out, resp.Result.Summary)
	if resp.Entry != nil {
		fmt.Fprintf(out, "saved as %s\n", resp.Entry.ID)
	}
	return nil
}

func parseAssignments(values []string) (map[string]string, error) {
	inputs := make(map[string]string, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, expected name=value", v)
		}
		inputs[name] = value
	}
	return inputs, nil
}

// NewHistoryCmd prints or clears the saved calculations.
func NewHistoryCmd(client railtools.Client) *cobra.Command {
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			out := cmd.OutOrStdout()
			if clearAll {
				if err := client.ClearHistory(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "history cleared")
				return nil
			}

			entries, err := client.History(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "no saved calculations")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-14s %-28s %s\n", e.Timestamp, e.ThemeName, e.CalculationType, e.Result)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete every saved calculation")
	return cmd
}
