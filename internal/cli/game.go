package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameNewCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameCellCmd("reveal", "Reveal a cell"))
	cmd.AddCommand(newGameCellCmd("flag", "Flag or unflag a cell"))
	cmd.AddCommand(newGameAbandonCmd())
	cmd.AddCommand(newGameHintCmd())
	cmd.AddCommand(newGameAutoplayCmd())
	cmd.AddCommand(newGameWatchCmd())

	return cmd
}

func newGameNewCmd() *cobra.Command {
	var rows, cols, mines, preset string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game, replacing any game in progress",
		Long: `Start a new game. Sizes are clamped to 1-40 and mines to the number of
cells; anything missing or unreadable falls back to a 10x10 board with 10
mines. A preset (beginner, intermediate, expert) overrides the sizes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if preset != "" {
				req["preset"] = preset
			}
			if rows != "" {
				req["rows"] = rows
			}
			if cols != "" {
				req["cols"] = cols
			}
			if mines != "" {
				req["mines"] = mines
			}

			var result Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&rows, "rows", "", "Number of rows")
	cmd.Flags().StringVar(&cols, "cols", "", "Number of columns")
	cmd.Flags().StringVar(&mines, "mines", "", "Number of mines")
	cmd.Flags().StringVar(&preset, "preset", "", "Difficulty preset")

	return cmd
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get("/api/v1/games/current", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// newGameCellCmd builds the reveal and flag commands, which differ only in
// the endpoint they call
func newGameCellCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <row> <col>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid row: %w", err)
			}

			col, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid col: %w", err)
			}

			req := map[string]int{"row": row, "col": col}
			var result ActionResult

			if err := client.Post("/api/v1/games/current/"+action, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon",
		Short: "Abandon the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/games/current"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game abandoned")
			return nil
		},
	}
}

func newGameHintCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "hint",
		Short: "Ask the bot for a move without playing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/games/current/hint"
			if strategy != "" {
				path += "?strategy=" + url.QueryEscape(strategy)
			}

			var result HintResult

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "Bot strategy: deduce, random (default: deduce)")

	return cmd
}

func newGameAutoplayCmd() *cobra.Command {
	var (
		strategy string
		maxMoves int
	)

	cmd := &cobra.Command{
		Use:   "autoplay",
		Short: "Let the bot play the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxMoves < 0 {
				return fmt.Errorf("--max-moves must not be negative")
			}

			req := map[string]any{}
			if strategy != "" {
				req["strategy"] = strategy
			}
			if maxMoves > 0 {
				req["max_moves"] = maxMoves
			}

			var result AutoplayResult

			if err := client.Post("/api/v1/games/current/autoplay", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "Bot strategy: deduce, random (default: deduce)")
	cmd.Flags().IntVar(&maxMoves, "max-moves", 0, "Stop after this many moves (default: until the game ends)")

	return cmd
}
