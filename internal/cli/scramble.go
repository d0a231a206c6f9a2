package cli

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/thecube/internal/cube"
	"github.com/SeamusWaldron/thecube/internal/notation"
	"github.com/SeamusWaldron/thecube/internal/scrambler"
	"github.com/SeamusWaldron/thecube/pkg/types"
)

var (
	scrambleCount    int
	scrambleLength   int
	scrambleSeed     uint64
	scrambleNet      bool
	scrambleDescribe bool
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble [sequence]",
	Short: "Generate or check scramble sequences",
	Long: `Print random scrambles. No face repeats either of the two moves before it.

With a sequence argument, validate it under the configured notation policy and
print the resulting cube net instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScramble,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().IntVarP(&scrambleCount, "count", "n", 1, "Number of scrambles to print")
	scrambleCmd.Flags().IntVar(&scrambleLength, "length", 0, "Moves per scramble (default: preference)")
	scrambleCmd.Flags().Uint64Var(&scrambleSeed, "seed", 0, "Random seed for reproducible scrambles")
	scrambleCmd.Flags().BoolVar(&scrambleNet, "net", false, "Print the scrambled cube net")
	scrambleCmd.Flags().BoolVar(&scrambleDescribe, "describe", false, "Describe each move in plain language")
}

// printDescriptions lists each move with its plain-language phrase.
func printDescriptions(w io.Writer, moves []types.Move) {
	for i, d := range notation.DescribeSequence(moves) {
		fmt.Fprintf(w, "%3d. %-3s %s\n", i+1, moves[i].Notation(), helpStyle.Render(d))
	}
}

func runScramble(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	theme := cube.Themes[prefs.Theme]

	if len(args) == 1 {
		moves, err := notation.ParseSequence(args[0], prefs.Notation)
		if err != nil {
			return err
		}
		f := cube.SolvedFacelets()
		f.ApplyAll(moves)
		fmt.Fprintln(out, moveStyle.Render(notation.FormatSequence(moves)))
		if scrambleDescribe {
			printDescriptions(out, moves)
		}
		fmt.Fprintln(out, renderNet(f, theme))
		if f.IsSolved() {
			fmt.Fprintln(out, phaseStyle.Render("solved"))
		}
		return nil
	}

	length := prefs.ScrambleLength
	if scrambleLength > 0 {
		length = scrambleLength
	}
	opts := []scrambler.Option{scrambler.WithLength(length)}
	if cmd.Flags().Changed("seed") {
		opts = append(opts, scrambler.WithRand(rand.New(rand.NewPCG(scrambleSeed, scrambleSeed))))
	}
	s := scrambler.New(opts...)

	for i := 0; i < scrambleCount; i++ {
		s.Generate(length)
		fmt.Fprintln(out, s.Print())
		if !scrambleNet && !scrambleDescribe {
			continue
		}
		moves, err := notation.ParseSequence(s.Print(), notation.Strict)
		if err != nil {
			return err
		}
		if scrambleDescribe {
			printDescriptions(out, moves)
		}
		if scrambleNet {
			f := cube.SolvedFacelets()
			f.ApplyAll(moves)
			fmt.Fprintln(out, renderNet(f, theme))
		}
	}
	logger.Debug().Int("count", scrambleCount).Int("length", length).Msg("scrambles generated")
	return nil
}
