package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeanim"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [tokens...]",
	Short: "Simplify a token sequence",
	Long: `Cancel complementary neighbours and fold triples into a single reverse
turn. Tokens are read from the arguments, or from stdin when none are given.

Examples:
  cubeanim simplify fFrrrb
  echo "uuuDd" | cubeanim simplify`,
	RunE: runSimplify,
}

var parseCmd = &cobra.Command{
	Use:   "parse [tokens...]",
	Short: "Show the face rotations of a token sequence",
	Long: `Translate tokens into the rotations the animation performs: the world
group turned and its signed angle about the positive axis.

Examples:
  cubeanim parse rrFb`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(simplifyCmd)
	rootCmd.AddCommand(parseCmd)
}

// readTokens parses args, or stdin when args is empty.
func readTokens(args []string, stdin io.Reader) ([]cubeanim.Token, error) {
	var src string
	if len(args) > 0 {
		src = strings.Join(args, "")
	} else {
		var b strings.Builder
		sc := bufio.NewScanner(stdin)
		for sc.Scan() {
			b.WriteString(sc.Text())
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		src = b.String()
	}
	return cubeanim.ParseTokens(src)
}

func runSimplify(cmd *cobra.Command, args []string) error {
	tokens, err := readTokens(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	out := cubeanim.Simplify(tokens)
	fmt.Fprintln(cmd.OutOrStdout(), cubeanim.FormatTokens(out))
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d -> %d tokens\n", len(tokens), len(out))
	}
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	tokens, err := readTokens(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for i, m := range cubeanim.Parse(tokens) {
		fmt.Fprintf(w, "%3d  %-6s %+5.0f°\n", i+1, m.Group, m.Angle)
	}
	return nil
}
