package cli

import (
	"bufio"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sungur/cells/internal/cells"
	"github.com/sungur/cells/internal/log"
	"github.com/sungur/cells/internal/paths"
)

func (a *app) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [CELL//PATH...]",
		Short: "Convert cell paths to project-relative paths",
		Long: `Convert each cell path (cell//path) to a path relative to the repository root.
Reads one cell path per line from stdin when no arguments are given.`,
		Example: "  cells resolve --cells cells.json inner2//magic/file.txt",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.loadResolver(cmd)
			if err != nil {
				return err
			}
			absolute := resolveBoolFlag(cmd.Flags(), "absolute", a.cfg.Absolute)

			return eachInput(cmd, args, func(input string) error {
				p, err := cells.ParseCellPath(input)
				if err != nil {
					return err
				}
				if absolute {
					out, err := r.ResolveAbsolute(p)
					if err != nil {
						return err
					}
					log.Raw(out)
					return nil
				}
				out, err := r.Resolve(p)
				if err != nil {
					return err
				}
				log.Raw(out.String())
				return nil
			})
		},
	}
	cmd.Flags().BoolP("absolute", "a", false, "Print physical paths under the repository root")
	return cmd
}

func (a *app) newUnresolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unresolve [PATH...]",
		Short: "Convert project-relative or physical paths to cell paths",
		Long: `Convert each path to cell//path form, choosing the most specific cell that contains it.
Absolute paths must lie under the repository root. Reads one path per line from
stdin when no arguments are given.`,
		Example: "  cells unresolve --cells cells.json inner1/inside/inner2/magic/file.txt",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.loadResolver(cmd)
			if err != nil {
				return err
			}

			return eachInput(cmd, args, func(input string) error {
				var (
					p   cells.CellPath
					err error
				)
				if paths.IsAbs(input) {
					p, err = r.UnresolveAbsolute(input)
				} else {
					p, err = r.Unresolve(cells.NewProjectRelativePath(input))
				}
				if err != nil {
					return err
				}
				log.Raw(p.String())
				return nil
			})
		},
	}
}

// eachInput calls fn for every argument, or for every non-blank stdin line when
// there are no arguments. The first error stops processing.
func eachInput(cmd *cobra.Command, args []string, fn func(string) error) error {
	if len(args) > 0 {
		for _, arg := range args {
			if err := fn(arg); err != nil {
				return err
			}
		}
		return nil
	}
	return eachLine(cmd.InOrStdin(), fn)
}

func eachLine(r io.Reader, fn func(string) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
