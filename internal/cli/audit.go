package cli

import (
	"github.com/spf13/cobra"

	"github.com/sungur/cells/internal/audit"
	"github.com/sungur/cells/internal/log"
)

func (a *app) newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Run buck2 audit with the arguments cell resolution needs",
	}
	cmd.AddCommand(a.newAuditModeCmd(audit.ModeCell, "Run `buck2 audit cell` with the right arguments"))
	cmd.AddCommand(a.newAuditModeCmd(audit.ModeConfig, "Run `buck2 audit config` with the right arguments"))
	return cmd
}

func (a *app) newAuditModeCmd(mode audit.Mode, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(mode),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			buck := a.buckCommand(cmd.Flags())

			return audit.Run(cmd.Context(), audit.Options{
				Buck:   buck,
				Mode:   mode,
				DryRun: dryRun,
				Stdout: log.Writer(),
				Stderr: log.ErrWriter(),
			})
		},
	}
	cmd.Flags().Bool("dry-run", false, "Print the command instead of running it")
	return cmd
}
