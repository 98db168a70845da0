package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sungur/cells/internal/log"
)

// rootPrefixLabel stands in for the empty prefix of the cell at the repository root.
const rootPrefixLabel = "<root>"

func (a *app) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cells and their roots relative to the repository root",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.loadResolver(cmd)
			if err != nil {
				return err
			}
			all := r.Cells()

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				m := make(map[string]string, len(all))
				for _, c := range all {
					m[c.Name.String()] = c.Prefix.String()
				}
				data, err := json.MarshalIndent(m, "", "  ")
				if err != nil {
					return err
				}
				log.Raw(string(data))
				return nil
			}

			maxName := 0
			for _, c := range all {
				if len(c.Name) > maxName {
					maxName = len(c.Name)
				}
			}

			for _, c := range all {
				name := log.Style.Cyan(fmt.Sprintf("%-*s", maxName, c.Name))
				prefix := c.Prefix.String()
				if prefix == "" {
					prefix = log.Style.Dim(rootPrefixLabel)
				}
				log.Raw(name + "  " + prefix)
			}
			log.Dim(fmt.Sprintf("%d cell(s) rooted at %s", len(all), r.Root()))
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print a JSON object of cell name to prefix")
	return cmd
}
