package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/j2systems/landing/internal/content"
)

func validateContentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-content <file>...",
		Short: "Check site content YAML files before deploying them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			failed := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
					failed++
					continue
				}

				site, err := content.Parse(data)
				if err != nil {
					fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintf(out, "ok   %s (%d services, %d case studies)\n",
					path, len(site.Services), len(site.CaseStudies))
			}

			if failed > 0 {
				return errors.New("invalid content files")
			}
			return nil
		},
	}
}
