package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Print the district and province tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Districts (%d): %s\n", len(domain.Districts), strings.Join(domain.Districts, ", "))
		fmt.Fprintf(out, "Provinces (%d): %s\n", len(domain.Provinces), strings.Join(domain.Provinces, ", "))
		return nil
	},
}
