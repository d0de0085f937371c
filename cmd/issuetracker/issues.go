package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
)

var (
	issuesMine string

	issuesCmd = &cobra.Command{
		Use:   "issues",
		Short: "List stored issues",
		Args:  cobra.NoArgs,
		RunE:  runIssues,
	}
)

func init() {
	issuesCmd.Flags().StringVar(&issuesMine, "mine", "", "only issues reported by this username")
}

func runIssues(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	registry := a.registry()
	if err := registry.Refresh(ctx); err != nil {
		return err
	}

	issues := registry.Issues()
	if issuesMine != "" {
		issues = registry.IssuesBy(issuesMine)
	}
	return printIssues(cmd.OutOrStdout(), issues)
}

func printIssues(out io.Writer, issues []domain.Issue) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTITLE\tDISTRICT\tPROVINCE\tREPORTER")
	for _, i := range issues {
		date := "-"
		if i.HasDate() {
			date = i.Date.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", date, i.Title, i.District, i.Province, i.CreatedBy)
	}
	return w.Flush()
}
