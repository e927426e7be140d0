package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/themizzi/uxverify/internal/services"
)

// PrintHistory writes the most recent runs as a table
func PrintHistory(ctx context.Context, reports services.ReportService, limit int, w io.Writer) error {
	runs, err := reports.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No recorded runs.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tDRIVER\tTARGET\tRESULT\tSUMMARY")
	for _, run := range runs {
		result := "passed"
		switch {
		case run.Aborted():
			result = "aborted"
		case !run.Passed():
			result = "failed"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.StartedAt.Format(time.RFC3339),
			run.Driver,
			run.Target,
			result,
			run.Summary())
	}
	return tw.Flush()
}
