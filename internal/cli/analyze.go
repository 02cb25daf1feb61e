package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"trainer/internal/analysis"
	"trainer/internal/coach"
	"trainer/internal/config"
	"trainer/internal/export"
	"trainer/internal/service"
)

// parseDate parses an optional date flag; empty means unset
func parseDate(flag, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(config.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD, got %q", flag, s)
	}
	return t, nil
}

func analyzeCmd(e *env) *cobra.Command {
	var (
		asJSON bool
		asOf   string
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print trends, training load, race predictions and advice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate("--as-of", asOf)
			if err != nil {
				return err
			}
			_, analyses, err := e.services()
			if err != nil {
				return err
			}
			d, err := analyses.Dashboard(date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}
			writeDashboard(out, d)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	cmd.Flags().StringVar(&asOf, "as-of", "", "analyze as of this date (YYYY-MM-DD), default today")
	return cmd
}

func writeDashboard(w io.Writer, d *service.Dashboard) {
	fmt.Fprintf(w, "Analysis as of %s (%d workouts)\n", d.AsOf.Format(config.DateLayout), d.WorkoutCount)
	if d.RaceDate != nil {
		fmt.Fprintf(w, "Race day %s, %d days away\n", d.RaceDate.Format(config.DateLayout), d.DaysToRace)
	}

	r := d.Report
	if r == nil {
		fmt.Fprintln(w, "\nNo workouts logged yet.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Pace:        %s\n", coach.DescribePaceTrend(r.PaceTrend))
	fmt.Fprintf(w, "Heart rate:  %s\n", coach.DescribeHeartRateTrend(r.HeartRateTrend))
	if tl := r.TrainingLoad; tl != nil {
		fmt.Fprintf(w, "Fitness:     CTL %.1f  ATL %.1f  TSB %+.1f (%s)\n",
			tl.CurrentFitness, tl.CurrentFatigue, tl.CurrentTSB, analysis.FormDescription(tl.Status))
	}
	if ei := r.EfficiencyIndex; ei != nil {
		fmt.Fprintf(w, "Efficiency:  %+.1f%% (%s)\n", ei.PctChange, ei.Change)
	}

	if rp := r.RacePrediction; rp != nil {
		fmt.Fprintf(w, "\nVDOT %.1f (%s)\n", rp.VDOT, rp.Label)
		for _, t := range rp.Times {
			fmt.Fprintf(w, "  %-14s %s\n", t.Name, analysis.FormatDuration(t.DurationMin))
		}
		fmt.Fprintf(w, "  Target %s at %s\n", analysis.FormatDuration(rp.Target.DurationMin), analysis.FormatPace(rp.TargetPace))
	}

	if len(d.Advice) > 0 || len(d.Warnings) > 0 {
		fmt.Fprintln(w, "\nAdvice")
		for _, list := range [][]coach.Advice{d.Advice, d.Warnings} {
			for _, a := range list {
				fmt.Fprintf(w, "  [%s] %s: %s\n", a.Level, a.Title, a.Message)
			}
		}
	}
}

func exportCmd(e *env) *cobra.Command {
	var (
		format string
		output string
		from   string
		to     string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export workouts to a spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workouts, analyses, err := e.services()
			if err != nil {
				return err
			}
			fromDate, err := parseDate("--from", from)
			if err != nil {
				return err
			}
			toDate, err := parseDate("--to", to)
			if err != nil {
				return err
			}
			records, err := workouts.Between(fromDate, toDate)
			if err != nil {
				return err
			}
			if output == "" {
				output = export.FileName(format, time.Now())
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := export.Write(f, format, records, analyses.Params()); err != nil {
				f.Close()
				os.Remove(output)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d workouts to %s\n", len(records), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatXLSX, "xlsx or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, default workouts_<date>.<format>")
	cmd.Flags().StringVar(&from, "from", "", "first date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last date to include (YYYY-MM-DD)")
	return cmd
}
