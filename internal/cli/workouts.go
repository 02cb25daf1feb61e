package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"trainer/internal/analysis"
	"trainer/internal/config"
	"trainer/internal/service"
)

func addCmd(e *env) *cobra.Command {
	var (
		in     service.WorkoutInput
		maxHR  float64
		effort int
	)
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Log a workout",
		Example: `trainer add --date 2024-03-04 --type easy --distance 10 --duration 55:00 --hr 148`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workouts, _, err := e.services()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-hr") {
				in.MaxHeartRate = &maxHR
			}
			if cmd.Flags().Changed("effort") {
				in.PerceivedEffort = &effort
			}

			w, err := workouts.Add(in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", w.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Date, "date", "", "workout date, YYYY-MM-DD")
	f.StringVar(&in.Sport, "sport", "Run", "Run or Bike")
	f.StringVar(&in.Type, "type", "", "workout type, e.g. easy, tempo, long")
	f.Float64Var(&in.DistanceKm, "distance", 0, "distance in km")
	f.StringVar(&in.Duration, "duration", "", "duration as h:mm:ss, mm:ss or minutes")
	f.Float64Var(&in.AvgHeartRate, "hr", 0, "average heart rate")
	f.Float64Var(&maxHR, "max-hr", 0, "maximum heart rate")
	f.IntVar(&effort, "effort", 0, "perceived effort, 1-10")
	f.StringVar(&in.Notes, "notes", "", "free-form notes")
	return cmd
}

func listCmd(e *env) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged workouts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workouts, _, err := e.services()
			if err != nil {
				return err
			}
			recent, err := workouts.Recent(limit)
			if err != nil {
				return err
			}
			if len(recent) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No workouts logged.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tSPORT\tTYPE\tKM\tTIME\tPACE\tHR")
			for _, w := range recent {
				pace, _ := w.Pace()
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f\t%s\t%s\t%.0f\n",
					w.ID, w.Date.Format(config.DateLayout), w.Sport, w.Type, w.DistanceKm,
					analysis.FormatDuration(w.DurationMin), analysis.FormatPace(pace), w.AvgHeartRate)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of workouts to show")
	return cmd
}

func deleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workouts, _, err := e.services()
			if err != nil {
				return err
			}
			if err := workouts.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
