package fittrack

import (
	"fmt"

	"github.com/RohitValiveti/Fitness-Tracker/internal/api"
	"github.com/spf13/cobra"
)

var (
	setExerciseID int64
	setWeight     float64
	setReps       int
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Record sets",
}

var setAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a set against an exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *api.Client) error {
			set, err := client.CreateSet(cmd.Context(), setExerciseID, setWeight, setReps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded set %d: %.1f x %d\n", set.ID, set.Weight, set.Reps)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.AddCommand(setAddCmd)
	setAddCmd.Flags().Int64Var(&setExerciseID, "exercise", 0, "Exercise to assign the set to (0 = unassigned)")
	setAddCmd.Flags().Float64Var(&setWeight, "weight", 0, "Weight lifted")
	setAddCmd.Flags().IntVar(&setReps, "reps", 0, "Repetitions performed")
	_ = setAddCmd.MarkFlagRequired("weight")
	_ = setAddCmd.MarkFlagRequired("reps")
}
