package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hjpark/healthtrackcli/internal/tracker"
)

var checkinYes bool

var checkpoints = map[string]tracker.Checkpoint{
	"wake":        tracker.CheckpointWakeUp,
	"sleep":       tracker.CheckpointSleep,
	"morning-med": tracker.CheckpointMorningMedicine,
	"evening-med": tracker.CheckpointEveningMedicine,
}

var checkinCmd = &cobra.Command{
	Use:   "checkin <wake|sleep|morning-med|evening-med>",
	Short: "Stamp the current time into a daily health checkpoint",
	Long: `Stamps the current HH:MM into one of the four daily checkpoints.
Wake and sleep times overwrite freely. Re-recording a medicine time
asks for confirmation first, since the original dose time is lost.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"wake", "sleep", "morning-med", "evening-med"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := checkpoints[args[0]]
		if !ok {
			return fmt.Errorf("unknown checkpoint %q (valid: wake, sleep, morning-med, evening-med)", args[0])
		}

		t, done, err := openTracker()
		if err != nil {
			return err
		}
		defer done()

		status, err := t.RecordCheckpoint(kind, checkinYes)
		if err != nil {
			return err
		}
		if status == tracker.StatusNeedsConfirmation {
			existing := checkpointTime(t, kind)
			if !confirmPrompt(fmt.Sprintf("%s already recorded at %s. Overwrite?", kind.Label(), existing)) {
				fmt.Printf("%s\n", mutedStyle.Render("Kept "+existing+"."))
				return nil
			}
			if _, err := t.RecordCheckpoint(kind, true); err != nil {
				return err
			}
		}
		fmt.Printf("%s %s recorded at %s\n",
			goodStyle.Render("✓"), kind.Label(), accentStyle.Render(checkpointTime(t, kind)))
		return nil
	},
}

func checkpointTime(t *tracker.Tracker, kind tracker.Checkpoint) string {
	h := t.Health()
	switch kind {
	case tracker.CheckpointWakeUp:
		return h.WakeUpTime
	case tracker.CheckpointSleep:
		return h.SleepTime
	case tracker.CheckpointMorningMedicine:
		return h.MorningMedicineTime
	default:
		return h.EveningMedicineTime
	}
}

func init() {
	checkinCmd.Flags().BoolVarP(&checkinYes, "yes", "y", false,
		"overwrite an existing medicine time without asking")
	rootCmd.AddCommand(checkinCmd)
}
