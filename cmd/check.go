package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldserve/crewsched/core/conflict"
	"github.com/fieldserve/crewsched/core/model"
	"github.com/fieldserve/crewsched/core/schedule"
)

var (
	checkTech string
	checkTZ   string
)

var checkCmd = &cobra.Command{
	Use:   "check <fixture.json>",
	Short: "Run a one-off conflict check from a JSON fixture",
	Long: `Reads a fixture file containing a candidate job and the jobs already on
the technician's calendar, runs the conflict check and prints the result.

Fixture format: {"job": {...}, "jobs": [{...}, ...], "technician": {...}}`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkTech, "technician", "t", "", "technician id to check (required)")
	checkCmd.Flags().StringVar(&checkTZ, "timezone", "", "IANA zone for the conflict explanation")
	_ = checkCmd.MarkFlagRequired("technician")
	rootCmd.AddCommand(checkCmd)
}

type checkFixture struct {
	Job        model.Job         `json:"job"`
	Jobs       []model.Job       `json:"jobs"`
	Technician *model.Technician `json:"technician,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	var fx checkFixture
	if err := json.Unmarshal(b, &fx); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	res := conflict.CheckCrewConflict(checkTech, &fx.Job, fx.Jobs, checkTZ)
	out := map[string]any{"conflict": res}
	if fx.Technician != nil {
		if ws := schedule.ExtractWindows(fx.Job); len(ws) > 0 {
			out["availability"] = conflict.CheckDayOff(fx.Technician, ws[0].Start)
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
