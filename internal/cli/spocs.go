package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spec-kit/spoc-booking/internal/bookingflow"
)

var spocsSolutionType string

// spocsCmd lists SPOCs with their availability for the next two weeks.
var spocsCmd = &cobra.Command{
	Use:   "spocs",
	Short: "List SPOCs and their open slots",
	Long: `List the SPOCs matching a solution type, each with its open slots for
the next 14 days. SPOCs whose availability could not be fetched are shown
without slots.

Examples:
  spocctl spocs
  spocctl spocs --solution "Cloud Infrastructure"`,
	RunE: runSpocs,
}

func init() {
	spocsCmd.Flags().StringVar(&spocsSolutionType, "solution", "", "filter by solution type")
	rootCmd.AddCommand(spocsCmd)
}

func runSpocs(cmd *cobra.Command, args []string) error {
	remote, err := remoteConfig()
	if err != nil {
		return err
	}
	dir := bookingflow.NewRestDirectory(remote)

	ctx, cancel := context.WithTimeout(context.Background(), remote.Timeout())
	defer cancel()

	spocs, err := dir.ListSpocs(ctx, spocsSolutionType)
	if err != nil {
		return err
	}
	if len(spocs) == 0 {
		fmt.Println("no SPOCs match the given filter")
		return nil
	}

	from := time.Now()
	to := from.Add(bookingflow.AvailabilityWindow)
	heading := color.New(color.FgCyan, color.Bold)
	for _, spoc := range spocs {
		heading.Printf("%s (#%d) - %s\n", spoc.Name, spoc.ID, spoc.Expertise)
		slots, err := dir.GetAvailability(ctx, spoc.ID, from, to)
		if err != nil {
			color.Yellow("  availability unavailable right now")
			continue
		}
		if len(slots) == 0 {
			fmt.Println("  no open slots in the next 14 days")
			continue
		}
		for _, slot := range slots {
			fmt.Printf("  slot %d  %s\n", slot.ID, slot.StartTime.Format("Mon Jan 2 15:04"))
		}
	}
	return nil
}
