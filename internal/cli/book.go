package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spec-kit/spoc-booking/internal/bookingflow"
	"github.com/spec-kit/spoc-booking/internal/config"
	"github.com/spec-kit/spoc-booking/internal/domain"
	"github.com/spec-kit/spoc-booking/internal/observability"
)

var bookOpts struct {
	company  string
	contact  string
	email    string
	phone    string
	industry string
	budget   string
	timeline string
	solution string
	spocID   int
	slotID   int
	meeting  string
}

// bookCmd runs the booking workflow end to end: submit requirements, review
// matching SPOCs, then confirm a slot when one was chosen via flags.
var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Submit client requirements and book a SPOC meeting",
	Long: `Submit client requirements, list the matching SPOCs with their open
slots, and confirm a booking when --spoc and --slot are given.

Examples:
  # Review matching SPOCs and their slots
  spocctl book --company "Acme" --email "a@b.com" --solution "Automation" \
    --budget "$50K - $250K" --timeline "This Month"

  # Confirm a specific slot
  spocctl book --company "Acme" --email "a@b.com" --solution "Automation" \
    --budget "$50K - $250K" --timeline "This Month" \
    --spoc 1 --slot 42 --meeting "Technical Demo"`,
	RunE: runBook,
}

func init() {
	bookCmd.Flags().StringVar(&bookOpts.company, "company", "", "company name (required)")
	bookCmd.Flags().StringVar(&bookOpts.contact, "contact-name", "", "contact name")
	bookCmd.Flags().StringVar(&bookOpts.email, "email", "", "contact email (required)")
	bookCmd.Flags().StringVar(&bookOpts.phone, "phone", "", "contact phone")
	bookCmd.Flags().StringVar(&bookOpts.industry, "industry", "", "industry")
	bookCmd.Flags().StringVar(&bookOpts.budget, "budget", "", "budget range (required)")
	bookCmd.Flags().StringVar(&bookOpts.timeline, "timeline", "", "decision timeline (required)")
	bookCmd.Flags().StringVar(&bookOpts.solution, "solution", "", "solution type (required)")
	bookCmd.Flags().IntVar(&bookOpts.spocID, "spoc", 0, "SPOC id to book")
	bookCmd.Flags().IntVar(&bookOpts.slotID, "slot", 0, "slot id to book")
	bookCmd.Flags().StringVar(&bookOpts.meeting, "meeting", "Quick Intro Call", "meeting type")
	rootCmd.AddCommand(bookCmd)
}

func runBook(cmd *cobra.Command, args []string) error {
	remote, err := remoteConfig()
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(config.LoggerConfig{Level: "warn"})
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	orchestrator := bookingflow.NewOrchestrator(bookingflow.NewRestDirectory(remote), logger)
	ctx := context.Background()

	spocs, err := orchestrator.SubmitClient(ctx, domain.ClientSubmission{
		CompanyName:      bookOpts.company,
		ContactName:      bookOpts.contact,
		ContactEmail:     bookOpts.email,
		ContactPhone:     bookOpts.phone,
		Industry:         bookOpts.industry,
		BudgetRange:      bookOpts.budget,
		DecisionTimeline: bookOpts.timeline,
		SolutionType:     bookOpts.solution,
	})
	if err != nil {
		return err
	}

	heading := color.New(color.FgCyan, color.Bold)
	heading.Println("Matching SPOCs:")
	for _, entry := range spocs {
		fmt.Printf("  %s (#%d) - %s\n", entry.Spoc.Name, entry.Spoc.ID, entry.Spoc.Expertise)
		if len(entry.Slots) == 0 {
			fmt.Println("    no open slots")
			continue
		}
		for _, slot := range entry.Slots {
			fmt.Printf("    slot %d  %s\n", slot.ID, slot.StartTime.Format("Mon Jan 2 15:04"))
		}
	}

	if bookOpts.spocID == 0 || bookOpts.slotID == 0 {
		fmt.Println("\nre-run with --spoc and --slot to confirm a booking")
		return nil
	}

	if err := orchestrator.SelectSlot(bookOpts.spocID, bookOpts.slotID); err != nil {
		return err
	}
	result, err := orchestrator.ConfirmBooking(ctx, bookOpts.meeting)
	if err != nil {
		return err
	}

	color.Green("\nBooking confirmed!")
	fmt.Printf("  booking id:   %s\n", result.BookingID)
	fmt.Printf("  with:         %s\n", result.SpocName)
	fmt.Printf("  starts:       %s\n", result.StartTime.Format("Mon Jan 2 15:04"))
	fmt.Printf("  meeting link: %s\n", result.MeetingLink)
	return nil
}
