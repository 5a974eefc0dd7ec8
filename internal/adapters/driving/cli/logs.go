package cli

import (
	"time"

	"github.com/spf13/cobra"
)

var logsLimit int

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the audit trail",
	RunE:  runLogs,
}

var logsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the audit trail",
	RunE:  runLogsStats,
}

func init() {
	logsCmd.Flags().IntVar(&logsLimit, "limit", 20, "number of events to show")
	logsCmd.AddCommand(logsStatsCmd)
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, _ []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	if auditLog == nil {
		return errNotConfigured
	}

	events, err := auditLog.Recent(cmd.Context(), logsLimit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		cmd.Println("No events recorded.")
		return nil
	}
	for _, e := range events {
		cmd.Printf("%s  %-6s  %-22s  %s\n",
			e.CreatedAt.Format(time.RFC3339), e.Severity, e.EventType, e.Description)
	}
	return nil
}

func runLogsStats(cmd *cobra.Command, _ []string) error {
	if err := ensureApp(); err != nil {
		return err
	}
	if auditLog == nil {
		return errNotConfigured
	}

	stats, err := auditLog.Stats(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("Total events:  %d\n", stats.TotalEvents)
	cmd.Printf("High severity: %d\n", stats.HighSeverity)
	cmd.Printf("Last 24h:      %d\n", stats.Last24h)
	return nil
}
