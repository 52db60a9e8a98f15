package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"taskreminder/internal/application/service"
	"taskreminder/internal/domain/constant"
	"taskreminder/internal/infrastructure/database/sqlite"
	"taskreminder/internal/infrastructure/scheduler"
)

// printSink writes each reminder on its own line.
type printSink struct {
	w io.Writer
}

func (s printSink) ReminderBatch(messages []string) {
	for _, m := range messages {
		fmt.Fprintln(s.w, m)
	}
}

func (s printSink) TaskStatusChanged() {}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one reminder pass over the task store and print the reminders",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}

	cmd.Flags().IntP("threshold", "t", 0, "Reminder threshold in minutes (default $REMINDER_THRESHOLD_MINUTES or 30)")
	cmd.Flags().String("overdue-policy", "", "Overdue policy: repeat or once (default $OVERDUE_POLICY or repeat)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	policy := e.cfg.OverduePolicy
	if raw, _ := cmd.Flags().GetString("overdue-policy"); raw != "" {
		if policy, err = constant.ParseOverduePolicy(raw); err != nil {
			return err
		}
	}

	sched, err := service.NewSchedulerService(scheduler.NewScheduler(e.log), sqlite.NewTaskRepository(e.db),
		printSink{w: cmd.OutOrStdout()}, service.SchedulerConfig{
			PollInterval:     e.cfg.PollInterval,
			ThresholdMinutes: e.cfg.ThresholdMinutes,
			OverduePolicy:    policy,
		}, e.log)
	if err != nil {
		return err
	}

	// The flag wins over a threshold saved through the HTTP API.
	ctx := cmd.Context()
	if cmd.Flags().Changed("threshold") {
		threshold, _ := cmd.Flags().GetInt("threshold")
		if err := sched.SetThreshold(threshold); err != nil {
			return err
		}
	} else if err := service.NewSettingsService(sched, sqlite.NewSettingRepository(e.db), e.log).RestoreThreshold(ctx); err != nil {
		return err
	}

	result, err := sched.RunPass(ctx)
	if err != nil {
		return err
	}
	if len(result.Messages) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No reminders at %s (%d tasks, threshold %d minutes).\n",
			result.At.Format(time.RFC3339), result.Evaluated, result.Threshold)
	}
	return nil
}
