// cmd/admin.go
package cmd

import (
	"fmt"
	"strconv"

	"neuroflow/storage"
	"neuroflow/workers"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the storage schema",
	Long:  "Opening a SQL backend migrates kv_records; redis and memory have no schema.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := loadDeps(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer rt.Close()
		rt.logger.Info("✅ storage schema is up to date", zap.String("driver", rt.cfg.Storage.Driver))
		return nil
	},
}

var streakAll bool

var streakCmd = &cobra.Command{
	Use:   "streak [user-id]",
	Short: "Recompute cached streaks for one user, or everyone with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if streakAll == (len(args) == 1) {
			return fmt.Errorf("pass either a user id or --all")
		}
		rt, err := loadDeps(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if streakAll {
			w := workers.NewStreakRefreshWorker(rt.store, rt.services.Gamification, rt.cfg.Streak.RefreshInterval, rt.logger)
			sum, err := w.RefreshAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "refreshed %d sessions, %d failed\n", sum.Sessions, sum.Failed)
			return nil
		}

		sess, err := storage.NewSession(args[0])
		if err != nil {
			return err
		}
		res, err := rt.services.Gamification.SyncStreak(cmd.Context(), sess)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: streak %d, %d new badges\n", sess, res.Streak, len(res.NewBadges))
		return nil
	},
}

var grantXPCmd = &cobra.Command{
	Use:   "grant-xp <user-id> <amount>",
	Short: "Award XP to a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[1], err)
		}
		sess, err := storage.NewSession(args[0])
		if err != nil {
			return err
		}
		rt, err := loadDeps(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.services.Gamification.AwardXP(cmd.Context(), sess, amount)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d xp, level %d", sess, res.State.XP, res.State.Level)
		if res.LeveledUp {
			fmt.Fprint(cmd.OutOrStdout(), " (level up)")
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	streakCmd.Flags().BoolVar(&streakAll, "all", false, "refresh every stored user")
}
