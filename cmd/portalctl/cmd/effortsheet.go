package cmd

import (
	"fmt"

	"github.com/opsdesk/portal/internal/api/dto"
	"github.com/opsdesk/portal/internal/cache"
	"github.com/opsdesk/portal/internal/httpclient"
	"github.com/opsdesk/portal/internal/postgres"
	"github.com/opsdesk/portal/internal/repository"
	"github.com/opsdesk/portal/internal/sentry"
	"github.com/opsdesk/portal/internal/service"
	"github.com/opsdesk/portal/internal/sheets"
	"github.com/opsdesk/portal/internal/types"
	"github.com/spf13/cobra"
)

var effortSheetCmd = &cobra.Command{
	Use:   "effortsheet",
	Short: "Effort sheet jobs",
}

var syncProjectID string

var effortSheetSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import today's effort from the effort sheets",
	Long: `Reads the effort sheet of every active project that has one, or of
the project given with --project, and records today's effort of each team
member. A failing project is reported and does not stop the others.`,
	RunE: runEffortSheetSync,
}

func init() {
	effortSheetSyncCmd.Flags().StringVar(&syncProjectID, "project", "", "sync a single project")
	effortSheetCmd.AddCommand(effortSheetSyncCmd)
}

func runEffortSheetSync(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	sentrySvc := sentry.NewSentryService(cfg, log)
	reader, err := sheets.NewReader(cfg, httpclient.NewDefaultClient(httpclient.DefaultClientConfig(), log), sentrySvc, log)
	if err != nil {
		return err
	}
	loc, err := cfg.Billing.Location()
	if err != nil {
		return err
	}

	params := service.NewServiceParams(
		log,
		cfg,
		db,
		cache.Initialize(cfg, log),
		types.NewSystemClock(loc),
		sentrySvc,
		repository.NewClientRepository(db, log),
		repository.NewProjectRepository(db, log),
		repository.NewTeamMemberRepository(db, log),
		repository.NewEffortRepository(db, log),
		repository.NewUserRepository(db, log),
		repository.NewInvoiceRepository(db, log),
		repository.NewSalaryRepository(db, log),
		repository.NewRecruitmentRepository(db, log),
		reader,
	)

	resp, err := service.NewEffortSheetSyncService(params).Sync(cmd.Context(), dto.EffortSheetSyncRequest{
		ProjectID: syncProjectID,
	})
	if err != nil {
		return err
	}
	if err := printJSON(cmd, resp); err != nil {
		return err
	}
	if resp.Failed > 0 {
		return fmt.Errorf("%d of %d projects failed", resp.Failed, len(resp.Projects))
	}
	return nil
}
