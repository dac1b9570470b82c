package jobs

import (
	"context"
	"log/slog"

	"procurement/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// staleOrderReportSchedule runs the report every 15 minutes.
const staleOrderReportSchedule = "0 */15 * * * *"

// StaleOrderReportJob periodically surfaces orders that have been idle long
// enough to count as urgent, so the team sees stalls without opening the
// board.
type StaleOrderReportJob struct {
	handler queries.ListOrdersQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleOrderReportJob creates a job that reports stale orders on a fixed
// schedule.
func NewStaleOrderReportJob(handler queries.ListOrdersQueryHandler, logger *slog.Logger) *StaleOrderReportJob {
	return &StaleOrderReportJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stale_order_report_job"),
	}
}

// Start schedules the report.
func (j *StaleOrderReportJob) Start() error {
	_, err := j.cron.AddFunc(staleOrderReportSchedule, func() {
		ctx := context.Background()
		j.report(ctx)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order report job started (running every 15 minutes)")
	return nil
}

// Stop stops the report job.
func (j *StaleOrderReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order report job stopped")
}

func (j *StaleOrderReportJob) report(ctx context.Context) {
	query, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{})
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order report job failed", "error", err)
		return
	}

	rows, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order report job failed", "error", err)
		return
	}

	stale := 0
	for _, row := range rows {
		if !row.Urgent {
			continue
		}
		stale++
		j.logger.WarnContext(ctx, "Order is stale",
			"order_id", row.ID.String(),
			"external_ref", row.ExternalRef,
			"status", row.Status,
			"assigned_to", assigneeLabel(row),
			"idle_since", row.UpdatedAt,
		)
	}

	if stale == 0 {
		j.logger.InfoContext(ctx, "No stale orders")
		return
	}
	j.logger.InfoContext(ctx, "Stale order report finished", "stale_orders", stale)
}

func assigneeLabel(row queries.ListOrdersQueryResponse) string {
	if row.AssignedTo == nil {
		return "unassigned"
	}
	return row.AssignedTo.String()
}
