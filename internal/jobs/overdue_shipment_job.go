package jobs

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// overdueSweepSchedule runs the sweep every fifteen minutes.
const overdueSweepSchedule = "0 */15 * * * *"

// OverdueShipmentJob periodically sweeps for shipments past their estimated
// delivery time that are still in a non-terminal status, and reports each
// one. The sweep only observes: it never mutates shipment state, so a late
// shipment keeps its timeline untouched until the partner records the next
// event.
type OverdueShipmentJob struct {
	handler queries.GetOverdueShipmentsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueShipmentJob creates the overdue sweep job.
func NewOverdueShipmentJob(handler queries.GetOverdueShipmentsQueryHandler, logger *slog.Logger) *OverdueShipmentJob {
	return &OverdueShipmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "overdue_shipment_job"),
	}
}

// Start schedules the sweep.
func (j *OverdueShipmentJob) Start() error {
	_, err := j.cron.AddFunc(overdueSweepSchedule, j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue shipment job started (running every 15 minutes)")
	return nil
}

// Stop stops the sweep.
func (j *OverdueShipmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue shipment job stopped")
}

func (j *OverdueShipmentJob) sweep() {
	ctx := context.Background()

	query, err := queries.NewGetOverdueShipmentsQuery(time.Now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue shipment sweep failed to build query", "error", err)
		return
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue shipment sweep failed", "error", err)
		return
	}

	for _, shipment := range overdue {
		attrs := []any{
			"shipment_id", shipment.ShipmentID.String(),
			"status", shipment.Status,
			"estimated_delivery", shipment.EstimatedDelivery,
		}
		if shipment.PartnerID != nil {
			attrs = append(attrs, "partner_id", shipment.PartnerID.String())
		}
		j.logger.WarnContext(ctx, "Shipment overdue", attrs...)
	}
}
