package apiclient

import (
	"context"
	"time"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/services"
)

// SubmitOrder validates and sends a composed order draft. The draft's
// in-flight latch is held for the duration of the call, so a second submit
// while one is pending fails fast with ErrSubmitInFlight and no request is
// sent. On failure the draft is left intact for correction; nothing retries.
func (c *Client) SubmitOrder(ctx context.Context, d *services.OrderDraft) (models.Order, error) {
	if err := d.BeginSubmit(); err != nil {
		return models.Order{}, err
	}
	defer d.EndSubmit()

	req, err := d.BuildCreateOrderRequest(time.Now())
	if err != nil {
		return models.Order{}, err
	}
	return c.CreateOrder(ctx, req)
}

// SubmitTrip sends the wizard's composed trip in one call, holding the
// wizard's latch the same way SubmitOrder does for drafts.
func (c *Client) SubmitTrip(ctx context.Context, w *services.TripWizard, tripDate time.Time, origin, destination string) (models.Trip, error) {
	if err := w.BeginSubmit(); err != nil {
		return models.Trip{}, err
	}
	defer w.EndSubmit()

	req, err := w.BuildCreateTripRequest(tripDate, origin, destination)
	if err != nil {
		return models.Trip{}, err
	}
	return c.CreateTrip(ctx, req)
}
