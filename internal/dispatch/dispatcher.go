// Package dispatch is the single gatekeeper for order mutations. It
// decides whether an update is notification-worthy, persists it, and fans
// a single notification out to the customer's enabled channels.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SerkanKacar01/kaniou-orders/internal/models"
	"github.com/SerkanKacar01/kaniou-orders/internal/notify"
	"github.com/SerkanKacar01/kaniou-orders/internal/repository"
)

// Reason codes for a dispatch decision.
const (
	ReasonCreated             = "created"
	ReasonStatusChanged       = "status-changed"
	ReasonCustomerNoteChanged = "customer-note-changed"
	ReasonInternalNoteChanged = "internal-note-changed"
	ReasonNone                = "none"
)

const defaultSendTimeout = 5 * time.Second

// Event is the dispatch decision plus its payload. It is ephemeral: the
// sink calls it produces are the only trace it leaves.
type Event struct {
	OrderID  string
	Reason   string
	Body     string
	Channels []string
}

// Dispatcher owns post-creation order mutation. The store is its only
// synchronization point; the dispatcher itself holds no locks, so two
// racing updates for the same order are last-write-wins with each diff
// taken against the snapshot that call read.
type Dispatcher struct {
	store       repository.OrderStore
	sink        notify.Sink
	logger      *slog.Logger
	sendTimeout time.Duration
	now         func() time.Time
}

// NewDispatcher creates a dispatcher over the given store and sink.
func NewDispatcher(store repository.OrderStore, sink notify.Sink, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:       store,
		sink:        sink,
		logger:      logger,
		sendTimeout: defaultSendTimeout,
		now:         time.Now,
	}
}

// CreateOrderInput holds the fields for a new order.
type CreateOrderInput struct {
	CustomerName string                         `json:"customerName"`
	Email        string                         `json:"email"`
	Phone        string                         `json:"phone"`
	Status       models.OrderStatus             `json:"status"`
	CustomerNote string                         `json:"customerNote"`
	Preferences  models.NotificationPreferences `json:"notificationPreferences"`
	AmountCents  models.Money                   `json:"amountCents"`
	Currency     string                         `json:"currency"`
}

// UpdateInput is the subset of fields an update wants to change. Nil
// pointers leave the stored value untouched.
type UpdateInput struct {
	Status       *models.OrderStatus             `json:"status,omitempty"`
	CustomerNote *string                         `json:"customerNote,omitempty"`
	InternalNote *string                         `json:"internalNote,omitempty"`
	CustomerName *string                         `json:"customerName,omitempty"`
	Email        *string                         `json:"email,omitempty"`
	Phone        *string                         `json:"phone,omitempty"`
	Preferences  *models.NotificationPreferences `json:"notificationPreferences,omitempty"`
}

// CreateOrder persists a new order and always sends exactly one "order
// received" notification; there is no previous state to diff against.
func (d *Dispatcher) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	status := in.Status
	if status == "" {
		status = "received"
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	currency := in.Currency
	if currency == "" {
		currency = "EUR"
	}

	now := d.now().UTC()
	order := &models.Order{
		ID:            uuid.New().String(),
		ReferenceCode: newReferenceCode(now),
		CustomerName:  in.CustomerName,
		Email:         in.Email,
		Phone:         in.Phone,
		Status:        status,
		CustomerNote:  in.CustomerNote,
		Preferences:   in.Preferences,
		AmountCents:   in.AmountCents,
		Currency:      currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := order.ValidatePreferences(); err != nil {
		return nil, err
	}

	if err := d.store.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	d.dispatch(ctx, order, Event{
		OrderID:  order.ID,
		Reason:   ReasonCreated,
		Body:     composeMessage(ReasonCreated, order),
		Channels: order.Preferences.Channels(),
	})

	return order, nil
}

// ApplyUpdate loads the current snapshot, persists the merged result
// unconditionally, and notifies if and only if a notification-relevant
// field (status, customer note, internal note) actually changed. The diff
// is exact-string: whitespace-only edits count as real changes.
func (d *Dispatcher) ApplyUpdate(ctx context.Context, orderID string, in UpdateInput) error {
	order, err := d.store.Load(ctx, orderID)
	if err != nil {
		return err
	}

	reason := decideReason(order, in)

	if in.Status != nil {
		if err := in.Status.Validate(); err != nil {
			return err
		}
		order.Status = *in.Status
	}
	if in.CustomerNote != nil {
		order.CustomerNote = *in.CustomerNote
	}
	if in.InternalNote != nil {
		order.InternalNote = *in.InternalNote
	}
	if in.CustomerName != nil {
		order.CustomerName = *in.CustomerName
	}
	if in.Email != nil {
		order.Email = *in.Email
	}
	if in.Phone != nil {
		order.Phone = *in.Phone
	}
	if in.Preferences != nil {
		order.Preferences = *in.Preferences
	}
	if err := order.ValidatePreferences(); err != nil {
		return err
	}
	order.UpdatedAt = d.now().UTC()

	// The merge is persisted even when nothing notification-relevant
	// changed; a failed write aborts the whole operation.
	if err := d.store.Save(ctx, order); err != nil {
		return fmt.Errorf("failed to persist order: %w", err)
	}

	if reason == ReasonNone {
		return nil
	}

	d.dispatch(ctx, order, Event{
		OrderID:  order.ID,
		Reason:   reason,
		Body:     composeMessage(reason, order),
		Channels: order.Preferences.Channels(),
	})

	return nil
}

// decideReason diffs only the notification-relevant fields against the
// loaded snapshot. When several changed at once a single reason wins,
// status first, so the customer still receives exactly one message.
func decideReason(current *models.Order, in UpdateInput) string {
	if in.Status != nil && *in.Status != current.Status {
		return ReasonStatusChanged
	}
	if in.CustomerNote != nil && *in.CustomerNote != current.CustomerNote {
		return ReasonCustomerNoteChanged
	}
	if in.InternalNote != nil && *in.InternalNote != current.InternalNote {
		return ReasonInternalNoteChanged
	}
	return ReasonNone
}

// dispatch fans one event out to every enabled channel. Channel failures
// are logged and swallowed: the write is already committed and a flaky
// provider must never make a successful update look failed.
func (d *Dispatcher) dispatch(ctx context.Context, order *models.Order, event Event) {
	for _, channel := range event.Channels {
		destination := order.Destination(channel)
		if destination == "" {
			d.logger.Warn("skipping channel without destination",
				"order_id", event.OrderID, "channel", channel)
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
		err := d.sink.Send(sendCtx, channel, destination, event.Body)
		cancel()

		if err != nil {
			d.logger.Error("notification delivery failed",
				"order_id", event.OrderID,
				"reason", event.Reason,
				"channel", channel,
				"error", err,
			)
			continue
		}
		d.logger.Info("notification sent",
			"order_id", event.OrderID,
			"reason", event.Reason,
			"channel", channel,
		)
	}
}

// newReferenceCode builds the human-facing "bonnummer" customers use for
// lookups, distinct from the internal order id.
func newReferenceCode(now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("BON-%s-%s", now.Format("20060102"), suffix)
}
