package models

import (
	"errors"
	"time"
)

// Notification channels a customer can opt into.
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

var (
	ErrNoChannelEnabled = errors.New("at least one notification channel must be enabled")
	ErrPhoneRequired    = errors.New("phone number is required when whatsapp notifications are enabled")
	ErrEmptyStatus      = errors.New("order status must not be empty")
)

// OrderStatus is an opaque lifecycle label. The business adds labels over
// time, so it is a validated string rather than a closed enum; comparisons
// are exact-string.
type OrderStatus string

// Validate checks that the status label is usable.
func (s OrderStatus) Validate() error {
	if s == "" {
		return ErrEmptyStatus
	}
	return nil
}

// Money represents currency in minor units (cents) to avoid float drift.
type Money int64

// NotificationPreferences holds per-channel opt-in flags.
type NotificationPreferences struct {
	Email    bool `json:"email"`
	WhatsApp bool `json:"whatsapp"`
}

// Channels returns the enabled channel keys.
func (p NotificationPreferences) Channels() []string {
	var out []string
	if p.Email {
		out = append(out, ChannelEmail)
	}
	if p.WhatsApp {
		out = append(out, ChannelWhatsApp)
	}
	return out
}

// Order is the single mutable entity of the system. It is created once and
// afterwards mutated only through the dispatcher.
type Order struct {
	ID            string                  `json:"id"`
	ReferenceCode string                  `json:"referenceCode"`
	CustomerName  string                  `json:"customerName"`
	Email         string                  `json:"email"`
	Phone         string                  `json:"phone,omitempty"`
	Status        OrderStatus             `json:"status"`
	CustomerNote  string                  `json:"customerNote"`
	InternalNote  string                  `json:"internalNote"`
	Preferences   NotificationPreferences `json:"notificationPreferences"`
	AmountCents   Money                   `json:"amountCents"`
	Currency      string                  `json:"currency"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

// ValidatePreferences enforces the channel invariant: at least one channel
// must be enabled, and any channel needing a destination must have one.
func (o *Order) ValidatePreferences() error {
	if !o.Preferences.Email && !o.Preferences.WhatsApp {
		return ErrNoChannelEnabled
	}
	if o.Preferences.WhatsApp && o.Phone == "" {
		return ErrPhoneRequired
	}
	return nil
}

// Destination returns the delivery address for a channel, or "" if the
// channel is unknown.
func (o *Order) Destination(channel string) string {
	switch channel {
	case ChannelEmail:
		return o.Email
	case ChannelWhatsApp:
		return o.Phone
	}
	return ""
}

// Clone returns a deep copy so callers can diff against a stable snapshot.
func (o *Order) Clone() *Order {
	cp := *o
	return &cp
}
