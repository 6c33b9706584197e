package dispatch

import (
	"fmt"

	"github.com/SerkanKacar01/kaniou-orders/internal/models"
)

// composeMessage renders the customer-facing body for a dispatch reason.
// Every channel a customer enabled is customer-facing, so internal-note
// changes produce a generic update message: internal note content never
// leaves the admin surface.
func composeMessage(reason string, order *models.Order) string {
	switch reason {
	case ReasonCreated:
		return fmt.Sprintf(
			"Bedankt voor uw bestelling! Uw bonnummer is %s. U ontvangt een bericht zodra de status wijzigt.",
			order.ReferenceCode)
	case ReasonStatusChanged:
		return fmt.Sprintf(
			"De status van uw bestelling %s is gewijzigd naar: %s.",
			order.ReferenceCode, order.Status)
	case ReasonCustomerNoteChanged:
		return fmt.Sprintf(
			"Er is een opmerking toegevoegd aan uw bestelling %s: %s",
			order.ReferenceCode, order.CustomerNote)
	case ReasonInternalNoteChanged:
		return fmt.Sprintf(
			"Uw bestelling %s is bijgewerkt.",
			order.ReferenceCode)
	}
	return ""
}
