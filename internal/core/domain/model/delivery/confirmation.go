package delivery

import "time"

// Confirmation is the proof-of-delivery sub-record of a stop: who received
// the goods and the supporting artifacts. Signature and photo are opaque URIs;
// binary storage is outside the engine.
type Confirmation struct {
	recipientName  string
	recipientPhone string
	signatureURI   string
	photoURI       string
	notes          string
	confirmedAt    *time.Time
}

// NewConfirmation creates a proof-of-delivery record stamped at the given
// time. All fields are optional; an empty confirmation is valid.
func NewConfirmation(
	recipientName string,
	recipientPhone string,
	signatureURI string,
	photoURI string,
	notes string,
	at time.Time,
) Confirmation {
	return Confirmation{
		recipientName:  recipientName,
		recipientPhone: recipientPhone,
		signatureURI:   signatureURI,
		photoURI:       photoURI,
		notes:          notes,
		confirmedAt:    &at,
	}
}

// RestoreConfirmation reconstructs a confirmation sub-record from persistent
// storage.
func RestoreConfirmation(
	recipientName string,
	recipientPhone string,
	signatureURI string,
	photoURI string,
	notes string,
	confirmedAt *time.Time,
) Confirmation {
	return Confirmation{
		recipientName:  recipientName,
		recipientPhone: recipientPhone,
		signatureURI:   signatureURI,
		photoURI:       photoURI,
		notes:          notes,
		confirmedAt:    confirmedAt,
	}
}

// RecipientName returns the receiving person's name.
func (c Confirmation) RecipientName() string { return c.recipientName }

// RecipientPhone returns the receiving person's phone number.
func (c Confirmation) RecipientPhone() string { return c.recipientPhone }

// SignatureURI returns the opaque signature reference.
func (c Confirmation) SignatureURI() string { return c.signatureURI }

// PhotoURI returns the opaque photo reference.
func (c Confirmation) PhotoURI() string { return c.photoURI }

// Notes returns the free-text delivery notes.
func (c Confirmation) Notes() string { return c.notes }

// ConfirmedAt returns when the delivery was confirmed, or nil.
func (c Confirmation) ConfirmedAt() *time.Time { return c.confirmedAt }
