package domain

import "time"

// Occurrence records the instant something happened or is scheduled to
// happen. The original distinction between "already occurred" and "will
// occur" carries no extra data, so the label lives in the field name of
// whatever holds the Occurrence (Confirmation, LockoutEnd).
type Occurrence struct {
	Instant time.Time `bson:"instant"`
}

func NewOccurrence(instant time.Time) *Occurrence {
	return &Occurrence{Instant: instant.UTC()}
}

// ContactRecord is a confirmable contact channel such as an email address
// or a phone number. It is confirmed iff Confirmation is set.
type ContactRecord struct {
	Value        string      `bson:"value"`
	Confirmation *Occurrence `bson:"confirmation,omitempty"`
}

func NewContactRecord(value string) *ContactRecord {
	return &ContactRecord{Value: value}
}

func (c *ContactRecord) IsConfirmed() bool {
	return c.Confirmation != nil
}

// Confirm marks the record confirmed at the given instant. Confirming an
// already confirmed record keeps the original confirmation instant.
func (c *ContactRecord) Confirm(at time.Time) {
	if c.Confirmation == nil {
		c.Confirmation = NewOccurrence(at)
	}
}

// Unconfirm clears the confirmation entirely. No history is retained.
func (c *ContactRecord) Unconfirm() {
	c.Confirmation = nil
}
