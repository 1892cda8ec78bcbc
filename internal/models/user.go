package models

import "time"

type User struct {
	ID              int64      `json:"id" db:"id"`
	Email           string     `json:"email" db:"email"`
	EmailHash       string     `json:"-" db:"email_hash"` // keyed hash, used for usage events
	ClientID        string     `json:"client_id,omitempty" db:"client_id"`
	FreeChecksUsed  int        `json:"free_checks_used" db:"free_checks_used"`
	FreeChecksLimit int        `json:"free_checks_limit" db:"free_checks_limit"`
	EmailVerified   bool       `json:"email_verified" db:"email_verified"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty" db:"verified_at"`
	GDPRConsent     bool       `json:"gdpr_consent" db:"gdpr_consent"`
	ConsentAt       *time.Time `json:"consent_at,omitempty" db:"consent_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

func (u *User) ChecksRemaining() int {
	if n := u.FreeChecksLimit - u.FreeChecksUsed; n > 0 {
		return n
	}
	return 0
}
