package models

// Billing is the one-to-one payment record created at sign-up.
type Billing struct {
	UserID     string
	BankNo     string
	ClearingNo string
}
