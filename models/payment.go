package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentPurpose tags what a ledger row paid for.
type PaymentPurpose string

const (
	PurposeIssue   PaymentPurpose = "issue"
	PurposeProfile PaymentPurpose = "profile"
)

// Payment is an append-only ledger row. TransactionID is unique per real charge.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	Email         string             `bson:"customerEmail" json:"customerEmail"`
	Purpose       PaymentPurpose     `bson:"purpose" json:"purpose"`
	IssueID       string             `bson:"issueId,omitempty" json:"issueId,omitempty"`
	IssueTitle    string             `bson:"issueTitle,omitempty" json:"issueTitle,omitempty"`
	UserID        string             `bson:"userId,omitempty" json:"userId,omitempty"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	TrackingID    string             `bson:"trackingId,omitempty" json:"trackingId,omitempty"`
	Status        string             `bson:"status" json:"status"`
	PaidAt        time.Time          `bson:"paidAt" json:"paidAt"`
}

// PaymentTotal is a sum of ledger amounts with the number of rows behind it.
type PaymentTotal struct {
	Amount float64 `bson:"amount" json:"amount"`
	Count  int64   `bson:"count" json:"count"`
}
