package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueStatus is stored as a plain string. The constants below are the
// recommended values; other strings are accepted and persisted as given.
type IssueStatus string

const (
	StatusPending    IssueStatus = "pending"
	StatusInProgress IssueStatus = "in-progress"
	StatusWorking    IssueStatus = "working"
	StatusResolved   IssueStatus = "resolved"
	StatusClosed     IssueStatus = "closed"
	StatusRejected   IssueStatus = "rejected"

	// StatusBoosted only appears on timeline entries written by a boost payment.
	StatusBoosted IssueStatus = "boosted"
)

// IssueStatuses lists the recommended statuses in display order.
var IssueStatuses = []IssueStatus{
	StatusPending,
	StatusInProgress,
	StatusWorking,
	StatusResolved,
	StatusClosed,
	StatusRejected,
}

// IssuePriority enum
type IssuePriority string

const (
	PriorityLow    IssuePriority = "low"
	PriorityNormal IssuePriority = "normal"
	PriorityHigh   IssuePriority = "high"
)

// PaymentStatusPaid marks an issue whose boost has been paid for.
const PaymentStatusPaid = "paid"

// Actor identifies who wrote a timeline entry.
type Actor struct {
	Role  string `bson:"role" json:"role"`
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
}

// TimelineEntry is one append-only record in an issue's history.
type TimelineEntry struct {
	Status    IssueStatus `bson:"status" json:"status"`
	Message   string      `bson:"message" json:"message"`
	UpdatedBy Actor       `bson:"updatedBy" json:"updatedBy"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// StaffRef is the staff member an issue is assigned to.
type StaffRef struct {
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`
}

// Issue represents a municipal problem reported by a citizen
type Issue struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Category      string             `bson:"category" json:"category"`
	Photo         string             `bson:"photo,omitempty" json:"photo,omitempty"`
	District      string             `bson:"district,omitempty" json:"district,omitempty"`
	Region        string             `bson:"region,omitempty" json:"region,omitempty"`
	Area          string             `bson:"area,omitempty" json:"area,omitempty"`
	Number        string             `bson:"number,omitempty" json:"number,omitempty"`
	Email         string             `bson:"email" json:"email"`
	ReporterName  string             `bson:"reporterName,omitempty" json:"reporterName,omitempty"`
	Status        IssueStatus        `bson:"status" json:"status"`
	Priority      IssuePriority      `bson:"priority" json:"priority"`
	PaymentStatus string             `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	TrackingID    string             `bson:"trackingId,omitempty" json:"trackingId,omitempty"`
	UpvoteCount   int64              `bson:"upvoteCount" json:"upvoteCount"`
	AssignedStaff *StaffRef          `bson:"assignedStaff" json:"assignedStaff"`
	Timeline      []TimelineEntry    `bson:"timeline" json:"timeline"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
