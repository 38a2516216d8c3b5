package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Content fields of issue writes are not validated; a partial document is
// stored as sent. Identifiers and account emails are checked at the boundary.

type CreateIssueRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Photo        string `json:"photo"`
	District     string `json:"district"`
	Region       string `json:"region"`
	Area         string `json:"area"`
	Number       string `json:"number"`
	Email        string `json:"email"`
	ReporterName string `json:"reporterName"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
}

type UpdateIssueRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Photo       *string `json:"photo,omitempty"`
	District    *string `json:"district,omitempty"`
	Region      *string `json:"region,omitempty"`
	Area        *string `json:"area,omitempty"`
	Number      *string `json:"number,omitempty"`
}

// TimelineRequest changes an issue's status and/or assignment and records why.
type TimelineRequest struct {
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	AssignedStaff *StaffRef `json:"assignedStaff,omitempty"`
	Name          string    `json:"name"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Photo    string `json:"photo"`
	Password string `json:"password"`
}

type UpdateUserStatusRequest struct {
	AccountStatus string `json:"accountStatus" binding:"required"`
}

type CreateStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Photo    string `json:"photo"`
	Number   string `json:"number"`
	District string `json:"district"`
	Region   string `json:"region"`
	Category string `json:"category"`
	Password string `json:"password"`
}

type UpdateStaffRequest struct {
	Name     *string `json:"name,omitempty"`
	Photo    *string `json:"photo,omitempty"`
	Number   *string `json:"number,omitempty"`
	District *string `json:"district,omitempty"`
	Region   *string `json:"region,omitempty"`
	Category *string `json:"category,omitempty"`
	Status   *string `json:"status,omitempty"`
}

type UpvoteRequest struct {
	IssueID string `json:"issueId" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
}

type BoostCheckoutRequest struct {
	IssueID    string `json:"issueId" binding:"required"`
	IssueTitle string `json:"issueTitle"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}

type PremiumCheckoutRequest struct {
	Email    string `json:"email" binding:"required,email"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	PlanType string `json:"planType"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpsertResult reports whether an upsert-if-absent created a document.
type UpsertResult struct {
	InsertedID *primitive.ObjectID `json:"insertedId"`
	Message    string              `json:"message,omitempty"`
}

// ReconcileResult is returned by the payment confirmation callbacks.
type ReconcileResult struct {
	Success        bool   `json:"success"`
	AlreadyApplied bool   `json:"alreadyApplied,omitempty"`
	Modified       int64  `json:"modified"`
	PaymentID      string `json:"paymentId,omitempty"`
	TrackingID     string `json:"trackingId,omitempty"`
	TransactionID  string `json:"transactionId,omitempty"`
}

// DashboardStats is derived on every call; nothing about it is stored.
type DashboardStats struct {
	Scope          string                          `json:"scope"`
	Email          string                          `json:"email,omitempty"`
	TotalIssues    int64                           `json:"totalIssues"`
	StatusCounts   map[string]int64                `json:"statusCounts"`
	TotalPayments  float64                         `json:"totalPayments"`
	PaymentCount   int64                           `json:"paymentCount"`
	ByPurpose      map[PaymentPurpose]PaymentTotal `json:"byPurpose,omitempty"`
	TotalUsers     int64                           `json:"totalUsers,omitempty"`
	TotalStaff     int64                           `json:"totalStaff,omitempty"`
	PremiumMembers int64                           `json:"premiumMembers,omitempty"`
}
