package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upvote represents a citizen's upvote on an issue. At most one per (issue, email).
type Upvote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	IssueID   primitive.ObjectID `bson:"issueId" json:"issueId"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
