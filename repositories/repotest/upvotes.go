package repotest

import (
	"context"
	"sync"

	"cityfix-be/models"
	"cityfix-be/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upvotes is an in-memory repositories.UpvoteRepository.
type Upvotes struct {
	mu    sync.Mutex
	items []models.Upvote
	Err   error
}

var _ repositories.UpvoteRepository = (*Upvotes)(nil)

func NewUpvotes() *Upvotes {
	return &Upvotes{}
}

func (r *Upvotes) Add(_ context.Context, up *models.Upvote) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	for _, existing := range r.items {
		if existing.IssueID == up.IssueID && existing.Email == up.Email {
			return false, nil
		}
	}
	if up.ID.IsZero() {
		up.ID = primitive.NewObjectID()
	}
	r.items = append(r.items, *up)
	return true, nil
}

func (r *Upvotes) ListByIssue(_ context.Context, issueID primitive.ObjectID) ([]models.Upvote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]models.Upvote, 0)
	for _, up := range r.items {
		if up.IssueID == issueID {
			out = append(out, up)
		}
	}
	return out, nil
}

func (r *Upvotes) DeleteByIssue(_ context.Context, issueID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	kept := r.items[:0]
	for _, up := range r.items {
		if up.IssueID != issueID {
			kept = append(kept, up)
		}
	}
	r.items = kept
	return nil
}
