package repotest

import (
	"context"
	"sort"
	"sync"

	"cityfix-be/models"
	"cityfix-be/repositories"
	"cityfix-be/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payments is an in-memory repositories.PaymentRepository that enforces the
// unique transaction id like the real index does.
type Payments struct {
	mu    sync.Mutex
	items []models.Payment
	Err   error
	// InsertErr fails only Insert, leaving lookups working.
	InsertErr error
}

var _ repositories.PaymentRepository = (*Payments)(nil)

func NewPayments(seed ...models.Payment) *Payments {
	return &Payments{items: append([]models.Payment(nil), seed...)}
}

// Len reports how many ledger rows are stored.
func (r *Payments) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *Payments) Insert(_ context.Context, p *models.Payment) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return primitive.NilObjectID, r.Err
	}
	if r.InsertErr != nil {
		return primitive.NilObjectID, r.InsertErr
	}
	for _, existing := range r.items {
		if existing.TransactionID == p.TransactionID {
			return primitive.NilObjectID, utils.ErrAlreadyExists
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.items = append(r.items, *p)
	return p.ID, nil
}

func (r *Payments) FindByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, p := range r.items {
		if p.TransactionID == transactionID {
			cp := p
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *Payments) List(_ context.Context, f repositories.PaymentFilter) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]models.Payment, 0)
	for _, p := range r.items {
		if matchPayment(p, f) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].PaidAt.After(out[b].PaidAt) })
	if f.Limit > 0 && f.Limit < int64(len(out)) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *Payments) Totals(_ context.Context, f repositories.PaymentFilter) (map[models.PaymentPurpose]models.PaymentTotal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	totals := make(map[models.PaymentPurpose]models.PaymentTotal)
	for _, p := range r.items {
		if !matchPayment(p, f) {
			continue
		}
		t := totals[p.Purpose]
		t.Amount += p.Amount
		t.Count++
		totals[p.Purpose] = t
	}
	return totals, nil
}

func matchPayment(p models.Payment, f repositories.PaymentFilter) bool {
	return (f.Email == "" || p.Email == f.Email) &&
		(f.Purpose == "" || p.Purpose == f.Purpose) &&
		(f.IssueID == "" || p.IssueID == f.IssueID) &&
		(f.Status == "" || p.Status == f.Status)
}
