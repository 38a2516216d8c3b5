package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"cityfix-be/models"
	"cityfix-be/repositories"
	"cityfix-be/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Issues is an in-memory repositories.IssueRepository. Setting Err makes
// every call fail with it.
type Issues struct {
	mu    sync.Mutex
	items []*models.Issue
	Err   error
}

var _ repositories.IssueRepository = (*Issues)(nil)

func NewIssues() *Issues {
	return &Issues{}
}

func (r *Issues) Create(_ context.Context, issue *models.Issue) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return primitive.NilObjectID, r.Err
	}
	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	cp := cloneIssue(*issue)
	r.items = append(r.items, &cp)
	return issue.ID, nil
}

func (r *Issues) FindByID(_ context.Context, id primitive.ObjectID) (*models.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	i := r.find(id)
	if i == nil {
		return nil, utils.ErrNotFound
	}
	cp := cloneIssue(*i)
	return &cp, nil
}

func (r *Issues) List(_ context.Context, f repositories.IssueFilter) ([]models.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	out := make([]models.Issue, 0)
	for _, i := range r.items {
		if matchIssue(i, f) {
			out = append(out, cloneIssue(*i))
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Priority != out[b].Priority {
			return out[a].Priority < out[b].Priority
		}
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})

	if f.Skip > 0 {
		if f.Skip >= int64(len(out)) {
			return []models.Issue{}, nil
		}
		out = out[f.Skip:]
	}
	if f.Limit > 0 && f.Limit < int64(len(out)) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *Issues) Count(ctx context.Context, f repositories.IssueFilter) (int64, error) {
	f.Limit, f.Skip = 0, 0
	list, err := r.List(ctx, f)
	return int64(len(list)), err
}

func (r *Issues) CountByStatus(ctx context.Context, f repositories.IssueFilter) (map[string]int64, error) {
	f.Limit, f.Skip = 0, 0
	list, err := r.List(ctx, f)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64)
	for _, i := range list {
		counts[string(i.Status)]++
	}
	return counts, nil
}

func (r *Issues) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	return r.ConditionalUpdate(ctx, id, nil, fields, nil)
}

func (r *Issues) ConditionalUpdate(_ context.Context, id primitive.ObjectID, guard, fields bson.M, entry *models.TimelineEntry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}

	i := r.find(id)
	if i == nil || !matches(toM(i), guard) {
		return 0, nil
	}

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	apply(i, set)
	if entry != nil {
		i.Timeline = append(i.Timeline, *entry)
	}
	return 1, nil
}

func (r *Issues) AppendTimeline(ctx context.Context, id primitive.ObjectID, fields bson.M, entry models.TimelineEntry) (int64, error) {
	return r.ConditionalUpdate(ctx, id, nil, fields, &entry)
}

func (r *Issues) IncrementUpvotes(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if i := r.find(id); i != nil {
		i.UpvoteCount++
	}
	return nil
}

func (r *Issues) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	for idx, i := range r.items {
		if i.ID == id {
			r.items = append(r.items[:idx], r.items[idx+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *Issues) find(id primitive.ObjectID) *models.Issue {
	for _, i := range r.items {
		if i.ID == id {
			return i
		}
	}
	return nil
}

func matchIssue(i *models.Issue, f repositories.IssueFilter) bool {
	if f.Status != "" && string(i.Status) != f.Status {
		return false
	}
	if f.Priority != "" && string(i.Priority) != f.Priority {
		return false
	}
	if f.Category != "" && i.Category != f.Category {
		return false
	}
	if f.Email != "" && i.Email != f.Email {
		return false
	}
	if f.AssignedStaff != "" && (i.AssignedStaff == nil || i.AssignedStaff.Email != f.AssignedStaff) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		found := false
		for _, field := range []string{i.Title, i.Category, i.Region, i.District} {
			if strings.Contains(strings.ToLower(field), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func cloneIssue(i models.Issue) models.Issue {
	i.Timeline = append([]models.TimelineEntry(nil), i.Timeline...)
	if i.AssignedStaff != nil {
		s := *i.AssignedStaff
		i.AssignedStaff = &s
	}
	return i
}
