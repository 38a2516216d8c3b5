package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cityfix-be/config"
	"cityfix-be/models"
	"cityfix-be/repositories"
	"cityfix-be/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const reportedMessage = "Issue reported by citizen"

type IssueService interface {
	Create(ctx context.Context, req models.CreateIssueRequest) (*models.Issue, error)
	Get(ctx context.Context, id string) (*models.Issue, error)
	List(ctx context.Context, f repositories.IssueFilter) ([]models.Issue, error)
	Update(ctx context.Context, id string, req models.UpdateIssueRequest) (*models.Issue, error)
	Delete(ctx context.Context, id string) error
	// UpdateTimeline changes status and/or assignment and appends one
	// timeline entry attributed to actor.
	UpdateTimeline(ctx context.Context, id string, actor models.Actor, req models.TimelineRequest) (*models.Issue, error)
}

type issueService struct {
	issues  repositories.IssueRepository
	users   repositories.UserRepository
	upvotes repositories.UpvoteRepository
	cfg     *config.Config
	log     *zap.Logger
}

func NewIssueService(
	issues repositories.IssueRepository,
	users repositories.UserRepository,
	upvotes repositories.UpvoteRepository,
	cfg *config.Config,
	log *zap.Logger,
) IssueService {
	return &issueService{issues: issues, users: users, upvotes: upvotes, cfg: cfg, log: log}
}

func (s *issueService) Create(ctx context.Context, req models.CreateIssueRequest) (*models.Issue, error) {
	req.Email = utils.NormalizeEmail(req.Email)
	if err := s.checkQuota(ctx, req.Email); err != nil {
		return nil, err
	}

	now := time.Now()
	issue := &models.Issue{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Photo:        req.Photo,
		District:     req.District,
		Region:       req.Region,
		Area:         req.Area,
		Number:       req.Number,
		Email:        req.Email,
		ReporterName: req.ReporterName,
		Status:       models.IssueStatus(req.Status),
		Priority:     models.IssuePriority(req.Priority),
		TrackingID:   uuid.NewString(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if issue.Status == "" {
		issue.Status = models.StatusPending
	}
	if issue.Priority == "" {
		issue.Priority = models.PriorityNormal
	}
	issue.Timeline = []models.TimelineEntry{{
		Status:    issue.Status,
		Message:   reportedMessage,
		UpdatedBy: models.Actor{Role: models.RoleCitizen, Email: req.Email, Name: req.ReporterName},
		UpdatedAt: now,
	}}

	id, err := s.issues.Create(ctx, issue)
	if err != nil {
		return nil, err
	}
	issue.ID = id
	s.log.Info("issue created", zap.String("id", id.Hex()), zap.String("email", issue.Email))
	return issue, nil
}

// checkQuota enforces the free plan cap on how many issues one citizen can
// hold. Subscribed users are never limited; a limit of 0 disables the check.
func (s *issueService) checkQuota(ctx context.Context, email string) error {
	if s.cfg.FreeIssueLimit <= 0 || email == "" {
		return nil
	}
	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && user.IsSubscribed:
		return nil
	case err != nil && !errors.Is(err, utils.ErrNotFound):
		return err
	}

	count, err := s.issues.Count(ctx, repositories.IssueFilter{Email: email})
	if err != nil {
		return err
	}
	if count >= s.cfg.FreeIssueLimit {
		return fmt.Errorf("%w (%d issues)", utils.ErrQuotaExceeded, s.cfg.FreeIssueLimit)
	}
	return nil
}

func (s *issueService) Get(ctx context.Context, id string) (*models.Issue, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	issue, err := s.issues.FindByID(ctx, oid)
	if err != nil {
		return nil, notFoundAs(err, utils.ErrIssueNotFound)
	}
	return issue, nil
}

func (s *issueService) List(ctx context.Context, f repositories.IssueFilter) ([]models.Issue, error) {
	f.Email = utils.NormalizeEmail(f.Email)
	return s.issues.List(ctx, f)
}

func (s *issueService) Update(ctx context.Context, id string, req models.UpdateIssueRequest) (*models.Issue, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	set("title", req.Title)
	set("description", req.Description)
	set("category", req.Category)
	set("photo", req.Photo)
	set("district", req.District)
	set("region", req.Region)
	set("area", req.Area)
	set("number", req.Number)

	matched, err := s.issues.Update(ctx, oid, fields)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, utils.ErrIssueNotFound
	}
	return s.Get(ctx, id)
}

func (s *issueService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	deleted, err := s.issues.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return utils.ErrIssueNotFound
	}
	if err := s.upvotes.DeleteByIssue(ctx, oid); err != nil {
		s.log.Error("failed to delete upvotes of removed issue", zap.String("id", id), zap.Error(err))
	}
	return nil
}

func (s *issueService) UpdateTimeline(ctx context.Context, id string, actor models.Actor, req models.TimelineRequest) (*models.Issue, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	current, err := s.issues.FindByID(ctx, oid)
	if err != nil {
		return nil, notFoundAs(err, utils.ErrIssueNotFound)
	}

	fields := bson.M{}
	status := current.Status
	if req.Status != "" {
		status = models.IssueStatus(req.Status)
		fields["status"] = status
	}
	if req.AssignedStaff != nil {
		fields["assignedStaff"] = req.AssignedStaff
	}
	if actor.Name == "" {
		actor.Name = req.Name
	}
	entry := models.TimelineEntry{
		Status:    status,
		Message:   req.Message,
		UpdatedBy: actor,
		UpdatedAt: time.Now(),
	}

	matched, err := s.issues.AppendTimeline(ctx, oid, fields, entry)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, utils.ErrIssueNotFound
	}
	return s.Get(ctx, id)
}
