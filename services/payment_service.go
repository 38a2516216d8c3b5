package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cityfix-be/config"
	"cityfix-be/models"
	"cityfix-be/payments"
	"cityfix-be/repositories"
	"cityfix-be/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	boostedMessage  = "Issue Boosted"
	defaultPlanType = "premium"
	latestPayments  = 5
)

// Metadata keys attached to a checkout session and read back on confirmation.
const (
	metaPurpose    = "purpose"
	metaIssueID    = "issueId"
	metaIssueTitle = "issueTitle"
	metaTrackingID = "trackingId"
	metaEmail      = "email"
	metaName       = "name"
	metaUserID     = "userId"
	metaPlanType   = "planType"
)

type PaymentService interface {
	// CreateBoostCheckout returns the hosted checkout URL for boosting an issue.
	CreateBoostCheckout(ctx context.Context, req models.BoostCheckoutRequest) (string, error)
	CreatePremiumCheckout(ctx context.Context, req models.PremiumCheckoutRequest) (string, error)
	// ConfirmBoost applies a paid boost session at most once.
	ConfirmBoost(ctx context.Context, sessionID string) (*models.ReconcileResult, error)
	// ConfirmPremium applies a paid premium session at most once.
	ConfirmPremium(ctx context.Context, sessionID string) (*models.ReconcileResult, error)
	List(ctx context.Context, f repositories.PaymentFilter) ([]models.Payment, error)
	Latest(ctx context.Context) ([]models.Payment, error)
}

type paymentService struct {
	gateway  payments.CheckoutGateway
	issues   repositories.IssueRepository
	users    repositories.UserRepository
	payments repositories.PaymentRepository
	cfg      *config.Config
	log      *zap.Logger
}

func NewPaymentService(
	gateway payments.CheckoutGateway,
	issues repositories.IssueRepository,
	users repositories.UserRepository,
	ledger repositories.PaymentRepository,
	cfg *config.Config,
	log *zap.Logger,
) PaymentService {
	return &paymentService{gateway: gateway, issues: issues, users: users, payments: ledger, cfg: cfg, log: log}
}

func (s *paymentService) CreateBoostCheckout(ctx context.Context, req models.BoostCheckoutRequest) (string, error) {
	oid, err := parseID(req.IssueID)
	if err != nil {
		return "", err
	}
	issue, err := s.issues.FindByID(ctx, oid)
	if err != nil {
		return "", notFoundAs(err, utils.ErrIssueNotFound)
	}
	if issue.PaymentStatus == models.PaymentStatusPaid {
		return "", fmt.Errorf("issue %w as boosted", utils.ErrAlreadyExists)
	}

	title := firstNonEmpty(req.IssueTitle, issue.Title)
	email := firstNonEmpty(req.Email, issue.Email)
	session, err := s.gateway.CreateSession(ctx, payments.SessionRequest{
		ProductName:   title,
		Amount:        s.cfg.BoostAmount,
		Currency:      s.cfg.Currency,
		CustomerEmail: email,
		Metadata: map[string]string{
			metaPurpose:    string(models.PurposeIssue),
			metaIssueID:    req.IssueID,
			metaIssueTitle: title,
			metaTrackingID: issue.TrackingID,
			metaEmail:      email,
			metaName:       req.Name,
		},
		SuccessURL: s.cfg.SiteDomain + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.cfg.SiteDomain + "/payment-cancel",
	})
	if err != nil {
		return "", s.upstream("create boost session", err)
	}
	return session.URL, nil
}

func (s *paymentService) CreatePremiumCheckout(ctx context.Context, req models.PremiumCheckoutRequest) (string, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", notFoundAs(err, utils.ErrUserNotFound)
	}
	if user.IsSubscribed {
		return "", fmt.Errorf("premium subscription %w", utils.ErrAlreadyExists)
	}

	plan := firstNonEmpty(req.PlanType, defaultPlanType)
	session, err := s.gateway.CreateSession(ctx, payments.SessionRequest{
		ProductName:   "CityFix Premium",
		Amount:        s.cfg.PremiumAmount,
		Currency:      s.cfg.Currency,
		CustomerEmail: req.Email,
		Metadata: map[string]string{
			metaPurpose:  string(models.PurposeProfile),
			metaUserID:   firstNonEmpty(req.UserID, user.ID.Hex()),
			metaEmail:    req.Email,
			metaName:     firstNonEmpty(req.Name, user.Name),
			metaPlanType: plan,
		},
		SuccessURL: s.cfg.SiteDomain + "/premium-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.cfg.SiteDomain + "/payment-cancel",
	})
	if err != nil {
		return "", s.upstream("create premium session", err)
	}
	return session.URL, nil
}

func (s *paymentService) ConfirmBoost(ctx context.Context, sessionID string) (*models.ReconcileResult, error) {
	session, applied, err := s.loadSession(ctx, sessionID)
	if err != nil || applied != nil {
		return applied, err
	}
	if session.PaymentStatus != payments.StatusPaid {
		return &models.ReconcileResult{Success: false, TransactionID: session.TransactionID}, nil
	}

	meta := session.Metadata
	oid, err := metadataIssueID(meta)
	if err != nil {
		return nil, err
	}
	payer := firstNonEmpty(meta[metaEmail], session.CustomerEmail)
	entry := models.TimelineEntry{
		Status:    models.StatusBoosted,
		Message:   boostedMessage,
		UpdatedBy: models.Actor{Role: models.RoleCitizen, Email: payer, Name: meta[metaName]},
		UpdatedAt: time.Now(),
	}
	modified, err := s.issues.ConditionalUpdate(ctx, oid,
		bson.M{"paymentStatus": bson.M{"$ne": models.PaymentStatusPaid}},
		bson.M{"paymentStatus": models.PaymentStatusPaid, "priority": models.PriorityHigh},
		&entry,
	)
	if err != nil {
		return nil, err
	}

	// The ledger row is written even when the guarded update matched
	// nothing; the unique transaction id keeps it to one row per charge.
	return s.record(ctx, session, modified, models.Payment{
		Email:      payer,
		Purpose:    models.PurposeIssue,
		IssueID:    meta[metaIssueID],
		IssueTitle: meta[metaIssueTitle],
		TrackingID: meta[metaTrackingID],
	})
}

func (s *paymentService) ConfirmPremium(ctx context.Context, sessionID string) (*models.ReconcileResult, error) {
	session, applied, err := s.loadSession(ctx, sessionID)
	if err != nil || applied != nil {
		return applied, err
	}
	if session.PaymentStatus != payments.StatusPaid {
		return &models.ReconcileResult{Success: false, TransactionID: session.TransactionID}, nil
	}

	meta := session.Metadata
	email := firstNonEmpty(meta[metaEmail], session.CustomerEmail)
	if email == "" {
		return nil, fmt.Errorf("%w: session %s carries no email", utils.ErrBadRequest, session.ID)
	}
	modified, err := s.users.ConditionalUpdate(ctx, email,
		bson.M{"isSubscribed": bson.M{"$ne": true}},
		bson.M{
			"isSubscribed":  true,
			"planType":      firstNonEmpty(meta[metaPlanType], defaultPlanType),
			"transactionId": session.TransactionID,
			"paidAt":        time.Now(),
		},
	)
	if err != nil {
		return nil, err
	}

	return s.record(ctx, session, modified, models.Payment{
		Email:   email,
		Purpose: models.PurposeProfile,
		UserID:  meta[metaUserID],
	})
}

// loadSession fetches the provider's view of the session and checks the
// ledger. A non-nil result means the transaction was already applied.
func (s *paymentService) loadSession(ctx context.Context, sessionID string) (*payments.Session, *models.ReconcileResult, error) {
	if sessionID == "" {
		return nil, nil, fmt.Errorf("%w: session_id is required", utils.ErrBadRequest)
	}
	session, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, s.upstream("get session", err)
	}

	existing, err := s.payments.FindByTransactionID(ctx, session.TransactionID)
	switch {
	case err == nil:
		return session, &models.ReconcileResult{
			Success:        true,
			AlreadyApplied: true,
			PaymentID:      existing.ID.Hex(),
			TrackingID:     existing.TrackingID,
			TransactionID:  existing.TransactionID,
		}, nil
	case errors.Is(err, utils.ErrNotFound):
		return session, nil, nil
	default:
		return nil, nil, err
	}
}

// record appends the ledger row for a paid session.
func (s *paymentService) record(ctx context.Context, session *payments.Session, modified int64, row models.Payment) (*models.ReconcileResult, error) {
	row.Amount = payments.MajorUnits(session.AmountTotal, session.Currency)
	row.Currency = session.Currency
	row.TransactionID = session.TransactionID
	row.Status = payments.StatusPaid
	row.PaidAt = time.Now()

	result := &models.ReconcileResult{
		Success:       true,
		Modified:      modified,
		TrackingID:    row.TrackingID,
		TransactionID: row.TransactionID,
	}
	id, err := s.payments.Insert(ctx, &row)
	switch {
	case errors.Is(err, utils.ErrAlreadyExists):
		result.AlreadyApplied = true
		return result, nil
	case err != nil:
		s.log.Error("payment applied but ledger append failed",
			zap.String("transactionId", row.TransactionID),
			zap.String("purpose", string(row.Purpose)),
			zap.Int64("modified", modified),
			zap.Error(err))
		return nil, err
	}

	s.log.Info("payment recorded",
		zap.String("transactionId", row.TransactionID),
		zap.String("purpose", string(row.Purpose)),
		zap.Int64("modified", modified))
	result.PaymentID = id.Hex()
	return result, nil
}

func (s *paymentService) List(ctx context.Context, f repositories.PaymentFilter) ([]models.Payment, error) {
	return s.payments.List(ctx, f)
}

func (s *paymentService) Latest(ctx context.Context) ([]models.Payment, error) {
	return s.payments.List(ctx, repositories.PaymentFilter{Limit: latestPayments})
}

func (s *paymentService) upstream(op string, err error) error {
	s.log.Error("checkout gateway call failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", utils.ErrUpstream, op, err)
}

func metadataIssueID(meta map[string]string) (primitive.ObjectID, error) {
	oid, err := parseID(meta[metaIssueID])
	if err != nil {
		return oid, fmt.Errorf("%w: session metadata has no valid issue id", utils.ErrBadRequest)
	}
	return oid, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
