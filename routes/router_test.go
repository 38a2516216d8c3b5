package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cityfix-be/config"
	"cityfix-be/controllers"
	"cityfix-be/identity"
	"cityfix-be/models"
	"cityfix-be/payments"
	"cityfix-be/repositories"
	"cityfix-be/repositories/repotest"
	"cityfix-be/services"
	"cityfix-be/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type harness struct {
	router  *gin.Engine
	cfg     *config.Config
	issues  *repotest.Issues
	ledger  *repotest.Payments
	gateway *payments.MockCheckoutGateway
}

// Tokens in these tests are "tok-<email>".
func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := zap.NewNop()

	verifier := identity.NewMockVerifier(ctrl)
	verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, token string) (string, error) {
		if email, ok := strings.CutPrefix(token, "tok-"); ok {
			return email, nil
		}
		return "", utils.ErrUnauthorized
	}).AnyTimes()

	h := &harness{
		issues:  repotest.NewIssues(),
		ledger:  repotest.NewPayments(),
		gateway: payments.NewMockCheckoutGateway(ctrl),
	}
	users := repotest.NewUsers(models.User{Email: "admin@x.com", Role: models.RoleAdmin})
	staff := repotest.NewStaff(models.Staff{Email: "s@x.com", Name: "Sam"})
	upvotes := repotest.NewUpvotes()
	reference := repotest.NewReference(models.ReferenceData{
		Districts:  []models.DistrictRegion{{Region: "Dhaka", Districts: []string{"Gazipur"}}},
		Categories: []models.Category{{Name: "Road"}},
	})
	cfg := &config.Config{
		Env:             "test",
		SiteDomain:      "http://localhost:5173",
		Currency:        "bdt",
		BoostAmount:     10000,
		PremiumAmount:   100000,
		CheckoutPerMin:  100,
		IssueLimitQueue: "issue-limit",
		IssueDailyLimit: 20,
	}
	h.cfg = cfg

	accounts := services.NewAccountService(users, staff, log)
	h.router = NewRouter(Deps{
		Config:     cfg,
		Log:        log,
		Verifier:   verifier,
		Roles:      accounts,
		Issues:     controllers.NewIssueController(services.NewIssueService(h.issues, users, upvotes, cfg, log), log),
		Users:      controllers.NewUserController(accounts, log),
		Staff:      controllers.NewStaffController(services.NewStaffService(staff, log), log),
		Upvotes:    controllers.NewUpvoteController(services.NewUpvoteService(upvotes, h.issues, log), log),
		Payments:   controllers.NewPaymentController(services.NewPaymentService(h.gateway, h.issues, users, h.ledger, cfg, log), log),
		Dashboard:  controllers.NewDashboardController(services.NewDashboardService(h.issues, h.ledger, users, staff), log),
		References: controllers.NewReferenceController(services.NewReferenceService(reference, log), log),
	})
	return h
}

func (h *harness) do(t *testing.T, method, path, email string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		req.Header.Set("Authorization", "Bearer tok-"+email)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (h *harness) createIssue(t *testing.T, title, email string) string {
	t.Helper()
	w := h.do(t, http.MethodPost, "/issues", email, gin.H{
		"title": title, "email": email, "status": "pending", "priority": "normal", "category": "Road",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		InsertedID string `json:"insertedId"`
	}](t, w)
	return created.InsertedID
}

func TestIssueLifecycle(t *testing.T) {
	h := newHarness(t)
	id := h.createIssue(t, "Pothole", "a@x.com")

	w := h.do(t, http.MethodGet, "/issues/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	issue := decode[models.Issue](t, w)
	assert.Equal(t, id, issue.ID.Hex())
	assert.Equal(t, "Pothole", issue.Title)
	assert.Equal(t, "a@x.com", issue.Email)
	assert.Equal(t, models.StatusPending, issue.Status)
	assert.Equal(t, models.PriorityNormal, issue.Priority)

	w = h.do(t, http.MethodGet, "/issues?search=POTHOLE", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Issue](t, w), 1)

	w = h.do(t, http.MethodGet, "/issues?category=Water", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = h.do(t, http.MethodGet, "/payment/"+id, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, http.MethodPatch, "/issues/"+id, "b@x.com", gin.H{"title": "Hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = h.do(t, http.MethodPatch, "/issues/"+id, "a@x.com", gin.H{"title": "Deep pothole"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Deep pothole", decode[models.Issue](t, w).Title)

	w = h.do(t, http.MethodDelete, "/issues/"+id, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = h.do(t, http.MethodDelete, "/issues/"+id, "admin@x.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = h.do(t, http.MethodGet, "/issues/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIssueErrors(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodGet, "/issues/not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodGet, "/issues/64b7f0000000000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"issue not found"}`, w.Body.String())

	h.issues.Err = errors.New("connection reset")
	w = h.do(t, http.MethodGet, "/issues", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Something went wrong"}`, w.Body.String())
}

func TestCreateIssue_UsesVerifiedReporter(t *testing.T) {
	h := newHarness(t)
	h.cfg.FreeIssueLimit = 3
	post := func(token, email string) *httptest.ResponseRecorder {
		return h.do(t, http.MethodPost, "/issues", token, gin.H{"title": "Pothole", "email": email})
	}

	assert.Equal(t, http.StatusUnauthorized, post("", "victim@x.com").Code)
	assert.Equal(t, http.StatusForbidden, post("m@x.com", "victim@x.com").Code)
	n, err := h.issues.Count(context.Background(), repositories.IssueFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)

	for i := 0; i < 3; i++ {
		email := "victim@x.com"
		if i == 1 {
			email = ""
		}
		require.Equal(t, http.StatusCreated, post("Victim@X.com", email).Code)
	}
	w := post("victim@x.com", "victim@x.com")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "free plan")

	// Filing under another address does not get around the quota.
	assert.Equal(t, http.StatusForbidden, post("victim@x.com", "other@x.com").Code)

	mine := decode[[]models.Issue](t, h.do(t, http.MethodGet, "/my-issues", "victim@x.com", nil))
	require.Len(t, mine, 3)
	for _, issue := range mine {
		assert.Equal(t, "victim@x.com", issue.Email)
	}
}

func TestMyIssues(t *testing.T) {
	h := newHarness(t)
	h.createIssue(t, "Pothole", "a@x.com")
	h.createIssue(t, "Garbage", "b@x.com")

	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodGet, "/my-issues", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, "/my-issues?email=b@x.com", "a@x.com", nil).Code)

	w := h.do(t, http.MethodGet, "/my-issues?email=a@x.com", "a@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]models.Issue](t, w)
	require.Len(t, mine, 1)
	assert.Equal(t, "Pothole", mine[0].Title)
}

func TestTimelineRequiresStaff(t *testing.T) {
	h := newHarness(t)
	id := h.createIssue(t, "Pothole", "a@x.com")
	body := gin.H{"status": "in-progress", "message": "On it"}

	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodPatch, "/issues/"+id+"/timeline", "", body).Code)
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodPatch, "/issues/"+id+"/timeline", "a@x.com", body).Code)

	w := h.do(t, http.MethodPatch, "/issues/"+id+"/timeline", "s@x.com", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	issue := decode[models.Issue](t, w)
	assert.Equal(t, models.StatusInProgress, issue.Status)
	require.Len(t, issue.Timeline, 2)
	assert.Equal(t, models.Actor{Role: models.RoleStaff, Email: "s@x.com"}, issue.Timeline[1].UpdatedBy)
}

func TestBoostFlow(t *testing.T) {
	h := newHarness(t)
	id := h.createIssue(t, "Pothole", "a@x.com")

	h.gateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
		Return(&payments.Session{ID: "cs_1", URL: "https://checkout.test/cs_1"}, nil)
	w := h.do(t, http.MethodPost, "/create-checkout-session", "", gin.H{"issueId": id, "issueTitle": "Pothole", "email": "a@x.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"sessionUrl":"https://checkout.test/cs_1"}`, w.Body.String())

	h.gateway.EXPECT().GetSession(gomock.Any(), "cs_1").Return(&payments.Session{
		ID:            "cs_1",
		PaymentStatus: payments.StatusPaid,
		TransactionID: "pi_1",
		AmountTotal:   10000,
		Currency:      "bdt",
		Metadata:      map[string]string{"issueId": id, "email": "a@x.com", "trackingId": "trk"},
	}, nil).Times(2)

	w = h.do(t, http.MethodPatch, "/payment-success?session_id=cs_1", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[models.ReconcileResult](t, w)
	assert.True(t, first.Success)
	assert.EqualValues(t, 1, first.Modified)
	assert.Equal(t, "trk", first.TrackingID)

	w = h.do(t, http.MethodPatch, "/payment-success?session_id=cs_1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.ReconcileResult](t, w).AlreadyApplied)
	assert.Equal(t, 1, h.ledger.Len())

	issue := decode[models.Issue](t, h.do(t, http.MethodGet, "/issues/"+id, "", nil))
	assert.Equal(t, models.PriorityHigh, issue.Priority)
	assert.Equal(t, models.PaymentStatusPaid, issue.PaymentStatus)
	assert.Len(t, issue.Timeline, 2)

	w = h.do(t, http.MethodGet, "/payments", "a@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Payment](t, w), 1)
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, "/payments?email=z@x.com", "a@x.com", nil).Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/payments?email=a@x.com", "admin@x.com", nil).Code)
}

func TestPaymentCallbackErrors(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPatch, "/payment-success", "", nil).Code)

	h.gateway.EXPECT().GetSession(gomock.Any(), "cs_gone").Return(nil, errors.New("resource_missing"))
	w := h.do(t, http.MethodPatch, "/premuim-success?session_id=cs_gone", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Something went wrong"}`, w.Body.String())

	h.gateway.EXPECT().GetSession(gomock.Any(), "cs_open").Return(&payments.Session{ID: "cs_open", PaymentStatus: "unpaid", TransactionID: "pi_open"}, nil)
	w = h.do(t, http.MethodPatch, "/premium-success?session_id=cs_open", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[models.ReconcileResult](t, w).Success)
	assert.Equal(t, 0, h.ledger.Len())
}

func TestUpvoteRoutes(t *testing.T) {
	h := newHarness(t)
	id := h.createIssue(t, "Pothole", "a@x.com")

	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodPost, "/upvotes", "b@x.com", gin.H{"issueId": id, "email": "c@x.com"}).Code)
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodPost, "/upvotes", "a@x.com", gin.H{"issueId": id, "email": "a@x.com"}).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, "/upvotes", "b@x.com", gin.H{"issueId": id}).Code)
	assert.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/upvotes", "b@x.com", gin.H{"issueId": id, "email": "b@x.com"}).Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodPost, "/upvotes", "b@x.com", gin.H{"issueId": id, "email": "b@x.com"}).Code)

	w := h.do(t, http.MethodGet, "/upvotes/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Upvote](t, w), 1)
}

func TestUpvoteRoutes_EmailCase(t *testing.T) {
	h := newHarness(t)
	id := h.createIssue(t, "Pothole", "a@x.com")

	var codes []int
	for _, email := range []string{"b@x.com", "B@x.com", "b@X.com", "B@X.COM"} {
		codes = append(codes, h.do(t, http.MethodPost, "/upvotes", "b@x.com", gin.H{"issueId": id, "email": email}).Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusOK, http.StatusOK, http.StatusOK}, codes)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodPost, "/upvotes", "B@X.com", gin.H{"issueId": id, "email": "b@x.com"}).Code)

	upvotes := decode[[]models.Upvote](t, h.do(t, http.MethodGet, "/upvotes/"+id, "", nil))
	require.Len(t, upvotes, 1)
	assert.Equal(t, "b@x.com", upvotes[0].Email)

	issue := decode[models.Issue](t, h.do(t, http.MethodGet, "/issues/"+id, "", nil))
	assert.EqualValues(t, 1, issue.UpvoteCount)

	// The reporter cannot upvote their own issue under another casing either.
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodPost, "/upvotes", "A@X.com", gin.H{"issueId": id, "email": "a@x.com"}).Code)
}

func TestUserAndStaffRoutes(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodPost, "/users", "", gin.H{"name": "A", "email": "a@x.com"})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = h.do(t, http.MethodPost, "/users", "", gin.H{"name": "A", "email": "a@x.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, "/users", "", gin.H{"name": "no email"}).Code)

	w = h.do(t, http.MethodGet, "/users/s@x.com/role", "", nil)
	assert.JSONEq(t, `{"role":"staff"}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, "/users", "a@x.com", nil).Code)
	w = h.do(t, http.MethodGet, "/users", "admin@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decode[[]models.User](t, w)
	assert.Len(t, users, 2)

	var citizenID string
	for _, u := range users {
		if u.Email == "a@x.com" {
			citizenID = u.ID.Hex()
		}
	}
	w = h.do(t, http.MethodPatch, "/users/"+citizenID, "admin@x.com", gin.H{"accountStatus": "blocked"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodPost, "/sttafs", "a@x.com", gin.H{"email": "n@x.com"}).Code)
	assert.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/sttafs", "admin@x.com", gin.H{"email": "n@x.com", "district": "Dhaka"}).Code)
	assert.Equal(t, http.StatusConflict, h.do(t, http.MethodPost, "/staffs", "admin@x.com", gin.H{"email": "n@x.com"}).Code)

	w = h.do(t, http.MethodGet, "/sttafs?district=Dhaka", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Staff](t, w), 1)
}

func TestDashboardRoutes(t *testing.T) {
	h := newHarness(t)
	h.createIssue(t, "Pothole", "a@x.com")

	w := h.do(t, http.MethodGet, "/dashboard/stats", "a@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[models.DashboardStats](t, w)
	assert.EqualValues(t, 1, stats.TotalIssues)
	assert.EqualValues(t, 1, stats.StatusCounts["pending"])

	w = h.do(t, http.MethodGet, "/dashboard/stats", "nobody@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats = decode[models.DashboardStats](t, w)
	assert.Zero(t, stats.TotalIssues)
	assert.Zero(t, stats.TotalPayments)

	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, "/adminDashboard/stats", "a@x.com", nil).Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/adminDashboard/stats", "admin@x.com", nil).Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/staffDashboard/stats", "s@x.com", nil).Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/latestPayments", "admin@x.com", nil).Code)
	assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, "/latestPayments", "s@x.com", nil).Code)
}

func TestReferenceAndHealthRoutes(t *testing.T) {
	h := newHarness(t)

	w := h.do(t, http.MethodGet, "/districtbyRegion", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.DistrictRegion](t, w), 1)

	w = h.do(t, http.MethodGet, "/features", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/", "", nil).Code)
	assert.JSONEq(t, `{"message":"pong"}`, h.do(t, http.MethodGet, "/ping", "", nil).Body.String())
	assert.NotEmpty(t, h.do(t, http.MethodGet, "/ping", "", nil).Header().Get("X-Trace-ID"))

	// No local login without the local identity provider.
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "a@x.com", "password": "x"}).Code)
}
