package requests

import (
	"context"
	"errors"
	"testing"
	"time"

	"equiptrack/internal/domain"
	"equiptrack/internal/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock store
type MockRequestStore struct {
	mock.Mock
}

func (m *MockRequestStore) CreateRequest(ctx context.Context, r *domain.EquipmentRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestStore) UpdateRequestStatus(ctx context.Context, id string, status domain.RequestStatus, returnDate *time.Time) error {
	args := m.Called(ctx, id, status, returnDate)
	return args.Error(0)
}

func (m *MockRequestStore) UpdateEquipment(ctx context.Context, id string, p domain.EquipmentPatch) error {
	args := m.Called(ctx, id, p)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyRequestSubmitted(ctx context.Context, req domain.EquipmentRequest) {
	m.Called(ctx, req)
}

func (m *MockNotifier) NotifyRequestStatusChanged(ctx context.Context, req domain.EquipmentRequest, from domain.RequestStatus) {
	m.Called(ctx, req, from)
}

type staticSource struct {
	equipment []domain.Equipment
	requests  []domain.EquipmentRequest
}

func (s staticSource) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	return s.equipment, nil
}

func (s staticSource) ListRequests(ctx context.Context) ([]domain.EquipmentRequest, error) {
	return s.requests, nil
}

func (s staticSource) ListUsers(ctx context.Context) ([]domain.User, error) {
	return nil, nil
}

var (
	fixedNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	start    = time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	end      = time.Date(2024, 5, 22, 0, 0, 0, 0, time.UTC)

	admin = domain.Actor{ID: "A1", Name: "Ada Admin", Role: domain.RoleAdmin}
	alice = domain.Actor{ID: "U1", Name: "Alice", Role: domain.RoleUser}
	bob   = domain.Actor{ID: "U2", Name: "Bob", Role: domain.RoleUser}
)

func catalog() []domain.Equipment {
	return []domain.Equipment{
		{ID: "E1", Name: "Drill", Status: domain.EquipmentAvailable, Quantity: 5},
		{ID: "E2", Name: "Projector", Status: domain.EquipmentAvailable, Quantity: 1},
		{ID: "E3", Name: "Oscilloscope", Status: domain.EquipmentMaintenance, Quantity: 4},
	}
}

func pendingRequest(id, equipmentID, userID string, qty int) domain.EquipmentRequest {
	return domain.EquipmentRequest{
		ID:          id,
		EquipmentID: equipmentID,
		UserID:      userID,
		UserName:    "someone",
		RequestDate: fixedNow.Add(-time.Hour),
		StartDate:   start,
		EndDate:     end,
		Status:      domain.RequestPending,
		Purpose:     "site visit",
		Quantity:    qty,
	}
}

func okStore() *MockRequestStore {
	store := new(MockRequestStore)
	store.On("CreateRequest", mock.Anything, mock.Anything).Return(nil)
	store.On("UpdateRequestStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	store.On("UpdateEquipment", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return store
}

func newTestService(t *testing.T, store RequestStore, policy StockPolicy, reqs ...domain.EquipmentRequest) (*Service, *inventory.Repository) {
	t.Helper()
	repo := inventory.New(staticSource{equipment: catalog(), requests: reqs}, nil)
	require.NoError(t, repo.Load(context.Background()))

	svc := NewService(repo, store, nil, policy, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func mustEquipment(t *testing.T, repo *inventory.Repository, id string) domain.Equipment {
	t.Helper()
	eq, ok := repo.EquipmentByID(id)
	require.True(t, ok, "equipment %s", id)
	return eq
}

func TestSubmit_CreatesPendingRequestPerItem(t *testing.T) {
	store := okStore()
	svc, repo := newTestService(t, store, StockGuard)
	before := repo.Equipment()

	result, err := svc.Submit(context.Background(), alice, SubmitRequest{
		Items: []SubmitItem{
			{EquipmentID: "E1", Quantity: 2},
			{EquipmentID: "E2", Quantity: 1},
		},
		Purpose:   "  client shoot ",
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	require.Len(t, result.Requests, 2)
	assert.Empty(t, result.Warnings)

	ids := map[string]bool{}
	for _, r := range result.Requests {
		assert.Equal(t, domain.RequestPending, r.Status)
		assert.Equal(t, "U1", r.UserID)
		assert.Equal(t, "Alice", r.UserName)
		assert.Equal(t, "client shoot", r.Purpose)
		assert.Equal(t, fixedNow, r.RequestDate)
		assert.Equal(t, start, r.StartDate)
		assert.Equal(t, end, r.EndDate)
		assert.Nil(t, r.ReturnDate)
		assert.NotEmpty(t, r.ID)
		ids[r.ID] = true

		stored, ok := repo.RequestByID(r.ID)
		require.True(t, ok)
		assert.Equal(t, r, stored)
	}
	assert.Len(t, ids, 2)
	assert.Equal(t, 2, result.Requests[0].Quantity)
	assert.Equal(t, 1, result.Requests[1].Quantity)

	assert.Equal(t, before, repo.Equipment(), "submission must not move stock")
	store.AssertNumberOfCalls(t, "CreateRequest", 2)
	store.AssertNotCalled(t, "UpdateEquipment", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_Validation(t *testing.T) {
	valid := func() SubmitRequest {
		return SubmitRequest{
			Items:     []SubmitItem{{EquipmentID: "E1", Quantity: 1}},
			Purpose:   "repair job",
			StartDate: start,
			EndDate:   end,
		}
	}

	tests := []struct {
		name   string
		actor  domain.Actor
		modify func(*SubmitRequest)
		want   error
	}{
		{"anonymous", domain.Actor{}, func(*SubmitRequest) {}, domain.ErrUnauthorized},
		{"no items", alice, func(r *SubmitRequest) { r.Items = nil }, domain.ErrValidation},
		{"blank purpose", alice, func(r *SubmitRequest) { r.Purpose = "   " }, domain.ErrValidation},
		{"missing start", alice, func(r *SubmitRequest) { r.StartDate = time.Time{} }, domain.ErrValidation},
		{"end before start", alice, func(r *SubmitRequest) { r.StartDate, r.EndDate = end, start }, domain.ErrValidation},
		{"duplicate equipment", alice, func(r *SubmitRequest) {
			r.Items = []SubmitItem{{EquipmentID: "E1", Quantity: 1}, {EquipmentID: "E1", Quantity: 2}}
		}, domain.ErrValidation},
		{"zero quantity", alice, func(r *SubmitRequest) { r.Items[0].Quantity = 0 }, domain.ErrValidation},
		{"more than stock", alice, func(r *SubmitRequest) { r.Items[0].Quantity = 6 }, domain.ErrValidation},
		{"unknown equipment", alice, func(r *SubmitRequest) { r.Items[0].EquipmentID = "nope" }, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockRequestStore)
			svc, repo := newTestService(t, store, StockGuard)

			in := valid()
			tt.modify(&in)
			_, err := svc.Submit(context.Background(), tt.actor, in)

			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.Requests())
			store.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_SameDayRangeIsValid(t *testing.T) {
	svc, _ := newTestService(t, okStore(), StockGuard)

	_, err := svc.Submit(context.Background(), alice, SubmitRequest{
		Items:     []SubmitItem{{EquipmentID: "E2", Quantity: 1}},
		Purpose:   "demo",
		StartDate: start,
		EndDate:   start,
	})
	assert.NoError(t, err)
}

func TestApproveThenReturn_RestoresStock(t *testing.T) {
	store := okStore()
	svc, repo := newTestService(t, store, StockGuard, pendingRequest("R1", "E1", "U1", 2))

	approved, err := svc.Transition(context.Background(), admin, "R1", domain.RequestApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestApproved, approved.Request.Status)
	require.NotNil(t, approved.Equipment)
	assert.Equal(t, 3, approved.Equipment.Quantity)
	assert.Equal(t, domain.EquipmentAvailable, approved.Equipment.Status)
	assert.Equal(t, 3, mustEquipment(t, repo, "E1").Quantity)

	returned, err := svc.Transition(context.Background(), alice, "R1", domain.RequestReturned)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestReturned, returned.Request.Status)
	require.NotNil(t, returned.Request.ReturnDate)
	assert.Equal(t, fixedNow, *returned.Request.ReturnDate)

	eq := mustEquipment(t, repo, "E1")
	assert.Equal(t, 5, eq.Quantity)
	assert.Equal(t, domain.EquipmentAvailable, eq.Status)

	stored, _ := repo.RequestByID("R1")
	assert.Equal(t, domain.RequestReturned, stored.Status)
	assert.Equal(t, fixedNow.Add(-time.Hour), stored.RequestDate, "request date is immutable")

	store.AssertCalled(t, "UpdateRequestStatus", mock.Anything, "R1", domain.RequestApproved, (*time.Time)(nil))
	store.AssertCalled(t, "UpdateEquipment", mock.Anything, "E1", mock.MatchedBy(func(p domain.EquipmentPatch) bool {
		return p.Quantity != nil && *p.Quantity == 5 && p.Status != nil && *p.Status == domain.EquipmentAvailable
	}))
}

func TestTransition_TableIsComplete(t *testing.T) {
	statuses := []domain.RequestStatus{
		domain.RequestPending, domain.RequestApproved, domain.RequestRejected, domain.RequestReturned,
	}
	allowed := map[[2]domain.RequestStatus]bool{
		{domain.RequestPending, domain.RequestApproved}:  true,
		{domain.RequestPending, domain.RequestRejected}:  true,
		{domain.RequestApproved, domain.RequestReturned}: true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			from, to := from, to
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				req := pendingRequest("R1", "E1", "U1", 1)
				req.Status = from
				svc, repo := newTestService(t, okStore(), StockGuard, req)
				beforeEq := repo.Equipment()

				_, err := svc.Transition(context.Background(), admin, "R1", to)

				assert.Equal(t, allowed[[2]domain.RequestStatus{from, to}], Allowed(from, to))
				if allowed[[2]domain.RequestStatus{from, to}] {
					require.NoError(t, err)
					stored, _ := repo.RequestByID("R1")
					assert.Equal(t, to, stored.Status)
					return
				}
				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
				stored, _ := repo.RequestByID("R1")
				assert.Equal(t, from, stored.Status)
				assert.Equal(t, beforeEq, repo.Equipment())
			})
		}
	}
}

func TestTransition_Authorization(t *testing.T) {
	approvedReq := pendingRequest("R2", "E1", "U1", 1)
	approvedReq.Status = domain.RequestApproved

	tests := []struct {
		name  string
		actor domain.Actor
		id    string
		to    domain.RequestStatus
		want  error
	}{
		{"anonymous", domain.Actor{}, "R1", domain.RequestApproved, domain.ErrUnauthorized},
		{"user cannot approve own", alice, "R1", domain.RequestApproved, domain.ErrForbidden},
		{"user cannot reject", alice, "R1", domain.RequestRejected, domain.ErrForbidden},
		{"other user cannot return", bob, "R2", domain.RequestReturned, domain.ErrForbidden},
		{"owner can return", alice, "R2", domain.RequestReturned, nil},
		{"admin can return", admin, "R2", domain.RequestReturned, nil},
		{"invalid pair wins over role check", alice, "R1", domain.RequestReturned, domain.ErrInvalidTransition},
		{"non-viewer refused before the state table", bob, "R1", domain.RequestReturned, domain.ErrForbidden},
		{"unknown request", admin, "nope", domain.RequestApproved, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := okStore()
			svc, repo := newTestService(t, store, StockGuard, pendingRequest("R1", "E1", "U1", 1), approvedReq)
			before := repo.Equipment()

			_, err := svc.Transition(context.Background(), tt.actor, tt.id, tt.to)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, repo.Equipment())
			store.AssertNotCalled(t, "UpdateRequestStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTransition_HidesStatusFromNonViewers(t *testing.T) {
	approvedReq := pendingRequest("R2", "E1", "U1", 1)
	approvedReq.Status = domain.RequestApproved
	svc, _ := newTestService(t, okStore(), StockGuard, approvedReq)

	for _, to := range []domain.RequestStatus{domain.RequestRejected, domain.RequestApproved, domain.RequestReturned} {
		_, err := svc.Transition(context.Background(), bob, "R2", to)
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.NotErrorIs(t, err, domain.ErrInvalidTransition)
		assert.NotContains(t, err.Error(), string(domain.RequestApproved))
	}
}

func TestTransition_MissingEquipmentFailsClosed(t *testing.T) {
	store := okStore()
	svc, repo := newTestService(t, store, StockGuard, pendingRequest("R1", "gone", "U1", 1))

	_, err := svc.Transition(context.Background(), admin, "R1", domain.RequestApproved)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	stored, _ := repo.RequestByID("R1")
	assert.Equal(t, domain.RequestPending, stored.Status)
	store.AssertNotCalled(t, "UpdateRequestStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDoubleApproval_Guarded(t *testing.T) {
	svc, repo := newTestService(t, okStore(), StockGuard,
		pendingRequest("R1", "E2", "U1", 1),
		pendingRequest("R2", "E2", "U2", 1),
	)

	_, err := svc.Transition(context.Background(), admin, "R1", domain.RequestApproved)
	require.NoError(t, err)
	eq := mustEquipment(t, repo, "E2")
	assert.Equal(t, 0, eq.Quantity)
	assert.Equal(t, domain.EquipmentInUse, eq.Status)

	_, err = svc.Transition(context.Background(), admin, "R2", domain.RequestApproved)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.ErrorIs(t, err, domain.ErrValidation)

	stored, _ := repo.RequestByID("R2")
	assert.Equal(t, domain.RequestPending, stored.Status)
	assert.Equal(t, 0, mustEquipment(t, repo, "E2").Quantity)
}

func TestDoubleApproval_AllowNegative(t *testing.T) {
	svc, repo := newTestService(t, okStore(), StockAllowNegative,
		pendingRequest("R1", "E2", "U1", 1),
		pendingRequest("R2", "E2", "U2", 1),
	)

	_, err := svc.Transition(context.Background(), admin, "R1", domain.RequestApproved)
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), admin, "R2", domain.RequestApproved)
	require.NoError(t, err)

	eq := mustEquipment(t, repo, "E2")
	assert.Equal(t, -1, eq.Quantity)
	assert.Equal(t, domain.EquipmentInUse, eq.Status)
}

func TestReject_LeavesEquipmentUntouched(t *testing.T) {
	store := okStore()
	svc, repo := newTestService(t, store, StockGuard, pendingRequest("R1", "E1", "U1", 3))
	before := repo.Equipment()

	result, err := svc.Transition(context.Background(), admin, "R1", domain.RequestRejected)
	require.NoError(t, err)

	assert.Equal(t, domain.RequestRejected, result.Request.Status)
	assert.Nil(t, result.Equipment)
	assert.Equal(t, before, repo.Equipment())
	store.AssertNotCalled(t, "UpdateEquipment", mock.Anything, mock.Anything, mock.Anything)
}

func TestPersistenceFailure_CommitsLocallyWithWarnings(t *testing.T) {
	dbErr := errors.New("connection refused")
	store := new(MockRequestStore)
	store.On("CreateRequest", mock.Anything, mock.Anything).Return(dbErr)
	store.On("UpdateRequestStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(dbErr)
	store.On("UpdateEquipment", mock.Anything, mock.Anything, mock.Anything).Return(dbErr)

	svc, repo := newTestService(t, store, StockGuard)

	submitted, err := svc.Submit(context.Background(), alice, SubmitRequest{
		Items:     []SubmitItem{{EquipmentID: "E1", Quantity: 2}},
		Purpose:   "offline",
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	require.Len(t, submitted.Warnings, 1)
	assert.Equal(t, "create_request", submitted.Warnings[0].Op)
	assert.ErrorIs(t, submitted.Warnings[0], dbErr)

	id := submitted.Requests[0].ID
	_, ok := repo.RequestByID(id)
	require.True(t, ok, "request kept locally")

	approved, err := svc.Transition(context.Background(), admin, id, domain.RequestApproved)
	require.NoError(t, err)
	require.Len(t, approved.Warnings, 2)
	assert.Equal(t, "update_request_status", approved.Warnings[0].Op)
	assert.Equal(t, "update_equipment", approved.Warnings[1].Op)

	stored, _ := repo.RequestByID(id)
	assert.Equal(t, domain.RequestApproved, stored.Status)
	assert.Equal(t, 3, mustEquipment(t, repo, "E1").Quantity)
}

func TestSubmit_MultiItemPartialFailure(t *testing.T) {
	store := new(MockRequestStore)
	store.On("CreateRequest", mock.Anything, mock.MatchedBy(func(r *domain.EquipmentRequest) bool {
		return r.EquipmentID == "E1"
	})).Return(errors.New("timeout"))
	store.On("CreateRequest", mock.Anything, mock.MatchedBy(func(r *domain.EquipmentRequest) bool {
		return r.EquipmentID == "E2"
	})).Return(nil)

	svc, repo := newTestService(t, store, StockGuard)

	result, err := svc.Submit(context.Background(), bob, SubmitRequest{
		Items:     []SubmitItem{{EquipmentID: "E1", Quantity: 1}, {EquipmentID: "E2", Quantity: 1}},
		Purpose:   "workshop",
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	assert.Len(t, result.Requests, 2)
	assert.Len(t, result.Warnings, 1)
	assert.Len(t, repo.RequestsForUser("U2"), 2)
}

func TestReconcile(t *testing.T) {
	req := domain.EquipmentRequest{Quantity: 2}

	tests := []struct {
		name string
		eq   domain.Equipment
		to   domain.RequestStatus
		want domain.Equipment
	}{
		{"approve leaves some", domain.Equipment{Quantity: 5, Status: domain.EquipmentAvailable}, domain.RequestApproved,
			domain.Equipment{Quantity: 3, Status: domain.EquipmentAvailable}},
		{"approve drains", domain.Equipment{Quantity: 2, Status: domain.EquipmentAvailable}, domain.RequestApproved,
			domain.Equipment{Quantity: 0, Status: domain.EquipmentInUse}},
		{"return frees", domain.Equipment{Quantity: 0, Status: domain.EquipmentInUse}, domain.RequestReturned,
			domain.Equipment{Quantity: 2, Status: domain.EquipmentAvailable}},
		{"reject is a no-op", domain.Equipment{Quantity: 1, Status: domain.EquipmentInUse}, domain.RequestRejected,
			domain.Equipment{Quantity: 1, Status: domain.EquipmentInUse}},
		{"maintenance kept on approve", domain.Equipment{Quantity: 4, Status: domain.EquipmentMaintenance}, domain.RequestApproved,
			domain.Equipment{Quantity: 2, Status: domain.EquipmentMaintenance}},
		{"missing kept on return", domain.Equipment{Quantity: 0, Status: domain.EquipmentMissing}, domain.RequestReturned,
			domain.Equipment{Quantity: 2, Status: domain.EquipmentMissing}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconcile(tt.eq, req, tt.to))
		})
	}
}

func TestQueries(t *testing.T) {
	other := pendingRequest("R2", "E2", "U2", 1)
	other.Status = domain.RequestApproved
	svc, _ := newTestService(t, okStore(), StockGuard, pendingRequest("R1", "E1", "U1", 1), other)

	all, err := svc.Visible(admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.Visible(alice)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "R1", own[0].ID)

	_, err = svc.Visible(domain.Actor{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Get(alice, "R2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.Get(alice, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := svc.Get(bob, "R2")
	require.NoError(t, err)
	assert.Equal(t, "E2", got.EquipmentID)

	forEq, err := svc.ForEquipment(bob, "E1")
	require.NoError(t, err)
	assert.Empty(t, forEq, "bob cannot see alice's request")
	_, err = svc.ForEquipment(admin, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.ForUser(alice, "U2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	forUser, err := svc.ForUser(admin, "U2")
	require.NoError(t, err)
	assert.Len(t, forUser, 1)
}

func TestStats(t *testing.T) {
	approved := pendingRequest("R2", "E2", "U2", 1)
	approved.Status = domain.RequestApproved
	svc, _ := newTestService(t, okStore(), StockGuard, pendingRequest("R1", "E1", "U1", 1), approved)

	stats, err := svc.Stats(admin)
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{TotalEquipment: 3, AvailableEquipment: 2, PendingRequests: 1, ApprovedRequests: 1}, stats)

	stats, err = svc.Stats(alice)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PendingRequests)
	assert.Equal(t, 0, stats.ApprovedRequests)
}

func TestNotifierReceivesEvents(t *testing.T) {
	notifs := new(MockNotifier)
	notifs.On("NotifyRequestSubmitted", mock.Anything, mock.Anything).Return()
	notifs.On("NotifyRequestStatusChanged", mock.Anything, mock.Anything, domain.RequestPending).Return()

	repo := inventory.New(staticSource{equipment: catalog()}, nil)
	require.NoError(t, repo.Load(context.Background()))
	svc := NewService(repo, okStore(), notifs, StockGuard, nil)

	result, err := svc.Submit(context.Background(), alice, SubmitRequest{
		Items:     []SubmitItem{{EquipmentID: "E1", Quantity: 1}},
		Purpose:   "event",
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), admin, result.Requests[0].ID, domain.RequestRejected)
	require.NoError(t, err)

	notifs.AssertNumberOfCalls(t, "NotifyRequestSubmitted", 1)
	notifs.AssertNumberOfCalls(t, "NotifyRequestStatusChanged", 1)
}

func TestParseStockPolicy(t *testing.T) {
	p, err := ParseStockPolicy("")
	require.NoError(t, err)
	assert.Equal(t, StockGuard, p)

	p, err = ParseStockPolicy("Allow-Negative")
	require.NoError(t, err)
	assert.Equal(t, StockAllowNegative, p)
	assert.Equal(t, "allow-negative", p.String())

	_, err = ParseStockPolicy("yolo")
	assert.Error(t, err)
}
