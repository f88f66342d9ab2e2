package test

import (
	"context"
	"fmt"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/procurement/internal/domain/errors"
	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu       sync.Mutex
	Users    map[string]*model.User
	Outbox   []model.OutboxMessage
	Attempts map[string]int
	Err      error
	next     int
}

// NewUserRepositoryStub constructs stub repository seeded with users.
func NewUserRepositoryStub(users ...model.User) *UserRepositoryStub {
	s := &UserRepositoryStub{Users: make(map[string]*model.User)}
	for i := range users {
		u := users[i]
		if u.ID == "" {
			s.next++
			u.ID = fmt.Sprintf("user-%d", s.next)
		}
		s.Users[u.ID] = &u
	}
	return s
}

func (s *UserRepositoryStub) phoneTaken(phone, exceptID string) bool {
	for id, u := range s.Users {
		if id != exceptID && u.Phone == phone {
			return true
		}
	}
	return false
}

func copyUser(u *model.User) *model.User {
	c := *u
	if u.OTP != nil {
		otp := *u.OTP
		c.OTP = &otp
	}
	return &c
}

// Create registers user unless the phone is taken.
func (s *UserRepositoryStub) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.phoneTaken(user.Phone, "") {
		return &domainErrors.DuplicateError{Field: "phone"}
	}
	s.next++
	user.ID = fmt.Sprintf("user-%d", s.next)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.Users[user.ID] = copyUser(user)
	return nil
}

func (s *UserRepositoryStub) Update(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Users[user.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	if s.phoneTaken(user.Phone, user.ID) {
		return &domainErrors.DuplicateError{Field: "phone"}
	}
	user.UpdatedAt = time.Now()
	s.Users[user.ID] = copyUser(user)
	return nil
}

func (s *UserRepositoryStub) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Users[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Users, id)
	return nil
}

func (s *UserRepositoryStub) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if u, ok := s.Users[id]; ok {
		c := copyUser(u)
		c.OTP = nil
		return c, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.Users {
		if u.Phone == phone {
			c := copyUser(u)
			c.OTP = nil
			return c, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) List(_ context.Context, filter model.UserFilter) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := []model.User{}
	for _, u := range s.Users {
		if filter.Role == "" || u.Role == filter.Role {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (s *UserRepositoryStub) SetOTP(_ context.Context, userID string, challenge model.OTPChallenge, msgs ...model.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.Users[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	u.OTP = &challenge
	s.Outbox = append(s.Outbox, msgs...)
	return nil
}

func (s *UserRepositoryStub) GetByOTPReference(_ context.Context, reference string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.Users {
		if u.OTP != nil && u.OTP.Reference == reference {
			return copyUser(u), nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) RegisterOTPAttempt(_ context.Context, userID, reference string, limit int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	u, ok := s.Users[userID]
	if !ok || u.OTP == nil || u.OTP.Reference != reference {
		return false, nil
	}
	if s.Attempts == nil {
		s.Attempts = make(map[string]int)
	}
	s.Attempts[reference]++
	if s.Attempts[reference] > limit {
		u.OTP = nil
		return false, nil
	}
	return true, nil
}

func (s *UserRepositoryStub) ConsumeOTP(_ context.Context, userID, reference string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	u, ok := s.Users[userID]
	if !ok || u.OTP == nil || u.OTP.Reference != reference {
		return false, nil
	}
	u.OTP = nil
	return true, nil
}

// StatusUpdate records an UpdateStatus call.
type StatusUpdate struct {
	ID     string
	Status model.OrderStatus
}

// OrderRepositoryStub serves any order kind through function overrides.
type OrderRepositoryStub[T any] struct {
	mu sync.Mutex

	CreateFn       func(context.Context, *T) error
	GetFn          func(context.Context, string) (*T, error)
	ListFn         func(context.Context, model.OrderFilter) (model.Page[T], error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) (*T, error)
	AttachBillFn   func(context.Context, string, model.AttachedFile) (*T, error)

	Created       []*T
	Messages      []model.OutboxMessage
	Filters       []model.OrderFilter
	StatusUpdates []StatusUpdate
	Bills         []model.AttachedFile
}

func (s *OrderRepositoryStub[T]) Create(ctx context.Context, order *T, msgs ...model.OutboxMessage) error {
	if s.CreateFn != nil {
		if err := s.CreateFn(ctx, order); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Created = append(s.Created, order)
	s.Messages = append(s.Messages, msgs...)
	return nil
}

func (s *OrderRepositoryStub[T]) GetByID(ctx context.Context, id string) (*T, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub[T]) List(ctx context.Context, filter model.OrderFilter) (model.Page[T], error) {
	s.mu.Lock()
	s.Filters = append(s.Filters, filter)
	s.mu.Unlock()
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return model.Page[T]{Items: []T{}}, nil
}

func (s *OrderRepositoryStub[T]) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, msgs ...model.OutboxMessage) (*T, error) {
	s.mu.Lock()
	s.StatusUpdates = append(s.StatusUpdates, StatusUpdate{ID: id, Status: status})
	s.Messages = append(s.Messages, msgs...)
	s.mu.Unlock()
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub[T]) AttachBill(ctx context.Context, id string, file model.AttachedFile) (*T, error) {
	s.mu.Lock()
	s.Bills = append(s.Bills, file)
	s.mu.Unlock()
	if s.AttachBillFn != nil {
		return s.AttachBillFn(ctx, id, file)
	}
	return nil, domainErrors.ErrNotFound
}

// ClassificationRepositoryStub customises taxonomy storage through overrides.
type ClassificationRepositoryStub struct {
	CreateFatherFn func(context.Context, *model.ClassFather) error
	UpdateFatherFn func(context.Context, *model.ClassFather) error
	DeleteFatherFn func(context.Context, string) error
	GetFatherFn    func(context.Context, string) (*model.ClassFather, error)
	ListFathersFn  func(context.Context, model.CatalogFilter) (model.Page[model.ClassFather], error)
	CreateSonFn    func(context.Context, *model.ClassSon) error
	UpdateSonFn    func(context.Context, *model.ClassSon) error
	DeleteSonFn    func(context.Context, string) error
	GetSonFn       func(context.Context, string) (*model.ClassSon, error)
	ListSonsFn     func(context.Context) ([]model.ClassSon, error)
}

func (s *ClassificationRepositoryStub) CreateFather(ctx context.Context, father *model.ClassFather) error {
	if s.CreateFatherFn != nil {
		return s.CreateFatherFn(ctx, father)
	}
	father.ID = "father-1"
	return nil
}

func (s *ClassificationRepositoryStub) UpdateFather(ctx context.Context, father *model.ClassFather) error {
	if s.UpdateFatherFn != nil {
		return s.UpdateFatherFn(ctx, father)
	}
	return nil
}

func (s *ClassificationRepositoryStub) DeleteFather(ctx context.Context, id string) error {
	if s.DeleteFatherFn != nil {
		return s.DeleteFatherFn(ctx, id)
	}
	return nil
}

func (s *ClassificationRepositoryStub) GetFather(ctx context.Context, id string) (*model.ClassFather, error) {
	if s.GetFatherFn != nil {
		return s.GetFatherFn(ctx, id)
	}
	return &model.ClassFather{ID: id, Sons: []model.ClassSon{}}, nil
}

func (s *ClassificationRepositoryStub) ListFathers(ctx context.Context, filter model.CatalogFilter) (model.Page[model.ClassFather], error) {
	if s.ListFathersFn != nil {
		return s.ListFathersFn(ctx, filter)
	}
	return model.Page[model.ClassFather]{Items: []model.ClassFather{}}, nil
}

func (s *ClassificationRepositoryStub) CreateSon(ctx context.Context, son *model.ClassSon) error {
	if s.CreateSonFn != nil {
		return s.CreateSonFn(ctx, son)
	}
	son.ID = "son-1"
	return nil
}

func (s *ClassificationRepositoryStub) UpdateSon(ctx context.Context, son *model.ClassSon) error {
	if s.UpdateSonFn != nil {
		return s.UpdateSonFn(ctx, son)
	}
	return nil
}

func (s *ClassificationRepositoryStub) DeleteSon(ctx context.Context, id string) error {
	if s.DeleteSonFn != nil {
		return s.DeleteSonFn(ctx, id)
	}
	return nil
}

func (s *ClassificationRepositoryStub) GetSon(ctx context.Context, id string) (*model.ClassSon, error) {
	if s.GetSonFn != nil {
		return s.GetSonFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ClassificationRepositoryStub) ListSons(ctx context.Context) ([]model.ClassSon, error) {
	if s.ListSonsFn != nil {
		return s.ListSonsFn(ctx)
	}
	return []model.ClassSon{}, nil
}

// MaterialRepositoryStub keeps catalog materials in-memory.
type MaterialRepositoryStub struct {
	mu        sync.Mutex
	Materials map[string]*model.Material
	CreateFn  func(context.Context, *model.Material) error
	UpdateFn  func(context.Context, *model.Material) error
	next      int
}

// NewMaterialRepositoryStub seeds the stub with materials.
func NewMaterialRepositoryStub(materials ...model.Material) *MaterialRepositoryStub {
	s := &MaterialRepositoryStub{Materials: make(map[string]*model.Material)}
	for i := range materials {
		m := materials[i]
		s.Materials[m.ID] = &m
	}
	return s
}

func (s *MaterialRepositoryStub) Create(ctx context.Context, material *model.Material) error {
	if s.CreateFn != nil {
		if err := s.CreateFn(ctx, material); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	material.ID = fmt.Sprintf("material-%d", s.next)
	m := *material
	s.Materials[m.ID] = &m
	return nil
}

func (s *MaterialRepositoryStub) Update(ctx context.Context, material *model.Material) error {
	if s.UpdateFn != nil {
		if err := s.UpdateFn(ctx, material); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Materials[material.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	m := *material
	s.Materials[m.ID] = &m
	return nil
}

func (s *MaterialRepositoryStub) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Materials[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Materials, id)
	return nil
}

func (s *MaterialRepositoryStub) GetByID(_ context.Context, id string) (*model.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.Materials[id]; ok {
		c := *m
		return &c, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *MaterialRepositoryStub) ListByIDs(_ context.Context, ids []string) ([]model.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []model.Material{}
	for _, id := range ids {
		if m, ok := s.Materials[id]; ok {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (s *MaterialRepositoryStub) List(_ context.Context, _ model.CatalogFilter) (model.Page[model.Material], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page := model.Page[model.Material]{Items: []model.Material{}}
	for _, m := range s.Materials {
		page.Items = append(page.Items, *m)
	}
	page.Total = len(page.Items)
	page.FilterNum = len(page.Items)
	return page, nil
}

// NotificationRepositoryStub keeps notifications in insertion order.
type NotificationRepositoryStub struct {
	mu    sync.Mutex
	Items []model.Notification
	Err   error
	next  int
}

func (s *NotificationRepositoryStub) Create(_ context.Context, text string) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.next++
	n := model.Notification{ID: fmt.Sprintf("notification-%d", s.next), Text: text, CreatedAt: time.Now()}
	s.Items = append(s.Items, n)
	return &n, nil
}

func (s *NotificationRepositoryStub) GetByID(_ context.Context, id string) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.Items {
		if n.ID == id {
			c := n
			return &c, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *NotificationRepositoryStub) List(_ context.Context) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.Notification, 0, len(s.Items))
	for i := len(s.Items) - 1; i >= 0; i-- {
		result = append(result, s.Items[i])
	}
	return result, nil
}

func (s *NotificationRepositoryStub) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.Items {
		if n.ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *NotificationRepositoryStub) MarkAllShown(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed int64
	for i := range s.Items {
		if !s.Items[i].Shown {
			s.Items[i].Shown = true
			changed++
		}
	}
	return changed, nil
}

// FailedMessage records a MarkFailed call.
type FailedMessage struct {
	ID      int64
	Cause   string
	RetryAt *time.Time
}

// OutboxRepositoryStub hands out queued batches and records outcomes.
type OutboxRepositoryStub struct {
	mu      sync.Mutex
	Batches [][]model.OutboxMessage
	ClaimFn func(context.Context, int) ([]model.OutboxMessage, error)
	Done    []int64
	Failed  []FailedMessage
	Purged  []time.Time
}

func (s *OutboxRepositoryStub) Claim(ctx context.Context, limit int, _ time.Duration) ([]model.OutboxMessage, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Batches) == 0 {
		return nil, nil
	}
	batch := s.Batches[0]
	s.Batches = s.Batches[1:]
	return batch, nil
}

func (s *OutboxRepositoryStub) MarkDone(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Done = append(s.Done, id)
	return nil
}

func (s *OutboxRepositoryStub) MarkFailed(_ context.Context, id int64, cause string, retryAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed = append(s.Failed, FailedMessage{ID: id, Cause: cause, RetryAt: retryAt})
	return nil
}

func (s *OutboxRepositoryStub) PurgeDone(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Purged = append(s.Purged, before)
	return int64(len(s.Done)), nil
}

// Snapshot returns copies of recorded outcomes.
func (s *OutboxRepositoryStub) Snapshot() ([]int64, []FailedMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.Done...), append([]FailedMessage(nil), s.Failed...)
}

// BucketCall records an OrderBuckets or VisitBuckets call.
type BucketCall struct {
	Kind        model.OrderKind
	Group       model.Grouping
	Since       time.Time
	VisitedOnly bool
}

// AnalyticsRepositoryStub returns configured bucket counts.
type AnalyticsRepositoryStub struct {
	mu          sync.Mutex
	Orders      map[model.OrderKind]model.BucketCounts
	Visited     map[model.OrderKind]model.BucketCounts
	VisitCounts model.BucketCounts
	Tally       model.Counts
	Err         error
	Calls       []BucketCall
	Visits      int
}

func (s *AnalyticsRepositoryStub) RecordVisit(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Visits++
	return nil
}

func (s *AnalyticsRepositoryStub) VisitBuckets(_ context.Context, group model.Grouping, since time.Time) (model.BucketCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, BucketCall{Group: group, Since: since})
	if s.Err != nil {
		return nil, s.Err
	}
	return s.VisitCounts, nil
}

func (s *AnalyticsRepositoryStub) OrderBuckets(_ context.Context, kind model.OrderKind, group model.Grouping, since time.Time, visitedOnly bool) (model.BucketCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, BucketCall{Kind: kind, Group: group, Since: since, VisitedOnly: visitedOnly})
	if s.Err != nil {
		return nil, s.Err
	}
	if visitedOnly {
		return s.Visited[kind], nil
	}
	return s.Orders[kind], nil
}

func (s *AnalyticsRepositoryStub) Counts(context.Context) (*model.Counts, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	tally := s.Tally
	return &tally, nil
}

var (
	_ repository.UserRepository               = (*UserRepositoryStub)(nil)
	_ repository.MaterialOrderRepository      = (*OrderRepositoryStub[model.MaterialOrder])(nil)
	_ repository.FinanceOrderRepository       = (*OrderRepositoryStub[model.FinanceOrder])(nil)
	_ repository.QualificationOrderRepository = (*OrderRepositoryStub[model.QualificationOrder])(nil)
	_ repository.RecourseOrderRepository      = (*OrderRepositoryStub[model.RecourseOrder])(nil)
	_ repository.ClassificationRepository     = (*ClassificationRepositoryStub)(nil)
	_ repository.MaterialRepository           = (*MaterialRepositoryStub)(nil)
	_ repository.NotificationRepository       = (*NotificationRepositoryStub)(nil)
	_ repository.OutboxRepository             = (*OutboxRepositoryStub)(nil)
	_ repository.AnalyticsRepository          = (*AnalyticsRepositoryStub)(nil)
)
