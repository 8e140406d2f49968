package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/internal/data/repository"
	"smart-dine/pkg/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory repositories. Each embeds its interface so methods a test does
// not exercise panic instead of silently returning zero values.

type memUsers struct {
	repository.UserRepository
	mu    sync.Mutex
	byID  map[uuid.UUID]*entity.User
	login map[uuid.UUID]int
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{byID: map[uuid.UUID]*entity.User{}, login: map[uuid.UUID]int{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[user.ID] = user
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[user.ID] = user
	return nil
}

func (m *memUsers) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[id].PasswordHash = hash
	return nil
}

func (m *memUsers) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.login[id]++
	return nil
}

type memProfiles struct {
	repository.ProfileRepository
	byUser map[uuid.UUID]*entity.Profile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{byUser: map[uuid.UUID]*entity.Profile{}}
}

func (m *memProfiles) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Profile, error) {
	return m.byUser[userID], nil
}

func (m *memProfiles) GetOrCreate(_ context.Context, userID uuid.UUID) (*entity.Profile, error) {
	if p, ok := m.byUser[userID]; ok {
		return p, nil
	}
	p := &entity.Profile{UserID: userID}
	m.byUser[userID] = p
	return p, nil
}

func (m *memProfiles) SetEmailVerified(_ context.Context, userID uuid.UUID, verified bool) error {
	p, _ := m.GetOrCreate(context.Background(), userID)
	p.EmailVerified = verified
	return nil
}

type memSessions struct {
	repository.SessionRepository
	sessions []*entity.Session
	now      func() time.Time
}

func (m *memSessions) Create(_ context.Context, session *entity.Session) error {
	m.sessions = append(m.sessions, session)
	return nil
}

func (m *memSessions) FindActiveByUser(_ context.Context, userID uuid.UUID) (*entity.Session, error) {
	now := time.Now()
	if m.now != nil {
		now = m.now()
	}
	for _, s := range m.sessions {
		if s.UserID == userID && s.ExpiresAt.After(now) {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memSessions) Delete(_ context.Context, token uuid.UUID) error {
	kept := m.sessions[:0]
	for _, s := range m.sessions {
		if s.Token != token {
			kept = append(kept, s)
		}
	}
	m.sessions = kept
	return nil
}

func (m *memSessions) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	kept := m.sessions[:0]
	for _, s := range m.sessions {
		if s.UserID != userID {
			kept = append(kept, s)
		}
	}
	m.sessions = kept
	return nil
}

type memVerificationTokens struct {
	repository.VerificationTokenRepository
	byUser map[uuid.UUID]*entity.EmailVerificationToken
}

func newMemVerificationTokens() *memVerificationTokens {
	return &memVerificationTokens{byUser: map[uuid.UUID]*entity.EmailVerificationToken{}}
}

func (m *memVerificationTokens) Create(_ context.Context, token *entity.EmailVerificationToken) error {
	if _, ok := m.byUser[token.UserID]; ok {
		return repository.ErrDuplicate
	}
	m.byUser[token.UserID] = token
	return nil
}

func (m *memVerificationTokens) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.EmailVerificationToken, error) {
	return m.byUser[userID], nil
}

func (m *memVerificationTokens) FindByToken(_ context.Context, value uuid.UUID) (*entity.EmailVerificationToken, error) {
	for _, t := range m.byUser {
		if t.Token == value {
			return t, nil
		}
	}
	return nil, nil
}

func (m *memVerificationTokens) MarkVerified(_ context.Context, id uuid.UUID) error {
	for _, t := range m.byUser {
		if t.ID == id {
			t.IsVerified = true
		}
	}
	return nil
}

func (m *memVerificationTokens) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	delete(m.byUser, userID)
	return nil
}

type memResetTokens struct {
	repository.ResetTokenRepository
	tokens []*entity.PasswordResetToken
}

func (m *memResetTokens) Create(_ context.Context, token *entity.PasswordResetToken) error {
	m.tokens = append(m.tokens, token)
	return nil
}

func (m *memResetTokens) FindByToken(_ context.Context, value uuid.UUID) (*entity.PasswordResetToken, error) {
	for _, t := range m.tokens {
		if t.Token == value {
			return t, nil
		}
	}
	return nil, nil
}

func (m *memResetTokens) MarkUsed(_ context.Context, id uuid.UUID) (bool, error) {
	for _, t := range m.tokens {
		if t.ID == id {
			if t.IsUsed {
				return false, nil
			}
			t.IsUsed = true
			return true, nil
		}
	}
	return false, nil
}

func (m *memResetTokens) DeleteUnusedByUserID(_ context.Context, userID uuid.UUID) error {
	kept := m.tokens[:0]
	for _, t := range m.tokens {
		if t.UserID != userID || t.IsUsed {
			kept = append(kept, t)
		}
	}
	m.tokens = kept
	return nil
}

type memOrders struct {
	repository.OrderRepository
	byID map[uuid.UUID]*entity.Order
}

func (m *memOrders) Create(_ context.Context, order *entity.Order) error {
	m.byID[order.ID] = order
	return nil
}

func (m *memOrders) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return m.byID[id], nil
}

func (m *memOrders) UpdateStatus(_ context.Context, order *entity.Order) error {
	m.byID[order.ID] = order
	return nil
}

type memReservations struct {
	repository.ReservationRepository
	byID    map[uuid.UUID]*entity.Reservation
	updates int
}

func (m *memReservations) Create(_ context.Context, r *entity.Reservation) error {
	m.byID[r.ID] = r
	return nil
}

func (m *memReservations) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (m *memReservations) Update(_ context.Context, r *entity.Reservation) error {
	m.updates++
	m.byID[r.ID] = r
	return nil
}

type memCategories struct {
	repository.CategoryRepository
	byID      map[uuid.UUID]*entity.Category
	listCalls int
	createErr error
}

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.byID[c.ID] = c
	return nil
}

func (m *memCategories) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	return m.byID[id], nil
}

func (m *memCategories) FindAll(_ context.Context, activeOnly bool) ([]*entity.Category, error) {
	m.listCalls++
	var out []*entity.Category
	for _, c := range m.byID {
		if !activeOnly || c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCategories) Update(_ context.Context, c *entity.Category) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCategories) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

// memMenuItems keeps the last filter it was asked to list with.
type memMenuItems struct {
	repository.MenuItemRepository
	byID       map[uuid.UUID]*entity.MenuItem
	lastFilter entity.MenuFilter
}

func (m *memMenuItems) add(name, price string, available bool) *entity.MenuItem {
	item := &entity.MenuItem{
		Base:        entity.NewBase(time.Now()),
		Name:        name,
		Price:       decimal.RequireFromString(price),
		IsAvailable: available,
	}
	m.byID[item.ID] = item
	return item
}

func (m *memMenuItems) Create(_ context.Context, item *entity.MenuItem) error {
	m.byID[item.ID] = item
	return nil
}

func (m *memMenuItems) FindByID(_ context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	return m.byID[id], nil
}

func (m *memMenuItems) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.MenuItem, error) {
	found := map[uuid.UUID]*entity.MenuItem{}
	for _, id := range ids {
		if item, ok := m.byID[id]; ok {
			found[id] = item
		}
	}
	return found, nil
}

func (m *memMenuItems) FindAll(_ context.Context, filter entity.MenuFilter) ([]*entity.MenuItem, error) {
	m.lastFilter = filter
	var out []*entity.MenuItem
	for _, item := range m.byID {
		if filter.IsAvailable != nil && item.IsAvailable != *filter.IsAvailable {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (m *memMenuItems) Update(_ context.Context, item *entity.MenuItem) error {
	m.byID[item.ID] = item
	return nil
}

func (m *memMenuItems) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

// recordingNotifier captures the tokens it was asked to mail.
type recordingNotifier struct {
	ok           bool
	verification []uuid.UUID
	reset        []uuid.UUID
}

func (n *recordingNotifier) SendVerification(_ context.Context, _ *entity.User, token uuid.UUID) bool {
	n.verification = append(n.verification, token)
	return n.ok
}

func (n *recordingNotifier) SendPasswordReset(_ context.Context, _ *entity.User, token uuid.UUID) bool {
	n.reset = append(n.reset, token)
	return n.ok
}

type stubGateway struct {
	verifies bool
	event    *payment.Event
	err      error
	checkout payment.CheckoutParams
}

func (g *stubGateway) CreateCheckoutSession(_ context.Context, p payment.CheckoutParams) (*payment.CheckoutSession, error) {
	g.checkout = p
	if g.err != nil {
		return nil, g.err
	}
	return &payment.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func (g *stubGateway) CreatePaymentIntent(_ context.Context, _ payment.IntentParams) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return "pi_secret", nil
}

func (g *stubGateway) GetSessionStatus(_ context.Context, _ string) (*payment.SessionStatus, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &payment.SessionStatus{PaymentStatus: "paid"}, nil
}

func (g *stubGateway) ParseWebhook(_ []byte, _ string) (*payment.Event, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.event, nil
}

func (g *stubGateway) VerifiesWebhooks() bool {
	return g.verifies
}

type memRepo struct {
	users        *memUsers
	profiles     *memProfiles
	sessions     *memSessions
	verification *memVerificationTokens
	reset        *memResetTokens
	orders       *memOrders
	reservations *memReservations
	categories   *memCategories
	menuItems    *memMenuItems
}

func newMemRepo(users ...*entity.User) (*repository.Repository, *memRepo) {
	m := &memRepo{
		users:        newMemUsers(users...),
		profiles:     newMemProfiles(),
		sessions:     &memSessions{},
		verification: newMemVerificationTokens(),
		reset:        &memResetTokens{},
		orders:       &memOrders{byID: map[uuid.UUID]*entity.Order{}},
		reservations: &memReservations{byID: map[uuid.UUID]*entity.Reservation{}},
		categories:   &memCategories{byID: map[uuid.UUID]*entity.Category{}},
		menuItems:    &memMenuItems{byID: map[uuid.UUID]*entity.MenuItem{}},
	}
	return &repository.Repository{
		User:              m.users,
		Profile:           m.profiles,
		Session:           m.sessions,
		VerificationToken: m.verification,
		ResetToken:        m.reset,
		Order:             m.orders,
		Reservation:       m.reservations,
		Category:          m.categories,
		MenuItem:          m.menuItems,
	}, m
}
