package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"coffee-reservation/internal/data/entity"
	"coffee-reservation/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// fakeReservationRepo is an in-memory stand-in for the Postgres
// reservation repository. The mutex gives it the same atomicity the
// real implementation gets from its per-slot advisory lock.
type fakeReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations map[int64]*entity.Reservation
	failWith     error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[int64]*entity.Reservation)}
}

func (f *fakeReservationRepo) sumSlotLocked(date, slot string) int {
	total := 0
	for _, r := range f.reservations {
		if r.Date == date && r.Time == slot && r.Status.Counted() {
			total += r.PartySize
		}
	}
	return total
}

func (f *fakeReservationRepo) CreateWithinCapacity(ctx context.Context, reservation *entity.Reservation, capacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return f.failWith
	}

	booked := f.sumSlotLocked(reservation.Date, reservation.Time)
	available := capacity - booked
	if available < 0 {
		available = 0
	}
	if reservation.PartySize > available {
		reason := fmt.Sprintf("Only %d spots available for this time slot", available)
		if available == 0 {
			reason = "This time slot is fully booked"
		}
		return &domain.AdmissionError{Reason: reason, AvailableSpots: available}
	}

	f.nextID++
	reservation.ID = f.nextID
	reservation.CreatedAt = time.Now()
	reservation.UpdatedAt = reservation.CreatedAt

	stored := *reservation
	f.reservations[reservation.ID] = &stored
	return nil
}

func (f *fakeReservationRepo) FindByID(ctx context.Context, id int64) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reservations[id]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReservationRepo) FindByContact(ctx context.Context, phone, email string) ([]*entity.Reservation, error) {
	if phone == "" && email == "" {
		return nil, domain.ErrContactRequired
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Reservation
	for _, r := range f.reservations {
		phoneMatch := phone != "" && r.Phone == phone
		emailMatch := email != "" && r.Email != nil && *r.Email == email
		if phoneMatch || emailMatch {
			copied := *r
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeReservationRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Reservation
	for _, r := range f.reservations {
		copied := *r
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeReservationRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.reservations[id]; !ok {
		return domain.ErrReservationNotFound
	}
	delete(f.reservations, id)
	return nil
}

func (f *fakeReservationRepo) SumPartySizeByDate(ctx context.Context, date string) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}

	booked := make(map[string]int)
	for _, r := range f.reservations {
		if r.Date == date && r.Status.Counted() {
			booked[r.Time] += r.PartySize
		}
	}
	return booked, nil
}

func (f *fakeReservationRepo) UpdateStatus(ctx context.Context, id int64, status entity.ReservationStatus) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reservations[id]
	if !ok {
		return nil, nil
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	copied := *r
	return &copied, nil
}

func (f *fakeReservationRepo) ConfirmPayment(ctx context.Context, id int64) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reservations[id]
	if !ok || r.Status != entity.ReservationStatusPending {
		return nil, nil
	}
	now := time.Now()
	r.Status = entity.ReservationStatusConfirmed
	r.PaymentTime = &now
	r.UpdatedAt = now
	copied := *r
	return &copied, nil
}

func (f *fakeReservationRepo) Stats(ctx context.Context) (*entity.ReservationStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	today := time.Now().Format("2006-01-02")
	var stats entity.ReservationStats
	for _, r := range f.reservations {
		stats.Total++
		if r.Date == today {
			stats.Today++
		}
		if r.Status == entity.ReservationStatusConfirmed || r.Status == entity.ReservationStatusCompleted {
			stats.Revenue += r.TotalAmount
		}
		if r.Status == entity.ReservationStatusPending {
			stats.Pending++
		}
	}
	return &stats, nil
}

// fakeCoffeeRepo is an in-memory catalog keyed by slug.
type fakeCoffeeRepo struct {
	mu      sync.Mutex
	options map[string]*entity.CoffeeOption
}

func newFakeCoffeeRepo(options ...*entity.CoffeeOption) *fakeCoffeeRepo {
	f := &fakeCoffeeRepo{options: make(map[string]*entity.CoffeeOption)}
	for _, option := range options {
		stored := *option
		f.options[option.ID] = &stored
	}
	return f
}

func (f *fakeCoffeeRepo) Create(ctx context.Context, option *entity.CoffeeOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.options[option.ID]; ok {
		return &pgconn.PgError{Code: "23505", ConstraintName: "coffee_options_pkey"}
	}
	option.IsActive = true
	option.CreatedAt = time.Now()
	option.UpdatedAt = option.CreatedAt
	stored := *option
	f.options[option.ID] = &stored
	return nil
}

func (f *fakeCoffeeRepo) FindActive(ctx context.Context) ([]*entity.CoffeeOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.CoffeeOption
	for _, option := range f.options {
		if option.IsActive {
			copied := *option
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func (f *fakeCoffeeRepo) FindActiveByID(ctx context.Context, id string) (*entity.CoffeeOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	option, ok := f.options[id]
	if !ok || !option.IsActive {
		return nil, nil
	}
	copied := *option
	return &copied, nil
}

func (f *fakeCoffeeRepo) Update(ctx context.Context, option *entity.CoffeeOption) (*entity.CoffeeOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.options[option.ID]
	if !ok {
		return nil, nil
	}
	existing.Name = option.Name
	existing.Price = option.Price
	existing.Description = option.Description
	existing.IsActive = option.IsActive
	existing.UpdatedAt = time.Now()
	copied := *existing
	return &copied, nil
}

func (f *fakeCoffeeRepo) Deactivate(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	option, ok := f.options[id]
	if !ok || !option.IsActive {
		return domain.ErrCoffeeNotFound
	}
	option.IsActive = false
	return nil
}

// captureNotifier records notifications and signals delivery so tests
// can wait for the fire-and-forget goroutine.
type captureNotifier struct {
	mu        sync.Mutex
	delivered []*entity.Reservation
	signal    chan struct{}
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{signal: make(chan struct{}, 16)}
}

func (n *captureNotifier) NotifyReservationCreated(reservation *entity.Reservation) {
	n.mu.Lock()
	n.delivered = append(n.delivered, reservation)
	n.mu.Unlock()
	n.signal <- struct{}{}
}

func (n *captureNotifier) wait(timeout time.Duration) bool {
	select {
	case <-n.signal:
		return true
	case <-time.After(timeout):
		return false
	}
}

// fakeAdminUserRepo holds admin accounts keyed by ID.
type fakeAdminUserRepo struct {
	mu    sync.Mutex
	users map[int64]*entity.AdminUser
}

func newFakeAdminUserRepo(users ...*entity.AdminUser) *fakeAdminUserRepo {
	f := &fakeAdminUserRepo{users: make(map[int64]*entity.AdminUser)}
	for _, user := range users {
		stored := *user
		f.users[user.ID] = &stored
	}
	return f
}

func (f *fakeAdminUserRepo) FindActiveByUsername(ctx context.Context, username string) (*entity.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Username == username && user.IsActive {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminUserRepo) FindByID(ctx context.Context, id int64) (*entity.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeAdminUserRepo) TouchLastLogin(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	now := time.Now()
	user.LastLogin = &now
	return nil
}

func (f *fakeAdminUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// fakeSessionRepo maps session tokens to admin users.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.AdminSession
	admins   *fakeAdminUserRepo
}

func newFakeSessionRepo(admins *fakeAdminUserRepo) *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.AdminSession), admins: admins}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.AdminSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	session.ID = int64(len(f.sessions) + 1)
	session.CreatedAt = time.Now()
	stored := *session
	f.sessions[session.SessionToken.String()] = &stored
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.AdminUser, error) {
	f.mu.Lock()
	session, ok := f.sessions[token]
	f.mu.Unlock()

	if !ok || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return f.admins.FindByID(ctx, session.UserID)
}

func (f *fakeSessionRepo) Delete(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionRepo) CleanExpired(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for token, session := range f.sessions {
		if session.ExpiresAt.Before(time.Now()) {
			delete(f.sessions, token)
		}
	}
	return nil
}
