package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coffee-reservation/internal/data/entity"
	"coffee-reservation/internal/domain"
	"coffee-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	// CreateWithinCapacity inserts the reservation only if the slot's
	// capacity sum still permits it, atomically under a per-slot lock.
	CreateWithinCapacity(ctx context.Context, reservation *entity.Reservation, capacity int) error

	FindByID(ctx context.Context, id int64) (*entity.Reservation, error)
	FindByContact(ctx context.Context, phone, email string) ([]*entity.Reservation, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Reservation, error)
	Delete(ctx context.Context, id int64) error

	// Business queries
	SumPartySizeByDate(ctx context.Context, date string) (map[string]int, error)
	UpdateStatus(ctx context.Context, id int64, status entity.ReservationStatus) (*entity.Reservation, error)
	ConfirmPayment(ctx context.Context, id int64) (*entity.Reservation, error)
	Stats(ctx context.Context) (*entity.ReservationStats, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, name, phone, email, date, time, party_size,
	       coffee_id, coffee_name, coffee_price, total_amount, notes,
	       status, payment_time, created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var r entity.Reservation
	var date time.Time
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Phone,
		&r.Email,
		&date,
		&r.Time,
		&r.PartySize,
		&r.CoffeeID,
		&r.CoffeeName,
		&r.CoffeePrice,
		&r.TotalAmount,
		&r.Notes,
		&r.Status,
		&r.PaymentTime,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Date = date.Format("2006-01-02")
	return &r, nil
}

func (r *reservationRepository) CreateWithinCapacity(ctx context.Context, reservation *entity.Reservation, capacity int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize concurrent bookings for the same (date, time) pair.
	// The slot has no parent row to lock, so take an advisory lock
	// keyed on the pair for the duration of the transaction.
	lockKey := reservation.Date + "|" + reservation.Time
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return fmt.Errorf("acquire slot lock %s: %w", lockKey, err)
	}

	var booked int
	sumQuery := `
		SELECT COALESCE(SUM(party_size), 0)
		FROM reservations
		WHERE date = $1 AND time = $2 AND status <> 'cancelled'
	`
	if err := tx.QueryRow(ctx, sumQuery, reservation.Date, reservation.Time).Scan(&booked); err != nil {
		return fmt.Errorf("sum party size for %s: %w", lockKey, err)
	}

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

	insertQuery := `
		INSERT INTO reservations (name, phone, email, date, time, party_size,
		                          coffee_id, coffee_name, coffee_price, total_amount, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, insertQuery,
		reservation.Name,
		reservation.Phone,
		reservation.Email,
		reservation.Date,
		reservation.Time,
		reservation.PartySize,
		reservation.CoffeeID,
		reservation.CoffeeName,
		reservation.CoffeePrice,
		reservation.TotalAmount,
		reservation.Notes,
		reservation.Status,
	).Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to insert reservation",
			zap.Error(err),
			zap.String("date", reservation.Date),
			zap.String("time", reservation.Time),
		)
		return fmt.Errorf("insert reservation: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *reservationRepository) FindByID(ctx context.Context, id int64) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.Int64("reservation_id", id),
		)
		return nil, fmt.Errorf("find reservation by ID %d: %w", id, err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindByContact(ctx context.Context, phone, email string) ([]*entity.Reservation, error) {
	if phone == "" && email == "" {
		return nil, domain.ErrContactRequired
	}

	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE ($1 <> '' AND phone = $1) OR ($2 <> '' AND email = $2)
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, phone, email)
	if err != nil {
		r.log.Error("Failed to find reservations by contact",
			zap.Error(err),
			zap.String("phone", phone),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find reservations by contact: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (r *reservationRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to list recent reservations",
			zap.Error(err),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("list recent reservations: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

func (r *reservationRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reservations WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.Int64("reservation_id", id),
		)
		return fmt.Errorf("delete reservation %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}

	r.log.Info("Reservation deleted", zap.Int64("reservation_id", id))
	return nil
}

// SumPartySizeByDate returns, per slot label, the headcount of
// non-cancelled reservations on the date. Slots with no bookings
// are absent from the map.
func (r *reservationRepository) SumPartySizeByDate(ctx context.Context, date string) (map[string]int, error) {
	query := `
		SELECT time, SUM(party_size) AS total_people
		FROM reservations
		WHERE date = $1 AND status <> 'cancelled'
		GROUP BY time
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to sum party sizes",
			zap.Error(err),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("sum party sizes for %s: %w", date, err)
	}
	defer rows.Close()

	booked := make(map[string]int)
	for rows.Next() {
		var slot string
		var total int
		if err := rows.Scan(&slot, &total); err != nil {
			return nil, fmt.Errorf("scan slot sum row: %w", err)
		}
		booked[slot] = total
	}

	return booked, rows.Err()
}

// UpdateStatus is an unconditional overwrite; transition legality is
// the workflow's responsibility.
func (r *reservationRepository) UpdateStatus(ctx context.Context, id int64, status entity.ReservationStatus) (*entity.Reservation, error) {
	query := `
		UPDATE reservations
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reservationColumns

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.Int64("reservation_id", id),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("update reservation %d status to %s: %w", id, string(status), err)
	}

	return reservation, nil
}

// ConfirmPayment flips a pending reservation to confirmed and stamps
// payment_time. Returns nil when no pending row matched.
func (r *reservationRepository) ConfirmPayment(ctx context.Context, id int64) (*entity.Reservation, error) {
	query := `
		UPDATE reservations
		SET status = 'confirmed', payment_time = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + reservationColumns

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to confirm payment",
			zap.Error(err),
			zap.Int64("reservation_id", id),
		)
		return nil, fmt.Errorf("confirm payment for reservation %d: %w", id, err)
	}

	return reservation, nil
}

func (r *reservationRepository) Stats(ctx context.Context) (*entity.ReservationStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM reservations) AS total,
			(SELECT COUNT(*) FROM reservations WHERE date = CURRENT_DATE) AS today,
			(SELECT COALESCE(SUM(total_amount), 0) FROM reservations
			 WHERE status IN ('confirmed', 'completed')) AS revenue,
			(SELECT COUNT(*) FROM reservations WHERE status = 'pending') AS pending
	`

	var stats entity.ReservationStats
	err := r.db.QueryRow(ctx, query).Scan(&stats.Total, &stats.Today, &stats.Revenue, &stats.Pending)
	if err != nil {
		r.log.Error("Failed to aggregate reservation stats", zap.Error(err))
		return nil, fmt.Errorf("aggregate reservation stats: %w", err)
	}

	return &stats, nil
}

func collectReservations(rows pgx.Rows) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}
	return reservations, rows.Err()
}
