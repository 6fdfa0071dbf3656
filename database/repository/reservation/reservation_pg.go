package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"facestudio/database"
	"facestudio/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	activeSlotIndex = "reservations_active_slot_key"

	// dateLockNamespace is the first key of the per-date advisory lock.
	dateLockNamespace int32 = 7301
)

type PgReservationRepo struct {
	pool *pgxpool.Pool
}

func NewPgReservationRepo(pool *pgxpool.Pool) *PgReservationRepo {
	return &PgReservationRepo{pool: pool}
}

const selectReservation = `
	SELECT r.id, r.user_id, r.treatment_id, r.date, r.start_time, r.end_time,
	       r.status, r.notes, r.language, r.created_at, r.updated_at,
	       t.title_hr, t.title_en,
	       u.first_name, u.last_name, u.username, u.email, u.mobile
	FROM reservations r
	JOIN treatments t ON t.id = r.treatment_id
	JOIN users u ON u.id = r.user_id`

func clockParam(c models.ClockTime) pgtype.Time {
	return pgtype.Time{Microseconds: int64(c.Duration() / time.Microsecond), Valid: true}
}

func clockFrom(t pgtype.Time) models.ClockTime {
	return models.ClockTime(t.Microseconds / int64(time.Minute/time.Microsecond))
}

func dateParam(d time.Time) pgtype.Date {
	return pgtype.Date{Time: models.CalendarDate(d), Valid: true}
}

func scanReservation(row pgx.Row) (*models.Reservation, error) {
	var (
		r                 models.Reservation
		date              pgtype.Date
		start, end        pgtype.Time
		status            string
		first, last, user string
	)

	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.TreatmentID,
		&date,
		&start,
		&end,
		&status,
		&r.Notes,
		&r.Language,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.TreatmentTitle.HR,
		&r.TreatmentTitle.EN,
		&first,
		&last,
		&user,
		&r.CustomerEmail,
		&r.CustomerMobile,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	r.Date = models.CalendarDate(date.Time)
	r.StartTime = clockFrom(start)
	r.EndTime = clockFrom(end)
	r.Status = models.ReservationStatus(status)
	customer := models.User{FirstName: first, LastName: last, Username: user}
	r.CustomerName = customer.FullName()
	return &r, nil
}

func collect(rows pgx.Rows) ([]models.Reservation, error) {
	defer rows.Close()
	out := []models.Reservation{}
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (r *PgReservationRepo) ListActiveByDate(ctx context.Context, date time.Time) ([]models.Reservation, error) {
	rows, err := r.pool.Query(ctx, selectReservation+`
		WHERE r.date = $1 AND r.status <> 'cancelled'
		ORDER BY r.start_time`, dateParam(date))
	if err != nil {
		return nil, fmt.Errorf("list reservations by date: %w", err)
	}
	return collect(rows)
}

// lockDate takes the transaction-scoped advisory lock that serializes writes
// which can make reservations on one calendar date overlap.
func lockDate(ctx context.Context, tx pgx.Tx, date time.Time) error {
	day := models.CalendarDate(date)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`,
		dateLockNamespace, int32(day.Unix()/86400)); err != nil {
		return fmt.Errorf("lock reservation date: %w", err)
	}
	return nil
}

// CreateIfAvailable runs the overlap test and the insert in one transaction
// holding an advisory lock on the date, so requests for the same day queue up
// behind each other. The partial unique index stays as a second line.
func (r *PgReservationRepo) CreateIfAvailable(ctx context.Context, res *models.Reservation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reservation insert: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockDate(ctx, tx, res.Date); err != nil {
		return err
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO reservations (user_id, treatment_id, date, start_time, end_time, status, notes, language)
		SELECT $1::bigint, $2::bigint, $3::date, $4::time, $5::time, $6::text, $7::text, $8::text
		WHERE NOT EXISTS (
			SELECT 1 FROM reservations
			WHERE date = $3::date
			  AND status <> 'cancelled'
			  AND start_time < $5::time
			  AND end_time > $4::time
		)
		RETURNING id, created_at, updated_at`,
		res.UserID,
		res.TreatmentID,
		dateParam(res.Date),
		clockParam(res.StartTime),
		clockParam(res.EndTime),
		string(res.Status),
		res.Notes,
		models.NormalizeLang(res.Language),
	)

	err = row.Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	switch {
	case err == nil:
	case errors.Is(err, pgx.ErrNoRows):
		return ErrSlotTaken
	case database.IsUniqueViolation(err, activeSlotIndex):
		return ErrSlotTaken
	default:
		return fmt.Errorf("insert reservation: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reservation insert: %w", err)
	}
	return nil
}

func (r *PgReservationRepo) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	row := r.pool.QueryRow(ctx, selectReservation+` WHERE r.id = $1`, id)
	return scanReservation(row)
}

func (r *PgReservationRepo) ListByUser(ctx context.Context, userID int64) ([]models.Reservation, error) {
	rows, err := r.pool.Query(ctx, selectReservation+`
		WHERE r.user_id = $1
		ORDER BY r.date DESC, r.start_time DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservations by user: %w", err)
	}
	return collect(rows)
}

func (r *PgReservationRepo) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.From != nil {
		where = append(where, "r.date >= "+arg(dateParam(*filter.From)))
	}
	if filter.To != nil {
		where = append(where, "r.date <= "+arg(dateParam(*filter.To)))
	}
	if filter.Status != "" {
		where = append(where, "r.status = "+arg(string(filter.Status)))
	}

	q := selectReservation
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY r.date, r.start_time"
	if filter.Limit > 0 {
		q += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		q += " OFFSET " + arg(filter.Offset)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return collect(rows)
}

func (r *PgReservationRepo) UpdateStatus(ctx context.Context, id int64, status models.ReservationStatus) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reservations SET status = $2, updated_at = now()
		WHERE id = $1`, id, string(status))
	if err != nil {
		if database.IsUniqueViolation(err, activeSlotIndex) {
			return ErrSlotTaken
		}
		return fmt.Errorf("update reservation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReactivateIfAvailable runs under the same date lock as CreateIfAvailable, so a
// booking created meanwhile cannot end up overlapping the restored one.
func (r *PgReservationRepo) ReactivateIfAvailable(ctx context.Context, res *models.Reservation, status models.ReservationStatus) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reservation reactivation: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockDate(ctx, tx, res.Date); err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		UPDATE reservations AS r SET status = $2, updated_at = now()
		WHERE r.id = $1
		  AND r.status = 'cancelled'
		  AND NOT EXISTS (
			SELECT 1 FROM reservations o
			WHERE o.id <> r.id
			  AND o.date = r.date
			  AND o.status <> 'cancelled'
			  AND o.start_time < r.end_time
			  AND o.end_time > r.start_time
		  )
		RETURNING r.updated_at`, res.ID, string(status)).Scan(&res.UpdatedAt)
	switch {
	case err == nil:
	case errors.Is(err, pgx.ErrNoRows):
		// Either the row is gone, it is no longer cancelled, or the slot is taken.
		var current string
		lookup := tx.QueryRow(ctx, `SELECT status FROM reservations WHERE id = $1`, res.ID).Scan(&current)
		if errors.Is(lookup, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if lookup != nil {
			return fmt.Errorf("reactivate reservation: %w", lookup)
		}
		if current != string(models.StatusCancelled) {
			return ErrNotCancelled
		}
		return ErrSlotTaken
	case database.IsUniqueViolation(err, activeSlotIndex):
		return ErrSlotTaken
	default:
		return fmt.Errorf("reactivate reservation: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reservation reactivation: %w", err)
	}
	res.Status = status
	return nil
}

func (r *PgReservationRepo) CompleteEndedBefore(ctx context.Context, date time.Time, at models.ClockTime) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE reservations SET status = 'completed', updated_at = now()
		WHERE status IN ('pending', 'confirmed')
		  AND (date < $1 OR (date = $1 AND end_time <= $2))
		RETURNING id`, dateParam(date), clockParam(at))
	if err != nil {
		return nil, fmt.Errorf("complete reservations: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("complete reservations: %w", err)
	}
	return ids, nil
}
