package inquiryRepo

import (
	"context"
	"fmt"
	"strings"

	"facestudio/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgInquiryRepo struct {
	pool *pgxpool.Pool
}

func NewPgInquiryRepo(pool *pgxpool.Pool) *PgInquiryRepo {
	return &PgInquiryRepo{pool: pool}
}

func (r *PgInquiryRepo) CreateContact(ctx context.Context, c *models.ContactSubmission) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO contact_submissions (first_name, last_name, mobile, email, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		c.FirstName, c.LastName, c.Mobile, c.Email, c.Message,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}
	return nil
}

func (r *PgInquiryRepo) ListContacts(ctx context.Context, unreadOnly bool) ([]models.ContactSubmission, error) {
	q := `SELECT id, first_name, last_name, mobile, email, message, is_read, created_at
		FROM contact_submissions`
	if unreadOnly {
		q += ` WHERE NOT is_read`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ContactSubmission, error) {
		var c models.ContactSubmission
		err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Mobile, &c.Email, &c.Message, &c.IsRead, &c.CreatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	return out, nil
}

func (r *PgInquiryRepo) MarkContactRead(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE contact_submissions SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark contact read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgInquiryRepo) CreateVoucher(ctx context.Context, v *models.GiftVoucher) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO gift_vouchers (
			treatment_id, email_option, recipient_name, personalised_message, from_name,
			purchaser_first_name, purchaser_last_name, purchaser_email, purchaser_mobile,
			recipient_email
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`,
		v.TreatmentID, v.EmailOption, v.RecipientName, v.PersonalisedMessage, v.FromName,
		v.PurchaserFirstName, v.PurchaserLastName, v.PurchaserEmail, v.PurchaserMobile,
		v.RecipientEmail,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert gift voucher: %w", err)
	}
	return nil
}

func (r *PgInquiryRepo) MarkVoucherSent(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE gift_vouchers SET is_sent = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark voucher sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgInquiryRepo) ListVouchers(ctx context.Context) ([]models.GiftVoucher, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT g.id, g.treatment_id, g.email_option, g.recipient_name, g.personalised_message,
		       g.from_name, g.purchaser_first_name, g.purchaser_last_name, g.purchaser_email,
		       g.purchaser_mobile, g.recipient_email, g.is_sent, g.created_at,
		       t.title_hr, t.title_en
		FROM gift_vouchers g
		JOIN treatments t ON t.id = g.treatment_id
		ORDER BY g.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list gift vouchers: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.GiftVoucher, error) {
		var v models.GiftVoucher
		err := row.Scan(
			&v.ID, &v.TreatmentID, &v.EmailOption, &v.RecipientName, &v.PersonalisedMessage,
			&v.FromName, &v.PurchaserFirstName, &v.PurchaserLastName, &v.PurchaserEmail,
			&v.PurchaserMobile, &v.RecipientEmail, &v.IsSent, &v.CreatedAt,
			&v.TreatmentTitle.HR, &v.TreatmentTitle.EN,
		)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("list gift vouchers: %w", err)
	}
	return out, nil
}

func (r *PgInquiryRepo) CollectEmail(ctx context.Context, e *models.CollectedEmail) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO email_collection (email, source, user_id, first_name, last_name, mobile)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING`,
		strings.ToLower(strings.TrimSpace(e.Email)), e.Source, e.UserID, e.FirstName, e.LastName, e.Mobile,
	)
	if err != nil {
		return false, fmt.Errorf("collect email: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgInquiryRepo) ListEmails(ctx context.Context) ([]models.CollectedEmail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, source, user_id, first_name, last_name, mobile, created_at
		FROM email_collection
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CollectedEmail, error) {
		var e models.CollectedEmail
		err := row.Scan(&e.ID, &e.Email, &e.Source, &e.UserID, &e.FirstName, &e.LastName, &e.Mobile, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	return out, nil
}
