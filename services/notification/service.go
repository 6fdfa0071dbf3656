package notification

import (
	"context"
	"errors"
	"fmt"

	"facestudio/models"
	"facestudio/services/tasks"
	"facestudio/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the part of *asynq.Client the service needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultNotificationService renders emails and queues them for the worker.
// With no queue configured it delivers inline through Mailer.
type DefaultNotificationService struct {
	Renderer   *Renderer
	Queue      Enqueuer
	Mailer     Mailer
	AdminEmail string
}

func NewDefaultNotificationService(renderer *Renderer, queue Enqueuer, mailer Mailer, adminEmail string) (*DefaultNotificationService, error) {
	if renderer == nil {
		return nil, fmt.Errorf("notification service initialization error: renderer is nil")
	}
	if queue == nil && mailer == nil {
		return nil, fmt.Errorf("notification service initialization error: neither queue nor mailer configured")
	}
	return &DefaultNotificationService{
		Renderer:   renderer,
		Queue:      queue,
		Mailer:     mailer,
		AdminEmail: adminEmail,
	}, nil
}

func reservationData(r *models.Reservation, lang string) EmailData {
	return EmailData{
		Lang:           lang,
		ReservationID:  r.ID,
		Treatment:      r.TreatmentTitle.In(lang),
		Date:           FormatDate(r, lang),
		Start:          r.StartTime.String(),
		End:            r.EndTime.String(),
		Notes:          r.Notes,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerMobile: r.CustomerMobile,
	}
}

// ReservationCreated sends the customer a confirmation in the booking language
// and the studio an English notice.
func (s *DefaultNotificationService) ReservationCreated(ctx context.Context, r *models.Reservation, t *models.Treatment) error {
	lang := models.NormalizeLang(r.Language)
	data := reservationData(r, lang)
	if t != nil {
		data.Price = models.FormatPrice(t.PriceCents)
		if data.Treatment == "" {
			data.Treatment = t.Title.In(lang)
		}
	}

	var errs []error
	if r.CustomerEmail != "" {
		errs = append(errs, s.send(ctx, KindReservationConfirmation, data, data.Treatment, r.ID, r.CustomerEmail))
	}
	admin := data
	admin.Lang = models.LangEN
	if t != nil {
		admin.Treatment = t.Title.In(models.LangEN)
	} else {
		admin.Treatment = r.TreatmentTitle.In(models.LangEN)
	}
	admin.Date = FormatDate(r, models.LangEN)
	errs = append(errs, s.toAdmin(ctx, KindReservationAdmin, admin, admin.Treatment, r.ID))
	return errors.Join(errs...)
}

// ReservationCancelled tells the studio a customer cancelled.
func (s *DefaultNotificationService) ReservationCancelled(ctx context.Context, r *models.Reservation) error {
	data := reservationData(r, models.LangEN)
	return s.toAdmin(ctx, KindReservationCancelled, data, data.Treatment, r.ID)
}

// ReservationReminder is the day-before reminder to the customer.
func (s *DefaultNotificationService) ReservationReminder(ctx context.Context, r *models.Reservation) error {
	if r.CustomerEmail == "" {
		return fmt.Errorf("reservation %d has no customer email", r.ID)
	}
	data := reservationData(r, models.NormalizeLang(r.Language))
	return s.send(ctx, KindReservationReminder, data, data.Treatment, r.ID, r.CustomerEmail)
}

func (s *DefaultNotificationService) ContactReceived(ctx context.Context, c *models.ContactSubmission) error {
	name := c.FirstName + " " + c.LastName
	data := EmailData{
		Lang:           models.LangEN,
		CustomerName:   name,
		CustomerEmail:  c.Email,
		CustomerMobile: c.Mobile,
		Message:        c.Message,
	}
	return s.toAdmin(ctx, KindContactAdmin, data, name, 0)
}

// VoucherOrdered notifies the studio, confirms to the purchaser and, when the
// voucher goes straight to the recipient, sends it to them.
func (s *DefaultNotificationService) VoucherOrdered(ctx context.Context, v *models.GiftVoucher, lang string) error {
	lang = models.NormalizeLang(lang)
	data := EmailData{
		Lang:           lang,
		Treatment:      v.TreatmentTitle.In(lang),
		CustomerName:   v.PurchaserFirstName + " " + v.PurchaserLastName,
		CustomerEmail:  v.PurchaserEmail,
		CustomerMobile: v.PurchaserMobile,
		Message:        v.PersonalisedMessage,
		RecipientName:  v.RecipientName,
		FromName:       v.FromName,
		DeliveryEmail:  v.DeliveryEmail(),
	}

	admin := data
	admin.Lang = models.LangEN
	admin.Treatment = v.TreatmentTitle.In(models.LangEN)
	errs := []error{
		s.toAdmin(ctx, KindVoucherAdmin, admin, v.RecipientName, 0),
		s.send(ctx, KindVoucherPurchaser, data, data.Treatment, 0, v.PurchaserEmail),
	}
	if v.EmailOption == models.DeliverToRecipient && v.RecipientEmail != "" {
		errs = append(errs, s.send(ctx, KindVoucherRecipient, data, data.Treatment, 0, v.RecipientEmail))
	}
	return errors.Join(errs...)
}

func (s *DefaultNotificationService) toAdmin(ctx context.Context, kind string, data EmailData, subjectArg string, reservationID int64) error {
	if s.AdminEmail == "" {
		return fmt.Errorf("admin email not configured, dropping %s", kind)
	}
	return s.send(ctx, kind, data, subjectArg, reservationID, s.AdminEmail)
}

func (s *DefaultNotificationService) send(ctx context.Context, kind string, data EmailData, subjectArg string, reservationID int64, to ...string) error {
	subject, body, err := s.Renderer.Render(kind, data, subjectArg)
	if err != nil {
		return err
	}
	msg := models.EmailMessage{
		To:            to,
		Subject:       subject,
		HTML:          body,
		Text:          utils.PlainText(body),
		Kind:          kind,
		ReservationID: reservationID,
	}

	if s.Queue == nil {
		return s.Mailer.Send(ctx, msg)
	}
	task, opts, err := tasks.NewEmailTask(msg)
	if err != nil {
		return err
	}
	info, err := s.Queue.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue %s email: %w", kind, err)
	}
	utils.GetLogger().Debug("Email queued",
		zap.String("kind", kind),
		zap.String("task_id", info.ID),
		zap.Int64("reservation_id", reservationID))
	return nil
}
