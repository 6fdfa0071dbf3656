package inquiry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	inquiryRepo "facestudio/database/repository/inquiry"
	treatmentRepo "facestudio/database/repository/treatment"
	"facestudio/models"
	"facestudio/utils"

	"go.uber.org/zap"
)

func (s *DefaultInquiryService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

// SubmitContact stores a contact form message, collects the sender's address and notifies the studio.
func (s *DefaultInquiryService) SubmitContact(ctx context.Context, req models.ContactRequest) (*models.ContactSubmission, error) {
	if strings.TrimSpace(req.Website) != "" {
		s.logger().Info("SubmitContact: honeypot triggered", zap.String("email", req.Email))
		return nil, ErrSpam
	}
	c := &models.ContactSubmission{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Mobile:    strings.TrimSpace(req.Mobile),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Message:   strings.TrimSpace(req.Message),
	}
	if err := s.Repo.CreateContact(ctx, c); err != nil {
		return nil, fmt.Errorf("store contact submission: %w", err)
	}
	s.collect(ctx, &models.CollectedEmail{
		Email:     c.Email,
		Source:    models.SourceContactForm,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Mobile:    c.Mobile,
	})
	if s.Notifier != nil {
		if err := s.Notifier.ContactReceived(ctx, c); err != nil {
			s.logger().Error("SubmitContact: notification failed", zap.Int64("id", c.ID), zap.Error(err))
		}
	}
	return c, nil
}

// OrderVoucher records a gift voucher order and sends the order emails. The
// voucher is flagged as sent once every email was handed off.
func (s *DefaultInquiryService) OrderVoucher(ctx context.Context, lang string, req models.GiftVoucherRequest) (*models.GiftVoucher, error) {
	if strings.TrimSpace(req.Website) != "" {
		s.logger().Info("OrderVoucher: honeypot triggered", zap.String("email", req.PurchaserEmail))
		return nil, ErrSpam
	}
	v := &models.GiftVoucher{
		TreatmentID:         req.TreatmentID,
		EmailOption:         strings.TrimSpace(req.EmailOption),
		RecipientName:       strings.TrimSpace(req.RecipientName),
		PersonalisedMessage: strings.TrimSpace(req.PersonalisedMessage),
		FromName:            strings.TrimSpace(req.FromName),
		PurchaserFirstName:  strings.TrimSpace(req.PurchaserFirstName),
		PurchaserLastName:   strings.TrimSpace(req.PurchaserLastName),
		PurchaserEmail:      strings.ToLower(strings.TrimSpace(req.PurchaserEmail)),
		PurchaserMobile:     strings.TrimSpace(req.PurchaserMobile),
		RecipientEmail:      strings.ToLower(strings.TrimSpace(req.RecipientEmail)),
	}
	// Field presence and address format are checked when the request is bound.
	if v.EmailOption == models.DeliverToRecipient {
		if v.RecipientEmail == "" {
			return nil, &ValidationError{Field: "recipient_email", Message: "is required when the voucher goes to the recipient"}
		}
	} else {
		v.RecipientEmail = ""
	}

	t, err := s.Treatments.GetByID(ctx, v.TreatmentID)
	if errors.Is(err, treatmentRepo.ErrNotFound) || (err == nil && !t.IsActive) {
		return nil, ErrTreatmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load treatment %d: %w", v.TreatmentID, err)
	}
	v.TreatmentTitle = t.Title

	if err := s.Repo.CreateVoucher(ctx, v); err != nil {
		return nil, fmt.Errorf("store gift voucher: %w", err)
	}
	s.collect(ctx, &models.CollectedEmail{
		Email:     v.PurchaserEmail,
		Source:    models.SourceGiftVoucher,
		FirstName: v.PurchaserFirstName,
		LastName:  v.PurchaserLastName,
		Mobile:    v.PurchaserMobile,
	})

	if s.Notifier == nil {
		return v, nil
	}
	if err := s.Notifier.VoucherOrdered(ctx, v, lang); err != nil {
		s.logger().Error("OrderVoucher: notification failed", zap.Int64("id", v.ID), zap.Error(err))
		return v, nil
	}
	if err := s.Repo.MarkVoucherSent(ctx, v.ID); err != nil {
		s.logger().Warn("OrderVoucher: failed to flag voucher as sent", zap.Int64("id", v.ID), zap.Error(err))
		return v, nil
	}
	v.IsSent = true
	return v, nil
}

func (s *DefaultInquiryService) collect(ctx context.Context, e *models.CollectedEmail) {
	if added, err := s.Repo.CollectEmail(ctx, e); err != nil {
		s.logger().Warn("Email collection failed", zap.String("source", e.Source), zap.Error(err))
	} else if added {
		s.logger().Debug("Email collected", zap.String("source", e.Source))
	}
}

func (s *DefaultInquiryService) ListContacts(ctx context.Context, unreadOnly bool) ([]models.ContactSubmission, error) {
	return s.Repo.ListContacts(ctx, unreadOnly)
}

func (s *DefaultInquiryService) MarkContactRead(ctx context.Context, id int64) error {
	err := s.Repo.MarkContactRead(ctx, id)
	if errors.Is(err, inquiryRepo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *DefaultInquiryService) ListVouchers(ctx context.Context) ([]models.GiftVoucher, error) {
	return s.Repo.ListVouchers(ctx)
}

func (s *DefaultInquiryService) ListEmails(ctx context.Context) ([]models.CollectedEmail, error) {
	return s.Repo.ListEmails(ctx)
}
