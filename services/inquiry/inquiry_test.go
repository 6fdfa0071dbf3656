package inquiry

import (
	"context"
	"errors"
	"testing"

	inquiryRepo "facestudio/database/repository/inquiry"
	treatmentRepo "facestudio/database/repository/treatment"
	"facestudio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memInquiries struct {
	contacts []models.ContactSubmission
	vouchers []models.GiftVoucher
	emails   map[string]models.CollectedEmail
	sent     []int64
}

func (m *memInquiries) CreateContact(_ context.Context, c *models.ContactSubmission) error {
	c.ID = int64(len(m.contacts) + 1)
	m.contacts = append(m.contacts, *c)
	return nil
}

func (m *memInquiries) ListContacts(_ context.Context, unreadOnly bool) ([]models.ContactSubmission, error) {
	var out []models.ContactSubmission
	for _, c := range m.contacts {
		if !unreadOnly || !c.IsRead {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memInquiries) MarkContactRead(_ context.Context, id int64) error {
	for i := range m.contacts {
		if m.contacts[i].ID == id {
			m.contacts[i].IsRead = true
			return nil
		}
	}
	return inquiryRepo.ErrNotFound
}

func (m *memInquiries) CreateVoucher(_ context.Context, v *models.GiftVoucher) error {
	v.ID = int64(len(m.vouchers) + 1)
	m.vouchers = append(m.vouchers, *v)
	return nil
}

func (m *memInquiries) MarkVoucherSent(_ context.Context, id int64) error {
	m.sent = append(m.sent, id)
	return nil
}

func (m *memInquiries) ListVouchers(context.Context) ([]models.GiftVoucher, error) {
	return m.vouchers, nil
}

func (m *memInquiries) CollectEmail(_ context.Context, e *models.CollectedEmail) (bool, error) {
	if _, ok := m.emails[e.Email]; ok {
		return false, nil
	}
	m.emails[e.Email] = *e
	return true, nil
}

func (m *memInquiries) ListEmails(context.Context) ([]models.CollectedEmail, error) {
	var out []models.CollectedEmail
	for _, e := range m.emails {
		out = append(out, e)
	}
	return out, nil
}

type memTreatments struct {
	treatmentRepo.TreatmentRepository
}

func (memTreatments) GetByID(_ context.Context, id int64) (*models.Treatment, error) {
	switch id {
	case 1:
		return &models.Treatment{ID: 1, Title: models.Localized{HR: "Tretman lica", EN: "Facial"}, IsActive: true}, nil
	case 2:
		return &models.Treatment{ID: 2, IsActive: false}, nil
	}
	return nil, treatmentRepo.ErrNotFound
}

type stubNotifier struct {
	contacts int
	vouchers int
	err      error
}

func (n *stubNotifier) ReservationCreated(context.Context, *models.Reservation, *models.Treatment) error {
	return nil
}

func (n *stubNotifier) ReservationCancelled(context.Context, *models.Reservation) error {
	return nil
}

func (n *stubNotifier) ReservationReminder(context.Context, *models.Reservation) error {
	return nil
}

func (n *stubNotifier) ContactReceived(context.Context, *models.ContactSubmission) error {
	n.contacts++
	return n.err
}

func (n *stubNotifier) VoucherOrdered(context.Context, *models.GiftVoucher, string) error {
	n.vouchers++
	return n.err
}

func newInquiryService() (*DefaultInquiryService, *memInquiries, *stubNotifier) {
	repo := &memInquiries{emails: map[string]models.CollectedEmail{}}
	n := &stubNotifier{}
	return &DefaultInquiryService{Repo: repo, Treatments: memTreatments{}, Notifier: n, Logger: zap.NewNop()}, repo, n
}

func contactRequest() models.ContactRequest {
	return models.ContactRequest{
		FirstName: "Ivo",
		LastName:  "Ivić",
		Mobile:    "091 234 5678",
		Email:     "Ivo@Example.com",
		Message:   "Imate li slobodan termin?",
	}
}

func TestSubmitContact(t *testing.T) {
	svc, repo, n := newInquiryService()

	c, err := svc.SubmitContact(context.Background(), contactRequest())
	require.NoError(t, err)
	assert.Equal(t, "ivo@example.com", c.Email)
	assert.Len(t, repo.contacts, 1)
	assert.Equal(t, models.SourceContactForm, repo.emails["ivo@example.com"].Source)
	assert.Equal(t, 1, n.contacts)

	// A second message from a known address keeps the first collection entry.
	_, err = svc.SubmitContact(context.Background(), contactRequest())
	require.NoError(t, err)
	assert.Len(t, repo.emails, 1)
}

func TestSubmitContactRejectsSpam(t *testing.T) {
	svc, repo, n := newInquiryService()

	spam := contactRequest()
	spam.Website = "http://spam.example"
	_, err := svc.SubmitContact(context.Background(), spam)
	assert.ErrorIs(t, err, ErrSpam)
	assert.Empty(t, repo.contacts)
	assert.Empty(t, repo.emails)
	assert.Zero(t, n.contacts)
}

func TestSubmitContactSurvivesNotificationFailure(t *testing.T) {
	svc, _, n := newInquiryService()
	n.err = errors.New("queue down")

	_, err := svc.SubmitContact(context.Background(), contactRequest())
	assert.NoError(t, err)
}

func voucherRequest() models.GiftVoucherRequest {
	return models.GiftVoucherRequest{
		TreatmentID:        1,
		EmailOption:        models.DeliverToRecipient,
		RecipientName:      "Maja",
		FromName:           "Ana",
		PurchaserFirstName: "Ana",
		PurchaserLastName:  "Horvat",
		PurchaserEmail:     "ana@example.com",
		PurchaserMobile:    "0911234567",
		RecipientEmail:     "maja@example.com",
	}
}

func TestOrderVoucher(t *testing.T) {
	svc, repo, n := newInquiryService()

	v, err := svc.OrderVoucher(context.Background(), "en", voucherRequest())
	require.NoError(t, err)
	assert.True(t, v.IsSent)
	assert.Equal(t, "Facial", v.TreatmentTitle.EN)
	assert.Equal(t, []int64{v.ID}, repo.sent)
	assert.Equal(t, 1, n.vouchers)
	assert.Equal(t, models.SourceGiftVoucher, repo.emails["ana@example.com"].Source)
}

func TestOrderVoucherNotSentWhenEmailsFail(t *testing.T) {
	svc, repo, n := newInquiryService()
	n.err = errors.New("queue down")

	v, err := svc.OrderVoucher(context.Background(), "hr", voucherRequest())
	require.NoError(t, err)
	assert.False(t, v.IsSent)
	assert.Empty(t, repo.sent)
}

func TestOrderVoucherRejects(t *testing.T) {
	svc, _, _ := newInquiryService()
	ctx := context.Background()

	req := voucherRequest()
	req.RecipientEmail = ""
	_, err := svc.OrderVoucher(ctx, "hr", req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "recipient_email", verr.Field)

	req = voucherRequest()
	req.TreatmentID = 2
	_, err = svc.OrderVoucher(ctx, "hr", req)
	assert.ErrorIs(t, err, ErrTreatmentNotFound)

	req = voucherRequest()
	req.Website = "x"
	_, err = svc.OrderVoucher(ctx, "hr", req)
	assert.ErrorIs(t, err, ErrSpam)

	// Delivery to the purchaser needs no recipient address and drops a stray one.
	req = voucherRequest()
	req.EmailOption = models.DeliverToPurchaser
	req.RecipientEmail = "not-an-email"
	v, err := svc.OrderVoucher(ctx, "hr", req)
	require.NoError(t, err)
	assert.Empty(t, v.RecipientEmail)
}

func TestMarkContactRead(t *testing.T) {
	svc, _, _ := newInquiryService()
	c, err := svc.SubmitContact(context.Background(), contactRequest())
	require.NoError(t, err)

	require.NoError(t, svc.MarkContactRead(context.Background(), c.ID))
	unread, err := svc.ListContacts(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, unread)
	assert.ErrorIs(t, svc.MarkContactRead(context.Background(), 99), ErrNotFound)
}
