package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"facestudio/models"
)

// Template kinds. They double as the Kind of the queued message.
const (
	KindReservationConfirmation = "reservation_confirmation"
	KindReservationAdmin        = "reservation_admin"
	KindReservationCancelled    = "reservation_cancelled"
	KindReservationReminder     = "reservation_reminder"
	KindContactAdmin            = "contact_admin"
	KindVoucherAdmin            = "voucher_admin"
	KindVoucherPurchaser        = "voucher_purchaser"
	KindVoucherRecipient        = "voucher_recipient"
)

// subjects holds the subject line per kind and language. %s is filled by the caller.
var subjects = map[string]map[string]string{
	KindReservationConfirmation: {
		models.LangHR: "Potvrda rezervacije - %s",
		models.LangEN: "Reservation Confirmation - %s",
	},
	KindReservationAdmin: {
		models.LangHR: "Nova rezervacija - %s",
		models.LangEN: "New Reservation - %s",
	},
	KindReservationCancelled: {
		models.LangHR: "Rezervacija otkazana - %s",
		models.LangEN: "Reservation Cancelled - %s",
	},
	KindReservationReminder: {
		models.LangHR: "Podsjetnik na termin - %s",
		models.LangEN: "Appointment Reminder - %s",
	},
	KindContactAdmin: {
		models.LangHR: "Nova poruka s kontakt obrasca: %s",
		models.LangEN: "New Contact Form Submission from %s",
	},
	KindVoucherAdmin: {
		models.LangHR: "Nova narudžba poklon bona - %s",
		models.LangEN: "New Gift Voucher Order - %s",
	},
	KindVoucherPurchaser: {
		models.LangHR: "Potvrda narudžbe poklon bona - %s",
		models.LangEN: "Gift Voucher Order Confirmation - %s",
	},
	KindVoucherRecipient: {
		models.LangHR: "Dobili ste poklon bon! - %s",
		models.LangEN: "You received a Gift Voucher! - %s",
	},
}

const layout = `{{define "layout"}}<!DOCTYPE html>
<html lang="{{.Lang}}">
<head><meta charset="utf-8"><title>{{.SiteName}}</title></head>
<body style="font-family: Georgia, serif; color: #3b3b3b; max-width: 600px; margin: 0 auto;">
<h1 style="font-weight: normal; color: #a57c6a;">{{.SiteName}}</h1>
{{template "body" .}}
<p style="font-size: 12px; color: #999;"><a href="{{.SiteURL}}">{{.SiteURL}}</a></p>
</body>
</html>{{end}}`

const reservationDetails = `{{define "details"}}<table cellpadding="4">
<tr><td>{{if .EN}}Treatment{{else}}Tretman{{end}}:</td><td><strong>{{.Treatment}}</strong></td></tr>
<tr><td>{{if .EN}}Date{{else}}Datum{{end}}:</td><td>{{.Date}}</td></tr>
<tr><td>{{if .EN}}Time{{else}}Vrijeme{{end}}:</td><td>{{.Start}} - {{.End}}</td></tr>
{{if .Price}}<tr><td>{{if .EN}}Price{{else}}Cijena{{end}}:</td><td>{{.Price}}</td></tr>{{end}}
{{if .Notes}}<tr><td>{{if .EN}}Notes{{else}}Napomena{{end}}:</td><td>{{.Notes}}</td></tr>{{end}}
</table>{{end}}`

var bodies = map[string]string{
	KindReservationConfirmation: `{{define "body"}}
<p>{{if .EN}}Dear {{.CustomerName}},{{else}}Poštovani/a {{.CustomerName}},{{end}}</p>
<p>{{if .EN}}thank you for your reservation. We look forward to seeing you.{{else}}hvala na rezervaciji. Veselimo se Vašem dolasku.{{end}}</p>
{{template "details" .}}
<p>{{if .EN}}If you cannot make it, please cancel your reservation from your account.{{else}}Ako ne možete doći, molimo otkažite rezervaciju u svom korisničkom računu.{{end}}</p>
{{end}}`,

	KindReservationAdmin: `{{define "body"}}
<p>{{if .EN}}A new reservation was made.{{else}}Zaprimljena je nova rezervacija.{{end}}</p>
{{template "details" .}}
<p>{{.CustomerName}} &lt;{{.CustomerEmail}}&gt; {{.CustomerMobile}}</p>
<p>#{{.ReservationID}}</p>
{{end}}`,

	KindReservationCancelled: `{{define "body"}}
<p>{{if .EN}}A reservation was cancelled by the customer.{{else}}Klijent je otkazao rezervaciju.{{end}}</p>
{{template "details" .}}
<p>{{.CustomerName}} &lt;{{.CustomerEmail}}&gt; {{.CustomerMobile}}</p>
<p>#{{.ReservationID}}</p>
{{end}}`,

	KindReservationReminder: `{{define "body"}}
<p>{{if .EN}}Dear {{.CustomerName}},{{else}}Poštovani/a {{.CustomerName}},{{end}}</p>
<p>{{if .EN}}this is a reminder of your appointment tomorrow.{{else}}podsjećamo Vas na sutrašnji termin.{{end}}</p>
{{template "details" .}}
{{end}}`,

	KindContactAdmin: `{{define "body"}}
<p>{{if .EN}}New message from the contact form.{{else}}Nova poruka s kontakt obrasca.{{end}}</p>
<table cellpadding="4">
<tr><td>{{if .EN}}Name{{else}}Ime{{end}}:</td><td>{{.CustomerName}}</td></tr>
<tr><td>Email:</td><td>{{.CustomerEmail}}</td></tr>
<tr><td>{{if .EN}}Mobile{{else}}Mobitel{{end}}:</td><td>{{.CustomerMobile}}</td></tr>
</table>
<p style="white-space: pre-wrap;">{{.Message}}</p>
{{end}}`,

	KindVoucherAdmin: `{{define "body"}}
<p>{{if .EN}}A new gift voucher was ordered.{{else}}Naručen je novi poklon bon.{{end}}</p>
<table cellpadding="4">
<tr><td>{{if .EN}}Treatment{{else}}Tretman{{end}}:</td><td><strong>{{.Treatment}}</strong></td></tr>
<tr><td>{{if .EN}}Recipient{{else}}Primatelj{{end}}:</td><td>{{.RecipientName}}</td></tr>
<tr><td>{{if .EN}}From{{else}}Od{{end}}:</td><td>{{.FromName}}</td></tr>
<tr><td>{{if .EN}}Purchaser{{else}}Kupac{{end}}:</td><td>{{.CustomerName}} &lt;{{.CustomerEmail}}&gt; {{.CustomerMobile}}</td></tr>
<tr><td>{{if .EN}}Deliver to{{else}}Dostava na{{end}}:</td><td>{{.DeliveryEmail}}</td></tr>
</table>
{{if .Message}}<p style="white-space: pre-wrap;">{{.Message}}</p>{{end}}
{{end}}`,

	KindVoucherPurchaser: `{{define "body"}}
<p>{{if .EN}}Dear {{.CustomerName}},{{else}}Poštovani/a {{.CustomerName}},{{end}}</p>
<p>{{if .EN}}we received your gift voucher order for <strong>{{.Treatment}}</strong> for {{.RecipientName}}. We will contact you shortly about payment and delivery.{{else}}zaprimili smo Vašu narudžbu poklon bona za <strong>{{.Treatment}}</strong> za {{.RecipientName}}. Uskoro ćemo Vas kontaktirati u vezi plaćanja i dostave.{{end}}</p>
{{end}}`,

	KindVoucherRecipient: `{{define "body"}}
<p>{{if .EN}}Dear {{.RecipientName}},{{else}}Draga/i {{.RecipientName}},{{end}}</p>
<p>{{if .EN}}{{.FromName}} has given you a gift voucher for <strong>{{.Treatment}}</strong>.{{else}}{{.FromName}} Vam je poklonio/la poklon bon za <strong>{{.Treatment}}</strong>.{{end}}</p>
{{if .Message}}<p style="white-space: pre-wrap;"><em>{{.Message}}</em></p>{{end}}
{{end}}`,
}

// EmailData is the union of fields the templates use.
type EmailData struct {
	Lang     string
	SiteName string
	SiteURL  string

	ReservationID  int64
	Treatment      string
	Date           string
	Start          string
	End            string
	Price          string
	Notes          string
	CustomerName   string
	CustomerEmail  string
	CustomerMobile string

	Message       string
	RecipientName string
	FromName      string
	DeliveryEmail string
}

// EN is a template helper.
func (d EmailData) EN() bool { return d.Lang == models.LangEN }

// Renderer turns a kind and EmailData into a subject and HTML body.
type Renderer struct {
	siteName  string
	siteURL   string
	templates map[string]*template.Template
}

func NewRenderer(siteName, siteURL string) (*Renderer, error) {
	r := &Renderer{siteName: siteName, siteURL: siteURL, templates: make(map[string]*template.Template, len(bodies))}
	for kind, body := range bodies {
		t, err := template.New(kind).Parse(layout + reservationDetails + body)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", kind, err)
		}
		r.templates[kind] = t
	}
	return r, nil
}

// Render fills the site fields, normalizes the language and executes the template.
func (r *Renderer) Render(kind string, data EmailData, subjectArg string) (subject, body string, err error) {
	t, ok := r.templates[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", kind)
	}
	data.Lang = models.NormalizeLang(data.Lang)
	data.SiteName = r.siteName
	data.SiteURL = r.siteURL

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", "", fmt.Errorf("render %s: %w", kind, err)
	}
	return fmt.Sprintf(subjects[kind][data.Lang], subjectArg), buf.String(), nil
}

// FormatDate renders a calendar date the way each language writes it.
func FormatDate(r *models.Reservation, lang string) string {
	if models.NormalizeLang(lang) == models.LangEN {
		return r.Date.Format("January 2, 2006")
	}
	return r.Date.Format("02.01.2006.")
}
