package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/soupclass/soup-backend/internal/model"
)

type templatePair struct {
	subject string
	text    *texttemplate.Template
	html    *htmltemplate.Template
}

func newPair(subject, text, html string) templatePair {
	return templatePair{
		subject: subject,
		text:    texttemplate.Must(texttemplate.New(subject).Parse(text)),
		html:    htmltemplate.Must(htmltemplate.New(subject).Parse(html)),
	}
}

var (
	confirmEmailTmpl = newPair("Konfirmasi email Anda",
		"Halo {{.Name}},\n\nSilakan konfirmasi akun Anda melalui tautan berikut:\n{{.Link}}\n",
		`<p>Halo {{.Name}},</p><p>Silakan konfirmasi akun Anda dengan <a href="{{.Link}}">klik di sini</a>.</p>`)

	resetPasswordTmpl = newPair("Atur ulang kata sandi",
		"Halo {{.Name}},\n\nGunakan token berikut untuk mengatur ulang kata sandi Anda:\n{{.Token}}\n\nToken berlaku selama 1 jam.\n",
		`<p>Halo {{.Name}},</p><p>Gunakan token berikut untuk mengatur ulang kata sandi Anda:</p><p><b>{{.Token}}</b></p><p>Token berlaku selama 1 jam.</p>`)

	receiptTmpl = newPair("Invoice pembelian",
		"Halo {{.Name}},\n\nTerima kasih atas pembelian Anda.\nNo. invoice: {{.NoInvoice}}\nJumlah course: {{.TotalCourse}}\nTotal: {{.TotalPrice}}\n",
		`<p>Halo {{.Name}},</p><p>Terima kasih atas pembelian Anda.</p><ul><li>No. invoice: {{.NoInvoice}}</li><li>Jumlah course: {{.TotalCourse}}</li><li>Total: {{.TotalPrice}}</li></ul>`)
)

func render(to, toName string, tp templatePair, data interface{}) (model.MailJob, error) {
	var text, html bytes.Buffer
	if err := tp.text.Execute(&text, data); err != nil {
		return model.MailJob{}, fmt.Errorf("render text: %w", err)
	}
	if err := tp.html.Execute(&html, data); err != nil {
		return model.MailJob{}, fmt.Errorf("render html: %w", err)
	}
	return model.MailJob{
		To:       to,
		ToName:   toName,
		Subject:  tp.subject,
		BodyText: text.String(),
		BodyHTML: html.String(),
	}, nil
}

// ConfirmEmail builds the account confirmation message.
func ConfirmEmail(to, name, link string) (model.MailJob, error) {
	return render(to, name, confirmEmailTmpl, struct{ Name, Link string }{name, link})
}

// ResetPassword builds the password reset message.
func ResetPassword(to, name, token string) (model.MailJob, error) {
	return render(to, name, resetPasswordTmpl, struct{ Name, Token string }{name, token})
}

// Receipt builds the checkout confirmation message.
func Receipt(to, name string, result model.CheckoutResult) (model.MailJob, error) {
	return render(to, name, receiptTmpl, struct {
		Name        string
		NoInvoice   string
		TotalCourse int
		TotalPrice  string
	}{name, result.NoInvoice, result.TotalCourse, result.TotalPrice.StringFixed(2)})
}
