package notify

import (
	"bytes"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// Both bodies are rendered for every email so clients without HTML support
// still get a readable message.

var statusUpdateHTML = htmltemplate.Must(htmltemplate.New("status_update_html").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Donation {{.NewStatus}}</h2>
  <p>Dear {{if .DonorName}}{{.DonorName}}{{else}}Donor{{end}},</p>
  <p>Your donation <strong>{{.Summary}}</strong> (reference {{.DonationID}}) has been
  <strong>{{.NewStatus}}</strong>.</p>
  {{if .AdminNotes}}<p><strong>Notes from the organization:</strong> {{.AdminNotes}}</p>{{end}}
  <p>Thank you for your generosity.</p>
</div>
`))

var statusUpdateText = texttemplate.Must(texttemplate.New("status_update_text").Parse(
	`Dear {{if .DonorName}}{{.DonorName}}{{else}}Donor{{end}},

Your donation {{.Summary}} (reference {{.DonationID}}) has been {{.NewStatus}}.
{{if .AdminNotes}}
Notes from the organization: {{.AdminNotes}}
{{end}}
Thank you for your generosity.
`))

var newDonationHTML = htmltemplate.Must(htmltemplate.New("new_donation_html").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New Donation Submitted</h2>
  <p><strong>Item:</strong> {{.Summary}}</p>
  {{if .Description}}<p><strong>Description:</strong> {{.Description}}</p>{{end}}
  <p><strong>Donation ID:</strong> {{.DonationID}}</p>
  <p><strong>Donor:</strong> {{.DonorName}} ({{.DonorEmail}})</p>
  <p>Please review this donation in the admin dashboard.</p>
</div>
`))

var newDonationText = texttemplate.Must(texttemplate.New("new_donation_text").Parse(
	`New donation submitted.

Item: {{.Summary}}
{{if .Description}}Description: {{.Description}}
{{end}}Donation ID: {{.DonationID}}
Donor: {{.DonorName}} ({{.DonorEmail}})

Please review this donation in the admin dashboard.
`))

func renderStatusUpdate(data StatusUpdate) (string, string, error) {
	var html, text bytes.Buffer
	if err := statusUpdateHTML.Execute(&html, data); err != nil {
		return "", "", err
	}
	if err := statusUpdateText.Execute(&text, data); err != nil {
		return "", "", err
	}
	return html.String(), text.String(), nil
}

func renderNewDonationAlert(data NewDonationAlert) (string, string, error) {
	var html, text bytes.Buffer
	if err := newDonationHTML.Execute(&html, data); err != nil {
		return "", "", err
	}
	if err := newDonationText.Execute(&text, data); err != nil {
		return "", "", err
	}
	return html.String(), text.String(), nil
}
