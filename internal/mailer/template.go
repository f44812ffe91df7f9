package mailer

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/teamreg/backend/internal/model"
)

const timestampLayout = "January 2, 2006 at 3:04 PM"

type confirmationData struct {
	TeamID          string
	TeamName        string
	TeamLeaderName  string
	TeamLeaderEmail string
	Members         []*model.TeamMember
	Verification    string
	RegisteredOn    string
}

var confirmationHTML = htmltemplate.Must(htmltemplate.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Team Registration Confirmed</title></head>
<body style="font-family: sans-serif; background-color: #f8fafc; padding: 24px;">
  <div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 12px; padding: 32px;">
    <h1 style="color: #334155;">Registration Confirmed!</h1>
    <p>Hello <strong>{{.TeamLeaderName}}</strong>,</p>
    <p>Your team has been successfully registered. Below are your registration details:</p>
    <div style="background: #6366f1; color: white; border-radius: 8px; padding: 16px; text-align: center;">
      <p style="margin: 0; font-size: 12px; text-transform: uppercase;">Your Unique Team ID</p>
      <p style="margin: 4px 0 0; font-size: 24px; font-family: monospace;">{{.TeamID}}</p>
    </div>
    <table style="width: 100%; margin-top: 24px; border-collapse: collapse;">
      <tr><td style="padding: 8px 0; color: #64748b;">Team Name</td><td style="text-align: right;"><strong>{{.TeamName}}</strong></td></tr>
      <tr><td style="padding: 8px 0; color: #64748b;">Team Leader</td><td style="text-align: right;"><strong>{{.TeamLeaderName}}</strong></td></tr>
      <tr><td style="padding: 8px 0; color: #64748b;">Email</td><td style="text-align: right;"><strong>{{.TeamLeaderEmail}}</strong></td></tr>
      <tr><td style="padding: 8px 0; color: #64748b;">ID Verification</td><td style="text-align: right;"><strong>{{.Verification}}</strong></td></tr>
      <tr><td style="padding: 8px 0; color: #64748b;">Registered On</td><td style="text-align: right;"><strong>{{.RegisteredOn}}</strong></td></tr>
    </table>
    {{if .Members}}
    <div style="background: #f8fafc; border-radius: 8px; padding: 16px; margin-top: 24px;">
      <p style="margin: 0 0 8px;"><strong>Team Members ({{len .Members}})</strong></p>
      <ul style="margin: 0; color: #64748b;">
        {{range .Members}}<li><strong>{{.Name}}</strong>{{if .Role}} ({{.Role}}){{end}} - {{.Email}}</li>{{end}}
      </ul>
    </div>
    {{end}}
    <p style="margin-top: 24px; color: #92400e;"><strong>Important:</strong> Please save your Team ID. You will need it for future reference and event participation.</p>
    <p style="color: #64748b;">Best regards,<br><strong>The Team Registration Platform</strong></p>
  </div>
</body>
</html>
`))

var confirmationText = texttemplate.Must(texttemplate.New("confirmation").Parse(`Team Registration Confirmed!

Hello {{.TeamLeaderName}},

Your team has been successfully registered.

Team ID: {{.TeamID}}
Team Name: {{.TeamName}}
Team Leader: {{.TeamLeaderName}}
Email: {{.TeamLeaderEmail}}
ID Verification: {{.Verification}}
Registered On: {{.RegisteredOn}}
{{if .Members}}
Team Members:
{{range .Members}}- {{.Name}}{{if .Role}} ({{.Role}}){{end}} - {{.Email}}
{{end}}{{end}}
Please save your Team ID for future reference.

Best regards,
The Team Registration Platform
`))

func renderConfirmation(reg *model.Registration) (html string, text string, err error) {
	verification := "Pending"
	if reg.IDCardVerified {
		verification = "Verified"
	}

	data := confirmationData{
		TeamID:          reg.TeamID,
		TeamName:        reg.TeamName,
		TeamLeaderName:  reg.TeamLeaderName,
		TeamLeaderEmail: reg.TeamLeaderEmail,
		Members:         reg.TeamMembers,
		Verification:    verification,
		RegisteredOn:    reg.CreatedAt.Format(timestampLayout),
	}

	var htmlBuf, textBuf strings.Builder
	if err = confirmationHTML.Execute(&htmlBuf, data); err != nil {
		return "", "", err
	}
	if err = confirmationText.Execute(&textBuf, data); err != nil {
		return "", "", err
	}

	return htmlBuf.String(), textBuf.String(), nil
}
