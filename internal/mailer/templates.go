package mailer

// Template names accepted by Mail.Template.
const (
	TemplateActivation = "activation"
	TemplateWelcome    = "welcome"
	TemplateLogin      = "login"
	TemplateUpdateOTP  = "update-otp"
)

// mailTemplates holds all notification mail bodies. Kept deliberately plain;
// styling lives with the client.
const mailTemplates = `
{{define "activation"}}
<html><body>
<p>Hi {{.FullName}},</p>
<p>Your RA.one activation code is <strong>{{.OTP}}</strong>.</p>
<p>The code expires in a few minutes. If you did not register, ignore this mail.</p>
</body></html>
{{end}}

{{define "welcome"}}
<html><body>
<p>Hi {{.FullName}},</p>
<p>Your RA.one account is ready. Happy shopping!</p>
</body></html>
{{end}}

{{define "login"}}
<html><body>
<p>Hi {{.FullName}},</p>
<p>A new login to your RA.one account just happened. If this was not you, change your password.</p>
</body></html>
{{end}}

{{define "update-otp"}}
<html><body>
<p>Hi {{.FullName}},</p>
<p>Confirm your profile update with code <strong>{{.OTP}}</strong>.</p>
{{if .ConfirmURL}}<p>Or continue at <a href="{{.ConfirmURL}}">{{.ConfirmURL}}</a>.</p>{{end}}
</body></html>
{{end}}
`
