package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Built-in email bodies. Kept inline so a deployment works without a
// template directory on disk.
var builtinTemplates = map[string]string{
	"welcome": `
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Welcome, {{.FirstName}}!</h2>
	<p>Thank you for registering. Please verify your account to get started.</p>
	<p><a href="{{.ActivationLink}}">Verify my account</a></p>
	<p>If the button does not work, copy this link into your browser:</p>
	<p>{{.ActivationLink}}</p>
</body>
</html>`,

	"activated": `
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Hello, {{.FirstName}}!</h2>
	<p>Your account has been verified successfully. You can now log in and start practicing.</p>
</body>
</html>`,

	"forget": `
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Hello, {{.FirstName}},</h2>
	<p>We received a request to reset your password. The link below expires shortly, so use it right away.</p>
	<p><a href="{{.ResetLink}}">Reset my password</a></p>
	<p>If you did not request this, you can safely ignore this email.</p>
</body>
</html>`,

	"reset_successfully": `
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Hello, {{.FirstName}},</h2>
	<p>Your password has been changed. If this was not you, contact support immediately.</p>
</body>
</html>`,
}

var templateSubjects = map[string]string{
	"welcome":            "Welcome! Please verify your account",
	"activated":          "Your account is verified",
	"forget":             "Reset your password",
	"reset_successfully": "Your password was changed",
}

type templateData struct {
	FirstName      string
	LastName       string
	ActivationLink string
	ResetLink      string
}

func renderTemplate(emailType string, data templateData) (subject, body string, err error) {
	raw, ok := builtinTemplates[emailType]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", emailType)
	}

	tpl, err := template.New(emailType).Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %q: %w", emailType, err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render template %q: %w", emailType, err)
	}

	return templateSubjects[emailType], buf.String(), nil
}
