package email

import (
	"bytes"
	"html/template"
	texttpl "text/template"
)

// NewPasswordVars son las variables del email de nueva contraseña.
type NewPasswordVars struct {
	Name     string
	Email    string
	Password string
}

const subjectNewPassword = "Solicitação de nova senha"

const newPasswordHTML = `<!doctype html>
<html>
<body style="font-family: Helvetica, Arial, sans-serif; color: #333;">
  <p>Olá, {{.Name}}.</p>
  <p>Recebemos uma solicitação de nova senha para <strong>{{.Email}}</strong>.</p>
  <p>Nova senha: <code>{{.Password}}</code></p>
</body>
</html>`

const newPasswordTXT = `Olá, {{.Name}}.

Recebemos uma solicitação de nova senha para {{.Email}}.

Nova senha: {{.Password}}
`

var (
	newPasswordHTMLTpl = template.Must(template.New("new_password_html").Parse(newPasswordHTML))
	newPasswordTXTTpl  = texttpl.Must(texttpl.New("new_password_txt").Parse(newPasswordTXT))
)

// RenderNewPassword renderiza ambas versiones del email.
func RenderNewPassword(vars NewPasswordVars) (subject, html, text string, err error) {
	var hb, tb bytes.Buffer
	if err = newPasswordHTMLTpl.Execute(&hb, vars); err != nil {
		return "", "", "", err
	}
	if err = newPasswordTXTTpl.Execute(&tb, vars); err != nil {
		return "", "", "", err
	}
	return subjectNewPassword, hb.String(), tb.String(), nil
}
