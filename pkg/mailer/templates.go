package mailer

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"
)

//go:embed templates/*
var templateFS embed.FS

// Template names. Each has a .txt body and an .html body rendered inside layout.html.
const (
	TemplateVerification  = "verification"
	TemplatePasswordReset = "password_reset"
)

var subjects = map[string]string{
	TemplateVerification:  "Verify Your Email - %s",
	TemplatePasswordReset: "Reset Your Password - %s",
}

// Data is what every template can reference.
type Data struct {
	AppName   string
	Username  string
	Link      string
	ExpiresIn string
	Year      int
}

// Renderer parses the embedded templates once.
type Renderer struct {
	appName string
	text    map[string]*texttemplate.Template
	html    map[string]*htmltemplate.Template
}

func NewRenderer(appName string) (*Renderer, error) {
	r := &Renderer{
		appName: appName,
		text:    make(map[string]*texttemplate.Template),
		html:    make(map[string]*htmltemplate.Template),
	}

	for name := range subjects {
		txt, err := texttemplate.ParseFS(templateFS, "templates/"+name+".txt")
		if err != nil {
			return nil, fmt.Errorf("parse %s text template: %w", name, err)
		}
		html, err := htmltemplate.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s html template: %w", name, err)
		}
		r.text[name] = txt
		r.html[name] = html
	}

	return r, nil
}

// Render builds the message for name, addressed to `to`.
func (r *Renderer) Render(name, to string, data Data) (Message, error) {
	txt, ok := r.text[name]
	if !ok {
		return Message{}, fmt.Errorf("unknown email template %q", name)
	}

	data.AppName = r.appName
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}

	var textBody, htmlBody bytes.Buffer
	if err := txt.Execute(&textBody, data); err != nil {
		return Message{}, fmt.Errorf("render %s text: %w", name, err)
	}
	if err := r.html[name].ExecuteTemplate(&htmlBody, "layout", data); err != nil {
		return Message{}, fmt.Errorf("render %s html: %w", name, err)
	}

	return Message{
		To:      to,
		Subject: fmt.Sprintf(subjects[name], r.appName),
		Text:    textBody.String(),
		HTML:    htmlBody.String(),
	}, nil
}
