package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mcoot/minesweeper/internal/web/templates"
	"github.com/mcoot/minesweeper/internal/web/templates/layout"
)

// LoginData is the data for the login page
type LoginData struct {
	layout.PageData
	Username string
	Error    string
	Next     string
}

// Login renders the login form
func Login(data LoginData) templ.Component {
	return layout.Base(data.PageData, templates.Func(func(_ context.Context, b *templates.Builder) error {
		b.Raw(`<h1>Log in</h1>`)
		if data.Error != "" {
			b.Raw(`<p class="field-error" id="form-error">`)
			b.Text(data.Error)
			b.Raw(`</p>`)
		}
		b.Raw(`<form id="login-form" class="stacked" method="post" action="/login">`)
		b.Rawf(`<label for="username">Username</label><input type="text" id="username" name="username" value="%s" required>`,
			templates.Escape(data.Username))
		b.Raw(`<label for="password">Password</label><input type="password" id="password" name="password" required>`)
		if data.Next != "" {
			b.Rawf(`<input type="hidden" name="next" value="%s">`, templates.Escape(data.Next))
		}
		b.Raw(`<button type="submit">Log in</button></form>`)
		b.Raw(`<p>No account? <a href="/register">Register</a></p>`)
		return nil
	}))
}

// RegisterData is the data for the registration page
type RegisterData struct {
	layout.PageData
	Username    string
	DisplayName string
	Error       string
	FieldErrors map[string]string
}

// Register renders the registration form
func Register(data RegisterData) templ.Component {
	return layout.Base(data.PageData, templates.Func(func(_ context.Context, b *templates.Builder) error {
		b.Raw(`<h1>Create an account</h1>`)
		if data.Error != "" {
			b.Raw(`<p class="field-error" id="form-error">`)
			b.Text(data.Error)
			b.Raw(`</p>`)
		}
		b.Raw(`<form id="register-form" class="stacked" method="post" action="/register">`)
		field := func(name, label, inputType, value string) {
			b.Rawf(`<label for="%s">%s</label><input type="%s" id="%s" name="%s" value="%s">`,
				name, label, inputType, name, name, templates.Escape(value))
			if msg := data.FieldErrors[name]; msg != "" {
				b.Rawf(`<span class="field-error" data-field="%s">`, name)
				b.Text(msg)
				b.Raw(`</span>`)
			}
		}
		field("username", "Username", "text", data.Username)
		field("display_name", "Display name", "text", data.DisplayName)
		field("password", "Password", "password", "")
		field("password_confirm", "Confirm password", "password", "")
		b.Raw(`<button type="submit">Register</button></form>`)
		return nil
	}))
}
