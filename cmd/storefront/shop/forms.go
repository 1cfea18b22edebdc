package shop

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"storefront/cmd/storefront/ui"
	"storefront/internal/session"
)

// loginForm holds the two login fields and which one is focused.
type loginForm struct {
	inputs []textinput.Model
	focus  int
}

const (
	loginFieldEmail = iota
	loginFieldPassword
)

func newLoginForm() loginForm {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	f := loginForm{inputs: []textinput.Model{email, password}}
	f.setFocus(0)
	return f
}

func (f *loginForm) setFocus(i int) {
	f.focus = i
	for idx := range f.inputs {
		if idx == i {
			f.inputs[idx].Focus()
		} else {
			f.inputs[idx].Blur()
		}
	}
}

func (f *loginForm) next() { f.setFocus((f.focus + 1) % len(f.inputs)) }

func (f *loginForm) prev() { f.setFocus((f.focus + len(f.inputs) - 1) % len(f.inputs)) }

func (f *loginForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *loginForm) credentials() session.Credentials {
	return session.Credentials{
		Email:    strings.TrimSpace(f.inputs[loginFieldEmail].Value()),
		Password: f.inputs[loginFieldPassword].Value(),
	}
}

func (f *loginForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.setFocus(0)
}

func (f loginForm) view(s ui.Styles) string {
	var sb strings.Builder
	sb.WriteString(s.Title.Render("Sign in") + "\n\n")
	for i, in := range f.inputs {
		label := [...]string{"Email", "Password"}[i]
		sb.WriteString(s.Bold.Render(label) + "\n")
		sb.WriteString(in.View() + "\n\n")
	}
	sb.WriteString(s.Muted.Render("tab: next field · enter: sign in"))
	return sb.String()
}

// signupForm holds the registration fields.
type signupForm struct {
	inputs []textinput.Model
	focus  int
}

const (
	signupFieldName = iota
	signupFieldEmail
	signupFieldPhone
	signupFieldPassword
	signupFieldConfirm
)

var signupLabels = [...]string{"Name", "Email", "Phone", "Password", "Confirm password"}

func newSignupForm() signupForm {
	newInput := func(placeholder string, secret bool) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 120
		in.Width = 40
		if secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		return in
	}

	f := signupForm{inputs: []textinput.Model{
		newInput("name", false),
		newInput("email", false),
		newInput("phone (optional)", false),
		newInput("password", true),
		newInput("confirm password", true),
	}}
	f.setFocus(0)
	return f
}

func (f *signupForm) setFocus(i int) {
	f.focus = i
	for idx := range f.inputs {
		if idx == i {
			f.inputs[idx].Focus()
		} else {
			f.inputs[idx].Blur()
		}
	}
}

func (f *signupForm) next() { f.setFocus((f.focus + 1) % len(f.inputs)) }

func (f *signupForm) prev() { f.setFocus((f.focus + len(f.inputs) - 1) % len(f.inputs)) }

func (f *signupForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *signupForm) registration() session.Registration {
	return session.Registration{
		Name:            strings.TrimSpace(f.inputs[signupFieldName].Value()),
		Email:           strings.TrimSpace(f.inputs[signupFieldEmail].Value()),
		Phone:           strings.TrimSpace(f.inputs[signupFieldPhone].Value()),
		Password:        f.inputs[signupFieldPassword].Value(),
		ConfirmPassword: f.inputs[signupFieldConfirm].Value(),
		Role:            "customer",
	}
}

func (f *signupForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.setFocus(0)
}

func (f signupForm) view(s ui.Styles) string {
	var sb strings.Builder
	sb.WriteString(s.Title.Render("Create account") + "\n\n")
	for i, in := range f.inputs {
		sb.WriteString(s.Bold.Render(signupLabels[i]) + "\n")
		sb.WriteString(in.View() + "\n\n")
	}
	sb.WriteString(s.Muted.Render("tab: next field · enter: create account"))
	return sb.String()
}
