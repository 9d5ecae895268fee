package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
)

//go:embed *.tmpl
var FS embed.FS

// Template names.
const (
	Welcome      = "welcome"
	CircleJoined = "circle_joined"
)

// NotificationData holds every field the templates may reference.
type NotificationData struct {
	Name       string `json:"Name"`
	Email      string `json:"Email"`
	AppName    string `json:"AppName"`
	AppURL     string `json:"AppURL"`
	CircleName string `json:"CircleName"`
	CircleID   string `json:"CircleID"`
	MemberName string `json:"MemberName"`
}

// ToMap converts NotificationData to a map[string]any for EmailJob.Data
func ToMap(d NotificationData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// FromMap is the inverse of ToMap; unknown keys are ignored.
func FromMap(m map[string]any) NotificationData {
	var d NotificationData
	b, _ := json.Marshal(m)
	_ = json.Unmarshal(b, &d)
	return d
}

func defaultFn(fallback string, value string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

var funcs = map[string]any{"default": defaultFn}

func renderFile(filename string, isHTML bool, data any) (string, error) {
	var buf bytes.Buffer
	var err error
	if isHTML {
		tpl, e := htmpl.New(filename).Funcs(htmpl.FuncMap(funcs)).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse html %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	} else {
		tpl, e := texttpl.New(filename).Funcs(texttpl.FuncMap(funcs)).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse text %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	}
	if err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render loads and renders subject, text, and html templates for the given base name.
// Expects: <name>.subject.tmpl, <name>.text.tmpl, <name>.html.tmpl
func Render(name string, data any) (subject string, text string, html string, err error) {
	subject, err = renderFile(name+".subject.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	text, err = renderFile(name+".text.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderFile(name+".html.tmpl", true, data)
	if err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
