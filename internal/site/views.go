package site

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/mtgqe/cardsearch/handler"
	"github.com/mtgqe/cardsearch/pkg/forms"
)

// Views renders the site's pages. Nil members fall back to DefaultViews.
type Views struct {
	Index     func(form *forms.Form) templ.Component
	Advanced  func(form *forms.Form) templ.Component
	NotFound  func() templ.Component
	ErrorPage func(handler.ErrorPageParams) templ.Component
}

// DefaultViews renders plain pages straight from the form definitions.
func DefaultViews() Views {
	return Views{
		Index:     formPage,
		Advanced:  formPage,
		NotFound:  notFoundPage,
		ErrorPage: errorPage,
	}
}

func (v Views) withDefaults() Views {
	d := DefaultViews()
	if v.Index == nil {
		v.Index = d.Index
	}
	if v.Advanced == nil {
		v.Advanced = d.Advanced
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ErrorPage == nil {
		v.ErrorPage = d.ErrorPage
	}
	return v
}

// htmlWriter writes to w until the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

func esc(s string) string {
	return templ.EscapeString(s)
}

func layout(title string, body func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title></head><body>`, esc(title))
		h.raw(`<nav><a href="/">Search</a> <a href="/advanced">Advanced search</a></nav><main>`)
		body(h)
		h.raw(`</main></body></html>`)
		return h.err
	})
}

func formPage(form *forms.Form) templ.Component {
	return layout(form.Title, func(h *htmlWriter) {
		h.raw(`<h1>%s</h1>`, esc(form.Title))
		h.raw(`<form id="%s" action="%s" method="%s">`, esc(form.ID), esc(form.Action), strings.ToLower(form.Method))
		for i, f := range form.Fields {
			id := fmt.Sprintf("%s-%s-%d", form.ID, f.Name, i)
			h.raw(`<div><label for="%s">%s</label>`, id, esc(f.Label))
			switch f.Element {
			case forms.ElementSelect:
				multiple := ""
				if f.Multiple {
					multiple = " multiple"
				}
				h.raw(`<select id="%s" name="%s"%s>`, id, esc(f.Name), multiple)
				for _, o := range f.Options {
					h.raw(`<option value="%s">%s</option>`, esc(o.Value), esc(o.Label))
				}
				h.raw(`</select>`)
			case forms.ElementTextarea:
				h.raw(`<textarea id="%s" name="%s"></textarea>`, id, esc(f.Name))
			default:
				h.raw(`<input id="%s" name="%s" type="%s">`, id, esc(f.Name), esc(f.Type))
			}
			h.raw(`</div>`)
		}
		h.raw(`<button type="submit">Search</button></form>`)
	})
}

func notFoundPage() templ.Component {
	return layout("Not found", func(h *htmlWriter) {
		h.raw(`<h1>Page not found</h1><p>The page you requested does not exist. <a href="/">Start a new search</a>.</p>`)
	})
}

func errorPage(p handler.ErrorPageParams) templ.Component {
	return layout(http.StatusText(p.StatusCode), func(h *htmlWriter) {
		h.raw(`<h1>%d %s</h1><p>%s</p>`, p.StatusCode, esc(http.StatusText(p.StatusCode)), esc(p.Error))
		if p.RequestID != "" {
			h.raw(`<p><small>Request %s</small></p>`, esc(p.RequestID))
		}
	})
}
