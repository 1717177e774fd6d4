package handler

import "net/http"

type redirectResponse struct {
	url  string
	code int
}

func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	http.Redirect(w, req, r.url, r.code)
	return nil
}

// Redirect responds with 303 See Other, which turns a form POST into a GET.
func Redirect(url string) Response {
	return RedirectWithCode(url, http.StatusSeeOther)
}

// RedirectWithCode panics on a status outside 3xx.
func RedirectWithCode(url string, code int) Response {
	if code < http.StatusMultipleChoices || code > http.StatusPermanentRedirect {
		panic("handler: redirect status must be 3xx")
	}
	return redirectResponse{url: url, code: code}
}
