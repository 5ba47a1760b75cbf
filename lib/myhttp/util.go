package myhttp

import (
	"fmt"
	"net/http"
)

func HostnameWithScheme(r *http.Request) string {
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// RedirectAfterPost sends the browser to a page that can be safely reloaded.
func RedirectAfterPost(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, HostnameWithScheme(r)+path, http.StatusSeeOther)
}
