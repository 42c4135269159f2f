package handler

import (
	"net/http"
	"net/url"
	"sincromei/pkg/controller"

	"github.com/go-chi/chi/v5"
)

// CNPJParam is the route parameter holding the identifier.
const CNPJParam = "cnpj"

// GetCNPJ looks up the identifier in the path and writes its public record.
func (h Handler) GetCNPJ(w http.ResponseWriter, r *http.Request) {
	rec, err := h.deps.Lookup.Lookup(r.Context(), pathParam(r, CNPJParam))
	if err != nil {
		h.WriteError(r.Context(), w, err)

		return
	}

	controller.WriteJSON(w, http.StatusOK, rec)
}

// pathParam returns the percent-decoded value of a route parameter. chi
// matches on the raw path, so escapes reach the handler untouched.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}

	return v
}
