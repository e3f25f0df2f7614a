package httpapi

import (
	"net/http"
	"time"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/menu"
)

const menuLoadFailed = "Failed to load menu. Please try again later."

type menuResponse struct {
	Items    []menu.Item `json:"items"`
	Loading  bool        `json:"loading"`
	Category string      `json:"category"`
	Search   string      `json:"search,omitempty"`
}

func filterFromQuery(r *http.Request) menu.Filter {
	f := menu.Filter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
	}
	if f.Category == "" {
		f.Category = menu.CategoryAll
	}
	return f
}

func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	waitReady(r.Context(), h.menu.Ready(), 2*time.Second)

	items, loaded, err := h.menu.Items()
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, apiError{Error: menuLoadFailed})
		return
	}

	f := filterFromQuery(r)
	writeJSON(w, http.StatusOK, menuResponse{
		Items:    menu.Apply(items, f),
		Loading:  !loaded,
		Category: f.Category,
		Search:   f.Search,
	})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": menu.Categories})
}
