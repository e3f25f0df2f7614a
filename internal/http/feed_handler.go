package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/feed"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/menu"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/order"
)

const writeWait = 10 * time.Second

// feedMessage is one frame pushed over a realtime socket.
type feedMessage[T any] struct {
	Type  string `json:"type"`
	Items []T    `json:"items"`
	Error string `json:"error,omitempty"`
}

// MenuFeed streams catalog snapshots, filtered by the category and search
// query of the upgrade request.
func (h *Handler) MenuFeed(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r)
	serveFeed(h, w, r, h.catalog.Subscribe, func(items []menu.Item) []menu.Item {
		out := make([]menu.Item, 0, len(items))
		for _, it := range items {
			out = append(out, it.WithDefaults())
		}
		return menu.Apply(out, f)
	}, menuLoadFailed)
}

// OrdersFeed streams the caller's order history, newest first.
func (h *Handler) OrdersFeed(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	subscribe := func(ctx context.Context) *feed.Subscription[order.Order] {
		return h.orders.SubscribeByUser(ctx, userID)
	}
	serveFeed(h, w, r, subscribe, func(orders []order.Order) []orderView {
		sorted := append([]order.Order(nil), orders...)
		order.SortByDateDesc(sorted)
		return newOrderViews(sorted)
	}, historyLoadFailed)
}

func serveFeed[T, V any](
	h *Handler,
	w http.ResponseWriter,
	r *http.Request,
	subscribe func(context.Context) *feed.Subscription[T],
	view func([]T) []V,
	failure string,
) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The client never sends anything meaningful; reading detects the close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	sub := subscribe(ctx)
	defer sub.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}

			msg := feedMessage[V]{Type: "snapshot"}
			if ev.Err != nil {
				h.logf("feed error: %v", ev.Err)
				msg = feedMessage[V]{Type: "error", Error: failure}
			} else {
				msg.Items = view(ev.Items)
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}
