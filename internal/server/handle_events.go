package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Coshio12/gestionar-carrera/internal/inscritos"
)

const (
	eventsPingInterval = 30 * time.Second
	eventsRetryMS      = 3000
)

// handleEvents streams a category's ChangeEvents as Server-Sent Events, one
// named event per change. Missed events are not replayed; a reconnecting
// client reloads the list instead.
func handleEvents(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := inscritos.ID(chi.URLParam(r, "categoryID"))

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		ch := broker.Subscribe(categoryID)
		defer broker.Unsubscribe(categoryID, ch)

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "retry: %d\n\n", eventsRetryMS)
		flusher.Flush()

		ping := time.NewTicker(eventsPingInterval)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case msg := <-ch:
				fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", msg.Seq, msg.Event, msg.Data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
