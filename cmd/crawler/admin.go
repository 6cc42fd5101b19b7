package main

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/relabs-tech/ghcrawler/core/logger"
	"github.com/relabs-tech/ghcrawler/core/store"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// queueStats is the narrow subset of a queue implementation the admin
// surface can introspect; only the in-memory queue satisfies it today, the
// Kafka queue's depth lives in Kafka's own consumer lag metrics instead.
type queueStats interface {
	Len() int
}

// newAdminRouter builds the small HTTP surface an operator uses to poke at
// a running crawler: look up a document by URN, and check queue depth. It
// is intentionally tiny — the crawl itself is driven by queue consumers,
// not by this router.
func newAdminRouter(st store.Store, stats queueStats) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/documents/{urn}", func(w http.ResponseWriter, req *http.Request) {
		urnKey := urn.URN(mux.Vars(req)["urn"])
		doc, err := st.Get(req.Context(), urnKey)
		if err != nil {
			logger.FromContext(req.Context()).Errorf("admin: looking up %s: %s", urnKey, err.Error())
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if doc == nil {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	}).Methods(http.MethodGet)

	r.HandleFunc("/queue/stats", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		depth := -1
		if stats != nil {
			depth = stats.Len()
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"queued": depth})
	}).Methods(http.MethodGet)

	return r
}
