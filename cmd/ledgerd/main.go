// Command ledgerd is a development stand-in for the ledger gateway. It
// serves the same JSON API the gateway bridge exposes, backed by an
// in-memory ledger, so clients can be exercised without a deployed chain.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"ledgerchat/internal/domain"
	"ledgerchat/internal/ledger"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	srv := &server{ledger: ledger.NewMemory(), log: logger}
	logger.Info("ledgerd listening", zap.String("addr", *addr))
	logger.Fatal("serve", zap.Error(http.ListenAndServe(*addr, srv.routes())))
}

type server struct {
	ledger *ledger.Memory
	log    *zap.Logger
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /messages", func(w http.ResponseWriter, r *http.Request) {
		var rec domain.MessageRecord
		if !s.decode(w, r, &rec) {
			return
		}
		out, err := s.ledger.AppendMessage(r.Context(), rec)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		s.log.Debug("message appended",
			zap.String("conversation", string(out.ConversationID)),
			zap.String("id", out.ID))
		writeJSON(w, out)
	})
	mux.HandleFunc("POST /reactions", func(w http.ResponseWriter, r *http.Request) {
		var rec domain.ReactionRecord
		if !s.decode(w, r, &rec) {
			return
		}
		s.append(w, r.Context(), func(ctx context.Context) error {
			return s.ledger.AppendReaction(ctx, rec)
		})
	})
	mux.HandleFunc("POST /statuses", func(w http.ResponseWriter, r *http.Request) {
		var rec domain.StatusRecord
		if !s.decode(w, r, &rec) {
			return
		}
		s.append(w, r.Context(), func(ctx context.Context) error {
			return s.ledger.AppendStatus(ctx, rec)
		})
	})
	mux.HandleFunc("POST /supersedes", func(w http.ResponseWriter, r *http.Request) {
		var rec domain.SupersedeRecord
		if !s.decode(w, r, &rec) {
			return
		}
		s.append(w, r.Context(), func(ctx context.Context) error {
			return s.ledger.AppendSupersede(ctx, rec)
		})
	})

	mux.HandleFunc("GET /conversations/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		s.list(w, r, func(ctx context.Context, id domain.ConversationID) (any, error) {
			return s.ledger.Messages(ctx, id)
		})
	})
	mux.HandleFunc("GET /conversations/{id}/reactions", func(w http.ResponseWriter, r *http.Request) {
		s.list(w, r, func(ctx context.Context, id domain.ConversationID) (any, error) {
			return s.ledger.Reactions(ctx, id)
		})
	})
	mux.HandleFunc("GET /conversations/{id}/statuses", func(w http.ResponseWriter, r *http.Request) {
		s.list(w, r, func(ctx context.Context, id domain.ConversationID) (any, error) {
			return s.ledger.Statuses(ctx, id)
		})
	})
	mux.HandleFunc("GET /conversations/{id}/supersedes", func(w http.ResponseWriter, r *http.Request) {
		s.list(w, r, func(ctx context.Context, id domain.ConversationID) (any, error) {
			return s.ledger.Supersedes(ctx, id)
		})
	})

	mux.HandleFunc("POST /contacts", func(w http.ResponseWriter, r *http.Request) {
		var rec domain.ContactRecord
		if !s.decode(w, r, &rec) {
			return
		}
		s.append(w, r.Context(), func(ctx context.Context) error {
			return s.ledger.PutContact(ctx, rec)
		})
	})
	mux.HandleFunc("GET /contacts/{owner}/{address}", func(w http.ResponseWriter, r *http.Request) {
		owner := domain.Address(r.PathValue("owner"))
		address := domain.Address(r.PathValue("address"))
		rec, ok, err := s.ledger.Contact(r.Context(), owner, address)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		writeJSON(w, rec)
	})

	mux.HandleFunc("POST /keys", func(w http.ResponseWriter, r *http.Request) {
		var rec domain.PublicKeyRecord
		if !s.decode(w, r, &rec) {
			return
		}
		s.append(w, r.Context(), func(ctx context.Context) error {
			return s.ledger.PublishKey(ctx, rec)
		})
	})
	mux.HandleFunc("GET /keys/{address}", func(w http.ResponseWriter, r *http.Request) {
		address := domain.Address(r.PathValue("address"))
		key, ok, err := s.ledger.PublicKey(r.Context(), address)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		writeJSON(w, domain.PublicKeyRecord{Address: address, PublicKey: key})
	})

	mux.HandleFunc("GET /events/head", func(w http.ResponseWriter, r *http.Request) {
		_, seq := s.ledger.EventsSince(0)
		writeJSON(w, struct {
			Seq int `json:"seq"`
		}{Seq: seq})
	})
	mux.HandleFunc("GET /events", func(w http.ResponseWriter, r *http.Request) {
		after, _ := strconv.Atoi(r.URL.Query().Get("after"))
		events, seq := s.ledger.EventsSince(after)
		writeJSON(w, struct {
			Events []domain.Event `json:"events"`
			Seq    int            `json:"seq"`
		}{Events: events, Seq: seq})
	})

	return mux
}

func (s *server) decode(w http.ResponseWriter, r *http.Request, out any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *server) append(w http.ResponseWriter, ctx context.Context, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *server) list(w http.ResponseWriter, r *http.Request, fn func(context.Context, domain.ConversationID) (any, error)) {
	id := domain.ConversationID(r.PathValue("id"))
	out, err := fn(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
