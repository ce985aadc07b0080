// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package synctest runs an in-process fake of the batch sync endpoint for
// tests.
//
// The fake checks the bearer credential, decodes read and write forms,
// records every request and answers through replaceable handlers. The
// default handlers behave like a well-mannered server: reads return an
// incrementing continuation token and no records, writes report "ok" for
// every command and map each placeholder to "real-<temp_id>".
package synctest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
	"github.com/MKhiriev/go-todo-sync/models"
)

// Path is the route the fake serves.
const Path = "/api/v1/sync"

// ReadRequest is a decoded read form.
type ReadRequest struct {
	SyncToken     string
	ResourceTypes []string
}

// Command is one decoded envelope of a write form.
type Command struct {
	Type   string          `json:"type"`
	UUID   string          `json:"uuid"`
	TempID string          `json:"temp_id,omitempty"`
	Args   json.RawMessage `json:"args"`
}

// WriteRequest is a decoded write form.
type WriteRequest struct {
	SyncToken string
	Commands  []Command
}

// Recorded is one request as the fake saw it. Exactly one of Read and Write
// is set.
type Recorded struct {
	Authorization string
	ContentType   string
	Read          *ReadRequest
	Write         *WriteRequest
}

// Reply is what a handler wants sent back. Raw, when set, is written verbatim
// instead of Body. Delay is slept before answering, so clients with a shorter
// timeout see a transport error.
type Reply struct {
	Status int
	Body   any
	Raw    []byte
	Delay  time.Duration
}

// Server is the fake endpoint.
type Server struct {
	srv   *httptest.Server
	token string
	log   *logger.Logger

	mu        sync.Mutex
	requests  []Recorded
	onRead    func(ReadRequest) Reply
	onWrite   func(WriteRequest) Reply
	readCount int
}

// NewServer starts a fake accepting token as the only valid credential.
// Call Close when done.
func NewServer(token string) *Server {
	s := &Server{token: token, log: logger.Nop()}
	s.onRead = s.defaultRead
	s.onWrite = DefaultWrite

	s.srv = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.withLogger)
	router.Use(s.auth)

	router.Post(Path, s.sync)

	return router
}

// URL returns the absolute sync URL of the fake.
func (s *Server) URL() string { return s.srv.URL + Path }

// Close shuts the fake down.
func (s *Server) Close() { s.srv.Close() }

// OnRead replaces the read handler.
func (s *Server) OnRead(fn func(ReadRequest) Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRead = fn
}

// OnWrite replaces the write handler.
func (s *Server) OnWrite(fn func(WriteRequest) Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onWrite = fn
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastWrite returns the most recent write request, or nil.
func (s *Server) LastWrite() *WriteRequest {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Write != nil {
			return reqs[i].Write
		}
	}
	return nil
}

func (s *Server) withLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(s.log.WithContext(r.Context())))
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token != s.token {
			logger.FromRequest(r).Warn().Str("func", "synctest.auth").Msg("rejected credential")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) sync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	rec := Recorded{
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
	}

	var reply Reply
	if raw := r.PostForm.Get("commands"); raw != "" {
		var cmds []Command
		if err := json.Unmarshal([]byte(raw), &cmds); err != nil {
			log.Err(err).Str("func", "synctest.sync").Msg("bad commands")
			http.Error(w, "commands is not a JSON array", http.StatusBadRequest)
			return
		}
		req := WriteRequest{SyncToken: r.PostForm.Get("sync_token"), Commands: cmds}
		rec.Write = &req

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		handler := s.onWrite
		s.mu.Unlock()

		reply = handler(req)
	} else {
		var kinds []string
		if raw := r.PostForm.Get("resource_types"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &kinds); err != nil {
				http.Error(w, "resource_types is not a JSON array", http.StatusBadRequest)
				return
			}
		}
		req := ReadRequest{SyncToken: r.PostForm.Get("sync_token"), ResourceTypes: kinds}
		rec.Read = &req

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		handler := s.onRead
		s.mu.Unlock()

		reply = handler(req)
	}

	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-r.Context().Done():
			return
		}
	}

	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}

	if reply.Raw != nil {
		_, _ = utils.WriteRaw(w, "application/json", reply.Raw, status)
		return
	}
	if _, err := utils.WriteJSON(w, reply.Body, status); err != nil {
		log.Err(err).Str("func", "synctest.sync").Msg("write reply")
	}
}

func (s *Server) defaultRead(req ReadRequest) Reply {
	s.mu.Lock()
	s.readCount++
	n := s.readCount
	s.mu.Unlock()

	return Reply{Body: models.ReadResponse{
		SyncToken: fmt.Sprintf("read-%d", n),
		FullSync:  req.SyncToken == models.FullSyncToken,
	}}
}

// DefaultWrite acknowledges every command and resolves every placeholder to
// "real-<temp_id>".
func DefaultWrite(req WriteRequest) Reply {
	return Reply{Body: OKWriteResponse(req, "write-token")}
}

// OKWriteResponse builds a response reporting success for every command in req.
func OKWriteResponse(req WriteRequest, token string) models.WriteResponse {
	resp := models.WriteResponse{
		SyncToken:     token,
		SyncStatus:    make(map[string]models.CommandStatus, len(req.Commands)),
		TempIDMapping: make(map[string]string),
	}
	for _, c := range req.Commands {
		resp.SyncStatus[c.UUID] = models.StatusOK()
		if c.TempID != "" {
			resp.TempIDMapping[c.TempID] = "real-" + c.TempID
		}
	}
	return resp
}
