package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/rushhour/game/service"
	"github.com/wricardo/mcp-training/rushhour/game/solver"
	"github.com/wricardo/mcp-training/rushhour/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.SolverService
	hub     *websocket.Hub
	router  *mux.Router
	log     logrus.FieldLogger
}

// NewServer creates a new API server. hub may be nil, in which case no
// WebSocket route is served and nothing is broadcast.
func NewServer(solverService service.SolverService, hub *websocket.Hub, logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Server{
		service: solverService,
		hub:     hub,
		router:  mux.NewRouter(),
		log:     logger,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(s.logRequests)

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/algorithms", s.handleAlgorithms).Methods("GET")

	// Puzzle library
	api.HandleFunc("/puzzles", s.handleListPuzzles).Methods("GET")
	api.HandleFunc("/puzzles", s.handleSavePuzzle).Methods("POST")
	api.HandleFunc("/puzzles/{name}", s.handleGetPuzzle).Methods("GET")

	// Solving
	api.HandleFunc("/solve", s.handleSolve).Methods("POST")

	// Runs
	api.HandleFunc("/runs", s.handleListRuns).Methods("GET")
	api.HandleFunc("/runs/{id}", s.handleGetRun).Methods("GET")
	api.HandleFunc("/runs/{id}", s.handleDeleteRun).Methods("DELETE")
	api.HandleFunc("/runs/{id}/replay", s.handleReplay).Methods("GET")

	if s.hub != nil {
		s.router.HandleFunc("/ws", s.handleWebSocket)
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debug("request")
	})
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error": message,
		"code":  status,
	})
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrPuzzleNotFound), errors.Is(err, service.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, solver.ErrInvalidAlgorithm),
		errors.Is(err, solver.ErrInvalidHeuristic):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidPuzzle):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrRunAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
	}
	respondError(w, status, err.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	type algorithmInfo struct {
		Name     string `json:"name"`
		Title    string `json:"title"`
		Informed bool   `json:"informed"`
	}

	algorithms := make([]algorithmInfo, 0, len(solver.Algorithms))
	for _, a := range solver.Algorithms {
		algorithms = append(algorithms, algorithmInfo{Name: string(a), Title: a.Title(), Informed: a.Informed()})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"algorithms": algorithms,
		"heuristics": []string{solver.Manhattan.String(), solver.Blocking.String()},
	})
}

// Puzzle Handlers

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	puzzles, err := s.service.ListPuzzles(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if puzzles == nil {
		puzzles = []*service.PuzzleInfo{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(puzzles),
		"puzzles": puzzles,
	})
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	detail, err := s.service.GetPuzzle(r.Context(), name)
	if err != nil {
		s.fail(w, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, detail.Text)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleSavePuzzle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := s.service.SavePuzzle(r.Context(), req.Name, req.Text)
	if err != nil {
		s.fail(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

// Solve Handler

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req service.SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	run, err := s.service.Solve(r.Context(), req)
	if err != nil {
		s.fail(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastRun(run.ID, run)
		if run.Puzzle != "" {
			s.hub.BroadcastRun(websocket.PuzzleChannel(run.Puzzle), run)
		}
	}

	respondJSON(w, http.StatusCreated, run)
}

// Run Handlers

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.service.ListRuns(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	if runs == nil {
		runs = []*service.RunInfo{}
	}
	query := r.URL.Query()
	total := len(runs)

	if name := query.Get("puzzle"); name != "" {
		filtered := runs[:0]
		for _, run := range runs {
			if run.Puzzle == name {
				filtered = append(filtered, run)
			}
		}
		runs = filtered
	}

	sortBy := query.Get("sort") // "created" (default), "moves", "nodes"
	order := query.Get("order") // "asc", "desc" (default)
	if sortBy == "" {
		sortBy = "created"
	}
	if order == "" {
		order = "desc"
	}

	less := func(a, b *service.RunInfo) bool {
		switch sortBy {
		case "moves":
			return a.MoveCount < b.MoveCount
		case "nodes":
			return a.NodesExplored < b.NodesExplored
		}
		return a.CreatedAt.Before(b.CreatedAt)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		if order == "asc" {
			return less(runs[i], runs[j])
		}
		return less(runs[j], runs[i])
	})

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(runs) {
			runs = runs[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(runs),
		"total": total,
		"runs":  runs,
		"sort":  sortBy,
		"order": order,
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.service.GetRun(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err)
		return
	}

	respondJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	if err := s.service.DeleteRun(r.Context(), runID); err != nil {
		s.fail(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(runID, websocket.EventRunDeleted, map[string]string{"id": runID})
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Run %s deleted", runID),
	})
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := service.ReplayOptions{
		Combine: parseBool(query.Get("combine")),
		Steps:   parseBool(query.Get("steps")),
	}

	replay, err := s.service.Replay(r.Context(), mux.Vars(r)["id"], opts)
	if err != nil {
		s.fail(w, err)
		return
	}

	respondJSON(w, http.StatusOK, replay)
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var channel string
	switch {
	case query.Get("run") != "":
		runID := query.Get("run")
		if _, err := s.service.GetRun(r.Context(), runID); err != nil {
			http.Error(w, "Invalid run", http.StatusNotFound)
			return
		}
		channel = runID
	case query.Get("puzzle") != "":
		name := query.Get("puzzle")
		if _, err := s.service.GetPuzzle(r.Context(), name); err != nil {
			http.Error(w, "Invalid puzzle", http.StatusNotFound)
			return
		}
		channel = websocket.PuzzleChannel(name)
	default:
		http.Error(w, "run or puzzle parameter required", http.StatusBadRequest)
		return
	}

	s.hub.ServeWS(w, r, channel)
}
