package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ncolombo/taskpilot/internal/app/chat"
	"github.com/ncolombo/taskpilot/internal/app/task"
	"github.com/ncolombo/taskpilot/internal/domain"
)

type Server struct {
	chatSvc *chat.Service
	taskSvc *task.Service
}

func NewServer(chatSvc *chat.Service, taskSvc *task.Service, resolver domain.IdentityResolver) http.Handler {
	s := &Server{chatSvc: chatSvc, taskSvc: taskSvc}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/healthz/live", s.handleHealth)
	mux.HandleFunc("/healthz/ready", s.handleHealth)

	// /api/v1/chat → POST: one turn
	mux.HandleFunc("/api/v1/chat", s.handleChat)

	// /api/v1/tasks      → GET: list, POST: create
	// /api/v1/tasks/{id} → PUT: update, DELETE: delete
	mux.HandleFunc("/api/v1/tasks", s.handleTasks)
	mux.HandleFunc("/api/v1/tasks/", s.handleTaskWithID)

	return chainMiddlewares(
		mux,
		func(h http.Handler) http.Handler { return withAuth(resolver, h) },
		withCORS,
		withLogging,
		withRequestID,
	)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type chatResponse struct {
	ConversationID   string            `json:"conversation_id"`
	UserMessage      string            `json:"user_message"`
	AssistantMessage string            `json:"assistant_message"`
	History          []messageResponse `json:"history"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type taskResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	Priority  string     `json:"priority"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Tags      string     `json:"tags,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type taskListResponse struct {
	Tasks []taskResponse `json:"tasks"`
	Count int            `json:"count"`
}

type createTaskRequest struct {
	Title    string `json:"title"`
	Priority string `json:"priority,omitempty"`
	DueDate  string `json:"due_date,omitempty"`
	Tags     string `json:"tags,omitempty"`
}

type updateTaskRequest struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Priority  *string `json:"priority,omitempty"`
	DueDate   *string `json:"due_date,omitempty"`
	Tags      *string `json:"tags,omitempty"`
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	owner, ok := ownerFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.chatSvc.ProcessTurn(r.Context(), chat.TurnInput{
		Owner:          owner,
		ConversationID: req.ConversationID,
		Message:        req.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	history := make([]messageResponse, 0, len(out.History))
	for _, m := range out.History {
		history = append(history, messageResponse{
			ID:        string(m.ID),
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, chatResponse{
		ConversationID:   string(out.ConversationID),
		UserMessage:      out.UserMessage,
		AssistantMessage: out.AssistantMessage,
		History:          history,
	})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	switch r.Method {
	case http.MethodGet:
		var completed *bool
		switch r.URL.Query().Get("completed") {
		case "true":
			v := true
			completed = &v
		case "false":
			v := false
			completed = &v
		}

		tasks, err := s.taskSvc.ListTasks(r.Context(), owner, completed)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]taskResponse, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, toTaskResponse(t))
		}
		writeJSON(w, http.StatusOK, taskListResponse{Tasks: out, Count: len(out)})

	case http.MethodPost:
		var req createTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}

		t, err := s.taskSvc.CreateTask(r.Context(), owner, task.CreateInput{
			Title:    req.Title,
			Priority: req.Priority,
			DueDate:  req.DueDate,
			Tags:     req.Tags,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toTaskResponse(t))

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleTaskWithID(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(r.Context())
	if !ok {
		unauthorized(w)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/tasks/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req updateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}

		t, err := s.taskSvc.UpdateTask(r.Context(), owner, id, task.UpdateInput{
			Title:     req.Title,
			Completed: req.Completed,
			Priority:  req.Priority,
			DueDate:   req.DueDate,
			Tags:      req.Tags,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTaskResponse(t))

	case http.MethodDelete:
		if err := s.taskSvc.DeleteTask(r.Context(), owner, id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:        string(t.ID),
		Title:     t.Title,
		Completed: t.Completed,
		Priority:  string(t.Priority),
		DueDate:   t.DueDate,
		Tags:      t.Tags,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch domain.KindOf(err) {
	case domain.KindInvalidArgument, domain.KindMissingParameters:
		badRequest(w, err.Error())
	case domain.KindNotFound, domain.KindConversationNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal server error",
		})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func unauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
