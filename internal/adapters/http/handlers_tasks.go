package web

import (
	"errors"
	"net/http"
	"time"

	taskStore "opsdesk/internal/adapters/storage/task"
	"opsdesk/internal/application/orchestrators"
	"opsdesk/internal/domain/task"
)

type createTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	AssigneeID  string    `json:"assignee_id"`
	ClientID    string    `json:"client_id"`
	Priority    string    `json:"priority"`
}

type updateTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	DueDate     time.Time `json:"due_date"`
	AssigneeID  string    `json:"assignee_id"`
	ClientID    string    `json:"client_id"`
	Priority    string    `json:"priority"`
}

// handleTasks handles GET (list) and POST (create) for /api/tasks.
func handleTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		list, err := stores.TaskStore.List(ctx, taskStore.ListFilter{
			Limit:      queryInt(r, "limit"),
			Offset:     queryInt(r, "offset"),
			Status:     r.URL.Query().Get("status"),
			Priority:   r.URL.Query().Get("priority"),
			AssigneeID: r.URL.Query().Get("assignee_id"),
			ClientID:   r.URL.Query().Get("client_id"),
			Search:     r.URL.Query().Get("q"),
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case "POST":
		var req createTaskRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		t, err := orchestrators.ExecuteCreateTask(ctx, orchestrators.CreateTaskInput{
			Title:       req.Title,
			Description: req.Description,
			DueDate:     req.DueDate,
			AssigneeID:  req.AssigneeID,
			ClientID:    req.ClientID,
			Priority:    req.Priority,
		}, orchestrators.CreateTaskDeps{
			TaskStore:  stores.TaskStore,
			GenerateID: generateID,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)

	default:
		methodNotAllowed(w)
	}
}

// handleTaskByID dispatches /api/tasks/{id} and its sub-resources.
func handleTaskByID(w http.ResponseWriter, r *http.Request) {
	id, sub := splitResource(r.URL.Path, "/api/tasks/")
	if id == "" {
		apiError(w, http.StatusBadRequest, "task ID is required")
		return
	}

	switch sub {
	case "":
		handleTask(w, r, id)
	case "complete":
		handleTaskComplete(w, r, id)
	case "priority-draft":
		handleTaskPriorityDraft(w, r, id)
	case "subtasks-draft":
		handleTaskSubtasksDraft(w, r, id)
	default:
		apiError(w, http.StatusNotFound, "not found")
	}
}

func handleTask(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		t, err := stores.TaskStore.GetByID(ctx, id)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)

	case "PUT":
		var req updateTaskRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		t, err := orchestrators.ExecuteUpdateTask(ctx, orchestrators.UpdateTaskInput{
			TaskID:      id,
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			DueDate:     req.DueDate,
			AssigneeID:  req.AssigneeID,
			ClientID:    req.ClientID,
			Priority:    req.Priority,
		}, orchestrators.UpdateTaskDeps{TaskStore: stores.TaskStore})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)

	case "DELETE":
		if !confirmedDelete(w, r) {
			return
		}
		// Make sure the deleted task does not keep the timer slot occupied.
		taskTimer.Drain(id)
		if err := orchestrators.ExecuteDeleteTask(ctx, orchestrators.DeleteTaskInput{TaskID: id},
			orchestrators.DeleteTaskDeps{TaskStore: stores.TaskStore}); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}

func handleTaskComplete(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}
	// The timer slot is drained only once the task is known to be
	// completable; a rejected request keeps the timer running.
	existing, err := stores.TaskStore.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing.Status == task.StatusCompleted {
		respondError(w, task.ErrAlreadyCompleted)
		return
	}
	// A running timer for this task is folded in rather than flushed, so
	// the elapsed seconds are written exactly once.
	extra := taskTimer.Drain(id)
	t, err := orchestrators.ExecuteCompleteTask(r.Context(), orchestrators.CompleteTaskInput{
		TaskID:       id,
		ExtraSeconds: extra,
	}, orchestrators.CompleteTaskDeps{TaskStore: stores.TaskStore})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func handleTaskPriorityDraft(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}
	draft, err := orchestrators.ExecuteSuggestTaskPriority(r.Context(),
		orchestrators.SuggestTaskPriorityInput{TaskID: id},
		orchestrators.SuggestTaskPriorityDeps{
			TaskStore: stores.TaskStore,
			Completer: aiCompleter,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func handleTaskSubtasksDraft(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}
	draft, err := orchestrators.ExecuteExpandSubtasks(r.Context(),
		orchestrators.ExpandSubtasksInput{TaskID: id},
		orchestrators.ExpandSubtasksDeps{
			TaskStore: stores.TaskStore,
			Completer: aiCompleter,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

type timerStartRequest struct {
	TaskID string `json:"task_id"`
}

// handleTimerStatus reports the single timer slot.
func handleTimerStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, taskTimer.Status())
}

// handleTimerStart starts timing a task, flushing any running timer.
func handleTimerStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}
	var req timerStartRequest
	if err := strictDecode(r, &req); err != nil {
		apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	status, err := taskTimer.Start(r.Context(), req.TaskID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// handleTimerStop stops the running timer and persists its seconds.
func handleTimerStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}
	status, err := taskTimer.Stop(r.Context())
	if err != nil {
		if errors.Is(err, orchestrators.ErrTimerNotRunning) {
			apiError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
