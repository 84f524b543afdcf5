package webui

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/netresearch/go-cron"
	"k8s.io/utils/ptr"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/thegeeklab/scheduler-kubernetes/pkg/spi"
	"github.com/thegeeklab/scheduler-kubernetes/pkg/util/k8s"
)

// APIVersion is reported by the version endpoint.
const APIVersion = "v1.0.0"

// ScheduleEntry is the API representation of a schedule.
type ScheduleEntry struct {
	ScheduleName       string            `json:"scheduleName"`
	TaskDefinitionName string            `json:"taskDefinitionName"`
	ScheduleProperties map[string]string `json:"scheduleProperties"`

	// NextRun is a hint computed from the cron expression. It is omitted if
	// the expression cannot be parsed; the cluster remains authoritative.
	NextRun *time.Time `json:"nextRun,omitempty"`
}

// APIHandler exposes a scheduler over HTTP.
type APIHandler struct {
	scheduler spi.Scheduler
	now       func() time.Time
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(scheduler spi.Scheduler) *APIHandler {
	return &APIHandler{
		scheduler: scheduler,
		now:       time.Now,
	}
}

// RegisterRoutes registers the API routes.
func (h *APIHandler) RegisterRoutes(router *mux.Router) {
	apiV1 := router.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/version", h.getVersion).Methods("GET")
	apiV1.HandleFunc("/schedules", h.getSchedules).Methods("GET")
	apiV1.HandleFunc("/schedules", h.createSchedule).Methods("POST")
	apiV1.HandleFunc("/schedules/{name}", h.deleteSchedule).Methods("DELETE")
}

// getVersion returns the API version information.
func (h *APIHandler) getVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Version string `json:"version"`
	}{
		Version: APIVersion,
	})
}

// getSchedules returns all schedules, optionally filtered by task definition.
func (h *APIHandler) getSchedules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		infos []spi.ScheduleInfo
		err   error
	)

	if taskDefinition := r.URL.Query().Get("taskDefinition"); taskDefinition != "" {
		infos, err = h.scheduler.ListByTaskDefinition(ctx, taskDefinition)
	} else {
		infos, err = h.scheduler.List(ctx)
	}

	if err != nil {
		writeError(w, r, err)

		return
	}

	result := make([]ScheduleEntry, 0, len(infos))
	for _, info := range infos {
		result = append(result, h.entry(info))
	}

	writeJSON(w, http.StatusOK, result)
}

// createSchedule submits the request body as a new schedule.
func (h *APIHandler) createSchedule(w http.ResponseWriter, r *http.Request) {
	var request spi.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid schedule request: "+err.Error(), http.StatusBadRequest)

		return
	}

	if err := k8s.ValidateScheduleName(request.ScheduleName); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	if err := h.scheduler.Schedule(r.Context(), request); err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusCreated, h.entry(spi.ScheduleInfo{
		ScheduleName:       request.ScheduleName,
		TaskDefinitionName: request.Definition.Name,
		ScheduleProperties: map[string]string{
			spi.CronExpressionKey: request.SchedulerProperties[spi.CronExpressionKey],
		},
	}))
}

// deleteSchedule removes the schedule named in the path.
func (h *APIHandler) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduler.Unschedule(r.Context(), mux.Vars(r)["name"]); err != nil {
		writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) entry(info spi.ScheduleInfo) ScheduleEntry {
	entry := ScheduleEntry{
		ScheduleName:       info.ScheduleName,
		TaskDefinitionName: info.TaskDefinitionName,
		ScheduleProperties: info.ScheduleProperties,
	}

	if schedule, err := cron.ParseStandard(info.ScheduleProperties[spi.CronExpressionKey]); err == nil {
		entry.NextRun = ptr.To(schedule.Next(h.now()))
	}

	return entry
}

// statusCode maps scheduler errors onto HTTP status codes.
func statusCode(err error) int {
	var cronErr *spi.CronExpressionError

	switch {
	case errors.As(err, &cronErr), errors.Is(err, spi.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, spi.ErrScheduleNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		logf.FromContext(r.Context()).Error(err, "Request failed", "method", r.Method, "path", r.URL.Path)
	}

	http.Error(w, err.Error(), code)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(data, '\n'))
}
