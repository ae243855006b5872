// Package handler provides HTTP endpoints for the long-running service.
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ncobase/longrun/ctxutil"
	"github.com/ncobase/longrun/ecode"
	"github.com/ncobase/longrun/job"
	"github.com/ncobase/longrun/job/service"
	"github.com/ncobase/longrun/logging/logger"
	"github.com/ncobase/longrun/logging/observes"
	"github.com/ncobase/longrun/net/resp"
	"github.com/ncobase/longrun/paging"
)

// JobHandler handles service and job HTTP requests.
type JobHandler struct {
	svc *service.LongRunning
}

// NewJobHandler creates a new job handler.
func NewJobHandler(svc *service.LongRunning) *JobHandler {
	return &JobHandler{svc: svc}
}

// RegisterRoutes mounts the API under /api/v1 plus /health.
func (h *JobHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")
	v1.GET("/service", h.Describe)
	v1.GET("/service/parameters", h.Parameters)
	v1.POST("/service/close", h.Close)
	v1.POST("/jobs", h.Run)
	v1.GET("/jobs", h.ListJobs)
	v1.POST("/jobs/document", h.ImportJob)
	v1.GET("/jobs/:id", h.GetJob)
	v1.GET("/jobs/:id/status", h.GetStatus)
	v1.GET("/jobs/:id/results", h.GetResults)
	v1.GET("/stats", h.GetStats)
}

// NewRouter returns a gin engine with recovery, tracing and the job routes.
func NewRouter(h *JobHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), ctxutil.TraceMiddleware())
	h.RegisterRoutes(r)
	return r
}

// JobView is the client view of a job.
type JobView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
	Duration    int64  `json:"duration"`
}

// RunResponse is returned when a batch is started.
type RunResponse struct {
	RunID string    `json:"run_id"`
	Jobs  []JobView `json:"jobs"`
}

// NewJobView captures the current state of j.
func NewJobView(j *job.TimedJob) JobView {
	iv := j.Interval()
	return JobView{
		ID:          j.ID.String(),
		Name:        j.Name,
		Description: j.Description,
		Status:      j.Status().String(),
		Start:       iv.Start,
		End:         iv.End,
		Duration:    iv.Duration,
	}
}

func (h *JobHandler) Health(c *gin.Context) {
	resp.Success(c.Writer, map[string]any{"status": "ok", "closed": h.svc.Closed()})
}

func (h *JobHandler) Describe(c *gin.Context) {
	resp.Success(c.Writer, h.svc.Describe())
}

func (h *JobHandler) Parameters(c *gin.Context) {
	resp.Success(c.Writer, h.svc.Parameters())
}

// Run starts a batch. The body is a JSON object of parameter values; an
// empty body runs with the defaults.
func (h *JobHandler) Run(c *gin.Context) {
	tc := observes.NewTracingContext(c.Request.Context(), observes.LayerHandler, "JobHandler.Run")
	defer tc.End()
	ctx := tc.Context()

	raw := map[string]any{}
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		resp.Fail(c.Writer, resp.BadRequest("request body must be a JSON object"))
		return
	}

	params, err := h.svc.ValidateParams(raw)
	if err != nil {
		var pe *service.ParamError
		if errors.As(err, &pe) {
			resp.Fail(c.Writer, resp.InvalidParams(job.ErrInvalidParams.Error(), pe.Fields))
			return
		}
		resp.Fail(c.Writer, resp.InvalidParams(err.Error()))
		return
	}

	set, err := h.svc.Run(ctx, params)
	if err != nil {
		tc.RecordError(err)
		h.fail(c, err)
		return
	}

	out := RunResponse{RunID: set.RunID, Jobs: make([]JobView, 0, set.Len())}
	for _, j := range set.Jobs() {
		out.Jobs = append(out.Jobs, NewJobView(j))
	}
	resp.WithStatusCode(c.Writer, http.StatusAccepted, out)
}

// ListJobs pages through the jobs this service started.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var params paging.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		resp.Fail(c.Writer, resp.BadRequest("invalid paging parameters"))
		return
	}
	jobs := h.svc.Jobs(c.Request.Context())
	views := make([]JobView, len(jobs))
	for i, j := range jobs {
		views[i] = NewJobView(j)
	}
	page, err := paging.Paginate(params, paging.SliceFunc(views))
	if err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}
	resp.Success(c.Writer, page)
}

// GetJob returns the stored document of a job.
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := h.jobID(c)
	if !ok {
		return
	}
	data, _, err := h.svc.Serialize(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.Success(c.Writer, json.RawMessage(bytes.TrimRight(data, "\x00")))
}

// maxDocumentSize bounds the body accepted by ImportJob.
const maxDocumentSize = 64 << 10

// ImportJob rehydrates a job from the document form returned by GetJob. A
// stored STARTED job that has since finished is dropped from the registry.
func (h *JobHandler) ImportJob(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDocumentSize))
	if err != nil {
		resp.Fail(c.Writer, resp.BadRequest("failed to read request body"))
		return
	}
	j, err := h.svc.Deserialize(c.Request.Context(), data)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.Success(c.Writer, NewJobView(j))
}

func (h *JobHandler) GetStatus(c *gin.Context) {
	id, ok := h.jobID(c)
	if !ok {
		return
	}
	status, err := h.svc.Status(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.Success(c.Writer, map[string]any{"id": id.String(), "status": status.String()})
}

func (h *JobHandler) GetResults(c *gin.Context) {
	id, ok := h.jobID(c)
	if !ok {
		return
	}
	res, err := h.svc.Results(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.Success(c.Writer, res)
}

// Close closes the service, answering 409 while jobs are still running.
func (h *JobHandler) Close(c *gin.Context) {
	closed, err := h.svc.Close(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if !closed {
		resp.Fail(c.Writer, resp.JobsStillRunning("jobs are still running"))
		return
	}
	resp.Success(c.Writer, map[string]any{"closed": true})
}

func (h *JobHandler) GetStats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.Success(c.Writer, st)
}

func (h *JobHandler) jobID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Fail(c.Writer, resp.BadRequest("invalid job id"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *JobHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, job.ErrJobNotFound):
		resp.Fail(c.Writer, resp.JobNotFound(ecode.NotExist("job")))
	case errors.Is(err, job.ErrServiceClosed):
		resp.Fail(c.Writer, resp.ServiceClosed("service is closed"))
	case errors.Is(err, job.ErrInvalidJobDocument):
		resp.Fail(c.Writer, resp.UnprocessableJob(err.Error()))
	case errors.Is(err, job.ErrInvalidParams):
		resp.Fail(c.Writer, resp.InvalidParams(err.Error()))
	default:
		logger.Errorf(c.Request.Context(), "Request failed: %v", err)
		resp.Fail(c.Writer, resp.InternalServer("internal server error"))
	}
}
