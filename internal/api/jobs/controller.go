// Package jobs exposes the background job runner over HTTP. Scans and
// inferences can be queued and then polled, or followed as a server-sent
// event or WebSocket stream.
package jobs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	jobrunner "github.com/trishulai/trishul-api/internal/jobs"
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/utils"
)

const wsWriteWait = 10 * time.Second

// Runner queues and tracks jobs
type Runner interface {
	Submit(kind string, fn jobrunner.Func) (models.Job, error)
	Get(id string) (models.Job, error)
	Watch(ctx context.Context, id string) (<-chan models.Job, error)
}

// ScanService starts scans
type ScanService interface {
	CreateScan(ctx context.Context, file models.UploadedFile) (models.Envelope[models.ScanCreated], error)
}

// InferenceService runs defect detection
type InferenceService interface {
	InferImage(ctx context.Context, file models.UploadedFile) (models.Envelope[models.DetectionResult], error)
}

// Options configures the job controller
type Options struct {
	MaxUploadSize int64
	// CheckOrigin validates the Origin of WebSocket upgrades. Nil rejects
	// cross-origin requests.
	CheckOrigin func(r *http.Request) bool
}

// Controller handles job API requests
type Controller struct {
	runner        Runner
	scans         ScanService
	inference     InferenceService
	logger        *logrus.Logger
	maxUploadSize int64
	upgrader      websocket.Upgrader
	basePath      string
}

// NewController creates a new job controller
func NewController(runner Runner, scans ScanService, inference InferenceService, logger *logrus.Logger, opts Options) *Controller {
	return &Controller{
		runner:        runner,
		scans:         scans,
		inference:     inference,
		logger:        logger,
		maxUploadSize: opts.MaxUploadSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     opts.CheckOrigin,
		},
	}
}

// RegisterRoutes registers the job routes. scanMW runs before scan jobs are
// queued.
func (ctrl *Controller) RegisterRoutes(router *gin.RouterGroup, scanMW ...gin.HandlerFunc) {
	group := router.Group("/jobs")
	ctrl.basePath = group.BasePath()

	submitScan := append(append([]gin.HandlerFunc{}, scanMW...), ctrl.SubmitScan)
	group.POST("/kavach/scan", submitScan...)
	group.POST("/trinetra/inference", ctrl.SubmitInference)
	group.GET("/:id", ctrl.Get)
	group.GET("/:id/events", ctrl.Events)
	group.GET("/:id/ws", ctrl.WebSocket)
}

// SubmitScan godoc
// @Summary Queue a scan
// @Description Queues scan creation as a background job. Poll /jobs/{id} or follow /jobs/{id}/events for the result.
// @Tags Jobs
// @Accept multipart/form-data,json
// @Produce json
// @Param file formData file false "Target file"
// @Param request body models.CreateScanRequest false "Target file name, for clients that do not upload"
// @Success 202 {object} utils.Response{data=models.JobAccepted} "Job queued"
// @Failure 400 {object} utils.Response "No file supplied"
// @Failure 429 {object} utils.Response "Rate limit exceeded"
// @Failure 503 {object} utils.Response "Job queue full"
// @Router /jobs/kavach/scan [post]
func (ctrl *Controller) SubmitScan(c *gin.Context) {
	file, ok := utils.BindUpload(c, ctrl.maxUploadSize)
	if !ok {
		return
	}

	ctrl.submit(c, models.JobKindScan, func(ctx context.Context) (interface{}, error) {
		env, err := ctrl.scans.CreateScan(ctx, file)
		if err != nil {
			return nil, err
		}
		if !env.Success {
			return nil, errors.New(env.Error)
		}
		return env.Data, nil
	})
}

// SubmitInference godoc
// @Summary Queue an inference
// @Description Queues defect detection as a background job.
// @Tags Jobs
// @Accept multipart/form-data,json
// @Produce json
// @Param file formData file false "Product image"
// @Param request body models.InferRequest false "Image file name, for clients that do not upload"
// @Success 202 {object} utils.Response{data=models.JobAccepted} "Job queued"
// @Failure 400 {object} utils.Response "No file supplied"
// @Failure 503 {object} utils.Response "Job queue full"
// @Router /jobs/trinetra/inference [post]
func (ctrl *Controller) SubmitInference(c *gin.Context) {
	file, ok := utils.BindUpload(c, ctrl.maxUploadSize)
	if !ok {
		return
	}

	ctrl.submit(c, models.JobKindInference, func(ctx context.Context) (interface{}, error) {
		env, err := ctrl.inference.InferImage(ctx, file)
		if err != nil {
			return nil, err
		}
		if !env.Success {
			return nil, errors.New(env.Error)
		}
		return env.Data, nil
	})
}

func (ctrl *Controller) submit(c *gin.Context, kind string, fn jobrunner.Func) {
	job, err := ctrl.runner.Submit(kind, fn)
	if err != nil {
		ctrl.logger.WithError(err).WithField("kind", kind).Warn("Failed to queue job")
		if errors.Is(err, jobrunner.ErrQueueFull) || errors.Is(err, jobrunner.ErrRunnerClosed) {
			utils.ServiceUnavailable(c, err.Error())
			return
		}
		utils.InternalServerError(c, "Failed to queue job")
		return
	}

	c.Header("Location", path.Join(ctrl.basePath, job.ID))
	utils.AcceptedResponse(c, models.JobAccepted{JobID: job.ID, Status: job.Status}, "Job queued")
}

// Get godoc
// @Summary Get a job
// @Description Returns the current state of a background job.
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} utils.Response{data=models.Job} "Job"
// @Failure 404 {object} utils.Response "Job not found"
// @Router /jobs/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	job, err := ctrl.runner.Get(c.Param("id"))
	if err != nil {
		ctrl.notFound(c, err)
		return
	}
	utils.SuccessResponse(c, job, "")
}

// Events godoc
// @Summary Stream job updates
// @Description Streams job snapshots as server-sent events until the job finishes. The event name is the job status.
// @Tags Jobs
// @Produce text/event-stream
// @Param id path string true "Job ID"
// @Success 200 {object} models.Job "Stream of job snapshots"
// @Failure 404 {object} utils.Response "Job not found"
// @Router /jobs/{id}/events [get]
func (ctrl *Controller) Events(c *gin.Context) {
	id := c.Param("id")
	updates, err := ctrl.runner.Watch(c.Request.Context(), id)
	if err != nil {
		ctrl.notFound(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	seq := 0
	c.Stream(func(w io.Writer) bool {
		job, ok := <-updates
		if !ok {
			return false
		}
		seq++
		if err := sse.Encode(w, sse.Event{
			Id:    strconv.Itoa(seq),
			Event: string(job.Status),
			Data:  job,
		}); err != nil {
			ctrl.logger.WithError(err).WithField("job_id", id).Debug("Failed to write job event")
			return false
		}
		return true
	})
}

// WebSocket godoc
// @Summary Stream job updates over a WebSocket
// @Description Upgrades to a WebSocket and sends one JSON job snapshot per state change. The server closes the socket once the job finishes.
// @Tags Jobs
// @Param id path string true "Job ID"
// @Success 101 {object} models.Job "Stream of job snapshots"
// @Failure 404 {object} utils.Response "Job not found"
// @Router /jobs/{id}/ws [get]
func (ctrl *Controller) WebSocket(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	updates, err := ctrl.runner.Watch(ctx, id)
	if err != nil {
		ctrl.notFound(c, err)
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		ctrl.logger.WithError(err).WithField("job_id", id).Debug("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	// Reads only detect the peer going away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for job := range updates {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(job); err != nil {
			ctrl.logger.WithError(err).WithField("job_id", id).Debug("Failed to write job update")
			return
		}
	}

	if ctx.Err() != nil {
		return
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "job finished")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteWait))
}

func (ctrl *Controller) notFound(c *gin.Context, err error) {
	if errors.Is(err, jobrunner.ErrJobNotFound) {
		utils.NotFound(c, "Job not found")
		return
	}
	ctrl.logger.WithError(err).Error("Failed to load job")
	utils.InternalServerError(c, "Failed to load job")
}
