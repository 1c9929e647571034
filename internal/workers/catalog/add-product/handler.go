// internal/workers/catalog/add-product/handler.go
package addproduct

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"franchise-catalog/internal/common/camunda"
	"franchise-catalog/internal/common/config"
	apperrors "franchise-catalog/internal/common/errors"
	"franchise-catalog/internal/common/logger"
	"franchise-catalog/internal/common/metrics"
	"franchise-catalog/internal/common/observability"
	"franchise-catalog/internal/common/validation"
	"franchise-catalog/internal/models"
)

const TaskType = "catalog-add-product"

// Catalog is the engine call this worker makes.
type Catalog interface {
	AddProduct(ctx context.Context, franchiseID, branchName string, product models.Product) (*models.Franchise, error)
}

type Handler struct {
	config       *Config
	catalog      Catalog
	logger       logger.Logger
	obs          *observability.Observability
	errorHandler *apperrors.ErrorHandler
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Catalog       Catalog
	Logger        logger.Logger
	Observability *observability.Observability
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	cfg := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Catalog == nil {
		return nil, fmt.Errorf("%s: catalog is required", TaskType)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:       cfg,
		catalog:      opts.Catalog,
		logger:       log,
		obs:          opts.Observability,
		errorHandler: apperrors.NewErrorHandler(log),
	}, nil
}

func (h *Handler) Config() *Config { return h.config }

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(ctx, client, job, start, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, start, err)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "completed")
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, start time.Time, err error) {
	stdErr := apperrors.NormalizeEngineError(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "failed")
	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("parse job variables: %v", err))
	}

	result, err := validation.ValidateRequest(validation.SchemaAddProductJob, variables)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !result.Valid {
		return nil, apperrors.NewValidationError(strings.Join(result.GetErrorMessages(), ", "))
	}

	var input Input
	if err := json.Unmarshal([]byte(job.GetVariables()), &input); err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("decode job variables: %v", err))
	}
	return &input, nil
}

// Execute adds the product and reports the branch's new product count.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	product, err := models.NewProduct(input.Product.Name, input.Product.Stock)
	if err != nil {
		return nil, err
	}

	f, err := h.catalog.AddProduct(ctx, input.FranchiseID, input.BranchName, product)
	if err != nil {
		return nil, err
	}

	out := &Output{
		FranchiseID: f.ID(),
		BranchName:  input.BranchName,
		ProductName: product.Name(),
		Version:     f.Version(),
	}
	for _, b := range f.Branches() {
		if models.SameName(b.Name(), input.BranchName) {
			out.BranchName = b.Name()
			out.ProductCount = b.ProductCount()
			break
		}
	}

	h.logger.Info("product added", map[string]interface{}{
		"franchiseId":  out.FranchiseID,
		"branchName":   out.BranchName,
		"productName":  out.ProductName,
		"productCount": out.ProductCount,
	})
	return out, nil
}
