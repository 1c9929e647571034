// internal/api/handler.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "franchise-catalog/internal/common/errors"
	"franchise-catalog/internal/common/logger"
	"franchise-catalog/internal/common/validation"
	"franchise-catalog/internal/models"
)

// Catalog is the engine surface the REST handlers use.
type Catalog interface {
	Save(ctx context.Context, f *models.Franchise) (*models.Franchise, error)
	FindByID(ctx context.Context, id string) (*models.Franchise, error)
	FindAll(ctx context.Context) ([]*models.Franchise, error)
	AddBranch(ctx context.Context, franchiseID string, branch models.Branch) (*models.Franchise, error)
	AddProduct(ctx context.Context, franchiseID, branchName string, product models.Product) (*models.Franchise, error)
	RemoveProduct(ctx context.Context, franchiseID, branchName, productName string) (*models.Franchise, error)
	UpdateStock(ctx context.Context, franchiseID, branchName, productName string, newStock int) (*models.Franchise, error)
	RenameFranchise(ctx context.Context, franchiseID, newName string) (*models.Franchise, error)
	RenameBranch(ctx context.Context, franchiseID, currentName, newName string) (*models.Franchise, error)
	RenameProduct(ctx context.Context, franchiseID, branchName, currentName, newName string) (*models.Franchise, error)
	TopProductsPerBranch(ctx context.Context, franchiseID string) ([]models.BranchTopProduct, error)
}

type FranchiseHandler struct {
	catalog Catalog
	logger  logger.Logger
}

func NewFranchiseHandler(catalog Catalog, log logger.Logger) *FranchiseHandler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &FranchiseHandler{
		catalog: catalog,
		logger:  log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

func (h *FranchiseHandler) FindAll(c *gin.Context) {
	all, err := h.catalog.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toFranchiseResponses(all))
}

func (h *FranchiseHandler) FindByID(c *gin.Context) {
	f, err := h.catalog.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toFranchiseResponse(f))
}

func (h *FranchiseHandler) Save(c *gin.Context) {
	var req FranchiseRequest
	if !h.bind(c, validation.SchemaFranchise, &req) {
		return
	}
	f, err := req.toModel()
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.respond(c, func(ctx context.Context) (*models.Franchise, error) {
		return h.catalog.Save(ctx, f)
	})
}

func (h *FranchiseHandler) AddBranch(c *gin.Context) {
	var req BranchRequest
	if !h.bind(c, validation.SchemaBranch, &req) {
		return
	}
	branch, err := req.toModel()
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.respond(c, func(ctx context.Context) (*models.Franchise, error) {
		return h.catalog.AddBranch(ctx, c.Param("id"), branch)
	})
}

func (h *FranchiseHandler) AddProduct(c *gin.Context) {
	var req ProductRequest
	if !h.bind(c, validation.SchemaProduct, &req) {
		return
	}
	product, err := req.toModel()
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.respond(c, func(ctx context.Context) (*models.Franchise, error) {
		return h.catalog.AddProduct(ctx, c.Param("id"), c.Param("branchName"), product)
	})
}

func (h *FranchiseHandler) RemoveProduct(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (*models.Franchise, error) {
		return h.catalog.RemoveProduct(ctx, c.Param("id"), c.Param("branchName"), c.Param("productName"))
	})
}

// UpdateStock reads newStock from the query string; a missing value means 0.
func (h *FranchiseHandler) UpdateStock(c *gin.Context) {
	newStock, err := strconv.Atoi(c.DefaultQuery("newStock", "0"))
	if err != nil {
		_ = c.Error(apperrors.NewBadRequestError("newStock must be an integer"))
		return
	}
	h.respond(c, func(ctx context.Context) (*models.Franchise, error) {
		return h.catalog.UpdateStock(ctx, c.Param("id"), c.Param("branchName"), c.Param("productName"), newStock)
	})
}

func (h *FranchiseHandler) TopProducts(c *gin.Context) {
	tops, err := h.catalog.TopProductsPerBranch(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toTopProductResponses(tops))
}

func (h *FranchiseHandler) RenameFranchise(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (*models.Franchise, error) {
		return h.catalog.RenameFranchise(ctx, c.Param("id"), c.Param("newName"))
	})
}

// RenameBranch takes the current name from :branchName; the router needs one
// wildcard name per position under /branch.
func (h *FranchiseHandler) RenameBranch(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (*models.Franchise, error) {
		return h.catalog.RenameBranch(ctx, c.Param("id"), c.Param("branchName"), c.Param("newName"))
	})
}

func (h *FranchiseHandler) RenameProduct(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (*models.Franchise, error) {
		return h.catalog.RenameProduct(ctx, c.Param("id"), c.Param("branchName"), c.Param("currentName"), c.Param("newName"))
	})
}

func (h *FranchiseHandler) respond(c *gin.Context, call func(ctx context.Context) (*models.Franchise, error)) {
	f, err := call(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toFranchiseResponse(f))
}

// bind checks the raw body against a request schema before decoding it into
// out. Shape problems are reported as VALIDATION_001; content rules such as
// name length are left to the model constructors.
func (h *FranchiseHandler) bind(c *gin.Context, schema string, out interface{}) bool {
	raw, err := c.GetRawData()
	if err != nil {
		_ = c.Error(apperrors.NewBadRequestError(err.Error()))
		return false
	}

	var document interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&document); err != nil {
		_ = c.Error(apperrors.NewBadRequestError("malformed JSON body"))
		return false
	}

	result, err := validation.ValidateRequest(schema, document)
	if err != nil {
		_ = c.Error(err)
		return false
	}
	if !result.Valid {
		h.logger.Debug("request rejected by schema", map[string]interface{}{
			"schema": schema,
			"errors": result.GetErrorMessages(),
		})
		_ = c.Error(apperrors.NewValidationError(strings.Join(result.GetErrorMessages(), ", ")))
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		_ = c.Error(apperrors.NewBadRequestError(err.Error()))
		return false
	}
	return true
}
