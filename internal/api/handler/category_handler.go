package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"singular-attend/backend/internal/dto"
	"singular-attend/backend/internal/service"
	"singular-attend/backend/pkg/response"
)

// CategoryHandler 考勤类别模块 HTTP 处理器
type CategoryHandler struct {
	catSvc service.CategoryService
}

// NewCategoryHandler 创建 CategoryHandler
func NewCategoryHandler(catSvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{catSvc: catSvc}
}

// ListCategories 获取类别列表
// GET /api/v1/categories?active=true
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	cats, err := h.catSvc.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": cats})
}

// GetCategory 获取类别详情
// GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "类别ID不能为空")
		return
	}

	cat, err := h.catSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}
	response.OK(c, cat)
}

// CreateCategory 创建类别
// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	cat, err := h.catSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}
	response.Created(c, cat)
}

// UpdateCategory 更新类别（短码不可变）
// PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "类别ID不能为空")
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	cat, err := h.catSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}
	response.OK(c, cat)
}

// DeleteCategory 删除类别（被引用的类别只能停用）
// DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "类别ID不能为空")
		return
	}

	if err := h.catSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleCategoryError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleCategoryError 统一处理类别模块业务错误
func (h *CategoryHandler) handleCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		response.NotFound(c, 14001, "考勤类别不存在")
	case errors.Is(err, service.ErrCategoryCodeExists):
		response.Conflict(c, 14002, "类别短码已存在")
	case errors.Is(err, service.ErrCategoryReferenced):
		response.Conflict(c, 14003, "类别已被考勤记录引用，只能停用不能删除")
	default:
		response.InternalError(c)
	}
}
