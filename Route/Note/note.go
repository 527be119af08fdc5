package Note

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mintmemo/database"
	Markdown "mintmemo/service/Markdown"
	NoteService "mintmemo/service/Note"
)

// NoteHandler 笔记相关的 HTTP 处理器
// 服务实例在 main 构造后注入，不依赖全局状态
type NoteHandler struct {
	service  NoteService.NoteServiceInterface
	renderer *Markdown.Renderer
}

func NewNoteHandler(service NoteService.NoteServiceInterface, renderer *Markdown.Renderer) *NoteHandler {
	return &NoteHandler{service: service, renderer: renderer}
}

// noteView 笔记详情响应，在完整字段基础上附带渲染后的 HTML
type noteView struct {
	database.NoteResponse
	ContentHTML string `json:"content_html"`
}

// respondError 业务错误映射为 HTTP 状态码：校验 400 / 未找到 404 / 存储 500
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, database.ErrNoteNotFound):
		status = http.StatusNotFound
	case errors.Is(err, database.ErrEmptyTitle):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}

// parseNoteID 解析路径里的笔记ID
func parseNoteID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的ID",
		})
		return 0, false
	}
	return uint(id), true
}

// GetNotes 获取笔记列表，?tag= 按标签过滤
func (h *NoteHandler) GetNotes(c *gin.Context) {
	notes, err := h.service.ListNotes(c.Query("tag"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": notes,
	})
}

// GetNoteByID 获取单条笔记，附带渲染后的 HTML
func (h *NoteHandler) GetNoteByID(c *gin.Context) {
	id, ok := parseNoteID(c)
	if !ok {
		return
	}

	note, err := h.service.GetNoteByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	html, err := h.renderer.Render(note.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "渲染失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": noteView{NoteResponse: *note, ContentHTML: html},
	})
}

// CreateNote 创建笔记
func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req database.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "参数错误: " + err.Error(),
		})
		return
	}

	note, err := h.service.CreateNote(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "创建成功",
		"data":    note,
	})
}

// UpdateNote 部分更新笔记，缺省字段保持原值
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	id, ok := parseNoteID(c)
	if !ok {
		return
	}

	var req database.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "参数错误: " + err.Error(),
		})
		return
	}

	note, err := h.service.UpdateNote(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "更新成功",
		"data":    note,
	})
}

// DeleteNote 删除笔记，笔记不存在返回 404
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	id, ok := parseNoteID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteNote(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "删除成功",
	})
}

// TogglePin 置顶/取消置顶
func (h *NoteHandler) TogglePin(c *gin.Context) {
	id, ok := parseNoteID(c)
	if !ok {
		return
	}

	note, err := h.service.TogglePin(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": note,
	})
}

// SearchNotes 全文搜索，?q= 为查询串
func (h *NoteHandler) SearchNotes(c *gin.Context) {
	results, err := h.service.SearchNotes(c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": results,
	})
}

// GetTags 获取标签及引用计数
func (h *NoteHandler) GetTags(c *gin.Context) {
	tags, err := h.service.ListTags()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": tags,
	})
}

// ExportJSON 全量导出，响应格式与备份文件一致
func (h *NoteHandler) ExportJSON(c *gin.Context) {
	notes, err := h.service.ExportAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notes": notes,
	})
}
