package database

import (
	"time"
)

// Note 笔记主表，FTS 索引通过触发器与本表同步
// 不使用 gorm.Model：笔记是硬删除，不需要 DeletedAt 软删除字段
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Pinned    bool      `gorm:"not null;default:false;index" json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Tags      []Tag     `gorm:"many2many:note_tags" json:"-"`
}

// Tag 标签，名称已归一化（小写、去空格），没有笔记引用时不再可枚举
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Name string `gorm:"size:32;not null;uniqueIndex" json:"name"`
}

// CreateNoteRequest 创建笔记请求
type CreateNoteRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// UpdateNoteRequest 部分更新请求，nil 表示该字段不修改
type UpdateNoteRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
	Pinned  *bool     `json:"pinned"`
}

// NoteResponse 单个笔记的完整响应
type NoteResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Tags      []string  `json:"tags"`
}

// NoteListItem 列表项，正文替换为单行摘要
type NoteListItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Tags      []string  `json:"tags"`
}

// SearchResultItem 搜索命中项，带高亮片段和 bm25 相关度（越小越相关）
type SearchResultItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Snippet   string    `json:"snippet"`
	Rank      float64   `json:"rank"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Tags      []string  `json:"tags"`
}

// TagCount 标签及引用它的笔记数
type TagCount struct {
	Name  string `gorm:"column:name" json:"name"`
	Count int64  `gorm:"column:cnt" json:"count"`
}
