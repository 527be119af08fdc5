package Note

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"mintmemo/database"
)

type NoteServiceInterface interface {
	CreateNote(req *database.CreateNoteRequest) (*database.NoteResponse, error)
	GetNoteByID(id uint) (*database.NoteResponse, error)
	UpdateNote(id uint, req *database.UpdateNoteRequest) (*database.NoteResponse, error)
	DeleteNote(id uint) error
	TogglePin(id uint) (*database.NoteResponse, error)
	ListNotes(tag string) ([]database.NoteListItem, error)
	SearchNotes(query string) ([]database.SearchResultItem, error)
	ListTags() ([]database.TagCount, error)
	ExportAll() ([]database.NoteResponse, error)
}

// NoteService 笔记存储服务，持有数据库句柄
// 在 main 里构造一次后传给路由层，不使用全局单例
type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) NoteServiceInterface {
	return &NoteService{db: db}
}

// 列表摘要和搜索结果的截断长度
const (
	excerptLen = 160
	listLimit  = 200
)

// CreateNote 创建笔记
// 笔记行、标签关联和 FTS 索引行在同一个事务内写入
func (s *NoteService) CreateNote(req *database.CreateNoteRequest) (*database.NoteResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, database.ErrEmptyTitle
	}
	tags := NormalizeTags(req.Tags)

	var note database.Note
	err := s.db.Transaction(func(tx *gorm.DB) error {
		note = database.Note{Title: title, Content: req.Content}
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		return setNoteTags(tx, &note, tags)
	})
	if err != nil {
		return nil, wrapStorage(err)
	}
	return s.noteResponse(note.ID)
}

// GetNoteByID 根据ID获取笔记
func (s *NoteService) GetNoteByID(id uint) (*database.NoteResponse, error) {
	return s.noteResponse(id)
}

// UpdateNote 部分更新，nil 字段保持不变
// updated_at 显式写入，保证对每次变更严格递增
func (s *NoteService) UpdateNote(id uint, req *database.UpdateNoteRequest) (*database.NoteResponse, error) {
	var title string
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, database.ErrEmptyTitle
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var note database.Note
		if err := tx.First(&note, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"updated_at": nextUpdateTime(note.UpdatedAt),
		}
		if req.Title != nil {
			updates["title"] = title
		}
		if req.Content != nil {
			updates["content"] = *req.Content
		}
		if req.Pinned != nil {
			updates["pinned"] = *req.Pinned
		}
		// UpdateColumns 跳过 gorm 的自动时间戳，updated_at 以上面算好的为准
		if err := tx.Model(&note).UpdateColumns(updates).Error; err != nil {
			return err
		}

		if req.Tags != nil {
			return setNoteTags(tx, &note, NormalizeTags(*req.Tags))
		}
		return nil
	})
	if err != nil {
		return nil, asNoteError(err)
	}
	return s.noteResponse(id)
}

// DeleteNote 硬删除，严格语义：笔记不存在时返回错误
func (s *NoteService) DeleteNote(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var note database.Note
		if err := tx.First(&note, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&note).Association("Tags").Clear(); err != nil {
			return err
		}
		// 删除触发器同步移除 FTS 索引行
		return tx.Delete(&note).Error
	})
	return asNoteError(err)
}

// TogglePin 置顶开关
func (s *NoteService) TogglePin(id uint) (*database.NoteResponse, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var note database.Note
		if err := tx.First(&note, id).Error; err != nil {
			return err
		}
		return tx.Model(&note).UpdateColumns(map[string]interface{}{
			"pinned":     !note.Pinned,
			"updated_at": nextUpdateTime(note.UpdatedAt),
		}).Error
	})
	if err != nil {
		return nil, asNoteError(err)
	}
	return s.noteResponse(id)
}

// ListNotes 获取笔记列表，置顶优先，其余按更新时间倒序
// tag 不为空时只返回带该标签的笔记
func (s *NoteService) ListNotes(tag string) ([]database.NoteListItem, error) {
	q := s.db.Model(&database.Note{}).
		Order("notes.pinned DESC, notes.updated_at DESC").
		Limit(listLimit)

	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag != "" {
		q = q.Select("notes.*").
			Joins("JOIN note_tags ON note_tags.note_id = notes.id").
			Joins("JOIN tags ON tags.id = note_tags.tag_id").
			Where("tags.name = ?", tag)
	}

	var notes []database.Note
	if err := q.Find(&notes).Error; err != nil {
		return nil, wrapStorage(err)
	}

	items := make([]database.NoteListItem, 0, len(notes))
	for _, n := range notes {
		names, err := tagNamesFor(s.db, n.ID)
		if err != nil {
			return nil, wrapStorage(err)
		}
		items = append(items, database.NoteListItem{
			ID:        n.ID,
			Title:     n.Title,
			Excerpt:   makeExcerpt(n.Content, excerptLen),
			Pinned:    n.Pinned,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
			Tags:      names,
		})
	}
	return items, nil
}

// ExportAll 全量导出，用于备份下载
func (s *NoteService) ExportAll() ([]database.NoteResponse, error) {
	var notes []database.Note
	if err := s.db.Order("updated_at DESC").Find(&notes).Error; err != nil {
		return nil, wrapStorage(err)
	}

	out := make([]database.NoteResponse, 0, len(notes))
	for _, n := range notes {
		names, err := tagNamesFor(s.db, n.ID)
		if err != nil {
			return nil, wrapStorage(err)
		}
		out = append(out, database.NoteResponse{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			Pinned:    n.Pinned,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
			Tags:      names,
		})
	}
	return out, nil
}

// noteResponse 读取笔记并组装完整响应
func (s *NoteService) noteResponse(id uint) (*database.NoteResponse, error) {
	var note database.Note
	if err := s.db.First(&note, id).Error; err != nil {
		return nil, asNoteError(err)
	}
	names, err := tagNamesFor(s.db, note.ID)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &database.NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Pinned:    note.Pinned,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
		Tags:      names,
	}, nil
}

// setNoteTags 重建笔记的标签关联，标签行不存在则创建
func setNoteTags(tx *gorm.DB, note *database.Note, names []string) error {
	tags := make([]database.Tag, 0, len(names))
	for _, name := range names {
		var tag database.Tag
		if err := tx.Where(database.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return err
		}
		tags = append(tags, tag)
	}
	return tx.Model(note).Association("Tags").Replace(tags)
}

// tagNamesFor 查询某条笔记的标签名，按名称排序
func tagNamesFor(db *gorm.DB, noteID uint) ([]string, error) {
	var names []string
	err := db.Table("tags").
		Joins("JOIN note_tags ON note_tags.tag_id = tags.id").
		Where("note_tags.note_id = ?", noteID).
		Order("tags.name").
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// makeExcerpt 把正文压成单行摘要，超长截断并加省略号
func makeExcerpt(content string, max int) string {
	line := strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(content))
	if r := []rune(line); len(r) > max {
		return string(r[:max]) + "…"
	}
	return line
}

// nextUpdateTime 保证 updated_at 严格递增，时钟没走动时强制 +1ms
func nextUpdateTime(prev time.Time) time.Time {
	now := time.Now()
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}

// asNoteError 把 gorm 的未找到错误翻译为业务错误，其余包装为存储错误
func asNoteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.ErrNoteNotFound
	}
	if errors.Is(err, database.ErrEmptyTitle) || errors.Is(err, database.ErrNoteNotFound) {
		return err
	}
	return wrapStorage(err)
}

func wrapStorage(err error) error {
	return fmt.Errorf("%w: %v", database.ErrStorage, err)
}
