package Note

import (
	"strings"
	"time"

	"mintmemo/database"
)

// 搜索返回条数上限
const searchLimit = 50

// searchRow 搜索 SQL 的扫描目标
type searchRow struct {
	ID        uint      `gorm:"column:id"`
	Title     string    `gorm:"column:title"`
	Pinned    bool      `gorm:"column:pinned"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	Rank      float64   `gorm:"column:rank"`
	Snippet   string    `gorm:"column:snippet"`
}

// BuildMatchQuery 把用户输入转换为 FTS5 MATCH 查询
// 每个词条用 FTS5 字符串引号包裹（内部引号双写），再用 AND 连接，
// 这样 " 或 * 之类的输入不会变成 FTS5 语法错误
func BuildMatchQuery(query string) string {
	query = strings.ReplaceAll(query, "　", " ")
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return ""
	}
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = `"` + strings.ReplaceAll(tok, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " AND ")
}

// SearchNotes 全文搜索，bm25 排序（标题权重高于正文），相同相关度按更新时间倒序
// 空查询返回空列表而不是全部笔记
func (s *NoteService) SearchNotes(query string) ([]database.SearchResultItem, error) {
	match := BuildMatchQuery(query)
	if match == "" {
		return []database.SearchResultItem{}, nil
	}

	var rows []searchRow
	err := s.db.Raw(`
		SELECT n.id, n.title, n.pinned, n.created_at, n.updated_at,
		       bm25(notes_fts, 1.0, 0.6) AS rank,
		       snippet(notes_fts, 1, '<mark>', '</mark>', '…', 12) AS snippet
		FROM notes_fts
		JOIN notes n ON n.id = notes_fts.rowid
		WHERE notes_fts MATCH ?
		ORDER BY rank, n.updated_at DESC
		LIMIT ?`, match, searchLimit).Scan(&rows).Error
	if err != nil {
		return nil, wrapStorage(err)
	}

	out := make([]database.SearchResultItem, 0, len(rows))
	for _, r := range rows {
		names, err := tagNamesFor(s.db, r.ID)
		if err != nil {
			return nil, wrapStorage(err)
		}
		out = append(out, database.SearchResultItem{
			ID:        r.ID,
			Title:     r.Title,
			Snippet:   r.Snippet,
			Rank:      r.Rank,
			Pinned:    r.Pinned,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			Tags:      names,
		})
	}
	return out, nil
}

// ListTags 枚举标签及引用数，引用数多的在前
// 没有笔记引用的标签不会出现在结果里
func (s *NoteService) ListTags() ([]database.TagCount, error) {
	var tags []database.TagCount
	err := s.db.Raw(`
		SELECT t.name AS name, COUNT(nt.note_id) AS cnt
		FROM tags t
		JOIN note_tags nt ON nt.tag_id = t.id
		GROUP BY t.id
		ORDER BY cnt DESC, name ASC`).Scan(&tags).Error
	if err != nil {
		return nil, wrapStorage(err)
	}
	if tags == nil {
		tags = []database.TagCount{}
	}
	return tags, nil
}
