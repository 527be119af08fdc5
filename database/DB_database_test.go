package database

import (
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() 意外返回错误: %v", err)
	}

	countMatch := func(t *testing.T, match string) int64 {
		t.Helper()
		var n int64
		if err := db.Raw("SELECT COUNT(*) FROM notes_fts WHERE notes_fts MATCH ?", match).Scan(&n).Error; err != nil {
			t.Fatalf("FTS 查询失败: %v", err)
		}
		return n
	}

	t.Run("FTS虚表已创建", func(t *testing.T) {
		var n int64
		err := db.Raw("SELECT COUNT(*) FROM sqlite_master WHERE name = 'notes_fts'").Scan(&n).Error
		if err != nil {
			t.Fatalf("查询 sqlite_master 失败: %v", err)
		}
		if n != 1 {
			t.Errorf("notes_fts 虚表不存在")
		}
	})

	t.Run("插入触发器同步索引", func(t *testing.T) {
		note := Note{Title: "标题", Content: "searchable haystack"}
		if err := db.Create(&note).Error; err != nil {
			t.Fatalf("插入笔记失败: %v", err)
		}
		if n := countMatch(t, `"haystack"`); n != 1 {
			t.Errorf("插入后索引未同步: 命中 %d", n)
		}
	})

	t.Run("更新触发器重建索引", func(t *testing.T) {
		err := db.Model(&Note{}).Where("title = ?", "标题").
			UpdateColumn("content", "replaced needle").Error
		if err != nil {
			t.Fatalf("更新笔记失败: %v", err)
		}
		if n := countMatch(t, `"haystack"`); n != 0 {
			t.Errorf("旧内容仍在索引里: 命中 %d", n)
		}
		if n := countMatch(t, `"needle"`); n != 1 {
			t.Errorf("新内容未进索引: 命中 %d", n)
		}
	})

	t.Run("删除触发器移除索引", func(t *testing.T) {
		if err := db.Where("title = ?", "标题").Delete(&Note{}).Error; err != nil {
			t.Fatalf("删除笔记失败: %v", err)
		}
		if n := countMatch(t, `"needle"`); n != 0 {
			t.Errorf("删除后索引未清理: 命中 %d", n)
		}
	})

	t.Run("重复打开幂等", func(t *testing.T) {
		if _, err := Open(path); err != nil {
			t.Errorf("二次 Open() 报错: %v", err)
		}
	})
}
