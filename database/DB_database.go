package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ftsSchema 外部内容 FTS5 虚表 + 同步触发器，逐条执行
// 触发器保证笔记行和索引行在同一个事务内提交，索引永远不会落后于笔记内容
var ftsSchema = []string{
	`CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts
USING fts5(
  title,
  content,
  content='notes',
  content_rowid='id',
  tokenize='unicode61'
)`,
	`CREATE TRIGGER IF NOT EXISTS notes_ai AFTER INSERT ON notes BEGIN
  INSERT INTO notes_fts(rowid, title, content) VALUES (new.id, new.title, new.content);
END`,
	`CREATE TRIGGER IF NOT EXISTS notes_ad AFTER DELETE ON notes BEGIN
  INSERT INTO notes_fts(notes_fts, rowid, title, content)
  VALUES('delete', old.id, old.title, old.content);
END`,
	`CREATE TRIGGER IF NOT EXISTS notes_au AFTER UPDATE ON notes BEGIN
  INSERT INTO notes_fts(notes_fts, rowid, title, content)
  VALUES('delete', old.id, old.title, old.content);
  INSERT INTO notes_fts(rowid, title, content) VALUES (new.id, new.title, new.content);
END`,
}

// Open 打开数据库并初始化表结构，测试可以用独立路径调用
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建数据库目录失败: %w", err)
		}
	}

	// PRAGMA 走 DSN 参数，每个池化连接都会生效
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	// 自动迁移表结构
	if err := db.AutoMigrate(&Note{}, &Tag{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	// FTS 虚表不能由 AutoMigrate 管理，用原生 SQL 创建
	for _, stmt := range ftsSchema {
		if err := db.Exec(stmt).Error; err != nil {
			return nil, fmt.Errorf("创建全文索引失败: %w", err)
		}
	}

	return db, nil
}

func InitDB(path string) error {
	db, err := Open(path)
	if err != nil {
		return err
	}
	DB = db

	log.Println("数据库连接成功:", path)
	return nil
}
