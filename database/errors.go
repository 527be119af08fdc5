package database

import "errors"

// 三类业务错误，Route 层用 errors.Is 映射为 400/404/500
var (
	// ErrNoteNotFound 笔记不存在
	ErrNoteNotFound = errors.New("笔记不存在")
	// ErrEmptyTitle 标题为空（校验错误）
	ErrEmptyTitle = errors.New("标题不能为空")
	// ErrStorage 底层存储引擎错误，具体原因通过 %w 包装
	ErrStorage = errors.New("数据库操作失败")
)
