package main

import (
	"log"

	"mintmemo/Config"
	"mintmemo/Route"
	"mintmemo/database"
	Markdown "mintmemo/service/Markdown"
	NoteService "mintmemo/service/Note"
)

func main() {

	// 初始化配置
	if err := Config.InitConfig(); err != nil {
		log.Fatal("配置初始化失败: ", err)
	}

	// 初始化数据库（建表 + FTS 索引）
	if err := database.InitDB(Config.Cfg.DBPath); err != nil {
		log.Fatal("数据库初始化失败: ", err)
	}

	// 笔记服务在这里构造一次，显式传给路由层
	service := NoteService.NewNoteService(database.DB)
	renderer := Markdown.NewRenderer()

	r := Route.SetupRouter(service, renderer, &Config.Cfg)

	// 启动服务器
	log.Println("服务器启动中:", Config.Cfg.Addr())
	if err := r.Run(Config.Cfg.Addr()); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
