// Package main 数据库迁移工具
package main

import (
	"context"
	"flag"
	"log"

	"github.com/pu-ac-cn/geo-console/internal/config"
	"github.com/pu-ac-cn/geo-console/internal/database"
	"github.com/pu-ac-cn/geo-console/internal/repository"
	"github.com/pu-ac-cn/geo-console/internal/seed"
)

func main() {
	// 命令行参数
	configPath := flag.String("config", "", "配置文件路径")
	withSeed := flag.Bool("seed", false, "迁移后写入演示数据")
	flag.Parse()

	// 加载配置
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if cfg.Database.Driver == database.DriverMemory {
		log.Fatal("内存存储无需迁移，请设置 DATABASE_DRIVER 为 postgres 或 mysql")
	}

	// 初始化数据库连接
	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer database.Close()
	log.Println("数据库连接成功")

	// 执行迁移
	log.Println("开始执行数据库迁移...")
	for _, m := range database.Models() {
		if err := database.AutoMigrate(m); err != nil {
			log.Fatalf("迁移失败: %v", err)
		}
	}
	log.Println("数据库迁移完成！")

	log.Println("已创建/更新的表:")
	log.Println("  - resources (资源表)")
	log.Println("  - review_records (审核流转记录表)")

	if *withSeed {
		n, err := seed.Load(context.Background(), repository.NewResourceRepository(database.GetDB()))
		if err != nil {
			log.Fatalf("写入演示数据失败: %v", err)
		}
		log.Printf("已写入演示数据 %d 条", n)
	}
}
