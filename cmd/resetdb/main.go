package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/pu-ac-cn/geo-console/internal/config"
	"github.com/pu-ac-cn/geo-console/internal/database"
	"github.com/pu-ac-cn/geo-console/internal/repository"
	"github.com/pu-ac-cn/geo-console/internal/seed"
)

// 只清理控制台相关表的重置工具：
// - 先 Drop 流转记录表和资源表，然后可选地 AutoMigrate 重建并写入演示数据。
// - 不会删除数据库、用户或其它表。
// 用法：
//   go run ./cmd/resetdb -force
// 可选参数：
//   -recreate  重建表（默认 true）
//   -seed      重建后写入演示数据（默认 true）
//   -force     必须为 true 才会执行（安全开关）
func main() {
	recreate := flag.Bool("recreate", true, "是否在清空后重建表")
	withSeed := flag.Bool("seed", true, "重建后写入演示数据")
	force := flag.Bool("force", false, "确认执行清空操作")
	flag.Parse()

	if !*force {
		log.Fatal("为避免误操作，请加上 -force 参数：go run ./cmd/resetdb -force")
	}

	// 加载配置并连接数据库
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if cfg.Database.Driver == database.DriverMemory {
		log.Fatal("内存存储无需重置，请设置 DATABASE_DRIVER 为 postgres 或 mysql")
	}
	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer database.Close()

	db := database.GetDB()
	m := db.Migrator()
	models := database.Models()

	fmt.Println("开始清空控制台相关表...")
	// 与迁移顺序相反
	for i := len(models) - 1; i >= 0; i-- {
		t := models[i]
		if m.HasTable(t) {
			if err := m.DropTable(t); err != nil {
				log.Fatalf("删除表失败: %v", err)
			}
			fmt.Printf("已删除表: %T\n", t)
		}
	}

	if !*recreate {
		fmt.Println("完成。")
		return
	}

	for _, t := range models {
		if err := m.AutoMigrate(t); err != nil {
			log.Fatalf("创建表失败: %v", err)
		}
		fmt.Printf("已创建/更新表: %T\n", t)
	}

	if *withSeed {
		n, err := seed.Load(context.Background(), repository.NewResourceRepository(db))
		if err != nil {
			log.Fatalf("写入演示数据失败: %v", err)
		}
		fmt.Printf("已写入演示数据 %d 条\n", n)
	}

	fmt.Println("完成。")
}
