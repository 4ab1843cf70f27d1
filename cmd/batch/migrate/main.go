package main

import (
	"flag"
	"log"
	"runtime/debug"

	"github.com/uma-arai/lunchly-batch/internal/common/config"
	"github.com/uma-arai/lunchly-batch/internal/common/database"
)

func main() {
	direction := flag.String("direction", "up", "マイグレーションの方向 (up|down)")
	flag.Parse()

	dir, err := database.ParseDirection(*direction)
	if err != nil {
		log.Fatalf("Invalid direction: %v", err)
	}

	// 設定の読み込み(タスクトークンは使わない)
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("Failed to load config: %v\nStack trace:\n%s", err, debug.Stack())
	}

	db, err := database.NewDB(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DB.DBName, dir); err != nil {
		db.Close()
		log.Fatalf("Migration failed: %v\nStack trace:\n%s", err, debug.Stack())
	}
}
