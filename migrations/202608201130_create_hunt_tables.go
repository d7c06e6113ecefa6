package main

import (
	"fmt"
	"log"

	"huntserver/database"
	"huntserver/models"

	"go.uber.org/zap"
)

// スナップショットと目撃データのテーブルを作成するマイグレーションです。
// go run ./migrations で単体実行します。
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗しました: %v", err)
	}
	defer logger.Sync()

	config, err := database.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("設定ファイルの読み込みに失敗しました", zap.Error(err))
	}
	db, err := database.InitPostgreSQL(config, logger)
	if err != nil {
		logger.Fatal("PostgreSQLの初期化に失敗しました", zap.Error(err))
	}

	if err := db.AutoMigrate(&models.SnapshotRow{}, &models.Sighting{}); err != nil {
		logger.Fatal("マイグレーションに失敗しました", zap.Error(err))
	}
	fmt.Println("Migration completed successfully.")
}
