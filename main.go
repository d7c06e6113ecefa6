package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"huntserver/database" //PostgreSQLとRedisの初期化
	"huntserver/handlers" //HTTPリクエストの処理
	"huntserver/hunt"     //ゲーム状態コーディネータ
	"huntserver/live"     //WebSocketライブ配信
	"huntserver/middlewares"
	"huntserver/models"
	"huntserver/utils" //ロガーの初期化とCronジョブ(PostgreSQLの定期クリーンナップ)

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	var logger *zap.Logger
	var err error
	logger, err = utils.InitLogger() // ロガーの初期化
	if err != nil {
		panic(err) // 失敗した場合はプログラム停止
	}
	defer logger.Sync() // ロガーのクリーンアップ

	// .envからRedis等の接続情報を読み込む（無くても環境変数があれば動く）
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	var config models.Config
	config, err = database.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("設定ファイルの読み込みに失敗しました", zap.Error(err))
	}
	if config.UploadDir == "" {
		config.UploadDir = "uploads"
	}
	if err := os.MkdirAll(config.UploadDir, 0o755); err != nil {
		logger.Fatal("アップロードディレクトリの作成に失敗しました", zap.Error(err))
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	// 非同期でPostgreSQLとRedisの初期化
	var db *gorm.DB
	var rdb *redis.Client
	done := make(chan bool)

	go func() {
		pgDB, pgErr := database.InitPostgreSQL(config, logger)
		if pgErr != nil {
			logger.Fatal("PostgreSQLの初期化に失敗しました", zap.Error(pgErr))
		}
		db = pgDB
		done <- true
	}()

	go func() {
		redisClient, redisErr := database.InitRedis(logger)
		if redisErr != nil {
			logger.Fatal("Failed to initialize Redis", zap.Error(redisErr))
		}
		rdb = redisClient
		done <- true
	}()

	// 2つの初期化が完了するのを待つ
	<-done
	<-done

	// ライブ配信ハブとゲームコーディネータの構築
	hub := live.NewHub(logger)
	opts := hunt.DefaultOptions()
	if config.MaxPlayers > 0 {
		opts.MaxPlayers = config.MaxPlayers
	}
	coord := hunt.New(opts, hub, logger)

	// サーバー再起動でロスターを失わないよう、最新スナップショットを復元
	if snap, err := database.LoadLatestSnapshot(db); err != nil {
		logger.Error("スナップショットの読み込みに失敗しました", zap.Error(err))
	} else if snap != nil {
		coord.Restore(*snap)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// バックグラウンド処理: 整合処理ループ・スナップショット書き込み・統計観測者
	go coord.RunReconciler(ctx, 5*time.Second)
	go database.SnapshotWriter(ctx, db, coord, 30*time.Second, logger)

	stats := hunt.NewStats()
	eventFeed := make(chan models.Event, 64)
	coord.AddObserver(eventFeed)
	go stats.Run(ctx, eventFeed)

	// クーロンスケジューラのセットアップと呼び出し
	go utils.CronCleaner(db, config.UploadDir, logger)

	router := gin.Default()
	//リクエストロガーを起動
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	//CORS（Cross-Origin Resource Sharing）ポリシーを設定
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, //本番環境ではダッシュボードのオリジンに絞る
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "SessionID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	requireLogin := middlewares.RequireLogin(logger)
	requireMod := middlewares.RequireMod(coord, logger)
	requireAdmin := middlewares.RequireAdmin(logger)

	//公開エンドポイント
	router.POST("/api/login", func(c *gin.Context) {
		handlers.Login(c, coord, logger)
	})
	router.POST("/api/admin_login", func(c *gin.Context) {
		handlers.AdminLogin(c, config.AdminPassword, logger)
	})
	router.GET("/api/players", func(c *gin.Context) {
		handlers.ListPlayers(c, coord)
	})
	router.GET("/api/beacons", func(c *gin.Context) {
		handlers.ListBeacons(c, coord)
	})
	router.GET("/api/game", func(c *gin.Context) {
		handlers.GetGame(c, coord)
	})
	router.GET("/api/emergency", func(c *gin.Context) {
		handlers.GetEmergency(c, coord)
	})
	router.GET("/api/events", func(c *gin.Context) {
		handlers.GetEvents(c, coord)
	})
	router.GET("/api/leaderboard", func(c *gin.Context) {
		handlers.GetLeaderboard(c, coord)
	})
	router.GET("/api/stats", func(c *gin.Context) {
		handlers.GetStats(c, stats)
	})
	router.GET("/api/sightings", func(c *gin.Context) {
		handlers.ListSightings(c, db, logger)
	})
	router.GET("/api/qr", func(c *gin.Context) {
		handlers.JoinQR(c, config.PublicURL, logger)
	})
	router.Static("/uploads", config.UploadDir)

	//トラッカー用エンドポイント（端末認証なし・常に200+理由で応答）
	router.POST("/api/tracker/ping", func(c *gin.Context) {
		handlers.TrackerPing(c, coord, logger)
	})
	router.POST("/api/tracker/capture", func(c *gin.Context) {
		handlers.TrackerCapture(c, coord, logger)
	})
	router.POST("/api/tracker/emergency", func(c *gin.Context) {
		handlers.TrackerEmergency(c, coord, logger)
	})

	//プレイヤー用エンドポイント（端末JWT）
	player := router.Group("/api", requireLogin)
	player.GET("/player", func(c *gin.Context) {
		handlers.GetPlayer(c, coord)
	})
	player.PUT("/player", func(c *gin.Context) {
		handlers.UpdatePlayer(c, coord, logger)
	})
	player.PUT("/player/consent", func(c *gin.Context) {
		handlers.UpdateConsent(c, coord)
	})
	player.POST("/player/photo", func(c *gin.Context) {
		handlers.UploadProfilePhoto(c, coord, config.UploadDir, logger)
	})
	player.GET("/player/notifications", func(c *gin.Context) {
		handlers.GetNotifications(c, coord)
	})
	player.POST("/sighting", func(c *gin.Context) {
		handlers.UploadSighting(c, coord, db, config.UploadDir, logger)
	})
	player.POST("/escape", func(c *gin.Context) {
		handlers.PostEscape(c, coord)
	})
	player.POST("/emergency", func(c *gin.Context) {
		handlers.PostEmergency(c, coord, logger)
	})
	player.GET("/messages", func(c *gin.Context) {
		handlers.GetMessages(c, coord)
	})
	player.POST("/messages", func(c *gin.Context) {
		handlers.PostMessage(c, coord)
	})
	player.POST("/logout", func(c *gin.Context) {
		handlers.Logout(c, coord)
	})

	//モデレーター用エンドポイント
	mod := router.Group("/api", requireMod)
	mod.POST("/game/start", func(c *gin.Context) {
		handlers.StartGame(c, coord, logger)
	})
	mod.POST("/game/pause", func(c *gin.Context) {
		handlers.PauseGame(c, coord)
	})
	mod.POST("/game/resume", func(c *gin.Context) {
		handlers.ResumeGame(c, coord)
	})
	mod.POST("/game/end", func(c *gin.Context) {
		handlers.EndGame(c, coord)
	})
	mod.PUT("/game/mode", func(c *gin.Context) {
		handlers.SetMode(c, coord)
	})
	mod.POST("/emergency/clear", func(c *gin.Context) {
		handlers.ClearEmergency(c, coord)
	})
	mod.POST("/beacons", func(c *gin.Context) {
		handlers.AddBeacon(c, coord)
	})
	mod.PUT("/beacons/:id", func(c *gin.Context) {
		handlers.UpdateBeacon(c, coord)
	})
	mod.DELETE("/beacons/:id", func(c *gin.Context) {
		handlers.DeleteBeacon(c, coord)
	})
	mod.GET("/bounties", func(c *gin.Context) {
		handlers.ListBounties(c, coord)
	})
	mod.POST("/bounties", func(c *gin.Context) {
		handlers.PlaceBounty(c, coord)
	})
	mod.DELETE("/bounties/:id", func(c *gin.Context) {
		handlers.RemoveBounty(c, coord)
	})
	mod.POST("/mod/release", func(c *gin.Context) {
		handlers.ReleaseCaptured(c, coord)
	})
	mod.POST("/mod/kick", func(c *gin.Context) {
		handlers.KickPlayer(c, coord)
	})
	mod.POST("/mod/force_role", func(c *gin.Context) {
		handlers.ForceRole(c, coord)
	})
	mod.POST("/announce", func(c *gin.Context) {
		handlers.Announce(c, coord)
	})

	//管理者用エンドポイント
	admin := router.Group("/api", requireAdmin)
	admin.PUT("/game/settings", func(c *gin.Context) {
		handlers.UpdateSettings(c, coord)
	})
	admin.POST("/game/reset", func(c *gin.Context) {
		handlers.ResetGame(c, coord)
	})
	admin.POST("/mod/add", func(c *gin.Context) {
		handlers.AddModerator(c, coord)
	})
	admin.POST("/mod/remove", func(c *gin.Context) {
		handlers.RemoveModerator(c, coord)
	})
	admin.POST("/emergency/system", func(c *gin.Context) {
		handlers.SystemEmergency(c, coord)
	})

	//ライブ配信用WebSocket
	router.GET("/ws", func(c *gin.Context) {
		handlers.HandleConnections(c, coord, hub, rdb, upgrader, logger)
	})

	// テスト時はHTTPサーバーとして運用。デフォルトポートは ":8080"
	router.Run()

	// // 本番環境ではコメントアウトを解除し、HTTPSサーバーとして運用
	// err = router.RunTLS(":443", "path/to/cert.pem", "path/to/key.pem")
	// if err != nil {
	// 	logger.Fatal("Failed to run HTTPS server: ", zap.Error(err))
	// }
}
