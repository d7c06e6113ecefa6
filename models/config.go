package models

// Config 構造体はデータベース接続とサーバー運用の設定情報を保持します。
type Config struct {
	DBHost        string `json:"db_host"`
	DBUser        string `json:"db_user"`
	DBPassword    string `json:"db_password"`
	DBName        string `json:"db_name"`
	DBSSLMode     string `json:"db_sslmode"`
	AdminPassword string `json:"admin_password"` // 管理者ログイン用パスワード
	PublicURL     string `json:"public_url"`     // 参加用QRコードに埋め込む公開URL
	UploadDir     string `json:"upload_dir"`     // 目撃写真・プロフィール写真の保存先
	MaxPlayers    int    `json:"max_players"`    // プレイヤー登録数の上限
}
