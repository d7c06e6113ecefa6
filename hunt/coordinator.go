package hunt

import (
	"sync"
	"time"

	"huntserver/models"

	"go.uber.org/zap"
)

// Publisher はWebSocket等のライブ配信先です。実装はブロックしてはいけません
// （live.Hubはバッファ付きチャネルへの非ブロッキング送信で実装しています）。
type Publisher interface {
	PushToDevice(deviceID string, frame map[string]interface{})
	PushAll(frame map[string]interface{})
}

// pushFrame はロック内で積まれ、pushLoopがロック外でPublisherへ流す1件です。
type pushFrame struct {
	deviceID string // 空文字なら全体配信
	frame    map[string]interface{}
}

// Coordinator はゲーム全体の正状態を1つのミューテックスで守る実体です。
// プレイヤー・ビーコン・賞金・イベントログ等の全ミューテーションはここを経由します。
type Coordinator struct {
	mu sync.Mutex

	players  map[string]*models.Player
	beacons  map[string]*models.Beacon
	game     *models.GameState
	bounties map[string]*models.Bounty // キー: 賞金ID
	messages []models.Message

	events   []models.Event
	eventSeq uint64
	msgSeq   uint64

	captureCooldown  map[string]time.Time // キー: 捕獲者DeviceID
	sightingCooldown map[string]time.Time // キー: spotter+"|"+target

	countdownSeq int // カウントダウンのキャンセル判定用の世代番号

	opts      Options
	logger    *zap.Logger
	publisher Publisher

	pushCh    chan pushFrame
	observers []chan<- models.Event

	closeOnce sync.Once
	closed    chan struct{}
}

// New はコーディネータを構築しライブ配信のポンプを起動します。
// publisherはnil可（配信なしでコアだけ動かすテスト用）。
func New(opts Options, publisher Publisher, logger *zap.Logger) *Coordinator {
	opts.fillDefaults()
	c := &Coordinator{
		players:          make(map[string]*models.Player),
		beacons:          make(map[string]*models.Beacon),
		bounties:         make(map[string]*models.Bounty),
		captureCooldown:  make(map[string]time.Time),
		sightingCooldown: make(map[string]time.Time),
		opts:             opts,
		logger:           logger,
		publisher:        publisher,
		pushCh:           make(chan pushFrame, 256),
		closed:           make(chan struct{}),
	}
	c.game = &models.GameState{
		Phase:      models.PhaseLobby,
		Mode:       DefaultMode,
		Settings:   defaultSettings(),
		TeamScores: make(map[string]int),
		Moderators: make(map[string]bool),
	}
	go c.pushLoop()
	return c
}

// Close はライブ配信ポンプを停止します。
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

func defaultSettings() models.Settings {
	return models.Settings{
		DurationMin:        30,
		CountdownSec:       10,
		CaptureRSSI:        -70,
		SafeZoneRSSI:       -75,
		ProximityAlertRSSI: -80,
	}
}

func (c *Coordinator) now() time.Time { return c.opts.Now() }

// pushLoop はロック外でPublisherへ配信する専用ゴルーチンです。
// コーディネータのロックを握ったままネットワーク書き込みに入らないための迂回路です。
func (c *Coordinator) pushLoop() {
	for {
		select {
		case f := <-c.pushCh:
			if c.publisher == nil {
				continue
			}
			if f.deviceID == "" {
				c.publisher.PushAll(f.frame)
			} else {
				c.publisher.PushToDevice(f.deviceID, f.frame)
			}
		case <-c.closed:
			return
		}
	}
}

// enqueuePush はロック内から呼ばれます。ポンプが詰まっている場合は破棄します。
func (c *Coordinator) enqueuePush(deviceID string, frame map[string]interface{}) {
	select {
	case c.pushCh <- pushFrame{deviceID: deviceID, frame: frame}:
	default:
		if c.logger != nil {
			c.logger.Warn("push queue full, frame dropped", zap.String("deviceID", deviceID))
		}
	}
}

// AddObserver はイベントログの購読チャネルを登録します（統計・実績用）。
// 配信は非ブロッキングで、受信が追いつかない分は落とされます。
func (c *Coordinator) AddObserver(ch chan<- models.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, ch)
}

// Game は現在のゲーム状態のコピーを返します。
func (c *Coordinator) Game() models.GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	g := *c.game
	g.TeamScores = copyIntMap(c.game.TeamScores)
	g.Moderators = copyBoolMap(c.game.Moderators)
	return g
}

// Mode は現在のモード設定を返します。
func (c *Coordinator) Mode() ModeConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modeLocked()
}

func (c *Coordinator) modeLocked() ModeConfig {
	m, ok := modeTable[c.game.Mode]
	if !ok {
		m = modeTable[DefaultMode]
	}
	return m
}

// IsModerator は端末がモデレーター権限を持つか返します。
func (c *Coordinator) IsModerator(deviceID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game.Moderators[deviceID]
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
