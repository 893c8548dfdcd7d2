package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	API     APIConfig     `yaml:"api"`
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Board   BoardConfig   `yaml:"board"`
	Editor  EditorConfig  `yaml:"editor"`
	Cache   CacheConfig   `yaml:"cache"`
	MockAPI MockAPIConfig `yaml:"mockapi"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// APIConfig 는 대시보드가 호출하는 REST 백엔드 설정이다.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// SessionConfig 는 로그인 세션 쿠키(JWT) 설정이다.
// Secret 은 yaml 에 두지 않고 SESSION_SECRET 환경변수로만 주입하는 것을 권장한다.
type SessionConfig struct {
	Secret     string        `yaml:"secret"`
	Issuer     string        `yaml:"issuer"`
	CookieName string        `yaml:"cookie_name"`
	TTL        time.Duration `yaml:"ttl"`
	Secure     bool          `yaml:"secure"`
}

// BoardConfig 는 게시글 목록(무한 스크롤) 설정이다.
type BoardConfig struct {
	PageSize       int           `yaml:"page_size"`
	PrefetchMargin int           `yaml:"prefetch_margin"`
	MaxSessions    int           `yaml:"max_sessions"`
	SessionIdle    time.Duration `yaml:"session_idle"`
}

type EditorConfig struct {
	BannedWords []string `yaml:"banned_words"`
}

// CacheConfig 는 게시글 상세 캐시 설정이다.
//
//	backend: "memory" (기본) 또는 "redis"
type CacheConfig struct {
	Backend   string        `yaml:"backend"`
	Size      int           `yaml:"size"`
	TTL       time.Duration `yaml:"ttl"`
	RedisAddr string        `yaml:"redis_addr"`
}

// MockAPIConfig 는 로컬 개발용 백엔드(cmd/mockapi) 설정이다.
type MockAPIConfig struct {
	Addr         string        `yaml:"addr"`
	MongoURI     string        `yaml:"mongo_uri"`
	MongoDBName  string        `yaml:"mongo_db_name"`
	JWTSecret    string        `yaml:"jwt_secret"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
	UserEmail    string        `yaml:"user_email"`
	UserPassword string        `yaml:"user_password"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	c, err := Load(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}
	config = c
}

// Load 는 주어진 yaml 파일을 읽고, 기본값과 환경변수 오버라이드를 적용한 설정을 반환한다.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.applyEnv()
	c.applyDefaults()
	return &c, nil
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func (c *AppConfig) applyEnv() {
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.API.BaseURL, "API_BASE_URL")
	setString(&c.Server.Addr, "DASHBOARD_ADDR")
	setString(&c.Session.Secret, "SESSION_SECRET")
	setString(&c.Cache.Backend, "CACHE_BACKEND")
	setString(&c.Cache.RedisAddr, "REDIS_ADDR")
	setString(&c.MockAPI.Addr, "MOCKAPI_ADDR")
	setString(&c.MockAPI.MongoURI, "MONGO_URI")
	setString(&c.MockAPI.MongoDBName, "MONGO_DB_NAME")
	setString(&c.MockAPI.JWTSecret, "MOCK_JWT_SECRET")
	setString(&c.MockAPI.UserEmail, "MOCK_USER_EMAIL")
	setString(&c.MockAPI.UserPassword, "MOCK_USER_PASSWORD")
	if v := os.Getenv("BOARD_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Board.PageSize = n
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = strings.Split(v, ",")
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:3065"
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = 10 * time.Second
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Session.Issuer == "" {
		c.Session.Issuer = "post-dashboard"
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "dashboard_session"
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = 24 * time.Hour
	}
	if c.Board.PageSize <= 0 {
		c.Board.PageSize = 10
	}
	if c.Board.PrefetchMargin <= 0 {
		c.Board.PrefetchMargin = 200
	}
	if c.Board.MaxSessions <= 0 {
		c.Board.MaxSessions = 1024
	}
	if c.Board.SessionIdle <= 0 {
		c.Board.SessionIdle = 30 * time.Minute
	}
	if len(c.Editor.BannedWords) == 0 {
		c.Editor.BannedWords = []string{"캄보디아", "프놈펜", "불법체류", "텔레그램"}
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Size <= 0 {
		c.Cache.Size = 512
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.MockAPI.Addr == "" {
		c.MockAPI.Addr = ":3065"
	}
	if c.MockAPI.MongoDBName == "" {
		c.MockAPI.MongoDBName = "postboard"
	}
	if c.MockAPI.TokenTTL <= 0 {
		c.MockAPI.TokenTTL = 12 * time.Hour
	}
}

func setString(dst *string, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = v
	}
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
