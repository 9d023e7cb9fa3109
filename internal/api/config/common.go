package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	Instagram InstagramConfig `mapstructure:"instagram"`
	Quota     QuotaConfig     `mapstructure:"quota"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

// MongoConfig Mongo配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig 对象存储配置
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// InstagramConfig 上游平台抓取配置
type InstagramConfig struct {
	SessionFile        string `mapstructure:"session_file"`
	SessionsDir        string `mapstructure:"sessions_dir"`
	TempDir            string `mapstructure:"temp_dir"`
	MaxRequestsPerHour int    `mapstructure:"max_requests_per_hour"`
	MinRequestDelayMs  int    `mapstructure:"min_request_delay_ms"`
	RequestTimeoutSec  int    `mapstructure:"request_timeout_sec"`
}

// QuotaConfig 各订阅档位的每月视频下载上限
type QuotaConfig struct {
	Free       int `mapstructure:"free"`
	Pro        int `mapstructure:"pro"`
	Enterprise int `mapstructure:"enterprise"`
}
