package models

type APIConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type WorkerConfig struct {
	Count        int `mapstructure:"count"`         // 0 = auto (CPU count)
	PollInterval int `mapstructure:"poll_interval"` // seconds between queue polls
	RetainDays   int `mapstructure:"retain_days"`   // finished jobs older than this get pruned
}

type AppConfig struct {
	AppName    string       `mapstructure:"app_name"`
	Debug      bool         `mapstructure:"debug"`
	LogLevel   string       `mapstructure:"log_level"`
	DataDir    string       `mapstructure:"data_dir"`
	LogsDir    string       `mapstructure:"logs_dir"`
	DBPath     string       `mapstructure:"db_path"`
	TodoFile   string       `mapstructure:"todo_file"`
	SessionTTL int          `mapstructure:"session_ttl"` // minutes
	API        APIConfig    `mapstructure:"api"`
	Worker     WorkerConfig `mapstructure:"worker"`
}
