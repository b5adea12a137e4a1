package config

import "namogange/pkg/config"

func init() {
	config.Add("log", func() map[string]interface{} {
		return map[string]interface{}{
			// 日志级别：debug, info, warn, error
			"level": config.Env("LOG_LEVEL", "info"),

			// single 单文件，daily 按日期
			"type": config.Env("LOG_TYPE", "daily"),

			"filename": config.Env("LOG_NAME", "storage/logs/logs.log"),
			// 单个文件最大尺寸，单位 MB
			"max_size": config.Env("LOG_MAX_SIZE", 64),
			// 最多保存的文件数，0 为不限
			"max_backup": config.Env("LOG_MAX_BACKUP", 5),
			// 最多保存天数，0 为不删
			"max_age":  config.Env("LOG_MAX_AGE", 30),
			"compress": config.Env("LOG_COMPRESS", false),
		}
	})
}
