package config

import "namogange/pkg/config"

func init() {
	config.Add("ags", func() map[string]interface{} {
		return map[string]interface{}{
			// 登记号前缀，格式为 <prefix>-<year>-<day>-<seq>
			"regno_prefix": config.Env("AGS_REGNO_PREFIX", "AGS"),
			// 登记号计数器：redis 或 db，redis 未启用时总是使用 db
			"regno_driver": config.Env("AGS_REGNO_DRIVER", "redis"),
		}
	})

	// 命令行前台使用
	config.Add("agsapi", func() map[string]interface{} {
		return map[string]interface{}{
			"base_url": config.Env("AGS_API_URL", "http://127.0.0.1:3000"),
			"token":    config.Env("AGS_API_TOKEN", ""),
			// 秒
			"timeout":     config.Env("AGS_API_TIMEOUT", 10),
			"retry_count": config.Env("AGS_API_RETRY_COUNT", 2),
		}
	})

	config.Add("session", func() map[string]interface{} {
		return map[string]interface{}{
			// 登录后保存的操作人信息
			"file": config.Env("SESSION_FILE", ".agsconsole/session.json"),
		}
	})

	config.Add("printer", func() map[string]interface{} {
		return map[string]interface{}{
			// 为空时启动本地 Chrome，否则连接远程 DevTools 地址
			"remote_url": config.Env("PRINTER_REMOTE_URL", ""),
			"timeout":    config.Env("PRINTER_TIMEOUT", 30),
			"no_sandbox": config.Env("PRINTER_NO_SANDBOX", false),
			"landscape":  config.Env("PRINTER_LANDSCAPE", true),
		}
	})

	// 打印的对账单上传到 S3 兼容存储，bucket 为空时不可用
	config.Add("archive", func() map[string]interface{} {
		return map[string]interface{}{
			"endpoint":          config.Env("ARCHIVE_ENDPOINT", ""),
			"region":            config.Env("ARCHIVE_REGION", "ap-south-1"),
			"bucket":            config.Env("ARCHIVE_BUCKET", ""),
			"access_key":        config.Env("ARCHIVE_ACCESS_KEY", ""),
			"secret_key":        config.Env("ARCHIVE_SECRET_KEY", ""),
			"use_path_style":    config.Env("ARCHIVE_USE_PATH_STYLE", false),
			"link_expiry_hours": config.Env("ARCHIVE_LINK_EXPIRY_HOURS", 24),
		}
	})
}
