// Package app 提供应用程序相关的辅助函数
package app

import (
	"time"

	"namogange/pkg/config"
)

// IsLocal 判断当前是否运行在本地环境
func IsLocal() bool {
	return config.Get("app.env") == "local"
}

// IsProduction 判断当前是否运行在生产环境
func IsProduction() bool {
	return config.Get("app.env") == "production"
}

// IsTesting 判断当前是否运行在测试环境
func IsTesting() bool {
	return config.Get("app.env") == "testing"
}

// Location 返回 app.timezone 配置的时区，配置有误时退回 Asia/Kolkata
func Location() *time.Location {
	loc, err := time.LoadLocation(config.GetString("app.timezone", "Asia/Kolkata"))
	if err != nil {
		loc = time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

// TimenowInTimezone 获取当前时间（支持时区设置）
// 登记号中的年份、打印页眉的日期都以此为准
func TimenowInTimezone() time.Time {
	return time.Now().In(Location())
}
