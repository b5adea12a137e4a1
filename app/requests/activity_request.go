package requests

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"

	"namogange/pkg/ags"
)

// ValidateActivity 解析并校验操作日志
func ValidateActivity(c *gin.Context) (*ags.ActivityEvent, error) {
	var event ags.ActivityEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}

	rules := govalidator.MapData{
		"module":  []string{"required", "max:40"},
		"action":  []string{"required", "max:40"},
		"user_id": []string{"required"},
	}
	messages := govalidator.MapData{
		"module":  []string{"required:Module is required", "max:Module is too long"},
		"action":  []string{"required:Action is required", "max:Action is too long"},
		"user_id": []string{"required:User ID is required"},
	}
	if verr := ValidateStruct(&event, rules, messages, "module", "action", "user_id"); verr != nil {
		return nil, verr
	}
	return &event, nil
}
