package requests

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"
)

// BankRequest 新增银行
type BankRequest struct {
	Name string `json:"name"`
}

// ValidateBank 解析并校验
func ValidateBank(c *gin.Context) (*BankRequest, error) {
	var req BankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	req.Name = strings.TrimSpace(req.Name)

	rules := govalidator.MapData{
		"name": []string{"required", "between:2,120"},
	}
	messages := govalidator.MapData{
		"name": []string{
			"required:Bank Name is required",
			"between:Bank Name must be 2-120 characters",
		},
	}
	if verr := ValidateStruct(&req, rules, messages, "name"); verr != nil {
		return nil, verr
	}
	return &req, nil
}
