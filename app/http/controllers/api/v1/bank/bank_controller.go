// Package bank 银行下拉框数据接口
package bank

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	model "namogange/app/models/bank"
	"namogange/app/repositories"
	"namogange/app/requests"
	"namogange/pkg/ags"
	"namogange/pkg/response"
)

// Controller 银行控制器
type Controller struct {
	repo *repositories.BankRepository
}

func NewController(repo *repositories.BankRepository) *Controller {
	return &Controller{repo: repo}
}

// Index 全部银行，按名称排序
// GET /v1/banks
func (bc *Controller) Index(c *gin.Context) {
	banks, err := bc.repo.List(c.Request.Context())
	if err != nil {
		response.ServerError(c, err)
		return
	}
	out := make([]ags.Bank, 0, len(banks))
	for _, b := range banks {
		out = append(out, b.ToAGS())
	}
	response.Data(c, out)
}

// Store 新增银行，名称重复返回 409
// POST /v1/banks
func (bc *Controller) Store(c *gin.Context) {
	req, err := requests.ValidateBank(c)
	if err != nil {
		var verr *requests.ValidationError
		if errors.As(err, &verr) {
			response.ValidationError(c, verr.Message, verr.Errors)
			return
		}
		response.BadRequest(c, err)
		return
	}

	b := &model.Bank{Name: req.Name}
	if err := bc.repo.Create(c.Request.Context(), b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			response.Abort409(c, "Bank already exists")
			return
		}
		response.ServerError(c, err)
		return
	}
	response.Created(c, b.ToAGS())
}

// Destroy 删除银行
// DELETE /v1/banks/:id
func (bc *Controller) Destroy(c *gin.Context) {
	id := cast.ToUint64(c.Param("id"))
	err := bc.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Abort404(c, "Bank not found")
		return
	}
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.Data(c, gin.H{"id": id})
}
