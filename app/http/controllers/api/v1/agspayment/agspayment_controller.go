// Package agspayment AGS 缴费记录接口
package agspayment

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	model "namogange/app/models/agspayment"
	"namogange/app/repositories"
	"namogange/app/requests"
	"namogange/pkg/ags"
	"namogange/pkg/logger"
	"namogange/pkg/response"
)

// RegistrationAllocator 登记号分配
type RegistrationAllocator interface {
	Preview(ctx context.Context, day ags.SeminarDay) (string, error)
	Reserve(ctx context.Context, day ags.SeminarDay) (string, error)
}

// Controller 缴费记录控制器
type Controller struct {
	repo      *repositories.AGSPaymentRepository
	allocator RegistrationAllocator
}

// NewController 创建控制器
func NewController(repo *repositories.AGSPaymentRepository, allocator RegistrationAllocator) *Controller {
	return &Controller{repo: repo, allocator: allocator}
}

// Index 客户的全部缴费记录
// GET /v1/ags-payments?client_id=
func (pc *Controller) Index(c *gin.Context) {
	clientID := c.Query("client_id")
	if clientID == "" {
		response.Abort400(c, "Client ID is required")
		return
	}

	payments, err := pc.repo.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.Data(c, model.ToAGSList(payments))
}

// Store 新增缴费记录。登记号以服务端分配为准
// POST /v1/ags-payments
func (pc *Controller) Store(c *gin.Context) {
	req, ok := validate(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	// 先解析表单再占号，解析失败不会跳号
	payment := &model.AGSPayment{
		ClientID:      req.ClientID,
		PaymentStatus: string(ags.StatusActive),
		CreatedBy:     req.CreatedBy,
	}
	if err := payment.Apply(req.Payment()); err != nil {
		response.ValidationError(c, ags.MsgAmountInvalid, nil)
		return
	}

	regNo, err := pc.allocator.Reserve(ctx, ags.SeminarDay(req.SeminarDay))
	if err != nil {
		response.ServerError(c, err, "Could not generate registration number")
		return
	}
	if req.RegistrationNo != "" && req.RegistrationNo != regNo {
		logger.WarnString("AGSPayment", "Store", fmt.Sprintf("预览登记号 %s 已被占用，改用 %s", req.RegistrationNo, regNo))
	}
	payment.RegistrationNo = regNo

	if err := pc.repo.Create(ctx, payment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			response.Abort409(c, "Registration number already used, please retry")
			return
		}
		response.ServerError(c, err)
		return
	}

	logger.InfoString("AGSPayment", "Store", fmt.Sprintf("client:%s regno:%s user:%s", payment.ClientID, payment.RegistrationNo, req.UserID))
	response.Created(c, payment.ToAGS(), ags.MsgPaymentCreated)
}

// Update 修改缴费记录，也用于作废。登记号、客户、创建人保持不变
// PUT /v1/ags-payments/:id
func (pc *Controller) Update(c *gin.Context) {
	id := cast.ToUint64(c.Param("id"))
	if id == 0 {
		response.Abort404(c, "Payment not found")
		return
	}
	req, ok := validate(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	payment, err := pc.repo.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Abort404(c, "Payment not found")
		return
	}
	if err != nil {
		response.ServerError(c, err)
		return
	}

	if err := payment.TransitionTo(ags.Status(req.PaymentStatus)); err != nil {
		response.ValidationError(c, "Cancelled payments cannot be reactivated", nil)
		return
	}
	if err := payment.Apply(req.Payment()); err != nil {
		response.ValidationError(c, ags.MsgAmountInvalid, nil)
		return
	}

	if err := pc.repo.Save(ctx, payment); err != nil {
		response.ServerError(c, err)
		return
	}

	logger.InfoString("AGSPayment", "Update", fmt.Sprintf("id:%d status:%s user:%s", payment.ID, payment.PaymentStatus, req.UserID))
	response.Data(c, payment.ToAGS())
}

// Destroy 删除缴费记录，任何状态都可以删除
// DELETE /v1/ags-payments/:id?user_id=
func (pc *Controller) Destroy(c *gin.Context) {
	id := cast.ToUint64(c.Param("id"))
	userID := c.Query("user_id")
	if userID == "" {
		response.Abort400(c, "User ID is required")
		return
	}

	err := pc.repo.Delete(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.Abort404(c, "Payment not found")
		return
	}
	if err != nil {
		response.ServerError(c, err)
		return
	}

	logger.InfoString("AGSPayment", "Destroy", fmt.Sprintf("id:%d user:%s", id, userID))
	response.Data(c, gin.H{"id": id})
}

// PreviewRegistrationNo 预览下一个登记号
// GET /v1/ags-payments/registration-no/preview?seminar_day=
func (pc *Controller) PreviewRegistrationNo(c *gin.Context) {
	day := ags.SeminarDay(c.Query("seminar_day"))
	if !day.IsValid() {
		response.ValidationError(c, ags.MsgSeminarDayRequired, nil)
		return
	}

	regNo, err := pc.allocator.Preview(c.Request.Context(), day)
	if err != nil {
		response.ServerError(c, err, "Could not generate registration number")
		return
	}
	response.Data(c, gin.H{"registration_no": regNo})
}

func validate(c *gin.Context) (*requests.AGSPaymentRequest, bool) {
	req, err := requests.ValidateAGSPayment(c)
	if err == nil {
		return req, true
	}
	var verr *requests.ValidationError
	if errors.As(err, &verr) {
		response.ValidationError(c, verr.Message, verr.Errors)
		return nil, false
	}
	response.BadRequest(c, err)
	return nil, false
}
