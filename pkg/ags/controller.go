package ags

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Mode 表单所处状态：新增或编辑某条记录
type Mode interface {
	isMode()
}

// Create 新增状态
type Create struct{}

// Editing 编辑状态
type Editing struct {
	PaymentID uint64
}

func (Create) isMode()  {}
func (Editing) isMode() {}

// 用户可见的提示文案
const (
	MsgSessionMissing      = "User session not found. Please log in again."
	MsgPaymentCreated      = "Payment added successfully"
	MsgPaymentUpdated      = "Payment updated successfully"
	MsgPaymentCancelled    = "Payment cancelled successfully"
	MsgPaymentDeleted      = "Payment deleted successfully"
	MsgRegistrationPreview = "Registration number generated"
	MsgConfirmCancel       = "Are you sure you want to cancel this payment?"
	MsgConfirmDelete       = "Are you sure you want to delete this payment?"
	MsgOnlyActiveCancel    = "Only active payments can be cancelled"
	MsgOnlyActiveEdit      = "Only active payments can be edited"
)

const activityModule = "AGS Payment"

// Dependencies 控制器依赖的外部协作方
type Dependencies struct {
	API       API
	Allocator Allocator
	Banks     BankLister
	Session   Session
	Activity  ActivityLogger
	Notifier  Notifier
	Confirmer Confirmer
	// ScrollToTop 进入编辑状态时回调，可为空
	ScrollToTop func()
}

// Controller AGS 缴费工作流控制器
type Controller struct {
	clientID string
	store    *Store
	deps     Dependencies

	mu           sync.Mutex
	mode         Mode
	form         Form
	paymentMode  PaymentMode
	preview      string
	previewToken uint64
	submitting   bool
}

// NewController 为指定客户创建控制器
func NewController(clientID string, deps Dependencies) *Controller {
	if deps.Activity == nil {
		deps.Activity = nopActivityLogger{}
	}
	if deps.Notifier == nil {
		deps.Notifier = NotifierFunc(func(NotifyKind, string) {})
	}
	if deps.Confirmer == nil {
		deps.Confirmer = ConfirmerFunc(func(context.Context, string) bool { return false })
	}
	return &Controller{
		clientID: clientID,
		store:    NewStore(deps.API, clientID),
		deps:     deps,
		mode:     Create{},
	}
}

// Store 记录缓存，展示层只读
func (c *Controller) Store() *Store {
	return c.store
}

// Load 页面打开时加载记录
func (c *Controller) Load(ctx context.Context) error {
	if err := c.store.Load(ctx); err != nil {
		c.deps.Notifier.Notify(NotifyError, ErrorMessage(err))
		return err
	}
	return nil
}

// ListBanks 支票付款的银行列表
func (c *Controller) ListBanks(ctx context.Context) ([]Bank, error) {
	banks, err := c.deps.Banks.ListBanks(ctx)
	if err != nil {
		c.deps.Notifier.Notify(NotifyError, ErrorMessage(err))
		return nil, err
	}
	return banks, nil
}

// Mode 当前状态
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Form 当前表单
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// PaymentMode 当前选择的付款方式
func (c *Controller) PaymentMode() PaymentMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paymentMode
}

// PreviewRegistrationNo 当前预览的登记号
func (c *Controller) PreviewRegistrationNo() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preview
}

// UpdateForm 修改表单字段。参会日期请使用 SetSeminarDay，此处的修改会被忽略。
func (c *Controller) UpdateForm(fn func(f *Form)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	day, regNo := c.form.SeminarDay, c.form.RegistrationNo
	fn(&c.form)
	c.form.SeminarDay, c.form.RegistrationNo = day, regNo
}

// SetPaymentMode 切换付款方式，已填写的字段保留
func (c *Controller) SetPaymentMode(mode PaymentMode) {
	c.mu.Lock()
	c.paymentMode = mode
	c.mu.Unlock()
}

// SetSeminarDay 修改参会日期并重新预览登记号。
// 清空日期时只清除本地预览。并发请求以最后发起的为准，过期的响应直接丢弃。
func (c *Controller) SetSeminarDay(ctx context.Context, day SeminarDay) error {
	c.mu.Lock()
	c.form.SeminarDay = day
	c.previewToken++
	token := c.previewToken
	if day == "" {
		c.preview = ""
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	regNo, err := c.deps.Allocator.PreviewRegistrationNo(ctx, day)

	c.mu.Lock()
	stale := token != c.previewToken
	if !stale && err == nil {
		c.preview = regNo
	}
	_, editing := c.mode.(Editing)
	c.mu.Unlock()

	if stale {
		return nil
	}
	if err != nil {
		c.deps.Notifier.Notify(NotifyError, ErrorMessage(err))
		return fmt.Errorf("preview registration no: %w", err)
	}
	// 编辑时沿用原登记号，预览结果不会提交
	if !editing {
		c.deps.Notifier.Notify(NotifySuccess, MsgRegistrationPreview)
	}
	return nil
}

// Edit 进入编辑状态，表单按原记录回填
func (c *Controller) Edit(id uint64) error {
	p, ok := c.store.Get(id)
	if !ok {
		return ErrNotFound
	}
	// 作废记录只能删除，编辑后提交会把状态改回 Active
	if !p.IsActive() {
		c.deps.Notifier.Notify(NotifyWarning, MsgOnlyActiveEdit)
		return ErrNotActive
	}

	c.mu.Lock()
	c.mode = Editing{PaymentID: id}
	c.form = FormFromPayment(p)
	c.paymentMode = p.Mode
	c.mu.Unlock()

	if c.deps.ScrollToTop != nil {
		c.deps.ScrollToTop()
	}
	return nil
}

// CancelEdit 放弃编辑，回到新增状态
func (c *Controller) CancelEdit() {
	c.Reset()
}

// Reset 清空表单和登记号预览，回到新增状态
func (c *Controller) Reset() {
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
}

func (c *Controller) resetLocked() {
	c.mode = Create{}
	c.form = Form{}
	c.paymentMode = ""
	c.preview = ""
	// 丢弃尚未返回的预览请求
	c.previewToken++
}

// Submit 提交表单。新增状态创建记录，编辑状态更新记录。
// 失败时表单内容保持不变，不自动重试。
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	form, paymentMode, mode, preview := c.form, c.paymentMode, c.mode, c.preview

	if msg := Validate(form, paymentMode); msg != "" {
		c.mu.Unlock()
		c.deps.Notifier.Notify(NotifyWarning, msg)
		return &ValidationError{Message: msg}
	}
	c.submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	user, err := c.actingUser(ctx)
	if err != nil {
		c.deps.Notifier.Notify(NotifyError, MsgSessionMissing)
		return err
	}

	payload := c.buildPayload(form, paymentMode, user)

	var (
		saved   Payment
		action  string
		message string
	)
	switch m := mode.(type) {
	case Editing:
		payload.RegistrationNo = form.RegistrationNo
		saved, err = c.store.Update(ctx, m.PaymentID, payload)
		action, message = "update", MsgPaymentUpdated
	case Create:
		payload.RegistrationNo = preview
		payload.CreatedBy = user.DisplayName
		saved, err = c.store.Create(ctx, payload)
		action, message = "create", MsgPaymentCreated
	default:
		return fmt.Errorf("ags: unknown form mode %T", mode)
	}
	if err != nil {
		c.deps.Notifier.Notify(NotifyError, ErrorMessage(err))
		return err
	}

	c.deps.Notifier.Notify(NotifySuccess, message)
	c.Reset()
	c.logActivity(ctx, user, action, fmt.Sprintf("%s payment %s (%s %s)",
		action, saved.RegistrationNo, saved.Amount, saved.Mode))
	return nil
}

func (c *Controller) buildPayload(form Form, paymentMode PaymentMode, user User) Payload {
	return Payload{
		Payment: Payment{
			ClientID:        c.clientID,
			PaymentFor:      form.PaymentFor,
			SeminarDay:      form.SeminarDay,
			IdentityNumber:  form.IdentityNumber,
			Amount:          form.Amount,
			Mode:            paymentMode,
			BankName:        form.BankName,
			ChequeNo:        form.ChequeNo,
			DateOfIssue:     form.DateOfIssue,
			Branch:          form.Branch,
			PaytmNo:         form.PaytmNo,
			TransactionID:   form.TransactionID,
			UpiID:           form.UpiID,
			BankReferenceNo: form.BankReferenceNo,
			OrderNo:         form.OrderNo,
			Status:          StatusActive,
			UpdatedBy:       user.DisplayName,
		},
		UserID: user.ID,
	}
}

// CancelPayment 作废一条有效记录，成功后全量刷新列表
func (c *Controller) CancelPayment(ctx context.Context, id uint64) error {
	p, ok := c.store.Get(id)
	if !ok {
		return ErrNotFound
	}
	if !p.IsActive() {
		c.deps.Notifier.Notify(NotifyWarning, MsgOnlyActiveCancel)
		return ErrNotActive
	}
	if !c.deps.Confirmer.Confirm(ctx, MsgConfirmCancel) {
		return ErrConfirmationDeclined
	}

	user, err := c.actingUser(ctx)
	if err != nil {
		c.deps.Notifier.Notify(NotifyError, MsgSessionMissing)
		return err
	}

	p.Status = StatusCancelled
	p.UpdatedBy = user.DisplayName
	if _, err := c.store.Update(ctx, id, Payload{Payment: p, UserID: user.ID}); err != nil {
		c.deps.Notifier.Notify(NotifyError, ErrorMessage(err))
		return err
	}

	c.deps.Notifier.Notify(NotifySuccess, MsgPaymentCancelled)
	c.logActivity(ctx, user, "cancel", "cancel payment "+p.RegistrationNo)

	if err := c.store.Load(ctx); err != nil {
		c.deps.Notifier.Notify(NotifyError, ErrorMessage(err))
		return err
	}
	return nil
}

// DeletePayment 删除记录，不区分状态
func (c *Controller) DeletePayment(ctx context.Context, id uint64) error {
	p, ok := c.store.Get(id)
	if !ok {
		return ErrNotFound
	}
	if !c.deps.Confirmer.Confirm(ctx, MsgConfirmDelete) {
		return ErrConfirmationDeclined
	}

	user, err := c.actingUser(ctx)
	if err != nil {
		c.deps.Notifier.Notify(NotifyError, MsgSessionMissing)
		return err
	}

	if err := c.store.Remove(ctx, id, user.ID); err != nil {
		c.deps.Notifier.Notify(NotifyError, ErrorMessage(err))
		return err
	}

	// 正在编辑的记录被删除时退出编辑
	c.mu.Lock()
	if e, ok := c.mode.(Editing); ok && e.PaymentID == id {
		c.resetLocked()
	}
	c.mu.Unlock()

	c.deps.Notifier.Notify(NotifySuccess, MsgPaymentDeleted)
	c.logActivity(ctx, user, "delete", "delete payment "+p.RegistrationNo)
	return nil
}

func (c *Controller) actingUser(ctx context.Context) (User, error) {
	if c.deps.Session == nil {
		return User{}, ErrNoActingUser
	}
	user, err := c.deps.Session.Current(ctx)
	if err != nil {
		return User{}, errors.Join(ErrNoActingUser, err)
	}
	if user.ID == "" {
		return User{}, ErrNoActingUser
	}
	return user, nil
}

func (c *Controller) logActivity(ctx context.Context, user User, action, description string) {
	c.deps.Activity.LogActivity(ctx, ActivityEvent{
		Module:      activityModule,
		Action:      action,
		Description: description,
		UserID:      user.ID,
		ClientID:    c.clientID,
	})
}
