package ags

import (
	"context"
	"errors"
	"sync"
	"time"
)

type apiError struct{ msg string }

func (e apiError) Error() string       { return "api: " + e.msg }
func (e apiError) UserMessage() string { return e.msg }

// fakeAPI 内存版后端
type fakeAPI struct {
	mu       sync.Mutex
	nextID   uint64
	records  []Payment
	failNext error
	calls    map[string]int
	payloads []Payload
}

func newFakeAPI(records ...Payment) *fakeAPI {
	f := &fakeAPI{nextID: 100, calls: map[string]int{}}
	f.records = append(f.records, records...)
	return f
}

func (f *fakeAPI) takeErr(op string) error {
	f.calls[op]++
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeAPI) ListPayments(ctx context.Context, clientID string) ([]Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeErr("list"); err != nil {
		return nil, err
	}
	var out []Payment
	for _, p := range f.records {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreatePayment(ctx context.Context, payload Payload) (Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeErr("create"); err != nil {
		return Payment{}, err
	}
	f.payloads = append(f.payloads, payload)
	f.nextID++
	p := payload.Payment
	p.ID = f.nextID
	p.CreatedAt = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	f.records = append([]Payment{p}, f.records...)
	return p, nil
}

func (f *fakeAPI) UpdatePayment(ctx context.Context, id uint64, payload Payload) (Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeErr("update"); err != nil {
		return Payment{}, err
	}
	f.payloads = append(f.payloads, payload)
	for i := range f.records {
		if f.records[i].ID == id {
			p := payload.Payment
			p.ID = id
			p.CreatedAt = f.records[i].CreatedAt
			f.records[i] = p
			return p, nil
		}
	}
	return Payment{}, apiError{msg: "Payment not found"}
}

func (f *fakeAPI) DeletePayment(ctx context.Context, id uint64, actingUserID string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeErr("delete"); err != nil {
		return 0, err
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return id, nil
		}
	}
	return 0, apiError{msg: "Payment not found"}
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// fakeAllocator 按日期返回固定登记号
type fakeAllocator struct {
	numbers map[SeminarDay]string
	err     error
	calls   int
}

func (a *fakeAllocator) PreviewRegistrationNo(ctx context.Context, day SeminarDay) (string, error) {
	a.calls++
	if a.err != nil {
		return "", a.err
	}
	return a.numbers[day], nil
}

type staticSession struct {
	user User
	err  error
}

func (s staticSession) Current(context.Context) (User, error) {
	return s.user, s.err
}

type notification struct {
	kind    NotifyKind
	message string
}

type recorder struct {
	mu     sync.Mutex
	notes  []notification
	events []ActivityEvent
}

func (r *recorder) Notify(kind NotifyKind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, notification{kind, message})
}

func (r *recorder) LogActivity(ctx context.Context, event ActivityEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) last() notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return notification{}
	}
	return r.notes[len(r.notes)-1]
}

var errNetwork = errors.New("dial tcp: connection refused")
