package main

import (
	"bufio"
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namogange/app/http/controllers/api/v1/activity"
	"namogange/app/http/controllers/api/v1/agspayment"
	"namogange/app/http/controllers/api/v1/bank"
	"namogange/app/http/controllers/api/v1/health"
	"namogange/app/repositories"
	"namogange/pkg/ags"
	"namogange/pkg/ags/view"
	"namogange/pkg/agsapi"
	"namogange/pkg/database"
	"namogange/pkg/database/dbtest"
	"namogange/pkg/regno"
	"namogange/pkg/session"
	"namogange/routes"
)

// newConsole 启动进程内的后端，控制台通过 HTTP 访问
func newConsole(t *testing.T) (*console, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.Setup(t)

	allocator := regno.New(regno.NewDBSequence(db), regno.WithClock(func() time.Time {
		return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	}))
	router := gin.New()
	routes.RegisterAPIRoutes(router, routes.Controllers{
		Payments: agspayment.NewController(repositories.NewAGSPaymentRepository(), allocator),
		Banks:    bank.NewController(repositories.NewBankRepository()),
		Activity: activity.NewController(repositories.NewActivityRepository(), nil),
		Health:   health.NewController(nil, health.Check{Name: "database", Ping: database.Ping}),
	})
	srv := httptest.NewServer(router)

	client := agsapi.New(agsapi.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	t.Cleanup(func() {
		client.Wait()
		srv.Close()
	})

	persisted := session.NewPersisted(filepath.Join(t.TempDir(), "session.json"))
	out := &bytes.Buffer{}
	return &console{
		out:       out,
		in:        strings.NewReader(""),
		api:       client,
		persisted: persisted,
		session:   session.Chain{session.NewLive(), persisted},
		clientID:  "C1",
		loc:       time.UTC,
	}, out
}

func answer(c *console, input string) {
	c.stdin = bufio.NewReader(strings.NewReader(input))
}

func TestConsole_Workflow(t *testing.T) {
	c, out := newConsole(t)
	ctx := context.Background()

	require.NoError(t, c.dispatch(ctx, "login", []string{"-id", "U1", "-name", "Asha"}))

	err := c.dispatch(ctx, "create", []string{
		"-for", "Seminar Only", "-day", "For 1st Day",
		"-identity", "ABCDE1234F", "-amount", "500", "-mode", "Cash",
	})
	require.NoError(t, err, out.String())
	assert.Contains(t, out.String(), "registration no: AGS-2026-D1-001")
	assert.Contains(t, out.String(), "[success] Payment added successfully")

	out.Reset()
	require.NoError(t, c.dispatch(ctx, "edit", []string{"-id", "1", "-amount", "750", "-day", "For 2nd Day"}))
	assert.Contains(t, out.String(), "[success] Payment updated successfully")
	assert.NotContains(t, out.String(), ags.MsgRegistrationPreview)

	out.Reset()
	require.NoError(t, c.dispatch(ctx, "list", nil))
	assert.Contains(t, out.String(), "AGS-2026-D1-001 | Seminar Only | For 2nd Day")
	assert.Contains(t, out.String(), "Rs. 750")

	out.Reset()
	require.NoError(t, c.dispatch(ctx, "print", []string{"-format", "html"}))
	assert.Contains(t, out.String(), `<table id="active-payments">`)

	answer(c, "n\n")
	err = c.dispatch(ctx, "cancel", []string{"-id", "1"})
	assert.ErrorIs(t, err, ags.ErrConfirmationDeclined)

	answer(c, "y\n")
	out.Reset()
	require.NoError(t, c.dispatch(ctx, "cancel", []string{"-id", "1"}))
	assert.Contains(t, out.String(), "[success] Payment cancelled successfully")

	out.Reset()
	require.NoError(t, c.dispatch(ctx, "list", nil))
	assert.Contains(t, out.String(), "Cancelled")

	out.Reset()
	err = c.dispatch(ctx, "edit", []string{"-id", "1", "-amount", "900"})
	assert.ErrorIs(t, err, ags.ErrNotActive)
	assert.Contains(t, out.String(), "[warning] "+ags.MsgOnlyActiveEdit)

	out.Reset()
	require.NoError(t, c.dispatch(ctx, "delete", []string{"-id", "1", "-yes"}))
	assert.Contains(t, out.String(), "[success] Payment deleted successfully")
}

func TestConsole_ValidationStopsBeforeRequest(t *testing.T) {
	c, out := newConsole(t)
	ctx := context.Background()
	require.NoError(t, c.dispatch(ctx, "login", []string{"-id", "U1", "-name", "Asha"}))

	err := c.dispatch(ctx, "create", []string{
		"-for", "Seminar Only", "-day", "For 1st Day",
		"-identity", "123456789012", "-amount", "500", "-mode", "Cheque",
		"-cheque-no", "000123", "-issued", "2026-10-10", "-branch", "Haridwar",
	})
	var r reported
	require.ErrorAs(t, err, &r)
	assert.Contains(t, out.String(), "[warning] Bank Name is required")

	out.Reset()
	require.NoError(t, c.dispatch(ctx, "list", nil))
	assert.Contains(t, out.String(), view.EmptyMessage)
}

func TestConsole_NoSession(t *testing.T) {
	c, out := newConsole(t)

	err := c.dispatch(context.Background(), "create", []string{
		"-for", "Seminar Only", "-day", "For 2nd Day",
		"-identity", "ABCDE1234F", "-amount", "10", "-mode", "Cash",
	})
	assert.ErrorIs(t, err, ags.ErrNoActingUser)
	assert.Contains(t, out.String(), ags.MsgSessionMissing)
}

func TestConsole_RequiresClient(t *testing.T) {
	c, _ := newConsole(t)
	c.clientID = ""
	assert.ErrorIs(t, c.dispatch(context.Background(), "list", nil), errUsage)
}

func TestPromptConfirmer(t *testing.T) {
	var out bytes.Buffer
	confirm := func(input string) bool {
		p := promptConfirmer{in: bufio.NewReader(strings.NewReader(input)), out: &out}
		return p.Confirm(context.Background(), ags.MsgConfirmDelete)
	}

	assert.True(t, confirm("y\n"))
	assert.True(t, confirm(" YES \n"))
	assert.False(t, confirm("\n"))
	assert.False(t, confirm("no\n"))
	assert.False(t, confirm(""))
	assert.Contains(t, out.String(), ags.MsgConfirmDelete+" [y/N]: ")
}
