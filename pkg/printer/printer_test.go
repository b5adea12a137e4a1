package printer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderer_EmptyHTML(t *testing.T) {
	r := New(Config{})
	defer r.Close()

	_, err := r.PDF(context.Background(), "  \n")
	assert.ErrorIs(t, err, ErrEmptyHTML)
}

func TestNew_Defaults(t *testing.T) {
	r := New(Config{RemoteURL: "ws://127.0.0.1:9222"})
	defer r.Close()

	assert.Equal(t, 30*time.Second, r.config.Timeout)
	assert.NotNil(t, r.allocCtx)
}
