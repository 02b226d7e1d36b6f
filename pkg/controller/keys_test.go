package controller_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/date-ideas/pkg/controller"
	"github.com/stretchr/testify/assert"
)

func TestAsKey(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal(controller.KeyQuit, controller.AsKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.Equal(controller.KeyMoveUp, controller.AsKey(tcell.NewEventKey(tcell.KeyRune, 'K', tcell.ModShift)))
	assert.Equal(controller.KeyEscape, controller.AsKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestKeyString(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal("q", controller.KeyQuit.String())
	assert.Equal("Esc", controller.KeyEscape.String())
	assert.Equal("Ctrl-S", controller.KeyFormSubmit.String())
}
