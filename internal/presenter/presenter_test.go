package presenter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindSuccess, ParseKind("success"))
	assert.Equal(t, KindError, ParseKind("error"))
	assert.Equal(t, KindInfo, ParseKind("info"))
	assert.Equal(t, KindInfo, ParseKind("warning"))
	assert.Equal(t, KindInfo, ParseKind(""))
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	_, updated := r.Result()
	assert.False(t, updated)
	_, ok := r.Last()
	assert.False(t, ok)

	r.UpdateResult("Current temperature in Oslo is 4°C")
	r.Notify("first", KindInfo)
	r.Notify("second", KindError)
	r.SetBusy("Saving", true)

	result, updated := r.Result()
	assert.True(t, updated)
	assert.Equal(t, "Current temperature in Oslo is 4°C", result)

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, Notification{Message: "second", Kind: KindError}, last)
	assert.Len(t, r.Notifications(), 2)
	assert.True(t, r.Busy("Saving"))
	assert.Equal(t, "[error] second", last.String())
}

func TestRecorder_NotificationsIsCopy(t *testing.T) {
	r := NewRecorder()
	r.Notify("one", KindInfo)

	got := r.Notifications()
	got[0].Message = "mutated"

	assert.Equal(t, "one", r.Notifications()[0].Message)
}

func TestConsole_UpdateResult(t *testing.T) {
	var out, errOut bytes.Buffer
	c := NewConsole(&out, &errOut)

	c.UpdateResult("line one")
	c.UpdateResult("already terminated\n")
	c.UpdateResult("")

	assert.Equal(t, "line one\nalready terminated\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestConsole_Notify(t *testing.T) {
	var out, errOut bytes.Buffer
	c := NewConsole(&out, &errOut)

	c.Notify("File saved successfully", KindSuccess)
	c.Notify("File is too large", KindError)

	assert.Empty(t, out.String())
	assert.True(t, strings.Contains(errOut.String(), "File saved successfully"))
	assert.True(t, strings.Contains(errOut.String(), "File is too large"))
}

func TestConsole_QuietKeepsErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	c := NewConsole(&out, &errOut, WithQuiet(true))

	c.Notify("loaded", KindSuccess)
	c.Notify("plain text", KindInfo)
	c.SetBusy("Saving", true)
	c.Notify("broken", KindError)

	assert.NotContains(t, errOut.String(), "loaded")
	assert.NotContains(t, errOut.String(), "plain text")
	assert.NotContains(t, errOut.String(), "Saving")
	assert.Contains(t, errOut.String(), "broken")
}

func TestStyleFor(t *testing.T) {
	for _, kind := range []Kind{KindSuccess, KindError, KindInfo} {
		assert.NotEmpty(t, StyleFor(kind).Render("x"), "kind %s", kind)
	}
}
