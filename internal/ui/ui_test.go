package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	prevOut, prevErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	t.Cleanup(func() {
		Stdout, Stderr = prevOut, prevErr
		SetTheme("classic")
		SetColorForcing(false, false)
	})
	return &out, &errOut
}

func TestC_NoColorWhenNotTTY(t *testing.T) {
	captureOutput(t)
	assert.Equal(t, "plain", C(fgRed, "plain"))

	SetColorForcing(true, false)
	assert.Equal(t, fgRed+"plain"+reset, C(fgRed, "plain"))

	SetColorForcing(true, true)
	assert.Equal(t, "plain", C(fgRed, "plain"))
}

func TestOKAndFail(t *testing.T) {
	out, errOut := captureOutput(t)

	OK("added")
	Fail("nope")
	Warn("careful")

	assert.Equal(t, "✔ added\n", out.String())
	assert.Contains(t, errOut.String(), "✖ nope")
	assert.Contains(t, errOut.String(), "! careful")
}

func TestSetTheme(t *testing.T) {
	captureOutput(t)

	SetTheme("mono")
	assert.Equal(t, "[x]", Current().BoxChecked)
	SetColorForcing(true, disableColor)
	assert.Equal(t, "x", C(fgRed, "x"), "mono never colors")

	SetTheme("NEON")
	assert.Equal(t, "neon", Current().Name)
	assert.Equal(t, "☆", Current().SymUnchecked)
	assert.NotEqual(t, themes["classic"].SymDone, Current().SymDone)

	SetTheme("whatever")
	assert.Equal(t, "classic", Current().Name)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 5))
	assert.Equal(t, "█████ 100%", ProgressBar(2, 2, 5))
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
}

func TestPanelString(t *testing.T) {
	captureOutput(t)
	SetTheme("mono")

	got := PanelString([]string{"ab", "\033[32m[x]\033[0m wide"})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	assert.Equal(t, []string{
		"+----------+",
		"| ab       |",
		"| \033[32m[x]\033[0m wide |",
		"+----------+",
	}, lines)
}

func TestThemes_AllRegistered(t *testing.T) {
	for _, name := range Themes() {
		_, ok := themes[name]
		assert.True(t, ok, name)
	}
	assert.Len(t, themes, len(Themes()))
}
