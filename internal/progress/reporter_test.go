package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &LineReporter{Out: &buf}

	r.Start(2)
	r.Update(1, "Nocturne")
	r.Update(2, "Quarry House")
	r.Finish()

	assert.Equal(t, "Importing 2 artworks\n[1/2] Nocturne\n[2/2] Quarry House\nImport complete\n", buf.String())
}

func TestNewReporterUnderCI(t *testing.T) {
	t.Setenv("CI", "true")

	_, ok := NewReporter().(*LineReporter)
	assert.True(t, ok)
}

func TestTerminalReporterWithoutStart(t *testing.T) {
	r := &TerminalReporter{}
	assert.NotPanics(t, func() {
		r.Update(1, "x")
		r.Finish()
	})
}
