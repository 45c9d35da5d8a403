package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmbedsEveryPage(t *testing.T) {
	tmpl, err := Parse()
	require.NoError(t, err)
	for _, name := range []string{"login.html", "index.html", "confirm.html", "print.html", "head", "flash", "customer-hidden"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestParseDirMatchesEmbedded(t *testing.T) {
	tmpl, err := ParseDir(".")
	require.NoError(t, err)
	assert.NotNil(t, tmpl.Lookup("index.html"))
}
