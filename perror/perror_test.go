package perror

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motching/ginger-go/token"
)

func TestErrorWithNoLocation(t *testing.T) {
	err := New("bad thing")
	assert.Equal(t, "bad thing", err.Error())
}

func TestErrorWithLocation(t *testing.T) {
	err := New("bad thing").At("main.html", token.Position{Line: 3, Column: 7})
	assert.Equal(t, "main.html:3:7: bad thing", err.Error())
}

func TestNotFoundNamesTheMissingSource(t *testing.T) {
	err := NotFound("partials/header.html")
	assert.Contains(t, err.Error(), "partials/header.html")
}

func TestWrapEmbedsCauseAndUnwraps(t *testing.T) {
	cause := NotFound("missing.html").At("child.html", token.Position{Line: 1, Column: 1})
	wrapped := Wrap("main.html", token.Position{Line: 5, Column: 2}, cause)

	assert.Contains(t, wrapped.Error(), "main.html:5:2")
	assert.Contains(t, wrapped.Error(), "missing.html")

	require.Equal(t, error(cause), wrapped.Unwrap())
}
