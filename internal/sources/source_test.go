package sources

import (
	"context"
	"testing"

	"github.com/tbenitez/epifetch/internal/bulletins"
	"github.com/tbenitez/epifetch/internal/ui"

	"github.com/stretchr/testify/assert"
)

type namedSource struct{ name string }

func (s namedSource) Name() string { return s.name }

func (s namedSource) Download(context.Context, bulletins.Bulletin, string, *ui.ProgressHandle) (int64, error) {
	return 0, nil
}

func TestRegistryResolveFirstMatchWins(t *testing.T) {
	r := NewRegistry()
	r.Register("drive.google.com", namedSource{name: "drive"})
	r.Register("google.com", namedSource{name: "broad"})

	src := r.Resolve("https://drive.google.com/file/d/ABC/view")
	assert.Equal(t, "drive", src.Name())

	src = r.Resolve("https://docs.google.com/x")
	assert.Equal(t, "broad", src.Name())
}

func TestRegistryResolveUnsupported(t *testing.T) {
	r := NewRegistry()
	r.Register("drive.google.com", namedSource{name: "drive"})

	assert.Nil(t, r.Resolve("https://example.com/file.pdf"))
	assert.Nil(t, r.Resolve(""))
}

func TestDefaultRegistryKnowsDrive(t *testing.T) {
	r := DefaultRegistry(nil, nil)

	src := r.Resolve("https://drive.google.com/file/d/ABC/view")
	assert.NotNil(t, src)
	assert.Equal(t, "drive", src.Name())

	assert.Nil(t, r.Resolve("https://dropbox.com/s/whatever"))
}
