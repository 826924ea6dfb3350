package printing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChromedpRendererRejectsEmptyDocument(t *testing.T) {
	r := NewChromedpRenderer(Config{}, nil)
	defer func() {
		_ = r.Close()
	}()

	_, err := r.RenderPDF(context.Background(), "   \n\t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty document")
}
