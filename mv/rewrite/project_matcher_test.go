package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/rewrite"
)

func TestMatchProjectAcceptsSubsetOfViewColumns(t *testing.T) {
	r := require.New(t)

	comp := &mv.ProcessedComponent{
		QueryProjection: []mv.Expression{attr("name")},
		ViewProjection: []mv.Expression{attr("name"), attr("age")},
	}

	out, err := rewrite.MatchProject(newCtx(comp))
	r.NoError(err)
	r.True(out.Ok)
	r.Empty(out.Exprs)
}

func TestMatchProjectRejectsColumnNotInView(t *testing.T) {
	r := require.New(t)

	comp := &mv.ProcessedComponent{
		QueryProjection: []mv.Expression{attr("salary")},
		ViewProjection: []mv.Expression{attr("name")},
	}

	_, err := rewrite.MatchProject(newCtx(comp))
	r.True(rewrite.ErrProjectUnmatch.Is(err))
}
