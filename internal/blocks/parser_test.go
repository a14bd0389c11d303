package blocks

import (
	"strings"
	"testing"
)

func TestParseSingleBlock(t *testing.T) {
	markup := `<!-- wp:paragraph {"align":"center"} -->
<p>Hello</p>
<!-- /wp:paragraph -->`

	list := Parse(markup)
	if len(list) != 1 {
		t.Fatalf("blocks: got %d, want 1", len(list))
	}

	b := list[0]
	if b.Name != "core/paragraph" {
		t.Errorf("name: got %q, want core/paragraph", b.Name)
	}
	if b.Attrs["align"] != "center" {
		t.Errorf("attrs: got %v", b.Attrs)
	}
	if !strings.Contains(b.InnerHTML, "<p>Hello</p>") {
		t.Errorf("inner html: got %q", b.InnerHTML)
	}
}

func TestParseNamespacedName(t *testing.T) {
	list := Parse(`<!-- wp:acme/widget --><div></div><!-- /wp:acme/widget -->`)
	if len(list) != 1 || list[0].Name != "acme/widget" {
		t.Fatalf("got %+v", list)
	}
}

func TestParseVoidBlock(t *testing.T) {
	list := Parse(`<!-- wp:spacer {"height":"40px"} /-->`)
	if len(list) != 1 {
		t.Fatalf("blocks: got %d, want 1", len(list))
	}
	b := list[0]
	if b.Name != "core/spacer" {
		t.Errorf("name: got %q", b.Name)
	}
	if b.Attrs["height"] != "40px" {
		t.Errorf("attrs: got %v", b.Attrs)
	}
	if len(b.InnerBlocks) != 0 || b.InnerHTML != "" {
		t.Errorf("void block has inner content: %+v", b)
	}
}

func TestParseNesting(t *testing.T) {
	markup := `<!-- wp:columns -->
<div class="wp-block-columns"><!-- wp:column -->
<div class="wp-block-column"><!-- wp:paragraph -->
<p>Inner</p>
<!-- /wp:paragraph --></div>
<!-- /wp:column --></div>
<!-- /wp:columns -->`

	list := Parse(markup)
	if len(list) != 1 {
		t.Fatalf("top-level blocks: got %d, want 1", len(list))
	}

	cols := list[0]
	if cols.Name != "core/columns" || len(cols.InnerBlocks) != 1 {
		t.Fatalf("columns: got %+v", cols)
	}
	col := cols.InnerBlocks[0]
	if col.Name != "core/column" || len(col.InnerBlocks) != 1 {
		t.Fatalf("column: got %+v", col)
	}
	if col.InnerBlocks[0].Name != "core/paragraph" {
		t.Errorf("grandchild: got %q", col.InnerBlocks[0].Name)
	}

	// The parent's InnerContent must carry a placeholder per child.
	placeholders := 0
	for _, chunk := range cols.InnerContent {
		if chunk == "" {
			placeholders++
		}
	}
	if placeholders != 1 {
		t.Errorf("placeholders: got %d, want 1", placeholders)
	}
}

func TestParseMalformedAttrs(t *testing.T) {
	list := Parse(`<!-- wp:heading {"level":} --><h2>X</h2><!-- /wp:heading -->`)
	if len(list) != 1 {
		t.Fatalf("blocks: got %d, want 1", len(list))
	}
	if list[0].Attrs != nil {
		t.Errorf("malformed attrs should be nil, got %v", list[0].Attrs)
	}
}

func TestParseFreeformText(t *testing.T) {
	list := Parse(`loose text <!-- wp:paragraph --><p>A</p><!-- /wp:paragraph -->`)
	if len(list) != 2 {
		t.Fatalf("blocks: got %d, want 2", len(list))
	}
	if !list[0].IsFreeform() {
		t.Errorf("first block should be freeform: %+v", list[0])
	}
	if list[1].Name != "core/paragraph" {
		t.Errorf("second block: got %q", list[1].Name)
	}
}

func TestParseUnbalancedCloser(t *testing.T) {
	list := Parse(`<!-- /wp:paragraph --><!-- wp:heading --><h2>X</h2><!-- /wp:heading -->`)
	if len(list) != 1 || list[0].Name != "core/heading" {
		t.Fatalf("got %+v", list)
	}
}

func TestParseUnclosedBlock(t *testing.T) {
	list := Parse(`<!-- wp:group --><div><!-- wp:paragraph --><p>X</p><!-- /wp:paragraph -->`)
	if len(list) != 1 {
		t.Fatalf("blocks: got %d, want 1", len(list))
	}
	g := list[0]
	if g.Name != "core/group" {
		t.Errorf("name: got %q", g.Name)
	}
	if len(g.InnerBlocks) != 1 || g.InnerBlocks[0].Name != "core/paragraph" {
		t.Errorf("inner blocks: got %+v", g.InnerBlocks)
	}
}

func TestParseGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "plain prose, no blocks", "<!-- not a block -->"} {
		for _, b := range Parse(in) {
			if !b.IsFreeform() {
				t.Errorf("Parse(%q) yielded named block %q", in, b.Name)
			}
		}
	}
}
