package blocks

import (
	"encoding/json"
	"regexp"
	"strings"
)

// blockToken matches one block comment delimiter: opener, closer or
// self-closing void block, with optional JSON attributes.
// Groups: 1 closer slash, 2 block name, 3 attrs JSON, 4 void slash.
var blockToken = regexp.MustCompile(
	`(?s)<!--\s+(/)?wp:([a-z][a-z0-9_-]*(?:/[a-z][a-z0-9_-]*)?)(\s+\{.*?\})?\s*(/)?-->`)

// Parse turns comment-delimited markup into a block tree. Text outside any
// block becomes freeform blocks with an empty Name; malformed JSON
// attributes are treated as absent; an unbalanced closer is ignored.
// Parsing never fails: worthless input just yields no named blocks.
func Parse(markup string) []Block {
	type frame struct {
		block Block
	}

	var top []Block
	var stack []*frame

	appendText := func(text string) {
		if text == "" {
			return
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.block.InnerHTML += text
			parent.block.InnerContent = append(parent.block.InnerContent, text)
			return
		}
		if strings.TrimSpace(text) != "" {
			top = append(top, Block{InnerHTML: text, InnerContent: []string{text}})
		}
	}

	appendBlock := func(b Block) {
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.block.InnerBlocks = append(parent.block.InnerBlocks, b)
			// Empty string marks the inner block's position for the serializer.
			parent.block.InnerContent = append(parent.block.InnerContent, "")
			return
		}
		top = append(top, b)
	}

	pos := 0
	for _, loc := range blockToken.FindAllStringSubmatchIndex(markup, -1) {
		appendText(markup[pos:loc[0]])
		pos = loc[1]

		closer := loc[2] != -1
		name := normalizeName(markup[loc[4]:loc[5]])
		void := loc[8] != -1

		var attrs map[string]any
		if loc[6] != -1 {
			raw := strings.TrimSpace(markup[loc[6]:loc[7]])
			if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
				attrs = nil
			}
		}

		switch {
		case void:
			appendBlock(Block{Name: name, Attrs: attrs})

		case closer:
			// Pop the matching frame; an unbalanced closer is dropped.
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].block.Name == name {
					closed := stack[i].block
					stack = stack[:i]
					appendBlock(closed)
					break
				}
			}

		default:
			stack = append(stack, &frame{block: Block{Name: name, Attrs: attrs}})
		}
	}
	appendText(markup[pos:])

	// Unclosed blocks are kept with whatever content they accumulated.
	for i := len(stack) - 1; i >= 0; i-- {
		closed := stack[i].block
		stack = stack[:i]
		appendBlock(closed)
	}

	return top
}

// normalizeName expands the elided core namespace: "paragraph" means
// "core/paragraph".
func normalizeName(name string) string {
	if !strings.Contains(name, "/") {
		return "core/" + name
	}
	return name
}
