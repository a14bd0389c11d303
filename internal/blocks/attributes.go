package blocks

// attributeSchemas declares the attribute keys each registered block type
// accepts. Unknown keys on registered blocks are stripped; block types not
// listed here skip attribute validation entirely (best effort, mirroring
// an unregistered block type in the host).
var attributeSchemas = map[string]map[string]bool{
	"core/paragraph": {
		"align": true, "content": true, "dropCap": true, "fontSize": true,
		"textColor": true, "backgroundColor": true, "style": true,
	},
	"core/heading": {
		"level": true, "textAlign": true, "content": true, "fontSize": true,
		"textColor": true, "backgroundColor": true, "anchor": true, "style": true,
	},
	"core/cover": {
		"url": true, "id": true, "dimRatio": true, "overlayColor": true,
		"customOverlayColor": true, "minHeight": true, "minHeightUnit": true,
		"contentPosition": true, "isDark": true, "align": true, "style": true,
	},
	"core/button": {
		"text": true, "url": true, "linkTarget": true, "rel": true,
		"backgroundColor": true, "textColor": true, "width": true,
		"className": true, "style": true,
	},
	"core/buttons": {
		"layout": true, "align": true, "style": true,
	},
	"core/columns": {
		"verticalAlignment": true, "isStackedOnMobile": true, "align": true,
		"backgroundColor": true, "style": true,
	},
	"core/column": {
		"verticalAlignment": true, "width": true, "style": true,
	},
	"core/image": {
		"url": true, "alt": true, "caption": true, "id": true, "align": true,
		"href": true, "sizeSlug": true, "linkDestination": true, "style": true,
	},
	"core/gallery": {
		"columns": true, "imageCrop": true, "linkTo": true, "sizeSlug": true,
		"align": true, "style": true,
	},
	"core/list": {
		"ordered": true, "values": true, "type": true, "start": true,
		"reversed": true, "style": true,
	},
	"core/list-item": {
		"content": true, "style": true,
	},
	"core/quote": {
		"value": true, "citation": true, "align": true, "style": true,
	},
	"core/group": {
		"tagName": true, "layout": true, "align": true, "backgroundColor": true,
		"textColor": true, "style": true,
	},
	"core/details": {
		"summary": true, "showContent": true, "style": true,
	},
	"core/separator": {
		"opacity": true, "backgroundColor": true, "align": true,
		"className": true, "style": true,
	},
	"core/spacer": {
		"height": true, "width": true, "style": true,
	},
	"core/media-text": {
		"mediaPosition": true, "mediaUrl": true, "mediaId": true,
		"mediaType": true, "mediaWidth": true, "verticalAlignment": true,
		"imageFill": true, "style": true,
	},
	"core/table": {
		"hasFixedLayout": true, "caption": true, "head": true, "body": true,
		"foot": true, "style": true,
	},
	"core/embed": {
		"url": true, "caption": true, "type": true, "providerNameSlug": true,
		"responsive": true, "align": true, "style": true,
	},
	"core/video": {
		"src": true, "caption": true, "autoplay": true, "controls": true,
		"loop": true, "muted": true, "poster": true, "style": true,
	},
}

// RegisterAttributeSchema declares the accepted attribute keys for a block
// type, replacing any existing schema. Extension point for custom blocks.
func RegisterAttributeSchema(name string, keys []string) {
	schema := make(map[string]bool, len(keys))
	for _, k := range keys {
		schema[k] = true
	}
	attributeSchemas[name] = schema
}

// StripUnknownAttrs removes attribute keys not declared in each block
// type's schema, recursively. Blocks without a registered schema pass
// through untouched.
func StripUnknownAttrs(list []Block) []Block {
	for i := range list {
		list[i] = stripBlockAttrs(list[i])
	}
	return list
}

func stripBlockAttrs(b Block) Block {
	if schema, ok := attributeSchemas[b.Name]; ok && len(b.Attrs) > 0 {
		for key := range b.Attrs {
			if !schema[key] {
				delete(b.Attrs, key)
			}
		}
		if len(b.Attrs) == 0 {
			b.Attrs = nil
		}
	}
	b.InnerBlocks = StripUnknownAttrs(b.InnerBlocks)
	return b
}
