package variants

import "github.com/goliatone/go-composer/blocks"

// Built-in block types.
const (
	TypeHero         = "hero"
	TypeGrid         = "grid"
	TypeTestimonials = "testimonials"
	TypeHeader       = "header"
	TypeFooter       = "footer"
	TypeText         = "text"
	TypeCTA          = "cta"
)

// Builtins returns the descriptors shipped with the engine.
func Builtins() []BlockTypeDescriptor {
	return []BlockTypeDescriptor{
		{
			Type:              TypeHeader,
			Name:              "Site header",
			DefaultPayload:    headerDefaults,
			VariantsSupported: true,
			Global:            true,
			Schema: map[string]any{"fields": []any{
				map[string]any{"name": "logo", "type": "object"},
				map[string]any{"name": "links", "type": "array"},
				map[string]any{"name": "sticky", "type": "boolean"},
			}},
		},
		{
			Type:              TypeHero,
			Name:              "Hero",
			DefaultPayload:    heroDefaults,
			VariantsSupported: true,
			Schema: map[string]any{"fields": []any{
				map[string]any{"name": "title", "type": "string", "required": true},
				map[string]any{"name": "subtitle", "type": "string"},
				map[string]any{"name": "background", "type": "object"},
				map[string]any{"name": "cta", "type": "object"},
			}},
		},
		{
			Type:              TypeGrid,
			Name:              "Grid",
			DefaultPayload:    gridDefaults,
			VariantsSupported: true,
			Schema: map[string]any{"fields": []any{
				map[string]any{"name": "columns", "type": "integer"},
				map[string]any{"name": "gap", "type": "integer"},
				map[string]any{"name": "items", "type": "array"},
			}},
		},
		{
			Type:              TypeTestimonials,
			Name:              "Testimonials",
			DefaultPayload:    testimonialsDefaults,
			VariantsSupported: true,
			Schema: map[string]any{"fields": []any{
				map[string]any{"name": "title", "type": "string"},
				map[string]any{"name": "items", "type": "array", "required": true},
			}},
		},
		{
			Type:           TypeText,
			Name:           "Text",
			DefaultPayload: textDefaults,
		},
		{
			Type:              TypeCTA,
			Name:              "Call to action",
			DefaultPayload:    ctaDefaults,
			VariantsSupported: true,
		},
		{
			Type:              TypeFooter,
			Name:              "Site footer",
			DefaultPayload:    footerDefaults,
			VariantsSupported: true,
			Global:            true,
		},
	}
}

func headerDefaults() blocks.Data {
	return blocks.Data{
		"logo": map[string]any{"src": "/static/logo.svg", "alt": "Company logo"},
		"links": []any{
			map[string]any{"label": "Home", "href": "/"},
			map[string]any{"label": "About", "href": "/about"},
			map[string]any{"label": "Contact", "href": "/contact"},
		},
		"sticky": true,
	}
}

func heroDefaults() blocks.Data {
	return blocks.Data{
		"title":    "Build something people love",
		"subtitle": "Describe what makes your business different.",
		"background": map[string]any{
			"image":   "/static/hero.jpg",
			"overlay": 0.4,
		},
		"cta": map[string]any{"label": "Get started", "href": "/contact"},
	}
}

func gridDefaults() blocks.Data {
	items := make([]any, 0, 3)
	for _, title := range []string{"Fast", "Reliable", "Friendly"} {
		items = append(items, map[string]any{
			"title": title,
			"body":  "Short supporting copy for this feature.",
			"icon":  "star",
		})
	}
	return blocks.Data{
		"columns": 3,
		"gap":     16,
		"items":   items,
	}
}

func testimonialsDefaults() blocks.Data {
	return blocks.Data{
		"title": "What our customers say",
		"items": []any{
			map[string]any{
				"quote":  "They delivered exactly what we needed, on time.",
				"author": "Alex Morgan",
				"role":   "Operations lead",
				"rating": 5,
			},
			map[string]any{
				"quote":  "Setup took an afternoon and support was excellent.",
				"author": "Sam Rivera",
				"role":   "Founder",
				"rating": 5,
			},
			map[string]any{
				"quote":  "Our bookings doubled within the first quarter.",
				"author": "Jordan Lee",
				"role":   "Marketing manager",
				"rating": 4,
			},
		},
	}
}

func textDefaults() blocks.Data {
	return blocks.Data{
		"body":  "Start writing here.",
		"align": "left",
	}
}

func ctaDefaults() blocks.Data {
	return blocks.Data{
		"title":  "Ready to talk?",
		"button": map[string]any{"label": "Contact us", "href": "/contact"},
	}
}

func footerDefaults() blocks.Data {
	return blocks.Data{
		"copyright": "All rights reserved.",
		"columns": []any{
			map[string]any{
				"title": "Company",
				"links": []any{
					map[string]any{"label": "About", "href": "/about"},
					map[string]any{"label": "Careers", "href": "/careers"},
				},
			},
		},
		"social": map[string]any{},
	}
}
