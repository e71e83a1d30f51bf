// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mine

import (
	"strings"

	"github.com/pdiddy/materials-miner/internal/align"
	"github.com/pdiddy/materials-miner/pkg/types"
)

// ResolveMaterial picks the document-level material. An explicit material
// is kept when the document mentions it among its chemicals or in its
// title; otherwise the document's dominant chemical wins. With no
// chemicals the explicit material is returned as given.
func ResolveMaterial(material string, chemicals []types.Chemical, title string) string {
	if material != "" {
		if title != "" && strings.Contains(title, material) {
			return material
		}
		for _, c := range chemicals {
			if string(c) == material {
				return material
			}
		}
	}
	if d, ok := align.Dominant(chemicals); ok {
		return string(d)
	}
	return material
}
