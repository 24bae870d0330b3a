package dom

import "github.com/CharlesChen0823/gosub-engine/internal/constants"

// svgSpecialElements and mathMLSpecialElements extend the HTML "special"
// element set with the foreign-namespace elements the standard also treats
// as special for the purposes of the furthest-block search in the adoption
// agency algorithm and the various scope predicates.
var svgSpecialElements = map[string]bool{
	"foreignObject": true,
	"desc":          true,
	"title":         true,
}

var mathMLSpecialElements = map[string]bool{
	"mi":             true,
	"mo":             true,
	"mn":             true,
	"ms":             true,
	"mtext":          true,
	"annotation-xml": true,
}

func isSpecialElement(namespace, tagName string) bool {
	switch namespace {
	case NamespaceSVG:
		return svgSpecialElements[tagName]
	case NamespaceMathML:
		return mathMLSpecialElements[tagName]
	default:
		return constants.SpecialElements[tagName]
	}
}
