package treebuilder

import (
	"strings"

	"github.com/CharlesChen0823/gosub-engine/dom"
	htmlerrors "github.com/CharlesChen0823/gosub-engine/errors"
	"github.com/CharlesChen0823/gosub-engine/internal/constants"
	"github.com/CharlesChen0823/gosub-engine/tokenizer"
)

// hasElementInScope implements the generic "has an element in the specific
// scope" algorithm: walk the stack of open elements from the top down,
// returning true if an HTML-namespace element named name is found before
// any element (in any namespace) whose tag name is in terminators.
func (tb *TreeBuilder) hasElementInScope(name string, terminators map[string]bool) bool {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		n := tb.node(tb.openElements[i])
		if n.TagName() == name && n.Namespace() == dom.NamespaceHTML {
			return true
		}
		if n.Namespace() == dom.NamespaceHTML && terminators[n.TagName()] {
			return false
		}
		if n.Namespace() != dom.NamespaceHTML && terminators[n.TagName()] {
			return false
		}
	}
	return false
}

func (tb *TreeBuilder) hasElementInDefaultScope(name string) bool {
	return tb.hasElementInScope(name, constants.DefaultScope)
}

func (tb *TreeBuilder) hasElementInListItemScope(name string) bool {
	return tb.hasElementInScope(name, constants.ListItemScope)
}

func (tb *TreeBuilder) hasElementInButtonScope(name string) bool {
	return tb.hasElementInScope(name, constants.ButtonScope)
}

func (tb *TreeBuilder) hasElementInTableScope(name string) bool {
	return tb.hasElementInScope(name, constants.TableScope)
}

func (tb *TreeBuilder) hasElementInTableBodyScope(name string) bool {
	return tb.hasElementInScope(name, constants.TableBodyScope)
}

func (tb *TreeBuilder) hasElementInTableRowScope(name string) bool {
	return tb.hasElementInScope(name, constants.TableRowScope)
}

// hasElementInSelectScope implements the select-specific scope algorithm,
// whose terminator set is inverted: anything other than option/optgroup
// stops the search.
func (tb *TreeBuilder) hasElementInSelectScope(name string) bool {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		n := tb.node(tb.openElements[i])
		if n.TagName() == name && n.Namespace() == dom.NamespaceHTML {
			return true
		}
		if !constants.SelectScope[n.TagName()] {
			return false
		}
	}
	return false
}

func (tb *TreeBuilder) hasPElementInButtonScope() bool {
	return tb.hasElementInButtonScope("p")
}

var headingElements = map[string]bool{"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true}

func isHeadingElement(name string) bool { return headingElements[name] }

// generateImpliedEndTags pops elements from the stack while the current
// node's tag name is in the implied-end-tag set, optionally excluding one
// tag name (the "except for" clause used when an explicit end tag is being
// processed for that same name).
func (tb *TreeBuilder) generateImpliedEndTags(except string) {
	for len(tb.openElements) > 0 {
		name := tb.node(tb.currentNode()).TagName()
		if name == except {
			return
		}
		if !constants.ImpliedEndTagElements[name] {
			return
		}
		tb.popCurrent()
	}
}

// generateImpliedEndTagsThoroughly is the stronger form used when a
// template end tag is processed: it also pops table-section and cell
// elements.
func (tb *TreeBuilder) generateImpliedEndTagsThoroughly() {
	for len(tb.openElements) > 0 {
		name := tb.node(tb.currentNode()).TagName()
		if !constants.ThoroughlyImpliedEndTagElements[name] {
			return
		}
		tb.popCurrent()
	}
}

// clearStackUntil pops elements until the current node's tag name is in
// names; that node stays on the stack. Used to clear back to a table,
// table-body or table-row context.
func (tb *TreeBuilder) clearStackUntil(names map[string]bool) {
	for len(tb.openElements) > 0 {
		name := tb.node(tb.currentNode()).TagName()
		if names[name] {
			return
		}
		tb.popCurrent()
	}
}

func (tb *TreeBuilder) closeCaptionOrCellImplied(except string) {
	tb.generateImpliedEndTags(except)
	if tb.node(tb.currentNode()).TagName() != except {
		tb.addError(htmlerrors.EndTagNotMatchingCurrentNode)
	}
	tb.popUntil(except)
}

func (tb *TreeBuilder) removeFromOpenElements(id dom.NodeId) {
	if i := tb.indexOfOpenElement(id); i >= 0 {
		tb.removeOpenElementAt(i)
	}
}

// resetInsertionModeAppropriately implements the algorithm of the same name,
// run after a table, select or template is closed and while finishing
// fragment parsing setup.
func (tb *TreeBuilder) resetInsertionModeAppropriately() {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		node := tb.openElements[i]
		n := tb.node(node)
		last := i == 0

		var name string
		if last && tb.fragmentContext != nil {
			name = tb.fragmentContext.TagName
		} else {
			name = n.TagName()
		}

		if n.Namespace() != dom.NamespaceHTML && !last {
			continue
		}

		switch name {
		case "select":
			for j := i - 1; j > 0; j-- {
				anc := tb.node(tb.openElements[j])
				switch anc.TagName() {
				case "template":
					tb.mode = InSelect
					return
				case "table":
					tb.mode = InSelectInTable
					return
				}
			}
			tb.mode = InSelect
			return
		case "td", "th":
			if !last {
				tb.mode = InCell
				return
			}
		case "tr":
			tb.mode = InRow
			return
		case "tbody", "thead", "tfoot":
			tb.mode = InTableBody
			return
		case "caption":
			tb.mode = InCaption
			return
		case "colgroup":
			tb.mode = InColumnGroup
			return
		case "table":
			tb.mode = InTable
			return
		case "template":
			if len(tb.templateModes) > 0 {
				tb.mode = tb.templateModes[len(tb.templateModes)-1]
				return
			}
			tb.mode = InBody
			return
		case "head":
			if !last {
				tb.mode = InHead
				return
			}
		case "body":
			tb.mode = InBody
			return
		case "frameset":
			tb.mode = InFrameset
			return
		case "html":
			if tb.headElement == dom.NoNode {
				tb.mode = BeforeHead
			} else {
				tb.mode = AfterHead
			}
			return
		}

		if last {
			tb.mode = InBody
			return
		}
	}
	tb.mode = InBody
}

// quirkyPublicPrefixes and the related public/system identifier sets below
// make up the quirks mode decision table (the DOCTYPE matching rules of the
// HTML standard).
var quirkyPublicPrefixes = []string{
	"-//advasoft ltd//dtd html 3.0 aswedit + extensions//",
	"-//as//dtd html 3.0 aswedit + extensions//",
	"-//ietf//dtd html 2.0 level 1//",
	"-//ietf//dtd html 2.0 level 2//",
	"-//ietf//dtd html 2.0 strict level 1//",
	"-//ietf//dtd html 2.0 strict level 2//",
	"-//ietf//dtd html 2.0 strict//",
	"-//ietf//dtd html 2.0//",
	"-//ietf//dtd html 2.1e//",
	"-//ietf//dtd html 3.0//",
	"-//ietf//dtd html 3.2 final//",
	"-//ietf//dtd html 3.2//",
	"-//ietf//dtd html 3//",
	"-//ietf//dtd html level 0//",
	"-//ietf//dtd html level 1//",
	"-//ietf//dtd html level 2//",
	"-//ietf//dtd html level 3//",
	"-//ietf//dtd html strict level 0//",
	"-//ietf//dtd html strict level 1//",
	"-//ietf//dtd html strict level 2//",
	"-//ietf//dtd html strict level 3//",
	"-//ietf//dtd html strict//",
	"-//ietf//dtd html//",
	"-//metrius//dtd metrius presentational//",
	"-//microsoft//dtd internet explorer 2.0 html strict//",
	"-//microsoft//dtd internet explorer 2.0 html//",
	"-//microsoft//dtd internet explorer 2.0 tables//",
	"-//microsoft//dtd internet explorer 3.0 html strict//",
	"-//microsoft//dtd internet explorer 3.0 html//",
	"-//microsoft//dtd internet explorer 3.0 tables//",
	"-//netscape comm. corp.//dtd html//",
	"-//netscape comm. corp.//dtd strict html//",
	"-//o'reilly and associates//dtd html 2.0//",
	"-//o'reilly and associates//dtd html extended 1.0//",
	"-//o'reilly and associates//dtd html extended relaxed 1.0//",
	"-//sq//dtd html 2.0 hotmetal + extensions//",
	"-//softquad software//dtd hotmetal pro 6.0::19990601::extensions to html 4.0//",
	"-//softquad//dtd hotmetal pro 4.0::19971010::extensions to html 4.0//",
	"-//spyglass//dtd html 2.0 extended//",
	"-//sun microsystems corp.//dtd hotjava html//",
	"-//sun microsystems corp.//dtd hotjava strict html//",
	"-//w3c//dtd html 3 1995-03-24//",
	"-//w3c//dtd html 3.2 draft//",
	"-//w3c//dtd html 3.2 final//",
	"-//w3c//dtd html 3.2//",
	"-//w3c//dtd html 3.2s draft//",
	"-//w3c//dtd html 4.0 frameset//",
	"-//w3c//dtd html 4.0 transitional//",
	"-//w3c//dtd html experimental 19960712//",
	"-//w3c//dtd html experimental 970421//",
	"-//w3c//dtd w3 html//",
	"-//w3o//dtd w3 html 3.0//",
	"-//webtechs//dtd mozilla html 2.0//",
	"-//webtechs//dtd mozilla html//",
}

var quirkyPublicMatches = map[string]bool{
	"-//w3o//dtd w3 html strict 3.0//en//": true,
	"-/w3c/dtd html 4.0 transitional/en":   true,
	"html":                                 true,
}

var quirkySystemMatch = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"

var limitedQuirkyPublicPrefixes = []string{
	"-//w3c//dtd xhtml 1.0 frameset//",
	"-//w3c//dtd xhtml 1.0 transitional//",
}

var html4PublicPrefixesRequiringSystemID = []string{
	"-//w3c//dtd html 4.01 frameset//",
	"-//w3c//dtd html 4.01 transitional//",
}

func hasAnyPrefix(s string, prefixes []string) bool {
	s = strings.ToLower(s)
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// doctypeErrorAndQuirks implements the quirks-mode decision for a DOCTYPE
// token in the "initial" insertion mode. It records no parse errors.
func (tb *TreeBuilder) doctypeErrorAndQuirks(name, public, system string, forceQuirks, hasPublic, hasSystem bool) dom.QuirksMode {
	lowerName := strings.ToLower(name)
	lowerPublic := strings.ToLower(public)
	lowerSystem := strings.ToLower(system)

	if lowerName != "html" || forceQuirks {
		return dom.Quirks
	}
	if hasPublic {
		if quirkyPublicMatches[lowerPublic] {
			return dom.Quirks
		}
		if hasAnyPrefix(lowerPublic, quirkyPublicPrefixes) {
			return dom.Quirks
		}
	}
	if hasSystem && lowerSystem == quirkySystemMatch {
		return dom.Quirks
	}
	if hasPublic && hasAnyPrefix(lowerPublic, limitedQuirkyPublicPrefixes) {
		return dom.LimitedQuirks
	}
	if hasPublic && hasAnyPrefix(lowerPublic, html4PublicPrefixesRequiringSystemID) && !hasSystem {
		return dom.Quirks
	}
	if hasSystem && hasPublic && hasAnyPrefix(lowerPublic, html4PublicPrefixesRequiringSystemID) {
		return dom.LimitedQuirks
	}
	return dom.NoQuirks
}

// isHiddenInput reports whether a <input> start tag's type attribute is
// "hidden" (case-insensitively), which exempts it from framesetOK=false.
func isHiddenInput(attrs []tokenizer.Attr) bool {
	for _, a := range attrs {
		if strings.EqualFold(a.Name, "type") {
			return strings.EqualFold(a.Value, "hidden")
		}
	}
	return false
}
