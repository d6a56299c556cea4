// Package links rewrites internal cross-document references so that links
// inside a split output resolve to the same track's counterpart of their
// target. Markdown inline links and MDX href attributes are covered; every
// byte outside a rewritten target is preserved.
package links

import (
	"path"
	"regexp"
	"strings"

	"github.com/jonathan/docsplit/internal/document"
)

var (
	// inlineLink matches the target of a markdown inline link or image,
	// tolerating an optional title after the target.
	inlineLink = regexp.MustCompile(`\]\(([^)\s]+)((?:\s+[^)]*)?)\)`)
	// hrefAttr matches href attributes in MDX/JSX elements such as <Card>.
	hrefAttr = regexp.MustCompile(`href=(["'])([^"']+)(["'])`)
	// schemePrefix identifies absolute URLs (https:, mailto:, etc.).
	schemePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
)

// Rewriter rewrites link targets pointing at known dual-track documents.
type Rewriter struct {
	trackRoots map[string]bool
	isDual     func(page string) bool
}

// NewRewriter builds a Rewriter. trackRoots lists every track root directory
// name; isDual reports whether an extensionless page path belongs to a
// dual-track document.
func NewRewriter(trackRoots []string, isDual func(page string) bool) *Rewriter {
	roots := make(map[string]bool, len(trackRoots))
	for _, r := range trackRoots {
		roots[r] = true
	}
	return &Rewriter{trackRoots: roots, isDual: isDual}
}

// Rewrite returns text with every internal link to a dual-track document
// rewritten to the trackRoot-prefixed form. docDir is the directory of the
// document being emitted, used to resolve "./" and "../" targets. The
// operation is idempotent: already-prefixed targets are left alone.
func (r *Rewriter) Rewrite(text, docDir, trackRoot string) string {
	text = inlineLink.ReplaceAllStringFunc(text, func(m string) string {
		sub := inlineLink.FindStringSubmatch(m)
		return "](" + r.rewriteTarget(sub[1], docDir, trackRoot) + sub[2] + ")"
	})
	return hrefAttr.ReplaceAllStringFunc(text, func(m string) string {
		sub := hrefAttr.FindStringSubmatch(m)
		return "href=" + sub[1] + r.rewriteTarget(sub[2], docDir, trackRoot) + sub[3]
	})
}

// rewriteTarget maps a single link target to its track-aware form, or
// returns it unchanged when it is external, an anchor, single-track, or
// already track-prefixed.
func (r *Rewriter) rewriteTarget(target, docDir, trackRoot string) string {
	if target == "" || strings.HasPrefix(target, "#") ||
		strings.HasPrefix(target, "//") || schemePrefix.MatchString(target) {
		return target
	}

	rest := target
	anchor := ""
	if i := strings.IndexAny(rest, "#?"); i >= 0 {
		anchor = rest[i:]
		rest = rest[:i]
	}
	if rest == "" {
		return target
	}

	rooted := strings.HasPrefix(rest, "/")
	rel := strings.TrimPrefix(rest, "/")
	relative := strings.HasPrefix(rel, "./") || strings.HasPrefix(rel, "../")
	if relative {
		rel = path.Join(docDir, rel)
	}
	rel = path.Clean(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return target
	}

	// Already prefixed with a track root and pointing at a dual-track page:
	// leave untouched so a second pass is a no-op.
	if seg, remainder, ok := strings.Cut(rel, "/"); ok && r.trackRoots[seg] {
		if r.isDual(document.PagePath(remainder)) {
			return target
		}
	}

	if !r.isDual(document.PagePath(rel)) {
		return target
	}

	rewritten := trackRoot + "/" + rel
	if rooted || relative {
		rewritten = "/" + rewritten
	}
	return rewritten + anchor
}
