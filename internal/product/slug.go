package product

import (
	"regexp"
	"strings"
)

var (
	slugSpaceRe    = regexp.MustCompile(`\s+`)
	slugInvalidRe  = regexp.MustCompile(`[^a-z0-9_]`)
	slugCollapseRe = regexp.MustCompile(`_+`)
)

// Slugify converts a free-form product name into a lowercase
// underscore-separated identifier safe for directory and file names.
//
// Examples:
//
//	Slugify("Bee Venom BSwell")   => "bee_venom_bswell"
//	Slugify("Truly Aceite 50 Ml") => "truly_aceite_50_ml"
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "-", "_")
	s = slugSpaceRe.ReplaceAllString(s, "_")
	s = slugInvalidRe.ReplaceAllString(s, "")
	s = slugCollapseRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
