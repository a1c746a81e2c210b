package datacite

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// maxExpected caps the candidate list in "Expected is one of" messages.
const maxExpected = 10

var kernelVersionRegex = regexp.MustCompile(`kernel-([0-9]+(?:\.[0-9]+)*)`)

// particle is one element of a content model.
type particle struct {
	name     string
	min, max int // max < 0 means unbounded
}

func one(name string) particle      { return particle{name, 1, 1} }
func optional(name string) particle { return particle{name, 0, 1} }
func many(name string) particle     { return particle{name, 0, -1} }
func some(name string) particle     { return particle{name, 1, -1} }

// kernel holds the resource-level rules of one schema generation.
type kernel struct {
	constraint *semver.Constraints
	ordered    bool
	children   []particle
	// attributes required per element local name
	attrs map[string][]string
}

var kernels = []kernel{
	{
		constraint: mustConstraint("< 3"),
		ordered:    true,
		children: []particle{
			one("identifier"), one("creators"), one("titles"), one("publisher"), one("publicationYear"),
			optional("subjects"), optional("contributors"), optional("dates"), optional("language"),
			optional("resourceType"), optional("alternateIdentifiers"), optional("relatedIdentifiers"),
			optional("sizes"), optional("formats"), optional("version"), optional("rights"), optional("descriptions"),
		},
		attrs: commonAttrs(),
	},
	{
		constraint: mustConstraint(">= 3, < 4"),
		children: []particle{
			one("identifier"), one("creators"), one("titles"), one("publisher"), one("publicationYear"),
			optional("resourceType"), optional("subjects"), optional("contributors"), optional("dates"),
			optional("language"), optional("alternateIdentifiers"), optional("relatedIdentifiers"),
			optional("sizes"), optional("formats"), optional("version"), optional("rightsList"),
			optional("descriptions"), optional("geoLocations"),
		},
		attrs: withResourceTypeGeneral(commonAttrs()),
	},
	{
		constraint: mustConstraint(">= 4"),
		children: []particle{
			one("identifier"), one("creators"), one("titles"), one("publisher"), one("publicationYear"),
			one("resourceType"), optional("subjects"), optional("contributors"), optional("dates"),
			optional("language"), optional("alternateIdentifiers"), optional("relatedIdentifiers"),
			optional("sizes"), optional("formats"), optional("version"), optional("rightsList"),
			optional("descriptions"), optional("geoLocations"), optional("fundingReferences"),
		},
		attrs: withResourceTypeGeneral(commonAttrs()),
	},
}

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}

func commonAttrs() map[string][]string {
	return map[string][]string{
		"identifier":          {"identifierType"},
		"alternateIdentifier": {"alternateIdentifierType"},
		"relatedIdentifier":   {"relatedIdentifierType", "relationType"},
		"contributor":         {"contributorType"},
		"date":                {"dateType"},
		"nameIdentifier":      {"nameIdentifierScheme"},
	}
}

func withResourceTypeGeneral(attrs map[string][]string) map[string][]string {
	attrs["resourceType"] = []string{"resourceTypeGeneral"}
	return attrs
}

// sequences are the ordered content models shared by every kernel.
var sequences = map[string][]particle{
	"creators":     {some("creator")},
	"creator":      {one("creatorName"), optional("givenName"), optional("familyName"), many("nameIdentifier"), many("affiliation")},
	"titles":       {some("title")},
	"contributors": {many("contributor")},
	"contributor":  {one("contributorName"), optional("givenName"), optional("familyName"), many("nameIdentifier"), many("affiliation")},
}

// fundingReference children may come in any order; only funderName is required.
var fundingReference = []particle{
	one("funderName"), optional("funderIdentifier"), optional("awardNumber"), optional("awardTitle"),
}

// kernelFor selects the rules for a DataCite namespace. Unknown or missing
// versions get the kernel-4 rules.
func kernelFor(namespace string) kernel {
	m := kernelVersionRegex.FindStringSubmatch(namespace)
	if m != nil {
		if v, err := semver.NewVersion(m[1]); err == nil {
			for _, k := range kernels {
				if k.constraint.Check(v) {
					return k
				}
			}
		}
	}
	return kernels[len(kernels)-1]
}

// node is a parsed element with the line its start tag begins on.
type node struct {
	name     xml.Name
	attrs    []xml.Attr
	line     int
	children []*node
}

func (n *node) attr(local string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Local == local && (a.Name.Space == "" || a.Name.Space == n.name.Space) {
			return a.Value, true
		}
	}
	return "", false
}

// Validate checks a DataCite XML document against the content model of the
// kernel version named by its namespace. Errors use the
// "line:column: ERROR: Element '{ns}name': message" form; the column is always 0.
func Validate(data []byte) []string {
	root, err := buildTree(data)
	if err != nil {
		return []string{err.Error()}
	}
	res := findResource(root)
	if res == nil {
		return []string{"1:0: ERROR: No DataCite resource element found."}
	}

	v := &validator{kernel: kernelFor(res.name.Space)}
	v.resource(res)
	return v.errs
}

func buildTree(data []byte) (*node, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	root := &node{}
	stack := []*node{root}

	for {
		line, _ := decoder.InputPos()
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var syntax *xml.SyntaxError
			if errors.As(err, &syntax) {
				return nil, fmt.Errorf("%d:0: ERROR: %s", syntax.Line, syntax.Msg)
			}
			return nil, fmt.Errorf("%d:0: ERROR: %s", line, err.Error())
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name, attrs: t.Copy().Attr, line: line}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	return root, nil
}

func findResource(n *node) *node {
	for _, c := range n.children {
		if c.name.Local == "resource" {
			return c
		}
		if r := findResource(c); r != nil {
			return r
		}
	}
	return nil
}

type validator struct {
	kernel kernel
	errs   []string
}

func (v *validator) errorf(n *node, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	v.errs = append(v.errs, fmt.Sprintf("%d:0: ERROR: Element '%s': %s", n.line, qualified(n.name.Space, n.name.Local), msg))
}

func qualified(ns, local string) string {
	if ns == "" {
		return local
	}
	return "{" + ns + "}" + local
}

func expectedList(ns string, names []string) string {
	if len(names) > maxExpected {
		names = names[:maxExpected]
	}
	q := make([]string, len(names))
	for i, name := range names {
		q[i] = qualified(ns, name)
	}
	if len(q) == 1 {
		return "Expected is ( " + q[0] + " )."
	}
	return "Expected is one of ( " + strings.Join(q, ", ") + " )."
}

func (v *validator) resource(res *node) {
	v.checkAttrs(res)
	var model contentModel
	if v.kernel.ordered {
		model = newSequence(v.kernel.children)
	} else {
		model = newAll(v.kernel.children)
	}
	v.content(res, model)
}

// element validates n and its subtree.
func (v *validator) element(n *node) {
	v.checkAttrs(n)

	switch {
	case n.name.Local == "fundingReference":
		v.content(n, newAll(fundingReference))
	case sequences[n.name.Local] != nil:
		v.content(n, newSequence(sequences[n.name.Local]))
	default:
		for _, c := range n.children {
			v.element(c)
		}
	}
}

// content runs n's children through model, reporting the first child the model
// rejects and any required children still missing at the end.
func (v *validator) content(n *node, model contentModel) {
	for _, c := range n.children {
		if model != nil {
			if expected, ok := model.accept(c.name.Local); !ok {
				v.errorf(c, "This element is not expected. %s", expectedList(n.name.Space, expected))
				model = nil
			}
		}
		v.element(c)
	}
	if model == nil {
		return
	}
	if expected, missing := model.finish(); missing {
		v.errorf(n, "Missing child element(s). %s", expectedList(n.name.Space, expected))
	}
}

func (v *validator) checkAttrs(n *node) {
	for _, required := range v.kernel.attrs[n.name.Local] {
		if _, ok := n.attr(required); !ok {
			v.errorf(n, "The attribute '%s' is required but missing.", required)
		}
	}
}

// contentModel accepts child element names one at a time. accept returns the
// names that would have been allowed when it rejects one; finish returns the
// allowed names when a required child is missing.
type contentModel interface {
	accept(name string) ([]string, bool)
	finish() ([]string, bool)
}

// sequence is an xs:sequence of particles.
type sequence struct {
	items []particle
	pos   int
	count int
}

func newSequence(items []particle) *sequence {
	return &sequence{items: items}
}

func (s *sequence) accept(name string) ([]string, bool) {
	for j := s.pos; j < len(s.items); j++ {
		it := s.items[j]
		c := 0
		if j == s.pos {
			c = s.count
		}
		if it.name == name && (it.max < 0 || c < it.max) {
			if j != s.pos {
				s.pos, s.count = j, 0
			}
			s.count++
			return nil, true
		}
		if c < it.min {
			break
		}
	}
	return s.expected(), false
}

func (s *sequence) finish() ([]string, bool) {
	for j := s.pos; j < len(s.items); j++ {
		c := 0
		if j == s.pos {
			c = s.count
		}
		if c < s.items[j].min {
			return s.expected(), true
		}
	}
	return nil, false
}

// expected lists the particles allowed at the current position, up to and
// including the next required one.
func (s *sequence) expected() []string {
	var out []string
	for j := s.pos; j < len(s.items); j++ {
		it := s.items[j]
		c := 0
		if j == s.pos {
			c = s.count
		}
		if it.max < 0 || c < it.max {
			out = append(out, it.name)
		}
		if c < it.min {
			break
		}
	}
	return out
}

// all is an xs:all group: each particle at most once, in any order.
type all struct {
	items []particle
	seen  map[string]bool
}

func newAll(items []particle) *all {
	return &all{items: items, seen: make(map[string]bool)}
}

func (a *all) accept(name string) ([]string, bool) {
	for _, it := range a.items {
		if it.name == name && !a.seen[name] {
			a.seen[name] = true
			return nil, true
		}
	}
	return a.unseen(), false
}

func (a *all) finish() ([]string, bool) {
	for _, it := range a.items {
		if it.min > 0 && !a.seen[it.name] {
			return a.unseen(), true
		}
	}
	return nil, false
}

func (a *all) unseen() []string {
	var out []string
	for _, it := range a.items {
		if !a.seen[it.name] {
			out = append(out, it.name)
		}
	}
	return out
}
