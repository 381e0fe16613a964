package registry

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nickagliano/hookplayer/internal/errors"
)

//go:embed schema/index.schema.json
var indexSchemaBytes []byte

//go:embed schema/manifest.schema.json
var manifestSchemaBytes []byte

var (
	indexSchema    = lazySchema{name: "index.schema.json", raw: indexSchemaBytes}
	manifestSchema = lazySchema{name: "manifest.schema.json", raw: manifestSchemaBytes}
	printer        = message.NewPrinter(language.English)
)

// lazySchema compiles an embedded JSON schema on first use.
type lazySchema struct {
	name string
	raw  []byte

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

func (l *lazySchema) get() (*jsonschema.Schema, error) {
	l.once.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(l.raw))
		if err != nil {
			l.err = fmt.Errorf("unmarshaling schema %s: %w", l.name, err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(l.name, doc); err != nil {
			l.err = fmt.Errorf("adding schema resource %s: %w", l.name, err)
			return
		}
		l.compiled, l.err = c.Compile(l.name)
		if l.err != nil {
			l.err = fmt.Errorf("compiling schema %s: %w", l.name, l.err)
		}
	})
	return l.compiled, l.err
}

// Issue is a single schema violation.
type Issue struct {
	Path    string // instance location, e.g. "/packs/0/name"
	Message string
	Keyword string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// validate checks body against schema. Malformed JSON and schema
// violations are both reported as errors.ErrParse, labelled with what.
func validate(schema *lazySchema, body []byte, what string) error {
	sch, err := schema.get()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, errors.ErrParse, "parsing %s", what)
	}

	err = sch.Validate(inst)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return errors.Wrapf(err, errors.ErrParse, "validating %s", what)
	}

	issues := collectIssues(ve)
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, issue.String())
	}
	return errors.Newf(errors.ErrParse, "invalid %s: %s", what, strings.Join(parts, "; "))
}

// collectIssues walks the error tree and returns deduplicated leaf issues.
func collectIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	walkIssues(ve, &issues)
	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}
	}

	seen := make(map[string]bool, len(issues))
	var out []Issue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			out = append(out, issue)
		}
	}
	return out
}

func walkIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			walkIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	keyword, msg := "", ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	if keyword == "allOf" || keyword == "$ref" || keyword == "" {
		return
	}

	*issues = append(*issues, Issue{Path: path, Message: msg, Keyword: keyword})
}
