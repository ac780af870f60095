package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-charsheet/pkg/schema"
	"github.com/goliatone/go-charsheet/pkg/visibility"
	"github.com/goliatone/go-charsheet/pkg/visibility/expr"
)

// ErrInvalid wraps every profile validation failure.
var ErrInvalid = errors.New("profile: invalid profile")

const defaultDocumentTemplate = "document"

// Option configures profile loading.
type Option func(*loadConfig)

type loadConfig struct {
	compiler visibility.Compiler
}

// WithCompiler checks entry rules with compiler instead of the default CEL
// evaluator.
func WithCompiler(compiler visibility.Compiler) Option {
	return func(cfg *loadConfig) {
		if compiler != nil {
			cfg.compiler = compiler
		}
	}
}

func newLoadConfig(options []Option) (*loadConfig, error) {
	cfg := &loadConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.compiler == nil {
		evaluator, err := expr.New()
		if err != nil {
			return nil, err
		}
		cfg.compiler = evaluator
	}
	return cfg, nil
}

// Parse decodes a single profile document and validates it.
func Parse(data []byte, source string, options ...Option) (Profile, error) {
	cfg, err := newLoadConfig(options)
	if err != nil {
		return Profile{}, err
	}
	return parse(data, source, cfg)
}

// LoadFS walks fsys and registers every .yaml, .yml and .json profile found.
// A nil fsys yields an empty registry.
func LoadFS(fsys fs.FS, options ...Option) (*Registry, error) {
	registry := NewRegistry()
	if fsys == nil {
		return registry, nil
	}
	cfg, err := newLoadConfig(options)
	if err != nil {
		return nil, err
	}

	err = fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isProfileFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("profile: read %s: %w", path, err)
		}
		p, err := parse(data, path, cfg)
		if err != nil {
			return err
		}
		return registry.Register(p)
	})
	if err != nil {
		return nil, err
	}
	return registry, nil
}

func parse(data []byte, source string, cfg *loadConfig) (Profile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Profile{}, fmt.Errorf("%w: file %s is empty", ErrInvalid, source)
	}

	var p Profile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("profile: parse %s: %w", source, err)
	}

	p.Source = source
	normalise(&p)
	if err := validate(p, cfg.compiler); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func normalise(p *Profile) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Document.Template == "" {
		p.Document.Template = defaultDocumentTemplate
	}
	if p.Document.Columns == 0 {
		p.Document.Columns = 1
	}
	if p.Separator == "" {
		p.Separator = "\n"
	}
	if p.Overflow.Policy == "" {
		p.Overflow.Policy = PolicyExtend
	}
	for i := range p.Groups {
		p.Groups[i].ID = schema.GroupID(strings.TrimSpace(string(p.Groups[i].ID)))
	}
}

func validate(p Profile, compiler visibility.Compiler) error {
	where := p.Source
	if where == "" {
		where = "profile " + p.Name
	}
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalid, where, fmt.Sprintf(format, args...))
	}

	if p.Name == "" {
		return fail("name is required")
	}
	if p.Budget.Pages <= 0 || p.Budget.LinesPerPage <= 0 || p.Budget.CharsPerLine <= 0 {
		return fail("budget pages, linesPerPage and charsPerLine must be positive")
	}
	if p.Budget.HeaderLines < 0 {
		return fail("budget headerLines must not be negative")
	}
	if p.Document.Columns < 1 || p.Document.Columns > 3 {
		return fail("document columns must be between 1 and 3")
	}
	if len(p.Groups) == 0 {
		return fail("at least one group is required")
	}

	seen := make(map[schema.GroupID]bool, len(p.Groups))
	for i, rule := range p.Groups {
		if !schema.KnownGroup(rule.ID) {
			return fail("groups[%d]: unknown group %q", i, rule.ID)
		}
		if seen[rule.ID] {
			return fail("groups[%d]: duplicate group %q", i, rule.ID)
		}
		seen[rule.ID] = true

		if rule.Limit < 0 || rule.MaxChars < 0 {
			return fail("groups[%d]: limit and maxChars must not be negative", i)
		}
		if err := compileRule(compiler, rule.Include); err != nil {
			return fail("groups[%d].include: %v", i, err)
		}
		for j, priority := range rule.Priority {
			if strings.TrimSpace(priority) == "" {
				return fail("groups[%d].priority[%d]: rule is empty", i, j)
			}
			if err := compileRule(compiler, priority); err != nil {
				return fail("groups[%d].priority[%d]: %v", i, j, err)
			}
		}
	}

	switch p.Overflow.Policy {
	case PolicyExtend:
		if len(p.Overflow.Order) > 0 {
			return fail("overflow order is only valid with policy %q", PolicyTruncate)
		}
	case PolicyTruncate:
		if len(p.Overflow.Order) == 0 {
			return fail("overflow policy %q needs an order", PolicyTruncate)
		}
		for i, id := range p.Overflow.Order {
			if !seen[id] {
				return fail("overflow.order[%d]: group %q is not part of the profile", i, id)
			}
		}
	default:
		return fail("unknown overflow policy %q", p.Overflow.Policy)
	}
	return nil
}

func compileRule(compiler visibility.Compiler, rule string) error {
	if strings.TrimSpace(rule) == "" {
		return nil
	}
	return compiler.Compile(rule)
}

func isProfileFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
