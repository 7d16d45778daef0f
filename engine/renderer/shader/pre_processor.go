package shader

import (
	"fmt"
	"strings"
)

// Include is a named piece of WGSL that shaders pull in with //@pb:include.
type Include struct {
	// Source is the WGSL text injected at the annotation site.
	Source string

	// Type is the WGSL struct name declared by Source. Group annotations referencing
	// this include use it as the binding's type. Empty for includes that declare no struct.
	Type string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// includes maps include names to their source.
	includes map[string]Include

	// declarations accumulates group annotations during a Process call.
	declarations []Annotation
}

// PreProcessor expands @pb: annotations in WGSL source.
type PreProcessor interface {
	// Register adds or replaces a named include.
	//
	// Parameters:
	//   - name: the name used in //@pb:include and //@pb:group annotations
	//   - inc: the include's source and struct type
	Register(name string, inc Include)

	// Process replaces every annotation with its WGSL output. Includes are expanded
	// recursively and each include is emitted at most once per call.
	//
	// Parameters:
	//   - source: the raw WGSL source
	//
	// Returns:
	//   - string: the processed source
	//   - error: an error if an annotation is malformed, names an unknown include, or includes form a cycle
	Process(source string) (string, error)

	// Declarations returns the group annotations collected by the most recent Process call, in source order.
	//
	// Returns:
	//   - []Annotation: the collected declarations
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with no registered includes.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		includes: make(map[string]Include),
	}
}

func (p *preProcessor) Register(name string, inc Include) {
	p.includes[name] = inc
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	out := make([]string, 0, strings.Count(source, "\n")+1)
	emitted := make(map[string]bool)
	if err := p.expand(source, "", &out, emitted, nil); err != nil {
		return "", err
	}
	return strings.Join(out, "\n"), nil
}

// expand processes source line by line into out. stack holds the chain of includes being
// expanded and is used to detect cycles.
func (p *preProcessor) expand(source, origin string, out *[]string, emitted map[string]bool, stack []string) error {
	for i, line := range strings.Split(source, "\n") {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return withOrigin(origin, err)
		}
		if a == nil {
			*out = append(*out, line)
			continue
		}

		switch a.Type {
		case AnnotationTypeInclude:
			name := a.Args[0]
			inc, ok := p.includes[name]
			if !ok {
				return withOrigin(origin, fmt.Errorf("line %d: unknown include %q", a.Line, name))
			}
			for _, s := range stack {
				if s == name {
					return fmt.Errorf("include cycle: %s -> %s", strings.Join(stack, " -> "), name)
				}
			}
			if emitted[name] {
				continue
			}
			emitted[name] = true
			if err := p.expand(inc.Source, name, out, emitted, append(stack, name)); err != nil {
				return err
			}
		case AnnotationTypeBindingGroup:
			inc, ok := p.includes[a.Args[2]]
			if !ok || inc.Type == "" {
				return withOrigin(origin, fmt.Errorf("line %d: %q names no registered struct", a.Line, a.Args[2]))
			}
			*out = append(*out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				*a.Group, *a.Binding, addressSpaces[a.Args[0]], a.Args[1], inc.Type))
			p.declarations = append(p.declarations, *a)
		}
	}
	return nil
}

func withOrigin(origin string, err error) error {
	if origin == "" {
		return err
	}
	return fmt.Errorf("include %q: %w", origin, err)
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
