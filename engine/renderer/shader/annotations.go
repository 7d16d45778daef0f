// annotations.go defines the annotation syntax understood by the WGSL pre-processor.
// Annotations are single-line WGSL comments prefixed with @pb: that pull shared struct
// definitions into a shader and declare the bindings that use them.
package shader

import (
	"fmt"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an annotation within a WGSL comment line.
const annotationPrefix = "@pb:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// AnnotationTypeInclude injects the source of a registered include at the annotation site.
	//
	// Syntax: //@pb:include <name>
	AnnotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a @group/@binding variable declaration whose type is
	// the WGSL type of a registered include, and records the declaration so callers can look up
	// where a struct is bound without matching variable names.
	//
	// Syntax: //@pb:group <group> <binding> <address_space> <var_name> <include_name>
	//
	// Example: //@pb:group 0 0 uniform scene scene_uniforms
	AnnotationTypeBindingGroup AnnotationType = "group"
)

// Address spaces accepted by group annotations, mapped to their WGSL var<> syntax.
var addressSpaces = map[string]string{
	"uniform":            "var<uniform>",
	"storage_read":       "var<storage, read>",
	"storage_read_write": "var<storage, read_write>",
}

// Annotation is a single parsed @pb: annotation.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments:
	//   - include: [0] = include name
	//   - group:   [0] = address space, [1] = var name, [2] = include name
	Args []string

	// Line is the 1-based source line the annotation was found on.
	Line int

	// Group and Binding are set for group annotations only.
	Group   *int
	Binding *int
}

// parseAnnotation parses a single source line. Lines that are not annotations return (nil, nil).
//
// Parameters:
//   - line: the raw source line
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(trimmed, "//")
	if !ok {
		return nil, nil
	}
	after, ok := strings.CutPrefix(strings.TrimSpace(rest), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @pb annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case AnnotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @pb:include requires exactly one argument", lineNum)
		}
		return &Annotation{
			Type: AnnotationTypeInclude,
			Args: []string{args[1]},
			Line: lineNum,
		}, nil
	case AnnotationTypeBindingGroup:
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @pb:group requires group, binding, address space, var name and include name", lineNum)
		}
		group, err := strconv.Atoi(args[1])
		if err != nil || group < 0 {
			return nil, fmt.Errorf("line %d: invalid group number %q", lineNum, args[1])
		}
		binding, err := strconv.Atoi(args[2])
		if err != nil || binding < 0 {
			return nil, fmt.Errorf("line %d: invalid binding number %q", lineNum, args[2])
		}
		if _, ok := addressSpaces[args[3]]; !ok {
			return nil, fmt.Errorf("line %d: unknown address space %q", lineNum, args[3])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []string{args[3], args[4], args[5]},
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @pb annotation type %q", lineNum, args[0])
	}
}
