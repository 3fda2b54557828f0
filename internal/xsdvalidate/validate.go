// =============================================================================
// SAF-T Financial - XSD Validation
// =============================================================================
//
// Schema validation against the bundled Norwegian SAF-T Financial schema.
// The schema is embedded in the binary and compiled once, on first use;
// afterwards the compiled form is shared and safe for concurrent use.
//
// Validation never fails the caller: structural problems come back inside
// the Result, not as an error. The only error this package returns is a
// failure to compile the bundled schema, which means the build itself is
// broken.
//
// =============================================================================

package xsdvalidate

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/jacoelho/xsd"
	"github.com/jacoelho/xsd/xsderrors"
)

//go:embed schema/*.xsd
var schemaFS embed.FS

const schemaLocation = "schema/Norwegian_SAF-T_Financial_Schema_v_1.30.xsd"

// Result is the outcome of one validation run.
type Result struct {
	// Valid reports whether the document conforms to the schema.
	Valid bool

	// Errors holds one message per schema violation, in document order.
	// Empty when Valid.
	Errors []string
}

var (
	schemaOnce sync.Once
	schema     *xsd.Engine
	schemaErr  error
)

func compiledSchema() (*xsd.Engine, error) {
	schemaOnce.Do(func() {
		var data []byte
		data, schemaErr = schemaFS.ReadFile(schemaLocation)
		if schemaErr == nil {
			schema, schemaErr = xsd.Compile(xsd.Bytes(schemaLocation, data))
		}
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile bundled schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// Validate checks a SAF-T Financial document against the bundled schema.
func Validate(r io.Reader) (Result, error) {
	s, err := compiledSchema()
	if err != nil {
		return Result{}, err
	}

	err = s.Validate(r)
	if err == nil {
		return Result{Valid: true}, nil
	}

	var list xsderrors.Errors
	if errors.As(err, &list) {
		flat := xsderrors.Flatten(list)
		result := Result{Errors: make([]string, 0, len(flat))}
		for i := range flat {
			result.Errors = append(result.Errors, flat[i].Error())
		}
		return result, nil
	}

	// Non-schema failures (unreadable input) are reported the same way:
	// the document did not validate.
	return Result{Errors: []string{err.Error()}}, nil
}

// ValidateBytes checks an in-memory document against the bundled schema.
func ValidateBytes(doc []byte) (Result, error) {
	return Validate(bytes.NewReader(doc))
}
