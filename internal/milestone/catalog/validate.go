package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrSchemaViolation is wrapped by every SchemaViolationError.
var ErrSchemaViolation = errors.New("milestone schema violation")

// Violation pinpoints one invalid field in a source.
type Violation struct {
	Index       int    // position of the record in the source, -1 for source-level problems
	MilestoneID string // empty when the record has no usable id
	Field       string
	Reason      string
}

func (v Violation) String() string {
	loc := fmt.Sprintf("record %d", v.Index)
	if v.MilestoneID != "" {
		loc += " (" + v.MilestoneID + ")"
	}
	if v.Field != "" {
		return loc + ": " + v.Field + ": " + v.Reason
	}
	return loc + ": " + v.Reason
}

// SchemaViolationError lists every violation found in a source. A catalog is
// never built when this error is returned.
type SchemaViolationError struct {
	Source     string
	Violations []Violation
}

func (e *SchemaViolationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s: %d violation(s) in %s: %s",
		ErrSchemaViolation, len(e.Violations), e.Source, strings.Join(parts, "; "))
}

func (e *SchemaViolationError) Unwrap() error {
	return ErrSchemaViolation
}

var recordValidate = newRecordValidator()

func newRecordValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRecords checks every record and returns all violations found.
// Struct tags cover presence, types and vocabularies; ordering of the age
// window, label/value pairing and id uniqueness are checked here.
func validateRecords(records []Record) []Violation {
	var out []Violation
	seen := make(map[string]int, len(records))

	for i, r := range records {
		id := ""
		if r.ID != nil {
			id = *r.ID
		}

		if err := recordValidate.Struct(r); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					out = append(out, Violation{
						Index:       i,
						MilestoneID: id,
						Field:       fieldPath(fe.Namespace()),
						Reason:      describe(fe),
					})
				}
			} else {
				out = append(out, Violation{Index: i, MilestoneID: id, Reason: err.Error()})
			}
		}

		if ar := r.AgeRange; ar != nil && ar.Min != nil && ar.Typical != nil && ar.Max != nil {
			if *ar.Min > *ar.Typical || *ar.Typical > *ar.Max {
				out = append(out, Violation{
					Index:       i,
					MilestoneID: id,
					Field:       "age_range_months",
					Reason:      fmt.Sprintf("must satisfy min <= typical <= max, got %d/%d/%d", *ar.Min, *ar.Typical, *ar.Max),
				})
			}
		}

		for j, o := range r.Options {
			if !optionPaired(o) {
				out = append(out, Violation{
					Index:       i,
					MilestoneID: id,
					Field:       fmt.Sprintf("options[%d]", j),
					Reason:      fmt.Sprintf("label %q does not match value %q", o.Label, o.Value),
				})
			}
		}

		if id != "" {
			if first, dup := seen[id]; dup {
				out = append(out, Violation{
					Index:       i,
					MilestoneID: id,
					Field:       "milestone_id",
					Reason:      fmt.Sprintf("duplicate of record %d", first),
				})
			} else {
				seen[id] = i
			}
		}
	}
	return out
}

// optionPaired reports whether a label resolves to the same yes/no answer as
// its value. Vocabulary errors are reported by the struct tags, not here.
func optionPaired(o RecordOption) bool {
	want, ok := pairedValues[o.Label]
	if !ok || (o.Value != "yes" && o.Value != "no") {
		return true
	}
	return o.Value == want
}

var pairedValues = map[string]string{"Yes": "yes", "No": "no"}

// fieldPath strips the struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be >= " + fe.Param()
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %v", fe.Param(), fe.Value())
	default:
		return "failed " + fe.Tag()
	}
}
