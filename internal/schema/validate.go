package schema

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Field error codes shown next to the offending field.
const (
	CodeRequired        = "required"
	CodeExtraKey        = "extra_key"
	CodeInvalidEntityID = "invalid_entity_id"
	CodeWrongDomain     = "wrong_domain"
	CodeInvalidFloat    = "invalid_float"
	CodeInvalidInt      = "invalid_int"
	CodeInvalidString   = "invalid_string"
)

// FieldErrors maps a field key to an error code.
type FieldErrors map[string]string

// Error renders the errors in key order.
func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

var entityIDRe = regexp.MustCompile(`^[a-z0-9_]+\.[a-z0-9_]+$`)

// Validate checks input against the schema. On success it returns a new record
// holding coerced values plus defaults for omitted fields; on failure it
// returns a nil record and one error code per offending field. input is not
// modified.
func (s Schema) Validate(input map[string]any) (Record, FieldErrors) {
	errs := FieldErrors{}
	for key := range input {
		if _, ok := s.Field(key); !ok {
			errs[key] = CodeExtraKey
		}
	}

	out := make(Record, len(s.fields))
	for _, f := range s.fields {
		raw, present := input[f.Key]
		if present && f.Kind == KindEntity && isBlank(f, raw) {
			if f.Required {
				errs[f.Key] = CodeRequired
			}
			// cleared optional reference
			continue
		}
		if !present {
			switch {
			case f.HasDefault():
				raw = f.Default
			case f.Required:
				errs[f.Key] = CodeRequired
				continue
			default:
				continue
			}
		}
		v, code := f.coerce(raw)
		if code != "" {
			errs[f.Key] = code
			continue
		}
		out[f.Key] = v
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (f Field) coerce(raw any) (any, string) {
	switch f.Kind {
	case KindEntity:
		return coerceEntity(raw, f.Domains)
	case KindFloat:
		return coerceFloat(raw)
	case KindInt:
		return coerceInt(raw)
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, CodeInvalidString
		}
		return s, ""
	default:
		panic(fmt.Sprintf("schema: unknown kind %q", f.Kind))
	}
}

func coerceEntity(raw any, domains []string) (any, string) {
	s, ok := raw.(string)
	if !ok {
		return nil, CodeInvalidEntityID
	}
	id := strings.ToLower(strings.TrimSpace(s))
	if !validEntityID(id) {
		return nil, CodeInvalidEntityID
	}
	domain := id[:strings.IndexByte(id, '.')]
	for _, d := range domains {
		if d == domain {
			return id, ""
		}
	}
	return nil, CodeWrongDomain
}

// validEntityID accepts "<domain>.<object_id>" where neither part starts or
// ends with an underscore and no double underscore appears.
func validEntityID(id string) bool {
	if !entityIDRe.MatchString(id) || strings.Contains(id, "__") {
		return false
	}
	for _, part := range strings.SplitN(id, ".", 2) {
		if strings.HasPrefix(part, "_") || strings.HasSuffix(part, "_") {
			return false
		}
	}
	return true
}

func coerceFloat(raw any) (any, string) {
	if raw == nil {
		return nil, CodeInvalidFloat
	}
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, CodeInvalidFloat
	}
	return v, ""
}

// Integer fields hold int32-sized values whatever kind the input arrives as.
const (
	minIntValue = math.MinInt32
	maxIntValue = math.MaxInt32
)

func coerceInt(raw any) (any, string) {
	var v int64
	switch t := raw.(type) {
	case nil:
		return nil, CodeInvalidInt
	case string:
		// decimal only; cast would read "010" as octal
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return nil, CodeInvalidInt
		}
		v = n
	case float32:
		return coerceInt(float64(t))
	case float64:
		if math.IsNaN(t) || t < minIntValue || t > maxIntValue {
			return nil, CodeInvalidInt
		}
		v = int64(t)
	case uint:
		return coerceInt(uint64(t))
	case uint64:
		if t > maxIntValue {
			return nil, CodeInvalidInt
		}
		v = int64(t)
	default:
		n, err := cast.ToInt64E(raw)
		if err != nil {
			return nil, CodeInvalidInt
		}
		v = n
	}
	if v < minIntValue || v > maxIntValue {
		return nil, CodeInvalidInt
	}
	return int(v), ""
}
