package parse

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/napalu/funcopt/errs"
	"github.com/napalu/funcopt/types"
)

// TagName is the struct tag key read from constructor fields
const TagName = "funcopt"

// FieldTag returns the tag configuration of field. Fields without a tag get an empty configuration.
func FieldTag(field reflect.StructField) (*types.TagConfig, error) {
	tag, ok := field.Tag.Lookup(TagName)
	if !ok {
		return &types.TagConfig{}, nil
	}
	return UnmarshalTagFormat(tag, field)
}

// UnmarshalTagFormat parses a tag of the form `name:value;short:v;desc:text;required:true;stream:stdin;choices:a,b`.
// The single value "-" excludes the field.
func UnmarshalTagFormat(tag string, field reflect.StructField) (*types.TagConfig, error) {
	config := &types.TagConfig{}
	tag = strings.TrimSpace(tag)
	if tag == "-" {
		config.Ignore = true
		return config, nil
	}
	if tag == "" {
		return config, nil
	}

	for _, part := range strings.Split(tag, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		key, value, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("%w: invalid tag format in field %s: %s", errs.ErrInvalidTag, field.Name, part)
		}
		key = strings.TrimSpace(key)

		switch key {
		case "name":
			config.Name = value
		case "short":
			if len(value) != 1 || !IsAlnum(rune(value[0])) {
				return nil, fmt.Errorf("%w: short name in field %s must be a single letter or digit: %q",
					errs.ErrInvalidTag, field.Name, value)
			}
			config.Short = value
		case "desc":
			config.Description = value
		case "required":
			boolVal, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid 'required' value in field %s: %w", errs.ErrInvalidTag, field.Name, err)
			}
			config.Required = boolVal
		case "stream":
			s := types.StreamFromString(value)
			if s == types.NoStream {
				return nil, fmt.Errorf("%w: invalid stream in field %s: %s (must be 'stdin', 'stdout' or 'stderr')",
					errs.ErrInvalidTag, field.Name, value)
			}
			config.Stream = s
		case "choices":
			for _, c := range strings.Split(value, ",") {
				if c = strings.TrimSpace(c); c != "" {
					config.Choices = append(config.Choices, c)
				}
			}
			if len(config.Choices) == 0 {
				return nil, fmt.Errorf("%w: empty choices in field %s", errs.ErrInvalidTag, field.Name)
			}
		default:
			return nil, fmt.Errorf("%w: unrecognized key '%s' in field %s", errs.ErrInvalidTag, key, field.Name)
		}
	}

	return config, nil
}

// IsAlnum reports whether r may be used as a short flag
func IsAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
