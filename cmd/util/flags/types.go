package flags

import (
	"fmt"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/pflag"
	"golang.org/x/exp/slices"

	"github.com/genie-oss/genie/cmd/util/output"
	"github.com/genie-oss/genie/pkg/logger"
	"github.com/genie-oss/genie/pkg/models"
)

// A Parser is a function that can convert a string into a native object.
type Parser[T any] func(string) (T, error)

// A Stringer is a function that can convert a native object into a string.
type Stringer[T any] func(*T) string

// A ValueFlag is a pflag.Value that knows how to take a command line value
// represented as a string and set it as a native object into a struct.
type ValueFlag[T any] struct {
	// A pointer to a variable that will be set by this flag.
	value *T

	// A Parser to turn the command line string into a native value.
	parser Parser[T]

	// A Stringer to turn the default value for the flag back into a native
	// string, to be printed as help.
	stringer Stringer[T]

	// How the value should be described in the help string. (e.g. string, int)
	typeStr string
}

// Set implements pflag.Value
func (s *ValueFlag[T]) Set(input string) error {
	value, err := s.parser(input)
	*s.value = value
	return err
}

// String implements pflag.Value
func (s *ValueFlag[T]) String() string {
	return s.stringer(s.value)
}

// Type implements pflag.Value
func (s *ValueFlag[T]) Type() string {
	return s.typeStr
}

var _ pflag.Value = (*ValueFlag[int])(nil)

// An ArrayValueFlag is like a ValueFlag except it will add the command line
// value into a slice of values, and hence can be used for flags that are meant
// to appear multiple times.
type ArrayValueFlag[T any] struct {
	value    *[]T
	parser   Parser[T]
	stringer Stringer[T]
	typeStr  string
}

// Set implements pflag.Value
func (s *ArrayValueFlag[T]) Set(input string) error {
	value, err := s.parser(input)
	if err != nil {
		return err
	}
	*s.value = append(*s.value, value)
	return nil
}

// String implements pflag.Value
func (s *ArrayValueFlag[T]) String() string {
	strs := make([]string, 0, len(*s.value))
	for i := range *s.value {
		strs = append(strs, s.stringer(&(*s.value)[i]))
	}
	return strings.Join(strs, ", ")
}

// Type implements pflag.Value
func (s *ArrayValueFlag[T]) Type() string {
	return s.typeStr
}

// Converts a value flag into a flag that can accept multiple of the same value.
func ArrayValueFlagFrom[T any](singleFlag func(*T) *ValueFlag[T]) func(*[]T) *ArrayValueFlag[T] {
	flag := singleFlag(nil)
	return func(value *[]T) *ArrayValueFlag[T] {
		return &ArrayValueFlag[T]{
			value:    value,
			parser:   flag.parser,
			stringer: flag.stringer,
			typeStr:  flag.typeStr,
		}
	}
}

var _ pflag.Value = (*ArrayValueFlag[int])(nil)

func LoggingFlag(value *logger.LogMode) *ValueFlag[logger.LogMode] {
	return &ValueFlag[logger.LogMode]{
		value:    value,
		parser:   logger.ParseLogMode,
		stringer: func(p *logger.LogMode) string { return string(*p) },
		typeStr:  "logging-mode",
	}
}

func OutputFormatFlag(value *output.OutputFormat) *ValueFlag[output.OutputFormat] {
	return &ValueFlag[output.OutputFormat]{
		value: value,
		parser: func(s string) (output.OutputFormat, error) {
			o := output.OutputFormat(s)
			if !slices.Contains(output.AllFormats, o) {
				return "", fmt.Errorf("should be one of %q", output.AllFormats)
			}
			return o, nil
		},
		stringer: func(o *output.OutputFormat) string { return string(*o) },
		typeStr:  "format",
	}
}

// MemoryFlag takes a size such as 2GB and stores it in MB. Plain numbers
// are MB.
func MemoryFlag(value *int) *ValueFlag[int] {
	return &ValueFlag[int]{
		value:    value,
		parser:   ParseMemoryMB,
		stringer: func(v *int) string { return fmt.Sprint(*v) },
		typeStr:  "memory",
	}
}

func ParseMemoryMB(s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.IndexFunc(s, isLetter) < 0 {
		s += "MB"
	}
	var size datasize.ByteSize
	if err := size.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid memory %q: %w", s, err)
	}
	return int(size / datasize.MB), nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// CriterionFlag parses a criterion written as "id=x,name=y,version=z,tags=a;b".
func CriterionFlag(value *models.Criterion) *ValueFlag[models.Criterion] {
	return &ValueFlag[models.Criterion]{
		value:    value,
		parser:   ParseCriterion,
		stringer: func(c *models.Criterion) string { return c.String() },
		typeStr:  "criterion",
	}
}

var CriteriaFlag = ArrayValueFlagFrom(CriterionFlag)

func ParseCriterion(s string) (models.Criterion, error) {
	builder := models.NewCriterionBuilder()
	for _, field := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(field), "=")
		if !ok {
			return models.Criterion{}, fmt.Errorf("invalid criterion field %q, expected key=value", field)
		}
		switch strings.ToLower(key) {
		case "id":
			builder.ID(value)
		case "name":
			builder.Name(value)
		case "version":
			builder.Version(value)
		case "tags":
			builder.Tags(strings.Split(value, ";")...)
		default:
			return models.Criterion{}, fmt.Errorf("unknown criterion field %q", key)
		}
	}
	return builder.Build()
}
