package domain

import (
	"fmt"
	"strconv"
	"strings"

	xerrors "country-service/pkg/xerrors"
)

const (
	DefaultLowerBound int64 = 0
	DefaultUpperBound int64 = 2_000_000_000
)

type Country struct {
	Name       string `json:"name" yaml:"name"`
	Capital    string `json:"capital" yaml:"capital"`
	Population int64  `json:"population" yaml:"population"`
	Wiki       string `json:"wiki" yaml:"wiki"`
}

// Field selects what a deployment exposes.
type Field string

const (
	FieldCapital    Field = "capital"
	FieldPopulation Field = "population"
	FieldName       Field = "name"
	FieldWiki       Field = "wiki"
	FieldList       Field = "list"
)

func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FieldCapital, FieldPopulation, FieldName, FieldWiki, FieldList:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", xerrors.ErrUnknownField, s)
}

// Route is the path prefix the field is served under.
func (f Field) Route() string {
	switch f {
	case FieldCapital:
		return "/country-capital"
	case FieldPopulation:
		return "/country-population"
	case FieldName:
		return "/country-name"
	case FieldWiki:
		return "/wiki"
	case FieldList:
		return "/country-list"
	}
	return ""
}

// LegacyRoute is the older path still mounted for existing clients, or "".
func (f Field) LegacyRoute() string {
	switch f {
	case FieldPopulation:
		return "/pop"
	case FieldName:
		return "/name"
	}
	return ""
}

// Scalar reports whether the field renders as plain text.
func (f Field) Scalar() bool {
	return f == FieldCapital || f == FieldPopulation || f == FieldWiki
}

// Value projects a scalar field of the record to its text form.
func (c Country) Value(f Field) (string, error) {
	switch f {
	case FieldCapital:
		return c.Capital, nil
	case FieldPopulation:
		return strconv.FormatInt(c.Population, 10), nil
	case FieldWiki:
		return c.Wiki, nil
	}
	return "", fmt.Errorf("%w: %q is not a scalar field", xerrors.ErrUnknownField, string(f))
}

func (c Country) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: empty name", xerrors.ErrInvalidRecord)
	}
	if c.Population < 0 {
		return fmt.Errorf("%w: %s has negative population %d", xerrors.ErrInvalidRecord, c.Name, c.Population)
	}
	return nil
}
