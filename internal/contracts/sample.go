package contracts

import (
	"fmt"
	"regexp"
	"strings"
)

// SampleKind tags the variant held by a SampleSpecifier
type SampleKind int

const (
	// SampleUnknown is the zero value and never valid
	SampleUnknown SampleKind = iota
	// SampleListedCompanies selects every company listed on the exchange
	SampleListedCompanies
	// SampleIndex selects the constituents of one index
	SampleIndex
)

const (
	listedCompaniesName = "listed_companies"
	indexPrefix         = "index:"
)

var indexCodePattern = regexp.MustCompile(`^[A-Z0-9]{2,12}$`)

// SampleSpecifier identifies the ticker universe of one run.
// It is immutable once constructed; build it with ListedCompanies, Index or ParseSampleSpecifier.
// ⭐ SSOT: 유니버스 선택은 이 타입으로만 표현
type SampleSpecifier struct {
	kind SampleKind
	code string
}

// ListedCompanies returns the specifier for all listed companies
func ListedCompanies() SampleSpecifier {
	return SampleSpecifier{kind: SampleListedCompanies}
}

// Index returns the specifier for the constituents of the given index code
func Index(code string) (SampleSpecifier, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !indexCodePattern.MatchString(code) {
		return SampleSpecifier{}, fmt.Errorf("%w: index code %q", ErrInvalidSpecifier, code)
	}
	return SampleSpecifier{kind: SampleIndex, code: code}, nil
}

// ParseSampleSpecifier parses "listed_companies" or "index:<code>".
// The legacy spellings "empresas_listadas" and "indice:<code>" are accepted too.
func ParseSampleSpecifier(raw string) (SampleSpecifier, error) {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)

	switch {
	case lower == listedCompaniesName || lower == "empresas_listadas":
		return ListedCompanies(), nil
	case strings.HasPrefix(lower, indexPrefix):
		return Index(s[len(indexPrefix):])
	case strings.HasPrefix(lower, "indice:"):
		return Index(s[len("indice:"):])
	default:
		return SampleSpecifier{}, fmt.Errorf("%w: %q", ErrInvalidSpecifier, raw)
	}
}

// Kind returns the variant tag
func (s SampleSpecifier) Kind() SampleKind {
	return s.kind
}

// IndexCode returns the index code; empty unless Kind is SampleIndex
func (s SampleSpecifier) IndexCode() string {
	return s.code
}

// Validate rejects the zero value and any hand-built invalid variant
func (s SampleSpecifier) Validate() error {
	switch s.kind {
	case SampleListedCompanies:
		return nil
	case SampleIndex:
		if indexCodePattern.MatchString(s.code) {
			return nil
		}
		return fmt.Errorf("%w: index code %q", ErrInvalidSpecifier, s.code)
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidSpecifier, s.kind)
	}
}

// String returns the canonical form, e.g. "index:IDIV"
func (s SampleSpecifier) String() string {
	switch s.kind {
	case SampleListedCompanies:
		return listedCompaniesName
	case SampleIndex:
		return indexPrefix + s.code
	default:
		return ""
	}
}

// FileKey is the persisted file identity: the canonical form with ':' replaced by '_'
func (s SampleSpecifier) FileKey() string {
	return strings.ReplaceAll(s.String(), ":", "_")
}
