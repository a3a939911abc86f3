package patients

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const maxPlausibleAge = 40

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]{6,20}$`)

// ValidationErrors mapea campo (clave JSON) -> mensaje. Vacío = válido.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate revisa un borrador sin efectos secundarios.
// El que llama no debe persistir si el resultado no está vacío.
func Validate(d Draft) ValidationErrors {
	errs := ValidationErrors{}

	minLen(errs, "patientName", d.PatientName, 2)
	minLen(errs, "species", d.Species, 3)
	minLen(errs, "ownerName", d.OwnerName, 3)

	if s := strings.TrimSpace(string(d.Age)); s != "" {
		n, ok := d.Age.Number()
		switch {
		case !ok || math.IsNaN(n) || math.IsInf(n, 0):
			errs["age"] = "must be a number"
		case n < 0:
			errs["age"] = "must not be negative"
		case n > maxPlausibleAge:
			errs["age"] = fmt.Sprintf("must not be greater than %d", maxPlausibleAge)
		}
	}

	if s := strings.TrimSpace(d.OwnerPhone); s != "" && !phonePattern.MatchString(s) {
		errs["ownerPhone"] = "must be 6-20 characters of digits, spaces, +, - or parentheses"
	}

	switch Vaccines(strings.TrimSpace(string(d.VaccinesUpToDate))) {
	case VaccinesYes, VaccinesNo, VaccinesUnknown:
	default:
		errs["vaccinesUpToDate"] = `must be "Si", "No" or empty`
	}

	if bad := outsideOf(d.Operations, OperationOptions); len(bad) > 0 {
		errs["operations"] = "unknown option(s): " + strings.Join(bad, ", ")
	}
	if bad := outsideOf(d.RecentStudies, StudyOptions); len(bad) > 0 {
		errs["recentStudies"] = "unknown option(s): " + strings.Join(bad, ", ")
	}

	return errs
}

func minLen(errs ValidationErrors, field, value string, n int) {
	v := strings.TrimSpace(value)
	if v == "" {
		errs[field] = "is required"
		return
	}
	if utf8.RuneCountInString(v) < n {
		errs[field] = fmt.Sprintf("must be at least %d characters", n)
	}
}

func outsideOf(values, allowed []string) []string {
	ok := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		ok[a] = struct{}{}
	}

	var bad []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, found := ok[v]; !found {
			bad = append(bad, v)
		}
	}
	return bad
}
