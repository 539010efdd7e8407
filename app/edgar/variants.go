package edgar

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrURLSynthesis is returned when an entry's base link cannot be
// parsed into query parameters, making the derived URL matrix
// impossible to compute for that call.
var ErrURLSynthesis = errors.New("url variant synthesis failed")

var outputFormats = []string{"atom", "html"}

// ownershipAxis drives the myowner rewrite: "only" and "exclude" set
// the parameter, "include" removes it entirely.
var ownershipAxis = []struct {
	label string
	value string
}{
	{"owner_only", "only"},
	{"owner_exclude", "exclude"},
	{"owner_include", ""},
}

// DeriveVariants rewrites the query string of baseHref into the full
// matrix of (output format x ownership inclusion) URLs, each also
// produced in a "_filtered_date" form with the currently active
// datea/dateb bounds injected explicitly. Twelve keys are always
// present, even when some values coincide. All untouched parameters
// keep their original values and ordering.
func DeriveVariants(baseHref string) (map[string]string, error) {
	base, err := url.Parse(baseHref)
	if err != nil {
		return nil, fmt.Errorf("%w: parse base link %q: %v", ErrURLSynthesis, baseHref, err)
	}

	params, err := parseQuery(base.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: parse query of %q: %v", ErrURLSynthesis, baseHref, err)
	}

	dateAfter := getParam(params, paramDateAfter)
	dateBefore := getParam(params, paramDateBefore)

	variants := make(map[string]string, 2*len(outputFormats)*len(ownershipAxis))
	for _, format := range outputFormats {
		for _, ownership := range ownershipAxis {
			derived := setParam(cloneParams(params), paramOutput, format)
			if ownership.value == "" {
				derived = removeParam(derived, paramOwner)
			} else {
				derived = setParam(derived, paramOwner, ownership.value)
			}
			variants[format+"_"+ownership.label] = rebuildURL(base, derived)

			dated := setParam(cloneParams(derived), paramDateAfter, dateAfter)
			dated = setParam(dated, paramDateBefore, dateBefore)
			variants[format+"_"+ownership.label+"_filtered_date"] = rebuildURL(base, dated)
		}
	}

	return variants, nil
}

// queryParam preserves the position of one key=value pair; url.Values
// would lose the original ordering on re-encode.
type queryParam struct {
	key   string
	value string
}

func parseQuery(raw string) ([]queryParam, error) {
	if raw == "" {
		return nil, nil
	}

	var params []queryParam
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		decodedKey, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}
		params = append(params, queryParam{key: decodedKey, value: decodedValue})
	}
	return params, nil
}

func encodeQuery(params []queryParam) string {
	var b strings.Builder
	for i, param := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(param.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(param.value))
	}
	return b.String()
}

func cloneParams(params []queryParam) []queryParam {
	cloned := make([]queryParam, len(params))
	copy(cloned, params)
	return cloned
}

func getParam(params []queryParam, key string) string {
	for _, param := range params {
		if param.key == key {
			return param.value
		}
	}
	return ""
}

// setParam overwrites the parameter in place, or appends it when the
// base link did not carry it.
func setParam(params []queryParam, key, value string) []queryParam {
	for i, param := range params {
		if param.key == key {
			params[i].value = value
			return params
		}
	}
	return append(params, queryParam{key: key, value: value})
}

func removeParam(params []queryParam, key string) []queryParam {
	kept := params[:0]
	for _, param := range params {
		if param.key != key {
			kept = append(kept, param)
		}
	}
	return kept
}

func rebuildURL(base *url.URL, params []queryParam) string {
	derived := *base
	derived.RawQuery = encodeQuery(params)
	return derived.String()
}
