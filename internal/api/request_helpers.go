package api

import (
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-viper/mapstructure/v2"
	"github.com/phrazzld/thrones-api/internal/domain"
)

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required")
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer")
	}
	return id, nil
}

// decodeQuery decodes the query string of r into dst, a pointer to a struct
// with mapstructure tags. Values are weakly typed, so "10" fills an int and
// "true" a bool. Integers are read in base 10 only. Empty values are treated as absent, leaving any default in
// dst untouched. The first parameter that fails to convert is reported as a
// ValidationError naming it.
func decodeQuery(r *http.Request, dst any) error {
	input := queryMap(r.URL.Query())
	if err := weakDecode(input, dst); err == nil {
		return nil
	}

	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := weakDecode(map[string]any{k: input[k]}, dst); err != nil {
			return domain.NewValidationError(k, "has an invalid value")
		}
	}
	return domain.NewValidationError("", "invalid query parameters")
}

func weakDecode(input map[string]any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		DecodeHook:       decimalIntHook,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// decimalIntHook parses strings bound for integer fields as plain base-10
// numbers. Without it the weak decoder accepts "0x10" and reads "010" as octal.
func decimalIntHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.ParseInt(data.(string), 10, to.Bits())
	default:
		return data, nil
	}
}

// queryMap keeps the first non-blank value of each parameter.
func queryMap(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k, vs := range values {
		for _, v := range vs {
			if strings.TrimSpace(v) != "" {
				out[k] = strings.TrimSpace(v)
				break
			}
		}
	}
	return out
}
