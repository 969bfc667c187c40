package request

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Null is the literal a client sends on update to clear an optional field.
const Null = "null"

// Form reads the text fields of a multipart (or urlencoded) entity form.
// Absent, blank and "null" values all read as "not set"; updates replace
// the whole record, so an unset optional field is cleared.
type Form struct {
	values map[string][]string
}

// ParseForm parses the request body of c, keeping at most maxMemory bytes of
// file parts in memory.
func ParseForm(c *gin.Context, maxMemory int64) (*Form, error) {
	req := c.Request
	if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/") {
		if err := req.ParseMultipartForm(maxMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, BadRequest("request body is too large", err)
			}
			return nil, BadRequest("invalid multipart form", err)
		}
		return &Form{values: req.MultipartForm.Value}, nil
	}
	if err := req.ParseForm(); err != nil {
		return nil, BadRequest("invalid form body", err)
	}
	return &Form{values: req.PostForm}, nil
}

// NewForm wraps already parsed values; used by tests.
func NewForm(values map[string][]string) *Form {
	return &Form{values: values}
}

func (f *Form) raw(name string) (string, bool) {
	vs := f.values[name]
	if len(vs) == 0 {
		return "", false
	}
	v := strings.TrimSpace(vs[0])
	if v == "" || v == Null {
		return "", false
	}
	return v, true
}

// Has reports whether name carries a value.
func (f *Form) Has(name string) bool {
	_, ok := f.raw(name)
	return ok
}

// String returns the trimmed value of name, or "".
func (f *Form) String(name string) string {
	v, _ := f.raw(name)
	return v
}

// Optional returns nil when name is unset.
func (f *Form) Optional(name string) *string {
	v, ok := f.raw(name)
	if !ok {
		return nil
	}
	return &v
}

// Int parses name as an integer; unset reads as 0.
func (f *Form) Int(name string) (int, error) {
	v, ok := f.raw(name)
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, BadRequest(name+" must be an integer", err)
	}
	return n, nil
}

// OptionalFloat parses name as a number; unset reads as nil.
func (f *Form) OptionalFloat(name string) (*float64, error) {
	v, ok := f.raw(name)
	if !ok {
		return nil, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, BadRequest(name+" must be a number", err)
	}
	return &n, nil
}

// JSON decodes name into dst. It reports false when name is unset.
func (f *Form) JSON(name string, dst any) (bool, error) {
	v, ok := f.raw(name)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		return false, BadRequest(name+" must be valid JSON", err)
	}
	return true, nil
}

// StringSet decodes a JSON array of ids, trimming and dropping blanks and
// duplicates. An unset field yields an empty slice.
func (f *Form) StringSet(name string) ([]string, error) {
	var raw []string
	if _, err := f.JSON(name, &raw); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}
