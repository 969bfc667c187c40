package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
)

// NullSentinel is the literal value the API expects for a cleared optional
// field on a full-replacement update.
const NullSentinel = "null"

// Mode tells a Form how to encode empty optional fields.
type Mode int

const (
	// ModeCreate omits empty optional fields.
	ModeCreate Mode = iota
	// ModeUpdate sends every optional field, using NullSentinel for cleared ones.
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "create"
}

type formField struct {
	name  string
	value string
}

type filePart struct {
	field    string
	filename string
	content  io.Reader
}

// Form is a multipart payload for create and update calls.
type Form struct {
	mode   Mode
	fields []formField
	file   *filePart
}

// NewForm creates an empty form for mode.
func NewForm(mode Mode) *Form {
	return &Form{mode: mode}
}

// Mode returns the form's encoding mode.
func (f *Form) Mode() Mode {
	return f.mode
}

// Set writes a required field. A repeated name replaces the earlier value.
func (f *Form) Set(name, value string) {
	for i := range f.fields {
		if f.fields[i].name == name {
			f.fields[i].value = value
			return
		}
	}
	f.fields = append(f.fields, formField{name: name, value: value})
}

// SetOptional writes an optional field. A nil or blank value is omitted in
// create mode and sent as NullSentinel in update mode.
func (f *Form) SetOptional(name string, value *string) {
	if value != nil && strings.TrimSpace(*value) != "" {
		f.Set(name, *value)
		return
	}
	f.Clear(name)
}

// Clear marks name as cleared: omitted on create, NullSentinel on update.
func (f *Form) Clear(name string) {
	if f.mode == ModeUpdate {
		f.Set(name, NullSentinel)
		return
	}
	f.Remove(name)
}

// Remove drops name from the form entirely.
func (f *Form) Remove(name string) {
	for i := range f.fields {
		if f.fields[i].name == name {
			f.fields = append(f.fields[:i], f.fields[i+1:]...)
			return
		}
	}
}

// SetJSON writes v encoded as JSON into a single field. A nil v is treated
// as a cleared optional field.
func (f *Form) SetJSON(name string, v any) error {
	if v == nil {
		f.Clear(name)
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if string(b) == "null" {
		f.Clear(name)
		return nil
	}
	f.Set(name, string(b))
	return nil
}

// Attach adds a file part. Only one file is supported per form.
func (f *Form) Attach(field, filename string, content io.Reader) {
	f.file = &filePart{field: field, filename: filename, content: content}
}

// HasFile reports whether the form carries a file upload.
func (f *Form) HasFile() bool {
	return f.file != nil
}

// Value returns the encoded value of name and whether it is present.
func (f *Form) Value(name string) (string, bool) {
	for _, fld := range f.fields {
		if fld.name == name {
			return fld.value, true
		}
	}
	return "", false
}

// Encode writes the multipart body and returns it with its content type.
func (f *Form) Encode() (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", fld.name, err)
		}
	}

	if f.file != nil {
		part, err := w.CreateFormFile(f.file.field, f.file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, f.file.content); err != nil {
			return nil, "", fmt.Errorf("copy file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
