package picture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// CaptureOption is one capture tool option, rendered as a flag and a value.
type CaptureOption struct {
	Key   string
	Value string
}

// CaptureOptions keeps options in the order they appeared in the request
// body, since that order is the order of the flags handed to the tool.
type CaptureOptions []CaptureOption

// Set replaces the value of an existing key in place, or appends it.
func (o *CaptureOptions) Set(key string, value string) {
	for i := range *o {
		if (*o)[i].Key == key {
			(*o)[i].Value = value
			return
		}
	}
	*o = append(*o, CaptureOption{Key: key, Value: value})
}

// Flags renders each option as "-key value" for keys of three characters or
// fewer and "--key value" otherwise. Values are passed through verbatim.
func (o CaptureOptions) Flags() []string {
	flags := make([]string, 0, 2*len(o))
	for _, opt := range o {
		dashes := "--"
		if utf8.RuneCountInString(opt.Key) <= 3 {
			dashes = "-"
		}
		flags = append(flags, dashes+opt.Key, opt.Value)
	}
	return flags
}

func (o *CaptureOptions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode options: %w", err)
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("options must be an object")
	}

	opts := CaptureOptions{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to decode options: %w", err)
		}
		key := keyTok.(string)
		if key == "" {
			return fmt.Errorf("option names cannot be empty")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to decode option '%s': %w", key, err)
		}
		value, err := optionValue(raw)
		if err != nil {
			return fmt.Errorf("option '%s': %w", key, err)
		}
		opts.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to decode options: %w", err)
	}
	*o = opts
	return nil
}

func (o CaptureOptions) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBufferString("{")
	for i, opt := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(opt.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(opt.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// optionValue accepts flat strings, numbers and booleans. Numbers keep their
// literal text so "0.50" reaches the tool unchanged.
func optionValue(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("missing value")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("value must be a string or number")
	case 'n':
		return "", fmt.Errorf("value cannot be null")
	default:
		return string(trimmed), nil
	}
}
