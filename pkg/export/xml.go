package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// DefaultIndent is the indentation used by the experiment runtime's own
// configuration files.
const DefaultIndent = "\t"

// MarshalXML writes each key as a child element of start.
func (f *Fields) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, k := range f.keys {
		if err := encodeValue(e, k, f.values[k]); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	return e.EncodeToken(start.End())
}

func encodeValue(e *xml.Encoder, key string, v any) error {
	start := xml.StartElement{Name: xml.Name{Local: key}}
	switch v := v.(type) {
	case *Fields:
		if v == nil {
			return encodeText(e, start, "")
		}
		return e.EncodeElement(v, start)
	case []*Fields:
		for _, item := range v {
			if err := encodeValue(e, key, item); err != nil {
				return err
			}
		}
		return nil
	case []string:
		for _, s := range v {
			if err := encodeText(e, start, s); err != nil {
				return err
			}
		}
		return nil
	}

	text, ok := formatScalar(v)
	if !ok {
		return fmt.Errorf("unsupported value type %T", v)
	}
	return encodeText(e, start, text)
}

func encodeText(e *xml.Encoder, start xml.StartElement, text string) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if text != "" {
		if err := e.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// WriteXML encodes f as the single root element named root, preceded by
// the standard XML header. An empty indent disables pretty printing.
func WriteXML(w io.Writer, root string, f *Fields, indent string) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if indent != "" {
		enc.Indent("", indent)
	}
	if err := enc.EncodeElement(f, xml.StartElement{Name: xml.Name{Local: root}}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// MarshalXML is the in-memory form of [WriteXML].
func MarshalXML(root string, f *Fields, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXML(&buf, root, f, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
