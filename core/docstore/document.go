package docstore

import "encoding/json"

// DocType identifies the business document kind. The set is closed.
type DocType string

const (
	DocTypePO  DocType = "PO"
	DocTypeINV DocType = "INV"
	DocTypeGRN DocType = "GRN"
	DocTypeDO  DocType = "DO"
	DocTypeCN  DocType = "CN"
	DocTypeBOM DocType = "BOM"
)

// IsValid reports whether the document type is one of the closed set.
func (t DocType) IsValid() bool {
	switch t {
	case DocTypePO, DocTypeINV, DocTypeGRN, DocTypeDO, DocTypeCN, DocTypeBOM:
		return true
	default:
		return false
	}
}

// Document is a typed, immutable business record. Fields holds everything
// except the id and type, exactly as ingested (JSON object semantics: nested
// maps, []any arrays, float64 numbers).
type Document struct {
	ID     string
	Type   DocType
	Fields map[string]any
}

// documentEnvelope is the flat wire form: id and type live alongside the
// business fields in one JSON object.
type documentEnvelope map[string]any

// MarshalJSON flattens the document back into its ingested wire form.
func (d Document) MarshalJSON() ([]byte, error) {
	env := make(documentEnvelope, len(d.Fields)+2)
	for k, v := range d.Fields {
		env[k] = v
	}
	env["id"] = d.ID
	env["type"] = string(d.Type)
	return json.Marshal(env)
}

// UnmarshalJSON lifts id and type out of the flat record and keeps the rest
// as the field map.
func (d *Document) UnmarshalJSON(data []byte) error {
	var env documentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	d.Fields = make(map[string]any, len(env))
	for k, v := range env {
		switch k {
		case "id":
			if s, ok := v.(string); ok {
				d.ID = s
			}
		case "type":
			if s, ok := v.(string); ok {
				d.Type = DocType(s)
			}
		default:
			d.Fields[k] = v
		}
	}
	return nil
}

// Queue is a named, homogeneous collection of document ids. Membership is
// immutable from the engine's point of view.
type Queue struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	DocType     DocType  `json:"docType"`
	DocumentIDs []string `json:"documentIds"`
}
