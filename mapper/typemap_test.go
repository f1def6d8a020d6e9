package mapper

import "testing"

func TestMapStorageType(t *testing.T) {
	tests := []struct {
		storage string
		want    WireType
	}{
		{"INT", WireType{Type: "integer"}},
		{"BIGINT", WireType{Type: "integer"}},
		{"SMALLINT", WireType{Type: "integer"}},
		{"DECIMAL", WireType{Type: "number"}},
		{"FLOAT", WireType{Type: "number"}},
		{"VARCHAR", WireType{Type: "string"}},
		{"varchar", WireType{Type: "string"}},
		{"TEXT", WireType{Type: "string"}},
		{"DATE", WireType{Type: "string", Format: "date"}},
		{"TIMESTAMP", WireType{Type: "string", Format: "date-time"}},
		{"BOOLEAN", WireType{Type: "boolean"}},
		{"GEOMETRY", WireType{Type: "string"}},
		{"", WireType{Type: "string"}},
	}

	for _, tt := range tests {
		t.Run(tt.storage, func(t *testing.T) {
			if got := MapStorageType(tt.storage); got != tt.want {
				t.Errorf("MapStorageType(%q) = %+v, want %+v", tt.storage, got, tt.want)
			}
		})
	}
}

func TestPropertySchema(t *testing.T) {
	s := propertySchema("VARCHAR", "顧客名", 100)
	if s.Type != "string" || s.MaxLength != 100 || s.Description != "顧客名" {
		t.Errorf("unexpected schema: %+v", s)
	}

	s = propertySchema("TEXT", "備考", 100)
	if s.MaxLength != 0 {
		t.Errorf("TEXT should not carry maxLength, got %d", s.MaxLength)
	}

	s = propertySchema("TIMESTAMP", "作成日時", 0)
	if s.Format != "date-time" {
		t.Errorf("TIMESTAMP format = %q, want date-time", s.Format)
	}
}
