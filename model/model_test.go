package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const classifiedFixture = `{
  "resources": [
    {
      "japanese": "顧客",
      "english": "Customer",
      "attributes": [
        {"japanese": "顧客ID", "english": "CustomerID", "type": "INT", "is_primary_key": true},
        {"japanese": "顧客名", "english": "CustomerName", "type": "VARCHAR", "length": 100}
      ]
    }
  ],
  "events": [
    {
      "japanese": "請求書送付",
      "english": "InvoiceSend",
      "datetime_attribute": "送付日時",
      "related_resource": "Customer",
      "attributes": [
        {"japanese": "送付ID", "english": "InvoiceSendID", "type": "INT", "is_primary_key": true},
        {"japanese": "送付日時", "english": "SendDate", "type": "TIMESTAMP"}
      ]
    }
  ],
  "junctions": []
}`

func TestClassifiedUnmarshal(t *testing.T) {
	var c Classified
	require.NoError(t, json.Unmarshal([]byte(classifiedFixture), &c))

	require.Len(t, c.Resources, 1)
	require.Len(t, c.Events, 1)

	customer := c.Resources[0]
	assert.Equal(t, "Customer", customer.English)
	require.NotNil(t, customer.PrimaryKey())
	assert.Equal(t, "CustomerID", customer.PrimaryKey().English)
	assert.Equal(t, 100, customer.Attributes[1].Length)

	event := c.Events[0]
	assert.Equal(t, "Customer", event.RelatedResource)
	assert.True(t, event.HasDatetime())

	// A label reference resolves against the entity's own attributes.
	attr := event.DatetimeAttr()
	require.NotNil(t, attr)
	assert.Equal(t, "SendDate", attr.English)
}

func TestDatetimeRefObjectForm(t *testing.T) {
	var e Entity
	raw := `{
	  "japanese": "プロジェクト開始",
	  "english": "ProjectStart",
	  "datetime_attribute": {"japanese": "開始日時", "english": "StartDate", "type": "TIMESTAMP"},
	  "attributes": []
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	attr := e.DatetimeAttr()
	require.NotNil(t, attr)
	assert.Equal(t, "StartDate", attr.English)
	assert.Equal(t, "TIMESTAMP", attr.Type)
}

func TestDatetimeRefUnresolvableLabel(t *testing.T) {
	ref := &DatetimeRef{Label: "記録日時"}
	attr := ref.Resolve(nil)
	require.NotNil(t, attr)
	assert.Equal(t, "記録日時", attr.English)
	assert.Equal(t, "TIMESTAMP", attr.Type)
}

func TestEntityHelpers(t *testing.T) {
	e := Entity{
		English: "Order",
		Attributes: []Attribute{
			{English: "OrderID", IsPrimaryKey: true},
			{English: "Amount"},
		},
	}
	assert.NotNil(t, e.Attribute("Amount"))
	assert.Nil(t, e.Attribute("Missing"))
	assert.Nil(t, (&Entity{}).PrimaryKey())
	assert.Nil(t, (&Entity{}).DatetimeAttr())
}

func TestModelUnmarshal(t *testing.T) {
	raw := `{
	  "entities": {"resources": [], "events": []},
	  "relationships": [
	    {
	      "id": "rel_001",
	      "from_entity": "Customer",
	      "to_entity": "Invoice",
	      "cardinality": "1:N",
	      "relationship_type": "has",
	      "foreign_key": {"table": "Invoice", "column": "CustomerID", "references": "Customer.CustomerID"}
	    }
	  ],
	  "cross_entities": []
	}`
	var m Model
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	require.Len(t, m.Relationships, 1)
	assert.Equal(t, "Customer.CustomerID", m.Relationships[0].ForeignKey.References)
}
