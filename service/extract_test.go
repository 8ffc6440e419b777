package service

import (
	"errors"
	"testing"
	"time"

	"github.com/IceWhaleTech/CasaOS-EPCISService/model"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/timeparser"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentHead = `<epcis:EPCISDocument xmlns:epcis="urn:epcglobal:epcis:xsd:1" xmlns:acme="http://acme.example.com/epcis"><EPCISBody><EventList>`

const documentTail = `</EventList></EPCISBody></epcis:EPCISDocument>`

func extractOne(t *testing.T, event string) (model.StructuredEvent, error) {
	t.Helper()

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(documentHead+event+documentTail))

	list := doc.FindElement("//EventList")
	require.NotNil(t, list)
	require.Len(t, list.ChildElements(), 1)

	return NewEventExtractor().Extract(doc, list.ChildElements()[0])
}

func TestExtractObjectEvent(t *testing.T) {
	ev, err := extractOne(t, `<ObjectEvent>
		<!-- scanned at dock 4 -->
		<eventTime>2007-07-01T00:00:00.000+02:00</eventTime>
		<eventTimeZoneOffset>+02:00</eventTimeZoneOffset>
		<epcList>
			<epc>urn:epc:id:sgtin:0614141.107346.2017</epc>
			<epc>urn:epc:id:sgtin:0614141.107346.2018</epc>
		</epcList>
		<action>ADD</action>
		<bizStep>urn:x:shipping</bizStep>
		<disposition>urn:x:in_transit</disposition>
		<readPoint><id>urn:epc:id:sgln:0614141.07346.1234</id></readPoint>
		<bizLocation><id>urn:epc:id:sgln:0614141.00888.0</id></bizLocation>
		<bizTransactionList>
			<bizTransaction type="urn:epcglobal:cbv:btt:po">http://transaction.acme.com/po/12345678</bizTransaction>
			<bizTransaction>http://transaction.acme.com/desadv/1</bizTransaction>
		</bizTransactionList>
	</ObjectEvent>`)
	require.NoError(t, err)

	obj, ok := ev.(*model.ObjectEvent)
	require.True(t, ok)

	assert.Equal(t, model.KindObjectEvent, obj.Kind())
	assert.True(t, time.Date(2007, 6, 30, 22, 0, 0, 0, time.UTC).Equal(obj.EventTime))
	assert.Equal(t, "+02:00", obj.EventTimeZoneOffset)
	assert.Equal(t, model.ActionAdd, obj.Action)
	assert.Equal(t, []string{"urn:epc:id:sgtin:0614141.107346.2017", "urn:epc:id:sgtin:0614141.107346.2018"}, obj.EPCs)
	assert.Equal(t, "urn:x:shipping", obj.BizStep)
	assert.Equal(t, "urn:x:in_transit", obj.Disposition)
	assert.Equal(t, "urn:epc:id:sgln:0614141.07346.1234", obj.ReadPoint)
	assert.Equal(t, "urn:epc:id:sgln:0614141.00888.0", obj.BizLocation)
	assert.Equal(t, []model.BizTransaction{
		{Type: "urn:epcglobal:cbv:btt:po", ID: "http://transaction.acme.com/po/12345678"},
		{ID: "http://transaction.acme.com/desadv/1"},
	}, obj.BizTransactions)
	assert.Nil(t, obj.RecordTime)
}

func TestExtractAggregationEvent(t *testing.T) {
	ev, err := extractOne(t, `<AggregationEvent>
		<eventTime>2007-07-01T00:00:00Z</eventTime>
		<parentID>urn:epc:id:sscc:0614141.1234567890</parentID>
		<childEPCs><epc>urn:epc:id:sgtin:0614141.107346.2017</epc></childEPCs>
		<action>OBSERVE</action>
	</AggregationEvent>`)
	require.NoError(t, err)

	agg, ok := ev.(*model.AggregationEvent)
	require.True(t, ok)
	assert.Equal(t, "urn:epc:id:sscc:0614141.1234567890", agg.ParentID)
	assert.Equal(t, []string{"urn:epc:id:sgtin:0614141.107346.2017"}, agg.ChildEPCs)
	assert.Equal(t, model.ActionObserve, agg.Action)
}

func TestExtractQuantityEventDropsUnsupportedFields(t *testing.T) {
	ev, err := extractOne(t, `<QuantityEvent>
		<eventTime>2007-07-01T00:00:00Z</eventTime>
		<epcClass>urn:epc:idpat:sgtin:0614141.107346.*</epcClass>
		<quantity>200</quantity>
		<epcList><epc>urn:epc:id:sgtin:0614141.107346.2017</epc></epcList>
		<action>ADD</action>
	</QuantityEvent>`)
	require.NoError(t, err)

	q, ok := ev.(*model.QuantityEvent)
	require.True(t, ok)
	assert.Equal(t, "urn:epc:idpat:sgtin:0614141.107346.*", q.EPCClass)
	require.NotNil(t, q.Quantity)
	assert.Equal(t, int64(200), *q.Quantity)
}

func TestExtractTransactionEvent(t *testing.T) {
	ev, err := extractOne(t, `<TransactionEvent>
		<eventTime>2007-07-01T00:00:00Z</eventTime>
		<bizTransactionList><bizTransaction type="urn:x:po">urn:x:po:1</bizTransaction></bizTransactionList>
		<epcList><epc>urn:epc:id:sgtin:0614141.107346.2017</epc></epcList>
		<action>DELETE</action>
	</TransactionEvent>`)
	require.NoError(t, err)

	tx, ok := ev.(*model.TransactionEvent)
	require.True(t, ok)
	assert.Equal(t, model.ActionDelete, tx.Action)
	assert.Len(t, tx.BizTransactions, 1)
}

func TestExtractExtensions(t *testing.T) {
	ev, err := extractOne(t, `<ObjectEvent>
		<eventTime>2007-07-01T00:00:00Z</eventTime>
		<action>OBSERVE</action>
		<acme:temperature>21</acme:temperature>
		<acme:humidity>0.45</acme:humidity>
		<acme:sealed>2007-06-30T12:30:00.000Z</acme:sealed>
		<acme:batch>B-17</acme:batch>
		<other:note xmlns:other="http://other.example.com">fragile</other:note>
	</ObjectEvent>`)
	require.NoError(t, err)

	exts := ev.Header().Extensions
	require.Len(t, exts, 5)

	assert.Equal(t, model.ExtensionField{Prefix: "acme", Namespace: "http://acme.example.com/epcis", Name: "temperature", Value: model.IntValue(21)}, exts[0])
	assert.Equal(t, model.FloatValue(0.45), exts[1].Value)
	sealed, ok := exts[2].Value.(model.TimeValue)
	require.True(t, ok)
	assert.True(t, time.Date(2007, 6, 30, 12, 30, 0, 0, time.UTC).Equal(time.Time(sealed)))
	assert.Equal(t, model.StringValue("B-17"), exts[3].Value)

	assert.Equal(t, "other", exts[4].Prefix)
	assert.Equal(t, "http://other.example.com", exts[4].Namespace)
	assert.Equal(t, model.StringValue("fragile"), exts[4].Value)
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name  string
		event string
		err   error
		field string
	}{
		{
			name:  "empty event",
			event: `<ObjectEvent></ObjectEvent>`,
			err:   ErrEmptyEvent,
		},
		{
			name:  "whitespace only",
			event: "<ObjectEvent>\n  </ObjectEvent>",
			err:   ErrEmptyEvent,
		},
		{
			name:  "unknown event kind",
			event: `<ShipmentEvent><eventTime>2007-07-01T00:00:00Z</eventTime></ShipmentEvent>`,
			err:   ErrUnknownEventKind,
		},
		{
			name:  "invalid action",
			event: `<ObjectEvent><eventTime>2007-07-01T00:00:00Z</eventTime><action>MOVE</action></ObjectEvent>`,
			err:   ErrInvalidAction,
			field: "action",
		},
		{
			name:  "unknown child in epcList",
			event: `<ObjectEvent><eventTime>2007-07-01T00:00:00Z</eventTime><epcList><item>urn:x:1</item></epcList></ObjectEvent>`,
			err:   ErrUnknownChildTag,
			field: "epcList",
		},
		{
			name:  "unknown child in bizTransactionList",
			event: `<ObjectEvent><eventTime>2007-07-01T00:00:00Z</eventTime><bizTransactionList><tx>urn:x:1</tx></bizTransactionList></ObjectEvent>`,
			err:   ErrUnknownChildTag,
			field: "bizTransactionList",
		},
		{
			name:  "unknown field without prefix",
			event: `<ObjectEvent><eventTime>2007-07-01T00:00:00Z</eventTime><colour>red</colour></ObjectEvent>`,
			err:   ErrUnknownFieldTag,
			field: "colour",
		},
		{
			name:  "invalid eventTime",
			event: `<ObjectEvent><eventTime>2007-13-01T00:00:00Z</eventTime></ObjectEvent>`,
			err:   ErrInvalidTimestamp,
			field: "eventTime",
		},
		{
			name:  "missing eventTime",
			event: `<ObjectEvent><action>ADD</action></ObjectEvent>`,
			err:   ErrInvalidTimestamp,
			field: "eventTime",
		},
		{
			name:  "invalid quantity",
			event: `<QuantityEvent><eventTime>2007-07-01T00:00:00Z</eventTime><quantity>many</quantity></QuantityEvent>`,
			err:   ErrInvalidQuantity,
			field: "quantity",
		},
		{
			name:  "bizStep is not a uri",
			event: `<ObjectEvent><eventTime>2007-07-01T00:00:00Z</eventTime><bizStep>shipping</bizStep></ObjectEvent>`,
			err:   ErrInvalidURI,
			field: "bizStep",
		},
		{
			name:  "empty epc",
			event: `<ObjectEvent><eventTime>2007-07-01T00:00:00Z</eventTime><epcList><epc>urn:epc:id:sgtin:0614141.107346.2017</epc><epc/></epcList></ObjectEvent>`,
			err:   ErrInvalidURI,
			field: "epcList",
		},
		{
			name:  "blank child epc",
			event: `<AggregationEvent><eventTime>2007-07-01T00:00:00Z</eventTime><childEPCs><epc>  </epc></childEPCs></AggregationEvent>`,
			err:   ErrInvalidURI,
			field: "childEPCs",
		},
		{
			name:  "empty bizTransaction id",
			event: `<ObjectEvent><eventTime>2007-07-01T00:00:00Z</eventTime><bizTransactionList><bizTransaction type="urn:x:po"></bizTransaction></bizTransactionList></ObjectEvent>`,
			err:   ErrInvalidURI,
			field: "bizTransaction",
		},
		{
			name:  "readPoint without id",
			event: `<ObjectEvent><eventTime>2007-07-01T00:00:00Z</eventTime><readPoint></readPoint></ObjectEvent>`,
			err:   ErrInvalidURI,
			field: "readPoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := extractOne(t, tt.event)
			assert.Nil(t, ev)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), err.Error())

			var xerr *ExtractionError
			require.True(t, errors.As(err, &xerr))
			assert.Equal(t, tt.field, xerr.Field)
			assert.NotEmpty(t, xerr.Event)
		})
	}
}

func TestExtractInvalidTimestampKeepsPosition(t *testing.T) {
	_, err := extractOne(t, `<ObjectEvent><eventTime>2007-13-01T00:00:00Z</eventTime></ObjectEvent>`)

	var perr *timeparser.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 5, perr.Pos)
}

func TestTypedValue(t *testing.T) {
	assert.Equal(t, model.IntValue(-7), typedValue("-7"))
	assert.Equal(t, model.FloatValue(1.5e3), typedValue("1.5e3"))
	assert.Equal(t, model.StringValue("NaN"), typedValue("NaN"))
	assert.Equal(t, model.StringValue("Inf"), typedValue("Inf"))
	assert.Equal(t, model.StringValue("2007-07-01"), typedValue("2007-07-01"))
	assert.Equal(t, model.StringValue(""), typedValue(""))

	_, ok := typedValue("2007-07-01T00:00:00Z").(model.TimeValue)
	assert.True(t, ok)
}
