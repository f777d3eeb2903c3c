package amqp

import (
	"testing"
	"time"
)

func TestTransactionEventRoundTrip(t *testing.T) {
	e := NewTransactionEvent(42, ActionUpdated)
	if e.Timestamp.IsZero() {
		t.Fatal("event timestamp must be set")
	}

	body, err := e.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := TransactionEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != 42 || got.Action != ActionUpdated {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Timestamp.Sub(e.Timestamp) > time.Millisecond {
		t.Fatalf("timestamp drift: %v vs %v", got.Timestamp, e.Timestamp)
	}
}

func TestTransactionEventFromJSONMalformed(t *testing.T) {
	if _, err := TransactionEventFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
