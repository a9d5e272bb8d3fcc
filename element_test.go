package mdx

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestElementScalarRoundTrip(t *testing.T) {
	el, err := NewTestElement("Quote", []byte(`{
		"symbol": "IBM US Equity",
		"bid": 99.25,
		"size": 300,
		"volume": 8589934592,
		"halted": false
	}`))
	if err != nil {
		t.Fatalf("NewTestElement: %v", err)
	}

	if got, err := Get[string](el, "symbol"); err != nil || got != "IBM US Equity" {
		t.Errorf("Get[string](symbol) = %q, %v", got, err)
	}
	if got, err := Get[float64](el, "bid"); err != nil || got != 99.25 {
		t.Errorf("Get[float64](bid) = %v, %v", got, err)
	}
	if got, err := Get[int32](el, "size"); err != nil || got != 300 {
		t.Errorf("Get[int32](size) = %v, %v", got, err)
	}
	if got, err := Get[int64](el, "volume"); err != nil || got != 8589934592 {
		t.Errorf("Get[int64](volume) = %v, %v", got, err)
	}
	if got, err := Get[bool](el, "halted"); err != nil || got {
		t.Errorf("Get[bool](halted) = %v, %v", got, err)
	}
}

func TestElementNumericWidening(t *testing.T) {
	el, err := NewTestElement("n", []byte(`{"size": 300, "big": 8589934592}`))
	if err != nil {
		t.Fatalf("NewTestElement: %v", err)
	}

	if got, err := Get[int64](el, "size"); err != nil || got != 300 {
		t.Errorf("int32 field as int64 = %v, %v", got, err)
	}
	if got, err := Get[float64](el, "size"); err != nil || got != 300 {
		t.Errorf("int32 field as float64 = %v, %v", got, err)
	}
	if _, err := Get[int32](el, "big"); err == nil {
		t.Errorf("int64 field beyond 32 bits read as int32 without error")
	}
	if got, err := Get[string](el, "size"); err != nil || got != "300" {
		t.Errorf("int32 field as string = %q, %v", got, err)
	}
}

func TestElementMissingField(t *testing.T) {
	el, err := NewTestElement("m", []byte(`{"present": 1}`))
	if err != nil {
		t.Fatalf("NewTestElement: %v", err)
	}
	_, gerr := Get[int32](el, "absent")
	if gerr == nil {
		t.Fatalf("Get on absent field succeeded")
	}
	var nf *NotFoundError
	if !errors.As(gerr, &nf) || nf.Name != "absent" {
		t.Errorf("Get on absent field = %v, want NotFoundError{absent}", gerr)
	}
	if el.HasElement("absent") {
		t.Errorf("HasElement(absent) = true")
	}
	if !el.HasElement("present") {
		t.Errorf("HasElement(present) = false")
	}
}

func TestElementArrays(t *testing.T) {
	el, err := NewTestElement("a", []byte(`{"fields": ["BID", "ASK", "LAST_PRICE"]}`))
	if err != nil {
		t.Fatalf("NewTestElement: %v", err)
	}
	arr, err := el.GetElement("fields")
	if err != nil {
		t.Fatalf("GetElement(fields): %v", err)
	}
	if !arr.IsArray() || arr.NumValues() != 3 {
		t.Fatalf("fields: isArray=%v numValues=%d", arr.IsArray(), arr.NumValues())
	}

	got, err := GetSlice[string](el, "fields")
	if err != nil {
		t.Fatalf("GetSlice: %v", err)
	}
	want := []string{"BID", "ASK", "LAST_PRICE"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetSlice mismatch (-want +got):\n%s", diff)
	}

	if err := Append(arr, "VOLUME"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if v, err := GetAt[string](arr, 3); err != nil || v != "VOLUME" {
		t.Errorf("GetAt(3) after append = %q, %v", v, err)
	}
	if _, err := GetAt[string](arr, 10); err == nil {
		t.Errorf("GetAt(10) out of range succeeded")
	}
}

func TestElementSetCreatesFields(t *testing.T) {
	el, err := NewTestElement("req", []byte(`{}`))
	if err != nil {
		t.Fatalf("NewTestElement: %v", err)
	}
	if err := Set(el, "security", "IBM US Equity"); err != nil {
		t.Fatalf("Set(security): %v", err)
	}
	if err := Set(el, "maxPoints", int32(100)); err != nil {
		t.Fatalf("Set(maxPoints): %v", err)
	}
	if got, err := Get[string](el, "security"); err != nil || got != "IBM US Equity" {
		t.Errorf("Get(security) = %q, %v", got, err)
	}
	if got, err := Get[int32](el, "maxPoints"); err != nil || got != 100 {
		t.Errorf("Get(maxPoints) = %v, %v", got, err)
	}

	// second write overwrites in place
	if err := Set(el, "maxPoints", int32(500)); err != nil {
		t.Fatalf("Set(maxPoints) again: %v", err)
	}
	if got, _ := Get[int32](el, "maxPoints"); got != 500 {
		t.Errorf("Get(maxPoints) after overwrite = %v", got)
	}
}

func checkPrimitiveRoundTrip[V HashableValue](t *testing.T, el Element, name string, first, second V) {
	t.Helper()
	if err := Set(el, name, first); err != nil {
		t.Fatalf("Set(%s): %v", name, err)
	}
	child, err := el.GetElement(name)
	if err != nil {
		t.Fatalf("GetElement(%s): %v", name, err)
	}
	if got, err := GetAt[V](child, 0); err != nil || got != first {
		t.Errorf("GetAt(%s) = %v, %v, want %v", name, got, err, first)
	}
	if err := SetAt(child, 0, second); err != nil {
		t.Fatalf("SetAt(%s): %v", name, err)
	}
	if got, err := GetAt[V](child, 0); err != nil || got != second {
		t.Errorf("GetAt(%s) after SetAt = %v, %v, want %v", name, got, err, second)
	}
}

func TestElementPrimitiveRoundTrips(t *testing.T) {
	el, err := NewTestElement("req", []byte(`{}`))
	if err != nil {
		t.Fatalf("NewTestElement: %v", err)
	}
	checkPrimitiveRoundTrip(t, el, "halted", true, false)
	checkPrimitiveRoundTrip(t, el, "size", int32(300), int32(-7))
	checkPrimitiveRoundTrip(t, el, "volume", int64(8589934592), int64(1))
	checkPrimitiveRoundTrip(t, el, "ratio", float32(0.5), float32(-2.25))
	checkPrimitiveRoundTrip(t, el, "bid", 99.25, 100.125)
	checkPrimitiveRoundTrip(t, el, "symbol", "IBM US Equity", "MSFT US Equity")
}

func TestElementComplexArray(t *testing.T) {
	el, err := NewTestElement("resp", []byte(`{
		"securityData": [
			{"security": "IBM US Equity", "sequenceNumber": 0},
			{"security": "MSFT US Equity", "sequenceNumber": 1}
		]
	}`))
	if err != nil {
		t.Fatalf("NewTestElement: %v", err)
	}
	arr, err := el.GetElement("securityData")
	if err != nil {
		t.Fatalf("GetElement: %v", err)
	}
	if !arr.IsArray() || arr.Datatype() != DatatypeSequence {
		t.Fatalf("securityData: isArray=%v datatype=%v", arr.IsArray(), arr.Datatype())
	}
	if arr.IsComplexType() {
		t.Errorf("array of sequences reports IsComplexType")
	}
	var secs []string
	for i := 0; i < arr.NumValues(); i++ {
		entry, err := GetAt[Element](arr, i)
		if err != nil {
			t.Fatalf("GetAt[Element](%d): %v", i, err)
		}
		s, err := Get[string](entry, "security")
		if err != nil {
			t.Fatalf("entry %d security: %v", i, err)
		}
		secs = append(secs, s)
	}
	want := []string{"IBM US Equity", "MSFT US Equity"}
	if diff := cmp.Diff(want, secs); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestGetSetDeduplicates(t *testing.T) {
	el, err := NewTestElement("s", []byte(`{"exchanges": ["NYSE", "NASDAQ", "NYSE"]}`))
	if err != nil {
		t.Fatalf("NewTestElement: %v", err)
	}
	got, err := GetSet[string](el, "exchanges")
	if err != nil {
		t.Fatalf("GetSet: %v", err)
	}
	want := map[string]struct{}{"NYSE": {}, "NASDAQ": {}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetSet mismatch (-want +got):\n%s", diff)
	}
}

func TestElementFieldOrderPreserved(t *testing.T) {
	el, err := NewTestElement("o", []byte(`{"z": 1, "a": 2, "m": 3}`))
	if err != nil {
		t.Fatalf("NewTestElement: %v", err)
	}
	var names []string
	for child := range el.Elements() {
		names = append(names, child.Name().String())
	}
	want := []string{"z", "a", "m"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}
}
