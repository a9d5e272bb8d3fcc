package decode

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quantfold/mdx"
)

func testElement(t *testing.T, name, body string) mdx.Element {
	t.Helper()
	el, err := mdx.NewTestElement(name, []byte(body))
	if err != nil {
		t.Fatalf("NewTestElement(%s): %v", name, err)
	}
	return el
}

func TestDecodeSubscriptionStarted(t *testing.T) {
	el := testElement(t, "SubscriptionStarted", `{
		"exceptions": [
			{
				"fieldId": "field",
				"reason": {
					"source": "TestUtil",
					"errorCode": -1,
					"category": "CATEGORY",
					"description": "for testing",
					"subcategory": "SUBCATEGORY"
				}
			}
		],
		"resubscriptionId": 123,
		"streamIds": ["123", "456"],
		"receivedFrom": {"address": "12.34.56.78:8194"},
		"reason": "TestUtil"
	}`)

	type reason struct {
		Source      string `mdx:"source"`
		ErrorCode   int32  `mdx:"errorCode"`
		Category    string `mdx:"category"`
		Description string `mdx:"description"`
		Subcategory string `mdx:"subcategory"`
	}
	type exception struct {
		FieldID string `mdx:"fieldId"`
		Reason  reason `mdx:"reason"`
	}
	type receivedFrom struct {
		Address string `mdx:"address"`
	}
	type subscriptionStarted struct {
		Exceptions       []exception             `mdx:"exceptions"`
		ResubscriptionID int32                   `mdx:"resubscriptionId"`
		StreamIDs        []string                `mdx:"streamIds"`
		ReceivedFrom     FieldValue[receivedFrom] `mdx:"receivedFrom"`
		Reason           string                  `mdx:"reason"`
	}

	var got subscriptionStarted
	if err := FromElement(el, &got); err != nil {
		t.Fatalf("FromElement: %v", err)
	}

	want := subscriptionStarted{
		Exceptions: []exception{{
			FieldID: "field",
			Reason: reason{
				Source:      "TestUtil",
				ErrorCode:   -1,
				Category:    "CATEGORY",
				Description: "for testing",
				Subcategory: "SUBCATEGORY",
			},
		}},
		ResubscriptionID: 123,
		StreamIDs:        []string{"123", "456"},
		ReceivedFrom:     NewPresent(receivedFrom{Address: "12.34.56.78:8194"}),
		Reason:           "TestUtil",
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(FieldValue[receivedFrom]{})); diff != "" {
		t.Errorf("decoded value mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFieldValueMissing(t *testing.T) {
	el := testElement(t, "msg", `{"present": 5}`)

	type target struct {
		Present FieldValue[int32] `mdx:"present"`
		Absent  FieldValue[int32] `mdx:"absent"`
	}
	var got target
	if err := FromElement(el, &got); err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	if v, ok := got.Present.Get(); !ok || v != 5 {
		t.Errorf("Present = %v, %v", v, ok)
	}
	if got.Absent.IsPresent() {
		t.Errorf("Absent decoded as present")
	}
	if got.Absent.Or(7) != 7 {
		t.Errorf("Or(7) = %d", got.Absent.Or(7))
	}
}

func TestDecodeMissingFieldWithoutFieldValue(t *testing.T) {
	el := testElement(t, "msg", `{"present": 5}`)
	type target struct {
		Absent int32 `mdx:"absent"`
	}
	var got target
	err := FromElement(el, &got)
	if err == nil {
		t.Fatalf("FromElement succeeded with a missing required field")
	}
	var de *Error
	if !errors.As(err, &de) || de.Kind != ElementNotFoundAtField || de.Field != "absent" {
		t.Errorf("error = %v, want ElementNotFoundAtField on absent", err)
	}
}

func TestDecodeOptionalPointerField(t *testing.T) {
	el := testElement(t, "msg", `{"a": 1}`)
	type target struct {
		A *int32 `mdx:"a"`
		B *int32 `mdx:"b"`
	}
	var got target
	if err := FromElement(el, &got); err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	if got.A == nil || *got.A != 1 {
		t.Errorf("A = %v", got.A)
	}
	if got.B != nil {
		t.Errorf("B = %v, want nil", got.B)
	}
}

func TestDecodeMapStringifiesScalars(t *testing.T) {
	el := testElement(t, "reason", `{
		"source": "TestUtil",
		"errorCode": -1,
		"category": "CATEGORY"
	}`)
	var got map[string]string
	if err := FromElement(el, &got); err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	want := map[string]string{
		"source":    "TestUtil",
		"errorCode": "-1",
		"category":  "CATEGORY",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("map mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeStructFieldNameFallback(t *testing.T) {
	el := testElement(t, "msg", `{"Reason": "x"}`)
	type target struct {
		Reason string
	}
	var got target
	if err := FromElement(el, &got); err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	if got.Reason != "x" {
		t.Errorf("Reason = %q", got.Reason)
	}
}

func TestDecodeArrayOfStructs(t *testing.T) {
	el := testElement(t, "resp", `{
		"bars": [
			{"open": 10.0, "close": 11.5},
			{"open": 11.5, "close": 11.25},
			{"open": 11.25, "close": 12.0}
		]
	}`)
	type bar struct {
		Open  float64 `mdx:"open"`
		Close float64 `mdx:"close"`
	}
	type resp struct {
		Bars []bar `mdx:"bars"`
	}
	var got resp
	if err := FromElement(el, &got); err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	want := resp{Bars: []bar{
		{Open: 10.0, Close: 11.5},
		{Open: 11.5, Close: 11.25},
		{Open: 11.25, Close: 12.0},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded bars mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSliceFromComplexElement(t *testing.T) {
	el := testElement(t, "levels", `{"a": 1, "b": 2, "c": 3}`)
	var got []int32
	if err := FromElement(el, &got); err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	if diff := cmp.Diff([]int32{1, 2, 3}, got); diff != "" {
		t.Errorf("children as slice mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSliceFromComplexElementStructs(t *testing.T) {
	el := testElement(t, "quote", `{
		"bid": {"price": 10.0, "size": 100},
		"ask": {"price": 10.5, "size": 200}
	}`)
	type side struct {
		Price float64 `mdx:"price"`
		Size  int32   `mdx:"size"`
	}
	var got []side
	if err := FromElement(el, &got); err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	want := []side{{Price: 10.0, Size: 100}, {Price: 10.5, Size: 200}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sides mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeAny(t *testing.T) {
	el := testElement(t, "msg", `{
		"name": "x",
		"count": 3,
		"ratio": 0.5,
		"flags": [true, false],
		"inner": {"a": 1}
	}`)
	var got any
	if err := FromElement(el, &got); err != nil {
		t.Fatalf("FromElement: %v", err)
	}
	want := map[string]any{
		"name":  "x",
		"count": int32(3),
		"ratio": 0.5,
		"flags": []any{true, false},
		"inner": map[string]any{"a": int32(1)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("untyped decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnsupportedTargets(t *testing.T) {
	el := testElement(t, "msg", `{"a": 1}`)
	tests := []struct {
		name   string
		target func() any
	}{
		{name: "uint16 field", target: func() any {
			return &struct {
				A uint16 `mdx:"a"`
			}{}
		}},
		{name: "int16 field", target: func() any {
			return &struct {
				A int16 `mdx:"a"`
			}{}
		}},
		{name: "non-string map key", target: func() any {
			return &map[int]string{}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromElement(el, tt.target())
			if err == nil {
				t.Fatalf("FromElement succeeded")
			}
			var de *Error
			if !errors.As(err, &de) || de.Kind != UnsupportedType {
				t.Errorf("error = %v, want UnsupportedType", err)
			}
		})
	}
}

func TestDecodeScalarErrors(t *testing.T) {
	el := testElement(t, "msg", `{"s": "abc", "inner": {"a": 1}}`)

	type wrongType struct {
		S int32 `mdx:"s"`
	}
	var w wrongType
	err := FromElement(el, &w)
	if err == nil {
		t.Fatalf("decoding a string into int32 succeeded")
	}
	var de *Error
	if !errors.As(err, &de) || de.Kind != Native {
		t.Errorf("error = %v, want Native kind", err)
	}

	type scalarFromComplex struct {
		Inner string `mdx:"inner"`
	}
	var c scalarFromComplex
	err = FromElement(el, &c)
	if err == nil {
		t.Fatalf("decoding a sequence into string succeeded")
	}
	if !errors.As(err, &de) || de.Kind != ExpectedValue {
		t.Errorf("error = %v, want ExpectedValue kind", err)
	}
}

func TestDecodeFromMessage(t *testing.T) {
	b := mdx.NewEventBuilder(mdx.EventSubscriptionData)
	m, err := b.AppendMessage("MarketDataEvents",
		[]byte(`{"BID": 99.25, "BID_SIZE": 300}`), mdx.MessageProperties{})
	if err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	type tick struct {
		Bid     float64 `mdx:"BID"`
		BidSize int32   `mdx:"BID_SIZE"`
	}
	var got tick
	if err := FromMessage(m, &got); err != nil {
		t.Fatalf("FromMessage: %v", err)
	}
	if got.Bid != 99.25 || got.BidSize != 300 {
		t.Errorf("decoded tick = %+v", got)
	}
}
