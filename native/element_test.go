package native

import "testing"

func TestElementStatusCodes(t *testing.T) {
	el, code := TestUtilCreateElement(NameCreate("root"), []byte(`{"a": 1}`))
	if code != StatusOK {
		t.Fatalf("TestUtilCreateElement: 0x%x", code)
	}

	var child *Element
	if code := ElementGetElement(el, &child, "missing", nil); code != ErrorFieldNotFound {
		t.Errorf("missing field code = 0x%x, want ErrorFieldNotFound", code)
	}
	if ResultClass(ErrorFieldNotFound) != ClassFieldNotFound {
		t.Errorf("ResultClass(ErrorFieldNotFound) = 0x%x", ResultClass(ErrorFieldNotFound))
	}

	if code := ElementGetElement(el, &child, "a", nil); code != StatusOK {
		t.Fatalf("get a: 0x%x", code)
	}
	var v int32
	if code := ElementGetValueAsInt32(child, &v, 5); code != ErrorIndexOutOfRange {
		t.Errorf("out of range code = 0x%x", code)
	}
	var s string
	if code := ElementGetValueAsString(child, &s, 0); code != StatusOK || s != "1" {
		t.Errorf("int as string = %q, 0x%x", s, code)
	}
	var b bool
	if code := ElementGetValueAsBool(child, &b, 0); code != ErrorBadConversion {
		t.Errorf("int as bool code = 0x%x, want ErrorBadConversion", code)
	}
}

func TestElementAppendSentinel(t *testing.T) {
	el, code := TestUtilCreateElement(NameCreate("root"), []byte(`{"xs": [1, 2]}`))
	if code != StatusOK {
		t.Fatalf("TestUtilCreateElement: 0x%x", code)
	}
	var arr *Element
	if code := ElementGetElement(el, &arr, "xs", nil); code != StatusOK {
		t.Fatalf("get xs: 0x%x", code)
	}
	if code := ElementSetValueInt32(arr, 3, ElementIndexEnd); code != StatusOK {
		t.Fatalf("append via sentinel: 0x%x", code)
	}
	if ElementNumValues(arr) != 3 {
		t.Errorf("NumValues = %d", ElementNumValues(arr))
	}

	var scalar *Element
	if code := ElementGetElement(el, &scalar, "xs", nil); code != StatusOK {
		t.Fatal("re-get xs")
	}
	// a non-array scalar refuses to grow past one value
	single := newElement(NameCreate("one"), DatatypeInt32, false)
	if code := ElementSetValueInt32(single, 1, 0); code != StatusOK {
		t.Fatalf("set single: 0x%x", code)
	}
	if code := ElementSetValueInt32(single, 2, ElementIndexEnd); code != ErrorIndexOutOfRange {
		t.Errorf("grow scalar code = 0x%x, want ErrorIndexOutOfRange", code)
	}
}

func TestRefcountUnderflowPanics(t *testing.T) {
	ev := TestUtilCreateEvent(EventTypeResponse)
	EventRelease(ev)
	defer func() {
		if recover() == nil {
			t.Errorf("release past zero did not panic")
		}
	}()
	EventRelease(ev)
}
